// Copyright 2025 Krishna Sharma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/h2non/filetype"
)

// AudioTranscriber is the speech-to-text capability the audio strategy needs.
type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, mimeType string, data []byte) (string, error)
}

// maxInlineAudioBytes caps what we send inline to the model; larger downloads
// are treated as absent rather than rejected by the service mid-request.
const maxInlineAudioBytes = 18 << 20

// AudioTranscriptStrategy downloads the best audio track with yt-dlp and
// sends it to the transcription model. It is the most expensive strategy, so
// the chain registers it last, and deployments without yt-dlp or a model
// budget disable it in config.
type AudioTranscriptStrategy struct {
	YtdlpPath   string
	WatchVideo  string
	Transcriber AudioTranscriber
	MinLength   int
}

// NewAudioTranscriptStrategy builds the strategy around a yt-dlp binary and
// a transcription backend.
func NewAudioTranscriptStrategy(ytdlpPath string, transcriber AudioTranscriber, minLength int) *AudioTranscriptStrategy {
	return &AudioTranscriptStrategy{
		YtdlpPath:   ytdlpPath,
		WatchVideo:  "https://www.youtube.com/watch?v=",
		Transcriber: transcriber,
		MinLength:   minLength,
	}
}

// Name returns the strategy identifier used for cache namespacing.
func (s *AudioTranscriptStrategy) Name() string { return "audio-transcript" }

// Attempt downloads the audio and transcribes it. All failures, including a
// missing yt-dlp binary, map to absent.
func (s *AudioTranscriptStrategy) Attempt(ctx context.Context, videoID string) (string, bool) {
	if s.Transcriber == nil || s.YtdlpPath == "" {
		return "", false
	}

	tmpDir, err := os.MkdirTemp("", "audio-extract-")
	if err != nil {
		return "", false
	}
	defer os.RemoveAll(tmpDir)

	outPattern := filepath.Join(tmpDir, "audio.%(ext)s")
	cmd := exec.CommandContext(ctx, s.YtdlpPath,
		"-f", "bestaudio",
		"-o", outPattern,
		"--no-warnings",
		"--no-playlist",
		s.WatchVideo+videoID,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		slog.Debug("audio-transcript: yt-dlp failed", "video_id", videoID, "error", err, "stderr", stderr.String())
		return "", false
	}

	matches, err := filepath.Glob(filepath.Join(tmpDir, "audio.*"))
	if err != nil || len(matches) == 0 {
		slog.Debug("audio-transcript: no audio file produced", "video_id", videoID)
		return "", false
	}

	data, err := os.ReadFile(matches[0])
	if err != nil || len(data) == 0 || len(data) > maxInlineAudioBytes {
		slog.Debug("audio-transcript: unusable audio file", "video_id", videoID, "bytes", len(data))
		return "", false
	}

	mimeType := "audio/mpeg"
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Value != "" {
		mimeType = kind.MIME.Value
	}

	transcript, err := s.Transcriber.TranscribeAudio(ctx, mimeType, data)
	if err != nil {
		slog.Debug("audio-transcript: transcription failed", "video_id", videoID, "error", err)
		return "", false
	}

	transcript = CleanText(transcript)
	if len(transcript) < s.MinLength {
		return "", false
	}
	return transcript, true
}
