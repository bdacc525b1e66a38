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

// Package commands provides the concrete pipeline commands: transcript
// extraction, content validation, the parallel section-generation fan-out,
// and final document assembly. Each command is an independent unit wired
// together by the workflow chain.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/extract"
)

// TranscriptExtractor resolves a video URL to its identity and runs the
// extraction chain. Its output is an unvalidated transcript; the validator
// decides whether the text is usable.
type TranscriptExtractor struct {
	cor.BaseCommand
	chain *extract.Chain
}

// NewTranscriptExtractor creates the command around an extraction chain.
func NewTranscriptExtractor(name string, chain *extract.Chain) *TranscriptExtractor {
	return &TranscriptExtractor{BaseCommand: *cor.NewBaseCommand(name), chain: chain}
}

// IsExecutable requires a non-empty URL string as input.
func (t *TranscriptExtractor) IsExecutable(context cor.Context) bool {
	if !t.BaseCommand.IsExecutable(context) {
		return false
	}
	url, ok := context.Get(t.GetInputParam()).(string)
	return ok && url != ""
}

// Execute derives the video identity and extracts content for it. An input
// from which no identity can be derived is terminal.
func (t *TranscriptExtractor) Execute(context cor.Context) {
	url := context.Get(t.GetInputParam()).(string)

	videoID := extract.ParseVideoID(url)
	if videoID == "" {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewPipelineError(
			model.ErrInvalidURL,
			fmt.Sprintf("no video identity in %q", url),
			"pass a watch URL, a youtu.be short link, or an 11-character video id"))
		return
	}

	text, strategy := t.chain.Extract(context.GetContext(), videoID)
	transcript := model.NewTranscript(videoID, strategy, text)
	slog.Info("transcript extracted",
		"video_id", videoID,
		"strategy", strategy,
		"chars", transcript.Chars,
		"words", transcript.Words)

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), transcript)
	context.Add(cor.CtxOut, transcript)
}
