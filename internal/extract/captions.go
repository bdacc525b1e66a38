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
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// CaptionsStrategy reads the platform's own caption tracks: it scrapes the
// watch page for the player's captionTracks JSON, picks an English track
// (preferring human captions over auto-generated ones), and fetches the
// timedtext XML it points at. This is the cheapest and most authoritative
// strategy, so it runs first in the chain.
type CaptionsStrategy struct {
	Client       *http.Client
	UserAgent    string
	WatchBaseURL string // Overridable for tests; defaults to the public watch URL.
	MinLength    int    // Acceptance floor in characters.
}

// NewCaptionsStrategy builds the strategy with the public watch-page URL.
func NewCaptionsStrategy(client *http.Client, userAgent string, minLength int) *CaptionsStrategy {
	return &CaptionsStrategy{
		Client:       client,
		UserAgent:    userAgent,
		WatchBaseURL: "https://www.youtube.com/watch",
		MinLength:    minLength,
	}
}

// Name returns the strategy identifier used for cache namespacing.
func (s *CaptionsStrategy) Name() string { return "captions" }

// captionTrack is one entry of the player's captionTracks array.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks.
}

// Attempt fetches and concatenates the best available caption track.
// Every failure mode maps to absent; nothing propagates.
func (s *CaptionsStrategy) Attempt(ctx context.Context, videoID string) (string, bool) {
	page, err := s.fetchWatchPage(ctx, videoID)
	if err != nil {
		slog.Debug("captions: watch page fetch failed", "video_id", videoID, "error", err)
		return "", false
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil || len(tracks) == 0 {
		slog.Debug("captions: no caption tracks", "video_id", videoID)
		return "", false
	}

	track := pickTrack(tracks)
	text, err := s.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		slog.Debug("captions: timedtext fetch failed", "video_id", videoID, "error", err)
		return "", false
	}

	text = CleanText(text)
	if len(text) < s.MinLength {
		return "", false
	}
	return text, true
}

func (s *CaptionsStrategy) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?v=%s", s.WatchBaseURL, videoID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// parseCaptionTracks locates the captionTracks array inside the watch-page
// player JSON by scanning for the key and balancing brackets.
func parseCaptionTracks(page string) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	start := strings.Index(page, marker)
	if start == -1 {
		return nil, fmt.Errorf("captionTracks not present")
	}

	arrStart := strings.Index(page[start:], "[")
	if arrStart == -1 {
		return nil, fmt.Errorf("captionTracks array start not found")
	}
	arrStart += start

	depth := 0
	arrEnd := -1
	for i := arrStart; i < len(page); i++ {
		switch page[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				arrEnd = i + 1
			}
		}
		if arrEnd != -1 {
			break
		}
	}
	if arrEnd == -1 {
		return nil, fmt.Errorf("captionTracks array end not found")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(page[arrStart:arrEnd]), &tracks); err != nil {
		return nil, fmt.Errorf("parse captionTracks: %w", err)
	}
	return tracks, nil
}

// pickTrack prefers human English captions, then auto-generated English,
// then whatever comes first. Deterministic for a given track list.
func pickTrack(tracks []captionTrack) captionTrack {
	var asrEnglish *captionTrack
	for i := range tracks {
		t := &tracks[i]
		if !strings.HasPrefix(t.LanguageCode, "en") {
			continue
		}
		if t.Kind != "asr" {
			return *t
		}
		if asrEnglish == nil {
			asrEnglish = t
		}
	}
	if asrEnglish != nil {
		return *asrEnglish
	}
	return tracks[0]
}

// fetchTimedText downloads a caption track and joins its cue texts.
func (s *CaptionsStrategy) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	var doc struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Text string `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode timedtext: %w", err)
	}

	var b strings.Builder
	for i, cue := range doc.Texts {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(html.UnescapeString(cue.Text))
	}
	return b.String(), nil
}
