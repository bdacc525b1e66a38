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

// Package extract implements the content-acquisition side of the pipeline:
// deriving a video identity from a URL, the set of extraction strategies
// (captions, page metadata, oEmbed, audio transcription), and the fallback
// chain that tries them in a fixed reliability order around a durable cache.
package extract

import (
	"context"
	"regexp"
	"strings"
)

// Strategy is one method of acquiring textual content for a video identity.
// Attempt returns ok=false when the strategy cannot produce acceptable
// content; it must contain its own failures and never panic or propagate an
// error, so one misbehaving strategy cannot abort the chain.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, videoID string) (text string, ok bool)
}

// videoIDPattern matches the 11-character identity token after "v=" or a
// path separator. Query decoration around it is irrelevant.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&#/]|$)`)

// bareIDPattern accepts an identity passed directly instead of a URL.
var bareIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ParseVideoID derives the canonical video identity from a watch URL, a
// short URL, an embed URL, or a bare identity token. The empty string means
// no identity could be derived.
func ParseVideoID(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if bareIDPattern.MatchString(trimmed) {
		return trimmed
	}
	if m := videoIDPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return ""
}

var (
	artifactPattern = regexp.MustCompile(`\[(?:Music|Applause|Laughter)\]`)
	ctaPattern      = regexp.MustCompile(`(?i)(?:Subscribe|Like th(?:is|e) video|Hit the bell)[^.\n]*`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	jsonEscapes     = strings.NewReplacer(`\n`, "\n", `\"`, `"`, `\\`, `\`)
)

// CleanText normalizes extracted text: collapses whitespace runs and strips
// caption artifacts and creator calls-to-action that add no content.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = artifactPattern.ReplaceAllString(text, "")
	text = ctaPattern.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// unescapeJSONString undoes the escaping YouTube applies to strings embedded
// in watch-page JSON blobs.
func unescapeJSONString(s string) string {
	return jsonEscapes.Replace(s)
}
