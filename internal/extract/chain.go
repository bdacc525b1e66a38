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
	"fmt"
	"log/slog"
	"strings"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cache"
)

// ExhaustedStrategy is the pseudo-strategy name reported when every real
// strategy returned absent and the chain fell through to its report text.
const ExhaustedStrategy = "exhausted-report"

// Chain runs extraction strategies in a fixed reliability order, cheapest and
// most authoritative first, consulting the durable cache before touching the
// network. The first strategy to yield acceptable text wins; its result is
// persisted so the same video never pays for the same extraction twice.
type Chain struct {
	Strategies []Strategy
	Cache      *cache.ContentCache
}

// NewChain assembles the chain in the order the strategies are given.
func NewChain(cacheStore *cache.ContentCache, strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies, Cache: cacheStore}
}

// strategyNames returns the ordered namespace list for cache lookups.
func (c *Chain) strategyNames() []string {
	names := make([]string, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		names = append(names, s.Name())
	}
	return names
}

// Extract returns the content for a video identity and the name of the
// strategy that produced it. A cache hit short-circuits the chain with zero
// strategy invocations. When every strategy fails, Extract returns a
// descriptive report of what was attempted instead of an error; the content
// validator downstream refuses that report, so a total miss still surfaces as
// a typed failure to the caller.
func (c *Chain) Extract(ctx context.Context, videoID string) (text, strategy string) {
	if c.Cache != nil {
		if cached, name, ok := c.Cache.Lookup(videoID, c.strategyNames()...); ok {
			slog.Debug("extraction cache hit", "video_id", videoID, "strategy", name)
			return cached, name
		}
	}

	for _, s := range c.Strategies {
		text, ok := c.attempt(ctx, s, videoID)
		if !ok {
			continue
		}
		slog.Info("extraction succeeded", "video_id", videoID, "strategy", s.Name(), "chars", len(text))
		if c.Cache != nil {
			if err := c.Cache.Put(videoID, s.Name(), text); err != nil {
				// A broken cache degrades to re-extraction, never to failure.
				slog.Warn("cache write failed", "video_id", videoID, "strategy", s.Name(), "error", err)
			}
		}
		return text, s.Name()
	}

	slog.Warn("all extraction strategies exhausted", "video_id", videoID, "strategies", len(c.Strategies))
	return exhaustedReport(videoID, c.strategyNames()), ExhaustedStrategy
}

// attempt runs one strategy with panic containment so a misbehaving strategy
// reads as absent instead of taking down the chain.
func (c *Chain) attempt(ctx context.Context, s Strategy, videoID string) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extraction strategy panicked", "strategy", s.Name(), "video_id", videoID, "panic", r)
			text, ok = "", false
		}
	}()
	return s.Attempt(ctx, videoID)
}

// exhaustedReport describes the failed attempts in prose. It deliberately
// leads with "unable to extract", one of the phrases the content validator
// rejects, so this text can never slip into generation as if it were real
// video content.
func exhaustedReport(videoID string, strategies []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unable to extract content for video %s.\n\n", videoID)
	b.WriteString("The following acquisition methods were attempted in order, and none produced usable content:\n")
	for i, name := range strategies {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nThe video may be private, deleted, region-restricted, or have no ")
	b.WriteString("captions, readable metadata, or downloadable audio track. ")
	b.WriteString("Content could not be extracted from any available source.")
	return b.String()
}
