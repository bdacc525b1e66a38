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

package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cache"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/extract"
)

// fakeStrategy counts its invocations and returns a fixed outcome.
type fakeStrategy struct {
	name  string
	text  string
	ok    bool
	panic bool
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(ctx context.Context, videoID string) (string, bool) {
	f.calls++
	if f.panic {
		panic("strategy blew up")
	}
	return f.text, f.ok
}

const testVideoID = "dQw4w9WgXcQ"

func TestChainReturnsFirstSuccess(t *testing.T) {
	first := &fakeStrategy{name: "captions", text: "caption text", ok: true}
	second := &fakeStrategy{name: "page-metadata", text: "metadata text", ok: true}
	chain := extract.NewChain(cache.NewContentCache(t.TempDir()), first, second)

	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "caption text", text)
	assert.Equal(t, "captions", strategy)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "a later strategy must not run once an earlier one succeeds")
}

func TestChainFallsThroughOnAbsent(t *testing.T) {
	first := &fakeStrategy{name: "captions", ok: false}
	second := &fakeStrategy{name: "page-metadata", text: "metadata text", ok: true}
	chain := extract.NewChain(cache.NewContentCache(t.TempDir()), first, second)

	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "metadata text", text)
	assert.Equal(t, "page-metadata", strategy)
	assert.Equal(t, 1, first.calls)
}

func TestChainContainsPanickingStrategy(t *testing.T) {
	first := &fakeStrategy{name: "captions", panic: true}
	second := &fakeStrategy{name: "oembed", text: "synthesized text", ok: true}
	chain := extract.NewChain(cache.NewContentCache(t.TempDir()), first, second)

	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "synthesized text", text)
	assert.Equal(t, "oembed", strategy)
}

func TestChainCacheHitSkipsStrategies(t *testing.T) {
	store := cache.NewContentCache(t.TempDir())
	first := &fakeStrategy{name: "captions", text: "fresh caption text", ok: true}
	chain := extract.NewChain(store, first)

	// First run populates the cache.
	text, strategy := chain.Extract(context.Background(), testVideoID)
	require.Equal(t, "fresh caption text", text)
	require.Equal(t, "captions", strategy)
	require.Equal(t, 1, first.calls)

	// Second run must be served entirely from the cache.
	text, strategy = chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "fresh caption text", text)
	assert.Equal(t, "captions", strategy)
	assert.Equal(t, 1, first.calls, "cache hit must invoke zero strategies")
}

func TestChainCacheHonorsStrategyPrecedence(t *testing.T) {
	store := cache.NewContentCache(t.TempDir())
	require.NoError(t, store.Put(testVideoID, "oembed", "older oembed text"))
	require.NoError(t, store.Put(testVideoID, "captions", "newer caption text"))

	chain := extract.NewChain(store,
		&fakeStrategy{name: "captions", ok: false},
		&fakeStrategy{name: "oembed", ok: false},
	)

	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "newer caption text", text)
	assert.Equal(t, "captions", strategy)
}

func TestChainExhaustedProducesReport(t *testing.T) {
	first := &fakeStrategy{name: "captions", ok: false}
	second := &fakeStrategy{name: "page-metadata", ok: false}
	chain := extract.NewChain(cache.NewContentCache(t.TempDir()), first, second)

	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, extract.ExhaustedStrategy, strategy)
	assert.Contains(t, text, "Unable to extract content")
	assert.Contains(t, text, testVideoID)
	assert.Contains(t, text, "captions")
	assert.Contains(t, text, "page-metadata")
}

func TestChainDoesNotCacheExhaustedReport(t *testing.T) {
	store := cache.NewContentCache(t.TempDir())
	failing := &fakeStrategy{name: "captions", ok: false}
	chain := extract.NewChain(store, failing)

	chain.Extract(context.Background(), testVideoID)
	chain.Extract(context.Background(), testVideoID)

	assert.Equal(t, 2, failing.calls, "a total miss must be retried, not memoized")
	_, _, ok := store.Lookup(testVideoID, "captions", extract.ExhaustedStrategy)
	assert.False(t, ok)
}

func TestChainWorksWithoutCache(t *testing.T) {
	chain := extract.NewChain(nil, &fakeStrategy{name: "captions", text: "caption text", ok: true})
	text, strategy := chain.Extract(context.Background(), testVideoID)
	assert.Equal(t, "caption text", text)
	assert.Equal(t, "captions", strategy)
}
