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

// Package cache provides the durable, identity-keyed store for previously
// extracted video content. Each (video, strategy) pair maps to one file under
// a per-strategy namespace directory, so a later strategy's success never
// overwrites an earlier strategy's entry. Entries are write-once memos with
// no eviction; staleness is an accepted trade-off.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// keyPattern restricts cache path components to filesystem-safe tokens.
// Video identities are 11-character URL-safe base64 tokens and strategy
// names are fixed lowercase identifiers, so anything else is a caller bug.
var keyPattern = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

// ContentCache stores extracted text on disk under a root directory.
// Reads and writes for different identities are safe concurrently; a race on
// the same key resolves last-writer-wins, which is acceptable because content
// is deterministic per strategy.
type ContentCache struct {
	root string
}

// NewContentCache creates a cache rooted at dir. The directory tree is
// created lazily on the first Put.
func NewContentCache(dir string) *ContentCache {
	return &ContentCache{root: dir}
}

// path derives the deterministic file location for a (video, strategy) key.
func (c *ContentCache) path(videoID, strategy string) (string, error) {
	if !keyPattern.MatchString(videoID) || !keyPattern.MatchString(strategy) {
		return "", fmt.Errorf("invalid cache key %q/%q", strategy, videoID)
	}
	return filepath.Join(c.root, strategy, videoID+".txt"), nil
}

// Get returns the cached text for the key, or ok=false when absent.
func (c *ContentCache) Get(videoID, strategy string) (text string, ok bool) {
	p, err := c.path(videoID, strategy)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Put persists text under the key, creating the strategy namespace lazily.
// The write goes through a temp file plus rename so a reader never observes
// a partially written entry.
func (c *ContentCache) Put(videoID, strategy, text string) error {
	p, err := c.path(videoID, strategy)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache namespace: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename cache entry: %w", err)
	}
	return nil
}

// Lookup checks the strategy namespaces in the given order and returns the
// first hit. The extraction chain uses this for its cache-read step.
func (c *ContentCache) Lookup(videoID string, strategies ...string) (text, strategy string, ok bool) {
	for _, s := range strategies {
		if t, hit := c.Get(videoID, s); hit {
			return t, s, true
		}
	}
	return "", "", false
}
