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

// Package services exposes the pipeline to callers: the HTTP handlers and
// the CLI both go through BlogService rather than driving the command chain
// directly.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/commands"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
)

// BlogService turns video URLs into blog documents and persists them.
type BlogService struct {
	pipeline cor.Command
}

// NewBlogService wraps the generation pipeline.
func NewBlogService(pipeline cor.Command) *BlogService {
	return &BlogService{pipeline: pipeline}
}

// Generate runs the full pipeline for one video URL. On success the returned
// document is complete and immutable; on failure the error wraps one of the
// model sentinel kinds and carries a remediation message.
func (s *BlogService) Generate(ctx context.Context, videoURL string) (*model.BlogDocument, error) {
	requestID := uuid.New().String()
	slog.Info("generation request started", "request_id", requestID, "url", videoURL)

	corCtx := cor.NewBaseContext()
	corCtx.SetContext(ctx)
	defer corCtx.Close()
	corCtx.Add(cor.CtxIn, videoURL)

	s.pipeline.Execute(corCtx)

	if corCtx.HasErrors() {
		err := collapseErrors(corCtx.GetErrors())
		slog.Warn("generation request failed", "request_id", requestID, "error", err)
		return nil, err
	}

	doc, ok := corCtx.Get(commands.BlogDocumentParamName).(*model.BlogDocument)
	if !ok || doc == nil {
		return nil, fmt.Errorf("pipeline finished without a document")
	}
	doc.Stats["request_id"] = requestID
	doc.Stats["word_count"] = doc.WordCount()

	slog.Info("generation request finished",
		"request_id", requestID,
		"words", doc.WordCount(),
		"failed_workers", doc.Stats["failed_workers"])
	return doc, nil
}

// collapseErrors reduces the chain's error map to one error for the caller.
// A typed pipeline error wins over anything else so errors.Is keeps working
// at the API boundary.
func collapseErrors(errMap map[string]error) error {
	var pipelineErr *model.PipelineError
	rest := make([]error, 0, len(errMap))
	for _, err := range errMap {
		if pipelineErr == nil && errors.As(err, &pipelineErr) {
			continue
		}
		rest = append(rest, err)
	}
	if pipelineErr != nil {
		return pipelineErr
	}
	return errors.Join(rest...)
}

// Save writes the document as UTF-8 Markdown: a quoted-value frontmatter
// block from the metadata, the assembled content, and a trailing
// machine-readable comment with the generation statistics. Parent directories
// are created as needed and the write is atomic.
func (s *BlogService) Save(doc *model.BlogDocument, path string) error {
	var b strings.Builder

	if len(doc.Metadata) > 0 {
		keys := make([]string, 0, len(doc.Metadata))
		for k := range doc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("---\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %q\n", k, doc.Metadata[k])
		}
		b.WriteString("---\n\n")
	}

	b.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		b.WriteString("\n")
	}

	stats, err := json.MarshalIndent(doc.Stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	fmt.Fprintf(&b, "\n<!-- generation-stats\n%s\n-->\n", stats)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".blog-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}
