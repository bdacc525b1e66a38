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

// Package workers defines the section workers: each one turns a validated
// transcript into a single named section of the blog document by prompting
// the text-generation backend. Workers share one template-driven
// implementation; what varies per section is the prompt, the transcript
// excerpt size, the acceptance floor, the output formatter, and the
// deterministic fallback.
package workers

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
)

// Worker produces one named section. Implementations must be independently
// invocable and must never mutate the transcript.
type Worker interface {
	Name() string
	// Generate prompts the backend and returns the raw, trimmed output.
	// extraInstruction is appended to the prompt on the corrective retry and
	// is empty on the first attempt.
	Generate(ctx context.Context, gen cloud.TextGenerator, transcript, extraInstruction string) (string, error)
	// Format renders accepted raw output as the section's final Markdown.
	Format(raw string) string
	// MinLength is the quality-gate floor for raw output, in characters.
	MinLength() int
	// Fallback is the deterministic, already-formatted substitute used when
	// generation fails irrecoverably.
	Fallback() string
}

// promptData is the data visible to a section's prompt template.
type promptData struct {
	Transcript string
}

// SectionWorker is the shared template-driven Worker implementation.
type SectionWorker struct {
	name         string
	tmpl         *template.Template
	excerptChars int
	minLength    int
	fallback     string
	formatter    func(raw string) string
}

// NewSectionWorker builds a worker from a parsed prompt template and its
// acceptance policy. A nil formatter passes raw output through unchanged.
func NewSectionWorker(name string, tmpl *template.Template, excerptChars, minLength int, fallback string, formatter func(string) string) *SectionWorker {
	if formatter == nil {
		formatter = func(raw string) string { return raw }
	}
	return &SectionWorker{
		name:         name,
		tmpl:         tmpl,
		excerptChars: excerptChars,
		minLength:    minLength,
		fallback:     fallback,
		formatter:    formatter,
	}
}

func (w *SectionWorker) Name() string     { return w.name }
func (w *SectionWorker) MinLength() int   { return w.minLength }
func (w *SectionWorker) Fallback() string { return w.fallback }

// Format applies the section's formatter to accepted raw output.
func (w *SectionWorker) Format(raw string) string { return w.formatter(raw) }

// Generate renders the prompt from the transcript excerpt and calls the
// backend once.
func (w *SectionWorker) Generate(ctx context.Context, gen cloud.TextGenerator, transcript, extraInstruction string) (string, error) {
	excerpt := transcript
	if w.excerptChars > 0 && len(excerpt) > w.excerptChars {
		// Back off to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := w.excerptChars
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	var prompt strings.Builder
	if err := w.tmpl.Execute(&prompt, promptData{Transcript: excerpt}); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", w.name, err)
	}
	if extraInstruction != "" {
		prompt.WriteString("\n\n")
		prompt.WriteString(extraInstruction)
	}

	raw, err := gen.GenerateText(ctx, prompt.String())
	if err != nil {
		return "", fmt.Errorf("generate %s section: %w", w.name, err)
	}
	return strings.TrimSpace(raw), nil
}
