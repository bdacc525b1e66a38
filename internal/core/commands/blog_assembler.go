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

package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/workers"
)

// canonicalOrder fixes the position of every known section in the assembled
// body. Sections the worker set does not produce are simply absent. The SEO
// section is deliberately not listed: its output becomes document metadata.
var canonicalOrder = []string{
	workers.SectionTitle,
	workers.SectionIntro,
	"context",
	workers.SectionKeyPoints,
	workers.SectionQuotes,
	workers.SectionSummary,
	"what_this_means",
	workers.SectionConclusion,
	workers.SectionTags,
}

// BlogDocumentParamName is the context key the assembled document is stored
// under. Chains consume CtxOut for piping, so callers that run the full
// pipeline read the document from this key instead.
const BlogDocumentParamName = "__blog_document__"

// dedupWordCount is how many leading words two blocks must share to be
// considered duplicates of each other.
const dedupWordCount = 8

// minBlockLength filters out stub blocks that carry no content.
const minBlockLength = 10

// BlogAssembler orders the generated sections into the final document,
// filters out stubs, duplicate openings, and residual filler, and derives
// the document metadata from the SEO section.
type BlogAssembler struct {
	cor.BaseCommand
}

// NewBlogAssembler creates the assembly command. Its output lands under
// BlogDocumentParamName in addition to the chain's CtxOut slot.
func NewBlogAssembler(name string) *BlogAssembler {
	out := &BlogAssembler{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = BlogDocumentParamName
	return out
}

// IsExecutable requires a SectionSet as input.
func (b *BlogAssembler) IsExecutable(context cor.Context) bool {
	if !b.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(b.GetInputParam()).(*model.SectionSet)
	return ok
}

// Execute assembles the document. Zero surviving blocks is terminal: the
// caller gets a typed error, never an empty document.
func (b *BlogAssembler) Execute(context cor.Context) {
	set := context.Get(b.GetInputParam()).(*model.SectionSet)

	sections := make(map[string]string, len(set.Sections))
	for name, section := range set.Sections {
		sections[name] = section.Text
	}

	var blocks []string
	seenOpenings := make(map[string]struct{})
	for _, name := range canonicalOrder {
		text, ok := sections[name]
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if len(trimmed) < minBlockLength {
			continue
		}
		if containsFiller(trimmed) {
			slog.Debug("assembly dropped filler block", "section", name)
			continue
		}
		opening := blockOpening(trimmed)
		if _, dup := seenOpenings[opening]; dup {
			slog.Debug("assembly dropped duplicate opening", "section", name)
			continue
		}
		seenOpenings[opening] = struct{}{}
		blocks = append(blocks, trimmed)
	}

	if len(blocks) == 0 {
		b.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(b.GetName(), model.NewPipelineError(
			model.ErrAssemblyEmpty,
			"no section survived assembly filtering",
			"retry the request, or try a different video"))
		return
	}

	doc := &model.BlogDocument{
		Content:    strings.Join(blocks, "\n\n"),
		Transcript: set.Transcript.Text,
		Sections:   sections,
		Metadata:   deriveMetadata(set),
		Stats:      buildStats(set, len(blocks)),
	}

	b.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(b.GetOutputParam(), doc)
	context.Add(cor.CtxOut, doc)
}

// blockOpening returns the normalized first words of a block, used as the
// deduplication key.
func blockOpening(text string) string {
	tokens := model.Tokenize(text)
	if len(tokens) > dedupWordCount {
		tokens = tokens[:dedupWordCount]
	}
	return strings.Join(tokens, " ")
}

// deriveMetadata parses the SEO worker's KEY: value lines into the document
// metadata map and adds the video identity.
func deriveMetadata(set *model.SectionSet) map[string]string {
	metadata := map[string]string{
		"video_id": set.Transcript.VideoID,
		"strategy": set.Transcript.Strategy,
	}
	seo, ok := set.Sections[workers.SectionSEO]
	if !ok {
		return metadata
	}
	for _, line := range strings.Split(seo.Text, "\n") {
		line = strings.TrimSpace(line)
		if value, found := strings.CutPrefix(line, "META_DESCRIPTION:"); found {
			metadata["description"] = strings.TrimSpace(value)
		} else if value, found := strings.CutPrefix(line, "KEYWORDS:"); found {
			metadata["keywords"] = strings.TrimSpace(value)
		}
	}
	return metadata
}

// buildStats records the generation statistics callers and the save format
// expose.
func buildStats(set *model.SectionSet, blockCount int) map[string]interface{} {
	failed := set.FailedWorkers
	if failed == nil {
		failed = []string{}
	}
	total := len(set.Sections)
	ratio := 0.0
	if total > 0 {
		ratio = float64(total-len(failed)) / float64(total)
	}
	return map[string]interface{}{
		"transcript_length":    set.Transcript.Chars,
		"transcript_words":     set.Transcript.Words,
		"extraction_strategy":  set.Transcript.Strategy,
		"sections_total":       total,
		"sections_in_document": blockCount,
		"failed_workers":       failed,
		"success_ratio":        fmt.Sprintf("%.2f", ratio),
	}
}
