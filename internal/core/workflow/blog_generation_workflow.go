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

// Package workflow combines the pipeline commands into the end-to-end blog
// generation chain: extract, validate, generate sections in parallel, and
// assemble the document.
package workflow

import (
	"time"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cache"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/commands"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/workers"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/extract"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/validate"
)

// BlogGenerationWorkflow runs a video URL through the full pipeline. It is a
// cor.Command itself, so a caller drives it with one Execute call: the input
// is the URL under cor.CtxIn, the output is the *model.BlogDocument under
// cor.CtxOut, and any terminal failure lands in the context's error map as a
// typed *model.PipelineError.
type BlogGenerationWorkflow struct {
	cor.BaseCommand
	config    *cloud.Config
	generator cloud.TextGenerator
	registry  []workers.Worker
	chain     cor.Chain
}

// Execute runs the underlying command chain.
func (w *BlogGenerationWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain wires the four pipeline stages in order. The chain stops at
// the first recorded error, which is what makes validation fail closed: a
// rejected transcript means no worker ever runs.
func (w *BlogGenerationWorkflow) initializeChain(chain *extract.Chain) {
	out := cor.NewBaseChain(w.GetName())

	out.AddCommand(commands.NewTranscriptExtractor("extract-transcript", chain))

	out.AddCommand(commands.NewTranscriptValidator("validate-transcript", validate.NewValidator(
		w.config.Validation.MinLength,
		w.config.Validation.MinWords,
		w.config.Validation.MinUniqueWords,
		w.config.Validation.MinFunctionWords)))

	out.AddCommand(commands.NewSectionGenerator(
		"generate-sections",
		w.generator,
		w.registry,
		w.config.Application.ThreadPoolSize,
		time.Duration(w.config.Generation.WorkerTimeoutInSeconds)*time.Second,
		w.config.Generation.CorrectiveInstruction))

	out.AddCommand(commands.NewBlogAssembler("assemble-blog"))

	w.chain = out
}

// NewBlogGenerationWorkflow builds the pipeline from configuration and
// initialized service clients. Prompt-template problems are a startup
// failure, so it panics rather than returning an error.
func NewBlogGenerationWorkflow(config *cloud.Config, serviceClients *cloud.ServiceClients) *BlogGenerationWorkflow {
	registry, err := workers.NewRegistry(config.PromptTemplates)
	if err != nil {
		panic(err)
	}

	agentModel := serviceClients.AgentModels[config.Generation.AgentModel]

	pipeline := &BlogGenerationWorkflow{
		BaseCommand: *cor.NewBaseCommand("blog-generation-pipeline"),
		config:      config,
		generator:   agentModel,
		registry:    registry,
	}
	pipeline.initializeChain(newExtractionChain(config, serviceClients))
	return pipeline
}

// NewCustomBlogGenerationWorkflow builds the pipeline around an explicit
// text-generation backend and extraction chain instead of the standard
// service clients. Tests use it to substitute fakes for the remote services.
func NewCustomBlogGenerationWorkflow(config *cloud.Config, generator cloud.TextGenerator, chain *extract.Chain) *BlogGenerationWorkflow {
	registry, err := workers.NewRegistry(config.PromptTemplates)
	if err != nil {
		panic(err)
	}
	pipeline := &BlogGenerationWorkflow{
		BaseCommand: *cor.NewBaseCommand("blog-generation-pipeline"),
		config:      config,
		generator:   generator,
		registry:    registry,
	}
	pipeline.initializeChain(chain)
	return pipeline
}

// newExtractionChain assembles the strategy chain in its fixed reliability
// order. The paid audio strategy is registered last and only when enabled.
func newExtractionChain(config *cloud.Config, serviceClients *cloud.ServiceClients) *extract.Chain {
	userAgent := config.Extraction.UserAgent
	minLength := config.Extraction.MinContentLength
	client := serviceClients.HTTPClient

	strategies := []extract.Strategy{
		extract.NewCaptionsStrategy(client, userAgent, minLength),
		extract.NewPageMetadataStrategy(client, userAgent, minLength),
		extract.NewOEmbedStrategy(client, userAgent, minLength),
	}
	if config.Extraction.EnableAudio {
		transcriber := serviceClients.AgentModels[config.Extraction.AudioModel]
		strategies = append(strategies,
			extract.NewAudioTranscriptStrategy(config.Extraction.YtdlpPath, transcriber, minLength))
	}

	return extract.NewChain(cache.NewContentCache(config.Cache.RootDir), strategies...)
}
