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
	goctx "context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/workers"
)

// fillerPhrases mark model output that is generic apology or refusal text
// instead of a usable section. Matching is case-insensitive substring. The
// assembler reuses the same list to catch filler that slips past the gate.
var fillerPhrases = []string{
	"as an ai",
	"as a language model",
	"i cannot",
	"i can't",
	"i'm sorry",
	"i am sorry",
	"i apologize",
	"unable to provide",
	"lorem ipsum",
	"[insert",
}

// containsFiller reports whether text matches the generic-filler denylist.
func containsFiller(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// SectionGenerator fans the validated transcript out to every registered
// section worker concurrently through a fixed-size worker pool. Each worker
// invocation gets its own timeout, one quality-gated corrective retry, and a
// deterministic fallback, so one slow or broken worker degrades only its own
// section. If more than half of the workers end in fallback the command
// records a typed insufficient-quality error instead of producing a
// degraded document.
type SectionGenerator struct {
	cor.BaseCommand
	generator             cloud.TextGenerator
	registry              []workers.Worker
	poolSize              int
	workerTimeout         time.Duration
	correctiveInstruction string
	retryCounter          metric.Int64Counter
	fallbackCounter       metric.Int64Counter
}

// NewSectionGenerator creates the fan-out command.
func NewSectionGenerator(
	name string,
	generator cloud.TextGenerator,
	registry []workers.Worker,
	poolSize int,
	workerTimeout time.Duration,
	correctiveInstruction string) *SectionGenerator {
	if poolSize <= 0 {
		poolSize = len(registry)
	}
	if workerTimeout <= 0 {
		workerTimeout = 90 * time.Second
	}
	if correctiveInstruction == "" {
		correctiveInstruction = "Your previous answer was too generic or too short. " +
			"Be specific and concrete, reference the actual content, and write at least 100 characters."
	}
	out := &SectionGenerator{
		BaseCommand:           *cor.NewBaseCommand(name),
		generator:             generator,
		registry:              registry,
		poolSize:              poolSize,
		workerTimeout:         workerTimeout,
		correctiveInstruction: correctiveInstruction,
	}
	out.retryCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.section.retry", name))
	out.fallbackCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.section.fallback", name))
	return out
}

// IsExecutable requires a validated transcript as input.
func (s *SectionGenerator) IsExecutable(context cor.Context) bool {
	if !s.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(s.GetInputParam()).(*model.Transcript)
	return ok
}

// sectionJob is one unit of work for the pool: run a single worker.
type sectionJob struct {
	worker workers.Worker
}

// Execute runs every registered worker through the pool and aggregates the
// results into a SectionSet.
func (s *SectionGenerator) Execute(context cor.Context) {
	transcript := context.Get(s.GetInputParam()).(*model.Transcript)
	ctx := context.GetContext()

	var wg sync.WaitGroup
	jobs := make(chan sectionJob, len(s.registry))
	results := make(chan model.Section, len(s.registry))

	for w := 0; w < s.poolSize; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- s.runWorker(ctx, job.worker, transcript)
			}
		}()
	}

	for _, worker := range s.registry {
		jobs <- sectionJob{worker: worker}
	}
	close(jobs)
	wg.Wait()
	close(results)

	set := &model.SectionSet{
		Transcript: transcript,
		Sections:   make(map[string]model.Section, len(s.registry)),
	}
	for section := range results {
		set.Sections[section.Name] = section
		if !section.Succeeded {
			set.FailedWorkers = append(set.FailedWorkers, section.Name)
		}
	}

	// More than half the workers in fallback means the document would be
	// trivially thin. Escalate instead of returning it.
	if len(set.FailedWorkers) > len(s.registry)/2 {
		s.GetErrorCounter().Add(ctx, 1)
		context.AddError(s.GetName(), model.NewPipelineError(
			model.ErrInsufficientQuality,
			fmt.Sprintf("%d of %d section workers failed: %s",
				len(set.FailedWorkers), len(s.registry), strings.Join(set.FailedWorkers, ", ")),
			"retry later, or try a video with richer spoken content"))
		return
	}

	s.GetSuccessCounter().Add(ctx, 1)
	context.Add(s.GetOutputParam(), set)
	context.Add(cor.CtxOut, set)
}

// runWorker executes one worker with its timeout, quality gate, single
// corrective retry, and fallback. It always returns a Section; failures are
// encoded in Succeeded and Reason, never propagated.
func (s *SectionGenerator) runWorker(ctx goctx.Context, worker workers.Worker, transcript *model.Transcript) model.Section {
	raw, err := s.attempt(ctx, worker, transcript.Text, "")
	if reason := s.gate(worker, raw, err); reason != "" {
		slog.Debug("section rejected, retrying once",
			"section", worker.Name(), "reason", reason)
		s.retryCounter.Add(ctx, 1)

		raw, err = s.attempt(ctx, worker, transcript.Text, s.correctiveInstruction)
		if reason := s.gate(worker, raw, err); reason != "" {
			slog.Warn("section fell back", "section", worker.Name(), "reason", reason)
			s.fallbackCounter.Add(ctx, 1)
			return model.Section{
				Name:      worker.Name(),
				Text:      worker.Fallback(),
				Succeeded: false,
				Reason:    reason,
			}
		}
	}
	return model.Section{Name: worker.Name(), Text: worker.Format(raw), Succeeded: true}
}

// attempt runs one generation call under the per-worker timeout. The timeout
// cancels only this call; sibling workers keep their own contexts.
func (s *SectionGenerator) attempt(ctx goctx.Context, worker workers.Worker, transcript, extra string) (string, error) {
	attemptCtx, cancel := goctx.WithTimeout(ctx, s.workerTimeout)
	defer cancel()
	return worker.Generate(attemptCtx, s.generator, transcript, extra)
}

// gate applies the quality gate to one attempt's outcome. It returns the
// rejection reason, or "" when the output is accepted.
func (s *SectionGenerator) gate(worker workers.Worker, raw string, err error) string {
	switch {
	case errors.Is(err, goctx.DeadlineExceeded):
		return fmt.Sprintf("timed out after %s", s.workerTimeout)
	case err != nil:
		return err.Error()
	case len(raw) < worker.MinLength():
		return fmt.Sprintf("output length %d below minimum %d", len(raw), worker.MinLength())
	case containsFiller(raw):
		return "output matched generic filler denylist"
	default:
		return ""
	}
}
