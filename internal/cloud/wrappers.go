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

package cloud

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// TextGenerator is the capability the pipeline needs from a text-generation
// backend: one prompt in, one text completion out. Section workers and the
// audio-transcription strategy depend on this interface, never on a concrete
// client, so tests can substitute a fake.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// QuotaAwareGenerativeAIModel decorates the generative model handle with a
// rate limiter so the pipeline's fan-out cannot exceed the service quota.
// Requests block on the limiter instead of failing. Token usage and retries
// are recorded on the model's counters.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               *rate.Limiter
	InputTokenCounter       metric.Int64Counter
	OutputTokenCounter      metric.Int64Counter
	RetryCounter            metric.Int64Counter
}

// NewQuotaAwareModel wraps a model configuration with a limiter allowing
// requestsPerSecond calls per second (with an equal burst) and wires the
// token and retry counters to the global meter provider.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	meter := otel.Meter("github.com/Krishna-Sharma-g/youtube-to-blog")
	inputTokenCounter, err := meter.Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	if err != nil {
		log.Printf("error creating input token counter for model '%s': %v\n", name, err)
	}
	outputTokenCounter, err := meter.Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	if err != nil {
		log.Printf("error creating output token counter for model '%s': %v\n", name, err)
	}
	retryCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.retry", name))
	if err != nil {
		log.Printf("error creating retry counter for model '%s': %v\n", name, err)
	}

	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		RateLimit:               rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		InputTokenCounter:       inputTokenCounter,
		OutputTokenCounter:      outputTokenCounter,
		RetryCounter:            retryCounter,
	}
}

// GenerateContent waits for a limiter token, then forwards the request to the
// underlying model handle.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}

// TranscribeAudio sends inline audio bytes with a transcription instruction
// and returns the plain-text transcript. Used by the audio extraction
// strategy as its speech-to-text backend.
func (q *QuotaAwareGenerativeAIModel) TranscribeAudio(ctx context.Context, mimeType string, data []byte) (string, error) {
	const instruction = "Transcribe this audio to plain text. Return only the spoken words with no timestamps, speaker labels, or commentary."
	return GenerateTextResponse(ctx, q.InputTokenCounter, q.OutputTokenCounter, q.RetryCounter, 0,
		q, NewAudioContent(instruction, mimeType, data))
}

// GenerateText implements TextGenerator for a single text prompt.
func (q *QuotaAwareGenerativeAIModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	return GenerateTextResponse(ctx, q.InputTokenCounter, q.OutputTokenCounter, q.RetryCounter, 0,
		q, NewTextContent(prompt))
}
