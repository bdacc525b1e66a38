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
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Configuration loading constants. The loader reads a base file and overlays
// an environment-specific file selected by the runtime environment variable.
const (
	ConfigFileBaseName  = ".env"
	ConfigFileExtension = ".toml"
	ConfigSeparator     = "."
	EnvConfigFilePrefix = "BLOG_CONFIG_PREFIX" // Directory holding the config files.
	EnvConfigRuntime    = "BLOG_RUNTIME"       // Runtime context: "local", "test", "prod".
	MaxRetries          = 3                    // Maximum attempts for one generation call.
)

func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates baseConfig from the base TOML file, then overlays the
// environment-specific file so its values win. Missing files are skipped,
// a malformed file is fatal.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// ContentGenerator is the raw model call the retry helper drives.
// QuotaAwareGenerativeAIModel satisfies it; tests substitute a fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error)
}

// GenerateTextResponse executes one request against the generative model,
// retrying up to MaxRetries on transient failure and recording token usage
// on the supplied counters. The candidate parts are concatenated and any
// markdown code fences the model wraps around the answer are stripped.
func GenerateTextResponse(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	retryCounter metric.Int64Counter,
	tryCount int,
	model ContentGenerator,
	content []*genai.Content) (value string, err error) {
	resp, err := model.GenerateContent(ctx, content)

	if err != nil {
		if tryCount < MaxRetries {
			retryCounter.Add(ctx, 1)
			return GenerateTextResponse(ctx, inputTokenCounter, outputTokenCounter, retryCounter, tryCount+1, model, content)
		}
		return "", err
	}

	if resp.UsageMetadata != nil {
		inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	value = ""
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				value += fmt.Sprint(part.Text)
			}
		}
	}
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "```markdown")
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimPrefix(value, "```")
	value = strings.TrimSuffix(value, "```")
	return strings.TrimSpace(value), nil
}

// NewTextContent builds a single-turn user prompt for the model.
func NewTextContent(in string) []*genai.Content {
	return genai.Text(in)
}

// NewAudioContent builds a prompt pairing an instruction with inline audio
// bytes, used by the audio-transcription extraction strategy.
func NewAudioContent(instruction string, mimeType string, data []byte) []*genai.Content {
	return []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: instruction},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			},
			Role: "user",
		},
	}
}
