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

package cloud_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
)

const baseToml = `
[application]
name = "youtube-to-blog"
thread_pool_size = 4

[extraction]
min_content_length = 100
user_agent = "base-agent"

[generation]
worker_timeout_in_seconds = 90
agent_model = "creative-flash"

[agent_models.creative-flash]
model = "gemini-2.0-flash"
temperature = 0.7
rate_limit = 2
`

const overlayToml = `
[extraction]
user_agent = "overlay-agent"

[generation]
worker_timeout_in_seconds = 10
`

func TestLoadConfigAppliesRuntimeOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(baseToml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test.toml"), []byte(overlayToml), 0o644))

	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	// Base values survive where the overlay is silent.
	assert.Equal(t, "youtube-to-blog", config.Application.Name)
	assert.Equal(t, 100, config.Extraction.MinContentLength)
	assert.Equal(t, "creative-flash", config.Generation.AgentModel)
	assert.Equal(t, float32(0.7), config.AgentModels["creative-flash"].Temperature)

	// Overlay values win on conflict.
	assert.Equal(t, "overlay-agent", config.Extraction.UserAgent)
	assert.Equal(t, 10, config.Generation.WorkerTimeoutInSeconds)
}

func TestLoadConfigMissingFilesLeaveDefaults(t *testing.T) {
	t.Setenv(cloud.EnvConfigFilePrefix, t.TempDir())
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)
	assert.Equal(t, "", config.Application.Name)
}

func TestNewTextContentWrapsPrompt(t *testing.T) {
	content := cloud.NewTextContent("write a title")
	require.Len(t, content, 1)
	require.Len(t, content[0].Parts, 1)
	assert.Equal(t, "write a title", content[0].Parts[0].Text)
}

func TestNewAudioContentPairsInstructionWithBlob(t *testing.T) {
	data := []byte{0x49, 0x44, 0x33}
	content := cloud.NewAudioContent("transcribe this", "audio/mpeg", data)
	require.Len(t, content, 1)
	require.Len(t, content[0].Parts, 2)
	assert.Equal(t, "transcribe this", content[0].Parts[0].Text)
	require.NotNil(t, content[0].Parts[1].InlineData)
	assert.Equal(t, "audio/mpeg", content[0].Parts[1].InlineData.MIMEType)
	assert.Equal(t, data, content[0].Parts[1].InlineData.Data)
}

// flakyModel fails the first `failures` calls, then answers with resp.
type flakyModel struct {
	calls    int
	failures int
	resp     *genai.GenerateContentResponse
}

func (m *flakyModel) GenerateContent(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, errors.New("transient backend failure")
	}
	return m.resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func testCounter(t *testing.T, name string) metric.Int64Counter {
	t.Helper()
	counter, err := otel.Meter("test").Int64Counter(name)
	require.NoError(t, err)
	return counter
}

func generateWith(t *testing.T, m *flakyModel) (string, error) {
	t.Helper()
	return cloud.GenerateTextResponse(context.Background(),
		testCounter(t, "tokens.input"), testCounter(t, "tokens.output"), testCounter(t, "counter.retry"),
		0, m, cloud.NewTextContent("write a title"))
}

func TestGenerateTextResponseRetriesTransientFailures(t *testing.T) {
	m := &flakyModel{failures: 2, resp: textResponse("A Perfectly Reasonable Title")}

	value, err := generateWith(t, m)
	require.NoError(t, err)
	assert.Equal(t, "A Perfectly Reasonable Title", value)
	assert.Equal(t, 3, m.calls)
}

func TestGenerateTextResponseGivesUpAfterMaxRetries(t *testing.T) {
	m := &flakyModel{failures: 100}

	_, err := generateWith(t, m)
	require.Error(t, err)
	assert.Equal(t, cloud.MaxRetries+1, m.calls)
}

func TestGenerateTextResponseStripsCodeFences(t *testing.T) {
	m := &flakyModel{resp: textResponse("```markdown\n# Fenced Title\n```")}

	value, err := generateWith(t, m)
	require.NoError(t, err)
	assert.Equal(t, "# Fenced Title", value)
}

func TestNewQuotaAwareModelWiresCounters(t *testing.T) {
	m := cloud.NewQuotaAwareModel(nil, "gemini-2.0-flash", nil, 1)
	assert.NotNil(t, m.InputTokenCounter)
	assert.NotNil(t, m.OutputTokenCounter)
	assert.NotNil(t, m.RetryCounter)
}

func TestNewQuotaAwareModelGuardsRateLimit(t *testing.T) {
	m := cloud.NewQuotaAwareModel(nil, "gemini-2.0-flash", nil, 0)
	require.NotNil(t, m.RateLimit)
	assert.Equal(t, float64(1), float64(m.RateLimit.Limit()))

	m = cloud.NewQuotaAwareModel(nil, "gemini-2.0-flash", nil, 5)
	assert.Equal(t, float64(5), float64(m.RateLimit.Limit()))
}
