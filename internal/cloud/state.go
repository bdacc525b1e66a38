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
	"net/http"
	"os"
	"time"

	"google.golang.org/genai"
)

// ServiceClients is the dependency-injection container built once at process
// start and threaded through the pipeline. Nothing in the core reaches for
// global clients; everything it talks to lives here.
type ServiceClients struct {
	GenAIClient *genai.Client
	AgentModels map[string]*QuotaAwareGenerativeAIModel // Configured models keyed by logical name.
	HTTPClient  *http.Client                            // Shared client for extraction strategies.
}

// NewServiceClients initializes the generative AI client and the configured
// agent models. The API key is read from GEMINI_API_KEY.
func NewServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey := range config.AgentModels {
		values := config.AgentModels[amKey]

		modelConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(modelConfig, values.Model, gc.Models, values.RateLimit)
	}

	timeout := time.Duration(config.Extraction.TimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &ServiceClients{
		GenAIClient: gc,
		AgentModels: agentModels,
		HTTPClient:  &http.Client{Timeout: timeout},
	}, nil
}
