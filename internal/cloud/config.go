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

// Package cloud holds the application configuration structures, loaded from
// TOML files, and the clients for the remote text-generation service. The
// configuration covers the content cache, the extraction chain, the content
// validator, the generation orchestrator, per-section prompt templates, and
// the generative model settings.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings disables content blocking for all harm categories.
// The pipeline consumes public video transcripts, so the input is treated as
// trusted and filtering is left to the quality gate.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// CacheConfig configures the durable transcript cache.
type CacheConfig struct {
	RootDir string `toml:"root_dir"` // Directory holding one namespace per extraction strategy.
}

// ExtractionConfig configures the content-acquisition fallback chain.
type ExtractionConfig struct {
	MinContentLength int    `toml:"min_content_length"` // Strategy-level acceptance floor in characters.
	UserAgent        string `toml:"user_agent"`         // User agent sent on watch-page and oEmbed requests.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // Per-strategy HTTP/subprocess timeout.
	YtdlpPath        string `toml:"ytdlp_path"`         // Path to the yt-dlp binary for the audio strategy.
	EnableAudio      bool   `toml:"enable_audio"`       // Whether the paid audio-transcription strategy is registered.
	AudioModel       string `toml:"audio_model"`        // Logical agent model name used for audio transcription.
}

// ValidationConfig configures the content validator thresholds.
type ValidationConfig struct {
	MinLength        int `toml:"min_length"`         // Minimum character length after trimming.
	MinWords         int `toml:"min_words"`          // Minimum word count.
	MinUniqueWords   int `toml:"min_unique_words"`   // Minimum unique-word count.
	MinFunctionWords int `toml:"min_function_words"` // Minimum hits on common English function words.
}

// GenerationConfig configures the section-generation orchestrator.
type GenerationConfig struct {
	WorkerTimeoutInSeconds int    `toml:"worker_timeout_in_seconds"` // Per-worker timeout for one model call.
	CorrectiveInstruction  string `toml:"corrective_instruction"`    // Instruction appended on the single quality retry.
	AgentModel             string `toml:"agent_model"`               // Logical agent model name used by section workers.
}

// SectionPrompt is the per-section prompt template and its acceptance policy.
type SectionPrompt struct {
	Template     string `toml:"template"`      // Go text/template; sees .Transcript.
	ExcerptChars int    `toml:"excerpt_chars"` // Transcript excerpt length fed to the prompt; 0 means the full text.
	MinLength    int    `toml:"min_length"`    // Quality-gate minimum accepted output length.
	Fallback     string `toml:"fallback"`      // Deterministic substitute when generation fails irrecoverably.
}

// GenAiLLMModel holds the settings for one generative model configuration.
type GenAiLLMModel struct {
	Model              string  `toml:"model"`
	SystemInstructions string  `toml:"system_instructions"`
	Temperature        float32 `toml:"temperature"`
	TopP               float32 `toml:"top_p"`
	TopK               float32 `toml:"top_k"`
	MaxTokens          int32   `toml:"max_tokens"`
	OutputFormat       string  `toml:"output_format"` // Response MIME type, e.g. "text/plain".
	RateLimit          int     `toml:"rate_limit"`    // Requests per second allowed through the limiter.
}

// Config is the root of the application configuration, loaded from TOML.
type Config struct {
	Application struct {
		Name           string `toml:"name"`
		ThreadPoolSize int    `toml:"thread_pool_size"` // Worker-pool size for the section fan-out.
	} `toml:"application"`
	Cache           CacheConfig              `toml:"cache"`
	Extraction      ExtractionConfig         `toml:"extraction"`
	Validation      ValidationConfig         `toml:"validation"`
	Generation      GenerationConfig         `toml:"generation"`
	PromptTemplates map[string]SectionPrompt `toml:"prompt_templates"` // Keyed by section name (title, intro, ...).
	AgentModels     map[string]GenAiLLMModel `toml:"agent_models"`     // Keyed by a logical name (e.g. "creative-flash").
}

// NewConfig creates a Config with its map fields initialized so the TOML
// decoder can populate them.
func NewConfig() *Config {
	return &Config{
		PromptTemplates: make(map[string]SectionPrompt),
		AgentModels:     make(map[string]GenAiLLMModel),
	}
}
