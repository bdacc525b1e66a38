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
	"log/slog"
	"strings"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/validate"
)

// TranscriptValidator fails the pipeline closed when the extracted text is
// not usable generation input. Rejection here is terminal: no worker runs.
type TranscriptValidator struct {
	cor.BaseCommand
	validator *validate.Validator
}

// NewTranscriptValidator creates the command around a configured validator.
func NewTranscriptValidator(name string, validator *validate.Validator) *TranscriptValidator {
	return &TranscriptValidator{BaseCommand: *cor.NewBaseCommand(name), validator: validator}
}

// IsExecutable requires a transcript as input.
func (t *TranscriptValidator) IsExecutable(context cor.Context) bool {
	if !t.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(t.GetInputParam()).(*model.Transcript)
	return ok
}

// Execute checks the transcript and either passes it through unchanged or
// records a typed invalid-content error.
func (t *TranscriptValidator) Execute(context cor.Context) {
	transcript := context.Get(t.GetInputParam()).(*model.Transcript)

	result := t.validator.Check(transcript.Text)
	if !result.OK {
		slog.Warn("transcript rejected",
			"video_id", transcript.VideoID,
			"strategy", transcript.Strategy,
			"reasons", result.Reasons)
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewPipelineError(
			model.ErrInvalidContent,
			strings.Join(result.Reasons, "; "),
			"try a different video, ideally one with captions or a detailed description"))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), transcript)
	context.Add(cor.CtxOut, transcript)
}
