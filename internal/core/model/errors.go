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

package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four terminal failure kinds of a generation
// request. Callers match them with errors.Is; each carries a user-actionable
// remediation message via PipelineError.
var (
	// ErrInvalidURL means no video identity could be derived from the input.
	ErrInvalidURL = errors.New("invalid video URL")

	// ErrInvalidContent means extraction produced text the validator refused
	// to forward into generation. Terminal for the request.
	ErrInvalidContent = errors.New("invalid content")

	// ErrInsufficientQuality means more than half of the section workers
	// ended in fallback or failure.
	ErrInsufficientQuality = errors.New("insufficient generation quality")

	// ErrAssemblyEmpty means no section survived assembly filtering.
	ErrAssemblyEmpty = errors.New("no sections survived assembly")
)

// PipelineError wraps one of the sentinel kinds with a human-readable
// remediation message for the caller.
type PipelineError struct {
	Kind        error
	Detail      string
	Remediation string
}

// Error renders the kind, detail, and remediation hint as one message.
func (e *PipelineError) Error() string {
	if e.Remediation == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Kind, e.Detail, e.Remediation)
}

// Unwrap exposes the sentinel kind for errors.Is.
func (e *PipelineError) Unwrap() error {
	return e.Kind
}

// NewPipelineError builds a typed terminal error.
func NewPipelineError(kind error, detail, remediation string) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail, Remediation: remediation}
}
