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

// Package cor (Chain of Responsibility) provides the building blocks for the
// blog-generation pipeline: commands are atomic units of work, chains execute
// commands in order, and a shared context carries state between them.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys used by a chain to pipe the primary output of
// one command into the primary input of the next.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state for a single pipeline execution. Commands read
// their inputs from it, write their outputs to it, and record errors on it.
type Context interface {
	// SetContext sets the standard Go context used for cancellation and
	// trace propagation.
	SetContext(context context.Context)

	// GetContext returns the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. Returns the Context for chaining.
	Add(key string, value interface{}) Context

	// AddError records an error under the name of the command that raised it.
	AddError(key string, err error)

	// GetErrors returns all errors collected so far, keyed by command name.
	GetErrors() map[string]error

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes the value stored under key.
	Remove(key string)

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool

	// AddTempFile tracks a temporary file (for example a downloaded audio
	// file) so Close can remove it when the pipeline finishes.
	AddTempFile(file string)

	// GetTempFiles returns the tracked temporary file paths.
	GetTempFiles() []string

	// Close removes all tracked temporary files. Defer it at the start of a
	// pipeline run.
	Close()
}

// Executable is anything with core execution logic driven by a Context.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic, named, independently testable unit of pipeline work.
type Command interface {
	Executable

	// GetName returns the command name used for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key holding this command's input.
	GetInputParam() string

	// GetOutputParam returns the context key this command writes its output to.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains can be nested.
type Chain interface {
	Command

	// ContinueOnFailure controls whether the chain keeps executing commands
	// after one of them records an error. The default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
