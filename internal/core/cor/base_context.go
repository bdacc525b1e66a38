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

package cor

import (
	"context"
	"log"
	"os"
)

// BaseContext is the default Context implementation: a property bag for data,
// an error map keyed by command name, and a temp-file list cleaned up on Close.
type BaseContext struct {
	data      map[string]interface{}
	errors    map[string]error
	tempFiles []string
	context   context.Context
}

// NewBaseContext creates an empty context ready for a pipeline run.
func NewBaseContext() Context {
	return &BaseContext{
		data:      make(map[string]interface{}),
		errors:    make(map[string]error),
		tempFiles: make([]string, 0),
	}
}

// SetContext sets the underlying standard Go context.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext returns the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Close removes any temporary files created along the way, such as audio
// downloads awaiting transcription.
func (c *BaseContext) Close() {
	for _, file := range c.GetTempFiles() {
		err := os.Remove(file)
		if err != nil {
			log.Printf("failed to remove temporary file '%s': %v\n", file, err)
		}
	}
}

// Add stores a key-value pair.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddTempFile tracks a file path for cleanup on Close.
func (c *BaseContext) AddTempFile(file string) {
	c.tempFiles = append(c.tempFiles, file)
}

// GetTempFiles returns the tracked temporary file paths.
func (c *BaseContext) GetTempFiles() []string {
	return c.tempFiles
}

// AddError records an error under the name of the command that raised it.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns all recorded errors keyed by command name.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get returns the value stored under key, or nil.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes the value stored under key.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors reports whether any command has recorded an error.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
