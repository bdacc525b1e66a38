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

package main

import (
	"context"
	"log"
	"os"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/services"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/workflow"
)

// StateManager holds the shared components of the running server.
type StateManager struct {
	config      *cloud.Config
	cloud       *cloud.ServiceClients
	blogService *services.BlogService
}

var state = &StateManager{}

// SetupOS points the config loader at the local configs directory when the
// environment does not already say where to look.
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig loads the TOML configuration once and caches it.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to prepare environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState builds the service clients, the generation pipeline, and the blog
// service the HTTP handlers depend on.
func InitState(ctx context.Context) {
	config := GetConfig()

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = serviceClients

	pipeline := workflow.NewBlogGenerationWorkflow(config, serviceClients)
	state.blogService = services.NewBlogService(pipeline)
}
