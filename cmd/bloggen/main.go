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

// Command bloggen generates a blog post from a single video URL and writes it
// to a Markdown file.
//
// Usage:
//
//	bloggen [-o blog_post.md] [-v] <video-url>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/services"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/workflow"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/telemetry"
)

const previewChars = 500

func main() {
	output := flag.String("o", "blog_post.md", "output file path")
	verbose := flag.Bool("v", false, "print a preview of the generated post")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-o output.md] [-v] <video-url>\n", os.Args[0])
		os.Exit(2)
	}
	videoURL := flag.Arg(0)

	telemetry.SetupLogging()

	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		os.Setenv(cloud.EnvConfigRuntime, "local")
	}

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	ctx := context.Background()
	serviceClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		slog.Error("failed to create service clients", "error", err)
		os.Exit(1)
	}

	svc := services.NewBlogService(workflow.NewBlogGenerationWorkflow(config, serviceClients))

	fmt.Printf("Processing: %s\n", videoURL)
	doc, err := svc.Generate(ctx, videoURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := svc.Save(doc, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Blog post generated successfully.")
	fmt.Printf("Output: %s\n", *output)
	fmt.Printf("Word count: ~%d\n", doc.WordCount())

	if *verbose {
		fmt.Println("\n--- PREVIEW ---")
		preview := doc.Content
		if len(preview) > previewChars {
			preview = preview[:previewChars] + "..."
		}
		fmt.Println(preview)
	}
}
