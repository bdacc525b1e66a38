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

// Package api defines the HTTP surface of the blog generator. Handlers
// translate between the JSON wire format and the blog service, and map the
// pipeline's typed errors onto HTTP status codes.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/services"
)

// generateRequest is the body of POST /blogs.
type generateRequest struct {
	URL string `json:"url" binding:"required"`
}

// errorResponse is the body returned on any failed request.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// BlogRouter registers the blog generation endpoints on the given group.
func BlogRouter(r *gin.RouterGroup, svc *services.BlogService) {
	blogs := r.Group("/blogs")
	{
		blogs.POST("", func(c *gin.Context) {
			var req generateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, errorResponse{Error: "body must be {\"url\": \"...\"}", Kind: "bad_request"})
				return
			}

			doc, err := svc.Generate(c.Request.Context(), req.URL)
			if err != nil {
				status, kind := statusForError(err)
				c.JSON(status, errorResponse{Error: err.Error(), Kind: kind})
				return
			}
			c.JSON(http.StatusCreated, doc)
		})
	}
}

// HealthRouter registers the liveness endpoint.
func HealthRouter(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// statusForError maps the pipeline's typed failure kinds to HTTP statuses.
// Caller mistakes are 4xx; upstream generation trouble is 502.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidURL):
		return http.StatusBadRequest, "invalid_url"
	case errors.Is(err, model.ErrInvalidContent):
		return http.StatusUnprocessableEntity, "invalid_content"
	case errors.Is(err, model.ErrInsufficientQuality):
		return http.StatusBadGateway, "insufficient_quality"
	case errors.Is(err, model.ErrAssemblyEmpty):
		return http.StatusBadGateway, "assembly_empty"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
