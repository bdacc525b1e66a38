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

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/api"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/commands"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/services"
)

// stubPipeline is a cor.Command that either emits a fixed document or records
// a fixed error.
type stubPipeline struct {
	cor.BaseCommand
	doc *model.BlogDocument
	err error
}

func newStubPipeline(doc *model.BlogDocument, err error) *stubPipeline {
	return &stubPipeline{BaseCommand: *cor.NewBaseCommand("stub-pipeline"), doc: doc, err: err}
}

func (s *stubPipeline) Execute(context cor.Context) {
	if s.err != nil {
		context.AddError(s.GetName(), s.err)
		return
	}
	context.Add(commands.BlogDocumentParamName, s.doc)
}

func newTestRouter(pipeline cor.Command) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.HealthRouter(r)
	api.BlogRouter(r.Group("/api/v1"), services.NewBlogService(pipeline))
	return r
}

func postBlogs(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(newStubPipeline(nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateEndpointReturnsDocument(t *testing.T) {
	doc := &model.BlogDocument{
		Content:  "# A Title\n\nBody.\n",
		Sections: map[string]string{"title": "# A Title\n"},
		Metadata: map[string]string{"video_id": "dQw4w9WgXcQ"},
		Stats:    map[string]interface{}{"sections_total": 1},
	}
	r := newTestRouter(newStubPipeline(doc, nil))

	rec := postBlogs(t, r, `{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.BlogDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, "dQw4w9WgXcQ", got.Metadata["video_id"])
}

func TestGenerateEndpointRejectsMissingURL(t *testing.T) {
	r := newTestRouter(newStubPipeline(nil, nil))
	rec := postBlogs(t, r, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateEndpointMapsTypedErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"invalid url", model.NewPipelineError(model.ErrInvalidURL, "bad input", ""), http.StatusBadRequest, "invalid_url"},
		{"invalid content", model.NewPipelineError(model.ErrInvalidContent, "rejected", ""), http.StatusUnprocessableEntity, "invalid_content"},
		{"insufficient quality", model.NewPipelineError(model.ErrInsufficientQuality, "5 of 8 failed", ""), http.StatusBadGateway, "insufficient_quality"},
		{"assembly empty", model.NewPipelineError(model.ErrAssemblyEmpty, "nothing survived", ""), http.StatusBadGateway, "assembly_empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(newStubPipeline(nil, tc.err))
			rec := postBlogs(t, r, `{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantKind, resp["kind"])
		})
	}
}
