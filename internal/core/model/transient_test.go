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

package model_test

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
)

func TestTokenize(t *testing.T) {
	tokens := model.Tokenize("It's the Scheduler, again -- the SCHEDULER!")
	assert.DeepEqual(t, []string{"it's", "the", "scheduler", "again", "the", "scheduler"}, tokens)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Equal(t, 0, len(model.Tokenize("")))
	assert.Equal(t, 0, len(model.Tokenize(" ,.! ")))
}

func TestNewTranscriptComputesStats(t *testing.T) {
	tr := model.NewTranscript("dQw4w9WgXcQ", "captions", "the cat sat on the mat")
	assert.Equal(t, "dQw4w9WgXcQ", tr.VideoID)
	assert.Equal(t, "captions", tr.Strategy)
	assert.Equal(t, 22, tr.Chars)
	assert.Equal(t, 6, tr.Words)
	assert.Equal(t, 5, tr.UniqueWords)
}

func TestBlogDocumentWordCount(t *testing.T) {
	doc := &model.BlogDocument{Content: "# Title\n\nSome body text here.\n"}
	assert.Equal(t, 6, doc.WordCount())
}

func TestPipelineErrorMatchesSentinel(t *testing.T) {
	err := model.NewPipelineError(model.ErrInvalidContent, "too short", "try another video")
	assert.True(t, errors.Is(err, model.ErrInvalidContent))
	assert.False(t, errors.Is(err, model.ErrInvalidURL))
	assert.Equal(t, "invalid content: too short (try another video)", err.Error())
}

func TestPipelineErrorWithoutRemediation(t *testing.T) {
	err := model.NewPipelineError(model.ErrAssemblyEmpty, "nothing survived", "")
	assert.Equal(t, "no sections survived assembly: nothing survived", err.Error())
}
