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

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/validate"
)

const naturalProse = "In this video we walk through how the scheduler decides which task " +
	"runs next, why the run queue is kept per core, and what happens when a task blocks " +
	"on a slow device. We then look at the fairness accounting that was added to keep " +
	"interactive work responsive while batch jobs make steady progress in the background."

func TestValidatorAcceptsNaturalProse(t *testing.T) {
	v := validate.NewValidator(0, 0, 0, 0)
	res := v.Check(naturalProse)
	assert.True(t, res.OK, "reasons: %v", res.Reasons)
	assert.Empty(t, res.Reasons)
}

func TestValidatorRejectsEmpty(t *testing.T) {
	v := validate.NewValidator(0, 0, 0, 0)
	for _, in := range []string{"", "   ", "\n\t"} {
		res := v.Check(in)
		assert.False(t, res.OK)
		assert.Equal(t, []string{"empty after trimming"}, res.Reasons)
	}
}

func TestValidatorRejectsBelowLengthFloor(t *testing.T) {
	v := validate.NewValidator(150, 0, 0, 0)
	res := v.Check("short but real text about a thing")
	assert.False(t, res.OK)
}

func TestValidatorRejectsFailureMarkersRegardlessOfLength(t *testing.T) {
	// Long, otherwise-plausible prose that embeds a failure report must
	// still be rejected.
	text := naturalProse + " Unable to extract content for this video from any source."
	v := validate.NewValidator(0, 0, 0, 0)
	res := v.Check(text)
	assert.False(t, res.OK)
	assert.Contains(t, strings.Join(res.Reasons, "; "), "failure marker")
}

func TestValidatorRejectsDegenerateRepetition(t *testing.T) {
	// Plenty of characters and words, almost no vocabulary.
	text := strings.Repeat("buy now buy now ", 40)
	v := validate.NewValidator(0, 0, 0, 0)
	res := v.Check(text)
	assert.False(t, res.OK)
	assert.Contains(t, strings.Join(res.Reasons, "; "), "unique word count")
}

func TestValidatorRejectsKeywordDump(t *testing.T) {
	// Long and diverse, but no function words: not natural prose.
	text := "golang kubernetes docker terraform ansible prometheus grafana jenkins gitlab " +
		"redis postgres kafka rabbitmq nginx envoy istio linkerd consul vault nomad " +
		"elasticsearch logstash kibana fluentd jaeger zipkin opentelemetry argocd flux helm"
	v := validate.NewValidator(0, 0, 0, 0)
	res := v.Check(text)
	assert.False(t, res.OK)
	assert.Contains(t, strings.Join(res.Reasons, "; "), "function word count")
}

func TestValidatorCollectsAllReasons(t *testing.T) {
	v := validate.NewValidator(0, 0, 0, 0)
	res := v.Check("video unavailable")
	assert.False(t, res.OK)
	// Short, few words, few unique words, failure marker, few function words.
	assert.GreaterOrEqual(t, len(res.Reasons), 4)
}
