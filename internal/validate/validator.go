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

// Package validate decides whether extracted text is usable as generation
// input. The extraction chain always returns text, even on total failure, so
// this is the single choke point keeping failure reports and degenerate
// scrapes out of the section workers.
package validate

import (
	"fmt"
	"strings"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/model"
)

// failurePhrases mark text that is an extraction-failure report rather than
// real video content. Matching is case-insensitive substring.
var failurePhrases = []string{
	"unable to extract",
	"could not extract",
	"could not be extracted",
	"no transcript available",
	"video unavailable",
	"video is private",
	"this video is unavailable",
	"sign in to confirm",
}

// functionWords is a small set of common English function words. Natural
// prose of any real length contains several of them; keyword dumps and
// garbled scrapes usually do not.
var functionWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {},
	"with": {}, "that": {}, "this": {}, "it": {}, "as": {}, "by": {},
	"from": {}, "about": {}, "into": {}, "has": {}, "have": {}, "had": {},
}

// Validator holds the acceptance thresholds. Zero values are replaced with
// the reference defaults by NewValidator.
type Validator struct {
	MinLength        int
	MinWords         int
	MinUniqueWords   int
	MinFunctionWords int
}

// NewValidator builds a validator, falling back to reference thresholds for
// any limit left at zero.
func NewValidator(minLength, minWords, minUniqueWords, minFunctionWords int) *Validator {
	v := &Validator{
		MinLength:        minLength,
		MinWords:         minWords,
		MinUniqueWords:   minUniqueWords,
		MinFunctionWords: minFunctionWords,
	}
	if v.MinLength <= 0 {
		v.MinLength = 150
	}
	if v.MinWords <= 0 {
		v.MinWords = 25
	}
	if v.MinUniqueWords <= 0 {
		v.MinUniqueWords = 15
	}
	if v.MinFunctionWords <= 0 {
		v.MinFunctionWords = 6
	}
	return v
}

// Result reports the verdict and, on rejection, every reason that applied.
// Reasons are collected rather than short-circuited so logs show the full
// shape of a bad extraction.
type Result struct {
	OK      bool
	Reasons []string
}

// Check applies every rule to the text. All rules must pass.
func (v *Validator) Check(text string) Result {
	trimmed := strings.TrimSpace(text)
	var reasons []string

	if trimmed == "" {
		return Result{OK: false, Reasons: []string{"empty after trimming"}}
	}
	if len(trimmed) < v.MinLength {
		reasons = append(reasons, fmt.Sprintf("length %d below minimum %d", len(trimmed), v.MinLength))
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range failurePhrases {
		if strings.Contains(lower, phrase) {
			reasons = append(reasons, fmt.Sprintf("contains failure marker %q", phrase))
		}
	}

	words := model.Tokenize(trimmed)
	if len(words) < v.MinWords {
		reasons = append(reasons, fmt.Sprintf("word count %d below minimum %d", len(words), v.MinWords))
	}

	unique := make(map[string]struct{}, len(words))
	functionCount := 0
	for _, w := range words {
		if _, seen := unique[w]; !seen {
			unique[w] = struct{}{}
			if _, isFunction := functionWords[w]; isFunction {
				functionCount++
			}
		}
	}
	if len(unique) < v.MinUniqueWords {
		reasons = append(reasons, fmt.Sprintf("unique word count %d below minimum %d", len(unique), v.MinUniqueWords))
	}
	if functionCount < v.MinFunctionWords {
		reasons = append(reasons, fmt.Sprintf("function word count %d below minimum %d", functionCount, v.MinFunctionWords))
	}

	return Result{OK: len(reasons) == 0, Reasons: reasons}
}
