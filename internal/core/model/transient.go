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

// Package model defines the data structures that flow through the blog
// generation pipeline, from the extracted transcript to the assembled
// document, plus the typed errors the pipeline surfaces to callers.
package model

import (
	"strings"
	"unicode"
)

// Transcript is the validated text payload handed to every section worker.
// It is immutable once validated; workers never mutate shared content.
type Transcript struct {
	VideoID     string `json:"video_id"`
	Text        string `json:"text"`
	Strategy    string `json:"strategy"` // Name of the extraction strategy that produced the text.
	Chars       int    `json:"chars"`
	Words       int    `json:"words"`
	UniqueWords int    `json:"unique_words"`
}

// NewTranscript computes the length statistics for a piece of extracted text.
func NewTranscript(videoID, strategy, text string) *Transcript {
	words := Tokenize(text)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return &Transcript{
		VideoID:     videoID,
		Text:        text,
		Strategy:    strategy,
		Chars:       len(text),
		Words:       len(words),
		UniqueWords: len(unique),
	}
}

// Tokenize lower-cases the input and splits it into word tokens, dropping
// punctuation-only fragments.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

// Section is the outcome of exactly one worker invocation, including its
// retry. A failed section carries its fallback text and the failure reason.
type Section struct {
	Name      string `json:"name"`
	Text      string `json:"text"`
	Succeeded bool   `json:"succeeded"`
	Reason    string `json:"reason,omitempty"`
}

// SectionSet is the aggregate the orchestrator hands to the assembler.
type SectionSet struct {
	Transcript *Transcript
	Sections   map[string]Section
	// FailedWorkers lists the names of workers that ended in fallback,
	// in no particular order.
	FailedWorkers []string
}

// BlogDocument is the final product of a generation request. It is immutable
// after assembly.
type BlogDocument struct {
	Content    string                 `json:"content"`
	Transcript string                 `json:"transcript"`
	Sections   map[string]string      `json:"sections"`
	Metadata   map[string]string      `json:"metadata"`
	Stats      map[string]interface{} `json:"stats"`
}

// WordCount returns the number of word tokens in the assembled content.
func (d *BlogDocument) WordCount() int {
	return len(strings.Fields(d.Content))
}
