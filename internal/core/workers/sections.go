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

package workers

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/cloud"
)

// Section name constants. SectionSEO is special: its output becomes document
// metadata and never appears in the body.
const (
	SectionTitle      = "title"
	SectionIntro      = "intro"
	SectionKeyPoints  = "key_points"
	SectionQuotes     = "quotes"
	SectionSummary    = "summary"
	SectionConclusion = "conclusion"
	SectionSEO        = "seo"
	SectionTags       = "tags"
)

// sectionSpec carries the built-in definition of one section worker. The
// prompt template and acceptance policy can be overridden per section from
// configuration; the formatter cannot, since it defines the output contract.
type sectionSpec struct {
	name         string
	prompt       string
	excerptChars int
	minLength    int
	fallback     string
	formatter    func(raw string) string
}

// builtinSections is the registration order. It also fixes the fan-out size
// the orchestrator's majority threshold is computed from.
var builtinSections = []sectionSpec{
	{
		name: SectionTitle,
		prompt: `Create an SEO-optimized, click-worthy title for a blog post based on this video transcript.

Requirements:
- 50-60 characters ideal for SEO
- Include main keyword/topic
- Make it compelling and specific
- Avoid clickbait, be accurate

Transcript excerpt: {{.Transcript}}

Return only the title, no quotes or extra text.`,
		excerptChars: 800,
		minLength:    10,
		fallback:     "# Insights from This Video\n",
		formatter:    formatTitle,
	},
	{
		name: SectionIntro,
		prompt: `Write an engaging introduction paragraph for a blog post based on this video content.

Requirements:
- Hook the reader immediately
- Set context for what they'll learn
- 2-3 sentences maximum
- Connect with the audience

Transcript: {{.Transcript}}

Write only the introduction paragraph.`,
		excerptChars: 1000,
		minLength:    40,
		fallback:     "This post walks through the main ideas covered in the video, with the key takeaways pulled out for quick reading.\n",
		formatter:    formatPlain,
	},
	{
		name: SectionKeyPoints,
		prompt: `Extract 3-5 key points from this video transcript and format them as blog sections.

Requirements:
- Each point should be a clear, actionable insight
- Use H2 headers (##) for each point
- Include 2-3 sentences explaining each point
- Focus on the most valuable takeaways

Transcript: {{.Transcript}}

Format:
## Key Point 1
Explanation...

## Key Point 2
Explanation...`,
		minLength: 80,
		fallback:  "## Key Takeaways\n\nThe video covers several points worth your attention; watch it for the full detail.\n",
		formatter: formatPlain,
	},
	{
		name: SectionQuotes,
		prompt: `Find 2-3 powerful, quotable moments from this transcript.

Requirements:
- Choose impactful, memorable quotes
- Provide brief context for each
- Use markdown blockquote formatting
- Select quotes that capture key insights

Transcript: {{.Transcript}}

Format each as:
> "Exact quote here"

Brief context about why this matters...`,
		minLength: 40,
		fallback:  "## Key Quotes\n\n> The full discussion carries more nuance than any single quote captures.\n",
		formatter: formatQuotes,
	},
	{
		name: SectionSummary,
		prompt: `Write a concise summary section that recaps the main points covered.

Requirements:
- 3-4 bullet points
- Each point should be one clear sentence
- Cover the essential takeaways
- Help readers remember key insights

Transcript: {{.Transcript}}

Use bullet point format with -`,
		minLength: 40,
		fallback:  "## Summary\n\n- The video presents its topic in depth; the sections above capture the highlights.\n",
		formatter: formatSummary,
	},
	{
		name: SectionConclusion,
		prompt: `Write a strong conclusion that gives readers clear next steps.

Requirements:
- Reinforce the main value
- Provide 1-2 specific actions readers can take
- End with a forward-looking statement
- 2-3 sentences total

Based on transcript about: {{.Transcript}}

Write only the conclusion paragraph.`,
		excerptChars: 500,
		minLength:    40,
		fallback:     "## Conclusion\n\nThe ideas above give you a starting point; the original video is the best place to go deeper.\n",
		formatter:    formatConclusion,
	},
	{
		name: SectionSEO,
		prompt: `Generate SEO metadata for this blog post.

Requirements:
- Meta description: 150-160 characters, compelling summary
- 5-7 relevant keywords/phrases
- Focus on search intent

Transcript: {{.Transcript}}

Format:
META_DESCRIPTION: [description]
KEYWORDS: keyword1, keyword2, keyword3, etc.`,
		excerptChars: 800,
		minLength:    20,
		fallback:     "META_DESCRIPTION: A blog post generated from a video transcript.\nKEYWORDS: video, blog, summary",
		formatter:    formatPlainNoNewline,
	},
	{
		name: SectionTags,
		prompt: `Generate 5-8 relevant tags for this content.

Requirements:
- Mix of broad and specific topics
- Include primary subject area
- Consider target audience interests
- Use single words or short phrases

Transcript: {{.Transcript}}

Return only comma-separated tags.`,
		excerptChars: 600,
		minLength:    5,
		fallback:     "---\n**Tags:** #video #blog\n",
		formatter:    formatTags,
	},
}

func formatTitle(raw string) string {
	title := strings.Trim(strings.TrimSpace(raw), `"'`)
	return fmt.Sprintf("# %s\n", title)
}

func formatPlain(raw string) string {
	return strings.TrimSpace(raw) + "\n"
}

func formatPlainNoNewline(raw string) string {
	return strings.TrimSpace(raw)
}

func formatQuotes(raw string) string {
	return fmt.Sprintf("## Key Quotes\n\n%s\n", strings.TrimSpace(raw))
}

func formatSummary(raw string) string {
	return fmt.Sprintf("## Summary\n\n%s\n", strings.TrimSpace(raw))
}

func formatConclusion(raw string) string {
	return fmt.Sprintf("## Conclusion\n\n%s\n", strings.TrimSpace(raw))
}

// formatTags turns comma-separated tags into a hashtag trailer line.
func formatTags(raw string) string {
	var hashtags []string
	for _, tag := range strings.Split(strings.TrimSpace(raw), ",") {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimPrefix(tag, "#")
		if tag == "" {
			continue
		}
		hashtags = append(hashtags, "#"+strings.ReplaceAll(tag, " ", ""))
	}
	if len(hashtags) == 0 {
		return ""
	}
	return fmt.Sprintf("---\n**Tags:** %s\n", strings.Join(hashtags, " "))
}

// NewRegistry builds the full worker set in registration order. Entries in
// overrides (keyed by section name) replace the built-in prompt template,
// excerpt size, acceptance floor, or fallback for that section; zero-valued
// override fields keep the built-in value.
func NewRegistry(overrides map[string]cloud.SectionPrompt) ([]Worker, error) {
	out := make([]Worker, 0, len(builtinSections))
	for _, spec := range builtinSections {
		prompt := spec.prompt
		excerpt := spec.excerptChars
		minLen := spec.minLength
		fallback := spec.fallback

		if o, ok := overrides[spec.name]; ok {
			if o.Template != "" {
				prompt = o.Template
			}
			if o.ExcerptChars > 0 {
				excerpt = o.ExcerptChars
			}
			if o.MinLength > 0 {
				minLen = o.MinLength
			}
			if o.Fallback != "" {
				fallback = o.Fallback
			}
		}

		tmpl, err := template.New(spec.name + "-prompt").Parse(prompt)
		if err != nil {
			return nil, fmt.Errorf("parse %s prompt template: %w", spec.name, err)
		}
		out = append(out, NewSectionWorker(spec.name, tmpl, excerpt, minLen, fallback, spec.formatter))
	}
	return out, nil
}
