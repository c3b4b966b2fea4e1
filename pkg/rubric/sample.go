package rubric

import (
	"fmt"
	"strings"
)

// SampleGuidance is returned in place of an outline when no prompt is supplied.
const SampleGuidance = "Please enter a prompt to generate a sample response."

// SampleExcerptLength is the number of prompt characters quoted in the thesis.
const SampleExcerptLength = 80

// SampleSection is one part of the outline.
type SampleSection struct {
	Heading string `json:"heading" yaml:"heading"`
	Body    string `json:"body" yaml:"body"`
}

// Sample is a templated outline response for a prompt.
type Sample struct {
	GradeLevel GradeLevel      `json:"grade_level,omitempty" yaml:"grade_level,omitempty"`
	Excerpt    string          `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Tone       string          `json:"tone,omitempty" yaml:"tone,omitempty"`
	Sections   []SampleSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	Guidance   bool            `json:"guidance" yaml:"guidance"`
}

var sampleOutline = []SampleSection{
	{Heading: "Thesis", Body: "This response argues that {excerpt}..."},
	{Heading: "Paragraph 1", Body: "Introduce your main point and explain how it connects to the prompt."},
	{Heading: "Paragraph 2", Body: "Add evidence, explain its importance, and relate it back to the main argument."},
	{Heading: "Conclusion", Body: "Summarize the argument and restate the main idea in a deeper way."},
	{Heading: "Writing tone", Body: "{tone}."},
}

// GenerateSample builds the outline for prompt at level. A blank prompt yields the
// guidance sample whatever the level.
func GenerateSample(prompt string, level GradeLevel) (Sample, error) {
	if strings.TrimSpace(prompt) == "" {
		return Sample{Guidance: true}, nil
	}

	tone, err := Tone(level)
	if err != nil {
		return Sample{}, err
	}

	excerpt := Excerpt(prompt, SampleExcerptLength)
	fill := strings.NewReplacer("{excerpt}", excerpt, "{tone}", tone)

	sections := make([]SampleSection, 0, len(sampleOutline))
	for _, section := range sampleOutline {
		sections = append(sections, SampleSection{
			Heading: section.Heading,
			Body:    fill.Replace(section.Body),
		})
	}

	return Sample{
		GradeLevel: level,
		Excerpt:    excerpt,
		Tone:       tone,
		Sections:   sections,
	}, nil
}

// Title is the outline heading, e.g. "Sample Response (10 level)".
func (s Sample) Title() string {
	if s.Guidance {
		return ""
	}
	return fmt.Sprintf("Sample Response (%s level)", s.GradeLevel)
}

// Text renders the sample as plain text.
func (s Sample) Text() string {
	if s.Guidance {
		return SampleGuidance
	}

	var b strings.Builder
	b.WriteString(s.Title())
	b.WriteString(":\n")
	for _, section := range s.Sections {
		b.WriteString("\n")
		b.WriteString(section.Heading)
		b.WriteString(": ")
		b.WriteString(section.Body)
		b.WriteString("\n")
	}
	return b.String()
}

// Excerpt returns the first limit characters of text with no word boundary handling.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
