package rubric

import (
	"regexp"
	"strings"
)

var wordToken = regexp.MustCompile(`\b[a-z']+\b`)

// PromptRelevance reports the share of distinct prompt words that also appear in the
// assignment. A blank prompt, or one without any word tokens, scores 0.
func PromptRelevance(prompt, assignment string) float64 {
	if strings.TrimSpace(prompt) == "" {
		return 0
	}

	promptWords := tokenSet(prompt)
	if len(promptWords) == 0 {
		return 0
	}

	assignmentWords := tokenSet(assignment)
	overlap := 0
	for word := range promptWords {
		if _, ok := assignmentWords[word]; ok {
			overlap++
		}
	}

	return float64(overlap) / float64(len(promptWords))
}

func tokenSet(text string) map[string]struct{} {
	matches := wordToken.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		set[match] = struct{}{}
	}
	return set
}
