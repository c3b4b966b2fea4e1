package rubric

import "strings"

var transitionMarkers = []string{
	"however",
	"therefore",
	"moreover",
	"in contrast",
	"for example",
	"because",
	"consequently",
	"on the other hand",
	"furthermore",
}

// Transitions returns the recognised discourse markers.
func Transitions() []string {
	markers := make([]string, len(transitionMarkers))
	copy(markers, transitionMarkers)
	return markers
}

// TransitionCount counts how many distinct markers occur in text. Matching is
// case-insensitive substring containment, so repeated markers count once.
func TransitionCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, marker := range transitionMarkers {
		if strings.Contains(lower, marker) {
			count++
		}
	}
	return count
}
