package rubric

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGradeLevel indicates a grade level outside the recognised set.
var ErrInvalidGradeLevel = errors.New("invalid grade level")

// GradeLevel identifies the academic level an essay is written for.
type GradeLevel string

const (
	// Grade9 is ninth grade.
	Grade9 GradeLevel = "9"
	// Grade10 is tenth grade.
	Grade10 GradeLevel = "10"
	// Grade11 is eleventh grade.
	Grade11 GradeLevel = "11"
	// Grade12 is twelfth grade.
	Grade12 GradeLevel = "12"
	// College is undergraduate level.
	College GradeLevel = "college"
)

type levelProfile struct {
	expectedWords int
	tone          string
}

var gradeLevelOrder = []GradeLevel{Grade9, Grade10, Grade11, Grade12, College}

var levelProfiles = map[GradeLevel]levelProfile{
	Grade9:  {expectedWords: 150, tone: "simple and clear"},
	Grade10: {expectedWords: 200, tone: "organized with basic evidence"},
	Grade11: {expectedWords: 250, tone: "analytic with explanations"},
	Grade12: {expectedWords: 300, tone: "insightful and well-structured"},
	College: {expectedWords: 350, tone: "concise, structured, and evidence-based"},
}

// ParseGradeLevel normalises raw input into a recognised GradeLevel.
func ParseGradeLevel(raw string) (GradeLevel, error) {
	level := GradeLevel(strings.ToLower(strings.TrimSpace(raw)))
	if !level.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGradeLevel, raw)
	}
	return level, nil
}

// GradeLevels lists the recognised levels from youngest to oldest.
func GradeLevels() []GradeLevel {
	levels := make([]GradeLevel, len(gradeLevelOrder))
	copy(levels, gradeLevelOrder)
	return levels
}

// Valid reports whether the level is one of the recognised keys.
func (g GradeLevel) Valid() bool {
	_, ok := levelProfiles[g]
	return ok
}

func (g GradeLevel) String() string {
	return string(g)
}

// ExpectedLength returns the word count that earns full length credit at the level.
func ExpectedLength(level GradeLevel) (int, error) {
	profile, ok := levelProfiles[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGradeLevel, string(level))
	}
	return profile.expectedWords, nil
}

// Tone returns the writing tone descriptor used by the sample response.
func Tone(level GradeLevel) (string, error) {
	profile, ok := levelProfiles[level]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGradeLevel, string(level))
	}
	return profile.tone, nil
}
