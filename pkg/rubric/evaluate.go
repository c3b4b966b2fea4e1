package rubric

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyAssignment indicates there is no assignment text to grade.
var ErrEmptyAssignment = errors.New("assignment text is empty")

// Disclaimer accompanies every evaluation shown to a student.
const Disclaimer = "Scores are estimated based on rubric-like features."

// Result bundles everything produced for one assignment.
type Result struct {
	Score    Score    `json:"score" yaml:"score"`
	Features Features `json:"features" yaml:"features"`
	Feedback []Tip    `json:"feedback" yaml:"feedback"`
}

// Evaluate grades assignment against prompt at level. Inputs are validated first, so
// a returned error never comes with a partial result.
func Evaluate(assignment, prompt string, level GradeLevel) (Result, error) {
	if strings.TrimSpace(assignment) == "" {
		return Result{}, ErrEmptyAssignment
	}
	if !level.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidGradeLevel, string(level))
	}

	features := ExtractFeatures(assignment, prompt)
	score, err := ScoreFeatures(features, assignment, level)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Score:    score,
		Features: features,
		Feedback: GenerateFeedback(features, assignment, prompt),
	}, nil
}
