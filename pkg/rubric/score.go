package rubric

import "strings"

// Letter is an estimated letter grade.
type Letter string

// Letter grades from highest to lowest.
const (
	LetterA      Letter = "A"
	LetterAMinus Letter = "A-"
	LetterBPlus  Letter = "B+"
	LetterB      Letter = "B"
	LetterBMinus Letter = "B-"
	LetterCPlus  Letter = "C+"
	LetterC      Letter = "C"
	LetterCMinus Letter = "C-"
	LetterD      Letter = "D"
	LetterF      Letter = "F"
)

// Sub-score ceilings. They sum to 100.
const (
	MaxLengthScore     = 20.0
	MaxRelevanceScore  = 30.0
	MaxStructureScore  = 20.0
	MaxTransitionScore = 15.0
	MaxEvidenceScore   = 15.0
)

const (
	relevanceTarget     = 0.25
	minSentenceLength   = 12.0
	maxSentenceLength   = 28.0
	offRangeStructure   = 10.0
	transitionTarget    = 2
	pointsPerTransition = 7.0
)

var letterThresholds = []struct {
	min    float64
	letter Letter
}{
	{90, LetterA},
	{85, LetterAMinus},
	{80, LetterBPlus},
	{75, LetterB},
	{70, LetterBMinus},
	{65, LetterCPlus},
	{60, LetterC},
	{55, LetterCMinus},
	{50, LetterD},
}

// evidencePhrases are matched case-sensitively when scoring.
var evidencePhrases = []string{"because", "this shows"}

// SubScores holds the five rubric components.
type SubScores struct {
	Length      float64 `json:"length" yaml:"length"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	Structure   float64 `json:"structure" yaml:"structure"`
	Transitions float64 `json:"transitions" yaml:"transitions"`
	Evidence    float64 `json:"evidence" yaml:"evidence"`
}

// Total sums the components.
func (s SubScores) Total() float64 {
	return s.Length + s.Relevance + s.Structure + s.Transitions + s.Evidence
}

// Score is the numeric rubric estimate and its letter grade.
type Score struct {
	Numeric   float64   `json:"numeric" yaml:"numeric"`
	Letter    Letter    `json:"letter" yaml:"letter"`
	SubScores SubScores `json:"sub_scores" yaml:"sub_scores"`
}

// ScoreFeatures applies the rubric to extracted features. The raw assignment is
// needed for the evidence component and the level for the length target.
func ScoreFeatures(features Features, assignment string, level GradeLevel) (Score, error) {
	expected, err := ExpectedLength(level)
	if err != nil {
		return Score{}, err
	}

	subs := SubScores{
		Length:      lengthScore(features.WordCount, expected),
		Relevance:   relevanceScore(features.Relevance),
		Structure:   structureScore(features.AverageSentenceLength),
		Transitions: transitionScore(features.TransitionsUsed),
		Evidence:    evidenceScore(assignment),
	}

	numeric := subs.Total()
	return Score{
		Numeric:   numeric,
		Letter:    LetterFor(numeric),
		SubScores: subs,
	}, nil
}

// LetterFor maps a numeric score onto the letter scale. Each threshold is inclusive.
func LetterFor(score float64) Letter {
	for _, threshold := range letterThresholds {
		if score >= threshold.min {
			return threshold.letter
		}
	}
	return LetterF
}

func lengthScore(words, expected int) float64 {
	if words >= expected {
		return MaxLengthScore
	}
	return float64(words) / float64(expected) * MaxLengthScore
}

func relevanceScore(relevance float64) float64 {
	if relevance >= relevanceTarget {
		return MaxRelevanceScore
	}
	return relevance * MaxRelevanceScore
}

func structureScore(avgSentence float64) float64 {
	if avgSentence >= minSentenceLength && avgSentence <= maxSentenceLength {
		return MaxStructureScore
	}
	return offRangeStructure
}

func transitionScore(used int) float64 {
	if used >= transitionTarget {
		return MaxTransitionScore
	}
	return float64(used) * pointsPerTransition
}

func evidenceScore(assignment string) float64 {
	for _, phrase := range evidencePhrases {
		if strings.Contains(assignment, phrase) {
			return MaxEvidenceScore
		}
	}
	return 0
}
