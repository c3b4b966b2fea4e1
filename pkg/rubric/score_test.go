package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLetterForBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Letter
	}{
		{100, LetterA},
		{90, LetterA},
		{89.999, LetterAMinus},
		{85, LetterAMinus},
		{84.99, LetterBPlus},
		{80, LetterBPlus},
		{75, LetterB},
		{70, LetterBMinus},
		{65, LetterCPlus},
		{60, LetterC},
		{55, LetterCMinus},
		{54.5, LetterD},
		{50, LetterD},
		{49.999, LetterF},
		{0, LetterF},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, LetterFor(tc.score), "score %v", tc.score)
	}
}

func TestScoreFeaturesFullMarks(t *testing.T) {
	features := Features{
		WordCount:             320,
		SentenceCount:         20,
		AverageSentenceLength: 16,
		Relevance:             0.25,
		TransitionsUsed:       2,
	}

	score, err := ScoreFeatures(features, "It matters because it does.", Grade12)
	require.NoError(t, err)
	require.Equal(t, SubScores{Length: 20, Relevance: 30, Structure: 20, Transitions: 15, Evidence: 15}, score.SubScores)
	require.Equal(t, 100.0, score.Numeric)
	require.Equal(t, LetterA, score.Letter)
}

func TestScoreFeaturesPartialCredit(t *testing.T) {
	features := Features{
		WordCount:             100,
		SentenceCount:         2,
		AverageSentenceLength: 50,
		Relevance:             0.1,
		TransitionsUsed:       1,
	}

	score, err := ScoreFeatures(features, "No supporting phrase here.", Grade10)
	require.NoError(t, err)
	require.InDelta(t, 10.0, score.SubScores.Length, 1e-9)
	require.InDelta(t, 3.0, score.SubScores.Relevance, 1e-9)
	require.Equal(t, 10.0, score.SubScores.Structure)
	require.Equal(t, 7.0, score.SubScores.Transitions)
	require.Zero(t, score.SubScores.Evidence)
	require.InDelta(t, 30.0, score.Numeric, 1e-9)
	require.Equal(t, LetterF, score.Letter)
}

func TestScoreFeaturesStructureRangeIsInclusive(t *testing.T) {
	for _, avg := range []float64{12, 20, 28} {
		score, err := ScoreFeatures(Features{AverageSentenceLength: avg, SentenceCount: 1}, "", Grade9)
		require.NoError(t, err)
		require.Equal(t, MaxStructureScore, score.SubScores.Structure, "avg %v", avg)
	}
	for _, avg := range []float64{0, 11.99, 28.01, 150} {
		score, err := ScoreFeatures(Features{AverageSentenceLength: avg, SentenceCount: 1}, "", Grade9)
		require.NoError(t, err)
		require.Equal(t, 10.0, score.SubScores.Structure, "avg %v", avg)
	}
}

func TestScoreFeaturesEvidenceIsCaseSensitive(t *testing.T) {
	features := Features{SentenceCount: 1}

	lower, err := ScoreFeatures(features, "this shows the point", College)
	require.NoError(t, err)
	require.Equal(t, MaxEvidenceScore, lower.SubScores.Evidence)

	upper, err := ScoreFeatures(features, "Because I said so. This Shows nothing.", College)
	require.NoError(t, err)
	require.Zero(t, upper.SubScores.Evidence)
}

func TestScoreFeaturesRejectsUnknownLevel(t *testing.T) {
	_, err := ScoreFeatures(Features{SentenceCount: 1}, "text", GradeLevel("8"))
	require.ErrorIs(t, err, ErrInvalidGradeLevel)
}

func TestScoreFeaturesStaysWithinRange(t *testing.T) {
	inputs := []Features{
		{},
		{WordCount: 10000, SentenceCount: 1, AverageSentenceLength: 10000, Relevance: 1, TransitionsUsed: 9},
		{WordCount: 1, SentenceCount: 1, AverageSentenceLength: 1},
	}
	for _, level := range GradeLevels() {
		for _, features := range inputs {
			score, err := ScoreFeatures(features, "because", level)
			require.NoError(t, err)
			require.GreaterOrEqual(t, score.Numeric, 0.0)
			require.LessOrEqual(t, score.Numeric, 100.0)
			require.InDelta(t, score.SubScores.Total(), score.Numeric, 1e-9)
		}
	}
}

func TestGradeLevelTables(t *testing.T) {
	expected := map[GradeLevel]int{Grade9: 150, Grade10: 200, Grade11: 250, Grade12: 300, College: 350}
	for level, words := range expected {
		got, err := ExpectedLength(level)
		require.NoError(t, err)
		require.Equal(t, words, got)

		tone, err := Tone(level)
		require.NoError(t, err)
		require.NotEmpty(t, tone)
	}

	_, err := ExpectedLength("kindergarten")
	require.ErrorIs(t, err, ErrInvalidGradeLevel)
}

func TestParseGradeLevel(t *testing.T) {
	level, err := ParseGradeLevel("  College ")
	require.NoError(t, err)
	require.Equal(t, College, level)

	level, err = ParseGradeLevel("11")
	require.NoError(t, err)
	require.Equal(t, Grade11, level)

	_, err = ParseGradeLevel("13")
	require.ErrorIs(t, err, ErrInvalidGradeLevel)

	_, err = ParseGradeLevel("")
	require.ErrorIs(t, err, ErrInvalidGradeLevel)
}
