package rubric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func tipIDs(tips []Tip) []TipID {
	ids := make([]TipID, 0, len(tips))
	for _, tip := range tips {
		ids = append(ids, tip.ID)
	}
	return ids
}

func TestGenerateFeedbackFallbackOnly(t *testing.T) {
	features := Features{WordCount: 300, SentenceCount: 17, AverageSentenceLength: 18, Relevance: 1, TransitionsUsed: 3}

	tips := GenerateFeedback(features, "It works because it is tested.", "Why does it work?")
	require.Equal(t, []TipID{TipStrongWriting}, tipIDs(tips))
	require.Equal(t, TipMessage(TipStrongWriting), tips[0].Message)
}

func TestGenerateFeedbackEveryRuleInOrder(t *testing.T) {
	features := Features{WordCount: 40, SentenceCount: 1, AverageSentenceLength: 40, Relevance: 0.1, TransitionsUsed: 0}

	tips := GenerateFeedback(features, "a very long sentence", "Discuss the causes of the war")
	require.Equal(t, []TipID{
		TipLength,
		TipRelevance,
		TipTransitions,
		TipRunOn,
		TipEvidence,
		TipPromptCoverage,
	}, tipIDs(tips))
	for _, tip := range tips {
		require.NotEmpty(t, tip.Message)
	}
}

func TestGenerateFeedbackPromptCoverageNeedsPrompt(t *testing.T) {
	features := Features{WordCount: 400, SentenceCount: 20, AverageSentenceLength: 20, Relevance: 0, TransitionsUsed: 4}

	tips := GenerateFeedback(features, "this shows it", "  ")
	require.Equal(t, []TipID{TipRelevance}, tipIDs(tips))
}

func TestGenerateFeedbackEvidenceIsCaseInsensitive(t *testing.T) {
	features := Features{WordCount: 400, SentenceCount: 20, AverageSentenceLength: 20, Relevance: 1, TransitionsUsed: 4}

	require.Equal(t, []TipID{TipStrongWriting}, tipIDs(GenerateFeedback(features, "BECAUSE it matters", "p")))
	require.Equal(t, []TipID{TipStrongWriting}, tipIDs(GenerateFeedback(features, "This Shows it", "p")))
	require.Equal(t, []TipID{TipEvidence}, tipIDs(GenerateFeedback(features, "no support", "p")))
}

func TestGenerateFeedbackThresholdEdges(t *testing.T) {
	features := Features{WordCount: 180, SentenceCount: 10, AverageSentenceLength: 28, Relevance: 0.2, TransitionsUsed: 2}

	tips := GenerateFeedback(features, strings.Repeat("because ", 3), "prompt")
	require.Equal(t, []TipID{TipStrongWriting}, tipIDs(tips))
}

func TestGenerateFeedbackNeverEmpty(t *testing.T) {
	inputs := []Features{
		{},
		{WordCount: 1000, SentenceCount: 50, AverageSentenceLength: 20, Relevance: 1, TransitionsUsed: 9},
	}
	for _, features := range inputs {
		tips := GenerateFeedback(features, "because", "")
		require.NotEmpty(t, tips)
		require.LessOrEqual(t, len(tips), 6)
	}
}
