package rubric

import "strings"

// TipID names a feedback rule.
type TipID string

// Feedback rule identifiers in evaluation order.
const (
	TipLength         TipID = "length"
	TipRelevance      TipID = "relevance"
	TipTransitions    TipID = "transitions"
	TipRunOn          TipID = "run_on"
	TipEvidence       TipID = "evidence"
	TipPromptCoverage TipID = "prompt_coverage"
	TipStrongWriting  TipID = "strong_writing"
)

const (
	shortResponseWords  = 180
	lowRelevance        = 0.20
	runOnSentenceLength = 28.0
)

// Tip is a single improvement suggestion.
type Tip struct {
	ID      TipID  `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
}

var tipMessages = map[TipID]string{
	TipLength:         "Your response is a bit short. Adding more detail or evidence would strengthen it.",
	TipRelevance:      "Your writing does not fully address the prompt. Re-read the question and make sure you respond directly.",
	TipTransitions:    "Add transition words to improve flow (for example, however, therefore).",
	TipRunOn:          "Some sentences are too long. Break them up for clarity.",
	TipEvidence:       "Try explaining *why* your evidence matters. Use phrases like 'this shows that…'.",
	TipPromptCoverage: "Re-read each part of the prompt and make sure your writing answers *every* part.",
	TipStrongWriting:  "Strong writing overall! You can strengthen your response by adding one more piece of evidence or deeper analysis.",
}

type feedbackInput struct {
	features   Features
	assignment string
	prompt     string
}

type feedbackRule struct {
	id      TipID
	applies func(in feedbackInput) bool
}

var feedbackRules = []feedbackRule{
	{TipLength, func(in feedbackInput) bool { return in.features.WordCount < shortResponseWords }},
	{TipRelevance, func(in feedbackInput) bool { return in.features.Relevance < lowRelevance }},
	{TipTransitions, func(in feedbackInput) bool { return in.features.TransitionsUsed < transitionTarget }},
	{TipRunOn, func(in feedbackInput) bool { return in.features.AverageSentenceLength > runOnSentenceLength }},
	{TipEvidence, func(in feedbackInput) bool { return !mentionsEvidence(in.assignment) }},
	{TipPromptCoverage, func(in feedbackInput) bool {
		return strings.TrimSpace(in.prompt) != "" && in.features.Relevance < lowRelevance
	}},
}

// TipMessage returns the text for a tip identifier.
func TipMessage(id TipID) string {
	return tipMessages[id]
}

// GenerateFeedback runs the feedback rules in priority order. When no rule fires the
// result holds exactly the strong writing tip, so it is never empty.
func GenerateFeedback(features Features, assignment, prompt string) []Tip {
	in := feedbackInput{features: features, assignment: assignment, prompt: prompt}

	tips := make([]Tip, 0, len(feedbackRules))
	for _, rule := range feedbackRules {
		if rule.applies(in) {
			tips = append(tips, newTip(rule.id))
		}
	}

	if len(tips) == 0 {
		tips = append(tips, newTip(TipStrongWriting))
	}

	return tips
}

func newTip(id TipID) Tip {
	return Tip{ID: id, Message: tipMessages[id]}
}

// mentionsEvidence is the lenient, case-insensitive counterpart of evidenceScore.
func mentionsEvidence(assignment string) bool {
	lower := strings.ToLower(assignment)
	for _, phrase := range evidencePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
