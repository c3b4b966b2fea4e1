package rubric

// Features are the lexical measurements taken from one assignment.
type Features struct {
	WordCount             int     `json:"word_count" yaml:"word_count"`
	SentenceCount         int     `json:"sentence_count" yaml:"sentence_count"`
	AverageSentenceLength float64 `json:"average_sentence_length" yaml:"average_sentence_length"`
	Relevance             float64 `json:"relevance" yaml:"relevance"`
	TransitionsUsed       int     `json:"transitions_used" yaml:"transitions_used"`
}

// ExtractFeatures measures the assignment, using the prompt for relevance.
func ExtractFeatures(assignment, prompt string) Features {
	words := WordCount(assignment)
	sentences := SentenceCount(assignment)

	return Features{
		WordCount:             words,
		SentenceCount:         sentences,
		AverageSentenceLength: float64(words) / float64(sentences),
		Relevance:             PromptRelevance(prompt, assignment),
		TransitionsUsed:       TransitionCount(assignment),
	}
}
