package rubric

import "strings"

// WordCount returns the number of whitespace separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount tallies the terminal punctuation marks '.', '!' and '?' anywhere in
// text. The result is floored at 1 so it can always be used as a divisor.
func SentenceCount(text string) int {
	count := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if count == 0 {
		return 1
	}
	return count
}

// AverageSentenceLength divides words by sentences using the counting rules above.
func AverageSentenceLength(text string) float64 {
	return float64(WordCount(text)) / float64(SentenceCount(text))
}
