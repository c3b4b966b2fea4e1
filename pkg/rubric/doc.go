// Package rubric implements the heuristic essay rubric: lexical feature extraction,
// the additive 0-100 score with its letter mapping, improvement tips, and the
// templated sample response outline.
//
// Every function in this package is a pure computation over its arguments and is
// safe for concurrent use.
package rubric
