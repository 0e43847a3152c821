// Package lexical scores legacy free-text feedback through a word-polarity
// capability.
package lexical

import "context"

// Analysis is the output of a polarity lookup.
type Analysis struct {
	// Score is the summed polarity of all scored words.
	Score float64 `json:"score"`

	// Comparative is Score divided by the number of tokens.
	Comparative float64 `json:"comparative"`

	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Polarity analyzes free text. Implementations must be deterministic for a
// given input.
type Polarity interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}

// PolarityFunc adapts a function to Polarity.
type PolarityFunc func(ctx context.Context, text string) (Analysis, error)

// Analyze calls f.
func (f PolarityFunc) Analyze(ctx context.Context, text string) (Analysis, error) {
	return f(ctx, text)
}
