package lexical

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

var (
	// ErrEmptyLexicon is returned when a lexicon has no words.
	ErrEmptyLexicon = errors.New("lexicon has no words")

	// ErrWordScore is returned for word scores outside [-5, 5].
	ErrWordScore = errors.New("word score out of range")
)

// negators flip the sign of the word right after them. "n't" is how prose
// splits contractions such as "don't".
var negators = map[string]bool{
	"not":    true,
	"no":     true,
	"never":  true,
	"n't":    true,
	"dont":   true,
	"don't":  true,
	"cannot": true,
	"isnt":   true,
	"wasnt":  true,
}

// Lexicon is a word-list Polarity in the AFINN style.
type Lexicon struct {
	words map[string]int
}

// NewLexicon builds a lexicon from exactly the given words. Keys are
// lowercased.
func NewLexicon(words map[string]int) (*Lexicon, error) {
	if len(words) == 0 {
		return nil, ErrEmptyLexicon
	}
	l := &Lexicon{words: make(map[string]int, len(words))}
	for w, score := range words {
		if score < -5 || score > 5 {
			return nil, fmt.Errorf("%w: %q scores %d", ErrWordScore, w, score)
		}
		l.words[strings.ToLower(w)] = score
	}
	return l, nil
}

// DefaultLexicon returns the built-in word list merged with extra. Extra
// words override built-in ones.
func DefaultLexicon(extra map[string]int) (*Lexicon, error) {
	words := make(map[string]int, len(defaultWords)+len(extra))
	for w, s := range defaultWords {
		words[w] = s
	}
	for w, s := range extra {
		words[w] = s
	}
	return NewLexicon(words)
}

// Len returns the number of known words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Analyze scores text word by word.
func (l *Lexicon) Analyze(ctx context.Context, text string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	result := Analysis{Positive: []string{}, Negative: []string{}}

	tokens, err := tokenize(text)
	if err != nil {
		return Analysis{}, err
	}
	if len(tokens) == 0 {
		return result, nil
	}

	for i, tok := range tokens {
		score, ok := l.words[tok]
		if !ok {
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			score = -score
		}
		switch {
		case score > 0:
			result.Positive = append(result.Positive, tok)
		case score < 0:
			result.Negative = append(result.Negative, tok)
		}
		result.Score += float64(score)
	}
	result.Comparative = result.Score / float64(len(tokens))
	return result, nil
}

// tokenize splits text into lowercased word tokens, dropping punctuation.
func tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}
	var tokens []string
	for _, tok := range doc.Tokens() {
		if !hasWordRune(tok.Text) {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok.Text))
	}
	return tokens, nil
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
