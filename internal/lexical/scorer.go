package lexical

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// Classification thresholds on the comparative score.
const (
	PositiveAbove = 0.1
	NegativeBelow = -0.1
)

// Answers are the free-text fields of a legacy record.
type Answers struct {
	Satisfaction       string
	Likes              string
	Improvements       string
	AdditionalComments string
}

// Text joins the fields in their fixed order with single spaces.
func (a Answers) Text() string {
	return strings.Join([]string{a.Satisfaction, a.Likes, a.Improvements, a.AdditionalComments}, " ")
}

// Result is the coarse outcome of legacy scoring. There is no breakdown and
// no insight list on this path.
type Result struct {
	Classification scoring.Classification `json:"classification"`
	Score          float64                `json:"score"`
	Comparative    float64                `json:"comparative"`
	Positive       []string               `json:"positive"`
	Negative       []string               `json:"negative"`
}

// Classify buckets a comparative score.
func Classify(comparative float64) scoring.Classification {
	switch {
	case comparative > PositiveAbove:
		return scoring.Positive
	case comparative < NegativeBelow:
		return scoring.Negative
	}
	return scoring.Neutral
}

// Scorer wraps a Polarity for legacy records.
type Scorer struct {
	polarity Polarity
}

// NewScorer returns a scorer backed by p.
func NewScorer(p Polarity) *Scorer {
	return &Scorer{polarity: p}
}

// Score runs the polarity lookup over the joined answer text.
func (s *Scorer) Score(ctx context.Context, a Answers) (Result, error) {
	analysis, err := s.polarity.Analyze(ctx, a.Text())
	if err != nil {
		return Result{}, fmt.Errorf("polarity lookup: %w", err)
	}
	return Result{
		Classification: Classify(analysis.Comparative),
		Score:          analysis.Score,
		Comparative:    analysis.Comparative,
		Positive:       analysis.Positive,
		Negative:       analysis.Negative,
	}, nil
}
