// Package analytics folds stored feedback records of both schemas into
// per-product statistics.
package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// ErrInvalidRecord marks a stored record whose result breaks the data model.
var ErrInvalidRecord = errors.New("invalid feedback record")

// sumTolerance bounds float drift between breakdown sums and stored totals.
const sumTolerance = 1e-6

// Canonical is a record's result in the shared 0-100 space.
type Canonical struct {
	Schema         feedback.Schema
	Classification scoring.Classification
	Percentage     float64
	NPS            scoring.NPSBucket
}

// LegacyPercentage maps a comparative score into 0-100, clamped.
func LegacyPercentage(comparative float64) float64 {
	return clamp(comparative*10+50, 0, 100)
}

// Normalize validates a record result and maps it into the canonical space.
func Normalize(s feedback.Sentiment) (Canonical, error) {
	switch s.Schema {
	case feedback.SchemaWeighted:
		if s.Weighted == nil {
			return Canonical{}, fmt.Errorf("%w: weighted record without result", ErrInvalidRecord)
		}
		if err := validateWeighted(s.Weighted); err != nil {
			return Canonical{}, err
		}
		return Canonical{
			Schema:         feedback.SchemaWeighted,
			Classification: s.Weighted.Classification,
			Percentage:     float64(s.Weighted.PercentageScore),
			NPS:            s.Weighted.NPS,
		}, nil
	case feedback.SchemaLegacy:
		if s.Legacy == nil {
			return Canonical{Schema: feedback.SchemaLegacy, Classification: scoring.Neutral, Percentage: scoring.NeutralScore}, nil
		}
		return normalizeLegacy(s.Legacy)
	}
	return Canonical{}, fmt.Errorf("%w: schema %q", ErrInvalidRecord, s.Schema)
}

func normalizeLegacy(l *feedback.LegacySentiment) (Canonical, error) {
	c := Canonical{Schema: feedback.SchemaLegacy}
	switch {
	case l.Comparative != nil:
		comparative := *l.Comparative
		if math.IsNaN(comparative) || math.IsInf(comparative, 0) {
			return Canonical{}, fmt.Errorf("%w: comparative score %v", ErrInvalidRecord, comparative)
		}
		c.Classification = lexical.Classify(comparative)
		c.Percentage = LegacyPercentage(comparative)
	case l.Label == "":
		// Neither field present: best effort, count it as no signal.
		c.Classification = scoring.Neutral
		c.Percentage = scoring.NeutralScore
	case l.Label.Valid():
		c.Classification = l.Label
		c.Percentage = scoring.NeutralScore
	default:
		return Canonical{}, fmt.Errorf("%w: sentiment label %q", ErrInvalidRecord, l.Label)
	}
	return c, nil
}

// validateWeighted checks the ScoreResult invariants. Results written before
// classification moved onto the rounded percentage may classify the
// unrounded value, so anything within half a point is accepted.
func validateWeighted(r *scoring.ScoreResult) error {
	if !r.Classification.Valid() {
		return fmt.Errorf("%w: classification %q", ErrInvalidRecord, r.Classification)
	}
	if r.PercentageScore < 0 || r.PercentageScore > 100 {
		return fmt.Errorf("%w: percentage %d outside [0,100]", ErrInvalidRecord, r.PercentageScore)
	}

	pct := float64(r.PercentageScore)
	lowClass, lowCat := scoring.Classify(pct - 0.5)
	class, cat := scoring.Classify(pct)
	if r.Classification != class && r.Classification != lowClass {
		return fmt.Errorf("%w: classification %q does not match percentage %d", ErrInvalidRecord, r.Classification, r.PercentageScore)
	}
	if r.Category != "" && r.Category != cat && r.Category != lowCat {
		return fmt.Errorf("%w: category %q does not match percentage %d", ErrInvalidRecord, r.Category, r.PercentageScore)
	}

	var weighted, weights float64
	for _, b := range r.Breakdown {
		weighted += b.WeightedScore
		weights += b.Weight
	}
	if math.Abs(weighted-r.TotalScore) > sumTolerance {
		return fmt.Errorf("%w: breakdown sums to %v, totalScore is %v", ErrInvalidRecord, weighted, r.TotalScore)
	}
	if math.Abs(weights-r.MaxScore) > sumTolerance {
		return fmt.Errorf("%w: breakdown weights sum to %v, maxScore is %v", ErrInvalidRecord, weights, r.MaxScore)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
