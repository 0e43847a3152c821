package scoring

// Classification is the coarse sentiment bucket.
type Classification string

const (
	Positive Classification = "positive"
	Neutral  Classification = "neutral"
	Negative Classification = "negative"
)

// Valid reports whether c is one of the three known buckets.
func (c Classification) Valid() bool {
	switch c {
	case Positive, Neutral, Negative:
		return true
	}
	return false
}

// Category labels, finer-grained than Classification.
const (
	CategoryHighlyPositive = "Highly Positive"
	CategoryPositive       = "Positive"
	CategoryNeutral        = "Neutral"
	CategoryNegative       = "Negative"
	CategoryHighlyNegative = "Highly Negative"
)

// BreakdownEntry is the contribution of one answered question.
type BreakdownEntry struct {
	Answer        string  `json:"answer"`
	RawScore      float64 `json:"rawScore"`
	WeightedScore float64 `json:"weightedScore"`
	Weight        float64 `json:"weight"`
}

// ScoreResult is the stored outcome of scoring a weighted-schema record.
// Field names are the persistence contract and must not change.
type ScoreResult struct {
	// Score is the legacy-compatible signed value on a -5..+5 scale.
	Score float64 `json:"score"`

	// PercentageScore is the canonical 0-100 value.
	PercentageScore int `json:"percentageScore"`

	Classification Classification `json:"classification"`
	Category       string         `json:"category"`

	Breakdown map[string]BreakdownEntry `json:"breakdown"`
	Insights  []string                  `json:"insights"`

	TotalScore float64 `json:"totalScore"`
	MaxScore   float64 `json:"maxScore"`

	// NPS is the net promoter bucket of the recommend answer, if any.
	NPS NPSBucket `json:"nps,omitempty"`

	// ScoreMapVersion records which question set produced the result.
	ScoreMapVersion string `json:"scoreMapVersion,omitempty"`
}
