package scoring

type threshold struct {
	min            float64
	classification Classification
	category       string
}

// thresholds are evaluated in order; the first match wins.
var thresholds = []threshold{
	{75, Positive, CategoryHighlyPositive},
	{60, Positive, CategoryPositive},
	{40, Neutral, CategoryNeutral},
	{25, Negative, CategoryNegative},
}

// Classify maps a 0-100 percentage to its classification and category.
func Classify(percentage float64) (Classification, string) {
	for _, t := range thresholds {
		if percentage >= t.min {
			return t.classification, t.category
		}
	}
	return Negative, CategoryHighlyNegative
}

// SignedScore converts a percentage to the legacy -5..+5 scale.
func SignedScore(percentage int) float64 {
	return float64(percentage-50) / 10
}
