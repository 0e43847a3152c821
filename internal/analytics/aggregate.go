package analytics

import (
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// SentimentCounts tallies records per classification.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SchemaCounts tallies valid records per schema.
type SchemaCounts struct {
	Legacy   int `json:"legacy"`
	Weighted int `json:"weighted"`
}

// NPSSummary is the net promoter breakdown of weighted records that answered
// the recommend question. Score runs from -100 to 100.
type NPSSummary struct {
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	Score      float64 `json:"score"`
}

// Issue describes a record excluded from aggregation.
type Issue struct {
	RecordID feedback.ID `json:"recordId"`
	Reason   string      `json:"reason"`
}

// ProductAnalytics is the derived per-product summary. It is computed on
// demand and never stored as the source of truth.
type ProductAnalytics struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName,omitempty"`

	TotalFeedback         int             `json:"totalFeedback"`
	SentimentCounts       SentimentCounts `json:"sentimentCounts"`
	AverageSentimentScore float64         `json:"averageSentimentScore"`
	PositivePercentage    float64         `json:"positivePercentage"`

	SchemaCounts   SchemaCounts `json:"schemaCounts"`
	NPS            NPSSummary   `json:"nps"`
	InvalidRecords int          `json:"invalidRecords"`
	Issues         []Issue      `json:"issues,omitempty"`
}

// Aggregate folds records into analytics. Records that fail validation are
// skipped and counted in InvalidRecords; they never abort the fold.
func Aggregate(records []feedback.Record) ProductAnalytics {
	var a ProductAnalytics
	var sum float64

	for _, r := range records {
		c, err := Normalize(r.Result())
		if err != nil {
			a.InvalidRecords++
			a.Issues = append(a.Issues, Issue{RecordID: r.ID, Reason: err.Error()})
			continue
		}

		a.TotalFeedback++
		sum += c.Percentage

		switch c.Classification {
		case scoring.Positive:
			a.SentimentCounts.Positive++
		case scoring.Negative:
			a.SentimentCounts.Negative++
		default:
			a.SentimentCounts.Neutral++
		}

		switch c.Schema {
		case feedback.SchemaWeighted:
			a.SchemaCounts.Weighted++
		default:
			a.SchemaCounts.Legacy++
		}

		switch c.NPS {
		case scoring.Promoter:
			a.NPS.Promoters++
		case scoring.Passive:
			a.NPS.Passives++
		case scoring.Detractor:
			a.NPS.Detractors++
		}
	}

	if a.TotalFeedback == 0 {
		return a
	}
	total := float64(a.TotalFeedback)
	a.AverageSentimentScore = sum / total
	a.PositivePercentage = float64(a.SentimentCounts.Positive) / total * 100

	if respondents := a.NPS.Promoters + a.NPS.Passives + a.NPS.Detractors; respondents > 0 {
		a.NPS.Score = float64(a.NPS.Promoters-a.NPS.Detractors) / float64(respondents) * 100
	}
	return a
}
