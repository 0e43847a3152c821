// Package feedback defines the stored feedback record and the engine that
// scores submissions and edits.
package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// Schema tags which of the two record shapes a record uses.
type Schema string

const (
	// SchemaLegacy records carry free text and a lexical sentiment label.
	SchemaLegacy Schema = "legacy"

	// SchemaWeighted records carry categorical answers and a ScoreResult.
	SchemaWeighted Schema = "weighted"
)

// ID identifies a record. Old data files used millisecond timestamps as
// numeric ids; those are accepted and kept as their decimal text. A Record
// remembers which form its id arrived in and writes it back the same way.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) numeric() bool {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Record is one stored feedback submission, in either schema.
type Record struct {
	ID        ID    `json:"id"`
	ProductID int64 `json:"productId"`

	Satisfaction       string `json:"satisfaction,omitempty"`
	Quality            string `json:"quality,omitempty"`
	Value              string `json:"value,omitempty"`
	Recommend          string `json:"recommend,omitempty"`
	Improvements       string `json:"improvements,omitempty"`
	Usage              string `json:"usage,omitempty"`
	Likes              string `json:"likes,omitempty"`
	AdditionalComments string `json:"additionalComments,omitempty"`

	// Legacy result: lexical label and comparative score.
	Sentiment      scoring.Classification `json:"sentiment,omitempty"`
	SentimentScore *float64               `json:"sentimentScore,omitempty"`

	// Weighted result.
	SentimentData *scoring.ScoreResult `json:"sentimentData,omitempty"`

	Timestamp time.Time  `json:"timestamp"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// Source form of decoded fields, so data files write back unchanged.
	numericID     bool
	timestampText string
	updatedText   string
}

// Schema reports the record's shape. Anything without a weighted result is
// treated as legacy.
func (r Record) Schema() Schema {
	if r.SentimentData != nil {
		return SchemaWeighted
	}
	return SchemaLegacy
}

// Answers returns the categorical answers keyed by question.
func (r Record) Answers() map[string]string {
	answers := make(map[string]string, 6)
	for key, v := range map[string]string{
		scoring.QuestionSatisfaction: r.Satisfaction,
		scoring.QuestionQuality:      r.Quality,
		scoring.QuestionValue:        r.Value,
		scoring.QuestionRecommend:    r.Recommend,
		scoring.QuestionImprovements: r.Improvements,
		scoring.QuestionUsage:        r.Usage,
	} {
		if v != "" {
			answers[key] = v
		}
	}
	return answers
}

// LegacyAnswers returns the free-text fields the lexical scorer reads.
func (r Record) LegacyAnswers() lexical.Answers {
	return lexical.Answers{
		Satisfaction:       r.Satisfaction,
		Likes:              r.Likes,
		Improvements:       r.Improvements,
		AdditionalComments: r.AdditionalComments,
	}
}

// LegacySentiment is the stored result of a legacy record.
type LegacySentiment struct {
	// Label is the stored classification, possibly empty.
	Label scoring.Classification

	// Comparative is nil when the record never stored a score.
	Comparative *float64
}

// Sentiment is the tagged view of a record's result. Exactly one of
// Weighted or Legacy is set, matching Schema.
type Sentiment struct {
	Schema   Schema
	Weighted *scoring.ScoreResult
	Legacy   *LegacySentiment
}

// Result returns the tagged result view.
func (r Record) Result() Sentiment {
	if r.SentimentData != nil {
		return Sentiment{Schema: SchemaWeighted, Weighted: r.SentimentData}
	}
	return Sentiment{
		Schema: SchemaLegacy,
		Legacy: &LegacySentiment{Label: r.Sentiment, Comparative: r.SentimentScore},
	}
}
