package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

func weighted(t *testing.T, id string, answers map[string]string) feedback.Record {
	t.Helper()
	r := scoring.NewScorer(scoring.DefaultScoreMap(), nil).Score(answers)
	return feedback.Record{ID: feedback.ID(id), ProductID: 1, SentimentData: &r}
}

func legacy(id string, comparative float64) feedback.Record {
	return feedback.Record{ID: feedback.ID(id), ProductID: 1, SentimentScore: ptr(comparative)}
}

func TestAggregate_Empty(t *testing.T) {
	for _, records := range [][]feedback.Record{nil, {}} {
		a := Aggregate(records)
		assert.Equal(t, ProductAnalytics{}, a)
	}

	data, err := json.Marshal(Aggregate(nil))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"totalFeedback":0`)
	assert.Contains(t, string(data), `"sentimentCounts":{"positive":0,"neutral":0,"negative":0}`)
	assert.Contains(t, string(data), `"averageSentimentScore":0`)
	assert.Contains(t, string(data), `"positivePercentage":0`)
}

func TestAggregate_MixedSchemas(t *testing.T) {
	records := []feedback.Record{
		weighted(t, "w1", map[string]string{ // 81
			scoring.QuestionSatisfaction: "Very Satisfied",
			scoring.QuestionQuality:      "Good",
			scoring.QuestionValue:        "Agree",
			scoring.QuestionRecommend:    "Probably Yes",
			scoring.QuestionImprovements: "Design & Appearance",
		}),
		weighted(t, "w2", map[string]string{ // 0
			scoring.QuestionSatisfaction: "Very Dissatisfied",
			scoring.QuestionRecommend:    "Definitely Not",
		}),
		legacy("l1", -0.2), // 48, negative
		legacy("l2", 0.05), // 50.5, neutral
	}

	a := Aggregate(records)
	assert.Equal(t, 4, a.TotalFeedback)
	assert.Equal(t, SentimentCounts{Positive: 1, Neutral: 1, Negative: 2}, a.SentimentCounts)
	assert.InDelta(t, (81+0+48+50.5)/4.0, a.AverageSentimentScore, 1e-9)
	assert.InDelta(t, 25.0, a.PositivePercentage, 1e-9)
	assert.Equal(t, SchemaCounts{Legacy: 2, Weighted: 2}, a.SchemaCounts)
	assert.Equal(t, NPSSummary{Promoters: 1, Detractors: 1, Score: 0}, a.NPS)
	assert.Zero(t, a.InvalidRecords)
}

func TestAggregate_ClampsStrongLegacy(t *testing.T) {
	a := Aggregate([]feedback.Record{legacy("a", -9), legacy("b", -7)})
	assert.Equal(t, 0.0, a.AverageSentimentScore)
	assert.Equal(t, 2, a.SentimentCounts.Negative)
}

func TestAggregate_ExcludesInvalidRecords(t *testing.T) {
	good := weighted(t, "ok", map[string]string{scoring.QuestionSatisfaction: "Very Satisfied"})
	broken := weighted(t, "bad", map[string]string{scoring.QuestionSatisfaction: "Very Satisfied"})
	broken.SentimentData.Classification = ""
	mislabeled := feedback.Record{ID: "odd", Sentiment: "mixed"}

	a := Aggregate([]feedback.Record{good, broken, mislabeled})
	assert.Equal(t, 1, a.TotalFeedback)
	assert.Equal(t, 2, a.InvalidRecords)
	assert.Equal(t, 100.0, a.AverageSentimentScore)
	assert.Equal(t, 100.0, a.PositivePercentage)
	require.Len(t, a.Issues, 2)
	assert.Equal(t, feedback.ID("bad"), a.Issues[0].RecordID)
	assert.Equal(t, feedback.ID("odd"), a.Issues[1].RecordID)

	c := a.SentimentCounts
	assert.Equal(t, a.TotalFeedback, c.Positive+c.Neutral+c.Negative)
}

func TestAggregate_AllInvalid(t *testing.T) {
	a := Aggregate([]feedback.Record{{ID: "x", Sentiment: "??"}})
	assert.Zero(t, a.TotalFeedback)
	assert.Zero(t, a.AverageSentimentScore)
	assert.Zero(t, a.PositivePercentage)
	assert.Equal(t, 1, a.InvalidRecords)
}

func TestAggregate_AmbiguousRecordIsNeutral(t *testing.T) {
	a := Aggregate([]feedback.Record{{ID: "blank", ProductID: 1}})
	assert.Equal(t, 1, a.SentimentCounts.Neutral)
	assert.Equal(t, 50.0, a.AverageSentimentScore)
	assert.Equal(t, 1, a.SchemaCounts.Legacy)
}
