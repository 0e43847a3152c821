package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sentimeter/internal/insight"
	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, p lexical.Polarity) *Engine {
	t.Helper()
	if p == nil {
		lex, err := lexical.DefaultLexicon(nil)
		require.NoError(t, err)
		p = lex
	}
	n := 0
	return NewEngine(
		scoring.NewScorer(scoring.DefaultScoreMap(), insight.NewGenerator()),
		lexical.NewScorer(p),
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() ID {
			n++
			return ID("fb-" + string(rune('0'+n)))
		}),
	)
}

func TestSubmit_Weighted(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Submit(context.Background(), Submission{
		ProductID: 4,
		Schema:    SchemaWeighted,
		Answers: map[string]string{
			"satisfaction": "Very Satisfied",
			"quality":      "Good",
			"value":        "Agree",
			"recommend":    "Probably Yes",
			"improvements": "Design & Appearance",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ID("fb-1"), r.ID)
	assert.Equal(t, int64(4), r.ProductID)
	assert.Equal(t, fixedNow, r.Timestamp)
	assert.Equal(t, SchemaWeighted, r.Schema())
	require.NotNil(t, r.SentimentData)
	assert.Equal(t, 81, r.SentimentData.PercentageScore)
	assert.Equal(t, scoring.CategoryHighlyPositive, r.SentimentData.Category)
	assert.Contains(t, r.SentimentData.Insights, "→ Focus area: Design & Appearance")
	assert.Empty(t, r.Sentiment)
	assert.Nil(t, r.SentimentScore)
}

func TestSubmit_Legacy(t *testing.T) {
	e := newTestEngine(t, lexical.PolarityFunc(func(context.Context, string) (lexical.Analysis, error) {
		return lexical.Analysis{Comparative: -0.2}, nil
	}))
	r, err := e.Submit(context.Background(), Submission{
		ProductID: 1,
		Schema:    SchemaLegacy,
		Legacy:    lexical.Answers{Satisfaction: "meh", Likes: "nothing"},
	})
	require.NoError(t, err)

	assert.Equal(t, SchemaLegacy, r.Schema())
	assert.Equal(t, scoring.Negative, r.Sentiment)
	require.NotNil(t, r.SentimentScore)
	assert.Equal(t, -0.2, *r.SentimentScore)
	assert.Equal(t, "nothing", r.Likes)
}

func TestSubmit_Errors(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Submit(context.Background(), Submission{Schema: SchemaWeighted})
	assert.ErrorIs(t, err, ErrMissingProduct)

	_, err = e.Submit(context.Background(), Submission{ProductID: 1, Schema: "v3"})
	assert.ErrorIs(t, err, ErrUnknownSchema)

	_, err = e.Submit(context.Background(), Submission{
		ProductID: 1,
		Schema:    SchemaWeighted,
		Answers:   map[string]string{"colour": "red"},
	})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSubmit_PolarityFailure(t *testing.T) {
	boom := errors.New("lexicon unavailable")
	e := newTestEngine(t, lexical.PolarityFunc(func(context.Context, string) (lexical.Analysis, error) {
		return lexical.Analysis{}, boom
	}))
	_, err := e.Submit(context.Background(), Submission{ProductID: 1, Schema: SchemaLegacy})
	assert.ErrorIs(t, err, boom)
}

func TestRescore_IdempotentAndPure(t *testing.T) {
	e := newTestEngine(t, nil)
	orig, err := e.Submit(context.Background(), Submission{
		ProductID: 1,
		Schema:    SchemaWeighted,
		Answers:   map[string]string{"satisfaction": "Satisfied", "usage": "Rarely"},
	})
	require.NoError(t, err)
	before, err := json.Marshal(orig)
	require.NoError(t, err)

	again, err := e.Rescore(context.Background(), orig)
	require.NoError(t, err)
	after, err := json.Marshal(again)
	require.NoError(t, err)

	assert.Equal(t, string(before), string(after))
	assert.NotSame(t, orig.SentimentData, again.SentimentData)
}

func TestEdit_ReplacesResult(t *testing.T) {
	e := newTestEngine(t, nil)
	orig, err := e.Submit(context.Background(), Submission{
		ProductID: 1,
		Schema:    SchemaWeighted,
		Answers:   map[string]string{"satisfaction": "Very Satisfied"},
	})
	require.NoError(t, err)

	edited, err := e.Edit(context.Background(), orig, map[string]string{"satisfaction": "Very Dissatisfied"})
	require.NoError(t, err)

	assert.Equal(t, 100, orig.SentimentData.PercentageScore, "original must not change")
	assert.Equal(t, "Very Satisfied", orig.Satisfaction)
	assert.Equal(t, 0, edited.SentimentData.PercentageScore)
	assert.Equal(t, scoring.CategoryHighlyNegative, edited.SentimentData.Category)
	require.NotNil(t, edited.UpdatedAt)
	assert.Equal(t, fixedNow, *edited.UpdatedAt)
	assert.Equal(t, orig.ID, edited.ID)
}

func TestEdit_LegacyStaysLegacy(t *testing.T) {
	e := newTestEngine(t, nil)
	orig, err := e.Submit(context.Background(), Submission{
		ProductID: 1,
		Schema:    SchemaLegacy,
		Legacy:    lexical.Answers{Likes: "great"},
	})
	require.NoError(t, err)
	assert.Equal(t, scoring.Positive, orig.Sentiment)

	edited, err := e.Edit(context.Background(), orig, map[string]string{"likes": "terrible and broken"})
	require.NoError(t, err)
	assert.Equal(t, SchemaLegacy, edited.Schema())
	assert.Equal(t, scoring.Negative, edited.Sentiment)
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{
		"additionalComments", "improvements", "likes", "quality", "recommend", "satisfaction", "usage", "value",
	}, Fields())
}

func TestRecord_Field(t *testing.T) {
	r := Record{Quality: "Good", AdditionalComments: "fine"}
	assert.Equal(t, "Good", r.Field("quality"))
	assert.Equal(t, "fine", r.Field("additionalComments"))
	assert.Empty(t, r.Field("satisfaction"))
	assert.Empty(t, r.Field("nonsense"))

	for _, f := range Fields() {
		_, ok := fieldGetters[f]
		assert.True(t, ok, f)
	}
}
