package lexical

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		comparative float64
		want        scoring.Classification
	}{
		{0.5, scoring.Positive},
		{0.1000001, scoring.Positive},
		{0.1, scoring.Neutral},
		{0, scoring.Neutral},
		{-0.1, scoring.Neutral},
		{-0.1000001, scoring.Negative},
		{-0.2, scoring.Negative},
	}
	for _, tc := range tests {
		if got := Classify(tc.comparative); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.comparative, got, tc.want)
		}
	}
}

func TestAnswersText_FixedOrder(t *testing.T) {
	a := Answers{
		Satisfaction:       "s",
		Likes:              "l",
		Improvements:       "i",
		AdditionalComments: "c",
	}
	assert.Equal(t, "s l i c", a.Text())
	assert.Equal(t, "s  i ", Answers{Satisfaction: "s", Improvements: "i"}.Text())
}

func TestScore_PassesJoinedText(t *testing.T) {
	var seen string
	p := PolarityFunc(func(_ context.Context, text string) (Analysis, error) {
		seen = text
		return Analysis{Comparative: -0.2}, nil
	})
	r, err := NewScorer(p).Score(context.Background(), Answers{Likes: "nothing", AdditionalComments: "meh"})
	require.NoError(t, err)

	assert.Equal(t, " nothing  meh", seen)
	assert.Equal(t, scoring.Negative, r.Classification)
	assert.Equal(t, -0.2, r.Comparative)
}

func TestScore_PropagatesPolarityError(t *testing.T) {
	boom := errors.New("service down")
	p := PolarityFunc(func(context.Context, string) (Analysis, error) {
		return Analysis{}, boom
	})
	_, err := NewScorer(p).Score(context.Background(), Answers{Likes: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestScore_WithDefaultLexicon(t *testing.T) {
	l, err := DefaultLexicon(nil)
	require.NoError(t, err)
	s := NewScorer(l)

	r, err := s.Score(context.Background(), Answers{Satisfaction: "Satisfied", Likes: "excellent build quality"})
	require.NoError(t, err)
	assert.Equal(t, scoring.Positive, r.Classification)

	r, err = s.Score(context.Background(), Answers{})
	require.NoError(t, err)
	assert.Equal(t, scoring.Neutral, r.Classification)
}
