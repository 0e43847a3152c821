package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
)

func sample() analytics.ProductAnalytics {
	return analytics.ProductAnalytics{
		ProductID:             7,
		ProductName:           "Desk Lamp",
		TotalFeedback:         4,
		SentimentCounts:       analytics.SentimentCounts{Positive: 3, Negative: 1},
		AverageSentimentScore: 71.5,
		PositivePercentage:    75,
		InvalidRecords:        2,
		NPS:                   analytics.NPSSummary{Promoters: 2, Score: 50},
	}
}

func TestObserve(t *testing.T) {
	c := New()
	c.Observe(sample())

	assert.Equal(t, 4.0, testutil.ToFloat64(c.FeedbackTotal.WithLabelValues("7", "Desk Lamp")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.SentimentRecords.WithLabelValues("7", "Desk Lamp", "positive")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.SentimentRecords.WithLabelValues("7", "Desk Lamp", "neutral")))
	assert.Equal(t, 71.5, testutil.ToFloat64(c.AverageScore.WithLabelValues("7", "Desk Lamp")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.InvalidRecords.WithLabelValues("7", "Desk Lamp")))
	assert.Equal(t, 50.0, testutil.ToFloat64(c.NPSScore.WithLabelValues("7", "Desk Lamp")))
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Observe(sample())

	path := filepath.Join(t.TempDir(), "sentimeter.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sentimeter_positive_percentage{product="Desk Lamp",product_id="7"} 75`)
}
