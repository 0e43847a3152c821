// Package metrics exposes analytics results as Prometheus gauges.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
)

// Collectors holds one analytics run worth of gauges on its own registry.
type Collectors struct {
	Registry *prometheus.Registry

	FeedbackTotal      *prometheus.GaugeVec
	SentimentRecords   *prometheus.GaugeVec
	AverageScore       *prometheus.GaugeVec
	PositivePercentage *prometheus.GaugeVec
	InvalidRecords     *prometheus.GaugeVec
	NPSScore           *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New() *Collectors {
	labels := []string{"product_id", "product"}
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		FeedbackTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_feedback_total",
				Help: "Valid feedback records per product",
			},
			labels,
		),
		SentimentRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_feedback_sentiment",
				Help: "Feedback records per product and classification",
			},
			append(labels, "classification"),
		),
		AverageScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_average_sentiment_score",
				Help: "Mean canonical sentiment percentage (0-100)",
			},
			labels,
		),
		PositivePercentage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_positive_percentage",
				Help: "Share of positive feedback records (0-100)",
			},
			labels,
		),
		InvalidRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_invalid_records",
				Help: "Stored records excluded from aggregation",
			},
			labels,
		),
		NPSScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentimeter_nps_score",
				Help: "Net promoter score (-100 to 100)",
			},
			labels,
		),
	}
	c.Registry.MustRegister(
		c.FeedbackTotal,
		c.SentimentRecords,
		c.AverageScore,
		c.PositivePercentage,
		c.InvalidRecords,
		c.NPSScore,
	)
	return c
}

// Observe records one product's analytics.
func (c *Collectors) Observe(a analytics.ProductAnalytics) {
	id := strconv.FormatInt(a.ProductID, 10)
	c.FeedbackTotal.WithLabelValues(id, a.ProductName).Set(float64(a.TotalFeedback))
	c.SentimentRecords.WithLabelValues(id, a.ProductName, "positive").Set(float64(a.SentimentCounts.Positive))
	c.SentimentRecords.WithLabelValues(id, a.ProductName, "neutral").Set(float64(a.SentimentCounts.Neutral))
	c.SentimentRecords.WithLabelValues(id, a.ProductName, "negative").Set(float64(a.SentimentCounts.Negative))
	c.AverageScore.WithLabelValues(id, a.ProductName).Set(a.AverageSentimentScore)
	c.PositivePercentage.WithLabelValues(id, a.ProductName).Set(a.PositivePercentage)
	c.InvalidRecords.WithLabelValues(id, a.ProductName).Set(float64(a.InvalidRecords))
	c.NPSScore.WithLabelValues(id, a.ProductName).Set(a.NPS.Score)
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (c *Collectors) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Registry)
}
