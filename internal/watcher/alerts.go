package watcher

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/insight"
)

// Thresholds tune when sentiment changes raise alerts.
type Thresholds struct {
	// CriticalBelow is the average sentiment under which a product is in
	// critical territory.
	CriticalBelow float64

	// PositiveDrop is the fall in positive percentage points that warns.
	PositiveDrop float64

	// Improvement is the rise in average sentiment reported as info.
	Improvement float64
}

// DefaultThresholds matches the insight bands.
var DefaultThresholds = Thresholds{
	CriticalBelow: insight.CriticalBelow,
	PositiveDrop:  20,
	Improvement:   10,
}

// Compare detects notable changes between two watch states and returns
// alerts ordered by product.
func Compare(prev, curr *WatchState, t Thresholds) []Alert {
	ids := make([]int64, 0, len(curr.Products))
	for id := range curr.Products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	now := time.Now()
	var alerts []Alert
	for _, id := range ids {
		c := curr.Products[id]
		p, existed := prev.Products[id]
		if !existed {
			alerts = append(alerts, Alert{
				Level:     "info",
				ProductID: id,
				Title:     fmt.Sprintf("New product: %s", c.ProductName),
				Message:   fmt.Sprintf("%d feedback record(s)", c.TotalFeedback),
				Time:      now,
			})
			continue
		}
		alerts = append(alerts, compareProduct(p, c, t, now)...)
	}
	return alerts
}

func compareProduct(p, c analytics.ProductAnalytics, t Thresholds, now time.Time) []Alert {
	var alerts []Alert
	add := func(level, title, msg string) {
		alerts = append(alerts, Alert{Level: level, ProductID: c.ProductID, Title: title, Message: msg, Time: now})
	}

	// Average crossed into critical territory.
	if c.TotalFeedback > 0 && c.AverageSentimentScore < t.CriticalBelow &&
		(p.TotalFeedback == 0 || p.AverageSentimentScore >= t.CriticalBelow) {
		add("critical", fmt.Sprintf("Sentiment critical: %s", c.ProductName),
			fmt.Sprintf("Average sentiment is %.0f/100 (was %.0f)", c.AverageSentimentScore, p.AverageSentimentScore))
	}

	// Positive share fell sharply.
	if p.TotalFeedback > 0 && p.PositivePercentage-c.PositivePercentage >= t.PositiveDrop {
		add("warning", fmt.Sprintf("Positive share dropped: %s", c.ProductName),
			fmt.Sprintf("%.0f%% positive (was %.0f%%)", c.PositivePercentage, p.PositivePercentage))
	}

	// New negative feedback.
	if n := c.SentimentCounts.Negative - p.SentimentCounts.Negative; n > 0 {
		add("warning", fmt.Sprintf("Negative feedback: %s", c.ProductName),
			fmt.Sprintf("%d new negative record(s)", n))
	}

	// Invalid stored records appeared.
	if n := c.InvalidRecords - p.InvalidRecords; n > 0 {
		add("warning", fmt.Sprintf("Invalid records: %s", c.ProductName),
			fmt.Sprintf("%d record(s) now fail validation", n))
	}

	// New feedback arrived.
	if n := c.TotalFeedback - p.TotalFeedback; n > 0 {
		add("info", fmt.Sprintf("Feedback received: %s", c.ProductName),
			fmt.Sprintf("%d new record(s), average %.0f/100", n, c.AverageSentimentScore))
	}

	// Average improved.
	if p.TotalFeedback > 0 && c.AverageSentimentScore-p.AverageSentimentScore >= t.Improvement {
		add("info", fmt.Sprintf("Sentiment improved: %s", c.ProductName),
			fmt.Sprintf("Average %.0f/100 (was %.0f)", c.AverageSentimentScore, p.AverageSentimentScore))
	}

	return alerts
}
