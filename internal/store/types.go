// Package store provides SQLite persistence for products, feedback records,
// and analytics snapshots.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a product or feedback record does not exist.
var ErrNotFound = errors.New("not found")

// Product is a catalog entry feedback is collected for.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// DefaultProductImage is used when a product is created without one.
const DefaultProductImage = "📦"

// Snapshot represents a point-in-time capture of product analytics.
type Snapshot struct {
	ID       int64     `json:"id"`
	TakenAt  time.Time `json:"taken_at"`
	Command  string    `json:"command"`
	Version  string    `json:"version"`
	ScoreMap string    `json:"score_map"`
}

// ProductMetric is a named analytics value for one product within a snapshot.
type ProductMetric struct {
	SnapshotID  int64   `json:"snapshot_id"`
	ProductID   int64   `json:"product_id"`
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single product metric between
// snapshots.
type MetricDelta struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged", "new"
}
