// Package watcher polls product analytics at an interval and emits alerts
// when sentiment shifts.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
)

// WatchState captures a point-in-time view of every product's analytics.
type WatchState struct {
	Timestamp time.Time
	Products  map[int64]analytics.ProductAnalytics
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level     string // "info", "warning", "critical"
	ProductID int64
	Title     string
	Message   string
	Time      time.Time
}

// Source produces the current analytics report.
type Source func(ctx context.Context) ([]analytics.ProductAnalytics, error)

// Watcher re-reads analytics at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	source        Source
	interval      time.Duration
	thresholds    Thresholds
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher over the given analytics source.
func New(source Source, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		source:        source,
		interval:      interval,
		thresholds:    DefaultThresholds,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// SetThresholds replaces the alert thresholds.
func (w *Watcher) SetThresholds(t Thresholds) {
	w.thresholds = t
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read analytics: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr, w.thresholds)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := fmt.Sprintf("%s:%d:%s:%s", a.Level, a.ProductID, a.Title, a.Message)
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot reads the current analytics from the source.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	report, err := w.source(ctx)
	if err != nil {
		return nil, err
	}
	state := &WatchState{
		Timestamp: time.Now(),
		Products:  make(map[int64]analytics.ProductAnalytics, len(report)),
	}
	for _, a := range report {
		state.Products[a.ProductID] = a
	}
	return state, nil
}
