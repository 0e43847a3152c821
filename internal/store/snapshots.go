package store

import (
	"database/sql"
	"sort"
	"time"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, version, scoreMap string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, command, version, score_map) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), command, version, scoreMap,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	return db.GetSnapshotN(1)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, version, score_map FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

// GetRecentSnapshots returns up to n snapshots, newest first.
func (db *DB) GetRecentSnapshots(n int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT id, taken_at, command, version, score_map FROM snapshots ORDER BY id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var takenAt string
		if err := rows.Scan(&s.ID, &takenAt, &s.Command, &s.Version, &s.ScoreMap); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.Version, &s.ScoreMap)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertProductMetric inserts a product metric for a snapshot.
func (db *DB) InsertProductMetric(m *ProductMetric) error {
	_, err := db.conn.Exec(
		"INSERT INTO product_metrics (snapshot_id, product_id, metric_name, metric_value) VALUES (?, ?, ?, ?)",
		m.SnapshotID, m.ProductID, m.MetricName, m.MetricValue,
	)
	return err
}

// GetProductMetrics returns all product metrics for a snapshot.
func (db *DB) GetProductMetrics(snapshotID int64) ([]ProductMetric, error) {
	rows, err := db.conn.Query(
		`SELECT snapshot_id, product_id, metric_name, metric_value
		 FROM product_metrics WHERE snapshot_id = ? ORDER BY product_id, metric_name`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []ProductMetric
	for rows.Next() {
		var m ProductMetric
		if err := rows.Scan(&m.SnapshotID, &m.ProductID, &m.MetricName, &m.MetricValue); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// lowerIsBetter lists metrics where a decrease is an improvement.
var lowerIsBetter = map[string]bool{
	"invalid_records": true,
	"negative":        true,
}

// HigherIsBetter reports whether an increase in the named metric is an
// improvement.
func HigherIsBetter(metric string) bool {
	return !lowerIsBetter[metric]
}

// DiffSnapshots compares the product metrics of two snapshots. Metrics only
// present in curr are reported with direction "new".
func (db *DB) DiffSnapshots(prev, curr *Snapshot) (*SnapshotDiff, error) {
	diff := &SnapshotDiff{Previous: prev, Current: curr}
	if curr == nil {
		return diff, nil
	}
	currMetrics, err := db.GetProductMetrics(curr.ID)
	if err != nil {
		return nil, err
	}

	type key struct {
		product int64
		name    string
	}
	previous := make(map[key]float64)
	if prev != nil {
		prevMetrics, err := db.GetProductMetrics(prev.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range prevMetrics {
			previous[key{m.ProductID, m.MetricName}] = m.MetricValue
		}
	}

	for _, m := range currMetrics {
		d := MetricDelta{ProductID: m.ProductID, Name: m.MetricName, Current: m.MetricValue}
		old, ok := previous[key{m.ProductID, m.MetricName}]
		if !ok {
			d.Direction = "new"
			diff.Deltas = append(diff.Deltas, d)
			continue
		}
		d.Previous = old
		d.Delta = m.MetricValue - old
		d.Direction = direction(d.Delta, HigherIsBetter(m.MetricName))
		diff.Deltas = append(diff.Deltas, d)
	}

	sort.SliceStable(diff.Deltas, func(i, j int) bool {
		if diff.Deltas[i].ProductID != diff.Deltas[j].ProductID {
			return diff.Deltas[i].ProductID < diff.Deltas[j].ProductID
		}
		return diff.Deltas[i].Name < diff.Deltas[j].Name
	})
	return diff, nil
}

func direction(delta float64, higherIsBetter bool) string {
	switch {
	case delta == 0:
		return "unchanged"
	case (delta > 0) == higherIsBetter:
		return "improved"
	default:
		return "regressed"
	}
}
