package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
)

// InsertFeedback stores a new record.
func (db *DB) InsertFeedback(r *feedback.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding feedback %s: %w", r.ID, err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO feedback (id, product_id, schema, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(r.ID), r.ProductID, string(r.Schema()), string(payload),
		r.Timestamp.UTC().Format(time.RFC3339Nano), formatUpdated(r.UpdatedAt),
	)
	return err
}

// ReplaceFeedback overwrites a stored record with a rescored one.
func (db *DB) ReplaceFeedback(r *feedback.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding feedback %s: %w", r.ID, err)
	}
	result, err := db.conn.Exec(
		"UPDATE feedback SET product_id = ?, schema = ?, payload = ?, updated_at = ? WHERE id = ?",
		r.ProductID, string(r.Schema()), string(payload), formatUpdated(r.UpdatedAt), string(r.ID),
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("feedback %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// GetFeedback returns one record by ID.
func (db *DB) GetFeedback(id feedback.ID) (*feedback.Record, error) {
	var payload string
	err := db.conn.QueryRow("SELECT payload FROM feedback WHERE id = ?", string(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var r feedback.Record
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decoding feedback %s: %w", id, err)
	}
	return &r, nil
}

// ListFeedback returns the records of one product, oldest first.
func (db *DB) ListFeedback(productID int64) ([]feedback.Record, error) {
	return db.queryFeedback(
		"SELECT id, payload FROM feedback WHERE product_id = ? ORDER BY created_at, id",
		productID,
	)
}

// ListAllFeedback returns every stored record, oldest first.
func (db *DB) ListAllFeedback() ([]feedback.Record, error) {
	return db.queryFeedback("SELECT id, payload FROM feedback ORDER BY created_at, id")
}

// DeleteFeedback removes one record.
func (db *DB) DeleteFeedback(id feedback.ID) error {
	result, err := db.conn.Exec("DELETE FROM feedback WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	return nil
}

func (db *DB) queryFeedback(query string, args ...any) ([]feedback.Record, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []feedback.Record
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		var r feedback.Record
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding feedback %s: %w", id, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func formatUpdated(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
