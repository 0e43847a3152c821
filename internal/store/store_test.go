package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sentimeter.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var version int
	require.NoError(t, db.Conn().QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_FilePragmasOnEveryConnection(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sentimeter.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var mode string
	require.NoError(t, db.Conn().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// Hold one connection so the next query is served by a fresh one.
	held, err := db.Conn().Conn(context.Background())
	require.NoError(t, err)
	defer func() { _ = held.Close() }()

	var fk int
	require.NoError(t, db.Conn().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestProducts_CRUD(t *testing.T) {
	db := openTestDB(t)

	p, err := db.CreateProduct("Headphones", "Wireless", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, DefaultProductImage, p.Image)

	_, err = db.CreateProduct("Speaker", "Portable", "🔊")
	require.NoError(t, err)

	list, err := db.ListProducts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Headphones", list[0].Name)
	assert.Equal(t, "🔊", list[1].Image)

	updated, err := db.UpdateProduct(p.ID, "", "Noise cancelling", "")
	require.NoError(t, err)
	assert.Equal(t, "Headphones", updated.Name)
	assert.Equal(t, "Noise cancelling", updated.Description)

	_, err = db.GetProduct(99)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = db.UpdateProduct(99, "x", "", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpsertProduct_KeepsID(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.UpsertProduct(&Product{ID: 7, Name: "Lamp", Image: "💡"}))
	require.NoError(t, db.UpsertProduct(&Product{ID: 7, Name: "Desk Lamp", Image: "💡"}))

	p, err := db.GetProduct(7)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", p.Name)
}

func weightedRecord(id feedback.ID, productID int64, ts time.Time) *feedback.Record {
	return &feedback.Record{
		ID:           id,
		ProductID:    productID,
		Satisfaction: "Satisfied",
		SentimentData: &scoring.ScoreResult{
			Score:           2,
			PercentageScore: 70,
			Classification:  scoring.Positive,
			Category:        scoring.CategoryPositive,
			Breakdown:       map[string]scoring.BreakdownEntry{},
			Insights:        []string{},
			TotalScore:      2100,
			MaxScore:        3000,
		},
		Timestamp: ts,
	}
}

func TestFeedback_InsertListGet(t *testing.T) {
	db := openTestDB(t)
	p, err := db.CreateProduct("Headphones", "", "")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	score := 0.25
	legacy := &feedback.Record{
		ID:             "1700000000000",
		ProductID:      p.ID,
		Likes:          "great sound",
		Sentiment:      scoring.Positive,
		SentimentScore: &score,
		Timestamp:      base,
	}
	require.NoError(t, db.InsertFeedback(weightedRecord("b", p.ID, base.Add(time.Hour))))
	require.NoError(t, db.InsertFeedback(legacy))

	records, err := db.ListFeedback(p.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, feedback.ID("1700000000000"), records[0].ID)
	assert.Equal(t, feedback.SchemaLegacy, records[0].Schema())
	assert.Equal(t, feedback.SchemaWeighted, records[1].Schema())
	assert.Equal(t, 70, records[1].SentimentData.PercentageScore)

	got, err := db.GetFeedback("b")
	require.NoError(t, err)
	assert.Equal(t, "Satisfied", got.Satisfaction)

	_, err = db.GetFeedback("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFeedback_ForeignKey(t *testing.T) {
	db := openTestDB(t)
	err := db.InsertFeedback(weightedRecord("orphan", 42, time.Now()))
	assert.Error(t, err)
}

func TestReplaceFeedback(t *testing.T) {
	db := openTestDB(t)
	p, err := db.CreateProduct("Headphones", "", "")
	require.NoError(t, err)

	r := weightedRecord("a", p.ID, time.Now().UTC())
	require.NoError(t, db.InsertFeedback(r))

	edited := time.Now().UTC()
	r.Quality = "Excellent"
	r.UpdatedAt = &edited
	require.NoError(t, db.ReplaceFeedback(r))

	got, err := db.GetFeedback("a")
	require.NoError(t, err)
	assert.Equal(t, "Excellent", got.Quality)
	require.NotNil(t, got.UpdatedAt)

	missing := weightedRecord("nope", p.ID, time.Now())
	assert.True(t, errors.Is(db.ReplaceFeedback(missing), ErrNotFound))
}

func TestDeleteProduct_CascadesFeedback(t *testing.T) {
	db := openTestDB(t)
	keep, err := db.CreateProduct("Keep", "", "")
	require.NoError(t, err)
	drop, err := db.CreateProduct("Drop", "", "")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.InsertFeedback(weightedRecord("k1", keep.ID, now)))
	require.NoError(t, db.InsertFeedback(weightedRecord("d1", drop.ID, now)))
	require.NoError(t, db.InsertFeedback(weightedRecord("d2", drop.ID, now)))

	removed, err := db.DeleteProduct(drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drop", removed.Name)

	all, err := db.ListAllFeedback()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, feedback.ID("k1"), all[0].ID)
}

func TestDeleteFeedback(t *testing.T) {
	db := openTestDB(t)
	p, err := db.CreateProduct("Headphones", "", "")
	require.NoError(t, err)
	require.NoError(t, db.InsertFeedback(weightedRecord("x", p.ID, time.Now())))

	require.NoError(t, db.DeleteFeedback("x"))
	assert.True(t, errors.Is(db.DeleteFeedback("x"), ErrNotFound))
}

func TestSnapshots_Diff(t *testing.T) {
	db := openTestDB(t)

	none, err := db.GetLatestSnapshot()
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := db.CreateSnapshot("track", "dev", "v1")
	require.NoError(t, err)
	require.NoError(t, db.InsertProductMetric(&ProductMetric{SnapshotID: first, ProductID: 1, MetricName: "average_sentiment_score", MetricValue: 60}))
	require.NoError(t, db.InsertProductMetric(&ProductMetric{SnapshotID: first, ProductID: 1, MetricName: "invalid_records", MetricValue: 2}))

	second, err := db.CreateSnapshot("track", "dev", "v1")
	require.NoError(t, err)
	require.NoError(t, db.InsertProductMetric(&ProductMetric{SnapshotID: second, ProductID: 1, MetricName: "average_sentiment_score", MetricValue: 55}))
	require.NoError(t, db.InsertProductMetric(&ProductMetric{SnapshotID: second, ProductID: 1, MetricName: "invalid_records", MetricValue: 0}))
	require.NoError(t, db.InsertProductMetric(&ProductMetric{SnapshotID: second, ProductID: 2, MetricName: "average_sentiment_score", MetricValue: 70}))

	curr, err := db.GetSnapshotN(1)
	require.NoError(t, err)
	prev, err := db.GetSnapshotN(2)
	require.NoError(t, err)
	assert.Equal(t, second, curr.ID)
	assert.Equal(t, first, prev.ID)
	assert.Equal(t, "v1", curr.ScoreMap)

	diff, err := db.DiffSnapshots(prev, curr)
	require.NoError(t, err)
	require.Len(t, diff.Deltas, 3)

	assert.Equal(t, "average_sentiment_score", diff.Deltas[0].Name)
	assert.Equal(t, "regressed", diff.Deltas[0].Direction)
	assert.InDelta(t, -5.0, diff.Deltas[0].Delta, 1e-9)

	assert.Equal(t, "invalid_records", diff.Deltas[1].Name)
	assert.Equal(t, "improved", diff.Deltas[1].Direction)

	assert.Equal(t, int64(2), diff.Deltas[2].ProductID)
	assert.Equal(t, "new", diff.Deltas[2].Direction)
}

func TestGetRecentSnapshots(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		_, err := db.CreateSnapshot("track", "dev", "v1")
		require.NoError(t, err)
	}

	recent, err := db.GetRecentSnapshots(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].ID)
	assert.Equal(t, int64(2), recent[1].ID)

	assert.True(t, HigherIsBetter("average_sentiment_score"))
	assert.False(t, HigherIsBetter("invalid_records"))
}
