package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

var (
	// ErrUnknownSchema is returned for submissions naming no known schema.
	ErrUnknownSchema = errors.New("unknown feedback schema")

	// ErrMissingProduct is returned for submissions without a product.
	ErrMissingProduct = errors.New("product id is required")
)

// Submission is a new piece of feedback before scoring.
type Submission struct {
	ProductID int64
	Schema    Schema

	// Answers holds the categorical answers of a weighted submission.
	Answers map[string]string

	// Legacy holds the free text of a legacy submission.
	Legacy lexical.Answers
}

// Engine scores submissions and edits with whichever scorer matches the
// record's schema.
type Engine struct {
	weighted *scoring.Scorer
	legacy   *lexical.Scorer
	log      *zap.Logger
	now      func() time.Time
	newID    func() ID
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs replaces the random id generator.
func WithIDs(next func() ID) Option {
	return func(e *Engine) { e.newID = next }
}

// NewEngine creates an engine over the two scorers.
func NewEngine(weighted *scoring.Scorer, legacy *lexical.Scorer, opts ...Option) *Engine {
	e := &Engine{
		weighted: weighted,
		legacy:   legacy,
		log:      zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() ID { return ID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit builds and scores a new record.
func (e *Engine) Submit(ctx context.Context, sub Submission) (Record, error) {
	if sub.ProductID <= 0 {
		return Record{}, ErrMissingProduct
	}
	r := Record{
		ID:        e.newID(),
		ProductID: sub.ProductID,
		Timestamp: e.now(),
	}

	switch sub.Schema {
	case SchemaWeighted:
		if err := applyChanges(&r, sub.Answers); err != nil {
			return Record{}, err
		}
		return e.scoreWeighted(r), nil
	case SchemaLegacy:
		r.Satisfaction = sub.Legacy.Satisfaction
		r.Likes = sub.Legacy.Likes
		r.Improvements = sub.Legacy.Improvements
		r.AdditionalComments = sub.Legacy.AdditionalComments
		return e.scoreLegacy(ctx, r)
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownSchema, sub.Schema)
	}
}

// Rescore recomputes the result of r under its current schema and returns
// the new record. r itself is left untouched.
func (e *Engine) Rescore(ctx context.Context, r Record) (Record, error) {
	if r.Schema() == SchemaWeighted {
		return e.scoreWeighted(r), nil
	}
	return e.scoreLegacy(ctx, r)
}

// Edit applies answer changes to a copy of r and rescores it.
func (e *Engine) Edit(ctx context.Context, r Record, changes map[string]string) (Record, error) {
	if err := applyChanges(&r, changes); err != nil {
		return Record{}, err
	}
	updated, err := e.Rescore(ctx, r)
	if err != nil {
		return Record{}, err
	}
	now := e.now()
	updated.UpdatedAt = &now
	return updated, nil
}

func (e *Engine) scoreWeighted(r Record) Record {
	result := e.weighted.Score(r.Answers())
	r.SentimentData = &result
	r.Sentiment = ""
	r.SentimentScore = nil

	e.log.Debug("scored weighted feedback",
		zap.String("id", string(r.ID)),
		zap.Int64("product_id", r.ProductID),
		zap.Int("percentage", result.PercentageScore),
		zap.String("classification", string(result.Classification)),
	)
	return r
}

func (e *Engine) scoreLegacy(ctx context.Context, r Record) (Record, error) {
	result, err := e.legacy.Score(ctx, r.LegacyAnswers())
	if err != nil {
		return Record{}, fmt.Errorf("scoring feedback %s: %w", r.ID, err)
	}
	comparative := result.Comparative
	r.SentimentData = nil
	r.Sentiment = result.Classification
	r.SentimentScore = &comparative

	e.log.Debug("scored legacy feedback",
		zap.String("id", string(r.ID)),
		zap.Int64("product_id", r.ProductID),
		zap.Float64("comparative", comparative),
		zap.String("classification", string(result.Classification)),
	)
	return r, nil
}
