package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

// Backend is what the tools read and score through.
type Backend interface {
	ListProducts() ([]store.Product, error)
	ListFeedback(productID int64) ([]feedback.Record, error)
	Report(ctx context.Context, productID int64) ([]analytics.ProductAnalytics, error)
	Score(ctx context.Context, sub feedback.Submission) (feedback.Record, error)
}

// ScoreArgs are the arguments of score_feedback.
type ScoreArgs struct {
	Legacy  bool              `json:"legacy"`
	Answers map[string]string `json:"answers"`

	Satisfaction       string `json:"satisfaction"`
	Likes              string `json:"likes"`
	Improvements       string `json:"improvements"`
	AdditionalComments string `json:"additionalComments"`
}

// ScoreOutput is the result of score_feedback.
type ScoreOutput struct {
	Schema         feedback.Schema `json:"schema"`
	Result         any             `json:"result"`
	Classification string          `json:"classification"`
}

// FeedbackArgs are the arguments of list_feedback.
type FeedbackArgs struct {
	ProductID int64 `json:"product_id"`
	Limit     int   `json:"limit"`
}

// AnalyticsArgs are the arguments of get_product_analytics.
type AnalyticsArgs struct {
	ProductID int64 `json:"product_id"`
}

var (
	noArgsSchema    = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	analyticsSchema = json.RawMessage(`{"type":"object","properties":{"product_id":{"type":"integer","description":"Only this product (default all)"}},"additionalProperties":false}`)
	feedbackSchema  = json.RawMessage(`{"type":"object","properties":{"product_id":{"type":"integer"},"limit":{"type":"integer","description":"Most recent N records (default 20)"}},"required":["product_id"],"additionalProperties":false}`)
	scoreSchema     = json.RawMessage(`{"type":"object","properties":{"legacy":{"type":"boolean"},"answers":{"type":"object","additionalProperties":{"type":"string"}},"satisfaction":{"type":"string"},"likes":{"type":"string"},"improvements":{"type":"string"},"additionalComments":{"type":"string"}},"additionalProperties":false}`)
)

// defaultFeedbackLimit caps list_feedback when no limit is given.
const defaultFeedbackLimit = 20

// addTools registers the tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "list_products",
		Description: "Products in the catalog with their IDs.",
		InputSchema: noArgsSchema,
		Handler:     s.handleListProducts,
	})
	s.registerTool(toolDef{
		Name:        "get_product_analytics",
		Description: "Sentiment counts, average 0-100 score, positive share, and NPS per product.",
		InputSchema: analyticsSchema,
		Handler:     s.handleGetAnalytics,
	})
	s.registerTool(toolDef{
		Name:        "list_feedback",
		Description: "Most recent stored feedback records for one product.",
		InputSchema: feedbackSchema,
		Handler:     s.handleListFeedback,
	})
	s.registerTool(toolDef{
		Name:        "score_feedback",
		Description: "Score answers without storing them. Categorical answers use the weighted score map; legacy free text uses the word lexicon.",
		InputSchema: scoreSchema,
		Handler:     s.handleScore,
	})
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleListProducts(_ context.Context, _ json.RawMessage) (any, error) {
	products, err := s.backend.ListProducts()
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []store.Product{}
	}
	return products, nil
}

func (s *Server) handleGetAnalytics(ctx context.Context, args json.RawMessage) (any, error) {
	var a AnalyticsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	report, err := s.backend.Report(ctx, a.ProductID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		report = []analytics.ProductAnalytics{}
	}
	return report, nil
}

func (s *Server) handleListFeedback(_ context.Context, args json.RawMessage) (any, error) {
	var a FeedbackArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ProductID <= 0 {
		return nil, errors.New("product_id is required")
	}
	if a.Limit <= 0 {
		a.Limit = defaultFeedbackLimit
	}
	records, err := s.backend.ListFeedback(a.ProductID)
	if err != nil {
		return nil, err
	}
	if len(records) > a.Limit {
		records = records[len(records)-a.Limit:]
	}
	if records == nil {
		records = []feedback.Record{}
	}
	return records, nil
}

func (s *Server) handleScore(ctx context.Context, args json.RawMessage) (any, error) {
	var a ScoreArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sub := feedback.Submission{ProductID: 1, Schema: feedback.SchemaWeighted, Answers: a.Answers}
	if a.Legacy {
		sub.Schema = feedback.SchemaLegacy
		sub.Legacy = lexical.Answers{
			Satisfaction:       a.Satisfaction,
			Likes:              a.Likes,
			Improvements:       a.Improvements,
			AdditionalComments: a.AdditionalComments,
		}
	}

	r, err := s.backend.Score(ctx, sub)
	if err != nil {
		return nil, err
	}
	if r.SentimentData != nil {
		return ScoreOutput{
			Schema:         feedback.SchemaWeighted,
			Result:         r.SentimentData,
			Classification: string(r.SentimentData.Classification),
		}, nil
	}
	return ScoreOutput{
		Schema:         feedback.SchemaLegacy,
		Result:         map[string]any{"sentiment": r.Sentiment, "sentimentScore": r.SentimentScore},
		Classification: string(r.Sentiment),
	}, nil
}
