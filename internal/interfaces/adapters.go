package interfaces

import (
	"context"
	"errors"
	"time"

	"tickerpulse/internal/types"
)

// ErrInsufficientData marks an invocation that cannot proceed because an
// explicit minimum-observation check failed (e.g. fewer than 20 price bars).
// It is fatal for that invocation and never retried.
var ErrInsufficientData = errors.New("insufficient data")

// SearchQuery bounds one social evidence fetch.
type SearchQuery struct {
	Query      string
	MaxResults int
	StartTime  *time.Time
	EndTime    *time.Time
}

// SocialAdapter is the social search collaborator. Implementations live
// outside the engine; failures propagate unchanged.
type SocialAdapter interface {
	// SearchPosts returns posts matching the query within the bounded window.
	SearchPosts(ctx context.Context, q SearchQuery) ([]types.Post, error)
}

// LLMAdapter is the language-model collaborator.
type LLMAdapter interface {
	// AnalyzeSentiment classifies a body of text.
	AnalyzeSentiment(ctx context.Context, text string) (*types.SentimentAnalysis, error)

	// DetectNarratives extracts broad market themes from a post set.
	DetectNarratives(ctx context.Context, posts []types.Post) ([]types.Narrative, error)

	// ClassifySignal produces the baseline classification for a signal type.
	// Callers forward at most 30 posts.
	ClassifySignal(ctx context.Context, posts []types.Post, signalType types.SignalType) (*types.SignalClassification, error)
}

// PriceAdapter is the market data collaborator.
type PriceAdapter interface {
	// GetHistoricalPrices returns daily bars in ascending timestamp order.
	GetHistoricalPrices(ctx context.Context, ticker string, start, end time.Time) ([]types.PriceBar, error)

	// GetCurrentPrice returns the latest trade price.
	GetCurrentPrice(ctx context.Context, ticker string) (float64, error)
}
