package interfaces

import (
	"context"

	"tickerpulse/internal/types"
)

// WindowParams bounds the two evidence windows of a signal run, both in
// hours. Zero values fall back to the configured defaults.
type WindowParams struct {
	CurrentHours    int
	HistoricalHours int
}

// SignalEngine runs one analyzer invocation end to end: fetch evidence,
// compute indicators, aggregate the composite score, obtain the LLM
// baseline, and apply the local threshold override.
type SignalEngine interface {
	Run(ctx context.Context, signalType types.SignalType, ticker string, windows WindowParams) (*types.AnalyzerResult, error)
}

// PathSimulator produces Monte Carlo price path scenarios for a ticker.
type PathSimulator interface {
	Run(ctx context.Context, ticker string, horizonDays int) (*types.SimulationResult, error)
}
