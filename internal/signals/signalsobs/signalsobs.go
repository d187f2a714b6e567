package signalsobs

import (
	"context"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/logger"
	"tickerpulse/internal/trace"
	"tickerpulse/internal/types"
)

type observableEngine struct {
	engine interfaces.SignalEngine
}

var _ interfaces.SignalEngine = (*observableEngine)(nil)

// Wrap decorates a signal engine with spans and structured logs. The wrapped
// engine stays free of observability concerns.
func Wrap(eng interfaces.SignalEngine) interfaces.SignalEngine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Run(ctx context.Context, signalType types.SignalType, ticker string, windows interfaces.WindowParams) (*types.AnalyzerResult, error) {
	ctx, span := trace.StartSpan(ctx, "signals.Run")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting signal run",
		"ticker", ticker,
		"signal_type", string(signalType),
	)

	result, err := oe.engine.Run(ctx, signalType, ticker, windows)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Signal run failed", err,
			"ticker", ticker,
			"signal_type", string(signalType),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Signal(ctx, ticker, string(signalType), result.Score, string(result.Classification.Direction))
	logger.InfoSkip(ctx, 1, "Signal run completed",
		"ticker", ticker,
		"signal_type", string(signalType),
		"score", result.Score,
		"strength", string(result.Classification.Strength),
		"direction", string(result.Classification.Direction),
		"evidence_posts", len(result.Evidence),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
