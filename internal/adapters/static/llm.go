package static

import (
	"context"
	"strings"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/types"
)

// LLM is a rule-based stand-in for the language-model collaborator. It
// produces stable, plausible baselines without network access.
type LLM struct{}

var _ interfaces.LLMAdapter = (*LLM)(nil)

// NewLLM creates the fixture-backed LLM adapter.
func NewLLM() *LLM {
	return &LLM{}
}

var bullishCues = []string{"moon", "bullish", "breakout", "calls", "squeeze", "rally", "accumulation"}
var bearishCues = []string{"crash", "dump", "overbought", "sold", "bags", "margin call", "oversold"}

func cueCounts(text string) (bull, bear int) {
	lowered := strings.ToLower(text)
	for _, cue := range bullishCues {
		bull += strings.Count(lowered, cue)
	}
	for _, cue := range bearishCues {
		bear += strings.Count(lowered, cue)
	}
	return bull, bear
}

// AnalyzeSentiment scores text by cue-word balance.
func (l *LLM) AnalyzeSentiment(ctx context.Context, text string) (*types.SentimentAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bull, bear := cueCounts(text)
	total := bull + bear

	analysis := &types.SentimentAnalysis{
		Label:      types.DirectionNeutral,
		Confidence: 0.5,
		AnalyzedAt: time.Now().UTC(),
	}
	if total == 0 {
		return analysis, nil
	}

	analysis.Score = float64(bull-bear) / float64(total)
	analysis.Confidence = 0.7
	switch {
	case analysis.Score > 0.2:
		analysis.Label = types.DirectionBullish
	case analysis.Score < -0.2:
		analysis.Label = types.DirectionBearish
	}
	return analysis, nil
}

// DetectNarratives returns a fixed pair of market themes anchored to the
// newest post so correlation timing stays meaningful.
func (l *LLM) DetectNarratives(ctx context.Context, posts []types.Post) ([]types.Narrative, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anchor := time.Now().UTC()
	tickers := map[string]struct{}{}
	for _, p := range posts {
		if p.CreatedAt.After(anchor) {
			anchor = p.CreatedAt
		}
		for _, t := range p.Tickers {
			tickers[strings.ToUpper(t)] = struct{}{}
		}
	}
	related := make([]string, 0, len(tickers))
	for t := range tickers {
		related = append(related, t)
	}

	return []types.Narrative{
		{
			ID:       "rate-cut-rotation",
			Title:    "Rate cut rotation into risk assets",
			Category: "macro",
			Sentiment: types.SentimentAnalysis{
				Score:      0.5,
				Label:      types.DirectionBullish,
				Confidence: 0.8,
				Keywords:   []string{"breakout", "rally", "squeeze"},
				AnalyzedAt: anchor,
			},
			PostCount:      240,
			StartedAt:      anchor.AddDate(0, 0, -6),
			LastSeenAt:     anchor.AddDate(0, 0, -4),
			Momentum:       types.MomentumRising,
			RelatedTickers: related,
		},
		{
			ID:       "liquidity-drain",
			Title:    "Liquidity drain fears",
			Category: "macro",
			Sentiment: types.SentimentAnalysis{
				Score:      -0.4,
				Label:      types.DirectionBearish,
				Confidence: 0.7,
				Keywords:   []string{"margin call", "crash"},
				AnalyzedAt: anchor,
			},
			PostCount:  90,
			StartedAt:  anchor.AddDate(0, 0, -20),
			LastSeenAt: anchor.AddDate(0, 0, -16),
			Momentum:   types.MomentumDeclining,
		},
	}, nil
}

// ClassifySignal derives the baseline from cue-word balance over the sample.
func (l *LLM) ClassifySignal(ctx context.Context, posts []types.Post, signalType types.SignalType) (*types.SignalClassification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bull, bear := 0, 0
	tickers := map[string]struct{}{}
	for _, p := range posts {
		b, r := cueCounts(p.Text)
		bull += b
		bear += r
		for _, t := range p.Tickers {
			tickers[strings.ToUpper(t)] = struct{}{}
		}
	}

	cls := &types.SignalClassification{
		Type:        signalType,
		Strength:    types.StrengthModerate,
		Direction:   types.DirectionNeutral,
		Timeframe:   types.TimeframeMedium,
		Confidence:  0.55,
		GeneratedAt: time.Now().UTC(),
	}
	for t := range tickers {
		cls.Tickers = append(cls.Tickers, t)
	}

	total := bull + bear
	if total == 0 {
		return cls, nil
	}
	ratio := float64(bull-bear) / float64(total)
	switch {
	case ratio > 0.2:
		cls.Direction = types.DirectionBullish
		cls.Confidence = 0.65
	case ratio < -0.2:
		cls.Direction = types.DirectionBearish
		cls.Confidence = 0.65
	}
	return cls, nil
}
