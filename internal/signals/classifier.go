package signals

import (
	"strings"
	"time"

	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

// auxiliary carries the side facts an override rule may need beyond the
// composite score.
type auxiliary struct {
	capitulation float64         // keyword-coverage fraction in the current window
	shiftDir     types.Direction // direction of a sentiment shift
	narrativeDir types.Direction // direction of the best surviving narrative
	hasNarrative bool
}

// overrideFunc applies one analyzer's monotonic threshold rules on top of
// the baseline classification. Confidence is never touched.
type overrideFunc func(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds)

// strengthFor is the common strength table shared by all analyzers.
func strengthFor(score float64, th store.Thresholds) types.Strength {
	switch {
	case score >= th.Strong:
		return types.StrengthStrong
	case score >= th.Moderate:
		return types.StrengthModerate
	default:
		return types.StrengthWeak
	}
}

// dedupTickers unions the baseline tickers with the analyzed ticker,
// preserving first-seen order and normalizing case.
func dedupTickers(baseline []string, ticker string) []string {
	seen := make(map[string]struct{}, len(baseline)+1)
	out := make([]string, 0, len(baseline)+1)
	add := func(t string) {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, t := range baseline {
		add(t)
	}
	add(ticker)
	return out
}

// applyOverride runs the two-stage classification: the LLM baseline is
// copied, then the analyzer's local threshold rules override direction,
// strength, and timeframe. The baseline's confidence is always kept.
// now comes from the caller's clock so frozen inputs yield bit-identical
// classifications.
func applyOverride(
	baseline *types.SignalClassification,
	signalType types.SignalType,
	ticker string,
	now time.Time,
	score float64,
	metadata map[string]any,
	aux auxiliary,
	th store.Thresholds,
	fn overrideFunc,
) types.SignalClassification {
	cls := types.SignalClassification{
		Type:        signalType,
		Strength:    strengthFor(score, th),
		Direction:   types.DirectionNeutral,
		Timeframe:   types.TimeframeMedium,
		Confidence:  0.5,
		GeneratedAt: now,
	}
	if baseline != nil {
		cls.Direction = baseline.Direction
		cls.Timeframe = baseline.Timeframe
		cls.Confidence = baseline.Confidence
		cls.Tickers = dedupTickers(baseline.Tickers, ticker)
	} else {
		cls.Tickers = dedupTickers(nil, ticker)
	}

	merged := make(map[string]any, len(metadata)+2)
	if baseline != nil {
		for k, v := range baseline.Metadata {
			merged[k] = v
		}
	}
	for k, v := range metadata {
		merged[k] = v
	}
	merged["composite_score"] = score
	cls.Metadata = merged

	if fn != nil {
		fn(&cls, score, aux, th)
	}
	return cls
}
