package signals

import (
	"context"
	"fmt"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/narrative"
	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

// Engine runs the shared analyzer pipeline: fetch two evidence windows,
// compute indicators, aggregate the weighted composite, obtain the LLM
// baseline, and apply the analyzer's local override. Stateless across
// invocations; every Run starts from fresh adapter calls.
type Engine struct {
	cfg        *store.Config
	lex        *lexicon.Lexicon
	fetcher    *WindowFetcher
	llm        interfaces.LLMAdapter
	correlator *narrative.Correlator
	analyzers  map[types.SignalType]analyzerDef
	nowFn      func() time.Time
}

var _ interfaces.SignalEngine = (*Engine)(nil)

// NewEngine wires the pipeline against the given collaborators.
func NewEngine(cfg *store.Config, lex *lexicon.Lexicon, social interfaces.SocialAdapter, llm interfaces.LLMAdapter) *Engine {
	return &Engine{
		cfg:        cfg,
		lex:        lex,
		fetcher:    NewWindowFetcher(social, cfg.Social.MaxResults),
		llm:        llm,
		correlator: narrative.NewCorrelator(cfg.Thresholds.NarrativeMinCorr),
		analyzers:  analyzerTable(),
		nowFn:      time.Now,
	}
}

// WithClock replaces the engine's clock. Tests pin it for frozen windows.
func (e *Engine) WithClock(fn func() time.Time) *Engine {
	e.nowFn = fn
	return e
}

func (e *Engine) now() time.Time {
	return e.nowFn().UTC()
}

// Run executes one analyzer invocation end to end.
func (e *Engine) Run(ctx context.Context, signalType types.SignalType, ticker string, windows interfaces.WindowParams) (*types.AnalyzerResult, error) {
	def, ok := e.analyzers[signalType]
	if !ok {
		return nil, fmt.Errorf("unknown signal type %q", signalType)
	}

	curHours := windows.CurrentHours
	if curHours <= 0 {
		curHours = e.cfg.Windows.CurrentHours
	}
	histHours := windows.HistoricalHours
	if histHours <= 0 {
		histHours = e.cfg.Windows.HistoricalHours
	}

	now := e.now()
	current, historical, err := e.fetcher.Fetch(ctx, e.queryFor(signalType, ticker), now, curHours, histHours)
	if err != nil {
		return nil, fmt.Errorf("%s evidence fetch for %s: %w", signalType, ticker, err)
	}

	ev := &evidence{
		ticker:     ticker,
		current:    current,
		historical: historical,
		curHours:   float64(curHours),
		histHours:  float64(histHours),
	}

	if signalType == types.SignalMacroToMicro {
		narratives, nerr := e.llm.DetectNarratives(ctx, current)
		if nerr != nil {
			return nil, fmt.Errorf("narrative detection for %s: %w", ticker, nerr)
		}
		ev.narratives = narratives
		ev.correlations = e.correlator.Correlate(ticker, narratives, current, AggregateLabel(e.lex, current))
	}

	values, metadata, aux := def.compute(e, ev)

	components := BuildComponents(e.cfg.Components[string(signalType)], values)
	score := Aggregate(components)

	baseline, err := e.baseline(ctx, signalType, current)
	if err != nil {
		return nil, fmt.Errorf("baseline classification for %s: %w", ticker, err)
	}

	cls := applyOverride(baseline, signalType, ticker, now, score, metadata, aux, e.cfg.Thresholds, def.override)

	return &types.AnalyzerResult{
		Ticker:         ticker,
		Type:           signalType,
		Score:          score,
		Components:     components,
		Classification: cls,
		Evidence:       current,
		Baseline:       historical,
		Narratives:     ev.narratives,
		AnalyzedAt:     now,
	}, nil
}

// baseline asks the LLM collaborator for the first-stage classification over
// at most the configured number of current-window posts. An empty window
// still goes through; the collaborator returns its prior.
func (e *Engine) baseline(ctx context.Context, signalType types.SignalType, current []types.Post) (*types.SignalClassification, error) {
	sample := current
	if max := e.cfg.Social.BaselinePosts; len(sample) > max {
		sample = sample[:max]
	}
	return e.llm.ClassifySignal(ctx, sample, signalType)
}

// queryFor picks the evidence query. Sector rotation widens from the ticker
// to its sector keyword group when one is configured.
func (e *Engine) queryFor(signalType types.SignalType, ticker string) string {
	if signalType == types.SignalSectorRotation {
		if sector, ok := e.cfg.TickerSectors[ticker]; ok {
			if kws := e.cfg.Sectors[sector]; len(kws) > 0 {
				return SectorQuery(kws)
			}
		}
	}
	return TickerQuery(ticker)
}
