package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/signals"
	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

// Simulator generates Monte Carlo price path scenarios from historical
// volatility and a social sentiment bias. It is the only stochastic piece of
// the system; everything else is deterministic on frozen inputs.
type Simulator struct {
	cfg      store.SimulatorConfig
	curHours int
	price    interfaces.PriceAdapter
	social   interfaces.SocialAdapter
	lex      *lexicon.Lexicon
	maxPosts int
	nowFn    func() time.Time
}

var _ interfaces.PathSimulator = (*Simulator)(nil)

// NewSimulator wires the simulator against the price and social collaborators.
func NewSimulator(cfg *store.Config, lex *lexicon.Lexicon, price interfaces.PriceAdapter, social interfaces.SocialAdapter) *Simulator {
	return &Simulator{
		cfg:      cfg.Simulator,
		curHours: cfg.Windows.CurrentHours,
		price:    price,
		social:   social,
		lex:      lex,
		maxPosts: cfg.Social.MaxResults,
		nowFn:    time.Now,
	}
}

// WithClock replaces the simulator's clock. Tests pin it for frozen windows.
func (s *Simulator) WithClock(fn func() time.Time) *Simulator {
	s.nowFn = fn
	return s
}

// Run fetches the inputs of one simulation and produces the three scenario
// paths. Fewer than the configured minimum of closing prices is fatal for
// the invocation and surfaces as ErrInsufficientData.
func (s *Simulator) Run(ctx context.Context, ticker string, horizonDays int) (*types.SimulationResult, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d: %w", horizonDays, interfaces.ErrInsufficientData)
	}

	now := s.nowFn().UTC()

	currentPrice, err := s.price.GetCurrentPrice(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("current price for %s: %w", ticker, err)
	}
	if currentPrice <= 0 {
		return nil, fmt.Errorf("%s: non-positive current price %.4f: %w", ticker, currentPrice, interfaces.ErrInsufficientData)
	}

	start := now.AddDate(0, 0, -s.cfg.LookbackDays)
	bars, err := s.price.GetHistoricalPrices(ctx, ticker, start, now)
	if err != nil {
		return nil, fmt.Errorf("historical prices for %s: %w", ticker, err)
	}
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		closes = append(closes, b.Close)
	}

	windowStart := now.Add(-time.Duration(s.curHours) * time.Hour)
	posts, err := s.social.SearchPosts(ctx, interfaces.SearchQuery{
		Query:      signals.TickerQuery(ticker),
		MaxResults: s.maxPosts,
		StartTime:  &windowStart,
		EndTime:    &now,
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment posts for %s: %w", ticker, err)
	}

	bias := SentimentBias(s.lex, posts)
	return s.Simulate(ticker, currentPrice, closes, bias, horizonDays, now)
}

// Simulate runs the core path generation on already-fetched inputs.
func (s *Simulator) Simulate(ticker string, currentPrice float64, closes []float64, bias float64, horizonDays int, now time.Time) (*types.SimulationResult, error) {
	if len(closes) < s.cfg.MinCloses {
		return nil, fmt.Errorf("%s: %d closes, need %d: %w",
			ticker, len(closes), s.cfg.MinCloses, interfaces.ErrInsufficientData)
	}

	tradingDays := float64(s.cfg.TradingDays)
	drift, vol := annualizedStats(closes, tradingDays)
	dailyDrift := drift / tradingDays
	dailyVol := vol / math.Sqrt(tradingDays)

	rng := s.newRNG()

	scenarios := []struct {
		kind      types.ScenarioKind
		driftMult float64
		volMult   float64
	}{
		{types.ScenarioBullish, s.cfg.BullDriftMult, s.cfg.BullVolMult},
		{types.ScenarioBase, 1, 1},
		{types.ScenarioBearish, s.cfg.BearDriftMult, s.cfg.BearVolMult},
	}

	paths := make([]types.ScenarioPath, 0, len(scenarios))
	for _, sc := range scenarios {
		path := s.walk(rng, sc.kind, currentPrice, dailyDrift*sc.driftMult, dailyVol, sc.volMult, bias, horizonDays)
		paths = append(paths, path)
	}

	s.assignConfidence(paths, bias)
	s.assignProbabilities(paths, bias)

	return &types.SimulationResult{
		RunID:         uuid.New().String(),
		Ticker:        ticker,
		CurrentPrice:  currentPrice,
		HorizonDays:   horizonDays,
		SentimentBias: bias,
		Drift:         drift,
		Volatility:    vol,
		Scenarios:     paths,
		AnalyzedAt:    now,
	}, nil
}

func (s *Simulator) newRNG() *rand.Rand {
	if s.cfg.Seed != 0 {
		return rand.New(rand.NewSource(s.cfg.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// annualizedStats derives drift and volatility from daily log returns using
// the sample standard deviation.
func annualizedStats(closes []float64, tradingDays float64) (drift, vol float64) {
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] > 0 && closes[i] > 0 {
			rets = append(rets, math.Log(closes[i]/closes[i-1]))
		}
	}
	if len(rets) < 2 {
		return 0, 0
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	variance := 0.0
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets) - 1)

	return mean * tradingDays, math.Sqrt(variance) * math.Sqrt(tradingDays)
}

// walk generates one geometric Brownian motion path day by day, with the
// sentiment bias nudging the drift when its sign matches the scenario.
func (s *Simulator) walk(rng *rand.Rand, kind types.ScenarioKind, startPrice, scaledDrift, dailyVol, volMult, bias float64, horizonDays int) types.ScenarioPath {
	sentAdj := s.sentimentAdjustment(kind, bias)

	price := startPrice
	points := make([]types.PricePoint, 0, horizonDays)
	for d := 1; d <= horizonDays; d++ {
		// Standard normal via the ziggurat method, distributionally the
		// same draw a Box-Muller transform would produce.
		z := rng.NormFloat64()
		price *= math.Exp(scaledDrift + sentAdj + z*dailyVol*volMult)

		half := 1.96 * price * dailyVol * math.Sqrt(float64(d))
		lower := price - half
		if lower < 0.01 {
			lower = 0.01
		}
		points = append(points, types.PricePoint{
			Day:        d,
			Price:      price,
			UpperBound: price + half,
			LowerBound: lower,
		})
	}

	returnPct := 0.0
	if startPrice > 0 {
		returnPct = math.Round((price/startPrice-1)*100*100) / 100
	}

	return types.ScenarioPath{
		Scenario:          kind,
		Path:              points,
		FinalPrice:        price,
		ExpectedReturnPct: returnPct,
	}
}

// sentimentAdjustment is the per-day drift nudge. Directional scenarios only
// absorb the bias when it points their way; the base scenario always takes a
// half-strength nudge.
func (s *Simulator) sentimentAdjustment(kind types.ScenarioKind, bias float64) float64 {
	switch kind {
	case types.ScenarioBullish:
		if bias > 0 {
			return bias * s.cfg.SentimentAdjDir
		}
	case types.ScenarioBearish:
		if bias < 0 {
			return bias * s.cfg.SentimentAdjDir
		}
	case types.ScenarioBase:
		return bias * s.cfg.SentimentAdjBase
	}
	return 0
}

func (s *Simulator) alignedScenario(bias float64) types.ScenarioKind {
	switch {
	case bias > s.cfg.BiasThreshold:
		return types.ScenarioBullish
	case bias < -s.cfg.BiasThreshold:
		return types.ScenarioBearish
	default:
		return types.ScenarioBase
	}
}

func (s *Simulator) assignConfidence(paths []types.ScenarioPath, bias float64) {
	aligned := s.alignedScenario(bias)
	strong := math.Abs(bias) > s.cfg.BiasThreshold

	for i := range paths {
		switch {
		case paths[i].Scenario == types.ScenarioBase:
			paths[i].Confidence = s.cfg.ConfBase
		case strong && paths[i].Scenario == aligned:
			paths[i].Confidence = s.cfg.ConfAligned
		case strong:
			paths[i].Confidence = s.cfg.ConfContra
		default:
			paths[i].Confidence = s.cfg.ConfDefault
		}
	}
}

// assignProbabilities starts from equal thirds, shifts |bias|/4 from each
// non-aligned scenario toward the aligned one, floors at the configured
// minimum, then renormalizes in integer cents so the three weights sum to
// exactly 1.00.
func (s *Simulator) assignProbabilities(paths []types.ScenarioPath, bias float64) {
	aligned := s.alignedScenario(bias)
	shift := math.Abs(bias) / 4

	probs := make([]float64, len(paths))
	alignedIdx := 0
	for i := range paths {
		probs[i] = 1.0 / 3.0
		if paths[i].Scenario == aligned {
			alignedIdx = i
		}
	}
	for i := range paths {
		if i == alignedIdx {
			continue
		}
		moved := math.Min(shift, probs[i]-s.cfg.ProbFloor)
		if moved < 0 {
			moved = 0
		}
		probs[i] -= moved
		probs[alignedIdx] += moved
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}

	cents := make([]int, len(probs))
	sumCents := 0
	for i, p := range probs {
		cents[i] = int(math.Round(p / total * 100))
		sumCents += cents[i]
	}
	cents[alignedIdx] += 100 - sumCents

	for i := range paths {
		paths[i].Probability = float64(cents[i]) / 100
	}
}
