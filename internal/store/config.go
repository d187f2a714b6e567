package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tickerpulse/internal/types"
)

// ComponentWeight configures one weighted sub-score of an analyzer. The
// component's contribution is value*weight clamped to [0, cap], and the caps
// of one analyzer always sum to 100.
type ComponentWeight struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Cap    float64 `yaml:"cap"`
}

// Thresholds holds the override cut-offs shared by the classifiers. These
// encode product judgment calls; defaults match the documented values and
// are kept configurable for review.
type Thresholds struct {
	Strong              float64 `yaml:"strong"`               // strength: >= strong
	Moderate            float64 `yaml:"moderate"`             // strength: >= moderate
	Quiet               float64 `yaml:"quiet"`                // below this the signal is noise
	SurgeQuiet          float64 `yaml:"surge_quiet"`          // volume surge noise floor
	ShiftConfirm        float64 `yaml:"shift_confirm"`        // sentiment shift directional score
	MemeBreakout        float64 `yaml:"meme_breakout"`        // meme velocity strong score
	HerdingQuiet        float64 `yaml:"herding_quiet"`        // retail herding / sector rotation noise floor
	CrowdedExit         float64 `yaml:"crowded_exit"`         // crowded trade exit score
	WashoutScore        float64 `yaml:"washout_score"`        // crowded trade washout ceiling
	WashoutCapitulation float64 `yaml:"washout_capitulation"` // capitulation floor for washout
	FearReversal        float64 `yaml:"fear_reversal"`        // fear compression bullish score
	CrossBorderStrong   float64 `yaml:"cross_border_strong"`  // cross border strong score
	NarrativeMinCorr    float64 `yaml:"narrative_min_corr"`   // drop narratives below this
}

// SimulatorConfig parameterizes the Monte Carlo price path simulator.
type SimulatorConfig struct {
	MinCloses        int     `yaml:"min_closes"`
	TradingDays      int     `yaml:"trading_days"`
	LookbackDays     int     `yaml:"lookback_days"`
	BullDriftMult    float64 `yaml:"bull_drift_mult"`
	BullVolMult      float64 `yaml:"bull_vol_mult"`
	BearDriftMult    float64 `yaml:"bear_drift_mult"`
	BearVolMult      float64 `yaml:"bear_vol_mult"`
	SentimentAdjDir  float64 `yaml:"sentiment_adj_directional"` // per-day drift nudge, directional scenarios
	SentimentAdjBase float64 `yaml:"sentiment_adj_base"`        // per-day drift nudge, base scenario
	BiasThreshold    float64 `yaml:"bias_threshold"`            // |bias| beyond which sentiment counts
	ConfBase         float64 `yaml:"confidence_base"`
	ConfAligned      float64 `yaml:"confidence_aligned"`
	ConfContra       float64 `yaml:"confidence_contradicting"`
	ConfDefault      float64 `yaml:"confidence_default"`
	ProbFloor        float64 `yaml:"probability_floor"`
	Seed             int64   `yaml:"seed"` // 0 = time-seeded
}

// Config is the engine configuration loaded from yaml.
type Config struct {
	Windows struct {
		CurrentHours    int `yaml:"current_hours"`
		HistoricalHours int `yaml:"historical_hours"`
	} `yaml:"windows"`

	Social struct {
		MaxResults    int `yaml:"max_results"`
		BaselinePosts int `yaml:"baseline_posts"`
	} `yaml:"social"`

	// Sectors maps a sector name to the OR'd keyword group used by the
	// sector_rotation query. TickerSectors maps tickers into Sectors.
	Sectors       map[string][]string `yaml:"sectors"`
	TickerSectors map[string]string   `yaml:"ticker_sectors"`

	// Components maps a signal type to its weighted sub-scores.
	Components map[string][]ComponentWeight `yaml:"components"`

	Thresholds Thresholds `yaml:"thresholds"`

	Simulator SimulatorConfig `yaml:"simulator"`

	// ExtraKeywords extends the built-in lexicon tables per category.
	ExtraKeywords map[string][]string `yaml:"extra_keywords"`
}

// DefaultConfig returns a fully populated configuration with the documented
// default weights and thresholds.
func DefaultConfig() *Config {
	c := &Config{}
	c.Windows.CurrentHours = 24
	c.Windows.HistoricalHours = 168
	c.Social.MaxResults = 100
	c.Social.BaselinePosts = 30

	c.Sectors = map[string][]string{
		"semiconductors": {"semiconductor", "chips", "foundry", "GPU"},
		"ev":             {"EV", "electric vehicle", "battery", "charging"},
		"banks":          {"bank", "lending", "deposits", "rates"},
	}
	c.TickerSectors = map[string]string{}

	c.Components = map[string][]ComponentWeight{
		string(types.SignalVolumeSurge): {
			{Name: "volume_increase", Weight: 0.4, Cap: 40},
			{Name: "engagement_velocity", Weight: 0.5, Cap: 25},
			{Name: "retail_participation", Weight: 0.2, Cap: 20},
			{Name: "peak_engagement", Weight: 0.01, Cap: 15},
		},
		string(types.SignalSentimentShift): {
			{Name: "sentiment_delta", Weight: 0.2, Cap: 40},
			{Name: "current_polarity", Weight: 0.3, Cap: 30},
			{Name: "volume_support", Weight: 0.2, Cap: 20},
			{Name: "engagement_support", Weight: 0.2, Cap: 10},
		},
		string(types.SignalMemeVelocity): {
			{Name: "hashtag_growth", Weight: 5, Cap: 35},
			{Name: "viral_tags", Weight: 12.5, Cap: 25},
			{Name: "meme_density", Weight: 0.25, Cap: 25},
			{Name: "quote_amplification", Weight: 0.15, Cap: 15},
		},
		string(types.SignalRetailHerding): {
			{Name: "retail_ratio", Weight: 0.4, Cap: 40},
			{Name: "coordination", Weight: 0.6, Cap: 30},
			{Name: "new_accounts", Weight: 0.4, Cap: 20},
			{Name: "reply_density", Weight: 0.1, Cap: 10},
		},
		string(types.SignalEuphoria): {
			{Name: "euphoria_density", Weight: 0.4, Cap: 40},
			{Name: "price_target_hype", Weight: 0.25, Cap: 25},
			{Name: "peak_engagement", Weight: 0.01, Cap: 20},
			{Name: "exclamation_intensity", Weight: 5, Cap: 15},
		},
		string(types.SignalFearCompression): {
			{Name: "fear_decline", Weight: 0.8, Cap: 40},
			{Name: "capitulation", Weight: 0.3, Cap: 30},
			{Name: "recovery_language", Weight: 0.2, Cap: 20},
			{Name: "volume_stability", Weight: 0.1, Cap: 10},
		},
		string(types.SignalCrowdedTrade): {
			{Name: "volume_increase", Weight: 0.4, Cap: 40},
			{Name: "unanimity", Weight: 0.3, Cap: 30},
			{Name: "leverage_mentions", Weight: 0.2, Cap: 20},
			{Name: "verified_saturation", Weight: 0.1, Cap: 10},
		},
		string(types.SignalCrossBorder): {
			{Name: "region_count", Weight: 10, Cap: 30},
			{Name: "cross_border_posts", Weight: 10, Cap: 30},
			{Name: "trend_matches", Weight: 5, Cap: 25},
			{Name: "geo_engagement", Weight: 0.5, Cap: 15},
		},
		string(types.SignalSectorRotation): {
			{Name: "sector_volume_shift", Weight: 0.35, Cap: 35},
			{Name: "relative_sentiment", Weight: 0.25, Cap: 25},
			{Name: "ticker_breadth", Weight: 2.5, Cap: 25},
			{Name: "institutional_language", Weight: 0.15, Cap: 15},
		},
		string(types.SignalMacroToMicro): {
			{Name: "best_correlation", Weight: 0.4, Cap: 40},
			{Name: "timing", Weight: 0.3, Cap: 30},
			{Name: "relevance", Weight: 0.3, Cap: 30},
		},
	}

	c.Thresholds = Thresholds{
		Strong:              70,
		Moderate:            40,
		Quiet:               25,
		SurgeQuiet:          20,
		ShiftConfirm:        60,
		MemeBreakout:        75,
		HerdingQuiet:        30,
		CrowdedExit:         70,
		WashoutScore:        30,
		WashoutCapitulation: 0.7,
		FearReversal:        60,
		CrossBorderStrong:   65,
		NarrativeMinCorr:    40,
	}

	c.Simulator = SimulatorConfig{
		MinCloses:        20,
		TradingDays:      252,
		LookbackDays:     180,
		BullDriftMult:    1.5,
		BullVolMult:      0.9,
		BearDriftMult:    0.5,
		BearVolMult:      1.1,
		SentimentAdjDir:  0.002,
		SentimentAdjBase: 0.001,
		BiasThreshold:    0.3,
		ConfBase:         0.6,
		ConfAligned:      0.7,
		ConfContra:       0.3,
		ConfDefault:      0.5,
		ProbFloor:        0.05,
	}

	c.ExtraKeywords = map[string][]string{}
	return c
}

// Validate checks structural invariants of the configuration.
func (c *Config) Validate() error {
	if c.Windows.CurrentHours <= 0 || c.Windows.HistoricalHours <= 0 {
		return fmt.Errorf("windows must be positive, got current=%d historical=%d",
			c.Windows.CurrentHours, c.Windows.HistoricalHours)
	}
	if c.Social.MaxResults <= 0 || c.Social.MaxResults > 100 {
		return fmt.Errorf("social.max_results must be in 1..100, got %d", c.Social.MaxResults)
	}
	if c.Social.BaselinePosts <= 0 || c.Social.BaselinePosts > 30 {
		return fmt.Errorf("social.baseline_posts must be in 1..30, got %d", c.Social.BaselinePosts)
	}
	for _, st := range types.AllSignalTypes {
		comps, ok := c.Components[string(st)]
		if !ok || len(comps) == 0 {
			return fmt.Errorf("no components configured for signal type %q", st)
		}
		if len(comps) < 3 || len(comps) > 5 {
			return fmt.Errorf("signal type %q must have 3-5 components, got %d", st, len(comps))
		}
		sum := 0.0
		for _, cw := range comps {
			if cw.Cap <= 0 {
				return fmt.Errorf("component %s.%s has non-positive cap", st, cw.Name)
			}
			sum += cw.Cap
		}
		if sum != 100 {
			return fmt.Errorf("component caps for %q must sum to 100, got %.2f", st, sum)
		}
	}
	if c.Simulator.MinCloses < 2 {
		return fmt.Errorf("simulator.min_closes must be at least 2, got %d", c.Simulator.MinCloses)
	}
	return nil
}

// LoadConfig reads yaml over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}
