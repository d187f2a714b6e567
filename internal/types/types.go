package types

import "time"

// SignalType identifies one of the ten analyzer kinds.
type SignalType string

const (
	SignalVolumeSurge     SignalType = "volume_surge"
	SignalSentimentShift  SignalType = "sentiment_shift"
	SignalMemeVelocity    SignalType = "meme_velocity"
	SignalRetailHerding   SignalType = "retail_herding"
	SignalEuphoria        SignalType = "euphoria"
	SignalFearCompression SignalType = "fear_compression"
	SignalCrowdedTrade    SignalType = "crowded_trade"
	SignalCrossBorder     SignalType = "cross_border"
	SignalSectorRotation  SignalType = "sector_rotation"
	SignalMacroToMicro    SignalType = "macro_to_micro"
)

// AllSignalTypes lists every analyzer kind in a stable order.
var AllSignalTypes = []SignalType{
	SignalVolumeSurge,
	SignalSentimentShift,
	SignalMemeVelocity,
	SignalRetailHerding,
	SignalEuphoria,
	SignalFearCompression,
	SignalCrowdedTrade,
	SignalCrossBorder,
	SignalSectorRotation,
	SignalMacroToMicro,
}

// Direction is the directional call of a classification.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// Strength grades how pronounced a signal is.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Timeframe is the horizon a signal is expected to play out over.
type Timeframe string

const (
	TimeframeShort  Timeframe = "short"
	TimeframeMedium Timeframe = "medium"
	TimeframeLong   Timeframe = "long"
)

// Momentum describes how a narrative is trending.
type Momentum string

const (
	MomentumRising    Momentum = "rising"
	MomentumStable    Momentum = "stable"
	MomentumDeclining Momentum = "declining"
)

// UserProfile is the author of a post. CreatedAt drives new-account flags.
type UserProfile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Verified       bool      `json:"verified"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostCount      int       `json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	URL            string    `json:"url,omitempty"`
}

// Engagement holds per-post interaction counts. Impressions and bookmarks
// are optional and zero when the upstream API omits them.
type Engagement struct {
	Likes       int `json:"likes"`
	Retweets    int `json:"retweets"`
	Replies     int `json:"replies"`
	Quotes      int `json:"quotes"`
	Impressions int `json:"impressions,omitempty"`
	Bookmarks   int `json:"bookmarks,omitempty"`
}

// Post is one piece of social evidence. Immutable; owned by the invocation
// that fetched it and never persisted.
type Post struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Author     UserProfile `json:"author"`
	CreatedAt  time.Time   `json:"created_at"`
	Engagement Engagement  `json:"engagement"`
	Language   string      `json:"language,omitempty"`
	RetweetOf  string      `json:"retweet_of,omitempty"`
	QuoteOf    string      `json:"quote_of,omitempty"`
	ReplyTo    string      `json:"reply_to,omitempty"`
	Hashtags   []string    `json:"hashtags,omitempty"`
	Mentions   []string    `json:"mentions,omitempty"`
	URLs       []string    `json:"urls,omitempty"`
	Tickers    []string    `json:"tickers,omitempty"`
}

// WeightedEngagement scores a post's interactions with retweets counted twice.
func (p Post) WeightedEngagement() float64 {
	return float64(p.Engagement.Likes + 2*p.Engagement.Retweets + p.Engagement.Replies + p.Engagement.Quotes)
}

// PriceBar is one OHLCV observation. Bars arrive in ascending timestamp
// order with high >= max(open, close), low <= min(open, close), all > 0.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// SentimentAnalysis is the LLM collaborator's read of a body of text.
type SentimentAnalysis struct {
	Score      float64   `json:"score"`      // -1..1
	Label      Direction `json:"label"`
	Confidence float64   `json:"confidence"` // (0,1]
	Keywords   []string  `json:"keywords,omitempty"`
	Reasoning  string    `json:"reasoning,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Narrative is an externally detected market theme spanning many posts.
type Narrative struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Category       string            `json:"category,omitempty"`
	Sentiment      SentimentAnalysis `json:"sentiment"`
	PostCount      int               `json:"post_count"`
	TopPostIDs     []string          `json:"top_post_ids,omitempty"` // at most 3
	StartedAt      time.Time         `json:"started_at"`
	LastSeenAt     time.Time         `json:"last_seen_at"`
	Momentum       Momentum          `json:"momentum"`
	RelatedTickers []string          `json:"related_tickers,omitempty"`
}

// SignalClassification is the canonical output of a signal run. The LLM
// collaborator produces the baseline; analyzers override direction,
// strength, and timeframe locally but never the confidence.
type SignalClassification struct {
	Type        SignalType     `json:"type"`
	Strength    Strength       `json:"strength"`
	Confidence  float64        `json:"confidence"` // (0,1], always the baseline's
	Direction   Direction      `json:"direction"`
	Timeframe   Timeframe      `json:"timeframe"`
	Tickers     []string       `json:"tickers"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Component is one weighted sub-score feeding a composite. Contribution is
// value*weight clamped to [0, cap].
type Component struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Cap          float64 `json:"cap"`
	Contribution float64 `json:"contribution"`
}

// AnalyzerResult is the structured outcome of one signal run. Created fresh
// per call, never mutated, never cached.
type AnalyzerResult struct {
	Ticker         string               `json:"ticker"`
	Type           SignalType           `json:"type"`
	Score          float64              `json:"score"` // 0..100
	Components     []Component          `json:"components"`
	Classification SignalClassification `json:"classification"`
	Evidence       []Post               `json:"evidence"`
	Baseline       []Post               `json:"baseline,omitempty"`
	Narratives     []Narrative          `json:"narratives,omitempty"`
	AnalyzedAt     time.Time            `json:"analyzed_at"`
}

// ScenarioKind names a simulated price path scenario.
type ScenarioKind string

const (
	ScenarioBullish ScenarioKind = "bullish"
	ScenarioBase    ScenarioKind = "base"
	ScenarioBearish ScenarioKind = "bearish"
)

// PricePoint is one simulated day with its 95% confidence band.
type PricePoint struct {
	Day        int     `json:"day"`
	Price      float64 `json:"price"`
	UpperBound float64 `json:"upper_bound"`
	LowerBound float64 `json:"lower_bound"`
}

// ScenarioPath is one simulated trajectory with its rule-based confidence
// and probability weight.
type ScenarioPath struct {
	Scenario          ScenarioKind `json:"scenario"`
	Path              []PricePoint `json:"path"`
	FinalPrice        float64      `json:"final_price"`
	ExpectedReturnPct float64      `json:"expected_return_pct"` // rounded to 2dp
	Confidence        float64      `json:"confidence"`
	Probability       float64      `json:"probability"`
}

// SimulationResult holds the three scenario paths for one run. Probabilities
// always sum to exactly 1.00.
type SimulationResult struct {
	RunID         string         `json:"run_id"`
	Ticker        string         `json:"ticker"`
	CurrentPrice  float64        `json:"current_price"`
	HorizonDays   int            `json:"horizon_days"`
	SentimentBias float64        `json:"sentiment_bias"` // -1..1
	Drift         float64        `json:"annualized_drift"`
	Volatility    float64        `json:"annualized_volatility"`
	Scenarios     []ScenarioPath `json:"scenarios"`
	AnalyzedAt    time.Time      `json:"analyzed_at"`
}
