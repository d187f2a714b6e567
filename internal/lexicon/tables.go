package lexicon

import "fmt"

// Category names used across the built-in tables.
const (
	CategoryBullish       = "bullish"
	CategoryBearish       = "bearish"
	CategoryEuphoria      = "euphoria"
	CategoryPanic         = "panic"
	CategoryCapitulation  = "capitulation"
	CategoryRecovery      = "recovery"
	CategoryMeme          = "meme"
	CategoryLeverage      = "leverage"
	CategoryPriceTarget   = "price_target"
	CategoryInstitutional = "institutional"
	CategoryTrendType     = "trend_type"
)

// RegionMatch is one region hit on a post.
type RegionMatch struct {
	Region string
}

// Lexicon bundles the immutable pattern tables shared by the analyzers.
// Tables are loaded once at startup; matching is stateless.
type Lexicon struct {
	Bullish       *PatternSet
	Bearish       *PatternSet
	Euphoria      *PatternSet
	Panic         *PatternSet
	Capitulation  *PatternSet
	Recovery      *PatternSet
	Meme          *PatternSet
	Leverage      *PatternSet
	PriceTarget   *PatternSet
	Institutional *PatternSet
	TrendType     *PatternSet

	regions []regionTable
}

type regionTable struct {
	region string
	set    *PatternSet
}

// Word lists follow the financial sentiment dictionary style; social slang
// included because the evidence is social discourse, not filings.

var bullishWords = []string{
	"moon", "bullish", "calls", "buy", "long", "breakout", "rally",
	"squeeze", "undervalued", "accumulate", "uptrend", "higher highs",
	"rocket", "printing", "gains", "ath", "all time high", "golden cross",
}

var bearishWords = []string{
	"puts", "bearish", "sell", "short", "dump", "crash", "overvalued",
	"bagholder", "downtrend", "lower lows", "rug", "drilling", "red",
	"death cross", "bubble", "top is in",
}

var euphoriaWords = []string{
	"cant lose", "can't lose", "free money", "guaranteed", "to the moon",
	"lambo", "yolo", "all in", "life savings", "generational wealth",
	"never selling", "infinite", "1000x", "easy money", "no brainer",
}

var panicWords = []string{
	"crash", "panic", "collapse", "bloodbath", "freefall", "get out",
	"it's over", "its over", "wiped out", "margin call", "liquidated",
	"disaster", "plummet", "meltdown",
}

var capitulationWords = []string{
	"capitulation", "bottom", "oversold", "max pain", "threw in the towel",
	"gave up", "sold everything", "washed out", "despair", "exhausted",
}

var recoveryWords = []string{
	"recovering", "recovery", "bounce", "bottomed", "reversal", "relief",
	"stabilizing", "basing", "turning around", "green shoots",
}

var memeWords = []string{
	"stonks", "tendies", "diamond hands", "paper hands", "apes", "hodl",
	"wen lambo", "brrr", "chad", "gigachad", "bags", "fomo", "ngmi", "wagmi",
}

var leverageWords = []string{
	"leverage", "margin", "options", "calls expiring", "0dte", "weeklies",
	"leaps", "futures", "10x", "20x", "levered",
}

var priceTargetWords = []string{
	"price target", "pt raised", "next stop", "$1000", "going to",
	"fair value", "easily worth", "minimum", "conservative target",
}

var institutionalWords = []string{
	"institutional", "fund flows", "rotation", "allocation", "rebalancing",
	"overweight", "underweight", "upgrades", "downgrades", "13f", "hedge fund",
}

var trendTypeWords = []string{
	"trend", "trending", "momentum", "spreading", "going global",
	"everywhere", "worldwide", "viral",
}

// Region tables are fixed ordered regex tables; a post may match several
// regions.
var regionPatterns = map[string][]string{
	"north_america": {
		`\b(nyse|nasdaq|wall street|sec|fed|dow|s&p|united states|usa|canada|tsx)\b`,
	},
	"europe": {
		`\b(ftse|dax|cac|lse|ecb|europe|london|frankfurt|paris|eu markets)\b`,
	},
	"asia": {
		`\b(nikkei|hang seng|shanghai|shenzhen|kospi|sensex|nifty|tokyo|asia|japan|china|korea|india)\b`,
	},
	"latin_america": {
		`\b(bovespa|b3|bmv|brazil|mexico|argentina|latam)\b`,
	},
	"middle_east": {
		`\b(tadawul|adx|dfm|saudi|dubai|abu dhabi|gulf)\b`,
	},
}

var regionOrder = []string{"north_america", "europe", "asia", "latin_america", "middle_east"}

// NewLexicon builds the built-in tables, optionally extended with
// per-category extra keywords from configuration. Invalid extensions fail
// construction.
func NewLexicon(extra map[string][]string) (*Lexicon, error) {
	known := map[string]struct{}{
		CategoryBullish: {}, CategoryBearish: {}, CategoryEuphoria: {},
		CategoryPanic: {}, CategoryCapitulation: {}, CategoryRecovery: {},
		CategoryMeme: {}, CategoryLeverage: {}, CategoryPriceTarget: {},
		CategoryInstitutional: {}, CategoryTrendType: {},
	}
	for category := range extra {
		if _, ok := known[category]; !ok {
			return nil, fmt.Errorf("unknown keyword category %q", category)
		}
	}

	build := func(name, category string, words []string) (*PatternSet, error) {
		return Keywords(name, category, append(append([]string{}, words...), extra[category]...))
	}

	var (
		lex Lexicon
		err error
	)
	if lex.Bullish, err = build("bullish", CategoryBullish, bullishWords); err != nil {
		return nil, err
	}
	if lex.Bearish, err = build("bearish", CategoryBearish, bearishWords); err != nil {
		return nil, err
	}
	if lex.Euphoria, err = build("euphoria", CategoryEuphoria, euphoriaWords); err != nil {
		return nil, err
	}
	if lex.Panic, err = build("panic", CategoryPanic, panicWords); err != nil {
		return nil, err
	}
	if lex.Capitulation, err = build("capitulation", CategoryCapitulation, capitulationWords); err != nil {
		return nil, err
	}
	if lex.Recovery, err = build("recovery", CategoryRecovery, recoveryWords); err != nil {
		return nil, err
	}
	if lex.Meme, err = build("meme", CategoryMeme, memeWords); err != nil {
		return nil, err
	}
	if lex.Leverage, err = build("leverage", CategoryLeverage, leverageWords); err != nil {
		return nil, err
	}
	if lex.PriceTarget, err = build("price_target", CategoryPriceTarget, priceTargetWords); err != nil {
		return nil, err
	}
	if lex.Institutional, err = build("institutional", CategoryInstitutional, institutionalWords); err != nil {
		return nil, err
	}
	if lex.TrendType, err = build("trend_type", CategoryTrendType, trendTypeWords); err != nil {
		return nil, err
	}

	for _, region := range regionOrder {
		patterns := make([]Pattern, 0, len(regionPatterns[region]))
		for _, expr := range regionPatterns[region] {
			patterns = append(patterns, Pattern{Expr: expr, Category: region, IsRegex: true})
		}
		set, err := NewPatternSet(fmt.Sprintf("region:%s", region), patterns)
		if err != nil {
			return nil, err
		}
		lex.regions = append(lex.regions, regionTable{region: region, set: set})
	}

	return &lex, nil
}

// Regions returns the regions the text matches, in table order.
func (l *Lexicon) Regions(text string) []string {
	var out []string
	for _, rt := range l.regions {
		if rt.set.Matches(text) {
			out = append(out, rt.region)
		}
	}
	return out
}
