package signals

import (
	"math"

	"tickerpulse/internal/narrative"
	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

// evidence is the frozen input of one analyzer invocation.
type evidence struct {
	ticker       string
	current      []types.Post
	historical   []types.Post
	curHours     float64
	histHours    float64
	correlations []narrative.Correlation
	narratives   []types.Narrative
}

// analyzerDef is one entry of the pluggable analyzer table: the indicator
// set feeding the composite, and the local override rules applied on top of
// the LLM baseline. Ten definitions share the single pipeline in Engine.Run.
type analyzerDef struct {
	compute  func(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary)
	override overrideFunc
}

func analyzerTable() map[types.SignalType]analyzerDef {
	return map[types.SignalType]analyzerDef{
		types.SignalVolumeSurge:     {compute: computeVolumeSurge, override: overrideVolumeSurge},
		types.SignalSentimentShift:  {compute: computeSentimentShift, override: overrideSentimentShift},
		types.SignalMemeVelocity:    {compute: computeMemeVelocity, override: overrideMemeVelocity},
		types.SignalRetailHerding:   {compute: computeRetailHerding, override: overrideRetailHerding},
		types.SignalEuphoria:        {compute: computeEuphoria, override: overrideEuphoria},
		types.SignalFearCompression: {compute: computeFearCompression, override: overrideFearCompression},
		types.SignalCrowdedTrade:    {compute: computeCrowdedTrade, override: overrideCrowdedTrade},
		types.SignalCrossBorder:     {compute: computeCrossBorder, override: overrideCrossBorder},
		types.SignalSectorRotation:  {compute: computeSectorRotation, override: overrideSectorRotation},
		types.SignalMacroToMicro:    {compute: computeMacroToMicro, override: overrideMacroToMicro},
	}
}

func computeVolumeSurge(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	increase := VolumeIncreasePct(len(ev.current), len(ev.historical), ev.curHours, ev.histHours)
	velocity := EngagementVelocity(ev.current, ev.curHours)
	retail := RetailParticipation(ev.current)
	peak := PeakEngagement(ev.current)

	values := map[string]float64{
		"volume_increase":      increase,
		"engagement_velocity":  velocity,
		"retail_participation": retail * 100,
		"peak_engagement":      peak,
	}
	metadata := map[string]any{
		"volume_increase_pct":  increase,
		"current_post_count":   len(ev.current),
		"baseline_post_count":  len(ev.historical),
		"retail_participation": retail,
	}
	return values, metadata, auxiliary{}
}

func overrideVolumeSurge(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.Strong {
		c.Direction = types.DirectionBullish
		c.Timeframe = types.TimeframeShort
		return
	}
	if score < th.SurgeQuiet {
		c.Direction = types.DirectionNeutral
	}
}

func computeSentimentShift(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	curPolarity := Polarity(e.lex, ev.current)
	histPolarity := Polarity(e.lex, ev.historical)
	delta := curPolarity - histPolarity
	increase := VolumeIncreasePct(len(ev.current), len(ev.historical), ev.curHours, ev.histHours)
	velocity := EngagementVelocity(ev.current, ev.curHours)

	values := map[string]float64{
		"sentiment_delta":    math.Abs(delta) * 100,
		"current_polarity":   math.Abs(curPolarity) * 100,
		"volume_support":     increase,
		"engagement_support": velocity,
	}
	metadata := map[string]any{
		"current_polarity":    curPolarity,
		"historical_polarity": histPolarity,
		"sentiment_delta":     delta,
	}

	var aux auxiliary
	switch {
	case delta > 0:
		aux.shiftDir = types.DirectionBullish
	case delta < 0:
		aux.shiftDir = types.DirectionBearish
	default:
		aux.shiftDir = types.DirectionNeutral
	}
	return values, metadata, aux
}

func overrideSentimentShift(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.ShiftConfirm {
		c.Direction = aux.shiftDir
		c.Timeframe = types.TimeframeShort
		return
	}
	if score < th.Quiet {
		c.Direction = types.DirectionNeutral
	}
}

func computeMemeVelocity(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	tags := ComputeHashtagStats(ev.current)
	memeDensity := Coverage(ev.current, e.lex.Meme)
	quoteShare := QuoteShare(ev.current)

	values := map[string]float64{
		"hashtag_growth":      tags.GrowthRatePerHour,
		"viral_tags":          float64(tags.ViralCount),
		"meme_density":        memeDensity * 100,
		"quote_amplification": quoteShare * 100,
	}
	metadata := map[string]any{
		"top_hashtag":           tags.TopTag,
		"top_hashtag_count":     tags.TopCount,
		"hashtag_growth_per_hr": tags.GrowthRatePerHour,
		"coordinated_hashtag":   tags.Coordinated,
		"viral_hashtags":        tags.ViralCount,
	}
	return values, metadata, auxiliary{}
}

func overrideMemeVelocity(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.MemeBreakout {
		c.Direction = types.DirectionBullish
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeShort
		return
	}
	if score < th.Quiet {
		c.Direction = types.DirectionNeutral
		c.Strength = types.StrengthWeak
	}
}

func computeRetailHerding(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	retail := RetailParticipation(ev.current)
	concentration := CoordinationConcentration(ev.current)
	fresh := NewAccountShare(ev.current, e.now())
	replies := ReplyDensity(ev.current)

	values := map[string]float64{
		"retail_ratio":  retail * 100,
		"coordination":  concentration * 100,
		"new_accounts":  fresh * 100,
		"reply_density": replies * 100,
	}
	metadata := map[string]any{
		"retail_participation": retail,
		"largest_hour_bucket":  concentration,
		"coordinated_activity": concentration > 0.3,
		"new_account_share":    fresh,
	}
	return values, metadata, auxiliary{}
}

func overrideRetailHerding(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	// Heavy one-sided retail crowding reads contrarian.
	if score >= th.Strong {
		c.Direction = types.DirectionBearish
		c.Timeframe = types.TimeframeMedium
		return
	}
	if score < th.HerdingQuiet {
		c.Direction = types.DirectionNeutral
	}
}

func computeEuphoria(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	euphoria := Coverage(ev.current, e.lex.Euphoria)
	hype := Coverage(ev.current, e.lex.PriceTarget)
	peak := PeakEngagement(ev.current)
	exclaim := ExclamationIntensity(ev.current)

	values := map[string]float64{
		"euphoria_density":      euphoria * 100,
		"price_target_hype":     hype * 100,
		"peak_engagement":       peak,
		"exclamation_intensity": exclaim,
	}
	metadata := map[string]any{
		"euphoria_level":    euphoria,
		"price_target_hype": hype,
	}
	return values, metadata, auxiliary{}
}

func overrideEuphoria(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	// Euphoria is a contrarian top warning.
	if score >= th.Strong {
		c.Direction = types.DirectionBearish
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeMedium
		return
	}
	if score >= th.Moderate {
		c.Direction = types.DirectionBearish
	}
}

func computeFearCompression(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	currentFear := FearLevel(e.lex, ev.current)
	historicalFear := FearLevel(e.lex, ev.historical)
	capitulation := Coverage(ev.current, e.lex.Capitulation)
	recovery := Coverage(ev.current, e.lex.Recovery)
	increase := VolumeIncreasePct(len(ev.current), len(ev.historical), ev.curHours, ev.histHours)

	fearTrend := "stable"
	switch {
	case currentFear < historicalFear-0.1:
		fearTrend = "declining"
	case currentFear > historicalFear+0.1:
		fearTrend = "rising"
	}

	values := map[string]float64{
		"fear_decline":      (historicalFear - currentFear) * 100,
		"capitulation":      capitulation * 100,
		"recovery_language": recovery * 100,
		"volume_stability":  100 - math.Abs(increase),
	}
	metadata := map[string]any{
		"currentFearLevel":    currentFear,
		"historicalFearLevel": historicalFear,
		"fearTrend":           fearTrend,
		"capitulation":        capitulation,
	}
	return values, metadata, auxiliary{capitulation: capitulation}
}

func overrideFearCompression(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.FearReversal && aux.capitulation > th.WashoutCapitulation {
		c.Direction = types.DirectionBullish
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeMedium
		return
	}
	if score >= th.Moderate {
		// Without heavy capitulation the bounce call stays tentative.
		c.Direction = types.DirectionBullish
		c.Strength = types.StrengthModerate
	}
}

func computeCrowdedTrade(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	increase := VolumeIncreasePct(len(ev.current), len(ev.historical), ev.curHours, ev.histHours)
	bullFrac, bearFrac, labeled := SentimentBreakdown(e.lex, ev.current)
	unanimity := math.Max(bullFrac, bearFrac)
	leverage := Coverage(ev.current, e.lex.Leverage)
	verified := VerifiedShare(ev.current)
	capitulation := Coverage(ev.current, e.lex.Capitulation)

	values := map[string]float64{
		"volume_increase":     increase,
		"unanimity":           unanimity * 100,
		"leverage_mentions":   leverage * 100,
		"verified_saturation": verified * 100,
	}
	metadata := map[string]any{
		"volume_increase_pct": increase,
		"unanimity":           unanimity,
		"labeled_posts":       labeled,
		"leverage_mentions":   leverage,
		"capitulation":        capitulation,
	}
	return values, metadata, auxiliary{capitulation: capitulation}
}

func overrideCrowdedTrade(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score > th.CrowdedExit {
		// Everyone is already in the trade; the marginal buyer is gone.
		c.Direction = types.DirectionBearish
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeShort
		return
	}
	if score < th.WashoutScore && aux.capitulation > th.WashoutCapitulation {
		c.Direction = types.DirectionBullish
		c.Strength = types.StrengthModerate
		c.Timeframe = types.TimeframeMedium
	}
}

func computeCrossBorder(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	geo := ComputeGeoStats(e.lex, ev.current, ev.curHours)

	values := map[string]float64{
		"region_count":       float64(len(geo.Regions)),
		"cross_border_posts": float64(geo.CrossBorderPosts),
		"trend_matches":      float64(geo.TrendMatches),
		"geo_engagement":     geo.GeoEngagement,
	}
	metadata := map[string]any{
		"regions":            geo.Regions,
		"cross_border_posts": geo.CrossBorderPosts,
		"cross_border_trend": geo.CrossBorderTrend,
	}
	return values, metadata, auxiliary{}
}

func overrideCrossBorder(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.CrossBorderStrong {
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeMedium
		return
	}
	if score < th.Quiet {
		c.Strength = types.StrengthWeak
	}
}

func computeSectorRotation(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	increase := VolumeIncreasePct(len(ev.current), len(ev.historical), ev.curHours, ev.histHours)
	bullFrac, bearFrac, _ := SentimentBreakdown(e.lex, ev.current)
	breadth := TickerBreadth(ev.current)
	institutional := Coverage(ev.current, e.lex.Institutional)

	values := map[string]float64{
		"sector_volume_shift":    increase,
		"relative_sentiment":     (bullFrac - bearFrac) * 100,
		"ticker_breadth":         float64(breadth),
		"institutional_language": institutional * 100,
	}
	metadata := map[string]any{
		"sector_volume_shift": increase,
		"ticker_breadth":      breadth,
		"institutional":       institutional,
	}
	return values, metadata, auxiliary{}
}

func overrideSectorRotation(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if score >= th.Strong {
		c.Direction = types.DirectionBullish
		c.Timeframe = types.TimeframeLong
		return
	}
	if score < th.HerdingQuiet {
		c.Direction = types.DirectionNeutral
	}
}

func computeMacroToMicro(e *Engine, ev *evidence) (map[string]float64, map[string]any, auxiliary) {
	var aux auxiliary

	if len(ev.correlations) == 0 {
		// Every candidate narrative fell below the correlation floor.
		return map[string]float64{}, map[string]any{
			"narratives_considered": len(ev.narratives),
			"narratives_matched":    0,
		}, aux
	}

	best := ev.correlations[0]
	for _, corr := range ev.correlations[1:] {
		if corr.CorrelationScore > best.CorrelationScore {
			best = corr
		}
	}

	aux.hasNarrative = true
	aux.narrativeDir = best.Narrative.Sentiment.Label

	values := map[string]float64{
		"best_correlation": best.CorrelationScore,
		"timing":           best.TimingScore,
		"relevance":        best.RelevanceScore,
	}
	metadata := map[string]any{
		"narratives_considered": len(ev.narratives),
		"narratives_matched":    len(ev.correlations),
		"best_narrative_id":     best.Narrative.ID,
		"best_narrative_title":  best.Narrative.Title,
		"keyword_overlap":       best.KeywordOverlap,
		"lag_days":              best.LagDays,
	}
	return values, metadata, aux
}

func overrideMacroToMicro(c *types.SignalClassification, score float64, aux auxiliary, th store.Thresholds) {
	if !aux.hasNarrative {
		c.Direction = types.DirectionNeutral
		c.Strength = types.StrengthWeak
		return
	}
	if score >= th.Strong {
		c.Direction = aux.narrativeDir
		c.Strength = types.StrengthStrong
		c.Timeframe = types.TimeframeMedium
	}
}
