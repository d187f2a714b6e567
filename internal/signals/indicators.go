package signals

import (
	"strings"
	"time"

	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/types"
)

// Indicator calculators. All of them absorb degraded input locally: empty
// post sets and zero denominators produce the documented neutral defaults,
// never NaN or an error.

const (
	retailFollowerCeiling = 10_000
	newAccountMaxAge      = 30 * 24 * time.Hour
)

// VolumeIncreasePct compares current post volume against the historical
// baseline normalized to the current window's length. A zero baseline
// yields 0, not an infinite increase.
func VolumeIncreasePct(currentCount, historicalCount int, currentHours, historicalHours float64) float64 {
	if historicalHours <= 0 {
		return 0
	}
	avg := float64(historicalCount) * (currentHours / historicalHours)
	if avg == 0 {
		return 0
	}
	return (float64(currentCount) - avg) / avg * 100
}

// WeightedEngagementTotal sums likes + 2*retweets + replies + quotes.
func WeightedEngagementTotal(posts []types.Post) float64 {
	total := 0.0
	for _, p := range posts {
		total += p.WeightedEngagement()
	}
	return total
}

// EngagementVelocity is weighted engagement per hour of window.
func EngagementVelocity(posts []types.Post, windowHours float64) float64 {
	if windowHours <= 0 {
		return 0
	}
	return WeightedEngagementTotal(posts) / windowHours
}

// PeakEngagement is the highest weighted engagement of any post, 0 if empty.
func PeakEngagement(posts []types.Post) float64 {
	peak := 0.0
	for _, p := range posts {
		if w := p.WeightedEngagement(); w > peak {
			peak = w
		}
	}
	return peak
}

func distinctAuthors(posts []types.Post) map[string]types.UserProfile {
	authors := make(map[string]types.UserProfile)
	for _, p := range posts {
		if p.Author.ID == "" {
			continue
		}
		if _, seen := authors[p.Author.ID]; !seen {
			authors[p.Author.ID] = p.Author
		}
	}
	return authors
}

// RetailParticipation is the fraction of distinct authors with fewer than
// 10k followers.
func RetailParticipation(posts []types.Post) float64 {
	authors := distinctAuthors(posts)
	if len(authors) == 0 {
		return 0
	}
	retail := 0
	for _, a := range authors {
		if a.FollowersCount < retailFollowerCeiling {
			retail++
		}
	}
	return float64(retail) / float64(len(authors))
}

// NewAccountShare is the fraction of distinct authors whose account is
// younger than 30 days. Authors with an unknown creation time do not count
// as new.
func NewAccountShare(posts []types.Post, now time.Time) float64 {
	authors := distinctAuthors(posts)
	if len(authors) == 0 {
		return 0
	}
	fresh := 0
	for _, a := range authors {
		if !a.CreatedAt.IsZero() && now.Sub(a.CreatedAt) < newAccountMaxAge {
			fresh++
		}
	}
	return float64(fresh) / float64(len(authors))
}

// ReplyDensity is the fraction of posts that are replies.
func ReplyDensity(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	replies := 0
	for _, p := range posts {
		if p.ReplyTo != "" {
			replies++
		}
	}
	return float64(replies) / float64(len(posts))
}

// QuoteShare is the fraction of posts that quote another post.
func QuoteShare(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	quotes := 0
	for _, p := range posts {
		if p.QuoteOf != "" {
			quotes++
		}
	}
	return float64(quotes) / float64(len(posts))
}

// VerifiedShare is the fraction of posts authored by verified accounts.
func VerifiedShare(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	verified := 0
	for _, p := range posts {
		if p.Author.Verified {
			verified++
		}
	}
	return float64(verified) / float64(len(posts))
}

// ExclamationIntensity is the mean number of exclamation marks per post.
func ExclamationIntensity(posts []types.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += strings.Count(p.Text, "!")
	}
	return float64(total) / float64(len(posts))
}

// Coverage is the fraction of posts hitting at least one pattern of the
// set, clamped to [0,1].
func Coverage(posts []types.Post, set *lexicon.PatternSet) float64 {
	if len(posts) == 0 {
		return 0
	}
	hits := 0
	for _, p := range posts {
		if set.Matches(p.Text) {
			hits++
		}
	}
	return clamp(float64(hits)/float64(len(posts)), 0, 1)
}

// PostLabel classifies one post by bullish/bearish keyword-category
// majority; ties and keyword-free posts are neutral.
func PostLabel(lex *lexicon.Lexicon, post types.Post) types.Direction {
	bull := lex.Bullish.Count(post.Text)
	bear := lex.Bearish.Count(post.Text)
	switch {
	case bull > bear:
		return types.DirectionBullish
	case bear > bull:
		return types.DirectionBearish
	default:
		return types.DirectionNeutral
	}
}

// SentimentBreakdown returns the bullish and bearish fractions among the
// posts carrying directional keyword evidence, plus how many were labeled.
// Posts with no sentiment keywords carry no direction and are excluded from
// the denominator.
func SentimentBreakdown(lex *lexicon.Lexicon, posts []types.Post) (bullFrac, bearFrac float64, labeled int) {
	bull, bear := 0, 0
	for _, p := range posts {
		switch PostLabel(lex, p) {
		case types.DirectionBullish:
			bull++
		case types.DirectionBearish:
			bear++
		}
	}
	labeled = bull + bear
	if labeled == 0 {
		return 0, 0, 0
	}
	return float64(bull) / float64(labeled), float64(bear) / float64(labeled), labeled
}

// AggregateLabel requires a >60% majority in one direction among labeled
// posts; anything else is neutral.
func AggregateLabel(lex *lexicon.Lexicon, posts []types.Post) types.Direction {
	bullFrac, bearFrac, labeled := SentimentBreakdown(lex, posts)
	if labeled == 0 {
		return types.DirectionNeutral
	}
	switch {
	case bullFrac > 0.6:
		return types.DirectionBullish
	case bearFrac > 0.6:
		return types.DirectionBearish
	default:
		return types.DirectionNeutral
	}
}

// Polarity is bullish fraction minus bearish fraction among labeled posts,
// in [-1,1]; 0 with no labeled posts.
func Polarity(lex *lexicon.Lexicon, posts []types.Post) float64 {
	bullFrac, bearFrac, labeled := SentimentBreakdown(lex, posts)
	if labeled == 0 {
		return 0
	}
	return bullFrac - bearFrac
}

// FearLevel measures panic-keyword coverage discounted by recovery
// language, clamped to [0,1].
func FearLevel(lex *lexicon.Lexicon, posts []types.Post) float64 {
	panicCov := Coverage(posts, lex.Panic)
	recoveryCov := Coverage(posts, lex.Recovery)
	return clamp(panicCov-0.5*recoveryCov, 0, 1)
}

// HashtagStats summarizes hashtag spread for a post set.
type HashtagStats struct {
	TopTag            string
	TopCount          int
	GrowthRatePerHour float64
	TopAuthorShare    float64
	Coordinated       bool
	ViralCount        int
}

// ComputeHashtagStats tracks per-tag counts, first/last occurrence, and
// author spread. A tag is viral at >2 occurrences/hour with count>5;
// coordinated when one tag spans >50% of distinct authors with count>5.
// Tags are normalized to lower case before counting.
func ComputeHashtagStats(posts []types.Post) HashtagStats {
	type tagAgg struct {
		count   int
		first   time.Time
		last    time.Time
		authors map[string]struct{}
	}
	tags := make(map[string]*tagAgg)
	for _, p := range posts {
		for _, raw := range p.Hashtags {
			tag := strings.ToLower(strings.TrimPrefix(raw, "#"))
			if tag == "" {
				continue
			}
			agg, ok := tags[tag]
			if !ok {
				agg = &tagAgg{first: p.CreatedAt, last: p.CreatedAt, authors: make(map[string]struct{})}
				tags[tag] = agg
			}
			agg.count++
			if p.CreatedAt.Before(agg.first) {
				agg.first = p.CreatedAt
			}
			if p.CreatedAt.After(agg.last) {
				agg.last = p.CreatedAt
			}
			if p.Author.ID != "" {
				agg.authors[p.Author.ID] = struct{}{}
			}
		}
	}

	var stats HashtagStats
	if len(tags) == 0 {
		return stats
	}

	totalAuthors := len(distinctAuthors(posts))

	rate := func(agg *tagAgg) float64 {
		hours := agg.last.Sub(agg.first).Hours()
		if hours < 1 {
			hours = 1
		}
		return float64(agg.count) / hours
	}

	for tag, agg := range tags {
		if agg.count > stats.TopCount || (agg.count == stats.TopCount && tag < stats.TopTag) {
			stats.TopTag = tag
			stats.TopCount = agg.count
		}
		if rate(agg) > 2 && agg.count > 5 {
			stats.ViralCount++
		}
		if totalAuthors > 0 && agg.count > 5 &&
			float64(len(agg.authors))/float64(totalAuthors) > 0.5 {
			stats.Coordinated = true
		}
	}

	top := tags[stats.TopTag]
	stats.GrowthRatePerHour = rate(top)
	if totalAuthors > 0 {
		stats.TopAuthorShare = float64(len(top.authors)) / float64(totalAuthors)
	}
	return stats
}

// CoordinationConcentration buckets distinct authors by the hour they
// posted and returns the largest bucket's share of distinct authors.
// Coordinated activity is a share above 0.3.
func CoordinationConcentration(posts []types.Post) float64 {
	buckets := make(map[time.Time]map[string]struct{})
	all := make(map[string]struct{})
	for _, p := range posts {
		if p.Author.ID == "" {
			continue
		}
		hour := p.CreatedAt.Truncate(time.Hour)
		if buckets[hour] == nil {
			buckets[hour] = make(map[string]struct{})
		}
		buckets[hour][p.Author.ID] = struct{}{}
		all[p.Author.ID] = struct{}{}
	}
	if len(all) == 0 {
		return 0
	}
	largest := 0
	for _, b := range buckets {
		if len(b) > largest {
			largest = len(b)
		}
	}
	return float64(largest) / float64(len(all))
}

// GeoStats summarizes geographic spread of a post set.
type GeoStats struct {
	Regions          []string
	CrossBorderPosts int
	TrendMatches     int
	CrossBorderTrend bool
	GeoEngagement    float64
}

// ComputeGeoStats matches posts against the fixed region tables. A
// cross-border trend requires a single post matching at least two regions
// plus a trend-type pattern.
func ComputeGeoStats(lex *lexicon.Lexicon, posts []types.Post, windowHours float64) GeoStats {
	var stats GeoStats
	seen := make(map[string]struct{})
	geoEngagement := 0.0

	for _, p := range posts {
		regions := lex.Regions(p.Text)
		for _, r := range regions {
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				stats.Regions = append(stats.Regions, r)
			}
		}
		trendHits := lex.TrendType.Count(p.Text)
		stats.TrendMatches += trendHits
		if len(regions) >= 2 {
			stats.CrossBorderPosts++
			if trendHits > 0 {
				stats.CrossBorderTrend = true
			}
		}
		if len(regions) > 0 {
			geoEngagement += p.WeightedEngagement()
		}
	}

	if windowHours > 0 {
		stats.GeoEngagement = geoEngagement / windowHours
	}
	return stats
}

// TickerBreadth counts distinct tickers tagged across the posts.
func TickerBreadth(posts []types.Post) int {
	seen := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tickers {
			seen[strings.ToUpper(t)] = struct{}{}
		}
	}
	return len(seen)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
