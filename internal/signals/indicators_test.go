package signals

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/types"
)

func testLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.NewLexicon(nil)
	require.NoError(t, err)
	return lex
}

func post(text string, opts ...func(*types.Post)) types.Post {
	p := types.Post{
		ID:        fmt.Sprintf("p-%d", time.Now().UnixNano()),
		Text:      text,
		CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Author:    types.UserProfile{ID: "author-1", FollowersCount: 500},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withAuthor(id string, followers int) func(*types.Post) {
	return func(p *types.Post) {
		p.Author.ID = id
		p.Author.FollowersCount = followers
	}
}

func withCreatedAt(ts time.Time) func(*types.Post) {
	return func(p *types.Post) { p.CreatedAt = ts }
}

func withHashtags(tags ...string) func(*types.Post) {
	return func(p *types.Post) { p.Hashtags = tags }
}

func withEngagement(likes, retweets, replies, quotes int) func(*types.Post) {
	return func(p *types.Post) {
		p.Engagement = types.Engagement{Likes: likes, Retweets: retweets, Replies: replies, Quotes: quotes}
	}
}

func TestVolumeIncreasePct(t *testing.T) {
	// 50 current posts vs a baseline that averages 25 per 24h.
	got := VolumeIncreasePct(50, 175, 24, 168)
	assert.InDelta(t, 100.0, got, 1e-9)

	// Zero baseline never divides by zero.
	assert.Equal(t, 0.0, VolumeIncreasePct(50, 0, 24, 168))
	assert.Equal(t, 0.0, VolumeIncreasePct(50, 175, 24, 0))
}

func TestWeightedEngagement(t *testing.T) {
	p := post("hi", withEngagement(10, 5, 3, 2))
	assert.Equal(t, 25.0, p.WeightedEngagement())

	posts := []types.Post{p, post("yo", withEngagement(0, 1, 0, 0))}
	assert.Equal(t, 27.0, WeightedEngagementTotal(posts))
	assert.Equal(t, 27.0/24, EngagementVelocity(posts, 24))
	assert.Equal(t, 25.0, PeakEngagement(posts))
}

func TestRetailParticipation(t *testing.T) {
	posts := []types.Post{
		post("a", withAuthor("u1", 100)),
		post("b", withAuthor("u1", 100)), // same author counted once
		post("c", withAuthor("u2", 50_000)),
		post("d", withAuthor("u3", 9_999)),
	}
	assert.InDelta(t, 2.0/3.0, RetailParticipation(posts), 1e-9)
	assert.Equal(t, 0.0, RetailParticipation(nil))
}

func TestNewAccountShare(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fresh := post("a", withAuthor("u1", 10))
	fresh.Author.CreatedAt = now.AddDate(0, 0, -5)
	old := post("b", withAuthor("u2", 10))
	old.Author.CreatedAt = now.AddDate(-2, 0, 0)
	unknown := post("c", withAuthor("u3", 10)) // zero CreatedAt is not "new"

	share := NewAccountShare([]types.Post{fresh, old, unknown}, now)
	assert.InDelta(t, 1.0/3.0, share, 1e-9)
}

func TestSentimentBreakdownAndAggregateLabel(t *testing.T) {
	lex := testLexicon(t)

	posts := []types.Post{
		post("moon rally breakout"),
		post("buy the dip, bullish"),
		post("massive squeeze coming"),
		post("total crash, sell everything"), // bearish: sell wins? crash is panic, sell is bearish
		post("nothing to see here"),          // unlabeled, excluded from denominator
	}

	bull, bear, labeled := SentimentBreakdown(lex, posts)
	require.Equal(t, 4, labeled)
	assert.InDelta(t, 0.75, bull, 1e-9)
	assert.InDelta(t, 0.25, bear, 1e-9)

	// 75% > 60% majority.
	assert.Equal(t, types.DirectionBullish, AggregateLabel(lex, posts))
	assert.InDelta(t, 0.5, Polarity(lex, posts), 1e-9)

	// Exactly 60% is not enough: 3 bull, 2 bear.
	split := []types.Post{
		post("moon"), post("rally time"), post("breakout!"),
		post("dump it"), post("crash and sell"),
	}
	assert.Equal(t, types.DirectionNeutral, AggregateLabel(lex, split))

	assert.Equal(t, types.DirectionNeutral, AggregateLabel(lex, nil))
}

func TestFearLevel(t *testing.T) {
	lex := testLexicon(t)

	panicky := []types.Post{
		post("total panic, freefall"),
		post("bloodbath out there"),
		post("meltdown continues"),
	}
	assert.InDelta(t, 1.0, FearLevel(lex, panicky), 1e-9)

	recovering := []types.Post{
		post("bounce off the bottom, recovering nicely"),
		post("stabilizing, relief rally"),
	}
	assert.Equal(t, 0.0, FearLevel(lex, recovering))

	assert.Equal(t, 0.0, FearLevel(lex, nil))
}

func TestComputeHashtagStats(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var posts []types.Post
	for i := 0; i < 7; i++ {
		p := post("squeeze time",
			withAuthor(fmt.Sprintf("u%d", i), 100),
			withCreatedAt(base.Add(time.Duration(i)*10*time.Minute)),
			withHashtags("#Squeeze"))
		posts = append(posts, p)
	}
	posts = append(posts, post("another", withAuthor("u0", 100), withHashtags("#other")))

	stats := ComputeHashtagStats(posts)
	assert.Equal(t, "squeeze", stats.TopTag, "tags normalize to lower case")
	assert.Equal(t, 7, stats.TopCount)
	// 7 occurrences over exactly 1 hour (minimum window), > 2/hr and > 5.
	assert.Equal(t, 1, stats.ViralCount)
	// 7 of 7 distinct authors used the tag.
	assert.True(t, stats.Coordinated)

	assert.Equal(t, HashtagStats{}, ComputeHashtagStats(nil))
}

func TestCoordinationConcentration(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	posts := []types.Post{
		post("a", withAuthor("u1", 1), withCreatedAt(base.Add(5*time.Minute))),
		post("b", withAuthor("u2", 1), withCreatedAt(base.Add(10*time.Minute))),
		post("c", withAuthor("u3", 1), withCreatedAt(base.Add(90*time.Minute))),
		post("d", withAuthor("u4", 1), withCreatedAt(base.Add(150*time.Minute))),
	}
	// Largest bucket: first hour with u1 and u2 of 4 authors.
	assert.InDelta(t, 0.5, CoordinationConcentration(posts), 1e-9)
	assert.Equal(t, 0.0, CoordinationConcentration(nil))
}

func TestComputeGeoStats(t *testing.T) {
	lex := testLexicon(t)
	posts := []types.Post{
		post("Nikkei up, DAX up, this trend is going global", withEngagement(10, 0, 0, 0)),
		post("wall street waking up now"),
		post("no geography here"),
	}

	stats := ComputeGeoStats(lex, posts, 24)
	assert.ElementsMatch(t, []string{"asia", "europe", "north_america"}, stats.Regions)
	assert.Equal(t, 1, stats.CrossBorderPosts)
	assert.True(t, stats.CrossBorderTrend)
	assert.Greater(t, stats.GeoEngagement, 0.0)

	empty := ComputeGeoStats(lex, nil, 24)
	assert.Empty(t, empty.Regions)
	assert.False(t, empty.CrossBorderTrend)
}

func TestTickerBreadth(t *testing.T) {
	posts := []types.Post{
		{Tickers: []string{"nvda", "AMD"}},
		{Tickers: []string{"NVDA"}},
	}
	assert.Equal(t, 2, TickerBreadth(posts))
}
