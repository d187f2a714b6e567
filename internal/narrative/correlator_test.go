package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickerpulse/internal/types"
)

var anchor = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func localPosts(texts ...string) []types.Post {
	posts := make([]types.Post, 0, len(texts))
	for i, text := range texts {
		posts = append(posts, types.Post{
			ID:        string(rune('a' + i)),
			Text:      text,
			CreatedAt: anchor.Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func narrativeWith(keywords []string, lastSeen time.Time) types.Narrative {
	return types.Narrative{
		ID:    "n1",
		Title: "AI capex supercycle",
		Sentiment: types.SentimentAnalysis{
			Label:    types.DirectionBullish,
			Keywords: keywords,
		},
		LastSeenAt: lastSeen,
		Momentum:   types.MomentumStable,
	}
}

func TestCorrelateScoresOverlap(t *testing.T) {
	c := NewCorrelator(40)
	posts := localPosts(
		"datacenter buildout accelerating, GPU shortage everywhere",
		"hyperscaler capex guidance raised again",
	)
	n := narrativeWith([]string{"datacenter", "capex", "GPU", "nuclear"}, anchor.AddDate(0, 0, -4))

	out := c.Correlate("NVDA", []types.Narrative{n}, posts, types.DirectionBullish)
	require.Len(t, out, 1)

	// 3 of 4 keywords hit, each counted once.
	assert.Equal(t, 3, out[0].KeywordOverlap)
	assert.Equal(t, 60.0, out[0].CorrelationScore)
	// 4 days of lag lands in the 3-7 day sweet spot.
	assert.Equal(t, 100.0, out[0].TimingScore)
	// Label agreement only; momentum stable, ticker not listed.
	assert.Equal(t, 60.0, out[0].RelevanceScore)
}

func TestCorrelateDropsBelowMinimum(t *testing.T) {
	c := NewCorrelator(40)
	posts := localPosts("nothing about the theme at all")

	// One keyword hit scores 20, below the floor of 40. The sole candidate
	// is still dropped.
	weak := narrativeWith([]string{"nothing", "quantum"}, anchor.AddDate(0, 0, -2))
	assert.Empty(t, c.Correlate("NVDA", []types.Narrative{weak}, posts, types.DirectionNeutral))

	// Zero overlap is always dropped.
	zero := narrativeWith([]string{"quantum"}, anchor.AddDate(0, 0, -2))
	assert.Empty(t, c.Correlate("NVDA", []types.Narrative{zero}, posts, types.DirectionNeutral))
}

func TestTimingScoreBands(t *testing.T) {
	cases := []struct {
		lag  time.Duration
		want float64
	}{
		{12 * time.Hour, 40},
		{2 * 24 * time.Hour, 70},
		{5 * 24 * time.Hour, 100},
		{10 * 24 * time.Hour, 55},
		{20 * 24 * time.Hour, 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, timingScore(tc.lag), "lag %v", tc.lag)
	}
}

func TestRelevanceScoreComponents(t *testing.T) {
	n := narrativeWith([]string{"x"}, anchor)
	n.Momentum = types.MomentumRising
	n.RelatedTickers = []string{"nvda"}

	// 60 agreement + 25 rising + 15 related, clamped at 100.
	assert.Equal(t, 100.0, relevanceScore(n, "NVDA", types.DirectionBullish))

	// Neutral local label never counts as agreement.
	n.Sentiment.Label = types.DirectionNeutral
	assert.Equal(t, 40.0, relevanceScore(n, "NVDA", types.DirectionNeutral))

	n.Momentum = types.MomentumStable
	n.RelatedTickers = nil
	assert.Equal(t, 0.0, relevanceScore(n, "NVDA", types.DirectionBearish))
}

func TestCorrelateEmptyInputs(t *testing.T) {
	c := NewCorrelator(40)
	assert.Nil(t, c.Correlate("NVDA", nil, localPosts("x"), types.DirectionNeutral))
	assert.Nil(t, c.Correlate("NVDA", []types.Narrative{narrativeWith([]string{"x"}, anchor)}, nil, types.DirectionNeutral))
}
