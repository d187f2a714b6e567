// Package static provides deterministic fixture-backed adapters. They stand
// in for real API clients during local runs and demos; output depends only on
// the query, so repeated invocations are reproducible.
package static

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/types"
)

// Social synthesizes posts for any query. Post count, authors, and
// engagement are derived from a hash of the query and window so the same
// request always yields the same evidence.
type Social struct{}

var _ interfaces.SocialAdapter = (*Social)(nil)

// NewSocial creates the fixture-backed social adapter.
func NewSocial() *Social {
	return &Social{}
}

var postTemplates = []struct {
	text     string
	hashtags []string
}{
	{"%s is breaking out, calls printing. To the moon!", []string{"stocks"}},
	{"Loaded up on more %s today. Bullish long term.", nil},
	{"%s looks overbought here, taking profits.", nil},
	{"Why is everyone suddenly talking about %s? Huge volume today.", []string{"trending"}},
	{"%s earnings next week. Rally incoming or dump?", []string{"earnings"}},
	{"Sold my %s bags. This crash has no bottom.", nil},
	{"Diamond hands on %s, squeeze is coming.", []string{"squeeze"}},
	{"%s getting attention from Tokyo to Frankfurt, global breakout trend.", []string{"markets"}},
	{"Margin call season for %s longs. Leverage everywhere.", nil},
	{"Capitulation in %s today. Feels oversold, might bounce.", nil},
	{"%s institutional accumulation per the latest 13F flows.", nil},
	{"YOLO'd my savings into %s!!! Price target $500!!!", []string{"yolo"}},
}

// SearchPosts returns posts spread evenly across the requested window.
func (s *Social) SearchPosts(ctx context.Context, q interfaces.SearchQuery) ([]types.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.StartTime == nil || q.EndTime == nil {
		return nil, fmt.Errorf("static social adapter requires a bounded window")
	}

	ticker := tickerFromQuery(q.Query)
	seed := hashOf(q.Query + q.StartTime.UTC().Format(time.RFC3339))

	count := 8 + int(seed%17)
	if count > q.MaxResults {
		count = q.MaxResults
	}

	window := q.EndTime.Sub(*q.StartTime)
	posts := make([]types.Post, 0, count)
	for i := 0; i < count; i++ {
		tpl := postTemplates[(seed+uint64(i))%uint64(len(postTemplates))]
		authorSeed := (seed + uint64(i)*7919) % 1000

		createdAt := q.StartTime.Add(window * time.Duration(i+1) / time.Duration(count+1))
		posts = append(posts, types.Post{
			ID:        fmt.Sprintf("%s-%d-%d", strings.ToLower(ticker), seed%1000, i),
			Text:      fmt.Sprintf(tpl.text, "$"+ticker),
			CreatedAt: createdAt,
			Hashtags:  tpl.hashtags,
			Tickers:   []string{ticker},
			Author: types.UserProfile{
				ID:             fmt.Sprintf("user-%d", authorSeed),
				Username:       fmt.Sprintf("trader%d", authorSeed),
				Verified:       authorSeed%11 == 0,
				FollowersCount: int(authorSeed) * 137,
				CreatedAt:      q.EndTime.AddDate(0, 0, -int(authorSeed%1200)-1),
			},
			Engagement: types.Engagement{
				Likes:    int((seed + uint64(i)*31) % 400),
				Retweets: int((seed + uint64(i)*17) % 90),
				Replies:  int((seed + uint64(i)*13) % 60),
				Quotes:   int((seed + uint64(i)*7) % 25),
			},
		})
	}
	return posts, nil
}

func tickerFromQuery(query string) string {
	for _, tok := range strings.Fields(query) {
		if strings.HasPrefix(tok, "$") && len(tok) > 1 {
			return strings.ToUpper(strings.TrimPrefix(tok, "$"))
		}
	}
	return "MKT"
}

func hashOf(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
