package signals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tickerpulse/internal/interfaces"
	"tickerpulse/internal/types"
)

// WindowFetcher issues the two bounded evidence queries of a signal run:
// the current window [now-cur, now] and the historical baseline window
// [now-cur-hist, now-cur]. Exactly two calls, no retries; adapter failures
// propagate to the caller.
type WindowFetcher struct {
	social     interfaces.SocialAdapter
	maxResults int
}

// NewWindowFetcher builds a fetcher capped at maxResults per query.
func NewWindowFetcher(social interfaces.SocialAdapter, maxResults int) *WindowFetcher {
	return &WindowFetcher{social: social, maxResults: maxResults}
}

// Fetch returns the current and historical evidence windows for the query.
func (f *WindowFetcher) Fetch(ctx context.Context, query string, now time.Time, currentHours, historicalHours int) (current, historical []types.Post, err error) {
	curStart := now.Add(-time.Duration(currentHours) * time.Hour)
	histStart := curStart.Add(-time.Duration(historicalHours) * time.Hour)

	current, err = f.social.SearchPosts(ctx, interfaces.SearchQuery{
		Query:      query,
		MaxResults: f.maxResults,
		StartTime:  &curStart,
		EndTime:    &now,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("current window search: %w", err)
	}

	historical, err = f.social.SearchPosts(ctx, interfaces.SearchQuery{
		Query:      query,
		MaxResults: f.maxResults,
		StartTime:  &histStart,
		EndTime:    &curStart,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("historical window search: %w", err)
	}

	return current, historical, nil
}

// TickerQuery builds the standard per-ticker query, excluding retweets.
func TickerQuery(ticker string) string {
	return fmt.Sprintf("$%s -is:retweet", strings.ToUpper(ticker))
}

// SectorQuery builds the OR'd keyword variant used by sector-wide signals.
func SectorQuery(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		if strings.ContainsRune(kw, ' ') {
			quoted[i] = `"` + kw + `"`
		} else {
			quoted[i] = kw
		}
	}
	return "(" + strings.Join(quoted, " OR ") + ") -is:retweet"
}
