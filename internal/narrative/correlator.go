package narrative

import (
	"strings"
	"time"

	"tickerpulse/internal/types"
)

// Correlation scores how strongly one detected market narrative ties to the
// local evidence for a single ticker.
type Correlation struct {
	Narrative        types.Narrative `json:"narrative"`
	CorrelationScore float64         `json:"correlation_score"`
	TimingScore      float64         `json:"timing_score"`
	RelevanceScore   float64         `json:"relevance_score"`
	KeywordOverlap   int             `json:"keyword_overlap"`
	LagDays          float64         `json:"lag_days"`
}

// Correlator links broad narratives to ticker-level evidence. Narratives
// whose keyword overlap score falls below minCorrelation are dropped, even
// when they are the only candidates.
type Correlator struct {
	minCorrelation float64
}

// NewCorrelator builds a correlator with the given minimum correlation score.
func NewCorrelator(minCorrelation float64) *Correlator {
	return &Correlator{minCorrelation: minCorrelation}
}

// Correlate evaluates every narrative against the ticker's current-window
// posts. localLabel is the aggregate sentiment of those posts and drives the
// label-agreement part of the relevance score.
func (c *Correlator) Correlate(ticker string, narratives []types.Narrative, posts []types.Post, localLabel types.Direction) []Correlation {
	if len(narratives) == 0 || len(posts) == 0 {
		return nil
	}

	loweredTexts := make([]string, len(posts))
	newest := posts[0].CreatedAt
	for i, p := range posts {
		loweredTexts[i] = strings.ToLower(p.Text)
		if p.CreatedAt.After(newest) {
			newest = p.CreatedAt
		}
	}

	var out []Correlation
	for _, n := range narratives {
		overlap := keywordOverlap(n.Sentiment.Keywords, loweredTexts)
		score := clamp(float64(overlap)*20, 0, 100)
		if score < c.minCorrelation {
			continue
		}

		lag := newest.Sub(n.LastSeenAt)
		out = append(out, Correlation{
			Narrative:        n,
			CorrelationScore: score,
			TimingScore:      timingScore(lag),
			RelevanceScore:   relevanceScore(n, ticker, localLabel),
			KeywordOverlap:   overlap,
			LagDays:          lag.Hours() / 24,
		})
	}
	return out
}

// keywordOverlap counts the narrative keywords that appear in at least one
// local post. Each keyword counts once regardless of how many posts hit it.
func keywordOverlap(keywords []string, loweredTexts []string) int {
	overlap := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, text := range loweredTexts {
			if strings.Contains(text, kw) {
				overlap++
				break
			}
		}
	}
	return overlap
}

// timingScore grades the lag between the narrative's last sighting and the
// newest local post. The 3 to 7 day band is the sweet spot where a macro
// theme has had time to reach individual tickers.
func timingScore(lag time.Duration) float64 {
	days := lag.Hours() / 24
	switch {
	case days < 1:
		return 40
	case days <= 3:
		return 70
	case days <= 7:
		return 100
	case days <= 14:
		return 55
	default:
		return 20
	}
}

func relevanceScore(n types.Narrative, ticker string, localLabel types.Direction) float64 {
	score := 0.0
	if n.Sentiment.Label == localLabel && localLabel != types.DirectionNeutral {
		score += 60
	}
	if n.Momentum == types.MomentumRising {
		score += 25
	}
	for _, t := range n.RelatedTickers {
		if strings.EqualFold(t, ticker) {
			score += 15
			break
		}
	}
	return clamp(score, 0, 100)
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
