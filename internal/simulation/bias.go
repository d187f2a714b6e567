package simulation

import (
	"math"

	"tickerpulse/internal/lexicon"
	"tickerpulse/internal/types"
)

// SentimentBias condenses a post set into one directional bias in [-1, 1].
// Each post's keyword matches are weighted by ln(weightedEngagement+1)/10 + 1
// so a heavily amplified post counts more than a quiet one without letting a
// single viral post run away with the number. Returns 0 when no post carries
// directional keywords.
func SentimentBias(lex *lexicon.Lexicon, posts []types.Post) float64 {
	bull, bear := 0.0, 0.0
	for _, p := range posts {
		weight := math.Log(p.WeightedEngagement()+1)/10 + 1
		bull += float64(lex.Bullish.Count(p.Text)) * weight
		bear += float64(lex.Bearish.Count(p.Text)) * weight
	}
	total := bull + bear
	if total == 0 {
		return 0
	}
	return (bull - bear) / total
}
