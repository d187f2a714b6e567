package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternSetMatchesCaseInsensitive(t *testing.T) {
	set, err := NewPatternSet("test", []Pattern{
		{Expr: "moon", Category: CategoryBullish, Weight: 1},
		{Expr: "to the moon", Category: CategoryBullish, Weight: 2},
	})
	require.NoError(t, err)

	assert.True(t, set.Matches("TSLA going TO THE MOON today"))
	assert.True(t, set.Matches("moonshot"))
	assert.False(t, set.Matches("bearish as it gets"))
	assert.Equal(t, 2, set.Count("moon moon, to the moon"))
}

func TestPatternSetRegex(t *testing.T) {
	set, err := NewPatternSet("targets", []Pattern{
		{Expr: `\$\d+ price target`, Category: CategoryPriceTarget, Weight: 1, IsRegex: true},
	})
	require.NoError(t, err)

	assert.True(t, set.Matches("analysts see a $500 Price Target"))
	assert.False(t, set.Matches("no target here"))
}

func TestPatternSetInvalidRegex(t *testing.T) {
	_, err := NewPatternSet("broken", []Pattern{
		{Expr: "(unclosed", Category: CategoryBullish, IsRegex: true},
	})
	require.Error(t, err)
}

func TestNewLexiconExtraKeywords(t *testing.T) {
	lex, err := NewLexicon(map[string][]string{
		CategoryBullish: {"stonks only go up"},
	})
	require.NoError(t, err)

	assert.True(t, lex.Bullish.Matches("because STONKS only go up"))
	// Built-ins survive the extension.
	assert.True(t, lex.Bullish.Matches("breakout confirmed"))
}

func TestNewLexiconUnknownCategory(t *testing.T) {
	_, err := NewLexicon(map[string][]string{"weather": {"sunny"}})
	require.Error(t, err)
}

func TestRegions(t *testing.T) {
	lex, err := NewLexicon(nil)
	require.NoError(t, err)

	regions := lex.Regions("Tokyo traders and the Frankfurt open both chasing this")
	assert.Contains(t, regions, "asia")
	assert.Contains(t, regions, "europe")

	assert.Empty(t, lex.Regions("no geography at all"))
}
