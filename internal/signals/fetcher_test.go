package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickerQuery(t *testing.T) {
	assert.Equal(t, "$NVDA -is:retweet", TickerQuery("nvda"))
}

func TestSectorQuery(t *testing.T) {
	assert.Equal(t, `(chips OR "electric vehicle" OR GPU) -is:retweet`,
		SectorQuery([]string{"chips", "electric vehicle", "GPU"}))
	assert.Equal(t, "", SectorQuery(nil))
}
