package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tickerpulse/internal/types"
)

func neutralClassification() *types.SignalClassification {
	return &types.SignalClassification{
		Direction: types.DirectionNeutral,
		Strength:  types.StrengthModerate,
		Timeframe: types.TimeframeMedium,
	}
}

func TestAnalyzerTableCoversAllSignalTypes(t *testing.T) {
	table := analyzerTable()
	for _, st := range types.AllSignalTypes {
		def, ok := table[st]
		assert.True(t, ok, "missing analyzer for %s", st)
		assert.NotNil(t, def.compute, "%s compute", st)
		assert.NotNil(t, def.override, "%s override", st)
	}
}

func TestOverrideEuphoriaIsContrarian(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	overrideEuphoria(c, 85, auxiliary{}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.StrengthStrong, c.Strength)

	c = neutralClassification()
	c.Direction = types.DirectionBullish
	overrideEuphoria(c, 50, auxiliary{}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)

	c = neutralClassification()
	c.Direction = types.DirectionBullish
	overrideEuphoria(c, 10, auxiliary{}, th)
	assert.Equal(t, types.DirectionBullish, c.Direction, "below moderate the baseline stands")
}

func TestOverrideCutoffsAreConfigurable(t *testing.T) {
	th := defaultThresholds()

	// A score of 18 sits below the default surge noise floor of 20 and
	// neutralizes; lowering the floor lets the baseline stand.
	c := neutralClassification()
	c.Direction = types.DirectionBullish
	overrideVolumeSurge(c, 18, auxiliary{}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction)

	th.SurgeQuiet = 15
	c = neutralClassification()
	c.Direction = types.DirectionBullish
	overrideVolumeSurge(c, 18, auxiliary{}, th)
	assert.Equal(t, types.DirectionBullish, c.Direction)

	// Lowering the shift confirmation cut-off promotes a mid-band score.
	th = defaultThresholds()
	th.ShiftConfirm = 50
	c = neutralClassification()
	overrideSentimentShift(c, 55, auxiliary{shiftDir: types.DirectionBearish}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.TimeframeShort, c.Timeframe)

	// Raising the meme breakout cut-off keeps a default-breakout score tame.
	th = defaultThresholds()
	c = neutralClassification()
	overrideMemeVelocity(c, 80, auxiliary{}, th)
	assert.Equal(t, types.StrengthStrong, c.Strength)

	th.MemeBreakout = 90
	c = neutralClassification()
	overrideMemeVelocity(c, 80, auxiliary{}, th)
	assert.Equal(t, types.StrengthModerate, c.Strength)

	// Raising the herding noise floor neutralizes a score the defaults keep.
	th = defaultThresholds()
	th.HerdingQuiet = 50
	c = neutralClassification()
	c.Direction = types.DirectionBullish
	overrideRetailHerding(c, 45, auxiliary{}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction)

	c = neutralClassification()
	c.Direction = types.DirectionBearish
	overrideSectorRotation(c, 45, auxiliary{}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction)
}

func TestOverrideCrowdedTrade(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	overrideCrowdedTrade(c, 75, auxiliary{}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.StrengthStrong, c.Strength)
	assert.Equal(t, types.TimeframeShort, c.Timeframe)

	// Washout needs both a low score and heavy capitulation.
	c = neutralClassification()
	overrideCrowdedTrade(c, 20, auxiliary{capitulation: 0.8}, th)
	assert.Equal(t, types.DirectionBullish, c.Direction)
	assert.Equal(t, types.StrengthModerate, c.Strength)

	c = neutralClassification()
	overrideCrowdedTrade(c, 20, auxiliary{capitulation: 0.5}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction)

	// Boundary: exactly at the exit threshold is not an exit.
	c = neutralClassification()
	overrideCrowdedTrade(c, 70, auxiliary{}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction)
}

func TestOverrideSentimentShiftFollowsDelta(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	overrideSentimentShift(c, 65, auxiliary{shiftDir: types.DirectionBearish}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.TimeframeShort, c.Timeframe)

	c = neutralClassification()
	c.Direction = types.DirectionBullish
	overrideSentimentShift(c, 10, auxiliary{shiftDir: types.DirectionBullish}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction, "quiet scores neutralize")
}

func TestOverrideRetailHerdingIsContrarian(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	overrideRetailHerding(c, 80, auxiliary{}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.TimeframeMedium, c.Timeframe)
}

func TestOverrideCrossBorder(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	c.Direction = types.DirectionBullish
	overrideCrossBorder(c, 70, auxiliary{}, th)
	assert.Equal(t, types.StrengthStrong, c.Strength)
	assert.Equal(t, types.DirectionBullish, c.Direction, "direction stays the baseline's")

	c = neutralClassification()
	overrideCrossBorder(c, 10, auxiliary{}, th)
	assert.Equal(t, types.StrengthWeak, c.Strength)
}

func TestOverrideMacroToMicro(t *testing.T) {
	th := defaultThresholds()

	c := neutralClassification()
	c.Direction = types.DirectionBullish
	overrideMacroToMicro(c, 90, auxiliary{}, th)
	assert.Equal(t, types.DirectionNeutral, c.Direction, "no surviving narrative forces neutral")
	assert.Equal(t, types.StrengthWeak, c.Strength)

	c = neutralClassification()
	overrideMacroToMicro(c, 80, auxiliary{hasNarrative: true, narrativeDir: types.DirectionBearish}, th)
	assert.Equal(t, types.DirectionBearish, c.Direction)
	assert.Equal(t, types.StrengthStrong, c.Strength)
}
