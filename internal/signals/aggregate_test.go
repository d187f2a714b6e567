package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

func TestBuildComponentsMissingValuesAreZero(t *testing.T) {
	weights := []store.ComponentWeight{
		{Name: "a", Weight: 0.5, Cap: 50},
		{Name: "b", Weight: 1, Cap: 50},
	}
	comps := BuildComponents(weights, map[string]float64{"a": 80})

	assert.Len(t, comps, 2)
	assert.Equal(t, 80.0, comps[0].Value)
	assert.Equal(t, 0.0, comps[1].Value)
}

func TestAggregateTwoStageClamp(t *testing.T) {
	comps := []types.Component{
		{Name: "runaway", Value: 1e9, Weight: 1, Cap: 40},
		{Name: "negative", Value: -500, Weight: 1, Cap: 30},
		{Name: "normal", Value: 50, Weight: 0.5, Cap: 30},
	}
	score := Aggregate(comps)

	assert.Equal(t, 40.0, comps[0].Contribution, "per-component cap")
	assert.Equal(t, 0.0, comps[1].Contribution, "negative clamps to zero")
	assert.Equal(t, 25.0, comps[2].Contribution)
	assert.Equal(t, 65.0, score)
}

func TestAggregateBounds(t *testing.T) {
	huge := []types.Component{
		{Value: 1e12, Weight: 1, Cap: 60},
		{Value: 1e12, Weight: 1, Cap: 60},
	}
	assert.Equal(t, 100.0, Aggregate(huge), "sum clamps to 100")

	assert.Equal(t, 0.0, Aggregate(nil))
	assert.Equal(t, 0.0, Aggregate([]types.Component{{Value: -1, Weight: 5, Cap: 100}}))
}

func TestAggregateDeterministic(t *testing.T) {
	build := func() []types.Component {
		return []types.Component{
			{Value: 33.3, Weight: 0.7, Cap: 40},
			{Value: 12.1, Weight: 1.3, Cap: 35},
			{Value: 99.9, Weight: 0.2, Cap: 25},
		}
	}
	assert.Equal(t, Aggregate(build()), Aggregate(build()))
}
