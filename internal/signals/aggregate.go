package signals

import (
	"tickerpulse/internal/store"
	"tickerpulse/internal/types"
)

// BuildComponents pairs a configured weight table with computed indicator
// values. Values missing from the map contribute 0, keeping degraded input
// harmless.
func BuildComponents(weights []store.ComponentWeight, values map[string]float64) []types.Component {
	components := make([]types.Component, 0, len(weights))
	for _, w := range weights {
		components = append(components, types.Component{
			Name:   w.Name,
			Value:  values[w.Name],
			Weight: w.Weight,
			Cap:    w.Cap,
		})
	}
	return components
}

// Aggregate applies the two-stage clamp: each component's value*weight is
// clamped to [0, cap], then the sum is clamped to [0, 100]. One runaway
// indicator can never dominate the composite. Deterministic: identical
// inputs always yield an identical score. Contributions are filled in on
// the passed slice for evidence reporting.
func Aggregate(components []types.Component) float64 {
	sum := 0.0
	for i := range components {
		contribution := clamp(components[i].Value*components[i].Weight, 0, components[i].Cap)
		components[i].Contribution = contribution
		sum += contribution
	}
	return clamp(sum, 0, 100)
}
