package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickerpulse/internal/types"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	// Every analyzer has a component table with caps summing to 100.
	for _, st := range types.AllSignalTypes {
		comps := cfg.Components[string(st)]
		require.NotEmpty(t, comps, "missing components for %s", st)
		sum := 0.0
		for _, c := range comps {
			sum += c.Cap
		}
		assert.Equal(t, 100.0, sum, "caps for %s", st)
	}
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultConfig().Thresholds

	assert.Equal(t, 20.0, th.SurgeQuiet)
	assert.Equal(t, 60.0, th.ShiftConfirm)
	assert.Equal(t, 75.0, th.MemeBreakout)
	assert.Equal(t, 30.0, th.HerdingQuiet)
}

func TestValidateRejectsBadCaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Components[string(types.SignalVolumeSurge)] = []ComponentWeight{
		{Name: "a", Weight: 1, Cap: 50},
		{Name: "b", Weight: 1, Cap: 40},
		{Name: "c", Weight: 1, Cap: 5},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 100")
}

func TestValidateRejectsComponentCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Components[string(types.SignalEuphoria)] = []ComponentWeight{
		{Name: "only", Weight: 1, Cap: 100},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadWindows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Windows.CurrentHours = 0
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBaselineOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Social.BaselinePosts = 31
	require.Error(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
windows:
  current_hours: 12
thresholds:
  strong: 80
simulator:
  seed: 42
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Windows.CurrentHours)
	assert.Equal(t, 168, cfg.Windows.HistoricalHours, "unset keys keep defaults")
	assert.Equal(t, 80.0, cfg.Thresholds.Strong)
	assert.Equal(t, int64(42), cfg.Simulator.Seed)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("windows:\n  current_hours: -5\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
