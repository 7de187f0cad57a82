package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bvisness/flowwire/app/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings_Partial(t *testing.T) {
	s, err := ParseSettings([]byte(`{
		"window_width": 1600,
		"debug": true,
		"wiring": {"grab_tolerance": 3, "orphan_policy": "keep"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 1600, s.WindowWidth)
	assert.Equal(t, 720, s.WindowHeight)
	assert.True(t, s.Debug)
	assert.Equal(t, float32(3), s.Wiring.GrabTolerance)
	assert.Equal(t, core.OrphanKeep, s.Wiring.OrphanPolicy)
	assert.Equal(t, float32(10), s.Wiring.PointDiameter)
	assert.Empty(t, s.AcceptRule)
}

func TestParseSettings_BadValues(t *testing.T) {
	s, err := ParseSettings([]byte(`{
		"window_width": 20,
		"debug": "yes",
		"wiring": {"point_diameter": -4, "line_width": "thick", "orphan_policy": "hoard", "overshoot": -1},
		"accept_rule": 12
	}`))
	require.Error(t, err)

	for _, key := range []string{"debug", "point_diameter", "line_width", "orphan_policy", "accept_rule"} {
		assert.ErrorContains(t, err, key)
	}

	defaults := DefaultSettings()
	assert.Equal(t, 800, s.WindowWidth, "clamped")
	assert.False(t, s.Debug)
	assert.Equal(t, defaults.Wiring.PointDiameter, s.Wiring.PointDiameter)
	assert.Equal(t, defaults.Wiring.LineWidth, s.Wiring.LineWidth)
	assert.Equal(t, core.OrphanDiscard, s.Wiring.OrphanPolicy)
	assert.Equal(t, float32(0), s.Wiring.Overshoot)
	assert.Empty(t, s.AcceptRule)
}

func TestParseSettings_NotJSON(t *testing.T) {
	s, err := ParseSettings([]byte(`{"window_width": `))
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s, err := LoadSettings(path)
	require.NoError(t, err, "a missing file is not an error")
	assert.Equal(t, DefaultSettings(), s)

	s.Wiring.OrphanPolicy = core.OrphanKeep
	s.AcceptRule = `sinkPort == 0`
	require.NoError(t, SaveSettings(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orphan_policy": "keep"`)

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
