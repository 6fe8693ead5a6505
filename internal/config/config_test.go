package config

import (
	"os"
	"path/filepath"
	"testing"

	_ "github.com/marceline-cramer/crabby-markov/internal/sims/all"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
preset: river
width: 48
height: 32
seed: 9
max_ticks: 500
frame_every: 10
output: river.gif
params:
  forests: "5"
`))
	require.NoError(t, err)

	assert.Equal(t, "river", cfg.Preset)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 500, cfg.MaxTicks)
	assert.Equal(t, 10, cfg.FrameEvery)
	assert.Equal(t, "river.gif", cfg.Output)
	assert.Equal(t, Default().TileSize, cfg.TileSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEmptyDocumentYieldsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "presett: river\n",
		"unknown preset": "preset: lava\n",
		"negative ticks": "max_ticks: -1\n",
		"zero tile":      "tile_size: 0\n",
		"bad level":      "log_level: loud\n",
		"negative size":  "width: -4\n",
		"negative hold":  "hold_delay: -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestValidateUnknownPreset(t *testing.T) {
	cfg := Default()
	cfg.Preset = "nope"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownPreset)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: growth\nseed: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "growth", cfg.Preset)
	assert.Equal(t, int64(3), cfg.Seed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPresetOptions(t *testing.T) {
	cfg := Default()
	cfg.Width = 20
	cfg.Seed = 4
	cfg.Params = map[string]string{"sources": "2"}

	opts := cfg.PresetOptions()
	assert.Equal(t, map[string]string{"w": "20", "seed": "4", "sources": "2"}, opts)
}
