// Package config loads YAML run files for the headless runner.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/logging"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned when a run names a preset nobody registered.
var ErrUnknownPreset = errors.New("unknown preset")

// RunConfig describes one headless run.
type RunConfig struct {
	Preset string `yaml:"preset"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Seed   int64  `yaml:"seed"`

	// MaxTicks caps the run; 0 runs until the program halts.
	MaxTicks int `yaml:"max_ticks"`
	// FrameEvery records a frame every n ticks; 0 keeps only the final frame.
	FrameEvery int `yaml:"frame_every"`
	TileSize   int `yaml:"tile_size"`
	// FrameDelay is the GIF delay per frame in hundredths of a second.
	FrameDelay int `yaml:"frame_delay"`
	// HoldDelay replaces the delay of the final GIF frame.
	HoldDelay int `yaml:"hold_delay"`

	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`

	// Params carries preset-specific keys such as "forests" or "sources".
	Params map[string]string `yaml:"params"`
}

// Default returns the configuration used when no file is given.
func Default() RunConfig {
	return RunConfig{
		Preset:     "backtracker",
		MaxTicks:   100000,
		TileSize:   4,
		FrameDelay: 4,
		HoldDelay:  300,
		LogLevel:   "info",
	}
}

// Load reads and validates the run file at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte) (RunConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("decode run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate checks ranges and that the preset is registered.
func (c RunConfig) Validate() error {
	if _, ok := core.Sims()[c.Preset]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
	}
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("grid size %dx%d must not be negative", c.Width, c.Height)
	case c.MaxTicks < 0:
		return fmt.Errorf("max_ticks %d must not be negative", c.MaxTicks)
	case c.FrameEvery < 0:
		return fmt.Errorf("frame_every %d must not be negative", c.FrameEvery)
	case c.TileSize < 1:
		return fmt.Errorf("tile_size %d must be at least 1", c.TileSize)
	case c.FrameDelay < 0 || c.HoldDelay < 0:
		return fmt.Errorf("frame delays %d/%d must not be negative", c.FrameDelay, c.HoldDelay)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// PresetOptions flattens the run into the string map accepted by preset
// factories. Zero width, height or seed leave the preset default in place.
func (c RunConfig) PresetOptions() map[string]string {
	opts := make(map[string]string, len(c.Params)+3)
	for k, v := range c.Params {
		opts[k] = v
	}
	if c.Width > 0 {
		opts["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		opts["h"] = strconv.Itoa(c.Height)
	}
	if c.Seed != 0 {
		opts["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return opts
}
