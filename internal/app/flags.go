package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Params   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "backtracker", Scale: 8, TPS: 60, Seed: 1, HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "rewrite program to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for program reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel, 0 hides it")
	fs.StringVar(&c.Params, "params", c.Params, "comma separated key=value program options, e.g. w=64,h=64")
}

// Options parses Params into the map handed to a core.Factory. The seed flag
// is folded in under the "seed" key.
func (c *Config) Options() (map[string]string, error) {
	opts := map[string]string{"seed": fmt.Sprint(c.Seed)}
	if strings.TrimSpace(c.Params) == "" {
		return opts, nil
	}
	for _, pair := range strings.Split(c.Params, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid program option %q, want key=value", pair)
		}
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return opts, nil
}
