package program

import (
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

const maxDimension = 512

// Parameters reports the world settings and run progress.
func (s *Sim) Parameters() core.ParameterSnapshot {
	status := "running"
	switch {
	case s.err != nil:
		status = "failed"
	case s.done:
		status = "halted"
	}
	nodes := 0
	markov.Walk(s.node, func(markov.Node) { nodes++ })
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "World",
				Params: []core.Parameter{
					intParam("w", "Width", s.cfg.Width),
					intParam("h", "Height", s.cfg.Height),
					int64Param("seed", "Seed", s.seed),
				},
			},
			{
				Name: "Run",
				Params: []core.Parameter{
					intParam("ticks", "Ticks", s.ticks),
					intParam("nodes", "Nodes", nodes),
					{Key: "status", Label: "Status", Type: core.ParamTypeString, Value: status},
				},
			},
		},
	}
}

// ParameterControls lists the HUD-adjustable settings.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "w", Label: "Width", Type: core.ParamTypeInt, Step: 8, Min: 8, Max: maxDimension, HasMin: true, HasMax: true},
		{Key: "h", Label: "Height", Type: core.ParamTypeInt, Step: 8, Min: 8, Max: maxDimension, HasMin: true, HasMax: true},
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
	}
}

// SetIntParameter updates a setting and resets the run so it takes effect.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "w":
		if value <= 0 || value > maxDimension {
			return false
		}
		s.cfg.Width = value
	case "h":
		if value <= 0 || value > maxDimension {
			return false
		}
		s.cfg.Height = value
	case "seed":
		s.cfg.Seed = int64(value)
	default:
		return false
	}
	s.Reset(s.cfg.Seed)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}
