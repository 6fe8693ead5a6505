package markov

import (
	"fmt"
	"math/rand/v2"

	"github.com/marceline-cramer/crabby-markov/internal/core"
)

// State carries the execution progress of one Node. Step performs one tick
// against grid and reports whether anything was rewritten; false means the
// node has nothing to do right now.
type State interface {
	Step(rng *rand.Rand, grid *Grid) bool
	state()
}

// MarkovState runs the first child that makes progress, starting over from
// the first child on every tick.
type MarkovState struct {
	Children []State
}

// SequenceState runs Children[Index] until it stops making progress.
type SequenceState struct {
	Children []State
	Index    int
}

// OneState tracks how many ticks a OneNode has completed.
type OneState struct {
	Node  *OneNode
	Taken int
}

// AllState tracks how many ticks an AllNode has completed.
type AllState struct {
	Node  *AllNode
	Taken int
}

// PrlState runs a PrlNode; it keeps no progress of its own.
type PrlState struct {
	Node *PrlNode
}

func (*MarkovState) state()   {}
func (*SequenceState) state() {}
func (*OneState) state()      {}
func (*AllState) state()      {}
func (*PrlState) state()      {}

// Step implements State.
func (s *MarkovState) Step(rng *rand.Rand, grid *Grid) bool {
	for _, child := range s.Children {
		if child.Step(rng, grid) {
			return true
		}
	}
	return false
}

// Step implements State. A finished child is never revisited.
func (s *SequenceState) Step(rng *rand.Rand, grid *Grid) bool {
	for s.Index < len(s.Children) {
		if s.Children[s.Index].Step(rng, grid) {
			return true
		}
		s.Index++
	}
	return false
}

// Done reports whether every child has been exhausted.
func (s *SequenceState) Done() bool { return s.Index >= len(s.Children) }

// Step implements State.
func (s *OneState) Step(rng *rand.Rand, grid *Grid) bool {
	if exhausted(s.Node.Steps, s.Taken) {
		return false
	}
	matches := collectMatches(s.Node.Rules, grid)
	if len(matches) == 0 {
		return false
	}
	m := matches[rng.IntN(len(matches))]
	grid.ApplyPattern(s.Node.Rules[m.rule].Replace, m.at)
	s.Taken++
	return true
}

// Step implements State. Matches are applied in shuffled order and each one
// is rechecked first, since an earlier write in the same tick may have
// invalidated it. The tick counts as progress even if every recheck fails.
func (s *AllState) Step(rng *rand.Rand, grid *Grid) bool {
	if exhausted(s.Node.Steps, s.Taken) {
		return false
	}
	matches := collectMatches(s.Node.Rules, grid)
	if len(matches) == 0 {
		return false
	}
	shuffle(rng, matches)
	for _, m := range matches {
		rule := s.Node.Rules[m.rule]
		if grid.TestMatch(rule.Find, m.at) {
			grid.ApplyPattern(rule.Replace, m.at)
		}
	}
	s.Taken++
	return true
}

// Step implements State. Every match found at the start of the tick is
// written, overlapping or not.
func (s *PrlState) Step(rng *rand.Rand, grid *Grid) bool {
	matches := collectMatches(s.Node.Rules, grid)
	if len(matches) == 0 {
		return false
	}
	shuffle(rng, matches)
	for _, m := range matches {
		grid.ApplyPattern(s.Node.Rules[m.rule].Replace, m.at)
	}
	return true
}

type match struct {
	rule int
	at   core.Point
}

// collectMatches lists matches in rule order, then scan order.
func collectMatches(rules []Rule, grid *Grid) []match {
	var matches []match
	for i, r := range rules {
		for _, at := range grid.FindMatches(r.Find) {
			matches = append(matches, match{rule: i, at: at})
		}
	}
	return matches
}

func shuffle(rng *rand.Rand, matches []match) {
	rng.Shuffle(len(matches), func(i, j int) { matches[i], matches[j] = matches[j], matches[i] })
}

func exhausted(limit, taken int) bool { return limit > 0 && taken >= limit }

// Tick runs one step of state and converts a bounds violation raised while
// matching or writing into an error. Any other panic is re-raised.
func Tick(state State, rng *rand.Rand, grid *Grid) (progressed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			be, ok := r.(*core.BoundsError)
			if !ok {
				panic(r)
			}
			progressed = false
			err = fmt.Errorf("tick: %w", be)
		}
	}()
	return state.Step(rng, grid), nil
}
