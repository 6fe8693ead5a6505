// Package markov implements a rewriting interpreter over 2D symbol grids.
//
// A program is an immutable tree of Nodes. MakeState derives a parallel tree
// of States carrying execution progress, and a driver calls Step on the root
// state until it reports that nothing was rewritten.
package markov

import (
	"errors"
	"fmt"
)

// Node is one combinator of a rewrite program. The set of node kinds is
// closed: MarkovNode, SequenceNode, OneNode, AllNode and PrlNode.
type Node interface {
	node()
}

// MarkovNode retries its children from the first on every tick and runs the
// first one that makes progress.
type MarkovNode struct {
	Children []Node
}

// SequenceNode runs each child until it stops making progress, then moves on
// to the next one and never returns to it.
type SequenceNode struct {
	Children []Node
}

// OneNode applies a single randomly chosen match per tick. Steps caps the
// number of successful ticks; zero means unlimited.
type OneNode struct {
	Rules []Rule
	Steps int
}

// AllNode applies every non-overlapping match per tick, in random order.
// Steps caps the number of successful ticks; zero means unlimited.
type AllNode struct {
	Rules []Rule
	Steps int
}

// PrlNode applies every match per tick without rechecking, so overlapping
// writes from one tick may overwrite each other.
type PrlNode struct {
	Rules []Rule
}

func (*MarkovNode) node()   {}
func (*SequenceNode) node() {}
func (*OneNode) node()      {}
func (*AllNode) node()      {}
func (*PrlNode) node()      {}

// Markov builds a MarkovNode.
func Markov(children ...Node) *MarkovNode { return &MarkovNode{Children: children} }

// Sequence builds a SequenceNode.
func Sequence(children ...Node) *SequenceNode { return &SequenceNode{Children: children} }

// One builds an unlimited OneNode.
func One(rules ...Rule) *OneNode { return &OneNode{Rules: rules} }

// All builds an unlimited AllNode.
func All(rules ...Rule) *AllNode { return &AllNode{Rules: rules} }

// Prl builds a PrlNode.
func Prl(rules ...Rule) *PrlNode { return &PrlNode{Rules: rules} }

// Limit returns a copy of n capped at steps successful ticks.
func (n *OneNode) Limit(steps int) *OneNode { return &OneNode{Rules: n.Rules, Steps: steps} }

// Limit returns a copy of n capped at steps successful ticks.
func (n *AllNode) Limit(steps int) *AllNode { return &AllNode{Rules: n.Rules, Steps: steps} }

// MakeState derives a fresh execution state for node: counters at zero and
// sequences at their first child. It uses no randomness and touches no grid,
// so one program can be restarted any number of times.
func MakeState(node Node) State {
	switch n := node.(type) {
	case *MarkovNode:
		return &MarkovState{Children: makeStates(n.Children)}
	case *SequenceNode:
		return &SequenceState{Children: makeStates(n.Children)}
	case *OneNode:
		return &OneState{Node: n}
	case *AllNode:
		return &AllState{Node: n}
	case *PrlNode:
		return &PrlState{Node: n}
	default:
		panic(fmt.Sprintf("markov: unknown node type %T", node))
	}
}

func makeStates(nodes []Node) []State {
	states := make([]State, len(nodes))
	for i, n := range nodes {
		states[i] = MakeState(n)
	}
	return states
}

// Kind returns a short lower-case name for the node kind.
func Kind(node Node) string {
	switch node.(type) {
	case *MarkovNode:
		return "markov"
	case *SequenceNode:
		return "sequence"
	case *OneNode:
		return "one"
	case *AllNode:
		return "all"
	case *PrlNode:
		return "prl"
	default:
		return "unknown"
	}
}

// Walk visits node and its descendants depth first.
func Walk(node Node, fn func(Node)) {
	fn(node)
	switch n := node.(type) {
	case *MarkovNode:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	case *SequenceNode:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	}
}

// ErrInvalidProgram wraps every problem reported by Validate.
var ErrInvalidProgram = errors.New("invalid program")

// Validate checks a program before it runs: leaf nodes must carry rules,
// every rule must have non-nil find and replace patterns of equal shape, and
// step limits must not be negative. Rules built with NewRule or MustRule
// always pass the shape check; struct literals may not.
func Validate(node Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidProgram)
	}
	var err error
	Walk(node, func(n Node) {
		if err != nil {
			return
		}
		var (
			rules []Rule
			steps int
		)
		switch leaf := n.(type) {
		case nil:
			err = fmt.Errorf("%w: nil child node", ErrInvalidProgram)
			return
		case *OneNode:
			rules, steps = leaf.Rules, leaf.Steps
		case *AllNode:
			rules, steps = leaf.Rules, leaf.Steps
		case *PrlNode:
			rules = leaf.Rules
		default:
			return
		}
		if steps < 0 {
			err = fmt.Errorf("%w: %s node step limit %d is negative", ErrInvalidProgram, Kind(n), steps)
			return
		}
		if len(rules) == 0 {
			err = fmt.Errorf("%w: %s node has no rules", ErrInvalidProgram, Kind(n))
			return
		}
		for i, r := range rules {
			if _, rerr := RuleOf(r.Find, r.Replace); rerr != nil {
				err = fmt.Errorf("%w: %s node rule %d: %w", ErrInvalidProgram, Kind(n), i, rerr)
				return
			}
		}
	})
	return err
}
