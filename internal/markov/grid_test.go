package markov

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/core"
)

func mustGrid(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(text)
	require.NoError(t, err)
	return g
}

func TestNewGridIsDefaultFilled(t *testing.T) {
	g := NewGrid(5, 3)
	assert.Equal(t, 15, g.Count(Black))
	assert.Equal(t, "BBBBB\nBBBBB\nBBBBB\n", g.String())
}

func TestParseGridRoundTrip(t *testing.T) {
	text := "RBG\nUWE\n"
	g := mustGrid(t, text)
	assert.Equal(t, 3, g.W)
	assert.Equal(t, 2, g.H)
	assert.Equal(t, text, g.String())

	_, err := ParseGrid("RB\nR")
	assert.True(t, errors.Is(err, ErrRaggedPattern))
	_, err = ParseGrid("R*")
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
}

func TestWildcardPatternMatchesEverywhere(t *testing.T) {
	g := mustGrid(t, `
		RGBU
		EWRG
		BBBB
	`)
	p := MustPattern("**/**")
	matches := g.FindMatches(p)
	assert.Len(t, matches, 3*2)
	for y := 0; y <= g.H-p.H; y++ {
		for x := 0; x <= g.W-p.W; x++ {
			assert.True(t, g.TestMatch(p, core.Point{X: x, Y: y}))
		}
	}
}

func TestFindMatchesIncludesLastRowAndColumn(t *testing.T) {
	g := mustGrid(t, `
		BBB
		BBB
		BBR
	`)
	assert.Equal(t, []core.Point{{X: 2, Y: 2}}, g.FindMatches(MustPattern("R")))

	g = mustGrid(t, `
		BBBB
		BBBB
		BBRR
	`)
	assert.Equal(t, []core.Point{{X: 2, Y: 2}}, g.FindMatches(MustPattern("RR")))
}

func TestFindMatchesRowMajorOrder(t *testing.T) {
	g := mustGrid(t, `
		BRB
		RBR
	`)
	want := []core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}
	assert.Equal(t, want, g.FindMatches(MustPattern("R")))
}

func TestTestMatchRespectsWildcards(t *testing.T) {
	g := mustGrid(t, `
		RB
		GU
	`)
	assert.True(t, g.TestMatch(MustPattern("R*/*U"), core.Point{}))
	assert.False(t, g.TestMatch(MustPattern("R*/*B"), core.Point{}))
	assert.True(t, g.TestMatch(MustPattern("B/U"), core.Point{X: 1}))
}

func TestApplyWildcardReplaceLeavesGridUnchanged(t *testing.T) {
	g := mustGrid(t, `
		RBG
		UWE
	`)
	before := g.Clone()
	g.ApplyPattern(MustPattern("***/***"), core.Point{})
	g.ApplyPattern(MustPattern("*"), core.Point{X: 2, Y: 1})
	assert.Equal(t, before.String(), g.String())
}

func TestApplyPatternWritesOnlyConcreteCells(t *testing.T) {
	g := mustGrid(t, `
		UB
		BB
	`)
	g.ApplyPattern(MustPattern("*G/E*"), core.Point{})
	assert.Equal(t, "UG\nEB\n", g.String())
}

func TestPatternFitIsBoundsChecked(t *testing.T) {
	g := NewGrid(3, 3)

	assertBounds := func(fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, core.ErrOutOfBounds))
		}()
		fn()
	}

	assertBounds(func() { g.TestMatch(MustPattern("BB"), core.Point{X: 2}) })
	// A tall, narrow pattern must be checked against the grid height.
	assertBounds(func() { g.TestMatch(MustPattern("B/B"), core.Point{Y: 2}) })
	assertBounds(func() { g.ApplyPattern(MustPattern("W"), core.Point{X: 3}) })
	assertBounds(func() { g.FindMatches(MustPattern("BBBB")) })
}
