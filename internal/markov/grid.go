package markov

import (
	"fmt"
	"strings"

	"github.com/marceline-cramer/crabby-markov/internal/core"
)

// Grid is the canvas rewritten by rules. It is created once at a fixed size
// and mutated in place.
type Grid struct {
	*core.Grid[Symbol]
}

// NewGrid allocates a w×h grid filled with Black.
func NewGrid(w, h int) *Grid {
	return &Grid{Grid: core.NewGrid[Symbol](w, h)}
}

// ParseGrid reads newline-separated rows of symbol letters. Surrounding
// blank lines and indentation are ignored.
func ParseGrid(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: %w", ErrEmptyPattern)
	}
	width := len([]rune(rows[0]))
	cells := make([]Symbol, 0, width*len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("grid row %d: %w", y, ErrRaggedPattern)
		}
		for x, r := range runes {
			sym, err := SymbolFromRune(r)
			if err != nil {
				return nil, &PatternError{Literal: row, Row: y, Col: x, Err: err}
			}
			cells = append(cells, sym)
		}
	}
	g, err := core.FromCells(width, len(rows), cells)
	if err != nil {
		return nil, err
	}
	return &Grid{Grid: g}, nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid { return &Grid{Grid: g.Grid.Clone()} }

// Fill sets every cell to s.
func (g *Grid) Fill(s Symbol) {
	cells := g.Cells()
	for i := range cells {
		cells[i] = s
	}
}

// Count returns how many cells hold s.
func (g *Grid) Count(s Symbol) int {
	n := 0
	for _, c := range g.Cells() {
		if c == s {
			n++
		}
	}
	return n
}

// TestMatch reports whether p matches the grid with its top-left corner at
// at. Wildcard cells match anything. It panics with a *core.BoundsError when
// p does not fit inside the grid at that position.
func (g *Grid) TestMatch(p *Pattern, at core.Point) bool {
	g.CheckFit(at, p.W, p.H)
	cells := g.Cells()
	for y := 0; y < p.H; y++ {
		row := (at.Y + y) * g.W
		for x := 0; x < p.W; x++ {
			want := p.At(core.Point{X: x, Y: y})
			if want.Valid && cells[row+at.X+x] != want.Symbol {
				return false
			}
		}
	}
	return true
}

// ApplyPattern writes the non-wildcard cells of p into the grid at at.
func (g *Grid) ApplyPattern(p *Pattern, at core.Point) {
	g.CheckFit(at, p.W, p.H)
	cells := g.Cells()
	for y := 0; y < p.H; y++ {
		row := (at.Y + y) * g.W
		for x := 0; x < p.W; x++ {
			if c := p.At(core.Point{X: x, Y: y}); c.Valid {
				cells[row+at.X+x] = c.Symbol
			}
		}
	}
}

// FindMatches returns every position where p matches, scanning rows top to
// bottom and each row left to right. Every position whose bounding box fits is
// considered, including the last row and column. It panics if p is larger
// than the grid.
func (g *Grid) FindMatches(p *Pattern) []core.Point {
	g.CheckFit(core.Point{}, p.W, p.H)
	var found []core.Point
	for y := 0; y <= g.H-p.H; y++ {
		for x := 0; x <= g.W-p.W; x++ {
			at := core.Point{X: x, Y: y}
			if g.TestMatch(p, at) {
				found = append(found, at)
			}
		}
	}
	return found
}

// String renders the grid as rows of symbol letters, each ending in a newline.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for _, s := range cells[y*g.W : (y+1)*g.W] {
			b.WriteRune(s.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
