package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every BoundsError.
var ErrOutOfBounds = errors.New("out of bounds")

// Point addresses a grid cell. Pattern-local points are offset into grid
// coordinates with Add.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// BoundsError reports an access of Span cells starting at At that does not fit
// inside a W×H grid. Single-cell accesses use a Span of 1×1.
type BoundsError struct {
	At   Point
	Span Point
	W, H int
}

func (e *BoundsError) Error() string {
	if e.Span.X <= 1 && e.Span.Y <= 1 {
		return fmt.Sprintf("cell %s is out of bounds of %dx%d grid", e.At, e.W, e.H)
	}
	return fmt.Sprintf("%dx%d region at %s is out of bounds of %dx%d grid", e.Span.X, e.Span.Y, e.At, e.W, e.H)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Grid stores a fixed-size 2D grid of cells in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with every cell set to the zero value of T.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// FromCells wraps a row-major slice. The grid takes ownership of cells.
func FromCells[T any](w, h int, cells []T) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("grid %dx%d needs %d cells, got %d", w, h, w*h, len(cells))
	}
	return &Grid[T]{W: w, H: h, data: cells}, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Size reports the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid[T]) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// Offset returns the linear slice index for p. It panics with a *BoundsError
// when p lies outside the grid.
func (g *Grid[T]) Offset(p Point) int {
	if !g.InBounds(p) {
		panic(&BoundsError{At: p, Span: Point{X: 1, Y: 1}, W: g.W, H: g.H})
	}
	return p.Y*g.W + p.X
}

// At returns the cell at p.
func (g *Grid[T]) At(p Point) T { return g.data[g.Offset(p)] }

// Set overwrites the cell at p.
func (g *Grid[T]) Set(p Point, v T) { g.data[g.Offset(p)] = v }

// CheckFit panics with a *BoundsError unless a w×h region anchored at at lies
// entirely inside the grid.
func (g *Grid[T]) CheckFit(at Point, w, h int) {
	if at.X < 0 || at.Y < 0 || at.X+w > g.W || at.Y+h > g.H {
		panic(&BoundsError{At: at, Span: Point{X: w, Y: h}, W: g.W, H: g.H})
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{W: g.W, H: g.H, data: data}
}

// RotateCW returns a copy of the grid turned 90° clockwise. The receiver is
// left untouched and the result has its width and height swapped.
func (g *Grid[T]) RotateCW() *Grid[T] {
	data := make([]T, 0, len(g.data))
	for x := 0; x < g.W; x++ {
		for y := g.H - 1; y >= 0; y-- {
			data = append(data, g.data[y*g.W+x])
		}
	}
	return &Grid[T]{W: g.H, H: g.W, data: data}
}

// Equal reports whether a and b have the same dimensions and cells.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.W != b.W || a.H != b.H || len(a.data) != len(b.data) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
