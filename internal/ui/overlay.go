//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/marceline-cramer/crabby-markov/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type runStatus interface {
	Ticks() int
	Done() bool
	Err() error
}

// Overlay draws a status line on top of the grid.
type Overlay struct {
	sim     core.Sim
	visible bool
	paused  bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles visibility with the H key and records the pause state.
func (o *Overlay) Update(paused bool) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
	o.paused = paused
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	line := o.sim.Name()
	if status, ok := o.sim.(runStatus); ok {
		state := "running"
		switch {
		case status.Err() != nil:
			state = "error: " + status.Err().Error()
		case status.Done():
			state = "halted"
		case o.paused:
			state = "paused"
		}
		line = fmt.Sprintf("%s  tick %d  %s", line, status.Ticks(), state)
	}

	face := basicfont.Face7x13
	bounds := text.BoundString(face, line)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()+8), 18)
	op.ColorScale.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)
	text.Draw(screen, line, face, 4, 13, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}
