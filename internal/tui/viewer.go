// Package tui shows a running program in the terminal with tcell.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/render"
)

// cellWidth is the number of terminal columns per grid cell; terminal glyphs
// are roughly twice as tall as they are wide.
const cellWidth = 2

const frameInterval = 16 * time.Millisecond

type runStatus interface {
	Ticks() int
	Done() bool
	Err() error
}

// Viewer draws a sim on a tcell screen and advances it at a fixed rate.
type Viewer struct {
	screen  tcell.Screen
	sim     core.Sim
	palette []color.RGBA
	timer   *core.FixedStep
	seed    int64
	paused  bool
	styles  map[uint8]tcell.Style
}

// New returns a viewer for sim. The screen must already be initialised.
func New(screen tcell.Screen, sim core.Sim, tps int, seed int64) *Viewer {
	palette := render.DefaultPalette
	if pp, ok := sim.(core.PaletteProvider); ok {
		palette = pp.Palette()
	}
	return &Viewer{
		screen:  screen,
		sim:     sim,
		palette: palette,
		timer:   core.NewFixedStep(tps),
		seed:    seed,
		styles:  make(map[uint8]tcell.Style, len(palette)),
	}
}

// Paused reports whether automatic stepping is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Run polls input and redraws until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go v.pollEvents(events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			v.Advance()
			v.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done is
// closed.
func (v *Viewer) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event and reports whether the viewer should
// keep running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'n':
			if v.paused {
				v.sim.Step()
			}
		case 'r':
			v.sim.Reset(v.seed)
		}
	}
	return true
}

// Advance steps the sim for every tick due since the last call.
func (v *Viewer) Advance() {
	due := v.timer.Due()
	if v.paused {
		return
	}
	for i := 0; i < due; i++ {
		if !v.sim.Step() {
			return
		}
	}
}

// Draw paints the grid from the top-left corner and a status line below it.
func (v *Viewer) Draw() {
	v.screen.Clear()
	size := v.sim.Size()
	cells := v.sim.Cells()
	sw, sh := v.screen.Size()
	for y := 0; y < size.H && y < sh-1; y++ {
		for x := 0; x < size.W; x++ {
			style := v.style(cells[y*size.W+x])
			for c := 0; c < cellWidth; c++ {
				col := x*cellWidth + c
				if col >= sw {
					break
				}
				v.screen.SetContent(col, y, '█', nil, style)
			}
		}
	}
	row := size.H
	if row > sh-1 {
		row = sh - 1
	}
	drawText(v.screen, 0, row, v.status(), tcell.StyleDefault)
	v.screen.Show()
}

func (v *Viewer) status() string {
	state := "running"
	if v.paused {
		state = "paused"
	}
	rs, ok := v.sim.(runStatus)
	if !ok {
		return fmt.Sprintf("%s [%s]  space pause  n step  r reset  q quit", v.sim.Name(), state)
	}
	switch {
	case rs.Err() != nil:
		state = "failed: " + rs.Err().Error()
	case rs.Done():
		state = "halted"
	}
	return fmt.Sprintf("%s tick %d [%s]  space pause  n step  r reset  q quit", v.sim.Name(), rs.Ticks(), state)
}

func (v *Viewer) style(idx uint8) tcell.Style {
	if s, ok := v.styles[idx]; ok {
		return s
	}
	c := color.RGBA{A: 255}
	if int(idx) < len(v.palette) {
		c = v.palette[idx]
	}
	s := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	v.styles[idx] = s
	return s
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
