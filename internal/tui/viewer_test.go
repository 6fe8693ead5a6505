package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/sims/backtracker"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
)

func newTestViewer(t *testing.T) (*Viewer, *program.Sim, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)

	cfg := backtracker.DefaultConfig()
	cfg.Config = program.Config{Width: 8, Height: 8, Seed: 3}
	sim := backtracker.New(cfg)
	return New(screen, sim, 60, 3), sim, screen
}

func TestDrawPaintsCellsAndStatus(t *testing.T) {
	v, _, screen := newTestViewer(t)
	v.Draw()

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '█', r)
	r, _, _, _ = screen.GetContent(15, 7)
	assert.Equal(t, '█', r)

	var status []rune
	for x := 0; x < len("backtracker"); x++ {
		r, _, _, _ := screen.GetContent(x, 8)
		status = append(status, r)
	}
	assert.Equal(t, "backtracker", string(status))
}

func TestKeysControlTheSim(t *testing.T) {
	v, sim, _ := newTestViewer(t)

	assert.True(t, v.handleKey(tcell.KeyRune, ' '))
	assert.True(t, v.Paused())

	require.True(t, v.handleKey(tcell.KeyRune, 'n'))
	assert.Equal(t, 1, sim.Ticks())

	v.Advance()
	assert.Equal(t, 1, sim.Ticks(), "paused viewer must not step on its own")

	require.True(t, v.handleKey(tcell.KeyRune, 'r'))
	assert.Equal(t, 0, sim.Ticks())

	assert.False(t, v.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, v.handleKey(tcell.KeyEscape, 0))
}

func TestStepKeyIgnoredWhileRunning(t *testing.T) {
	v, sim, _ := newTestViewer(t)
	v.handleKey(tcell.KeyRune, 'n')
	assert.Equal(t, 0, sim.Ticks())
}

func TestPollEventsStopsAfterViewerExits(t *testing.T) {
	v, _, screen := newTestViewer(t)
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		v.pollEvents(events, done)
		close(finished)
	}()

	close(done)
	require.NoError(t, screen.PostEvent(tcell.NewEventInterrupt(nil)))

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("event pump still blocked on send after the viewer stopped")
	}
}
