package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestFixedStepDue(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now

	// The first call primes the clock and releases the initial tick.
	assert.Equal(t, 1, fs.Due())
	assert.Equal(t, 0, fs.Due())

	clock.t = clock.t.Add(350 * time.Millisecond)
	assert.Equal(t, 3, fs.Due())

	clock.t = clock.t.Add(50 * time.Millisecond)
	assert.True(t, fs.ShouldStep(), "leftover 50ms plus 50ms completes a tick")
	assert.False(t, fs.ShouldStep())
}

func TestFixedStepCatchUpIsBounded(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(1000)
	fs.now = clock.now
	fs.Due()

	clock.t = clock.t.Add(time.Minute)
	assert.Equal(t, maxCatchUp, fs.Due())
}

func TestSetTPSDefaults(t *testing.T) {
	fs := NewFixedStep(0)
	assert.Equal(t, 60, fs.TPS())
	fs.SetTPS(30)
	assert.Equal(t, 30, fs.TPS())
}
