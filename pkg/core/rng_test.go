package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReseedReplaysStream(t *testing.T) {
	rng := NewRNG(7)
	src := rng.Source()
	first := []int{src.IntN(1000), src.IntN(1000), src.IntN(1000)}

	rng.Reseed(7)
	again := []int{src.IntN(1000), src.IntN(1000), src.IntN(1000)}
	assert.Equal(t, first, again)
}

func TestSeedsDeterministic(t *testing.T) {
	a := Seeds(42, 5)
	b := Seeds(42, 5)
	assert.Len(t, a, 5)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Seeds(43, 5))
	assert.Nil(t, Seeds(1, 0))
}
