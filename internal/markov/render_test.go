package markov

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExpandsTiles(t *testing.T) {
	g := mustGrid(t, `
		RB
		GU
		WE
	`)
	frame := g.Render(2)
	require.Equal(t, 4, frame.Width)
	require.Equal(t, 6, frame.Height)
	require.Len(t, frame.Pix, 24)

	var b strings.Builder
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			fmt.Fprintf(&b, "%d", frame.Pix[y*frame.Width+x])
		}
		b.WriteByte('\n')
	}
	goldie.New(t).Assert(t, "render_tile2", []byte(b.String()))
}

func TestRenderClampsTileSize(t *testing.T) {
	g := mustGrid(t, "RG")
	frame := g.Render(0)
	assert.Equal(t, 2, frame.Width)
	assert.Equal(t, 1, frame.Height)
	assert.Equal(t, []uint8{Red.Index(), Green.Index()}, frame.Pix)
}

func TestIndicesReusesBuffer(t *testing.T) {
	g := mustGrid(t, "BWR")
	buf := make([]uint8, 3)
	out := g.Indices(buf)
	assert.Equal(t, []uint8{0, 1, 2}, out)
	assert.Same(t, &buf[0], &out[0])
	assert.Len(t, g.Indices(nil), 3)
}
