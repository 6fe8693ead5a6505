package render

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

func sampleGrid(t *testing.T) *markov.Grid {
	t.Helper()
	g, err := markov.ParseGrid("RB\nGU")
	require.NoError(t, err)
	return g
}

func TestPalettedUsesSymbolColors(t *testing.T) {
	img := Paletted(sampleGrid(t).Render(3))
	require.Equal(t, 6, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())

	assert.Equal(t, markov.Palette[markov.Red.Index()], img.At(0, 0))
	assert.Equal(t, markov.Palette[markov.Black.Index()], img.At(5, 2))
	assert.Equal(t, markov.Palette[markov.Green.Index()], img.At(2, 3))
	assert.Equal(t, markov.Palette[markov.Blue.Index()], img.At(3, 3))
}

func TestWritePNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sampleGrid(t).Render(2)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(3, 3).RGBA()
	want := markov.Palette[markov.Blue.Index()]
	assert.Equal(t, [3]uint8{want.R, want.G, want.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}

func TestAnimationEncode(t *testing.T) {
	var anim Animation
	var buf bytes.Buffer
	assert.ErrorIs(t, anim.Encode(&buf), ErrNoFrames)
	anim.Hold(5)

	grid := sampleGrid(t)
	anim.Add(grid.Render(1), 2)
	grid.Fill(markov.Emerald)
	anim.Add(grid.Render(1), 2)
	anim.Hold(1000)
	require.Equal(t, 2, anim.Len())
	require.NoError(t, anim.Encode(&buf))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 2)
	assert.Equal(t, []int{2, 1000}, decoded.Delay)
	assert.Equal(t, 0, decoded.LoopCount)
}

func TestRGBAClampsIndices(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := RGBA([]uint8{0, 1, 7}, palette)
	assert.Equal(t, []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}, buf)

	assert.Equal(t, []byte{0, 0, 0, 0}, RGBA([]uint8{3}, nil))
}
