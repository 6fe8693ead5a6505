package render

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

// ErrNoFrames is returned when encoding an animation without frames.
var ErrNoFrames = errors.New("no frames to encode")

var symbolPalette = buildPalette(markov.Palette)

func buildPalette(colors []color.RGBA) color.Palette {
	p := make(color.Palette, len(colors))
	for i, c := range colors {
		p[i] = c
	}
	return p
}

// Paletted wraps an indexed frame as an image using the symbol palette. The
// image shares the frame's pixel storage.
func Paletted(frame markov.Frame) *image.Paletted {
	return &image.Paletted{
		Pix:     frame.Pix,
		Stride:  frame.Width,
		Rect:    image.Rect(0, 0, frame.Width, frame.Height),
		Palette: symbolPalette,
	}
}

// WritePNG encodes one still frame as PNG.
func WritePNG(w io.Writer, frame markov.Frame) error {
	return png.Encode(w, Paletted(frame))
}

// Animation collects frames for a looping GIF.
type Animation struct {
	frames []*image.Paletted
	delays []int
}

// Add appends a frame shown for delay hundredths of a second.
func (a *Animation) Add(frame markov.Frame, delay int) {
	a.frames = append(a.frames, Paletted(frame))
	a.delays = append(a.delays, delay)
}

// Hold stretches the delay of the last frame, so a looping animation rests
// on its final state. It is a no-op without frames.
func (a *Animation) Hold(delay int) {
	if len(a.delays) > 0 {
		a.delays[len(a.delays)-1] = delay
	}
}

// Len reports the number of frames collected so far.
func (a *Animation) Len() int { return len(a.frames) }

// Encode writes the animation as a GIF that loops forever.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image:     a.frames,
		Delay:     a.delays,
		LoopCount: 0,
	})
}
