package markov

// Frame is an indexed still image of a grid: each pixel holds a Palette index.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// Render expands every cell into a tileSize×tileSize block of its symbol's
// palette index. Sizes below one are treated as one.
func (g *Grid) Render(tileSize int) Frame {
	if tileSize < 1 {
		tileSize = 1
	}
	width := g.W * tileSize
	height := g.H * tileSize
	pix := make([]uint8, width*height)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := cells[y*g.W+x].Index()
			base := y*tileSize*width + x*tileSize
			for ty := 0; ty < tileSize; ty++ {
				row := pix[base+ty*width : base+ty*width+tileSize]
				for i := range row {
					row[i] = idx
				}
			}
		}
	}
	return Frame{Width: width, Height: height, Pix: pix}
}

// Indices writes the palette index of every cell into dst, reusing its
// storage when large enough, and returns the W*H long result.
func (g *Grid) Indices(dst []uint8) []uint8 {
	cells := g.Cells()
	if cap(dst) < len(cells) {
		dst = make([]uint8, len(cells))
	}
	dst = dst[:len(cells)]
	for i, s := range cells {
		dst[i] = s.Index()
	}
	return dst
}
