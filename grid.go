package texpack

import "slices"

// Grid is a single-channel plane of float32 samples, the exchange type for
// all single-channel operations. Pix is row-major with len W*H.
type Grid struct {
	W, H int
	Pix  []float32
}

// NewGrid creates a zero-filled grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float32, w*h)}
}

// At returns the sample at (x, y). Out-of-range coordinates return 0.
func (g *Grid) At(x, y int) float32 {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return 0
	}
	return g.Pix[y*g.W+x]
}

// Set assigns the sample at (x, y). Out-of-range coordinates are silently
// ignored.
func (g *Grid) Set(x, y int, v float32) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.Pix[y*g.W+x] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, Pix: slices.Clone(g.Pix)}
}

// matches reports whether the grid's shape equals (w, h) and its buffer is
// consistent with that shape.
func (g *Grid) matches(w, h int) bool {
	return g != nil && g.W == w && g.H == h && len(g.Pix) == w*h
}
