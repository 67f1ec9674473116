package texpack

import (
	"fmt"
	"slices"
)

// Extract returns a copy of the named channel's plane as a Grid.
//
// Duplicate channel names resolve to the first match in sequence order.
func (m *Image) Extract(name string) (*Grid, error) {
	if !m.initialized() {
		return nil, fmt.Errorf("%w: extract %q", ErrNotInitialized, name)
	}
	ci := m.channelIndex(name)
	if ci < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrChannelNotFound, name, m.names)
	}
	g := NewGrid(m.width, m.height)
	nc := len(m.names)
	for i := range g.Pix {
		g.Pix[i] = m.pix[i*nc+ci]
	}
	return g, nil
}

// Replace returns a new image with the named channel's plane overwritten by
// grid. The input image is left untouched; the result keeps the input's
// dimensions and channel-name sequence.
func Replace(img *Image, grid *Grid, name string) (*Image, error) {
	if !img.initialized() {
		return nil, fmt.Errorf("%w: replace %q", ErrNotInitialized, name)
	}
	ci := img.channelIndex(name)
	if ci < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrChannelNotFound, name, img.names)
	}
	if !grid.matches(img.width, img.height) {
		return nil, fmt.Errorf("%w: replace %q: grid %dx%d, image %dx%d",
			ErrShapeMismatch, name, gridW(grid), gridH(grid), img.width, img.height)
	}
	out := img.Clone()
	nc := len(out.names)
	for i, v := range grid.Pix {
		out.pix[i*nc+ci] = v
	}
	return out, nil
}

// Append returns a new image with grid added as a trailing channel named
// name. The input image is left untouched.
//
// Name uniqueness is not enforced; if the name already exists, later
// lookups resolve to the earlier channel.
func Append(img *Image, grid *Grid, name string) (*Image, error) {
	return AppendAll(img, []*Grid{grid}, []string{name})
}

// AppendAll returns a new image with every grid added as a trailing channel,
// in order, under the corresponding name. The result is built with a single
// concatenation regardless of how many planes are added.
func AppendAll(img *Image, grids []*Grid, names []string) (*Image, error) {
	if !img.initialized() {
		return nil, fmt.Errorf("%w: append", ErrNotInitialized)
	}
	if len(grids) != len(names) {
		return nil, fmt.Errorf("texpack: append: %d grids for %d names", len(grids), len(names))
	}
	for i, g := range grids {
		if !g.matches(img.width, img.height) {
			return nil, fmt.Errorf("%w: append %q: grid %dx%d, image %dx%d",
				ErrShapeMismatch, names[i], gridW(g), gridH(g), img.width, img.height)
		}
	}
	if len(grids) == 0 {
		return img.Clone(), nil
	}

	oldC := len(img.names)
	newC := oldC + len(grids)
	out := &Image{
		width:  img.width,
		height: img.height,
		names:  append(slices.Clone(img.names), names...),
		pix:    make([]float32, img.width*img.height*newC),
	}
	for px := 0; px < img.width*img.height; px++ {
		copy(out.pix[px*newC:px*newC+oldC], img.pix[px*oldC:(px+1)*oldC])
		for i, g := range grids {
			out.pix[px*newC+oldC+i] = g.Pix[px]
		}
	}
	return out, nil
}

// gridW and gridH tolerate nil grids so shape-mismatch errors can still
// report something sensible.
func gridW(g *Grid) int {
	if g == nil {
		return 0
	}
	return g.W
}

func gridH(g *Grid) int {
	if g == nil {
		return 0
	}
	return g.H
}
