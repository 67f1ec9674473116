package texpack

import "fmt"

// Greyscale builds a 3-channel image whose R, G and B planes are all copies
// of grid. Channel names are fixed to R, G, B in that order.
func Greyscale(grid *Grid) (*Image, error) {
	if grid == nil || grid.W <= 0 || grid.H <= 0 || len(grid.Pix) != grid.W*grid.H {
		return nil, fmt.Errorf("%w: greyscale from %dx%d grid with %d samples",
			ErrShapeMismatch, gridW(grid), gridH(grid), gridLen(grid))
	}
	img, err := NewImage(grid.W, grid.H, []string{"R", "G", "B"})
	if err != nil {
		return nil, err
	}
	for i, v := range grid.Pix {
		img.pix[i*3+0] = v
		img.pix[i*3+1] = v
		img.pix[i*3+2] = v
	}
	return img, nil
}

func gridLen(g *Grid) int {
	if g == nil {
		return 0
	}
	return len(g.Pix)
}
