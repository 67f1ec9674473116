package texpack

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Default tolerances for IsGreyscale, chosen to match the common
// absolute/relative closeness defaults for float comparisons.
const (
	DefaultAbsTol = 1e-8
	DefaultRelTol = 1e-5
)

// UsedChannels reports, for every channel in sequence order, whether the
// channel contains at least one non-zero sample. The test is exact; a
// channel of denormal noise still counts as used.
func UsedChannels(img *Image) (map[string]bool, error) {
	if !img.initialized() {
		return nil, fmt.Errorf("%w: detect used channels", ErrNotInitialized)
	}
	used := make(map[string]bool, len(img.names))
	for _, name := range img.names {
		used[name] = false
	}
	nc := len(img.names)
	for i, v := range img.pix {
		if v != 0 {
			used[img.names[i%nc]] = true
		}
	}
	return used, nil
}

// IsGreyscale reports whether the image's R, G and B planes are numerically
// close, using the package default tolerances. Images lacking any of the
// three channels are never greyscale-equivalent.
func IsGreyscale(img *Image) bool {
	return IsGreyscaleTol(img, DefaultAbsTol, DefaultRelTol)
}

// IsGreyscaleTol is IsGreyscale with caller-supplied absolute and relative
// tolerances. Two planes are close when every sample pair is within absTol
// or within relTol of the larger magnitude.
func IsGreyscaleTol(img *Image, absTol, relTol float64) bool {
	if !img.initialized() {
		return false
	}
	r := img.channelIndex("R")
	g := img.channelIndex("G")
	b := img.channelIndex("B")
	if r < 0 || g < 0 || b < 0 {
		return false
	}
	nc := len(img.names)
	for px := 0; px < img.width*img.height; px++ {
		base := px * nc
		rv := float64(img.pix[base+r])
		gv := float64(img.pix[base+g])
		bv := float64(img.pix[base+b])
		if !scalar.EqualWithinAbsOrRel(rv, gv, absTol, relTol) ||
			!scalar.EqualWithinAbsOrRel(gv, bv, absTol, relTol) {
			return false
		}
	}
	return true
}

// ChannelStats summarizes one channel's sample distribution.
type ChannelStats struct {
	Name string
	Used bool
	Min  float64
	Max  float64
	Mean float64
}

// Stats returns per-channel summaries in channel-sequence order.
func Stats(img *Image) ([]ChannelStats, error) {
	if !img.initialized() {
		return nil, fmt.Errorf("%w: stats", ErrNotInitialized)
	}
	nc := len(img.names)
	out := make([]ChannelStats, nc)
	plane := make([]float64, img.width*img.height)
	for ci, name := range img.names {
		used := false
		for px := range plane {
			v := img.pix[px*nc+ci]
			if v != 0 {
				used = true
			}
			plane[px] = float64(v)
		}
		out[ci] = ChannelStats{
			Name: name,
			Used: used,
			Min:  floats.Min(plane),
			Max:  floats.Max(plane),
			Mean: stat.Mean(plane, nil),
		}
	}
	return out, nil
}
