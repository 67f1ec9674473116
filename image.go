package texpack

import (
	"fmt"
	"slices"
)

// Image is a rectangular grid of float32 samples, width x height x
// channels, with an ordered sequence of channel names. Samples are stored
// interleaved in row-major order: the sample for channel c at (x, y) lives
// at index (y*width+x)*channels + c.
//
// Channel names need not be unique, but name lookups resolve to the first
// match in sequence order. Images are treated as immutable by every
// operation in this package: edits return a new Image and leave the
// receiver untouched.
type Image struct {
	width  int
	height int
	names  []string
	pix    []float32
}

// NewImage creates a zero-filled image with the given dimensions and
// channel names. The name sequence is copied.
func NewImage(width, height int, names []string) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrNotInitialized, width, height)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: image must have at least one channel", ErrNotInitialized)
	}
	return &Image{
		width:  width,
		height: height,
		names:  slices.Clone(names),
		pix:    make([]float32, width*height*len(names)),
	}, nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// NumChannels returns the number of channels.
func (m *Image) NumChannels() int { return len(m.names) }

// ChannelNames returns a copy of the ordered channel-name sequence.
func (m *Image) ChannelNames() []string { return slices.Clone(m.names) }

// Pix returns the raw interleaved sample data. The slice is shared with
// the image; treat it as read-only.
func (m *Image) Pix() []float32 { return m.pix }

// At returns the sample for channel c at (x, y). Out-of-range coordinates
// return 0.
func (m *Image) At(x, y, c int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || c < 0 || c >= len(m.names) {
		return 0
	}
	return m.pix[(y*m.width+x)*len(m.names)+c]
}

// Set assigns the sample for channel c at (x, y). Out-of-range coordinates
// are silently ignored.
func (m *Image) Set(x, y, c int, v float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || c < 0 || c >= len(m.names) {
		return
	}
	m.pix[(y*m.width+x)*len(m.names)+c] = v
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	return &Image{
		width:  m.width,
		height: m.height,
		names:  slices.Clone(m.names),
		pix:    slices.Clone(m.pix),
	}
}

// initialized reports whether the image has proper dimensions and a sample
// buffer consistent with them.
func (m *Image) initialized() bool {
	return m != nil && m.width > 0 && m.height > 0 && len(m.names) > 0 &&
		len(m.pix) == m.width*m.height*len(m.names)
}

// channelIndex returns the index of the first channel with the given name,
// or -1 if no channel matches.
func (m *Image) channelIndex(name string) int {
	return slices.Index(m.names, name)
}
