// Package exr implements a minimal OpenEXR 2.0 codec for single-part
// scanline images.
//
// The reader understands HALF, FLOAT and UINT channels with NONE, ZIP and
// ZIPS compression, increasing-Y line order and unit sampling. Tiled, deep
// and multi-part files are rejected. The writer always produces FLOAT
// channels with ZIP compression.
//
// One deliberate deviation from the reference implementation: the channel
// list is written in the caller's channel order rather than sorted by name,
// so channel order survives a save/load round trip.
package exr

import "errors"

// Image is a decoded EXR part: interleaved float32 samples in row-major
// order, sample for channel c at (x, y) at index (y*Width+x)*len(Channels)+c.
type Image struct {
	Width    int
	Height   int
	Channels []string
	Pix      []float32
}

// magic is the little-endian OpenEXR magic number 20000630.
var magic = [4]byte{0x76, 0x2f, 0x31, 0x01}

// Version-field flag bits.
const (
	versionNumber = 2
	flagTiled     = 0x0200
	flagLongNames = 0x0400
	flagDeep      = 0x0800
	flagMultipart = 0x1000
)

// Pixel types from the chlist attribute.
const (
	pixelTypeUint  = 0
	pixelTypeHalf  = 1
	pixelTypeFloat = 2
)

// Compression codes.
const (
	compressionNone = 0
	compressionRLE  = 1
	compressionZIPS = 2
	compressionZIP  = 3
)

// maxDimension bounds width and height on decode so a corrupt header
// cannot trigger a huge allocation.
const maxDimension = 1 << 16

// maxNameLength is the attribute/channel name limit without the long-names
// flag.
const maxNameLength = 31

var (
	// ErrNotEXR is returned when the magic number does not match.
	ErrNotEXR = errors.New("exr: not an EXR file")

	// ErrUnsupported is returned for valid EXR files the codec does not
	// handle (tiled, deep, multi-part, exotic compression or sampling).
	ErrUnsupported = errors.New("exr: unsupported feature")

	// ErrCorrupt is returned when the file structure is malformed.
	ErrCorrupt = errors.New("exr: corrupt file")
)

func linesPerBlock(compression byte) int {
	if compression == compressionZIP {
		return 16
	}
	return 1
}

func bytesPerSample(pixelType int32) int {
	if pixelType == pixelTypeHalf {
		return 2
	}
	return 4
}
