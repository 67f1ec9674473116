package exr

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// channel is one chlist entry.
type channel struct {
	name      string
	pixelType int32
}

// Decode reads a single-part scanline EXR image.
//
// UINT samples are converted to float32 by value (they carry object IDs in
// practice, not normalized data).
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("exr: read: %w", err)
	}
	p := &parser{data: data}

	mg, err := p.bytes(4)
	if err != nil {
		return nil, ErrNotEXR
	}
	if [4]byte(mg) != magic {
		return nil, ErrNotEXR
	}

	version, err := p.u32()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated version field", ErrCorrupt)
	}
	if version&0xff != versionNumber {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupported, version&0xff)
	}
	if version&flagTiled != 0 {
		return nil, fmt.Errorf("%w: tiled image", ErrUnsupported)
	}
	if version&flagDeep != 0 {
		return nil, fmt.Errorf("%w: deep data", ErrUnsupported)
	}
	if version&flagMultipart != 0 {
		return nil, fmt.Errorf("%w: multi-part file", ErrUnsupported)
	}

	hdr, err := p.header()
	if err != nil {
		return nil, err
	}

	w := int(hdr.xMax-hdr.xMin) + 1
	h := int(hdr.yMax-hdr.yMin) + 1
	if w <= 0 || h <= 0 || w > maxDimension || h > maxDimension {
		return nil, fmt.Errorf("%w: data window %dx%d", ErrCorrupt, w, h)
	}
	if len(hdr.channels) == 0 {
		return nil, fmt.Errorf("%w: empty channel list", ErrCorrupt)
	}

	lpb := linesPerBlock(hdr.compression)
	numBlocks := (h + lpb - 1) / lpb

	// Offset table. Chunks are read sequentially, so the offsets themselves
	// are only validated for count.
	if _, err := p.bytes(numBlocks * 8); err != nil {
		return nil, fmt.Errorf("%w: truncated offset table", ErrCorrupt)
	}

	nc := len(hdr.channels)
	img := &Image{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*nc),
	}
	for _, ch := range hdr.channels {
		img.Channels = append(img.Channels, ch.name)
	}

	rowBytes := 0
	for _, ch := range hdr.channels {
		rowBytes += w * bytesPerSample(ch.pixelType)
	}

	for b := 0; b < numBlocks; b++ {
		y, err := p.i32()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrCorrupt)
		}
		size, err := p.i32()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrCorrupt)
		}
		row := int(y - hdr.yMin)
		if row < 0 || row >= h {
			return nil, fmt.Errorf("%w: chunk y %d outside data window", ErrCorrupt, y)
		}
		lines := min(lpb, h-row)
		rawSize := lines * rowBytes
		if size < 0 || int(size) > len(p.data)-p.off {
			return nil, fmt.Errorf("%w: chunk size %d", ErrCorrupt, size)
		}
		chunk, _ := p.bytes(int(size))

		var raw []byte
		switch hdr.compression {
		case compressionNone:
			if len(chunk) != rawSize {
				return nil, fmt.Errorf("%w: chunk size %d, want %d", ErrCorrupt, len(chunk), rawSize)
			}
			raw = chunk
		case compressionZIP, compressionZIPS:
			raw, err = zipDecompress(chunk, rawSize)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: compression %d", ErrUnsupported, hdr.compression)
		}

		off := 0
		for l := 0; l < lines; l++ {
			for ci, ch := range hdr.channels {
				bps := bytesPerSample(ch.pixelType)
				for x := 0; x < w; x++ {
					var v float32
					switch ch.pixelType {
					case pixelTypeHalf:
						v = halfToFloat(binary.LittleEndian.Uint16(raw[off:]))
					case pixelTypeFloat:
						v = math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
					case pixelTypeUint:
						v = float32(binary.LittleEndian.Uint32(raw[off:]))
					}
					img.Pix[((row+l)*w+x)*nc+ci] = v
					off += bps
				}
			}
		}
	}

	return img, nil
}

// header holds the attributes the codec cares about.
type header struct {
	channels               []channel
	compression            byte
	lineOrder              byte
	xMin, yMin, xMax, yMax int32
	haveChannels           bool
	haveDataWindow         bool
	haveCompression        bool
}

func (p *parser) header() (*header, error) {
	hdr := &header{}
	for {
		name, err := p.cstr()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		if name == "" {
			break
		}
		typ, err := p.cstr()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated attribute %q", ErrCorrupt, name)
		}
		size, err := p.i32()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated attribute %q", ErrCorrupt, name)
		}
		value, err := p.bytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("%w: truncated attribute %q", ErrCorrupt, name)
		}

		switch {
		case name == "channels" && typ == "chlist":
			hdr.channels, err = parseChannelList(value)
			if err != nil {
				return nil, err
			}
			hdr.haveChannels = true
		case name == "compression" && typ == "compression":
			if len(value) != 1 {
				return nil, fmt.Errorf("%w: compression attribute size %d", ErrCorrupt, len(value))
			}
			hdr.compression = value[0]
			hdr.haveCompression = true
		case name == "dataWindow" && typ == "box2i":
			if len(value) != 16 {
				return nil, fmt.Errorf("%w: dataWindow attribute size %d", ErrCorrupt, len(value))
			}
			hdr.xMin = int32(binary.LittleEndian.Uint32(value[0:]))
			hdr.yMin = int32(binary.LittleEndian.Uint32(value[4:]))
			hdr.xMax = int32(binary.LittleEndian.Uint32(value[8:]))
			hdr.yMax = int32(binary.LittleEndian.Uint32(value[12:]))
			hdr.haveDataWindow = true
		case name == "lineOrder" && typ == "lineOrder":
			if len(value) != 1 {
				return nil, fmt.Errorf("%w: lineOrder attribute size %d", ErrCorrupt, len(value))
			}
			hdr.lineOrder = value[0]
		}
		// Everything else (displayWindow, pixelAspectRatio, custom
		// metadata) is skipped.
	}

	if !hdr.haveChannels || !hdr.haveDataWindow || !hdr.haveCompression {
		return nil, fmt.Errorf("%w: missing required attributes", ErrCorrupt)
	}
	if hdr.lineOrder != 0 {
		return nil, fmt.Errorf("%w: line order %d", ErrUnsupported, hdr.lineOrder)
	}
	return hdr, nil
}

func parseChannelList(value []byte) ([]channel, error) {
	p := &parser{data: value}
	var channels []channel
	for {
		name, err := p.cstr()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated channel list", ErrCorrupt)
		}
		if name == "" {
			break
		}
		fields, err := p.bytes(16)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated channel %q", ErrCorrupt, name)
		}
		pixelType := int32(binary.LittleEndian.Uint32(fields[0:]))
		xSampling := int32(binary.LittleEndian.Uint32(fields[8:]))
		ySampling := int32(binary.LittleEndian.Uint32(fields[12:]))

		switch pixelType {
		case pixelTypeUint, pixelTypeHalf, pixelTypeFloat:
		default:
			return nil, fmt.Errorf("%w: channel %q pixel type %d", ErrCorrupt, name, pixelType)
		}
		if xSampling != 1 || ySampling != 1 {
			return nil, fmt.Errorf("%w: channel %q sampling %dx%d", ErrUnsupported, name, xSampling, ySampling)
		}
		channels = append(channels, channel{name: name, pixelType: pixelType})
	}
	return channels, nil
}

// parser is a bounds-checked cursor over a byte slice.
type parser struct {
	data []byte
	off  int
}

func (p *parser) bytes(n int) ([]byte, error) {
	if n < 0 || n > len(p.data)-p.off {
		return nil, io.ErrUnexpectedEOF
	}
	b := p.data[p.off : p.off+n]
	p.off += n
	return b, nil
}

func (p *parser) u32() (uint32, error) {
	b, err := p.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (p *parser) i32() (int32, error) {
	v, err := p.u32()
	return int32(v), err
}

// cstr reads a null-terminated string. Names are capped well past the
// long-names limit purely as a corruption guard.
func (p *parser) cstr() (string, error) {
	start := p.off
	for i := p.off; i < len(p.data) && i-start <= 256; i++ {
		if p.data[i] == 0 {
			s := string(p.data[start:i])
			p.off = i + 1
			return s, nil
		}
	}
	return "", io.ErrUnexpectedEOF
}
