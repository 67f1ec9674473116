package exr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes img as a single-part scanline EXR with FLOAT channels and
// ZIP compression. Channels are written in img.Channels order.
func Encode(w io.Writer, img *Image) error {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Channels) == 0 {
		return fmt.Errorf("exr: encode: empty image")
	}
	if img.Width > maxDimension || img.Height > maxDimension {
		return fmt.Errorf("exr: encode: dimensions %dx%d exceed limit", img.Width, img.Height)
	}
	nc := len(img.Channels)
	if len(img.Pix) != img.Width*img.Height*nc {
		return fmt.Errorf("exr: encode: %d samples for %dx%dx%d image",
			len(img.Pix), img.Width, img.Height, nc)
	}

	version := uint32(versionNumber)
	for _, name := range img.Channels {
		if name == "" {
			return fmt.Errorf("exr: encode: empty channel name")
		}
		if len(name) > maxNameLength {
			version |= flagLongNames
		}
	}

	hdr := encodeHeader(img)

	// Compress all chunks up front so the offset table can be computed.
	lpb := linesPerBlock(compressionZIP)
	numBlocks := (img.Height + lpb - 1) / lpb
	rowBytes := img.Width * nc * 4
	chunks := make([][]byte, numBlocks)
	for b := 0; b < numBlocks; b++ {
		y := b * lpb
		lines := min(lpb, img.Height-y)
		raw := make([]byte, lines*rowBytes)
		off := 0
		for l := 0; l < lines; l++ {
			for ci := 0; ci < nc; ci++ {
				for x := 0; x < img.Width; x++ {
					v := img.Pix[((y+l)*img.Width+x)*nc+ci]
					binary.LittleEndian.PutUint32(raw[off:], math.Float32bits(v))
					off += 4
				}
			}
		}
		compressed, err := zipCompress(raw)
		if err != nil {
			return err
		}
		chunks[b] = compressed
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	le := binary.LittleEndian
	var scratch [8]byte

	le.PutUint32(scratch[:4], version)
	buf.Write(scratch[:4])
	buf.Write(hdr)

	// Offset table: absolute file position of each chunk.
	pos := uint64(buf.Len()) + uint64(numBlocks)*8
	for _, c := range chunks {
		le.PutUint64(scratch[:], pos)
		buf.Write(scratch[:])
		pos += 8 + uint64(len(c))
	}

	for b, c := range chunks {
		le.PutUint32(scratch[:4], uint32(int32(b*lpb)))
		buf.Write(scratch[:4])
		le.PutUint32(scratch[:4], uint32(int32(len(c))))
		buf.Write(scratch[:4])
		buf.Write(c)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("exr: write: %w", err)
	}
	return nil
}

func encodeHeader(img *Image) []byte {
	var buf bytes.Buffer

	var chlist bytes.Buffer
	for _, name := range img.Channels {
		chlist.WriteString(name)
		chlist.WriteByte(0)
		var fields [16]byte
		binary.LittleEndian.PutUint32(fields[0:], pixelTypeFloat)
		// pLinear and reserved stay zero.
		binary.LittleEndian.PutUint32(fields[8:], 1)  // xSampling
		binary.LittleEndian.PutUint32(fields[12:], 1) // ySampling
		chlist.Write(fields[:])
	}
	chlist.WriteByte(0)
	writeAttr(&buf, "channels", "chlist", chlist.Bytes())

	writeAttr(&buf, "compression", "compression", []byte{compressionZIP})

	var box [16]byte
	binary.LittleEndian.PutUint32(box[8:], uint32(int32(img.Width-1)))
	binary.LittleEndian.PutUint32(box[12:], uint32(int32(img.Height-1)))
	writeAttr(&buf, "dataWindow", "box2i", box[:])
	writeAttr(&buf, "displayWindow", "box2i", box[:])

	writeAttr(&buf, "lineOrder", "lineOrder", []byte{0}) // increasing Y

	var f [4]byte
	binary.LittleEndian.PutUint32(f[:], math.Float32bits(1))
	writeAttr(&buf, "pixelAspectRatio", "float", f[:])
	writeAttr(&buf, "screenWindowCenter", "v2f", make([]byte, 8))
	writeAttr(&buf, "screenWindowWidth", "float", f[:])

	buf.WriteByte(0) // end of header
	return buf.Bytes()
}

func writeAttr(buf *bytes.Buffer, name, typ string, value []byte) {
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.WriteString(typ)
	buf.WriteByte(0)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(value)))
	buf.Write(size[:])
	buf.Write(value)
}
