package exr

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// EXR's zip codec wraps zlib with a byte-reorder and delta-predictor pass
// that makes pixel data compress better: the block is split into two
// interleaved halves, then each byte is replaced by its delta to the
// previous byte (offset by 128).

// zipCompress returns the zip-compressed form of raw, or raw itself when
// compression would not shrink it. Callers distinguish the two cases by
// comparing the result length with len(raw).
func zipCompress(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return raw, nil
	}

	tmp := make([]byte, len(raw))

	// Split into two interleaved halves.
	t1 := 0
	t2 := (len(raw) + 1) / 2
	for i := 0; i < len(raw); i++ {
		if i%2 == 0 {
			tmp[t1] = raw[i]
			t1++
		} else {
			tmp[t2] = raw[i]
			t2++
		}
	}

	// Delta predictor.
	p := int(tmp[0])
	for i := 1; i < len(tmp); i++ {
		d := int(tmp[i]) - p + (128 + 256)
		p = int(tmp[i])
		tmp[i] = byte(d)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(tmp); err != nil {
		return nil, fmt.Errorf("exr: zip compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("exr: zip compress: %w", err)
	}

	if buf.Len() >= len(raw) {
		return raw, nil
	}
	return buf.Bytes(), nil
}

// zipDecompress inflates data and reverses the predictor and reorder
// passes. rawSize is the expected uncompressed size; when len(data) equals
// rawSize the block was stored uncompressed and is returned as is.
func zipDecompress(data []byte, rawSize int) ([]byte, error) {
	if len(data) == rawSize {
		out := make([]byte, rawSize)
		copy(out, data)
		return out, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("exr: zip decompress: %w", err)
	}
	defer func() { _ = zr.Close() }()

	tmp := make([]byte, rawSize)
	if _, err := io.ReadFull(zr, tmp); err != nil {
		return nil, fmt.Errorf("exr: zip decompress: %w", err)
	}

	// Undo the delta predictor.
	for i := 1; i < len(tmp); i++ {
		tmp[i] = byte(int(tmp[i-1]) + int(tmp[i]) - 128)
	}

	// Re-interleave the two halves.
	out := make([]byte, rawSize)
	t1 := 0
	t2 := (rawSize + 1) / 2
	for i := 0; i < rawSize; {
		out[i] = tmp[t1]
		t1++
		i++
		if i < rawSize {
			out[i] = tmp[t2]
			t2++
			i++
		}
	}
	return out, nil
}
