package texpack

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/texpack/texpack/internal/exr"
)

// Load reads an image from disk, dispatching on the file extension.
// Supported formats: EXR, PNG, JPEG, TIFF, BMP.
//
// EXR files keep their channel names and float samples as stored. Other
// formats are decoded to R, G, B, A planes (or a single Y plane for
// greyscale images) with integer samples normalized to [0, 1].
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texpack: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".exr":
		return decodeEXR(f, path)
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return decodeStd(f, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes an image to disk, dispatching on the file extension.
//
// EXR accepts any channel layout. PNG, TIFF and BMP require either a single
// channel (written as 16-bit greyscale; BMP 8-bit) or R, G, B channels with
// an optional A (written as 16-bit color; JPEG and BMP 8-bit). Samples are
// clamped to [0, 1] for the integer formats.
func Save(img *Image, path string) error {
	if !img.initialized() {
		return fmt.Errorf("%w: save %s", ErrNotInitialized, path)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("texpack: create %s: %w", path, err)
	}

	if err := encode(img, f, path); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encode(img *Image, w io.Writer, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exr":
		e := &exr.Image{
			Width:    img.width,
			Height:   img.height,
			Channels: img.ChannelNames(),
			Pix:      img.pix,
		}
		if err := exr.Encode(w, e); err != nil {
			return fmt.Errorf("texpack: encode %s: %w", path, err)
		}
		return nil
	case ".png":
		std, err := toStdImage(img, path)
		if err != nil {
			return err
		}
		return png.Encode(w, std)
	case ".jpg", ".jpeg":
		std, err := toStdImage(img, path)
		if err != nil {
			return err
		}
		return jpeg.Encode(w, std, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		std, err := toStdImage(img, path)
		if err != nil {
			return err
		}
		return tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		std, err := toStdImage(img, path)
		if err != nil {
			return err
		}
		return bmp.Encode(w, std)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decodeEXR(r io.Reader, path string) (*Image, error) {
	e, err := exr.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrNotInitialized, path, err)
	}
	return &Image{
		width:  e.Width,
		height: e.Height,
		names:  e.Channels,
		pix:    e.Pix,
	}, nil
}

func decodeStd(r io.Reader, path string) (*Image, error) {
	std, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrNotInitialized, path, err)
	}
	return FromStdImage(std), nil
}
