package texpack

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
)

// FromStdImage converts a standard library image to a float32 Image.
// Greyscale images become a single Y channel; everything else becomes
// R, G, B, A planes. Integer samples are normalized to [0, 1].
func FromStdImage(std image.Image) *Image {
	b := std.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := std.(type) {
	case *image.Gray:
		out := &Image{width: w, height: h, names: []string{"Y"}, pix: make([]float32, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.pix[y*w+x] = float32(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
			}
		}
		return out
	case *image.Gray16:
		out := &Image{width: w, height: h, names: []string{"Y"}, pix: make([]float32, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.pix[y*w+x] = float32(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y) / 65535
			}
		}
		return out
	}

	out := &Image{
		width:  w,
		height: h,
		names:  []string{"R", "G", "B", "A"},
		pix:    make([]float32, w*h*4),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(std.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			i := (y*w + x) * 4
			out.pix[i+0] = float32(c.R) / 65535
			out.pix[i+1] = float32(c.G) / 65535
			out.pix[i+2] = float32(c.B) / 65535
			out.pix[i+3] = float32(c.A) / 65535
		}
	}
	return out
}

// toStdImage converts an Image to a standard library image for the integer
// codecs. Single-channel images become Gray16; images with R, G and B
// channels become NRGBA64 (A taken from an A channel when present).
// Other channel layouts cannot be represented and must go through EXR.
func toStdImage(img *Image, path string) (image.Image, error) {
	w, h := img.width, img.height

	if len(img.names) == 1 {
		out := image.NewGray16(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetGray16(x, y, color.Gray16{Y: sampleTo16(img.pix[y*w+x])})
			}
		}
		return out, nil
	}

	r := img.channelIndex("R")
	g := img.channelIndex("G")
	b := img.channelIndex("B")
	a := img.channelIndex("A")
	if r < 0 || g < 0 || b < 0 {
		return nil, fmt.Errorf("%w: %s: channels %v cannot be written as %s",
			ErrUnsupportedFormat, path, img.names,
			strings.TrimPrefix(filepath.Ext(path), "."))
	}

	nc := len(img.names)
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * nc
			c := color.NRGBA64{
				R: sampleTo16(img.pix[base+r]),
				G: sampleTo16(img.pix[base+g]),
				B: sampleTo16(img.pix[base+b]),
				A: 65535,
			}
			if a >= 0 {
				c.A = sampleTo16(img.pix[base+a])
			}
			out.SetNRGBA64(x, y, c)
		}
	}
	return out, nil
}

// sampleTo16 clamps a float sample to [0, 1] and scales it to 16 bits.
func sampleTo16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(v*65535 + 0.5)
}
