package texpack

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSaveLoad_EXRRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := testImage(t, 6, 4, "Z", "AO", "height")
	path := filepath.Join(dir, "maps.exr")

	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Width() != 6 || got.Height() != 4 {
		t.Fatalf("size %dx%d, want 6x4", got.Width(), got.Height())
	}
	if !slices.Equal(got.ChannelNames(), []string{"Z", "AO", "height"}) {
		t.Fatalf("channels = %v", got.ChannelNames())
	}
	if !slices.Equal(got.Pix(), img.Pix()) {
		t.Error("samples did not round-trip through EXR")
	}
}

func TestSaveLoad_PNG(t *testing.T) {
	dir := t.TempDir()
	img, _ := NewImage(4, 4, []string{"R", "G", "B"})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, 0, 1)
			img.Set(x, y, 1, 0.5)
			img.Set(x, y, 2, 0)
		}
	}
	path := filepath.Join(dir, "color.png")

	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !slices.Equal(got.ChannelNames(), []string{"R", "G", "B", "A"}) {
		t.Fatalf("channels = %v, want [R G B A]", got.ChannelNames())
	}
	// 16-bit quantization allows a little slack.
	const eps = 1.0 / 65535
	checks := []struct {
		c    int
		want float32
	}{{0, 1}, {1, 0.5}, {2, 0}, {3, 1}}
	for _, c := range checks {
		if got := got.At(2, 2, c.c); got < c.want-eps || got > c.want+eps {
			t.Errorf("channel %d = %v, want %v ± %v", c.c, got, c.want, eps)
		}
	}
}

func TestLoad_GreyPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grey.png")

	grey := image.NewGray(image.Rect(0, 0, 2, 2))
	grey.SetGray(0, 0, color.Gray{Y: 255})
	grey.SetGray(1, 1, color.Gray{Y: 51})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, grey); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(img.ChannelNames(), []string{"Y"}) {
		t.Fatalf("channels = %v, want [Y]", img.ChannelNames())
	}
	if img.At(0, 0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", img.At(0, 0, 0))
	}
	if got, want := img.At(1, 1, 0), float32(51.0/255.0); got != want {
		t.Errorf("At(1,1) = %v, want %v", got, want)
	}
}

func TestSave_SingleChannelPNG(t *testing.T) {
	dir := t.TempDir()
	img, _ := NewImage(3, 3, []string{"AO"})
	img.Set(1, 1, 0, 0.5)
	path := filepath.Join(dir, "ao.png")

	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got.ChannelNames(), []string{"Y"}) {
		t.Fatalf("channels = %v, want [Y]", got.ChannelNames())
	}
	const eps = 1.0 / 65535
	if v := got.At(1, 1, 0); v < 0.5-eps || v > 0.5+eps {
		t.Errorf("At(1,1) = %v, want 0.5 ± %v", v, eps)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.exr")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "data.xyz")
		if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("got %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("corrupt exr", func(t *testing.T) {
		path := filepath.Join(dir, "bad.exr")
		if err := os.WriteFile(path, []byte("not an exr at all"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("got %v, want ErrNotInitialized", err)
		}
	})
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not initialized", func(t *testing.T) {
		if err := Save(nil, filepath.Join(dir, "x.exr")); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("got %v, want ErrNotInitialized", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		img := testImage(t, 2, 2, "R")
		if err := Save(img, filepath.Join(dir, "x.xyz")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("got %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("arbitrary channels to png", func(t *testing.T) {
		img := testImage(t, 2, 2, "Z", "AO")
		if err := Save(img, filepath.Join(dir, "x.png")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("got %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestSaveLoad_TIFF(t *testing.T) {
	dir := t.TempDir()
	img, _ := NewImage(3, 2, []string{"R", "G", "B", "A"})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, 0, 0.25)
			img.Set(x, y, 1, 0.75)
			img.Set(x, y, 2, 1)
			img.Set(x, y, 3, 1)
		}
	}
	path := filepath.Join(dir, "color.tif")

	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 3 || got.Height() != 2 {
		t.Fatalf("size %dx%d, want 3x2", got.Width(), got.Height())
	}
	const eps = 1.0 / 65535
	if v := got.At(1, 1, 1); v < 0.75-eps || v > 0.75+eps {
		t.Errorf("G = %v, want 0.75 ± %v", v, eps)
	}
}
