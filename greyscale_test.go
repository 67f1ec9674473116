package texpack

import (
	"errors"
	"slices"
	"testing"
)

func TestGreyscale(t *testing.T) {
	g := ramp(5, 3, 0.5)

	img, err := Greyscale(g)
	if err != nil {
		t.Fatalf("Greyscale: %v", err)
	}
	if img.Width() != 5 || img.Height() != 3 {
		t.Fatalf("size %dx%d, want 5x3", img.Width(), img.Height())
	}
	if !slices.Equal(img.ChannelNames(), []string{"R", "G", "B"}) {
		t.Fatalf("names = %v, want [R G B]", img.ChannelNames())
	}
	for _, ch := range []string{"R", "G", "B"} {
		plane, err := img.Extract(ch)
		if err != nil {
			t.Fatalf("Extract %s: %v", ch, err)
		}
		if !slices.Equal(plane.Pix, g.Pix) {
			t.Errorf("plane %s does not equal the source grid", ch)
		}
	}
}

func TestGreyscale_Invalid(t *testing.T) {
	cases := []struct {
		name string
		grid *Grid
	}{
		{"nil", nil},
		{"zero size", &Grid{W: 0, H: 0}},
		{"inconsistent buffer", &Grid{W: 2, H: 2, Pix: make([]float32, 3)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Greyscale(c.grid); !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("got %v, want ErrShapeMismatch", err)
			}
		})
	}
}
