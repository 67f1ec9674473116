package texpack

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestUnpack_TwoChannelImage(t *testing.T) {
	dir := t.TempDir()

	src := testImage(t, 5, 4, "Z", "AO")
	srcPath := writeEXR(t, dir, "depth_ao.exr", src)
	dest := filepath.Join(dir, "out", "unpacked")

	written, err := Unpack(srcPath, dest)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	want := []string{
		filepath.Join(dest, "depth_ao", "Z.exr"),
		filepath.Join(dest, "depth_ao", "AO.exr"),
	}
	if !slices.Equal(written, want) {
		t.Fatalf("written = %v, want %v", written, want)
	}

	for i, ch := range []string{"Z", "AO"} {
		out, err := Load(written[i])
		if err != nil {
			t.Fatalf("Load %s: %v", written[i], err)
		}
		if !slices.Equal(out.ChannelNames(), []string{"R", "G", "B"}) {
			t.Fatalf("%s channels = %v, want [R G B]", ch, out.ChannelNames())
		}
		wantPlane, _ := src.Extract(ch)
		for _, plane := range []string{"R", "G", "B"} {
			got, _ := out.Extract(plane)
			if !slices.Equal(got.Pix, wantPlane.Pix) {
				t.Errorf("%s plane %s does not equal the source channel", ch, plane)
			}
		}
	}
}

func TestUnpack_MissingSource(t *testing.T) {
	if _, err := Unpack(filepath.Join(t.TempDir(), "nope.exr"), t.TempDir()); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestUnpack_SanitizesChannelNames(t *testing.T) {
	dir := t.TempDir()

	src := testImage(t, 2, 2, "light/diffuse.R")
	srcPath := writeEXR(t, dir, "layered.exr", src)

	written, err := Unpack(srcPath, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	want := []string{filepath.Join(dir, "out", "layered", "light_diffuse.R.exr")}
	if !slices.Equal(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"AO", "AO"},
		{"light/diffuse.R", "light_diffuse.R"},
		{"a b:c", "a_b_c"},
		{"height-map_2", "height-map_2"},
	}
	for _, c := range cases {
		if got := sanitizeFileName(c.in); got != c.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
