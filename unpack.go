package texpack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unpack splits a multi-channel image into one 3-channel greyscale EXR per
// channel.
//
// Output files are written to {dest}/{source-basename-without-extension}/
// as {channel}.exr, with channel names sanitized for the filesystem. A
// channel that fails to extract or save is logged and skipped; the
// remaining channels still unpack. Returns the paths written.
//
// Duplicate channel names resolve first-match-wins, so duplicates collapse
// onto one output file.
func Unpack(source, dest string) ([]string, error) {
	log := Logger()

	img, err := Load(source)
	if err != nil {
		return nil, fmt.Errorf("texpack: unpack: %w", err)
	}

	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	outDir := filepath.Join(dest, base)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("texpack: unpack: %w", err)
	}

	log.Info("unpacking", "source", source, "channels", img.ChannelNames(), "dir", outDir)

	var written []string
	for _, ch := range img.ChannelNames() {
		g, err := img.Extract(ch)
		if err != nil {
			log.Warn("skipping channel", "channel", ch, "error", err)
			continue
		}
		grey, err := Greyscale(g)
		if err != nil {
			log.Warn("skipping channel", "channel", ch, "error", err)
			continue
		}
		outPath := filepath.Join(outDir, sanitizeFileName(ch)+".exr")
		if err := Save(grey, outPath); err != nil {
			log.Warn("skipping channel", "channel", ch, "error", err)
			continue
		}
		log.Debug("wrote channel", "channel", ch, "path", outPath)
		written = append(written, outPath)
	}
	return written, nil
}

// sanitizeFileName replaces characters that are unsafe in filenames, so
// layered EXR channel names like "light/diffuse.R" stay writable.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
