package texpack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackedFileName is the fixed name of the file Pack writes inside the
// "packed" subdirectory of the destination.
const PackedFileName = "packed_image.exr"

// Pack combines the channels of several source images into a single EXR.
//
// The first source becomes the accumulator and keeps its channel names
// unchanged. Every channel of each subsequent source, in that source's
// channel order, is appended under the name "{basename}_{channel}", where
// basename is the source filename up to its first dot. The result is
// written to {dest}/packed/packed_image.exr, creating directories as
// needed, and its path is returned.
//
// Any unreadable source or failed extraction aborts the whole pack. Output
// already on disk from an earlier run is not rolled back.
func Pack(sources []string, dest string) (string, error) {
	if len(sources) == 0 {
		return "", ErrNoSources
	}
	log := Logger()

	acc, err := Load(sources[0])
	if err != nil {
		return "", fmt.Errorf("texpack: pack: %w", err)
	}
	log.Info("loaded base image", "path", sources[0],
		"size", fmt.Sprintf("%dx%d", acc.Width(), acc.Height()),
		"channels", acc.ChannelNames())

	for _, src := range sources[1:] {
		img, err := Load(src)
		if err != nil {
			return "", fmt.Errorf("texpack: pack: %w", err)
		}
		base := sourceBaseName(src)

		// Pull every plane out first and concatenate once, instead of
		// rebuilding the accumulator per channel.
		names := img.ChannelNames()
		grids := make([]*Grid, 0, len(names))
		packed := make([]string, 0, len(names))
		for _, ch := range names {
			g, err := img.Extract(ch)
			if err != nil {
				return "", fmt.Errorf("texpack: pack %s: %w", src, err)
			}
			grids = append(grids, g)
			packed = append(packed, base+"_"+ch)
			log.Debug("packing channel", "source", src, "channel", ch, "as", base+"_"+ch)
		}
		acc, err = AppendAll(acc, grids, packed)
		if err != nil {
			return "", fmt.Errorf("texpack: pack %s: %w", src, err)
		}
	}

	outDir := filepath.Join(dest, "packed")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("texpack: pack: %w", err)
	}
	outPath := filepath.Join(outDir, PackedFileName)
	if err := Save(acc, outPath); err != nil {
		return "", fmt.Errorf("texpack: pack: %w", err)
	}
	log.Info("wrote packed image", "path", outPath, "channels", acc.ChannelNames())
	return outPath, nil
}

// sourceBaseName returns the filename up to its first dot, the prefix used
// for packed channel names.
func sourceBaseName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}
