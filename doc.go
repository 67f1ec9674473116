// Package texpack packs and unpacks texture channels for 3D content
// pipelines.
//
// # Overview
//
// Technical artists often juggle many single-purpose greyscale maps per
// asset (ambient occlusion, roughness, metallic, height, masks). texpack
// combines those maps into one multi-channel image, splits a multi-channel
// image back into per-channel greyscale files, and answers whether an
// image's color channels are redundant (greyscale-equivalent).
//
// # Quick Start
//
//	import "github.com/texpack/texpack"
//
//	// Combine several maps into one EXR.
//	out, err := texpack.Pack([]string{"albedo.exr", "ao.exr", "rough.exr"}, "out/")
//
//	// Split a packed EXR into one greyscale file per channel.
//	files, err := texpack.Unpack("packed.exr", "out/unpacked/")
//
//	// Inspect a single image.
//	img, err := texpack.Load("mask.exr")
//	used, err := texpack.UsedChannels(img)
//	grey := texpack.IsGreyscale(img)
//
// # Data Model
//
// An [Image] is a width x height x channels grid of float32 samples with an
// ordered list of channel names. A [Grid] is a single named plane pulled out
// of (or pushed into) an Image. Channel operations never mutate their
// inputs; every edit returns a new Image.
//
// # File Formats
//
// [Load] and [Save] dispatch on the file extension. OpenEXR (the pipeline
// interchange format) is handled by the internal codec; PNG, JPEG, TIFF and
// BMP are supported through the standard library and golang.org/x/image.
// Multi-channel images beyond RGBA can only round-trip through EXR.
//
// # Errors
//
// Failures are reported through a small closed set of sentinel errors
// ([ErrNotInitialized], [ErrChannelNotFound], [ErrShapeMismatch],
// [ErrUnsupportedFormat], [ErrNoSources]) wrapped with context, so callers
// can branch with errors.Is instead of matching message text.
package texpack

// Version is the current version of the library.
const Version = "0.2.0"
