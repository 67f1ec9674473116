package texpack

import "errors"

// Error kinds raised by channel operations and orchestrators. They form a
// closed set so callers can branch on kind with errors.Is rather than
// matching message text; every returned error wraps exactly one of these.
var (
	// ErrNotInitialized is returned when an operation receives a nil or
	// zero-dimension image, typically the result of a failed load.
	ErrNotInitialized = errors.New("texpack: image not initialized")

	// ErrChannelNotFound is returned when a named channel lookup misses.
	ErrChannelNotFound = errors.New("texpack: channel not found")

	// ErrShapeMismatch is returned when a sample grid's dimensions disagree
	// with the target image's dimensions.
	ErrShapeMismatch = errors.New("texpack: shape mismatch")

	// ErrUnsupportedFormat is returned when a path's extension maps to no
	// known image codec, or the codec cannot represent the image.
	ErrUnsupportedFormat = errors.New("texpack: unsupported format")

	// ErrNoSources is returned by Pack when the source list is empty.
	ErrNoSources = errors.New("texpack: no source files")
)
