package stream

import "errors"

var (
	// ErrUnknownFormat is returned when no decoder is registered for a format.
	ErrUnknownFormat = errors.New("stream: unknown format")

	// ErrUnsupportedBitDepth is returned for integer PCM of a bit depth the
	// normaliser does not handle.
	ErrUnsupportedBitDepth = errors.New("stream: unsupported bit depth")

	// ErrInvalidHop is returned by NewBlockReader for a non-positive hop.
	ErrInvalidHop = errors.New("stream: hop size must be positive")
)
