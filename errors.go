package clunk

import "errors"

// Sentinel errors returned by the constructors. Transform methods never fail.
var (
	// ErrInvalidLength is returned when a transform size is not a power of
	// two, or is below the minimum size of the transform (4 for the MDCT).
	ErrInvalidLength = errors.New("clunk: invalid transform length")

	// ErrNilWindow is returned when an MDCT is built without a window function.
	ErrNilWindow = errors.New("clunk: nil window function")

	// ErrUnsupportedSIMD is returned when a vector engine is requested for a
	// SIMD level this build or CPU does not provide.
	ErrUnsupportedSIMD = errors.New("clunk: unsupported SIMD level")

	// ErrPrecisionMismatch is returned when the real and complex type
	// parameters of an engine do not share the same precision, or when a
	// named complex type is used where the vector engine needs complex64 or
	// complex128.
	ErrPrecisionMismatch = errors.New("clunk: real and complex precision differ")
)
