// Package fftypes holds the type constraints and enums shared by the
// transform packages.
package fftypes

// Complex is the constraint for complex sample types handled by the FFT engines.
type Complex interface {
	~complex64 | ~complex128
}

// Float is the constraint for real sample types handled by the MDCT engine
// and the lane backends.
type Float interface {
	~float32 | ~float64
}
