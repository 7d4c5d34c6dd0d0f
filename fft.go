package clunk

import (
	"fmt"

	"github.com/sorokin/clunk/internal/fft"
	m "github.com/sorokin/clunk/internal/math"
)

// FFT is an in-place radix-2 FFT of one fixed power-of-two size over its own
// complex buffer.
//
// Forward computes X[k] = Σ x[n]·e^{-i2πkn/N} without scaling; Inverse uses
// the positive exponent and divides by N, so Forward followed by Inverse is
// the identity up to rounding.
//
// An FFT is not safe for concurrent use.
type FFT[T Complex] struct {
	engine *fft.Engine[T]
	data   []T
}

// FFT32 is the single-precision FFT.
type FFT32 = FFT[complex64]

// FFT64 is the double-precision FFT.
type FFT64 = FFT[complex128]

// NewFFT creates an FFT of size n. n must be a power of two (1 is allowed).
func NewFFT[T Complex](n int) (*FFT[T], error) {
	if !m.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidLength, n)
	}

	return &FFT[T]{
		engine: fft.NewEngine[T](n),
		data:   make([]T, n),
	}, nil
}

// MustNewFFT is like NewFFT but panics on error. It is meant for sizes fixed
// at compile time.
func MustNewFFT[T Complex](n int) *FFT[T] {
	f, err := NewFFT[T](n)
	if err != nil {
		panic(err)
	}

	return f
}

// Len returns the transform size.
func (f *FFT[T]) Len() int {
	return f.engine.Len()
}

// Data returns the buffer the transforms operate on. Callers fill it before
// a transform and read the result from it afterwards.
func (f *FFT[T]) Data() []T {
	return f.data
}

// Transform runs the forward FFT, or the scaled inverse when inverse is true.
func (f *FFT[T]) Transform(inverse bool) {
	f.engine.Transform(f.data, inverse)
}

// Forward runs the forward FFT on Data().
func (f *FFT[T]) Forward() {
	f.engine.Transform(f.data, false)
}

// Inverse runs the inverse FFT on Data(), including the 1/N scaling.
func (f *FFT[T]) Inverse() {
	f.engine.Transform(f.data, true)
}
