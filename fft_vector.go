package clunk

import (
	"fmt"

	"github.com/sorokin/clunk/internal/lanes"
	m "github.com/sorokin/clunk/internal/math"
	"github.com/sorokin/clunk/internal/vector"
)

// transformer is the in-place complex FFT shared by the scalar and vector
// engines.
type transformer[T Complex] interface {
	Transform(data []T, inverse bool)
}

// vectorEngine is a transformer backed by aligned lane buffers.
type vectorEngine[T Complex] interface {
	transformer[T]
	Level() SIMDLevel
	Width() int
	Close()
}

// VectorFFT computes the same transform as FFT, but runs the recursion on
// structure-of-arrays lane groups of the selected SIMD level. Results agree
// with FFT up to floating-point reassociation.
//
// T must be complex64 or complex128. Close releases the aligned lane
// buffers; the VectorFFT must not be used afterwards.
type VectorFFT[T Complex] struct {
	n      int
	engine vectorEngine[T]
	data   []T
}

// NewVectorFFT creates a vector FFT of size n on the widest lane backend
// available for T's precision.
func NewVectorFFT[T Complex](n int) (*VectorFFT[T], error) {
	return NewVectorFFTLevel[T](n, bestLevel[T]())
}

// NewVectorFFTLevel creates a vector FFT of size n on an explicit lane
// backend. It returns ErrUnsupportedSIMD when level is not available.
func NewVectorFFTLevel[T Complex](n int, level SIMDLevel) (*VectorFFT[T], error) {
	if !m.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidLength, n)
	}

	engine, err := newVectorEngine[T](n, level)
	if err != nil {
		return nil, err
	}

	return &VectorFFT[T]{
		n:      n,
		engine: engine,
		data:   make([]T, n),
	}, nil
}

func newVectorEngine[T Complex](n int, level SIMDLevel) (vectorEngine[T], error) {
	var zero T

	switch any(zero).(type) {
	case complex64:
		backend, ok := lanes.For[float32](level)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSIMD, level)
		}

		engine, _ := any(vector.New[float32, complex64](n, backend)).(vectorEngine[T])

		return engine, nil
	case complex128:
		backend, ok := lanes.For[float64](level)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSIMD, level)
		}

		engine, _ := any(vector.New[float64, complex128](n, backend)).(vectorEngine[T])

		return engine, nil
	default:
		return nil, fmt.Errorf("%w: vector engine needs complex64 or complex128, got %T", ErrPrecisionMismatch, zero)
	}
}

func bestLevel[T Complex]() SIMDLevel {
	var zero T

	if _, ok := any(zero).(complex128); ok {
		return lanes.Best[float64]().Level
	}

	return lanes.Best[float32]().Level
}

// Len returns the transform size.
func (v *VectorFFT[T]) Len() int {
	return v.n
}

// Level returns the lane backend in use.
func (v *VectorFFT[T]) Level() SIMDLevel {
	return v.engine.Level()
}

// Lanes returns the number of lanes per group.
func (v *VectorFFT[T]) Lanes() int {
	return v.engine.Width()
}

// Data returns the buffer the transforms operate on.
func (v *VectorFFT[T]) Data() []T {
	return v.data
}

// Transform runs the forward FFT, or the scaled inverse when inverse is true.
func (v *VectorFFT[T]) Transform(inverse bool) {
	v.engine.Transform(v.data, inverse)
}

// Forward runs the forward FFT on Data().
func (v *VectorFFT[T]) Forward() {
	v.engine.Transform(v.data, false)
}

// Inverse runs the inverse FFT on Data(), including the 1/N scaling.
func (v *VectorFFT[T]) Inverse() {
	v.engine.Transform(v.data, true)
}

// Close releases the aligned lane buffers. Calling Close more than once is
// a no-op.
func (v *VectorFFT[T]) Close() {
	v.engine.Close()
}
