package fft

import (
	"fmt"

	m "github.com/sorokin/clunk/internal/math"
)

// Engine is a scalar radix-2 FFT of one fixed power-of-two size.
//
// The per-level twiddle steps are evaluated once here; Transform only runs
// the bit-reversal pass, the recursive combine and, for the inverse, one
// scaling pass. An Engine holds no per-call state, so Transform may be
// called on different buffers, but a single buffer must not be transformed
// concurrently.
type Engine[T Complex] struct {
	n       int
	bits    int
	forward []T
	inverse []T
	scale   T
}

// NewEngine builds the engine for size n. n must be a power of two; the
// public constructors validate this, so a bad size here panics.
func NewEngine[T Complex](n int) *Engine[T] {
	if !m.IsPowerOf2(n) {
		panic(fmt.Sprintf("fft: size %d is not a power of two", n))
	}

	return &Engine[T]{
		n:       n,
		bits:    m.Log2(n),
		forward: StepTable[T](n, false),
		inverse: StepTable[T](n, true),
		scale:   T(complex(1/float64(n), 0)),
	}
}

// Len returns the transform size.
func (e *Engine[T]) Len() int {
	return e.n
}

// Bits returns log2 of the transform size.
func (e *Engine[T]) Bits() int {
	return e.bits
}

// Steps returns the twiddle step table for the given direction. Entry b holds
// exp(∓i2π/2^b) - 1; entry 0 is unused.
func (e *Engine[T]) Steps(inverse bool) []T {
	if inverse {
		return e.inverse
	}

	return e.forward
}

// Transform runs the in-place FFT on data, which must hold exactly Len()
// elements. The inverse divides every output by Len() once, after the
// recursion.
func (e *Engine[T]) Transform(data []T, inverse bool) {
	m.Scramble(data)

	if inverse {
		Combine(data, e.inverse)
		ScaleInPlace(data, e.scale)

		return
	}

	Combine(data, e.forward)
}

// StepTable returns the twiddle steps for every level of a size-n transform,
// indexed by log2 of the level size.
func StepTable[T Complex](n int, inverse bool) []T {
	bits := m.Log2(n)
	steps := make([]T, bits+1)

	for b := 1; b <= bits; b++ {
		steps[b] = m.TwiddleStep[T](1<<b, inverse)
	}

	return steps
}

// Combine runs the Danielson-Lanczos recursion over data, which must already
// be in bit-reversed order. len(data) must be a power of two no larger than
// 1<<(len(steps)-1).
func Combine[T Complex](data []T, steps []T) {
	combine(data, steps, m.Log2(len(data)))
}

func combine[T Complex](data []T, steps []T, level int) {
	if level == 0 {
		return
	}

	half := len(data) >> 1
	lo := data[:half:half]
	hi := data[half:]
	hi = hi[:len(lo)]

	combine(lo, steps, level-1)
	combine(hi, steps, level-1)

	wp := steps[level]

	var w T = 1

	for i := range lo {
		temp := w * hi[i]
		hi[i] = lo[i] - temp
		lo[i] += temp
		w += w * wp
	}
}

// ScaleInPlace multiplies each element of data by factor.
func ScaleInPlace[T Complex](data []T, factor T) {
	for i := range data {
		data[i] *= factor
	}
}
