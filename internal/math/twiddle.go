package math

import (
	"math"
	"math/cmplx"
)

// TwiddleStep returns wp = exp(iθ) - 1 for θ = -2π/n (forward) or +2π/n
// (inverse). It is evaluated as (-2·sin²(θ/2), sin θ), which keeps the
// real part accurate for small θ.
//
// Advancing w ← w + w·wp walks the n-th roots of unity without calling
// trigonometric functions per butterfly.
func TwiddleStep[T Complex](n int, inverse bool) T {
	theta := -TwoPi / float64(n)
	if inverse {
		theta = -theta
	}

	half := math.Sin(theta / 2)

	return T(complex(-2*half*half, math.Sin(theta)))
}

// TwiddleDrift runs the incremental twiddle recurrence for a size-n level in
// the precision of T and returns the largest distance between the recurred
// factor and the directly evaluated root of unity over the n/2 butterflies.
//
// The engines never re-derive w from sin/cos inside a level, so this is the
// error they carry into the butterflies.
func TwiddleDrift[T Complex](n int, inverse bool) float64 {
	if n < 2 {
		return 0
	}

	theta := -TwoPi / float64(n)
	if inverse {
		theta = -theta
	}

	wp := TwiddleStep[T](n, inverse)

	var (
		w     T = 1
		drift float64
	)

	for k := range n / 2 {
		want := cmplx.Exp(complex(0, theta*float64(k)))

		if d := cmplx.Abs(complex128(w) - want); d > drift {
			drift = d
		}

		w += w * wp
	}

	return drift
}

// TwiddleDriftBound is the documented ceiling for TwiddleDrift: the error of
// the additive recurrence grows at most linearly with the n/2 steps, and each
// step contributes a few ulps, so n·eps bounds it for every level size.
func TwiddleDriftBound(n int, eps float64) float64 {
	return float64(n) * eps
}

// Epsilon returns the machine epsilon of the component type of T.
func Epsilon[T Complex]() float64 {
	var zero T
	if _, ok := any(zero).(complex64); ok {
		return 0x1p-23
	}

	return 0x1p-52
}
