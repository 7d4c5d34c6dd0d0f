package clunk

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"
)

// Shared test helper functions used across multiple test files

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randomComplex64(n int, seed uint64) []complex64 {
	rng := newRand(seed)
	out := make([]complex64, n)

	for i := range out {
		out[i] = complex(float32(rng.Float64()*2-1), float32(rng.Float64()*2-1))
	}

	return out
}

func randomComplex128(n int, seed uint64) []complex128 {
	rng := newRand(seed)
	out := make([]complex128, n)

	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

func randomFloat32(n int, seed uint64) []float32 {
	rng := newRand(seed)
	out := make([]float32, n)

	for i := range out {
		out[i] = float32(rng.Float64()*2 - 1)
	}

	return out
}

func randomFloat64(n int, seed uint64) []float64 {
	rng := newRand(seed)
	out := make([]float64, n)

	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

// maxComplexError returns the largest |got[i]-want[i]| and the largest
// |want[i]|, both in float64.
func maxComplexError[T Complex](got, want []T) (float64, float64) {
	var worst, scale float64

	for i := range want {
		worst = max(worst, cmplx.Abs(complex128(got[i])-complex128(want[i])))
		scale = max(scale, cmplx.Abs(complex128(want[i])))
	}

	return worst, scale
}

func assertComplexClose[T Complex](t *testing.T, got, want []T, relTol float64, format string, args ...any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf(format+": length %d, want %d", append(args, len(got), len(want))...)
	}

	worst, scale := maxComplexError(got, want)
	if worst > relTol*max(scale, 1) {
		t.Fatalf(format+": max error %g exceeds %g (scale %g)", append(args, worst, relTol*max(scale, 1), scale)...)
	}
}

func assertFloatClose[F Float](t *testing.T, got, want []F, tol float64, format string, args ...any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf(format+": length %d, want %d", append(args, len(got), len(want))...)
	}

	for i := range want {
		if d := math.Abs(float64(got[i]) - float64(want[i])); d > tol {
			t.Fatalf(format+": index %d got %v want %v (diff=%g)", append(args, i, got[i], want[i], d)...)
		}
	}
}

func energy[F Float](s []F) float64 {
	var sum float64

	for _, v := range s {
		sum += float64(v) * float64(v)
	}

	return sum
}
