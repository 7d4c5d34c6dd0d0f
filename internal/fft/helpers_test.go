package fft

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"
)

const (
	testTol64  = 1e-4
	testTol128 = 1e-10
)

func randomComplex64(n int, seed uint64) []complex64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	out := make([]complex64, n)

	for i := range out {
		out[i] = complex(rng.Float32()*2-1, rng.Float32()*2-1)
	}

	return out
}

func randomComplex128(n int, seed uint64) []complex128 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	out := make([]complex128, n)

	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

// maxRelError returns max|got-want| / max(1, max|want|).
func maxRelError[T Complex](got, want []T) float64 {
	var maxDiff, maxMag float64

	for i := range want {
		if d := cmplx.Abs(complex128(got[i]) - complex128(want[i])); d > maxDiff {
			maxDiff = d
		}

		if a := cmplx.Abs(complex128(want[i])); a > maxMag {
			maxMag = a
		}
	}

	return maxDiff / max(1, maxMag)
}

func assertComplexSliceClose[T Complex](t *testing.T, got, want []T, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	if err := maxRelError(got, want); err > tol {
		t.Fatalf("relative error %g exceeds %g", err, tol)
	}
}
