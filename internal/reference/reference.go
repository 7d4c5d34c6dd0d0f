// Package reference holds direct O(N²) transforms used as test oracles.
package reference

import (
	"math"
	"math/cmplx"

	"github.com/sorokin/clunk/internal/fftypes"
)

// NaiveDFT computes X[k] = Σ x[n]·exp(-i2πkn/N) in float64.
func NaiveDFT[T fftypes.Complex](src []T) []T {
	return naive(src, -1, 1)
}

// NaiveIDFT computes x[n] = (1/N) Σ X[k]·exp(+i2πkn/N) in float64.
func NaiveIDFT[T fftypes.Complex](src []T) []T {
	if len(src) == 0 {
		return nil
	}

	return naive(src, 1, 1/float64(len(src)))
}

func naive[T fftypes.Complex](src []T, sign, scale float64) []T {
	n := len(src)
	dst := make([]T, n)

	for k := range n {
		var sum complex128

		for j, v := range src {
			angle := sign * 2 * math.Pi * float64((k*j)%n) / float64(n)
			sum += complex128(v) * cmplx.Exp(complex(0, angle))
		}

		dst[k] = T(sum * complex(scale, 0))
	}

	return dst
}

// MDCTPhase returns the time offset n0 = N/4 + 1/2 of the MDCT basis for a
// block of n samples.
func MDCTPhase(n int) float64 {
	return float64(n)/4 + 0.5
}

// NaiveMDCT computes X[k] = Σ x[n]·cos(2π/N·(n+n0)·(k+1/2)) for k < N/2.
func NaiveMDCT[F fftypes.Float](src []F) []F {
	n := len(src)
	half := n / 2
	n0 := MDCTPhase(n)
	dst := make([]F, half)

	for k := range half {
		var sum float64

		for j, v := range src {
			sum += float64(v) * math.Cos(2*math.Pi/float64(n)*(float64(j)+n0)*(float64(k)+0.5))
		}

		dst[k] = F(sum)
	}

	return dst
}

// NaiveIMDCT computes y[n] = Σ X[k]·cos(2π/N·(n+n0)·(k+1/2)) for n < 2·len(src).
func NaiveIMDCT[F fftypes.Float](src []F) []F {
	half := len(src)
	n := 2 * half
	n0 := MDCTPhase(n)
	dst := make([]F, n)

	for j := range n {
		var sum float64

		for k, v := range src {
			sum += float64(v) * math.Cos(2*math.Pi/float64(n)*(float64(j)+n0)*(float64(k)+0.5))
		}

		dst[j] = F(sum)
	}

	return dst
}
