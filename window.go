package clunk

import (
	"math"
	"sync"
)

// WindowFunc returns the weight of sample i in a window of length n. It is
// evaluated once per index when an engine is built and cached afterwards.
//
// Windows used for MDCT overlap-add must satisfy the Princen-Bradley
// condition w(i)² + w(i+n/2)² = 1; PrincenBradleyError measures how far a
// window is from it.
type WindowFunc func(i, n int) float64

// SineWindow is the sine window sin(π(i+½)/n) used by Vorbis short blocks
// and AAC.
func SineWindow(i, n int) float64 {
	return math.Sin(math.Pi * (float64(i) + 0.5) / float64(n))
}

// VorbisWindow is the power-complementary Vorbis window
// sin(π/2 · sin²(π(i+½)/n)).
func VorbisWindow(i, n int) float64 {
	s := math.Sin(math.Pi * (float64(i) + 0.5) / float64(n))

	return math.Sin(math.Pi / 2 * s * s)
}

// HannWindow is the periodic Hann window. It does not satisfy the
// Princen-Bradley condition and is only suitable for analysis.
func HannWindow(i, n int) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
}

// KBDWindow returns the Kaiser-Bessel derived window with shape parameter
// alpha (AAC uses 4 for long blocks and 6 for short ones). Each distinct
// length is computed once and cached inside the returned function, which is
// safe for concurrent use.
func KBDWindow(alpha float64) WindowFunc {
	var (
		mu     sync.Mutex
		tables = map[int][]float64{}
	)

	return func(i, n int) float64 {
		mu.Lock()
		table, ok := tables[n]

		if !ok {
			table = kbdTable(alpha, n)
			tables[n] = table
		}
		mu.Unlock()

		return table[i]
	}
}

// kbdTable builds the full n-point KBD window: the first half is the square
// root of the normalised running sum of an n/2+1 point Kaiser window, the
// second half mirrors it.
func kbdTable(alpha float64, n int) []float64 {
	half := n / 2
	beta := math.Pi * alpha
	denom := besselI0(beta)

	kaiser := make([]float64, half+1)
	for j := range kaiser {
		x := 2*float64(j)/float64(half) - 1
		kaiser[j] = besselI0(beta*math.Sqrt(1-x*x)) / denom
	}

	total := 0.0
	for _, v := range kaiser {
		total += v
	}

	table := make([]float64, n)
	sum := 0.0

	for j := range half {
		sum += kaiser[j]
		table[j] = math.Sqrt(sum / total)
		table[n-1-j] = table[j]
	}

	return table
}

// besselI0 evaluates the zeroth-order modified Bessel function of the first
// kind by its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	for k := 1; k < 100; k++ {
		h := x / (2 * float64(k))
		term *= h * h
		sum += term

		if term < 1e-17*sum {
			break
		}
	}

	return sum
}

// PrincenBradleyError returns max |w(i)² + w(i+n/2)² - 1| over the first
// half of an n-point window. It is zero, up to rounding, for windows that
// give perfect reconstruction under 50% overlap-add.
func PrincenBradleyError(window WindowFunc, n int) float64 {
	worst := 0.0

	for i := range n / 2 {
		a := window(i, n)
		b := window(i+n/2, n)
		worst = max(worst, math.Abs(a*a+b*b-1))
	}

	return worst
}
