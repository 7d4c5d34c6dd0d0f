package vector

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/sorokin/clunk/internal/fft"
	"github.com/sorokin/clunk/internal/fftypes"
	"github.com/sorokin/clunk/internal/lanes"
)

func randomComplex64(n int, seed uint64) []complex64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5deece66d))
	out := make([]complex64, n)

	for i := range out {
		out[i] = complex(float32(rng.Float64()*2-1), float32(rng.Float64()*2-1))
	}

	return out
}

func randomComplex128(n int, seed uint64) []complex128 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5deece66d))
	out := make([]complex128, n)

	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

func maxAbsDiff[T fftypes.Complex](got, want []T) float64 {
	worst := 0.0

	for i := range got {
		gr, gi := fft.Parts(got[i])
		wr, wi := fft.Parts(want[i])
		worst = max(worst, math.Hypot(gr-wr, gi-wi))
	}

	return worst
}

func backend32(t *testing.T, level fftypes.SIMDLevel) lanes.Backend[float32] {
	t.Helper()

	b, ok := lanes.For[float32](level)
	if !ok {
		t.Fatalf("level %v reported available but has no float32 backend", level)
	}

	return b
}

func backend64(t *testing.T, level fftypes.SIMDLevel) lanes.Backend[float64] {
	t.Helper()

	b, ok := lanes.For[float64](level)
	if !ok {
		t.Fatalf("level %v reported available but has no float64 backend", level)
	}

	return b
}

var equivalenceSizes = []int{1, 2, 4, 8, 16, 32, 64, 256, 1024, 4096}

func TestMatchesScalarEngine32(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		for _, n := range equivalenceSizes {
			for _, inverse := range []bool{false, true} {
				e := New[float32, complex64](n, backend32(t, level))
				scalar := fft.NewEngine[complex64](n)

				got := randomComplex64(n, uint64(n)+7)
				want := append([]complex64(nil), got...)

				e.Transform(got, inverse)
				scalar.Transform(want, inverse)

				tol := 1e-5 * math.Sqrt(float64(n))
				if inverse {
					tol /= float64(n)
				}

				if d := maxAbsDiff(got, want); d > tol {
					t.Errorf("%v n=%d inverse=%v: max diff %g > %g", level, n, inverse, d, tol)
				}

				e.Close()
			}
		}
	}
}

func TestMatchesScalarEngine64(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		for _, n := range equivalenceSizes {
			for _, inverse := range []bool{false, true} {
				e := New[float64, complex128](n, backend64(t, level))
				scalar := fft.NewEngine[complex128](n)

				got := randomComplex128(n, uint64(n)+11)
				want := append([]complex128(nil), got...)

				e.Transform(got, inverse)
				scalar.Transform(want, inverse)

				if d := maxAbsDiff(got, want); d > 1e-12 {
					t.Errorf("%v n=%d inverse=%v: max diff %g", level, n, inverse, d)
				}

				e.Close()
			}
		}
	}
}

func TestMatchesGoDSP(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		for _, n := range []int{2, 8, 64, 512} {
			e := New[float64, complex128](n, backend64(t, level))

			data := randomComplex128(n, 99)
			want := dspfft.FFT(append([]complex128(nil), data...))

			e.Transform(data, false)

			if d := maxAbsDiff(data, want); d > 1e-9 {
				t.Errorf("%v n=%d: max diff vs go-dsp %g", level, n, d)
			}

			e.Close()
		}
	}
}

func TestImpulse(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		const n = 16

		e := New[float32, complex64](n, backend32(t, level))
		data := make([]complex64, n)
		data[0] = 1

		e.Transform(data, false)

		for i, v := range data {
			if cmplx.Abs(complex128(v)-1) > 1e-6 {
				t.Fatalf("%v: bin %d = %v, want 1", level, i, v)
			}
		}

		e.Close()
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		for _, n := range []int{4, 128, 4096} {
			e := New[float32, complex64](n, backend32(t, level))

			data := randomComplex64(n, 3)
			orig := append([]complex64(nil), data...)

			e.Transform(data, false)
			e.Transform(data, true)

			if d := maxAbsDiff(data, orig); d > 1e-5 {
				t.Errorf("%v n=%d: round trip error %g", level, n, d)
			}

			e.Close()
		}
	}
}

func TestLoadSaveKeepsLaneOrder(t *testing.T) {
	t.Parallel()

	for _, level := range lanes.Levels() {
		n := 3 * lanes.Width[float64](level)
		n = 1 << (bitsFor(n))

		e := New[float64, complex128](n, backend64(t, level))
		data := make([]complex128, n)

		for i := range data {
			data[i] = complex(float64(i), -float64(i))
		}

		e.load(data)

		for i := range n {
			if e.re[i] != float64(i) || e.im[i] != -float64(i) {
				t.Fatalf("%v: lane %d = (%v, %v)", level, i, e.re[i], e.im[i])
			}
		}

		out := make([]complex128, n)
		e.save(out)

		if d := maxAbsDiff(out, data); d != 0 {
			t.Fatalf("%v: save changed values, diff %g", level, d)
		}

		e.Close()
	}
}

func bitsFor(n int) int {
	bits := 0
	for 1<<bits < n {
		bits++
	}

	return bits
}

func TestShortInputPadsGroup(t *testing.T) {
	t.Parallel()

	level := lanes.Best[float32]().Level
	width := lanes.Width[float32](level)

	if width < 4 {
		t.Skipf("%v has %d lanes; no partial group possible for n=2", level, width)
	}

	e := New[float32, complex64](2, backend32(t, level))
	defer e.Close()

	if e.Groups() != 1 {
		t.Fatalf("Groups() = %d, want 1", e.Groups())
	}

	data := []complex64{1, 2}
	e.load(data)

	for i := 2; i < width; i++ {
		if e.re[i] != 0 || e.im[i] != 0 {
			t.Fatalf("padding lane %d = (%v, %v), want zero", i, e.re[i], e.im[i])
		}
	}

	e.Transform(data, false)

	if data[0] != 3 || data[1] != -1 {
		t.Fatalf("got %v, want [3 -1]", data)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	e := New[float32, complex64](64, lanes.Best[float32]())
	e.Close()
	e.Close()

	if !e.reBuf.Released() || !e.wImBuf.Released() {
		t.Fatal("buffers not released")
	}
}

func TestNewPanics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func()
	}{
		{"not power of two", func() { New[float32, complex64](12, lanes.Best[float32]()) }},
		{"precision mismatch", func() { New[float32, complex128](16, lanes.Best[float32]()) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()

			tc.fn()
		})
	}
}

func TestTransformDoesNotAllocate(t *testing.T) {
	for _, level := range lanes.Levels() {
		e := New[float32, complex64](1024, backend32(t, level))
		data := randomComplex64(1024, 5)

		allocs := testing.AllocsPerRun(20, func() {
			e.Transform(data, false)
			e.Transform(data, true)
		})

		if allocs != 0 {
			t.Errorf("%v: %v allocations per run", level, allocs)
		}

		e.Close()
	}
}

func BenchmarkTransform(b *testing.B) {
	for _, level := range lanes.Levels() {
		backend, _ := lanes.For[float32](level)

		b.Run(level.String(), func(b *testing.B) {
			e := New[float32, complex64](4096, backend)
			defer e.Close()

			data := randomComplex64(4096, 1)

			b.ReportAllocs()

			for b.Loop() {
				e.Transform(data, false)
			}
		})
	}
}
