package clunk

import (
	"errors"
	"testing"
)

func TestLappedRoundTripIsOneHopLate(t *testing.T) {
	t.Parallel()

	const (
		n    = 256
		hops = 12
	)

	for _, window := range []WindowFunc{SineWindow, VorbisWindow, KBDWindow(4)} {
		analyzer, err := NewAnalyzer[float64, complex128](n, window)
		if err != nil {
			t.Fatal(err)
		}

		synth, err := NewSynthesizer[float64, complex128](n, window)
		if err != nil {
			t.Fatal(err)
		}

		if analyzer.Hop() != n/2 || synth.Hop() != n/2 {
			t.Fatalf("Hop() = %d/%d, want %d", analyzer.Hop(), synth.Hop(), n/2)
		}

		signal := randomFloat64(hops*n/2, 31)

		for k := 0; k <= hops; k++ {
			var hop []float64
			if k < hops {
				hop = signal[k*n/2 : (k+1)*n/2]
			}

			out := synth.Synthesize(analyzer.Analyze(hop))

			if k == 0 {
				assertFloatClose(t, out, make([]float64, n/2), 1e-12, "first hop")

				continue
			}

			assertFloatClose(t, out, signal[(k-1)*n/2:k*n/2], 1e-12, "hop %d", k-1)
		}

		analyzer.Close()
		synth.Close()
	}
}

func TestLappedShortFinalHop(t *testing.T) {
	t.Parallel()

	const n = 64

	analyzer, err := NewAnalyzer[float32, complex64](n, SineWindow)
	if err != nil {
		t.Fatal(err)
	}
	defer analyzer.Close()

	synth, err := NewSynthesizer[float32, complex64](n, SineWindow)
	if err != nil {
		t.Fatal(err)
	}
	defer synth.Close()

	short := randomFloat32(10, 4)

	synth.Synthesize(analyzer.Analyze(short))
	out := synth.Synthesize(analyzer.Analyze(nil))

	want := make([]float32, n/2)
	copy(want, short)
	assertFloatClose(t, out, want, 1e-5, "padded hop")
}

func TestLappedReset(t *testing.T) {
	t.Parallel()

	const n = 32

	analyzer, err := NewAnalyzer[float64, complex128](n, SineWindow)
	if err != nil {
		t.Fatal(err)
	}
	defer analyzer.Close()

	synth, err := NewSynthesizer[float64, complex128](n, SineWindow)
	if err != nil {
		t.Fatal(err)
	}
	defer synth.Close()

	synth.Synthesize(analyzer.Analyze(randomFloat64(n/2, 1)))

	analyzer.Reset()
	synth.Reset()

	out := synth.Synthesize(analyzer.Analyze(nil))
	assertFloatClose(t, out, make([]float64, n/2), 0, "after reset")
}

func TestLappedConstructorErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewAnalyzer[float32, complex64](10, SineWindow); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("NewAnalyzer(10) error = %v", err)
	}

	if _, err := NewSynthesizer[float32, complex64](16, nil); !errors.Is(err, ErrNilWindow) {
		t.Errorf("NewSynthesizer(nil window) error = %v", err)
	}
}

func TestLappedDoesNotAllocate(t *testing.T) {
	analyzer, err := NewAnalyzer[float32, complex64](1024, SineWindow, WithVectorFFT())
	if err != nil {
		t.Fatal(err)
	}
	defer analyzer.Close()

	synth, err := NewSynthesizer[float32, complex64](1024, SineWindow, WithVectorFFT())
	if err != nil {
		t.Fatal(err)
	}
	defer synth.Close()

	hop := randomFloat32(512, 2)

	allocs := testing.AllocsPerRun(20, func() {
		synth.Synthesize(analyzer.Analyze(hop))
	})

	if allocs != 0 {
		t.Fatalf("%v allocations per hop", allocs)
	}
}
