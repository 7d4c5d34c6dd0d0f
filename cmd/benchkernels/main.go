// Command benchkernels times the scalar FFT against every available vector
// lane backend, and the MDCT built on each of them.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sorokin/clunk"
	"github.com/sorokin/clunk/internal/cpu"
)

const (
	modeForward   = "forward"
	modeInverse   = "inverse"
	modeRoundTrip = "roundtrip"
)

type benchResult struct {
	engine  string
	nsPerOp float64
}

// runner executes one benchmark iteration of a transform.
type runner struct {
	engine string
	run    func(mode string)
	close  func()
}

func main() {
	var (
		sizeList  = flag.String("sizes", "256,1024,4096,16384", "comma-separated power-of-two sizes")
		iters     = flag.Int("iters", 200, "benchmark iterations")
		warmup    = flag.Int("warmup", 10, "warmup iterations")
		mode      = flag.String("mode", modeForward, "benchmark mode: forward, inverse, roundtrip, all")
		transform = flag.String("transform", "all", "transform to time: fft, mdct, all")
		generic   = flag.Bool("generic", false, "force the portable lane backend only")
		seed      = flag.Uint64("seed", 1, "rng seed")
	)
	flag.Parse()

	if *generic {
		cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true, Architecture: runtime.GOARCH})
	}

	sizes := parseSizes(*sizeList)
	if len(sizes) == 0 {
		fmt.Println("no sizes specified")
		os.Exit(2)
	}

	rnd := rand.New(rand.NewPCG(*seed, *seed))
	features := cpu.DetectFeatures()

	fmt.Printf("arch=%s sse2=%v avx2=%v neon=%v levels=%v\n",
		features.Architecture, features.HasSSE2, features.HasAVX2, features.HasNEON, clunk.AvailableSIMDLevels())
	fmt.Printf("iters=%d warmup=%d\n", *iters, *warmup)
	fmt.Printf("%8s  %6s  %10s  %14s  %12s\n", "size", "xform", "mode", "engine", "ns/op")

	for _, n := range sizes {
		for _, kind := range resolveTransforms(*transform) {
			for _, benchMode := range resolveModes(*mode) {
				results := benchmarkSize(rnd, kind, n, *iters, *warmup, benchMode)

				sort.Slice(results, func(i, j int) bool {
					return results[i].nsPerOp < results[j].nsPerOp
				})

				for _, res := range results {
					fmt.Printf("%8d  %6s  %10s  %14s  %12.1f\n", n, kind, benchMode, res.engine, res.nsPerOp)
				}
			}
		}
	}
}

func benchmarkSize(rnd *rand.Rand, kind string, n, iters, warmup int, mode string) []benchResult {
	var runners []runner

	switch kind {
	case "fft":
		runners = fftRunners(rnd, n)
	case "mdct":
		runners = mdctRunners(rnd, n)
	}

	results := make([]benchResult, 0, len(runners))

	for _, r := range runners {
		for range warmup {
			r.run(mode)
		}

		runtime.GC()

		start := time.Now()

		for range iters {
			r.run(mode)
		}

		elapsed := time.Since(start)
		r.close()

		results = append(results, benchResult{
			engine:  r.engine,
			nsPerOp: float64(elapsed.Nanoseconds()) / float64(iters),
		})
	}

	return results
}

func fftRunners(rnd *rand.Rand, n int) []runner {
	src := make([]complex64, n)
	for i := range src {
		src[i] = complex(rnd.Float32()*2-1, rnd.Float32()*2-1)
	}

	scalar, err := clunk.NewFFT[complex64](n)
	if err != nil {
		fmt.Printf("skip fft n=%d: %v\n", n, err)

		return nil
	}

	copy(scalar.Data(), src)

	runners := []runner{{
		engine: "scalar",
		run:    func(mode string) { runMode(scalar, mode) },
		close:  func() {},
	}}

	for _, level := range clunk.AvailableSIMDLevels() {
		v, err := clunk.NewVectorFFTLevel[complex64](n, level)
		if err != nil {
			continue
		}

		copy(v.Data(), src)

		runners = append(runners, runner{
			engine: "vector/" + level.String(),
			run:    func(mode string) { runMode(v, mode) },
			close:  v.Close,
		})
	}

	return runners
}

func mdctRunners(rnd *rand.Rand, n int) []runner {
	src := make([]float32, n)
	for i := range src {
		src[i] = rnd.Float32()*2 - 1
	}

	scalar, err := clunk.NewMDCT32(n, clunk.SineWindow)
	if err != nil {
		fmt.Printf("skip mdct n=%d: %v\n", n, err)

		return nil
	}

	copy(scalar.Data(), src)

	runners := []runner{{
		engine: "scalar",
		run:    func(mode string) { runMode(scalar, mode) },
		close:  scalar.Close,
	}}

	for _, level := range clunk.AvailableSIMDLevels() {
		m, err := clunk.NewMDCT32(n, clunk.SineWindow, clunk.WithSIMDLevel(level))
		if err != nil {
			continue
		}

		copy(m.Data(), src)

		runners = append(runners, runner{
			engine: "vector/" + level.String(),
			run:    func(mode string) { runMode(m, mode) },
			close:  m.Close,
		})
	}

	return runners
}

// transformer is implemented by every engine in the library.
type transformer interface {
	Transform(inverse bool)
}

func runMode(t transformer, mode string) {
	switch mode {
	case modeInverse:
		t.Transform(true)
	case modeRoundTrip:
		t.Transform(false)
		t.Transform(true)
	default:
		t.Transform(false)
	}
}

func resolveModes(mode string) []string {
	switch mode {
	case "all":
		return []string{modeForward, modeInverse, modeRoundTrip}
	case modeInverse, modeRoundTrip, modeForward:
		return []string{mode}
	default:
		return []string{modeForward}
	}
}

func resolveTransforms(kind string) []string {
	switch kind {
	case "fft", "mdct":
		return []string{kind}
	default:
		return []string{"fft", "mdct"}
	}
}

func parseSizes(list string) []int {
	parts := strings.Split(list, ",")

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var n int

		_, err := fmt.Sscanf(part, "%d", &n)
		if err != nil || n <= 0 {
			continue
		}

		out = append(out, n)
	}

	return out
}
