// Command mdctcheck decodes an audio file, runs every channel through an
// MDCT analysis/synthesis chain with 50% overlap and reports how closely the
// reconstruction matches the input.
//
//	mdctcheck -in take.ogg -n 2048 -window kbd -alpha 4 -out recon.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/sorokin/clunk"
	"github.com/sorokin/clunk/stream"
	"github.com/sorokin/clunk/stream/aiff"
	"github.com/sorokin/clunk/stream/mp3"
	"github.com/sorokin/clunk/stream/vorbis"
	"github.com/sorokin/clunk/stream/wav"
)

type config struct {
	in     string
	out    string
	n      int
	window string
	alpha  float64
	vector bool
	level  string
	mono   bool
}

// report is the outcome for one channel (or the downmix).
type report struct {
	name        string
	samples     int
	snr         float64
	energyRatio float64
	recon       []float32
}

func main() {
	var cfg config

	flag.StringVar(&cfg.in, "in", "", "input audio file (wav, aiff, ogg, mp3)")
	flag.StringVar(&cfg.out, "out", "", "write the first channel's reconstruction to this WAV file")
	flag.IntVar(&cfg.n, "n", 2048, "MDCT block length (power of two >= 4)")
	flag.StringVar(&cfg.window, "window", "sine", "window: sine, vorbis, kbd")
	flag.Float64Var(&cfg.alpha, "alpha", 4, "KBD window alpha")
	flag.BoolVar(&cfg.vector, "vector", false, "use the vector FFT on the widest lane backend")
	flag.StringVar(&cfg.level, "level", "", "use the vector FFT on this lane backend (generic, sse2, avx2, neon)")
	flag.BoolVar(&cfg.mono, "mono", false, "downmix to mono while streaming instead of checking each channel")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("mdctcheck failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger, w io.Writer) error {
	if cfg.in == "" {
		return errors.New("missing -in")
	}

	window, err := windowByName(cfg.window, cfg.alpha)
	if err != nil {
		return err
	}

	opts, err := mdctOptions(cfg)
	if err != nil {
		return err
	}

	dec, err := newRegistry().ForPath(cfg.in)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.in, err)
	}
	defer src.Close()

	logger.Info("decoded", "file", cfg.in, "rate", src.SampleRate(), "channels", src.Channels())

	var reports []report
	if cfg.mono {
		reports, err = checkMono(src, cfg.n, window, opts)
	} else {
		reports, err = checkChannels(src, cfg.n, window, opts, logger)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-8s  %10s  %10s  %12s\n", "channel", "samples", "snr_db", "energy_ratio")

	for _, r := range reports {
		fmt.Fprintf(w, "%-8s  %10d  %10.2f  %12.6f\n", r.name, r.samples, r.snr, r.energyRatio)
	}

	if cfg.out != "" && len(reports) > 0 {
		if err := writeWAV(cfg.out, src.SampleRate(), reports[0].recon); err != nil {
			return err
		}

		logger.Info("wrote reconstruction", "file", cfg.out, "samples", len(reports[0].recon))
	}

	return nil
}

func newRegistry() *stream.Registry {
	reg := stream.NewRegistry()
	wav.Register(reg)
	aiff.Register(reg)
	vorbis.Register(reg)
	mp3.Register(reg)

	return reg
}

func windowByName(name string, alpha float64) (clunk.WindowFunc, error) {
	switch strings.ToLower(name) {
	case "sine":
		return clunk.SineWindow, nil
	case "vorbis":
		return clunk.VorbisWindow, nil
	case "kbd":
		return clunk.KBDWindow(alpha), nil
	default:
		return nil, fmt.Errorf("unknown window %q", name)
	}
}

func mdctOptions(cfg config) ([]clunk.MDCTOption, error) {
	if cfg.level != "" {
		level, ok := clunk.ParseSIMDLevel(strings.ToLower(cfg.level))
		if !ok {
			return nil, fmt.Errorf("unknown SIMD level %q", cfg.level)
		}

		return []clunk.MDCTOption{clunk.WithSIMDLevel(level)}, nil
	}

	if cfg.vector {
		return []clunk.MDCTOption{clunk.WithVectorFFT()}, nil
	}

	return nil, nil
}

// checkChannels decodes the whole input and checks every channel on its own
// goroutine with its own engines.
func checkChannels(src stream.Source, n int, window clunk.WindowFunc, opts []clunk.MDCTOption, logger *slog.Logger) ([]report, error) {
	channels, err := stream.ReadAll(src)
	if err != nil {
		return nil, err
	}

	reports := make([]report, len(channels))
	errs := make([]error, len(channels))

	var wg sync.WaitGroup

	for ch, signal := range channels {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r, err := roundTrip(signal, n, window, opts)
			if err != nil {
				errs[ch] = fmt.Errorf("channel %d: %w", ch, err)

				return
			}

			r.name = fmt.Sprintf("ch%d", ch)
			reports[ch] = r

			logger.Debug("channel done", "channel", ch, "snr_db", r.snr)
		}()
	}

	wg.Wait()

	return reports, errors.Join(errs...)
}

// checkMono streams the downmix hop by hop.
func checkMono(src stream.Source, n int, window clunk.WindowFunc, opts []clunk.MDCTOption) ([]report, error) {
	br, err := stream.NewBlockReader(src, n/2)
	if err != nil {
		return nil, err
	}

	var signal []float32

	hop := make([]float32, br.Hop())

	for {
		got, err := br.Next(hop)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		signal = append(signal, hop[:got]...)
	}

	r, err := roundTrip(signal, n, window, opts)
	if err != nil {
		return nil, err
	}

	r.name = "mono"

	return []report{r}, nil
}

// roundTrip runs signal through Analyzer and Synthesizer and compares the
// reconstruction, which trails the input by one hop, with the input.
func roundTrip(signal []float32, n int, window clunk.WindowFunc, opts []clunk.MDCTOption) (report, error) {
	analyzer, err := clunk.NewAnalyzer[float32, complex64](n, window, opts...)
	if err != nil {
		return report{}, err
	}
	defer analyzer.Close()

	synth, err := clunk.NewSynthesizer[float32, complex64](n, window, opts...)
	if err != nil {
		return report{}, err
	}
	defer synth.Close()

	hop := analyzer.Hop()
	recon := make([]float32, 0, len(signal)+hop)

	var coeffEnergy float64

	for start := 0; start < len(signal)+hop; start += hop {
		var in []float32
		if start < len(signal) {
			in = signal[start:min(start+hop, len(signal))]
		}

		coeffs := analyzer.Analyze(in)
		coeffEnergy += sumSquares(coeffs)

		out := synth.Synthesize(coeffs)
		if start > 0 {
			recon = append(recon, out...)
		}
	}

	recon = recon[:len(signal)]

	var noise float64

	for i, v := range signal {
		d := float64(recon[i]) - float64(v)
		noise += d * d
	}

	signalEnergy := sumSquares(signal)

	r := report{
		samples: len(signal),
		snr:     snr(signalEnergy, noise),
		recon:   recon,
	}

	if signalEnergy > 0 {
		r.energyRatio = coeffEnergy / signalEnergy
	}

	return r, nil
}

func sumSquares(s []float32) float64 {
	var sum float64

	for _, v := range s {
		sum += float64(v) * float64(v)
	}

	return sum
}

func snr(signal, noise float64) float64 {
	switch {
	case signal == 0:
		return 0
	case noise == 0:
		return math.Inf(1)
	default:
		return 10 * math.Log10(signal/noise)
	}
}

func writeWAV(path string, sampleRate int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := wav.WriteMono(f, sampleRate, samples); err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}
