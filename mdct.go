package clunk

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/sorokin/clunk/internal/fft"
	m "github.com/sorokin/clunk/internal/math"
	"github.com/sorokin/clunk/internal/memory"
)

// MDCT is a forward and inverse modified discrete cosine transform of one
// fixed block length N, computed through an N/4-point complex FFT.
//
// The engine owns an N-sample block (Data). Forward turns the N samples into
// N/2 coefficients in Data()[:N/2] and zeroes the upper half; Inverse turns
// the N/2 coefficients back into N time-aliased samples. The window is not
// applied implicitly: call Apply before Forward and after Inverse.
//
// Scaling: Forward equals 1/√N times X[k] = Σ x[n]·cos(2π/N·(n+n0)·(k+½))
// with n0 = N/4 + ½, and Inverse equals 4/√N times the matching textbook
// IMDCT. With a Princen-Bradley window the 50% overlap-add of
// Apply∘Inverse∘Forward∘Apply reconstructs the input exactly.
//
// F and C must share their precision: float32 with complex64 or float64
// with complex128. An MDCT is not safe for concurrent use.
type MDCT[F Float, C Complex] struct {
	n       int
	half    int
	quarter int

	dataBuf   *memory.Buffer[F]
	rotateBuf *memory.Buffer[F]
	data      []F
	rotate    []F
	window    []F

	// pre holds conj(e^{i2π(t+⅛)/N}); the post tables fold in the output
	// scale of each direction.
	pre         []C
	forwardPost []C
	inversePost []C
	buf         []C

	fft    transformer[C]
	vector vectorEngine[C]
}

// MDCT32 is the single-precision MDCT.
type MDCT32 = MDCT[float32, complex64]

// MDCT64 is the double-precision MDCT.
type MDCT64 = MDCT[float64, complex128]

// MDCTOption configures the inner FFT of an MDCT.
type MDCTOption func(*mdctConfig)

type mdctConfig struct {
	vector   bool
	level    SIMDLevel
	hasLevel bool
}

// WithVectorFFT runs the inner FFT on the widest available lane backend.
func WithVectorFFT() MDCTOption {
	return func(c *mdctConfig) {
		c.vector = true
	}
}

// WithSIMDLevel runs the inner FFT on the lane backend for level. The
// constructor fails with ErrUnsupportedSIMD when level is not available.
func WithSIMDLevel(level SIMDLevel) MDCTOption {
	return func(c *mdctConfig) {
		c.vector = true
		c.level = level
		c.hasLevel = true
	}
}

// NewMDCT creates an MDCT of block length n with the given window. n must be
// a power of two of at least 4.
func NewMDCT[F Float, C Complex](n int, window WindowFunc, opts ...MDCTOption) (*MDCT[F, C], error) {
	if n < 4 || !m.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: MDCT size %d must be a power of two >= 4", ErrInvalidLength, n)
	}

	if window == nil {
		return nil, ErrNilWindow
	}

	var (
		zeroF F
		zeroC C
	)

	if 2*unsafe.Sizeof(zeroF) != unsafe.Sizeof(zeroC) {
		return nil, fmt.Errorf("%w: %T with %T", ErrPrecisionMismatch, zeroF, zeroC)
	}

	var cfg mdctConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	quarter := n / 4

	t := &MDCT[F, C]{
		n:       n,
		half:    n / 2,
		quarter: quarter,
	}

	if cfg.vector {
		level := cfg.level
		if !cfg.hasLevel {
			level = bestLevel[C]()
		}

		engine, err := newVectorEngine[C](quarter, level)
		if err != nil {
			return nil, err
		}

		t.fft, t.vector = engine, engine
	} else {
		t.fft = fft.NewEngine[C](quarter)
	}

	t.dataBuf = memory.Alloc[F](n, memory.DefaultAlignment)
	t.rotateBuf = memory.Alloc[F](n, memory.DefaultAlignment)
	t.data = t.dataBuf.Slice()
	t.rotate = t.rotateBuf.Slice()

	t.window = make([]F, n)
	for i := range t.window {
		t.window[i] = F(window(i, n))
	}

	root := math.Sqrt(float64(n))
	t.pre = make([]C, quarter)
	t.forwardPost = make([]C, quarter)
	t.inversePost = make([]C, quarter)
	t.buf = make([]C, quarter)

	for i := range quarter {
		theta := m.TwoPi * (float64(i) + 0.125) / float64(n)
		re, im := math.Cos(theta), -math.Sin(theta)
		t.pre[i] = C(complex(re, im))
		t.forwardPost[i] = C(complex(2/root*re, 2/root*im))
		t.inversePost[i] = C(complex(8/root*re, 8/root*im))
	}

	return t, nil
}

// NewMDCT32 creates a single-precision MDCT.
func NewMDCT32(n int, window WindowFunc, opts ...MDCTOption) (*MDCT32, error) {
	return NewMDCT[float32, complex64](n, window, opts...)
}

// NewMDCT64 creates a double-precision MDCT.
func NewMDCT64(n int, window WindowFunc, opts ...MDCTOption) (*MDCT64, error) {
	return NewMDCT[float64, complex128](n, window, opts...)
}

// MustNewMDCT32 is like NewMDCT32 but panics on error.
func MustNewMDCT32(n int, window WindowFunc, opts ...MDCTOption) *MDCT32 {
	t, err := NewMDCT32(n, window, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// MustNewMDCT64 is like NewMDCT64 but panics on error.
func MustNewMDCT64(n int, window WindowFunc, opts ...MDCTOption) *MDCT64 {
	t, err := NewMDCT64(n, window, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Len returns the block length N.
func (t *MDCT[F, C]) Len() int {
	return t.n
}

// Data returns the N-sample block. It is nil after Close.
func (t *MDCT[F, C]) Data() []F {
	return t.data
}

// Coefficients returns the N/2 coefficient half of Data().
func (t *MDCT[F, C]) Coefficients() []F {
	return t.data[:t.half]
}

// Window returns the cached window table. It must not be modified.
func (t *MDCT[F, C]) Window() []F {
	return t.window
}

// Level returns the lane backend of the inner FFT and whether the vector
// engine is in use at all.
func (t *MDCT[F, C]) Level() (SIMDLevel, bool) {
	if t.vector == nil {
		return SIMDNone, false
	}

	return t.vector.Level(), true
}

// Clear zero-fills Data().
func (t *MDCT[F, C]) Clear() {
	clear(t.data)
}

// Apply multiplies Data() by the window, sample by sample.
func (t *MDCT[F, C]) Apply() {
	window := t.window[:len(t.data)]

	for i, w := range window {
		t.data[i] *= w
	}
}

// Transform runs the forward MDCT, or the inverse when inverse is true.
func (t *MDCT[F, C]) Transform(inverse bool) {
	if inverse {
		t.Inverse()

		return
	}

	t.Forward()
}

// Forward replaces the N samples in Data() with N/2 coefficients in
// Data()[:N/2] and zeroes Data()[N/2:].
func (t *MDCT[F, C]) Forward() {
	n, half, quarter := t.n, t.half, t.quarter
	data, rotate, buf := t.data, t.rotate, t.buf

	for i := range quarter {
		rotate[i] = -data[i+3*quarter]
	}

	copy(rotate[quarter:], data[:n-quarter])

	for i := range quarter {
		re := (rotate[2*i] - rotate[n-1-2*i]) / 2
		im := (rotate[half-1-2*i] - rotate[half+2*i]) / 2
		buf[i] = pack[F, C](re, im) * t.pre[i]
	}

	t.fft.Transform(buf, false)

	for i := range quarter {
		re, im := fft.Parts(buf[i] * t.forwardPost[i])
		data[2*i] = F(re)
		data[half-1-2*i] = F(-im)
	}

	clear(data[half:])
}

// Inverse replaces the N/2 coefficients in Data()[:N/2] with N
// time-aliased samples.
func (t *MDCT[F, C]) Inverse() {
	n, half, quarter := t.n, t.half, t.quarter
	data, rotate, buf := t.data, t.rotate, t.buf

	for i := range quarter {
		buf[i] = pack[F, C](data[2*i]/2, data[half-1-2*i]/2) * t.pre[i]
	}

	t.fft.Transform(buf, false)

	for i := range quarter {
		re, im := fft.Parts(buf[i] * t.inversePost[i])
		rotate[2*i] = F(re)
		rotate[half+2*i] = F(im)
	}

	for i := 1; i < n; i += 2 {
		rotate[i] = -rotate[n-1-i]
	}

	copy(data, rotate[quarter:])

	for i := 3 * quarter; i < n; i++ {
		data[i] = -rotate[i-3*quarter]
	}
}

// Close releases the aligned sample and rotation buffers and the lane
// buffers of a vector FFT. Calling Close more than once is a no-op.
func (t *MDCT[F, C]) Close() {
	t.dataBuf.Release()
	t.rotateBuf.Release()

	if t.vector != nil {
		t.vector.Close()
	}

	t.data, t.rotate = nil, nil
}

func pack[F Float, C Complex](re, im F) C {
	return C(complex(float64(re), float64(im)))
}
