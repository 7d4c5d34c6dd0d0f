// Package vector runs the radix-2 FFT recursion on structure-of-arrays lane
// groups instead of interleaved complex values.
//
// The complex input is bit-reversed, split into separate real and
// imaginary lane arrays, and combined group by group with a lane backend.
// The recursion stops at a single group, where the lanes are copied back into
// a scalar complex scratch in lane order, combined by the scalar engine and
// copied out again in the same order.
package vector

import (
	"fmt"
	"unsafe"

	"github.com/sorokin/clunk/internal/fft"
	"github.com/sorokin/clunk/internal/fftypes"
	"github.com/sorokin/clunk/internal/lanes"
	m "github.com/sorokin/clunk/internal/math"
	"github.com/sorokin/clunk/internal/memory"
)

// Engine is a vector FFT of one fixed power-of-two size. F is the lane
// element type and C the matching complex type (float32 with complex64,
// float64 with complex128).
//
// Engine is not safe for concurrent use: the lane arrays are shared scratch.
type Engine[F fftypes.Float, C fftypes.Complex] struct {
	n         int
	width     int
	leafWidth int
	leafBits  int
	groups    int
	level     fftypes.SIMDLevel
	butterfly lanes.ButterflyFunc[F]

	reBuf, imBuf *memory.Buffer[F]
	wReBuf       *memory.Buffer[F]
	wImBuf       *memory.Buffer[F]
	re, im       []F
	wRe, wIm     []F

	leaf    []C
	forward []C
	inverse []C
	scale   F
}

// New builds the engine for size n on backend. n must be a power of two and
// F and C must have matching precision; violations panic, since the public
// constructors check both.
func New[F fftypes.Float, C fftypes.Complex](n int, backend lanes.Backend[F]) *Engine[F, C] {
	if !m.IsPowerOf2(n) {
		panic(fmt.Sprintf("vector: size %d is not a power of two", n))
	}

	var (
		zeroF F
		zeroC C
	)

	if 2*unsafe.Sizeof(zeroF) != unsafe.Sizeof(zeroC) {
		panic("vector: lane and complex precision differ")
	}

	width := backend.Width
	leafWidth := min(n, width)
	groups := (n + width - 1) / width
	align := max(backend.Level.RegisterBytes(), int(unsafe.Sizeof(zeroF)))

	e := &Engine[F, C]{
		n:         n,
		width:     width,
		leafWidth: leafWidth,
		leafBits:  m.Log2(leafWidth),
		groups:    groups,
		level:     backend.Level,
		butterfly: backend.Butterfly,
		reBuf:     memory.Alloc[F](groups*width, align),
		imBuf:     memory.Alloc[F](groups*width, align),
		wReBuf:    memory.Alloc[F](width, align),
		wImBuf:    memory.Alloc[F](width, align),
		leaf:      make([]C, leafWidth),
		forward:   fft.StepTable[C](n, false),
		inverse:   fft.StepTable[C](n, true),
		scale:     F(1 / float64(n)),
	}

	e.re, e.im = e.reBuf.Slice(), e.imBuf.Slice()
	e.wRe, e.wIm = e.wReBuf.Slice(), e.wImBuf.Slice()

	return e
}

// Len returns the transform size.
func (e *Engine[F, C]) Len() int {
	return e.n
}

// Level returns the SIMD level of the lane backend.
func (e *Engine[F, C]) Level() fftypes.SIMDLevel {
	return e.level
}

// Width returns the lane count of one group.
func (e *Engine[F, C]) Width() int {
	return e.width
}

// Groups returns the number of lane groups, including a zero-padded one.
func (e *Engine[F, C]) Groups() int {
	return e.groups
}

// Close releases the aligned lane buffers. Transform must not be called
// afterwards. Calling Close more than once has no further effect.
func (e *Engine[F, C]) Close() {
	e.reBuf.Release()
	e.imBuf.Release()
	e.wReBuf.Release()
	e.wImBuf.Release()
	e.re, e.im, e.wRe, e.wIm = nil, nil, nil, nil
}

// Transform runs the in-place FFT on data, which must hold exactly Len()
// elements. The inverse divides by Len() once, on the lanes, before saving.
func (e *Engine[F, C]) Transform(data []C, inverse bool) {
	steps := e.forward
	if inverse {
		steps = e.inverse
	}

	m.Scramble(data)
	e.load(data)
	e.combine(0, e.groups, steps, m.Log2(e.groups)+e.leafBits)

	if inverse {
		lanes.Scale(e.re, e.im, e.scale)
	}

	e.save(data)
}

// load splits data into the lane arrays; lanes past len(data) are zeroed.
func (e *Engine[F, C]) load(data []C) {
	for i := range e.re {
		if i >= len(data) {
			e.re[i], e.im[i] = 0, 0

			continue
		}

		re, im := fft.Parts(data[i])
		e.re[i], e.im[i] = F(re), F(im)
	}
}

// save writes the first len(data) lanes back into data.
func (e *Engine[F, C]) save(data []C) {
	for i := range data {
		data[i] = C(complex(float64(e.re[i]), float64(e.im[i])))
	}
}

// combine transforms count groups starting at first. level is log2 of the
// number of elements the span covers and selects the twiddle step.
func (e *Engine[F, C]) combine(first, count int, steps []C, level int) {
	if count == 1 {
		e.bridge(first, steps)

		return
	}

	half := count >> 1
	e.combine(first, half, steps, level-1)
	e.combine(first+half, half, steps, level-1)

	wp := steps[level]
	width := e.width

	var w C = 1

	for i := range half {
		for k := range width {
			re, im := fft.Parts(w)
			e.wRe[k], e.wIm[k] = F(re), F(im)
			w += w * wp
		}

		lo := (first + i) * width
		hi := (first + half + i) * width
		e.butterfly(
			e.re[lo:lo+width], e.im[lo:lo+width],
			e.re[hi:hi+width], e.im[hi:hi+width],
			e.wRe, e.wIm,
		)
	}
}

// bridge finishes one group with the scalar engine. Lane k maps to leaf[k]
// on the way in and back to lane k on the way out.
func (e *Engine[F, C]) bridge(group int, steps []C) {
	base := group * e.width
	leaf := e.leaf

	for k := range leaf {
		leaf[k] = C(complex(float64(e.re[base+k]), float64(e.im[base+k])))
	}

	fft.Combine(leaf, steps)

	for k, v := range leaf {
		re, im := fft.Parts(v)
		e.re[base+k], e.im[base+k] = F(re), F(im)
	}
}
