// Package lanes implements the butterfly arithmetic of the vector FFT on
// structure-of-arrays groups of a fixed lane count.
//
// Each backend works on groups of Width consecutive lanes held as separate
// real and imaginary slices. Kernels are written against fixed-size array
// views so the compiler drops bounds checks and keeps the lanes independent;
// the set of backends compiled into a binary is chosen per GOARCH by build
// tags and narrowed at run time by the detected CPU features.
package lanes

import (
	"unsafe"

	"github.com/sorokin/clunk/internal/cpu"
	"github.com/sorokin/clunk/internal/fftypes"
)

// Float is a type alias for the real number constraint.
type Float = fftypes.Float

// ButterflyFunc combines one group of the lower half with the matching group
// of the upper half: t = w·hi; hi = lo - t; lo = lo + t, lane by lane.
// Every slice must hold at least the backend's Width elements.
type ButterflyFunc[F Float] func(loRe, loIm, hiRe, hiIm, wRe, wIm []F)

// Backend is the lane-operation set for one SIMD level and precision.
type Backend[F Float] struct {
	Level     fftypes.SIMDLevel
	Width     int
	Butterfly ButterflyFunc[F]
}

// Width returns the lane count a level provides for elements of type F.
func Width[F Float](level fftypes.SIMDLevel) int {
	bytes := level.RegisterBytes()
	if bytes == 0 {
		return 1
	}

	var zero F

	return bytes / int(unsafe.Sizeof(zero))
}

// Levels returns the levels usable in this build on this CPU, narrowest first.
// SIMDNone is always present.
func Levels() []fftypes.SIMDLevel {
	features := cpu.DetectFeatures()
	levels := []fftypes.SIMDLevel{fftypes.SIMDNone}

	if features.ForceGeneric {
		return levels
	}

	for _, level := range compiledLevels {
		if supported(level, features) {
			levels = append(levels, level)
		}
	}

	return levels
}

// Available reports whether level is usable in this build on this CPU.
func Available(level fftypes.SIMDLevel) bool {
	for _, l := range Levels() {
		if l == level {
			return true
		}
	}

	return false
}

// For returns the backend for level, or false when the level is not available.
func For[F Float](level fftypes.SIMDLevel) (Backend[F], bool) {
	if !Available(level) {
		return Backend[F]{}, false
	}

	width := Width[F](level)

	return Backend[F]{
		Level:     level,
		Width:     width,
		Butterfly: butterflyFor[F](width),
	}, true
}

// Best returns the widest available backend.
func Best[F Float]() Backend[F] {
	levels := Levels()
	best := levels[0]

	for _, level := range levels[1:] {
		if Width[F](level) > Width[F](best) {
			best = level
		}
	}

	b, _ := For[F](best)

	return b
}

func supported(level fftypes.SIMDLevel, f cpu.Features) bool {
	switch level {
	case fftypes.SIMDSSE2:
		return f.HasSSE2
	case fftypes.SIMDAVX2:
		return f.HasAVX2
	case fftypes.SIMDNEON:
		return f.HasNEON
	default:
		return level == fftypes.SIMDNone
	}
}

func butterflyFor[F Float](width int) ButterflyFunc[F] {
	switch width {
	case 1:
		return butterfly1[F]
	case 2:
		return butterfly2[F]
	case 4:
		return butterfly4[F]
	case 8:
		return butterfly8[F]
	default:
		panic("lanes: unsupported width")
	}
}

// Scale multiplies every lane of re and im by s.
func Scale[F Float](re, im []F, s F) {
	im = im[:len(re)]

	for i := range re {
		re[i] *= s
		im[i] *= s
	}
}
