package clunk

import (
	"github.com/sorokin/clunk/internal/fftypes"
	"github.com/sorokin/clunk/internal/lanes"
)

// Complex is a type constraint for complex number types supported by the FFT.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex

// Float is a type constraint for the real sample types of the MDCT.
// The canonical definition is in internal/fftypes.
type Float = fftypes.Float

// SIMDLevel names a lane backend of the vector FFT.
type SIMDLevel = fftypes.SIMDLevel

// Lane backends. SIMDNone is the portable single-lane fallback and is always
// available.
const (
	SIMDNone = fftypes.SIMDNone
	SIMDSSE2 = fftypes.SIMDSSE2
	SIMDAVX2 = fftypes.SIMDAVX2
	SIMDNEON = fftypes.SIMDNEON
)

// AvailableSIMDLevels returns the lane backends usable in this build on this
// CPU, narrowest first.
func AvailableSIMDLevels() []SIMDLevel {
	return lanes.Levels()
}

// ParseSIMDLevel maps a level name such as "avx2" or "generic" to its level.
func ParseSIMDLevel(name string) (SIMDLevel, bool) {
	return fftypes.ParseSIMDLevel(name)
}
