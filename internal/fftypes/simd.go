package fftypes

// SIMDLevel names the vector instruction set a lane backend is written for.
type SIMDLevel uint8

const (
	SIMDNone SIMDLevel = iota // Portable single-lane fallback
	SIMDSSE2                  // 128-bit x86 (amd64 baseline)
	SIMDAVX2                  // 256-bit x86
	SIMDNEON                  // 128-bit ARM Advanced SIMD
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "generic"
	case SIMDSSE2:
		return "sse2"
	case SIMDAVX2:
		return "avx2"
	case SIMDNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// RegisterBytes returns the vector register width in bytes for the level.
// SIMDNone reports 0; its backend processes one element at a time.
func (s SIMDLevel) RegisterBytes() int {
	switch s {
	case SIMDSSE2, SIMDNEON:
		return 16
	case SIMDAVX2:
		return 32
	default:
		return 0
	}
}

// ParseSIMDLevel maps a name produced by String back to its level.
func ParseSIMDLevel(name string) (SIMDLevel, bool) {
	for _, level := range []SIMDLevel{SIMDNone, SIMDSSE2, SIMDAVX2, SIMDNEON} {
		if level.String() == name {
			return level, true
		}
	}

	return SIMDNone, false
}
