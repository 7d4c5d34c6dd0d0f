package stream

import "fmt"

// FullScale returns the magnitude that maps to 1.0 for signed integer PCM of
// the given bit depth.
func FullScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 128, nil
	case 16:
		return 32768, nil
	case 24:
		return 8388608, nil
	case 32:
		return 2147483648, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// IntsToFloat32 converts signed integer samples to float32 in [-1, 1] by
// dividing by scale. It returns the number of values written.
func IntsToFloat32(dst []float32, src []int, scale float32) int {
	n := min(len(dst), len(src))
	inv := 1 / scale

	for i, v := range src[:n] {
		dst[i] = float32(v) * inv
	}

	return n
}

// Float32ToInt16 converts samples in [-1, 1] to 16-bit PCM, clipping values
// outside the range.
func Float32ToInt16(v float32) int16 {
	switch {
	case v >= 1:
		return 32767
	case v <= -1:
		return -32768
	default:
		return int16(v * 32767)
	}
}
