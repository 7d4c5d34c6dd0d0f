//go:build amd64 && !purego

package lanes

import "github.com/sorokin/clunk/internal/fftypes"

var compiledLevels = []fftypes.SIMDLevel{fftypes.SIMDSSE2, fftypes.SIMDAVX2}
