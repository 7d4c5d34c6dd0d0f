//go:build arm64 && !purego

package lanes

import "github.com/sorokin/clunk/internal/fftypes"

var compiledLevels = []fftypes.SIMDLevel{fftypes.SIMDNEON}
