//go:build (!amd64 && !arm64) || purego

package lanes

import "github.com/sorokin/clunk/internal/fftypes"

// Only the single-lane backend is built here.
var compiledLevels []fftypes.SIMDLevel
