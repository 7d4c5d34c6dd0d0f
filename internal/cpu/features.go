// Package cpu reports the vector instruction sets available to the lane
// backends.
package cpu

import "sync"

// Features describes CPU capabilities relevant to lane backend selection.
type Features struct {
	HasSSE2   bool
	HasSSE3   bool
	HasSSSE3  bool
	HasSSE41  bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// ForceGeneric disables every vector backend, leaving only the portable
	// single-lane one.
	ForceGeneric bool

	Architecture string
}

var (
	detectOnce sync.Once
	detected   Features

	forcedMu sync.RWMutex
	forced   *Features
)

// DetectFeatures returns the features of the running CPU. Detection runs once;
// a value installed with SetForcedFeatures takes precedence.
func DetectFeatures() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()

	if f != nil {
		return *f
	}

	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// SetForcedFeatures overrides detection, typically from tests that need a
// specific backend or the generic path.
func SetForcedFeatures(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = &f
}

// ResetDetection removes any override installed by SetForcedFeatures.
func ResetDetection() {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = nil
}
