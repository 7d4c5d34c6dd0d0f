//go:build !386 && !amd64 && !arm64

package cpu

import "runtime"

// detectFeaturesImpl reports no vector features on other architectures.
func detectFeaturesImpl() Features {
	return Features{Architecture: runtime.GOARCH}
}
