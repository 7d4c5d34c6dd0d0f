package cpu

import (
	"runtime"
	"testing"
)

func TestDetectFeaturesArchitecture(t *testing.T) {
	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Error("amd64 must report SSE2")
	}

	if f.ForceGeneric {
		t.Error("detection must not set ForceGeneric")
	}
}

func TestDetectFeaturesStable(t *testing.T) {
	if DetectFeatures() != DetectFeatures() {
		t.Error("DetectFeatures returned different results across calls")
	}
}

func TestSetForcedFeatures(t *testing.T) {
	t.Cleanup(ResetDetection)

	want := Features{HasAVX2: true, HasSSE2: true, Architecture: "test"}
	SetForcedFeatures(want)

	if got := DetectFeatures(); got != want {
		t.Errorf("DetectFeatures() = %+v, want forced %+v", got, want)
	}

	ResetDetection()

	if got := DetectFeatures(); got.Architecture != runtime.GOARCH {
		t.Errorf("after reset Architecture = %q, want %q", got.Architecture, runtime.GOARCH)
	}
}
