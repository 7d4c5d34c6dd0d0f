// Package streamtest provides in-memory PCM sources for tests.
package streamtest

import (
	"io"
	"math"
)

// MockSource generates interleaved PCM from a waveform function. It
// satisfies stream.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	waveform   func(frame, channel int) float32

	// MaxChunk, when positive, caps the number of values returned by one
	// ReadSamples call. It may split frames.
	MaxChunk int
	// Err, when set, is returned by ReadSamples once the stream is drained
	// instead of io.EOF.
	Err error

	partial []float32
	closed  bool
}

// NewMockSource returns a source of frames frames per channel.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSineSource returns a source with the same sine of freq Hz on every
// channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(sampleRate)))
	})
}

// NewRampSource returns a source whose value at frame f on channel c is
// f + 1000·c, which makes ordering mistakes easy to spot.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, channel int) float32 {
		return float32(frame + 1000*channel)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

// Close marks the source closed.
func (m *MockSource) Close() error {
	m.closed = true

	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool {
	return m.closed
}

// ReadSamples writes interleaved values into dst.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.MaxChunk > 0 && len(dst) > m.MaxChunk {
		dst = dst[:m.MaxChunk]
	}

	n := copy(dst, m.partial)
	m.partial = m.partial[n:]

	for n < len(dst) && m.generated < m.frames {
		frame := make([]float32, m.channels)
		for ch := range frame {
			frame[ch] = m.waveform(m.generated, ch)
		}

		m.generated++

		c := copy(dst[n:], frame)
		n += c
		m.partial = append(m.partial, frame[c:]...)
	}

	if m.generated >= m.frames && len(m.partial) == 0 {
		if m.Err != nil {
			return n, m.Err
		}

		return n, io.EOF
	}

	return n, nil
}
