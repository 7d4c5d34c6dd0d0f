package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/sorokin/clunk/stream"
)

// mockReader simulates oggvorbis.Reader: Read returns interleaved values.
type mockReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	fail       error
}

func (m *mockReader) SampleRate() int { return m.sampleRate }
func (m *mockReader) Channels() int   { return m.channels }

func (m *mockReader) Read(buf []float32) (int, error) {
	if m.fail != nil {
		return 0, m.fail
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg Vorbis data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil", data)
		}
	}
}

func TestSourceReadsWholeFrames(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{
		sampleRate: 44100,
		channels:   2,
		samples:    []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
	})

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("format = %d Hz / %d ch", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 5)

	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples = %d, %v; want 4, nil", n, err)
	}

	if want := []float32{0.1, -0.1, 0.2, -0.2}; !slices.Equal(dst[:n], want) {
		t.Fatalf("dst = %v, want %v", dst[:n], want)
	}

	n, _ = src.ReadSamples(dst)
	if n != 2 {
		t.Fatalf("second read n = %d, want 2", n)
	}

	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("drained read = %d, %v", n, err)
	}
}

func TestSourceWrapsDecoderErrors(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{sampleRate: 8000, channels: 1, fail: io.ErrUnexpectedEOF})

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSourceFeedsBlockReader(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{
		sampleRate: 48000,
		channels:   2,
		samples:    []float32{1, 0, 0, 1, 1, 1},
	})

	br, err := stream.NewBlockReader(src, 4)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float32, 4)

	n, err := br.Next(dst)
	if err != nil || n != 3 {
		t.Fatalf("Next = %d, %v", n, err)
	}

	if want := []float32{0.5, 0.5, 1, 0}; !slices.Equal(dst, want) {
		t.Fatalf("block = %v, want %v", dst, want)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := stream.NewRegistry()
	Register(reg)

	for _, ext := range []string{"ogg", "oga"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("%s not registered", ext)
		}
	}
}
