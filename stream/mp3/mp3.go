// Package mp3 decodes MPEG-1/2 Layer III streams into stream.Source values.
package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/sorokin/clunk/stream"
)

// The decoder always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// pcmReader is the part of gomp3.Decoder the source uses.
type pcmReader interface {
	Read(p []byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	carry      int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

// ReadSamples converts the decoder's byte stream to float32. An odd trailing
// byte is held back until its partner arrives.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:s.carry])
		s.buf = buf
	}

	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.carry:])
	n += s.carry

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	s.carry = copy(s.buf, s.buf[samples*bytesPerSample:n])

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("mp3: %w", err)
	}

	return samples, err
}

// Decoder decodes MP3.
type Decoder struct{}

// Decode reads the first frame header from r and returns the PCM source.
func (Decoder) Decode(r io.Reader) (stream.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return newSource(dec), nil
}

func newSource(dec pcmReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 0, 8192),
	}
}

// Register binds the decoder to the "mp3" format of reg.
func Register(reg *stream.Registry) {
	reg.Register("mp3", Decoder{})
}
