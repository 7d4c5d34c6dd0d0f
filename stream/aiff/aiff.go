// Package aiff decodes AIFF PCM into stream.Source values.
package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/sorokin/clunk/stream"
)

var (
	// ErrNotAiffFile is returned when the input has no valid FORM/AIFF header.
	ErrNotAiffFile = errors.New("aiff: not an AIFF file")

	// ErrUnsupportedLayout is returned when the decoder reports no format.
	ErrUnsupportedLayout = errors.New("aiff: unsupported layout")
)

// pcmReader is the part of aiff.Decoder the source uses.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	format     *goaudio.Format
	scale      float32
	sampleRate int
	channels   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.format,
		}
	}

	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("aiff: %w", err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	stream.IntsToFloat32(dst, s.intBuf.Data[:n], s.scale)

	if n < len(dst) || err != nil {
		return n, io.EOF
	}

	return n, nil
}

// Decoder decodes integer PCM AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the AIFF header. A reader that cannot seek is buffered in
// memory first.
func (Decoder) Decode(r io.Reader) (stream.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("aiff: reading input: %w", err)
		}

		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	scale, err := stream.FullScale(int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedLayout
	}

	return &source{
		dec:        dec,
		format:     format,
		scale:      scale,
		sampleRate: format.SampleRate,
		channels:   max(format.NumChannels, 1),
	}, nil
}

// Register binds the decoder to the "aiff" and "aif" formats of reg.
func Register(reg *stream.Registry) {
	reg.Register("aiff", Decoder{})
	reg.Register("aif", Decoder{})
}
