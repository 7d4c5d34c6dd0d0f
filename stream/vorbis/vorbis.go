// Package vorbis decodes Ogg Vorbis streams into stream.Source values.
package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/sorokin/clunk/stream"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// ReadSamples reads whole frames only; the decoder returns interleaved
// values, so dst is trimmed to a multiple of the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("vorbis: %w", err)
	}

	return n, err
}

// Decoder decodes Ogg Vorbis.
type Decoder struct{}

// Decode reads the Vorbis headers from r and returns the PCM source.
func (Decoder) Decode(r io.Reader) (stream.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	return newSource(dec), nil
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   max(dec.Channels(), 1),
	}
}

// Register binds the decoder to the "ogg" and "oga" formats of reg.
func Register(reg *stream.Registry) {
	reg.Register("ogg", Decoder{})
	reg.Register("oga", Decoder{})
}
