// Package wav decodes RIFF/WAVE PCM into stream.Source values and writes
// mono 16-bit WAV files.
package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sorokin/clunk/stream"
)

// ErrNotWavFile is returned when the input has no valid WAVE header.
var ErrNotWavFile = errors.New("wav: not a WAVE file")

// pcmReader is the part of wav.Decoder the source uses.
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
	if err != nil {
		return 0, fmt.Errorf("wav: %w", err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	stream.IntsToFloat32(dst, s.intBuf.Data[:n], s.scale)

	if n < len(dst) {
		return n, io.EOF
	}

	return n, nil
}

// Decoder decodes integer PCM WAVE files of 8, 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the WAVE header. The go-audio decoder needs to seek, so a
// reader that cannot is buffered in memory first.
func (Decoder) Decode(r io.Reader) (stream.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: reading input: %w", err)
		}

		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()

	scale, err := stream.FullScale(int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	format := dec.Format()

	return &source{
		dec:        dec,
		format:     format,
		scale:      scale,
		sampleRate: format.SampleRate,
		channels:   max(format.NumChannels, 1),
	}, nil
}

// Register binds the decoder to the "wav" and "wave" formats of reg.
func Register(reg *stream.Registry) {
	reg.Register("wav", Decoder{})
	reg.Register("wave", Decoder{})
}

// WriteMono writes samples in [-1, 1] as a mono 16-bit PCM WAV file.
// Values outside the range are clipped.
func WriteMono(w io.WriteSeeker, sampleRate int, samples []float32) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}

	for i, v := range samples {
		buf.Data[i] = int(stream.Float32ToInt16(v))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}

	return nil
}
