// Package stream adapts audio decoders to the sample blocks the transform
// engines consume.
//
// A Decoder turns an encoded byte stream into a Source of interleaved
// float32 PCM. A Registry maps format names and file extensions to
// decoders, and a BlockReader reframes a Source into fixed-size mono hops.
// The format packages under stream register nothing by themselves; callers
// pick the ones they need.
package stream

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1] and
	// returns the number of values written, not frames. n == 0 with io.EOF
	// ends the stream.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources held by the decoder.
	Close() error
}

// Decoder constructs a Source from an encoded input.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (Source, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (Source, error) {
	return f(r)
}

// Registry maps format names (such as "wav" or "ogg") to decoders. It is
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

// Register binds d to format. Format names are case-insensitive; a later
// registration replaces an earlier one.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

// Get returns the decoder bound to format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]

	return d, ok
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}

	slices.Sort(formats)

	return formats
}

// ForPath returns the decoder registered for the extension of path.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}

	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return d, nil
}
