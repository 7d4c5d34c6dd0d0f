package stream

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds consecutive (0, nil) reads before a source is treated
// as stuck.
const maxEmptyReads = 100

// BlockReader reframes a Source into mono hops of a fixed size. Interleaved
// frames are downmixed by averaging their channels.
type BlockReader struct {
	src      Source
	hop      int
	channels int
	buf      []float32
	fill     int
	eof      bool
}

// NewBlockReader returns a BlockReader that yields hop mono samples per call.
func NewBlockReader(src Source, hop int) (*BlockReader, error) {
	if hop <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHop, hop)
	}

	channels := max(src.Channels(), 1)

	return &BlockReader{
		src:      src,
		hop:      hop,
		channels: channels,
		buf:      make([]float32, hop*channels),
	}, nil
}

// Hop returns the number of mono samples per block.
func (b *BlockReader) Hop() int {
	return b.hop
}

// SampleRate returns the sample rate of the underlying source.
func (b *BlockReader) SampleRate() int {
	return b.src.SampleRate()
}

// Next fills dst[:Hop()] with the next block and returns the number of real
// samples in it. A final partial block is zero-padded to Hop(). Once the
// source is drained Next returns 0, io.EOF. A trailing incomplete frame is
// dropped.
func (b *BlockReader) Next(dst []float32) (int, error) {
	want := len(b.buf)
	empty := 0

	for b.fill < want && !b.eof {
		n, err := b.src.ReadSamples(b.buf[b.fill:want])
		b.fill += n

		if errors.Is(err, io.EOF) {
			b.eof = true

			break
		}

		if err != nil {
			return 0, fmt.Errorf("stream: read samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return 0, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	frames := b.fill / b.channels
	b.fill = 0

	if frames == 0 {
		return 0, io.EOF
	}

	downmix(dst[:frames], b.buf[:frames*b.channels], b.channels)
	clear(dst[frames:b.hop])

	return frames, nil
}

func downmix(dst, src []float32, channels int) {
	if channels == 1 {
		copy(dst, src)

		return
	}

	inv := 1 / float32(channels)

	for f := range dst {
		var sum float32

		for _, v := range src[f*channels : (f+1)*channels] {
			sum += v
		}

		dst[f] = sum * inv
	}
}

// ReadAll drains src and returns its samples split per channel.
func ReadAll(src Source) ([][]float32, error) {
	channels := max(src.Channels(), 1)
	buf := make([]float32, 4096*channels)
	out := make([][]float32, channels)
	pending := 0
	empty := 0

	for {
		n, err := src.ReadSamples(buf[pending:])
		pending += n

		frames := pending / channels
		for f := range frames {
			for ch := range channels {
				out[ch] = append(out[ch], buf[f*channels+ch])
			}
		}

		rest := copy(buf, buf[frames*channels:pending])
		pending = rest

		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return out, fmt.Errorf("stream: read samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}
}
