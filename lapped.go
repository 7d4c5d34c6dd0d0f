package clunk

// Analyzer turns a stream of hops into MDCT frames with 50% overlap. Each
// call to Analyze windows the previous hop followed by the new one and
// returns N/2 coefficients.
type Analyzer[F Float, C Complex] struct {
	mdct *MDCT[F, C]
	prev []F
}

// Synthesizer inverts MDCT frames and overlap-adds them. The samples it
// returns for frame k reconstruct the hop passed to Analyze for frame k-1.
type Synthesizer[F Float, C Complex] struct {
	mdct    *MDCT[F, C]
	overlap []F
	out     []F
}

// NewAnalyzer creates an Analyzer for frames of n samples (hops of n/2).
func NewAnalyzer[F Float, C Complex](n int, window WindowFunc, opts ...MDCTOption) (*Analyzer[F, C], error) {
	t, err := NewMDCT[F, C](n, window, opts...)
	if err != nil {
		return nil, err
	}

	return &Analyzer[F, C]{
		mdct: t,
		prev: make([]F, n/2),
	}, nil
}

// Hop returns the number of new samples consumed per frame.
func (a *Analyzer[F, C]) Hop() int {
	return len(a.prev)
}

// Analyze consumes the next hop and returns its frame's coefficients. A hop
// shorter than Hop() is zero-padded. The returned slice is owned by the
// Analyzer and overwritten by the next call.
func (a *Analyzer[F, C]) Analyze(hop []F) []F {
	half := len(a.prev)
	data := a.mdct.Data()

	copy(data, a.prev)
	n := copy(data[half:], hop)
	clear(data[half+n:])
	copy(a.prev, data[half:])

	a.mdct.Apply()
	a.mdct.Forward()

	return a.mdct.Coefficients()
}

// Reset forgets the previous hop.
func (a *Analyzer[F, C]) Reset() {
	clear(a.prev)
}

// Close releases the underlying MDCT.
func (a *Analyzer[F, C]) Close() {
	a.mdct.Close()
}

// NewSynthesizer creates a Synthesizer for frames of n samples.
func NewSynthesizer[F Float, C Complex](n int, window WindowFunc, opts ...MDCTOption) (*Synthesizer[F, C], error) {
	t, err := NewMDCT[F, C](n, window, opts...)
	if err != nil {
		return nil, err
	}

	return &Synthesizer[F, C]{
		mdct:    t,
		overlap: make([]F, n/2),
		out:     make([]F, n/2),
	}, nil
}

// Hop returns the number of samples produced per frame.
func (s *Synthesizer[F, C]) Hop() int {
	return len(s.out)
}

// Synthesize inverts one frame of N/2 coefficients and returns N/2
// reconstructed samples, one hop behind the Analyzer. The returned slice is
// owned by the Synthesizer and overwritten by the next call.
func (s *Synthesizer[F, C]) Synthesize(coeffs []F) []F {
	half := len(s.out)
	data := s.mdct.Data()

	n := copy(data[:half], coeffs)
	clear(data[n:half])

	s.mdct.Inverse()
	s.mdct.Apply()

	for i := range s.out {
		s.out[i] = s.overlap[i] + data[i]
	}

	copy(s.overlap, data[half:])

	return s.out
}

// Reset drops the pending overlap.
func (s *Synthesizer[F, C]) Reset() {
	clear(s.overlap)
}

// Close releases the underlying MDCT.
func (s *Synthesizer[F, C]) Close() {
	s.mdct.Close()
}
