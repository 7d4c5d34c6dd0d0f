// Package clunk is the spectral transform core of a 3D audio engine.
//
// It provides a fixed-size radix-2 FFT over complex64 or complex128, a
// structure-of-arrays variant that runs the same recursion on SIMD-width
// lane groups, and an MDCT/IMDCT built on an N/4-point FFT with a cached
// analysis/synthesis window.
//
// Every engine is built for one power-of-two size. Constructors validate
// their arguments and precompute twiddle step tables, windows and scratch
// buffers; the transform methods then run without allocating and without
// returning errors. Engines are not safe for concurrent use, but separate
// instances share no mutable state.
//
// A typical MDCT round trip:
//
//	m, err := clunk.NewMDCT32(2048, clunk.SineWindow)
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	copy(m.Data(), block)
//	m.Apply()
//	m.Forward()
//	// m.Coefficients() now holds the 1024 spectral lines.
//	m.Inverse()
//	m.Apply()
//	// overlap-add m.Data() with the previous block's second half.
package clunk
