package fft

import "github.com/sorokin/clunk/internal/fftypes"

// Complex is a type alias for the complex number constraint.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex

// complexFromFloat64 creates a complex number of type T from float64 components.
func complexFromFloat64[T Complex](re, im float64) T {
	return T(complex(re, im))
}

// Parts splits v into float64 real and imaginary components.
func Parts[T Complex](v T) (float64, float64) {
	c := complex128(v)

	return real(c), imag(c)
}

// ConjugateOf returns the complex conjugate of val.
func ConjugateOf[T Complex](val T) T {
	re, im := Parts(val)

	return complexFromFloat64[T](re, -im)
}
