// Package memory provides heap buffers whose base address is aligned to a
// vector register width.
package memory

import (
	"fmt"
	"unsafe"

	"github.com/sorokin/clunk/internal/fftypes"
)

// DefaultAlignment covers the widest register of any lane backend (AVX2).
const DefaultAlignment = 32

// Buffer owns an aligned block of n elements. The typed view and the byte
// backing that keeps it alive are held together; Release drops both.
//
// A Buffer must not be copied after first use.
type Buffer[F fftypes.Float] struct {
	data    []F
	backing []byte
	align   int
}

// Alloc returns a zeroed buffer of n elements whose first element sits on an
// align-byte boundary. align must be a power of two that is at least the
// element size; anything else is a programming error and panics.
func Alloc[F fftypes.Float](n, align int) *Buffer[F] {
	var zero F

	elem := int(unsafe.Sizeof(zero))
	if align < elem || align&(align-1) != 0 {
		panic(fmt.Sprintf("memory: invalid alignment %d for %d-byte elements", align, elem))
	}

	if n < 0 {
		panic(fmt.Sprintf("memory: negative length %d", n))
	}

	if n == 0 {
		return &Buffer[F]{data: []F{}, align: align}
	}

	backing := make([]byte, n*elem+align-1)
	base := uintptr(unsafe.Pointer(&backing[0]))
	offset := int((uintptr(align) - base%uintptr(align)) % uintptr(align))

	data := unsafe.Slice((*F)(unsafe.Pointer(&backing[offset])), n)

	return &Buffer[F]{
		data:    data,
		backing: backing,
		align:   align,
	}
}

// Slice returns the aligned view, or nil once the buffer has been released.
func (b *Buffer[F]) Slice() []F {
	return b.data
}

// Len returns the element count, or 0 once released.
func (b *Buffer[F]) Len() int {
	return len(b.data)
}

// Alignment returns the byte alignment the buffer was allocated with.
func (b *Buffer[F]) Alignment() int {
	return b.align
}

// Released reports whether Release has been called.
func (b *Buffer[F]) Released() bool {
	return b.data == nil
}

// Release gives up the memory. Only the first call has an effect; slices
// obtained earlier from Slice must not be used afterwards.
func (b *Buffer[F]) Release() {
	b.data = nil
	b.backing = nil
}

// IsAligned reports whether the first element of s sits on an align-byte
// boundary. Empty slices are trivially aligned.
func IsAligned[F fftypes.Float](s []F, align int) bool {
	if len(s) == 0 {
		return true
	}

	return uintptr(unsafe.Pointer(&s[0]))%uintptr(align) == 0
}
