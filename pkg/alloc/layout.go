package alloc

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

var ErrLayout = errors.New("invalid layout")

// Layout is the size and alignment of a block of memory.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// ArrayLayout computes the layout of n contiguous elements of the given size
// and alignment. elemSize is the element stride, as reported by
// unsafe.Sizeof, so no padding is added between elements.
func ArrayLayout(elemSize, elemAlign uintptr, n int) (Layout, error) {
	if n < 0 {
		return Layout{}, fmt.Errorf("%w: negative length %d", ErrLayout, n)
	}
	if elemAlign == 0 || elemAlign&(elemAlign-1) != 0 {
		return Layout{}, fmt.Errorf("%w: alignment %d is not a power of two", ErrLayout, elemAlign)
	}
	hi, lo := bits.Mul64(uint64(elemSize), uint64(n))
	// rounding the size up to the alignment must not overflow an int
	if hi != 0 || lo > uint64(math.MaxInt)-uint64(elemAlign-1) {
		return Layout{}, fmt.Errorf("%w: %d elements of %d bytes overflows", ErrLayout, n, elemSize)
	}
	return Layout{Size: uintptr(lo), Align: elemAlign}, nil
}

// LayoutFor returns the layout of n elements of type T.
func LayoutFor[T any](n int) (Layout, error) {
	var zero T
	return ArrayLayout(unsafe.Sizeof(zero), unsafe.Alignof(zero), n)
}

// Aligned reports whether b starts on a multiple of l.Align.
func (l Layout) Aligned(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))&(l.Align-1) == 0
}
