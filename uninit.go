package dynarray

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"

	"github.com/rawbytedev/dynarray/internal/common"
	"github.com/rawbytedev/dynarray/pkg/alloc"
	"go.uber.org/zap"
)

// Uninit is an allocated block whose slots are not yet guaranteed to hold
// valid values. Write every slot, then call AssumeInit. Releasing an Uninit
// frees the block without dropping anything.
type Uninit[T any] struct {
	data    []T
	layout  alloc.Layout
	alloc   alloc.Allocator
	written []bool // dynarray_debug builds only
}

// NewUninit allocates n slots of T on the Go heap. It panics with a
// *ContractError wrapping ErrLayout if n is negative or n elements of T do not
// fit in an int.
func NewUninit[T any](n int) *Uninit[T] {
	return newUninit[T]("NewUninit", n, nil)
}

// NewUninitIn allocates n slots of T from a. T must be pointer-free since the
// collector does not scan allocator memory.
func NewUninitIn[T any](n int, a alloc.Allocator) *Uninit[T] {
	return newUninit[T]("NewUninitIn", n, a)
}

func newUninit[T any](op string, n int, a alloc.Allocator) *Uninit[T] {
	data, l, a := allocate[T](op, n, a)
	u := &Uninit[T]{data: data, layout: l, alloc: a}
	if debugAssertions {
		u.written = make([]bool, n)
	}
	return u
}

func allocate[T any](op string, n int, a alloc.Allocator) ([]T, alloc.Layout, alloc.Allocator) {
	l, err := alloc.LayoutFor[T](n)
	if err != nil {
		fail(op, err)
	}
	if a == nil {
		return make([]T, n), l, nil
	}
	if t := reflect.TypeFor[T](); !common.PointerFree(t) {
		fail(op, fmt.Errorf("%w: %s", ErrPointerful, t))
	}
	if l.Size == 0 {
		return make([]T, n), l, nil
	}
	b, err := a.Allocate(l)
	if err != nil {
		fail(op, fmt.Errorf("%w: %w", ErrAllocation, err))
	}
	if uintptr(len(b)) < l.Size || !l.Aligned(b) {
		fail(op, fmt.Errorf("%w: allocator returned %d bytes for %d/%d", ErrAllocation, len(b), l.Size, l.Align))
	}
	lg().Debug("allocated block",
		zap.String("op", op),
		zap.Uintptr("bytes", l.Size),
		zap.Uintptr("align", l.Align))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), l, a
}

// free hands the block back to the allocator that produced it.
func free[T any](data []T, l alloc.Layout, a alloc.Allocator) {
	if a == nil || l.Size == 0 {
		return
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), l.Size)
	if err := a.Free(b, l); err != nil {
		fail("Release", fmt.Errorf("%w: %w", ErrAllocation, err))
	}
	lg().Debug("freed block", zap.Uintptr("bytes", l.Size), zap.Uintptr("align", l.Align))
}

func (u *Uninit[T]) Len() int { return len(u.data) }

// Write stores v in slot i.
func (u *Uninit[T]) Write(i int, v T) {
	u.data[i] = v
	if debugAssertions {
		u.written[i] = true
	}
}

// Slot returns a pointer to slot i for in-place initialization. The slot
// counts as written.
func (u *Uninit[T]) Slot(i int) *T {
	if debugAssertions {
		u.written[i] = true
	}
	return &u.data[i]
}

// Slots exposes every slot at once. The caller takes over the obligation to
// write all of them, so debug builds stop tracking.
func (u *Uninit[T]) Slots() []T {
	if debugAssertions {
		for i := range u.written {
			u.written[i] = true
		}
	}
	return u.data
}

// AssumeInit converts u into an initialized Array. The caller must have
// written every slot; this is not checked unless built with dynarray_debug.
// u is empty afterwards.
func (u *Uninit[T]) AssumeInit() *Array[T] {
	if debugAssertions {
		if i := slices.Index(u.written, false); i >= 0 {
			fail("AssumeInit", fmt.Errorf("%w: slot %d of %d", ErrUninitialized, i, len(u.data)))
		}
	}
	a := &Array[T]{data: u.data, layout: u.layout, alloc: u.alloc}
	*u = Uninit[T]{}
	return a
}

// Release frees the block. Values already written are not dropped.
func (u *Uninit[T]) Release() {
	data, l, a := u.data, u.layout, u.alloc
	*u = Uninit[T]{}
	clear(data)
	free(data, l, a)
}
