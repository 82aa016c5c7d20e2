// Package alloc provides raw memory blocks for arrays whose elements are kept
// outside the garbage-collected heap. Blocks handed out by an Allocator are
// not scanned by the collector, so they may only hold pointer-free values.
package alloc

import "errors"

var ErrMisaligned = errors.New("misaligned block")

// Allocator hands out raw blocks of memory. Allocate must return a block of
// at least l.Size bytes starting on a multiple of l.Align. Free receives the
// block (len == l.Size) together with the layout it was allocated with.
type Allocator interface {
	Allocate(l Layout) ([]byte, error)
	Free(b []byte, l Layout) error
}
