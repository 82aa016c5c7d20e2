// Package dynarray implements Array, a fixed-length, exclusively-owned
// contiguous block of elements with explicit two-phase construction.
//
// An Array is built either by allocating an Uninit, writing every slot and
// calling AssumeInit, or through one of the constructors that do that for
// you (New, FromProducer, FromSeq, FromSlice, FromOwned). Ownership ends in
// exactly one of three ways:
//
//   - Release drops every element in index order and frees the block;
//   - IntoIter / Values hand the elements out one by one;
//   - IntoParts / IntoRawParts hand the block itself to the caller.
//
// Broken preconditions (invalid layouts, lying producers, failed allocators)
// are not errors: they panic with a *ContractError.
package dynarray

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/rawbytedev/dynarray/pkg/alloc"
)

// Array owns a contiguous block of Len() live elements. The zero value is an
// empty array. An Array must not be copied by value while it owns a block.
type Array[T any] struct {
	data   []T
	layout alloc.Layout
	alloc  alloc.Allocator
}

// New returns an array of n default values: the zero value, or Default() when
// T implements Defaulter[T].
func New[T any](n int) *Array[T] {
	u := newUninit[T]("New", n, nil)
	fillDefault(u.Slots())
	return u.AssumeInit()
}

// ExactProducer yields exactly Len() more values.
type ExactProducer[T any] interface {
	Len() int
	Next() (T, bool)
}

// FromProducer fills a new array from p. p must yield exactly p.Len() values;
// a shorter or longer producer panics with ErrProducerLength after dropping
// whatever it already yielded.
func FromProducer[T any](p ExactProducer[T]) *Array[T] {
	n := p.Len()
	u := newUninit[T]("FromProducer", n, nil)
	for i := 0; i < n; i++ {
		v, ok := p.Next()
		if !ok {
			dropAll(u.data[:i])
			u.Release()
			fail("FromProducer", fmt.Errorf("%w: reported %d, yielded %d", ErrProducerLength, n, i))
		}
		u.Write(i, v)
	}
	if extra, ok := p.Next(); ok {
		dropAll(u.data)
		dropAll([]T{extra})
		u.Release()
		fail("FromProducer", fmt.Errorf("%w: reported %d, yielded more", ErrProducerLength, n))
	}
	return u.AssumeInit()
}

type pullProducer[T any] struct {
	n    int
	next func() (T, bool)
}

func (p *pullProducer[T]) Len() int { return p.n }

func (p *pullProducer[T]) Next() (T, bool) {
	v, ok := p.next()
	if ok {
		p.n--
	}
	return v, ok
}

// FromSeq collects seq, which must yield exactly n values.
func FromSeq[T any](n int, seq iter.Seq[T]) *Array[T] {
	next, stop := iter.Pull(seq)
	defer stop()
	return FromProducer[T](&pullProducer[T]{n: n, next: next})
}

// FromSlice returns a new array holding a clone of every element of src.
func FromSlice[T any](src []T) *Array[T] {
	u := newUninit[T]("FromSlice", len(src), nil)
	cloneAll(u.Slots(), src)
	return u.AssumeInit()
}

// FromOwned adopts src as the array's block without copying. The caller gives
// up src: no other slice may touch its backing array afterwards. Fixed-size
// arrays are adopted through arr[:].
func FromOwned[T any](src []T) *Array[T] {
	l, err := alloc.LayoutFor[T](len(src))
	if err != nil {
		fail("FromOwned", err)
	}
	return &Array[T]{data: src[:len(src):len(src)], layout: l}
}

// RawParts is a decomposed array: the block, its length and the allocator it
// came from (nil for the Go heap).
type RawParts[T any] struct {
	Ptr   *T
	Len   int
	Alloc alloc.Allocator
}

// FromParts rebuilds a heap-backed array from IntoParts output. ptr and n must
// describe a block of n initialized elements no one else owns; nothing is
// checked.
func FromParts[T any](ptr *T, n int) *Array[T] {
	return FromRawParts(RawParts[T]{Ptr: ptr, Len: n})
}

// FromRawParts is FromParts for arrays that may be allocator-backed.
func FromRawParts[T any](p RawParts[T]) *Array[T] {
	l, err := alloc.LayoutFor[T](p.Len)
	if err != nil {
		fail("FromRawParts", err)
	}
	return &Array[T]{data: unsafe.Slice(p.Ptr, p.Len), layout: l, alloc: p.Alloc}
}

// IntoParts gives up ownership of the block without dropping anything. The
// array is empty afterwards. Allocator-backed arrays must use IntoRawParts so
// the allocator is not forgotten.
func (a *Array[T]) IntoParts() (*T, int) {
	if debugAssertions && a != nil && a.alloc != nil {
		fail("IntoParts", fmt.Errorf("%w: allocator-backed array decomposed without its allocator", ErrAllocation))
	}
	p := a.IntoRawParts()
	return p.Ptr, p.Len
}

// IntoRawParts gives up ownership of the block together with its allocator.
// The array is empty afterwards.
func (a *Array[T]) IntoRawParts() RawParts[T] {
	data, _, al := a.take()
	return RawParts[T]{Ptr: unsafe.SliceData(data), Len: len(data), Alloc: al}
}

func (a *Array[T]) take() ([]T, alloc.Layout, alloc.Allocator) {
	if a == nil {
		return nil, alloc.Layout{}, nil
	}
	data, l, al := a.data, a.layout, a.alloc
	*a = Array[T]{}
	return data, l, al
}

// Len is the number of elements. A nil array has none.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.data)
}

// IsEmpty reports whether Len is zero.
func (a *Array[T]) IsEmpty() bool { return a.Len() == 0 }

// Slice returns a view of the elements. The view is invalid once the array is
// released, iterated or decomposed.
func (a *Array[T]) Slice() []T {
	if a == nil {
		return nil
	}
	return a.data
}

// At returns element i. It panics if i is out of range.
func (a *Array[T]) At(i int) T { return a.data[i] }

// Release drops every element in ascending index order, then frees the block.
// The array is empty afterwards, so a second Release does nothing, and so
// does releasing a nil array.
func (a *Array[T]) Release() {
	if a == nil {
		return
	}
	data, l, al := a.take()
	dropAll(data)
	clear(data)
	free(data, l, al)
}

// Clone returns an independent heap-backed copy of a.
func (a *Array[T]) Clone() *Array[T] {
	return FromSlice(a.Slice())
}

// String formats the array as Array[n] followed by its elements.
func (a *Array[T]) String() string {
	return fmt.Sprintf("Array[%d]%v", a.Len(), a.Slice())
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b *Array[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}
