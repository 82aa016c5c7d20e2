package dynarray

import (
	"iter"

	"github.com/rawbytedev/dynarray/pkg/alloc"
)

// IntoIter hands out the elements of a consumed array by value. Yielded
// elements belong to the caller; the iterator owns the rest until it is
// exhausted or closed.
type IntoIter[T any] struct {
	data   []T
	layout alloc.Layout
	alloc  alloc.Allocator
	idx    int
}

// IntoIter moves the elements of a into an iterator. a is empty afterwards.
// A nil array yields an exhausted iterator.
func (a *Array[T]) IntoIter() *IntoIter[T] {
	if a == nil {
		return &IntoIter[T]{}
	}
	data, l, al := a.take()
	return &IntoIter[T]{data: data, layout: l, alloc: al}
}

// Next returns the element at the cursor and advances. The slot is cleared
// and never dropped by the iterator.
func (it *IntoIter[T]) Next() (T, bool) {
	var zero T
	if it.idx >= len(it.data) {
		return zero, false
	}
	v := it.data[it.idx]
	it.data[it.idx] = zero
	it.idx++
	return v, true
}

// Len is the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int { return len(it.data) - it.idx }

// Close drops every element not yet yielded, in index order, and frees the
// block. Closing twice is harmless.
func (it *IntoIter[T]) Close() {
	rest := it.data[it.idx:]
	dropAll(rest)
	clear(rest)
	free(it.data, it.layout, it.alloc)
	*it = IntoIter[T]{}
}

// All yields the remaining elements and closes the iterator when the loop
// ends, including on break.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Values consumes a when ranged over. Elements left behind by an early break
// are dropped.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		a.IntoIter().All()(yield)
	}
}
