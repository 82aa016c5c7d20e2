package alloc

import (
	"fmt"
	"sync"
	"unsafe"
)

const DefaultChunkSize = 16 * 1024

type PoolOptions struct {
	ChunkSize int // size of pooled chunks; larger requests bypass the pool
}

// Pool recycles fixed-size chunks through a sync.Pool. Requests larger than
// a chunk are served by make and left to the collector on Free.
type Pool struct {
	size   int
	chunks sync.Pool
}

func NewPool(opts PoolOptions) *Pool {
	size := opts.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	p := &Pool{size: size}
	p.chunks.New = func() any {
		b := make([]byte, size)
		return &b[0]
	}
	return p
}

func (p *Pool) ChunkSize() int { return p.size }

func (p *Pool) Allocate(l Layout) ([]byte, error) {
	if l.Size == 0 {
		return nil, nil
	}
	if l.Size > uintptr(p.size) {
		b := make([]byte, l.Size)
		if !l.Aligned(b) {
			return nil, fmt.Errorf("%w: %d byte block for align %d", ErrMisaligned, l.Size, l.Align)
		}
		return b, nil
	}
	ptr := p.chunks.Get().(*byte)
	b := unsafe.Slice(ptr, p.size)[:l.Size]
	if !l.Aligned(b) {
		p.chunks.Put(ptr)
		return nil, fmt.Errorf("%w: pooled chunk for align %d", ErrMisaligned, l.Align)
	}
	// chunks come back dirty
	clear(b)
	return b, nil
}

func (p *Pool) Free(b []byte, l Layout) error {
	if l.Size == 0 || l.Size > uintptr(p.size) {
		return nil
	}
	p.chunks.Put(unsafe.SliceData(b))
	return nil
}
