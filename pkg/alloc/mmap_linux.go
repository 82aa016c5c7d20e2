//go:build linux

package alloc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type MmapOptions struct {
	Populate bool // prefault the mapping (MAP_POPULATE)
}

// Mmap serves every block from its own anonymous private mapping. Mappings
// are page aligned, so any alignment up to the page size is satisfied.
type Mmap struct {
	opts MmapOptions
}

func NewMmap(opts MmapOptions) *Mmap {
	return &Mmap{opts: opts}
}

func (m *Mmap) Allocate(l Layout) ([]byte, error) {
	if l.Size == 0 {
		return nil, nil
	}
	if l.Align > uintptr(os.Getpagesize()) {
		return nil, fmt.Errorf("%w: align %d exceeds page size", ErrMisaligned, l.Align)
	}
	flags := unix.MAP_ANON | unix.MAP_PRIVATE
	if m.opts.Populate {
		flags |= unix.MAP_POPULATE
	}
	b, err := unix.Mmap(-1, 0, int(l.Size), unix.PROT_READ|unix.PROT_WRITE, flags)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", l.Size, err)
	}
	return b, nil
}

func (m *Mmap) Free(b []byte, l Layout) error {
	if l.Size == 0 {
		return nil
	}
	if err := unix.Munmap(b[:l.Size:l.Size]); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", l.Size, err)
	}
	return nil
}
