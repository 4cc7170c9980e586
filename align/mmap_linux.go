//go:build linux

package align

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// AllocMmap returns a page-aligned buffer of size bytes backed by an
// anonymous private mapping. Page alignment satisfies every power-of-two
// boundary up to the page size, which makes this the preferred path for
// large transform scratch areas. Release unmaps the region.
func AllocMmap(size int) (*Buffer, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Buffer{}, nil
	}

	page := os.Getpagesize()
	mapped := (size + page - 1) &^ (page - 1)

	m, err := unix.Mmap(-1, 0, mapped,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("align: mmap of %d bytes failed: %w", mapped, err)
	}

	full := m[:size:size]
	return &Buffer{data: full, full: full, mmap: m}, nil
}

func munmap(m []byte) error {
	if err := unix.Munmap(m); err != nil {
		return fmt.Errorf("align: munmap failed: %w", err)
	}
	return nil
}
