//go:build !linux

package align

import "os"

// AllocMmap falls back to the heap allocator at page alignment on platforms
// without an anonymous-mapping path.
func AllocMmap(size int) (*Buffer, error) {
	return Alloc(os.Getpagesize(), size)
}

func munmap(m []byte) error {
	return nil
}
