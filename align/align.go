// Package align provides aligned memory buffers for SIMD-friendly transform
// backends.
//
// Vectorized FFT kernels require naturally aligned input to use wide loads
// and stores without penalty. This package allocates byte regions whose start
// address is a multiple of a caller-chosen power-of-two boundary and exposes
// them as byte or complex64 sample views.
//
// Buffers follow an explicit allocate/use/release discipline, but releasing
// is safe: the backing memory is garbage collected, a second Release is
// reported as an error instead of corrupting the allocator, and any access
// after Release panics on the nil view rather than touching freed memory.
package align

import (
	"errors"
	"unsafe"
)

// DefaultAlignment is the boundary required by AVX-512 transform kernels.
// It also matches the cache line size of current x86 and ARM server cores.
const DefaultAlignment = 64

// Errors returned by allocation functions.
var (
	ErrInvalidAlignment = errors.New("align: alignment must be a power of two and a multiple of the pointer size")
	ErrInvalidSize      = errors.New("align: size must be >= 0")
	ErrReleased         = errors.New("align: buffer already released")
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// Buffer is an exclusively owned, aligned memory region.
//
// A Buffer is not safe for concurrent use; callers that share one across
// goroutines must synchronize externally.
type Buffer struct {
	data []byte // aligned view, len == requested size
	full []byte // aligned region at full capacity
	mmap []byte // original mapping for mmap-backed buffers, nil otherwise

	released bool
}

// Alloc returns a buffer of size bytes whose address is a multiple of
// alignment. The alignment must be a power of two and a multiple of the
// platform pointer size. The region content is not zeroed by contract,
// although Go's allocator currently hands out zeroed memory.
func Alloc(alignment, size int) (*Buffer, error) {
	if err := checkAlignment(alignment); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, ErrInvalidSize
	}

	// Over-allocate and re-slice at the first aligned offset. The backing
	// array stays reachable through the sub-slice, so the GC keeps the whole
	// region alive for as long as the buffer is.
	raw := make([]byte, size+alignment)
	offset := alignOffset(raw, alignment)
	full := raw[offset : offset+size : offset+size]

	return &Buffer{data: full, full: full}, nil
}

// AllocComplex64 returns an aligned []complex64 of n samples together with
// the owning buffer. Releasing the buffer invalidates the slice.
func AllocComplex64(alignment, n int) ([]complex64, *Buffer, error) {
	if n < 0 {
		return nil, nil, ErrInvalidSize
	}
	buf, err := Alloc(alignment, n*int(unsafe.Sizeof(complex64(0))))
	if err != nil {
		return nil, nil, err
	}
	return buf.Complex64(), buf, nil
}

// Bytes returns the aligned byte view. It is nil after Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Complex64 reinterprets the buffer as complex float32 samples. Trailing
// bytes that do not fill a whole sample are not included in the view.
func (b *Buffer) Complex64() []complex64 {
	n := len(b.data) / int(unsafe.Sizeof(complex64(0)))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*complex64)(unsafe.Pointer(&b.data[0])), n)
}

// Release returns the buffer to the system. Exactly one Release per buffer
// is allowed; a second call returns ErrReleased. Views obtained before the
// call must not be used afterwards.
func (b *Buffer) Release() error {
	if b.released {
		return ErrReleased
	}
	b.released = true

	if b.mmap != nil {
		m := b.mmap
		b.data, b.full, b.mmap = nil, nil, nil
		return munmap(m)
	}

	b.data, b.full = nil, nil
	return nil
}

func checkAlignment(alignment int) error {
	if alignment < ptrSize || alignment%ptrSize != 0 {
		return ErrInvalidAlignment
	}
	if alignment&(alignment-1) != 0 {
		return ErrInvalidAlignment
	}
	return nil
}

// alignOffset returns how many bytes into b the first alignment-multiple
// address lies.
func alignOffset(b []byte, alignment int) int {
	if len(b) == 0 {
		return 0
	}
	mis := int(uintptr(unsafe.Pointer(&b[0])) & uintptr(alignment-1))
	if mis == 0 {
		return 0
	}
	return alignment - mis
}
