package align

import "sync"

// Pool recycles aligned buffers to avoid re-allocating transform scratch on
// every symbol. All buffers handed out by one pool share the same alignment.
//
// Pool is safe for concurrent use. The buffers themselves remain
// single-owner: a buffer must not be used after it is put back.
type Pool struct {
	alignment int
	pool      sync.Pool
}

// NewPool creates a pool producing buffers aligned to the given boundary.
func NewPool(alignment int) (*Pool, error) {
	if err := checkAlignment(alignment); err != nil {
		return nil, err
	}
	return &Pool{alignment: alignment}, nil
}

// Alignment returns the pool's buffer alignment in bytes.
func (p *Pool) Alignment() int {
	return p.alignment
}

// Get returns an aligned buffer of size bytes, reusing a pooled buffer when
// its capacity suffices. Reused memory is not cleared.
func (p *Pool) Get(size int) (*Buffer, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}

	if v := p.pool.Get(); v != nil {
		buf := v.(*Buffer)
		if cap(buf.full) >= size {
			buf.data = buf.full[:size]
			buf.released = false
			return buf, nil
		}
		// Too small for this request; drop it and let the GC take it.
	}

	return Alloc(p.alignment, size)
}

// Put returns a buffer to the pool for reuse. Released and mmap-backed
// buffers are not pooled; the latter are unmapped immediately.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.released {
		return
	}
	if b.mmap != nil {
		_ = b.Release()
		return
	}
	p.pool.Put(b)
}
