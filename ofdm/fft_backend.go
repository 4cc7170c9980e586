package ofdm

import (
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// FFTBackend implements Backend in software using algo-fft complex64 plans.
//
// Plans are created on first use per transform size and cached for the
// lifetime of the backend, so repeated symbol processing pays plan setup
// once. Power-of-two sizes only; other sizes are rejected with
// StatusInvalidParameter.
type FFTBackend struct {
	mu    sync.RWMutex
	plans map[int]*algofft.Plan[complex64]
}

// NewFFTBackend creates an empty software transform backend.
func NewFFTBackend() *FFTBackend {
	return &FFTBackend{plans: make(map[int]*algofft.Plan[complex64])}
}

// scratchBuf holds pooled scratch memory for the inverse transform output
// before prefix assembly.
type scratchBuf struct {
	data []complex64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (*scratchBuf, []complex64) {
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < n {
		buf.data = make([]complex64, n)
	} else {
		buf.data = buf.data[:n]
	}
	return buf, buf.data
}

func (b *FFTBackend) plan(n int) (*algofft.Plan[complex64], error) {
	b.mu.RLock()
	p, ok := b.plans[n]
	b.mu.RUnlock()
	if ok {
		return p, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.plans[n]; ok {
		return p, nil
	}

	p, err := algofft.NewPlanT[complex64](n)
	if err != nil {
		return nil, err
	}
	b.plans[n] = p
	return p, nil
}

// InverseTransform computes timeOut = CP + scale * IFFT(freqIn), where the
// prefix is the last cpLen samples of the scaled block. The inverse is
// unnormalized, so scale=1/N reproduces the input under a following forward
// transform.
func (b *FFTBackend) InverseTransform(freqIn, timeOut []complex64, size, cpLen uint32, scale float32) int {
	n := int(size)
	cp := int(cpLen)
	if !isPowerOf2(n) || cp < 0 {
		return StatusInvalidParameter
	}
	if len(freqIn) < n || len(timeOut) < n+cp || cp > n {
		return StatusInvalidParameter
	}

	p, err := b.plan(n)
	if err != nil {
		return StatusInvalidParameter
	}

	buf, scratch := getScratch(n)
	defer scratchPool.Put(buf)

	if err := p.Inverse(scratch, freqIn[:n]); err != nil {
		return StatusProcessingFailed
	}

	// algo-fft normalizes the inverse by 1/N; undo that to present the
	// unnormalized vendor convention, then apply the caller's scale.
	s := complex(scale*float32(n), 0)
	block := timeOut[cp : cp+n]
	for i, v := range scratch {
		block[i] = v * s
	}
	copy(timeOut[:cp], timeOut[n:n+cp])

	return StatusOK
}

// ForwardTransform computes freqOut = FFT(timeIn[cpOffset:cpOffset+size]),
// unnormalized.
func (b *FFTBackend) ForwardTransform(timeIn, freqOut []complex64, size, cpOffset uint32) int {
	n := int(size)
	off := int(cpOffset)
	if !isPowerOf2(n) || off < 0 {
		return StatusInvalidParameter
	}
	if len(timeIn) < n+off || len(freqOut) < n {
		return StatusInvalidParameter
	}

	p, err := b.plan(n)
	if err != nil {
		return StatusInvalidParameter
	}

	if err := p.Forward(freqOut[:n], timeIn[off:off+n]); err != nil {
		return StatusProcessingFailed
	}
	return StatusOK
}
