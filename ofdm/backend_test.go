package ofdm

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func TestNullBackendLeavesOutputUntouched(t *testing.T) {
	const (
		size  = 1024
		cpLen = 144
	)

	freq := make([]complex64, size)
	freq[1] = 1

	timeOut := make([]complex64, size+cpLen)
	sentinel := complex64(complex(42, -42))
	for i := range timeOut {
		timeOut[i] = sentinel
	}

	var b NullBackend
	if status := b.InverseTransform(freq, timeOut, size, cpLen, 1.0); status != StatusOK {
		t.Fatalf("InverseTransform status = %d, want %d", status, StatusOK)
	}
	for i, v := range timeOut {
		if v != sentinel {
			t.Fatalf("timeOut[%d] modified to %v", i, v)
		}
	}

	freqOut := make([]complex64, size)
	if status := b.ForwardTransform(timeOut, freqOut, size, cpLen); status != StatusOK {
		t.Fatalf("ForwardTransform status = %d, want %d", status, StatusOK)
	}
}

func TestNullBackendRejectsShortBuffers(t *testing.T) {
	var b NullBackend
	if status := b.InverseTransform(make([]complex64, 64), make([]complex64, 64), 64, 16, 1.0); status != StatusInvalidParameter {
		t.Errorf("short timeOut: status = %d, want %d", status, StatusInvalidParameter)
	}
	if status := b.ForwardTransform(make([]complex64, 64), make([]complex64, 32), 64, 0); status != StatusInvalidParameter {
		t.Errorf("short freqOut: status = %d, want %d", status, StatusInvalidParameter)
	}
}

func TestFFTBackendImpulse(t *testing.T) {
	const size = 256

	b := NewFFTBackend()

	// A unit impulse at DC transforms to a constant time-domain level.
	freq := make([]complex64, size)
	freq[0] = 1

	timeOut := make([]complex64, size)
	if status := b.InverseTransform(freq, timeOut, size, 0, 1.0/size); status != StatusOK {
		t.Fatalf("InverseTransform status = %d", status)
	}

	want := 1.0 / size
	for i, v := range timeOut {
		if math.Abs(float64(real(v))-want) > 1e-6 || math.Abs(float64(imag(v))) > 1e-6 {
			t.Fatalf("timeOut[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestFFTBackendCyclicPrefix(t *testing.T) {
	const (
		size  = 512
		cpLen = 36
	)

	b := NewFFTBackend()
	rng := rand.New(rand.NewSource(1))

	freq := make([]complex64, size)
	for i := range freq {
		freq[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
	}

	timeOut := make([]complex64, size+cpLen)
	if status := b.InverseTransform(freq, timeOut, size, cpLen, 1.0/size); status != StatusOK {
		t.Fatalf("InverseTransform status = %d", status)
	}

	// The prefix must equal the tail of the transformed block.
	for i := 0; i < cpLen; i++ {
		if timeOut[i] != timeOut[size+i] {
			t.Fatalf("prefix[%d] = %v, tail = %v", i, timeOut[i], timeOut[size+i])
		}
	}
}

func TestFFTBackendRoundTrip(t *testing.T) {
	sizes := []uint32{64, 256, 1024, 2048}

	b := NewFFTBackend()
	rng := rand.New(rand.NewSource(2))

	for _, size := range sizes {
		n := int(size)
		cpLen := uint32(n * 144 / 2048)

		freq := make([]complex64, n)
		for i := range freq {
			freq[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
		}

		timeOut := make([]complex64, n+int(cpLen))
		if status := b.InverseTransform(freq, timeOut, size, cpLen, 1.0/float32(n)); status != StatusOK {
			t.Fatalf("size %d: InverseTransform status = %d", n, status)
		}

		// Forward transform over the prefix-skipped window must reproduce
		// the original coefficients.
		got := make([]complex64, n)
		if status := b.ForwardTransform(timeOut, got, size, cpLen); status != StatusOK {
			t.Fatalf("size %d: ForwardTransform status = %d", n, status)
		}

		for i := range freq {
			if d := cmplx.Abs(complex128(got[i]) - complex128(freq[i])); d > 1e-3 {
				t.Fatalf("size %d: bin %d differs by %g (got %v, want %v)", n, i, d, got[i], freq[i])
			}
		}
	}
}

func TestFFTBackendInvalidParameters(t *testing.T) {
	b := NewFFTBackend()
	buf := make([]complex64, 4096)

	tests := []struct {
		name string
		call func() int
	}{
		{"zero size inverse", func() int { return b.InverseTransform(buf, buf, 0, 0, 1) }},
		{"non power of two", func() int { return b.InverseTransform(buf, buf, 1000, 0, 1) }},
		{"short freq input", func() int { return b.InverseTransform(buf[:8], buf, 1024, 0, 1) }},
		{"short time output", func() int { return b.InverseTransform(buf, buf[:1024], 1024, 144, 1) }},
		{"prefix longer than block", func() int { return b.InverseTransform(buf, buf, 1024, 2048, 1) }},
		{"zero size forward", func() int { return b.ForwardTransform(buf, buf, 0, 0) }},
		{"short time input", func() int { return b.ForwardTransform(buf[:100], buf, 1024, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := tt.call(); status != StatusInvalidParameter {
				t.Errorf("status = %d, want %d", status, StatusInvalidParameter)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{StatusOK, nil},
		{StatusInvalidParameter, ErrInvalidParameter},
		{StatusAllocationFailed, ErrAllocationFailed},
		{StatusNotInitialized, ErrNotInitialized},
		{StatusProcessingFailed, ErrProcessingFailed},
	}

	for _, tt := range tests {
		if err := StatusError(tt.status); !errors.Is(err, tt.want) {
			t.Errorf("StatusError(%d) = %v, want %v", tt.status, err, tt.want)
		}
	}

	// Backend-specific codes pass through without being swallowed.
	if err := StatusError(-99); err == nil {
		t.Error("StatusError(-99) = nil, want opaque error")
	}
}
