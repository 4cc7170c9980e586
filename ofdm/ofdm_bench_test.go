package ofdm

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-ofdm/frame"
)

func BenchmarkFFTBackendInverse(b *testing.B) {
	sizes := []int{256, 1024, 2048, 4096}

	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			backend := NewFFTBackend()
			rng := rand.New(rand.NewSource(1))

			freq := make([]complex64, size)
			for i := range freq {
				freq[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
			}
			cpLen := uint32(size * 144 / 2048)
			timeOut := make([]complex64, size+int(cpLen))

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				backend.InverseTransform(freq, timeOut, uint32(size), cpLen, 1.0/float32(size))
			}
		})
	}
}

func BenchmarkModulateSymbol(b *testing.B) {
	m, err := NewModulator(Config{FFTSize: 2048, SCS: frame.SCS15})
	if err != nil {
		b.Fatalf("NewModulator failed: %v", err)
	}

	rng := rand.New(rand.NewSource(2))
	freq := make([]complex64, 2048)
	for i := range freq {
		freq[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
	}
	out := make([]complex64, 2048+160)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.ModulateTo(out, freq, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDemodulateSymbol(b *testing.B) {
	cfg := Config{FFTSize: 2048, SCS: frame.SCS15}
	m, err := NewModulator(cfg)
	if err != nil {
		b.Fatalf("NewModulator failed: %v", err)
	}
	d, err := NewDemodulator(cfg)
	if err != nil {
		b.Fatalf("NewDemodulator failed: %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	freq := make([]complex64, 2048)
	for i := range freq {
		freq[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
	}
	timeSamples, err := m.Modulate(freq, 0)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Demodulate(timeSamples, 0); err != nil {
			b.Fatal(err)
		}
	}
}
