// Package ofdm converts between frequency-domain OFDM symbols and
// time-domain sample blocks.
//
// The package is split into two layers:
//
//   - [Backend] is the flat, FFI-shaped transform surface (inverse transform
//     with cyclic prefix insertion, forward transform with prefix skip) with
//     integer status codes. [FFTBackend] implements it in software on top of
//     algo-fft; [NullBackend] is the conforming no-op used before a real
//     backend is wired in, and a vendor-accelerated implementation can be
//     substituted without touching callers.
//   - [Modulator] and [Demodulator] are the symbol-level layer: per-symbol
//     cyclic prefix schedules, power scaling, slot assembly, and carrier
//     frequency offset handling, as specified by TS 38.211.
//
// Transforms are unnormalized in both directions, following the FFTW/vendor
// convention; the inverse call's scale factor carries whatever normalization
// the caller wants (1/N for a strict round trip, 1/sqrt(N) for symmetric
// power conventions).
package ofdm

import (
	"errors"

	"github.com/cwbudde/algo-ofdm/frame"
)

// Errors returned by the symbol-level layer.
var (
	ErrInvalidFFTSize = errors.New("ofdm: FFT size must be a power of two >= 2")
	ErrLengthMismatch = errors.New("ofdm: sample count mismatch")
)

// Reference cyclic prefix lengths at FFT size 2048 (TS 38.211 5.3.1). Other
// sizes scale proportionally.
const (
	refFFTSize    = 2048
	refCPNormal   = 144
	refCPLong     = 160
	refCPExtended = 512
)

// CPLengths returns the cyclic prefix length of every symbol in one slot.
//
// Under the normal prefix, symbols 0 and 7 carry the longer prefix
// (160/2048 of the FFT size) and the rest 144/2048; the extended prefix is a
// uniform 512/2048 across its 12 symbols.
func CPLengths(fftSize int, cp frame.CyclicPrefix) []int {
	if cp == frame.CPExtended {
		ext := fftSize * refCPExtended / refFFTSize
		lengths := make([]int, cp.SymbolsPerSlot())
		for i := range lengths {
			lengths[i] = ext
		}
		return lengths
	}

	base := fftSize * refCPNormal / refFFTSize
	long := fftSize * refCPLong / refFFTSize

	lengths := make([]int, cp.SymbolsPerSlot())
	for i := range lengths {
		lengths[i] = base
	}
	lengths[0] = long
	lengths[7] = long
	return lengths
}

// SymbolTiming locates one OFDM symbol inside a slot, in samples.
type SymbolTiming struct {
	Start    int // first sample of the prefix
	Duration int // prefix plus FFT block
	CPLength int
}

// SlotTiming returns the per-symbol timing table for one slot.
func SlotTiming(fftSize int, cp frame.CyclicPrefix) []SymbolTiming {
	cpLengths := CPLengths(fftSize, cp)
	timings := make([]SymbolTiming, len(cpLengths))

	start := 0
	for i, cpLen := range cpLengths {
		timings[i] = SymbolTiming{
			Start:    start,
			Duration: fftSize + cpLen,
			CPLength: cpLen,
		}
		start += timings[i].Duration
	}
	return timings
}

// SlotLength returns the total sample count of one slot.
func SlotLength(fftSize int, cp frame.CyclicPrefix) int {
	n := 0
	for _, cpLen := range CPLengths(fftSize, cp) {
		n += fftSize + cpLen
	}
	return n
}

func isPowerOf2(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
