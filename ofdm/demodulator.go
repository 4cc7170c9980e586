package ofdm

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ofdm/frame"
)

// Demodulator converts time-domain sample blocks back into frequency-domain
// symbols (the uplink direction): cyclic prefix removal, forward transform,
// 1/sqrt(N) normalization.
type Demodulator struct {
	fftSize   int
	cp        frame.CyclicPrefix
	scs       frame.SCS
	backend   Backend
	cpLengths []int
}

// NewDemodulator creates a demodulator for the given configuration. The
// BasebandGainDB field is ignored; demodulation always normalizes by
// 1/sqrt(N).
func NewDemodulator(cfg Config) (*Demodulator, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Demodulator{
		fftSize:   cfg.FFTSize,
		cp:        cfg.CyclicPrefix,
		scs:       cfg.SCS,
		backend:   cfg.Backend,
		cpLengths: CPLengths(cfg.FFTSize, cfg.CyclicPrefix),
	}, nil
}

// FFTSize returns the transform length.
func (d *Demodulator) FFTSize() int { return d.fftSize }

// SampleRate returns the baseband sample rate in Hz.
func (d *Demodulator) SampleRate() float64 { return frame.SampleRate(d.fftSize, d.scs) }

// SymbolLength returns the expected input length for the symbol at the
// given slot position, prefix included.
func (d *Demodulator) SymbolLength(symbol int) int {
	return d.fftSize + d.cpLengths[mod(symbol, len(d.cpLengths))]
}

// Demodulate converts one prefixed time-domain symbol into fftSize
// frequency-domain coefficients. The input length must match the symbol's
// slot position exactly.
func (d *Demodulator) Demodulate(timeSamples []complex64, symbol int) ([]complex64, error) {
	cpLen := d.cpLengths[mod(symbol, len(d.cpLengths))]
	if len(timeSamples) != d.fftSize+cpLen {
		return nil, fmt.Errorf("%w: got %d time samples, want %d", ErrLengthMismatch, len(timeSamples), d.fftSize+cpLen)
	}

	out := make([]complex64, d.fftSize)
	status := d.backend.ForwardTransform(timeSamples, out, uint32(d.fftSize), uint32(cpLen))
	if err := StatusError(status); err != nil {
		return nil, fmt.Errorf("ofdm: forward transform of symbol %d: %w", symbol, err)
	}

	scale := complex(float32(1/math.Sqrt(float64(d.fftSize))), 0)
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

// EstimateCFO estimates the carrier frequency offset in Hz from the phase
// of the cyclic prefix correlation of one prefixed symbol. The returned
// value is the offset to pass to [CompensateCFO] to undo the rotation.
// Estimates are unambiguous up to half the subcarrier spacing.
func (d *Demodulator) EstimateCFO(timeSamples []complex64) float64 {
	cpLen := d.cpLengths[0]
	if len(timeSamples) < d.fftSize+cpLen {
		return 0
	}

	var corr complex128
	for i := 0; i < cpLen; i++ {
		a := complex128(timeSamples[i])
		b := complex128(timeSamples[i+d.fftSize])
		corr += a * cmplx.Conj(b)
	}
	if corr == 0 {
		return 0
	}

	phase := math.Atan2(imag(corr), real(corr))
	return phase * d.SampleRate() / (2 * math.Pi * float64(d.fftSize))
}

// EstimateTimingOffset locates the start of a prefixed symbol within a
// longer capture by sliding the cyclic prefix correlation window. It
// returns the best start offset and the normalized correlation metric at
// that offset (1.0 for a noiseless prefix).
func (d *Demodulator) EstimateTimingOffset(samples []complex64) (offset int, metric float64) {
	cpLen := d.cpLengths[0]
	symbolLen := d.fftSize + cpLen
	if len(samples) < symbolLen {
		return 0, 0
	}

	best := -1.0
	for start := 0; start+symbolLen <= len(samples); start++ {
		var corr complex128
		var power float64
		for i := 0; i < cpLen; i++ {
			a := complex128(samples[start+i])
			b := complex128(samples[start+i+d.fftSize])
			corr += a * cmplx.Conj(b)
			power += real(a)*real(a) + imag(a)*imag(a) +
				real(b)*real(b) + imag(b)*imag(b)
		}
		if power == 0 {
			continue
		}
		m := cmplx.Abs(corr) / (power / 2)
		if m > best {
			best = m
			offset = start
		}
	}
	if best < 0 {
		return 0, 0
	}
	return offset, best
}
