// Package measure provides power and error-vector measurements over
// complex baseband sample blocks.
//
// These are the quantities a transmit chain logs and a backend conformance
// test asserts on: average and peak power, PAPR, and EVM against a
// reference symbol.
package measure

import (
	"errors"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when reference and measured blocks differ
// in length.
var ErrLengthMismatch = errors.New("measure: sample count mismatch")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im, pw []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Stats holds power statistics of one sample block.
//
//nolint:revive
type Stats struct {
	Length   int
	Power    float64 // mean |x|^2
	Power_dB float64
	RMS      float64
	Peak     float64 // max |x|
	Peak_dB  float64
	PAPR     float64 // peak power / mean power (linear)
	PAPR_dB  float64
	Energy   float64 // sum |x|^2
}

// Analyze computes power statistics of a complex sample block.
//
// The per-sample power is computed with SIMD kernels where available;
// scratch buffers are pooled internally, so in steady state this allocates
// nothing.
func Analyze(samples []complex64) Stats {
	if len(samples) == 0 {
		return Stats{
			Power_dB: math.Inf(-1),
			Peak_dB:  math.Inf(-1),
			PAPR_dB:  math.Inf(-1),
		}
	}

	re, im, pw, buf := getScratch(len(samples))
	for i, c := range samples {
		re[i] = float64(real(c))
		im[i] = float64(imag(c))
	}
	vecmath.Power(pw, re, im)

	var energy, peakPower float64
	for _, p := range pw {
		energy += p
		if p > peakPower {
			peakPower = p
		}
	}
	putScratch(buf)

	mean := energy / float64(len(samples))
	st := Stats{
		Length:   len(samples),
		Power:    mean,
		Power_dB: powerTodB(mean),
		RMS:      math.Sqrt(mean),
		Peak:     math.Sqrt(peakPower),
		Peak_dB:  powerTodB(peakPower),
		Energy:   energy,
	}
	if mean > 0 {
		st.PAPR = peakPower / mean
		st.PAPR_dB = powerTodB(st.PAPR)
	} else {
		st.PAPR_dB = math.Inf(-1)
	}
	return st
}

// EVMResult holds an error vector magnitude measurement.
type EVMResult struct {
	RMS     float64 // error RMS / reference RMS (linear)
	Percent float64
	DB      float64
}

// EVM measures the error vector magnitude of measured against reference.
// Both blocks must have the same nonzero length and the reference must
// carry nonzero power.
func EVM(reference, measured []complex64) (EVMResult, error) {
	if len(reference) == 0 || len(reference) != len(measured) {
		return EVMResult{}, ErrLengthMismatch
	}

	var errPower, refPower float64
	for i := range reference {
		dr := float64(real(measured[i]) - real(reference[i]))
		di := float64(imag(measured[i]) - imag(reference[i]))
		errPower += dr*dr + di*di

		rr := float64(real(reference[i]))
		ri := float64(imag(reference[i]))
		refPower += rr*rr + ri*ri
	}
	if refPower == 0 {
		return EVMResult{}, errors.New("measure: reference has zero power")
	}

	rms := math.Sqrt(errPower / refPower)
	res := EVMResult{
		RMS:     rms,
		Percent: rms * 100,
	}
	if rms == 0 {
		res.DB = math.Inf(-1)
	} else {
		res.DB = 20 * math.Log10(rms)
	}
	return res, nil
}

// powerTodB converts a linear power value to decibels: 10 * log10(value).
// Returns -Inf for zero values.
func powerTodB(value float64) float64 {
	if value == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(value)
}
