package ofdm

import "math"

// CompensateCFO derotates samples in place by a carrier frequency offset of
// cfoHz at the given sample rate. Passing the estimate from
// [Demodulator.EstimateCFO] removes the corresponding rotation; passing a
// positive offset to a clean signal applies one, which is useful for
// simulating receiver impairments.
func CompensateCFO(samples []complex64, cfoHz, sampleRate float64) {
	if cfoHz == 0 || sampleRate == 0 {
		return
	}

	inc := 2 * math.Pi * cfoHz / sampleRate
	phase := 0.0
	for i := range samples {
		sin, cos := math.Sincos(phase)
		samples[i] *= complex(float32(cos), float32(sin))
		phase += inc

		// Keep the accumulator in [-pi, pi] so float64 precision holds over
		// long captures.
		if phase > math.Pi {
			phase -= 2 * math.Pi
		} else if phase < -math.Pi {
			phase += 2 * math.Pi
		}
	}
}
