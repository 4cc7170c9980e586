package ofdm

// Backend performs the frequency/time transforms of single OFDM symbols.
//
// The call shapes and status codes are deliberately FFI-flat so that a
// vendor-accelerated implementation can satisfy the interface with a thin
// wrapper. Buffers are borrowed for the duration of one call only and are
// never retained; a backend must be safe for concurrent calls.
type Backend interface {
	// InverseTransform converts size frequency-domain coefficients from
	// freqIn into size+cpLen time-domain samples in timeOut: the unnormalized
	// inverse transform scaled by scale, preceded by a cyclic prefix copied
	// from the tail of the transformed block. freqIn is not modified.
	InverseTransform(freqIn, timeOut []complex64, size, cpLen uint32, scale float32) int

	// ForwardTransform skips cpOffset leading samples of timeIn and converts
	// the following size samples into size unnormalized frequency-domain
	// coefficients in freqOut.
	ForwardTransform(timeIn, freqOut []complex64, size, cpOffset uint32) int
}

// NullBackend reports success without computing anything. Output buffers are
// left untouched. It stands in for a real backend in tests and in
// deployments where the transform stage is bypassed.
type NullBackend struct{}

// InverseTransform validates the call shape and returns StatusOK without
// writing to timeOut.
func (NullBackend) InverseTransform(freqIn, timeOut []complex64, size, cpLen uint32, _ float32) int {
	if uint64(len(freqIn)) < uint64(size) || uint64(len(timeOut)) < uint64(size)+uint64(cpLen) {
		return StatusInvalidParameter
	}
	return StatusOK
}

// ForwardTransform validates the call shape and returns StatusOK without
// writing to freqOut.
func (NullBackend) ForwardTransform(timeIn, freqOut []complex64, size, cpOffset uint32) int {
	if uint64(len(timeIn)) < uint64(size)+uint64(cpOffset) || uint64(len(freqOut)) < uint64(size) {
		return StatusInvalidParameter
	}
	return StatusOK
}
