package ofdm

import (
	"errors"
	"fmt"
)

// Backend status codes. Zero is success; the negative codes mirror the
// vendor DSP error space so an accelerated backend can pass its codes
// through unchanged.
const (
	StatusOK               = 0
	StatusInvalidParameter = -1
	StatusAllocationFailed = -2
	StatusNotInitialized   = -3
	StatusProcessingFailed = -4
)

// Errors corresponding to the well-known backend status codes.
var (
	ErrInvalidParameter = errors.New("ofdm: invalid transform parameter")
	ErrAllocationFailed = errors.New("ofdm: backend allocation failed")
	ErrNotInitialized   = errors.New("ofdm: backend not initialized")
	ErrProcessingFailed = errors.New("ofdm: backend processing failed")
)

// StatusError converts a backend status code into an error. StatusOK maps to
// nil; unknown codes are preserved verbatim in the error message so
// backend-specific sub-codes survive the crossing.
func StatusError(status int) error {
	switch status {
	case StatusOK:
		return nil
	case StatusInvalidParameter:
		return ErrInvalidParameter
	case StatusAllocationFailed:
		return ErrAllocationFailed
	case StatusNotInitialized:
		return ErrNotInitialized
	case StatusProcessingFailed:
		return ErrProcessingFailed
	default:
		return fmt.Errorf("ofdm: backend status %d", status)
	}
}
