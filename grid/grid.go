// Package grid implements the frequency-domain resource grid of one slot:
// a matrix of complex subcarrier values per OFDM symbol, with resource
// element and resource block mapping as defined by TS 38.211.
//
// Subcarrier indices are signed and DC-relative. Internally each symbol
// vector is stored in FFT bin order (DC at bin 0, negative frequencies
// wrapped to the upper half), which is the layout the transform backends
// consume directly.
package grid

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ofdm/frame"
)

// SubcarriersPerRB is the number of subcarriers in one resource block.
const SubcarriersPerRB = 12

// Errors returned by grid operations.
var (
	ErrInvalidFFTSize    = errors.New("grid: FFT size must be a power of two >= 2")
	ErrInvalidSymbols    = errors.New("grid: symbol count must be > 0")
	ErrBandwidthExceeded = errors.New("grid: resource blocks exceed usable bandwidth")
	ErrSubcarrierRange   = errors.New("grid: subcarrier index out of range")
	ErrSymbolRange       = errors.New("grid: symbol index out of range")
	ErrRBRange           = errors.New("grid: resource block index out of range")
	ErrLengthMismatch    = errors.New("grid: sample count mismatch")
)

// Grid holds the frequency-domain content of one slot.
//
// A Grid is not safe for concurrent mutation.
type Grid struct {
	data    []complex64 // symbol-major, fftSize bins per symbol
	fftSize int
	symbols int
	numRB   int // 0 when the grid is not bandwidth-limited
}

// New creates an empty grid of fftSize bins by symbolsPerSlot symbols with
// no bandwidth limit on mapping.
func New(fftSize, symbolsPerSlot int) (*Grid, error) {
	return NewWithRB(fftSize, symbolsPerSlot, 0)
}

// NewWithRB creates an empty grid limited to numRB resource blocks centered
// on DC. The occupied subcarriers must fit inside the FFT size with at
// least one guard bin.
func NewWithRB(fftSize, symbolsPerSlot, numRB int) (*Grid, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if symbolsPerSlot <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSymbols, symbolsPerSlot)
	}
	if numRB < 0 || numRB*SubcarriersPerRB >= fftSize {
		return nil, fmt.Errorf("%w: %d RB at FFT size %d", ErrBandwidthExceeded, numRB, fftSize)
	}

	return &Grid{
		data:    make([]complex64, fftSize*symbolsPerSlot),
		fftSize: fftSize,
		symbols: symbolsPerSlot,
		numRB:   numRB,
	}, nil
}

// FFTSize returns the number of bins per symbol.
func (g *Grid) FFTSize() int { return g.fftSize }

// Symbols returns the number of symbols in the grid.
func (g *Grid) Symbols() int { return g.symbols }

// NumRB returns the configured bandwidth in resource blocks, or 0 when
// unlimited.
func (g *Grid) NumRB() int { return g.numRB }

// binIndex maps a signed DC-relative subcarrier to an FFT bin.
func (g *Grid) binIndex(subcarrier int) (int, error) {
	if subcarrier < -g.fftSize/2 || subcarrier >= g.fftSize/2 {
		return 0, fmt.Errorf("%w: %d at FFT size %d", ErrSubcarrierRange, subcarrier, g.fftSize)
	}
	if g.numRB > 0 {
		half := g.numRB * SubcarriersPerRB / 2
		if subcarrier < -half || subcarrier >= half {
			return 0, fmt.Errorf("%w: %d outside %d RB", ErrSubcarrierRange, subcarrier, g.numRB)
		}
	}
	return (subcarrier + g.fftSize) % g.fftSize, nil
}

func (g *Grid) symbolSlice(symbol int) ([]complex64, error) {
	if symbol < 0 || symbol >= g.symbols {
		return nil, fmt.Errorf("%w: %d of %d", ErrSymbolRange, symbol, g.symbols)
	}
	off := symbol * g.fftSize
	return g.data[off : off+g.fftSize], nil
}

// MapRE writes one resource element. subcarrier is DC-relative and may be
// negative.
func (g *Grid) MapRE(subcarrier, symbol int, value complex64) error {
	bin, err := g.binIndex(subcarrier)
	if err != nil {
		return err
	}
	col, err := g.symbolSlice(symbol)
	if err != nil {
		return err
	}
	col[bin] = value
	return nil
}

// RE reads one resource element.
func (g *Grid) RE(subcarrier, symbol int) (complex64, error) {
	bin, err := g.binIndex(subcarrier)
	if err != nil {
		return 0, err
	}
	col, err := g.symbolSlice(symbol)
	if err != nil {
		return 0, err
	}
	return col[bin], nil
}

// MapRB writes the 12 subcarriers of one resource block. Blocks are indexed
// from the lower band edge; the grid must have been created with a resource
// block count.
func (g *Grid) MapRB(rb, symbol int, values []complex64) error {
	if g.numRB == 0 {
		return fmt.Errorf("%w: grid has no resource block layout", ErrRBRange)
	}
	if rb < 0 || rb >= g.numRB {
		return fmt.Errorf("%w: %d of %d", ErrRBRange, rb, g.numRB)
	}
	if len(values) != SubcarriersPerRB {
		return fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(values), SubcarriersPerRB)
	}

	start := rb*SubcarriersPerRB - g.numRB*SubcarriersPerRB/2
	for i, v := range values {
		if err := g.MapRE(start+i, symbol, v); err != nil {
			return err
		}
	}
	return nil
}

// Symbol returns a copy of one symbol's bins in FFT bin order. Out-of-range
// indices yield a zero vector, so a grid can always feed a full slot
// modulation.
func (g *Grid) Symbol(symbol int) []complex64 {
	out := make([]complex64, g.fftSize)
	col, err := g.symbolSlice(symbol)
	if err != nil {
		return out
	}
	copy(out, col)
	return out
}

// SetSymbol replaces one symbol's bins. data must be in FFT bin order and
// of the grid's FFT size.
func (g *Grid) SetSymbol(symbol int, data []complex64) error {
	if len(data) != g.fftSize {
		return fmt.Errorf("%w: got %d bins, want %d", ErrLengthMismatch, len(data), g.fftSize)
	}
	col, err := g.symbolSlice(symbol)
	if err != nil {
		return err
	}
	copy(col, data)
	return nil
}

// Clear zeroes the whole grid.
func (g *Grid) Clear() {
	clear(g.data)
}

// ClearSymbol zeroes one symbol.
func (g *Grid) ClearSymbol(symbol int) {
	col, err := g.symbolSlice(symbol)
	if err != nil {
		return
	}
	clear(col)
}

// RBCount returns the transmission bandwidth in resource blocks for a
// channel bandwidth in MHz at the given spacing (TS 38.104 table 5.3.2-1,
// FR1 subset).
func RBCount(bandwidthMHz int, scs frame.SCS) (int, error) {
	n, ok := rbTable[rbKey{bandwidthMHz, scs}]
	if !ok {
		return 0, fmt.Errorf("grid: no RB allocation for %d MHz at %v", bandwidthMHz, scs)
	}
	return n, nil
}

type rbKey struct {
	mhz int
	scs frame.SCS
}

var rbTable = map[rbKey]int{
	{5, frame.SCS15}: 25, {5, frame.SCS30}: 11,
	{10, frame.SCS15}: 52, {10, frame.SCS30}: 24, {10, frame.SCS60}: 11,
	{15, frame.SCS15}: 79, {15, frame.SCS30}: 38, {15, frame.SCS60}: 18,
	{20, frame.SCS15}: 106, {20, frame.SCS30}: 51, {20, frame.SCS60}: 24,
	{25, frame.SCS15}: 133, {25, frame.SCS30}: 65, {25, frame.SCS60}: 31,
	{30, frame.SCS15}: 160, {30, frame.SCS30}: 78, {30, frame.SCS60}: 38,
	{40, frame.SCS15}: 216, {40, frame.SCS30}: 106, {40, frame.SCS60}: 51,
	{50, frame.SCS15}: 270, {50, frame.SCS30}: 133, {50, frame.SCS60}: 65,
	{60, frame.SCS30}: 162, {60, frame.SCS60}: 79,
	{80, frame.SCS30}: 217, {80, frame.SCS60}: 107,
	{100, frame.SCS30}: 273, {100, frame.SCS60}: 135,
}
