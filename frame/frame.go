// Package frame describes 5G NR numerology and slot structure: subcarrier
// spacings, cyclic prefix variants, and the slot/symbol counts and durations
// that follow from them (TS 38.211 clause 4).
package frame

import (
	"fmt"
	"time"
)

// SCS identifies a subcarrier spacing.
type SCS int

// Supported subcarrier spacings.
const (
	SCS15 SCS = iota
	SCS30
	SCS60
	SCS120
	SCS240
)

// Hz returns the subcarrier spacing in hertz.
func (s SCS) Hz() float64 {
	return 15_000 * float64(int(1)<<s.Mu())
}

// Mu returns the numerology index, where spacing = 15 kHz * 2^mu.
func (s SCS) Mu() int {
	if s < SCS15 || s > SCS240 {
		return 0
	}
	return int(s)
}

// Valid reports whether s is a defined subcarrier spacing.
func (s SCS) Valid() bool {
	return s >= SCS15 && s <= SCS240
}

func (s SCS) String() string {
	if !s.Valid() {
		return fmt.Sprintf("SCS(%d)", int(s))
	}
	return fmt.Sprintf("%gkHz", s.Hz()/1000)
}

// CyclicPrefix selects the cyclic prefix variant of a slot.
type CyclicPrefix int

const (
	// CPNormal is the 14-symbol slot with a longer prefix on symbols 0 and 7.
	CPNormal CyclicPrefix = iota

	// CPExtended is the 12-symbol slot with a uniform long prefix. Only
	// defined for 60 kHz spacing, but accepted for any numerology here.
	CPExtended
)

// SymbolsPerSlot returns the OFDM symbol count of one slot.
func (cp CyclicPrefix) SymbolsPerSlot() int {
	if cp == CPExtended {
		return 12
	}
	return 14
}

func (cp CyclicPrefix) String() string {
	if cp == CPExtended {
		return "extended"
	}
	return "normal"
}

// SampleRate returns the baseband sample rate in Hz for an FFT size at the
// given spacing. For 2048/15 kHz this is the LTE-heritage 30.72 MHz.
func SampleRate(fftSize int, scs SCS) float64 {
	return float64(fftSize) * scs.Hz()
}

// SlotConfig captures the slot structure implied by a numerology.
type SlotConfig struct {
	SCS              SCS
	CyclicPrefix     CyclicPrefix
	SlotsPerSubframe int
	SlotsPerFrame    int
	SymbolsPerSlot   int
	SlotDuration     time.Duration
}

// NewSlotConfig derives the slot structure for a spacing and prefix variant.
func NewSlotConfig(scs SCS, cp CyclicPrefix) (SlotConfig, error) {
	if !scs.Valid() {
		return SlotConfig{}, fmt.Errorf("frame: unknown subcarrier spacing %d", int(scs))
	}

	slotsPerSubframe := 1 << scs.Mu()

	return SlotConfig{
		SCS:              scs,
		CyclicPrefix:     cp,
		SlotsPerSubframe: slotsPerSubframe,
		SlotsPerFrame:    slotsPerSubframe * 10,
		SymbolsPerSlot:   cp.SymbolsPerSlot(),
		SlotDuration:     time.Millisecond / time.Duration(slotsPerSubframe),
	}, nil
}

// SymbolDuration returns the average symbol duration within the slot. The
// per-symbol durations differ slightly under the normal prefix; use the
// timing table in the ofdm package for exact sample counts.
func (c SlotConfig) SymbolDuration() time.Duration {
	if c.SymbolsPerSlot == 0 {
		return 0
	}
	return c.SlotDuration / time.Duration(c.SymbolsPerSlot)
}
