package ofdm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ofdm/frame"
)

// SymbolSource supplies frequency-domain symbol vectors in FFT bin order.
// Implementations return a vector of the modulator's FFT size for every
// symbol index in [0, Symbols()).
//
// The resource grid in package grid implements this interface.
type SymbolSource interface {
	Symbol(i int) []complex64
	Symbols() int
}

// Config parameterizes a Modulator or Demodulator.
type Config struct {
	// FFTSize is the transform length, a power of two.
	FFTSize int

	// CyclicPrefix selects the prefix schedule. Zero value is the normal
	// prefix.
	CyclicPrefix frame.CyclicPrefix

	// SCS is the subcarrier spacing, used to derive the sample rate. Zero
	// value is 15 kHz.
	SCS frame.SCS

	// BasebandGainDB is applied on top of the 1/sqrt(N) transform
	// normalization during modulation. Zero means unity gain; transmit
	// chains typically back off by a few dB to keep headroom.
	BasebandGainDB float64

	// Backend performs the transforms. Nil selects a software FFTBackend.
	Backend Backend
}

func (c *Config) normalize() error {
	if !isPowerOf2(c.FFTSize) {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, c.FFTSize)
	}
	if !c.SCS.Valid() {
		return fmt.Errorf("ofdm: unknown subcarrier spacing %d", int(c.SCS))
	}
	if c.Backend == nil {
		c.Backend = NewFFTBackend()
	}
	return nil
}

// Modulator converts frequency-domain symbols into time-domain sample
// blocks with cyclic prefixes (the downlink direction).
//
// A Modulator is safe for concurrent use as long as its backend is.
type Modulator struct {
	fftSize   int
	cp        frame.CyclicPrefix
	scs       frame.SCS
	backend   Backend
	cpLengths []int

	gainDB float64
}

// NewModulator creates a modulator for the given configuration.
func NewModulator(cfg Config) (*Modulator, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Modulator{
		fftSize:   cfg.FFTSize,
		cp:        cfg.CyclicPrefix,
		scs:       cfg.SCS,
		backend:   cfg.Backend,
		cpLengths: CPLengths(cfg.FFTSize, cfg.CyclicPrefix),
		gainDB:    cfg.BasebandGainDB,
	}, nil
}

// FFTSize returns the transform length.
func (m *Modulator) FFTSize() int { return m.fftSize }

// SampleRate returns the baseband sample rate in Hz.
func (m *Modulator) SampleRate() float64 { return frame.SampleRate(m.fftSize, m.scs) }

// SymbolLength returns the sample count of the symbol at the given slot
// position, prefix included.
func (m *Modulator) SymbolLength(symbol int) int {
	return m.fftSize + m.cpLengths[mod(symbol, len(m.cpLengths))]
}

// SlotLength returns the sample count of one full slot.
func (m *Modulator) SlotLength() int {
	return SlotLength(m.fftSize, m.cp)
}

// SetBasebandGainDB changes the gain applied during modulation.
func (m *Modulator) SetBasebandGainDB(gainDB float64) {
	m.gainDB = gainDB
}

// ConfigureBandwidth derives the baseband gain from the FFT processing gain
// minus a backoff, the convention used when driving a fixed-scale radio
// front end.
func (m *Modulator) ConfigureBandwidth(backoffDB float64) {
	m.gainDB = 20*math.Log10(float64(m.fftSize)) - backoffDB
}

// Modulate transforms one frequency-domain symbol into fftSize+cpLen
// time-domain samples: the scaled inverse transform preceded by its cyclic
// prefix. symbol selects the prefix length within the slot schedule.
func (m *Modulator) Modulate(freq []complex64, symbol int) ([]complex64, error) {
	cpLen := m.cpLengths[mod(symbol, len(m.cpLengths))]
	out := make([]complex64, m.fftSize+cpLen)
	if err := m.ModulateTo(out, freq, symbol); err != nil {
		return nil, err
	}
	return out, nil
}

// ModulateTo is like Modulate but writes into a caller-provided buffer of
// exactly fftSize+cpLen samples.
func (m *Modulator) ModulateTo(out, freq []complex64, symbol int) error {
	if len(freq) != m.fftSize {
		return fmt.Errorf("%w: got %d frequency samples, want %d", ErrLengthMismatch, len(freq), m.fftSize)
	}
	cpLen := m.cpLengths[mod(symbol, len(m.cpLengths))]
	if len(out) != m.fftSize+cpLen {
		return fmt.Errorf("%w: got %d output samples, want %d", ErrLengthMismatch, len(out), m.fftSize+cpLen)
	}

	// 1/sqrt(N) keeps symbol power independent of the FFT size; the
	// configured gain rides on top.
	scale := float32(math.Pow(10, m.gainDB/20) / math.Sqrt(float64(m.fftSize)))

	status := m.backend.InverseTransform(freq, out, uint32(m.fftSize), uint32(cpLen), scale)
	if err := StatusError(status); err != nil {
		return fmt.Errorf("ofdm: inverse transform of symbol %d: %w", symbol, err)
	}
	return nil
}

// ModulateSlot modulates every symbol of one slot from src and concatenates
// the results in slot order.
func (m *Modulator) ModulateSlot(src SymbolSource) ([]complex64, error) {
	symbols := m.cp.SymbolsPerSlot()
	if src.Symbols() < symbols {
		return nil, fmt.Errorf("%w: source has %d symbols, slot needs %d", ErrLengthMismatch, src.Symbols(), symbols)
	}

	out := make([]complex64, 0, m.SlotLength())
	for s := 0; s < symbols; s++ {
		block, err := m.Modulate(src.Symbol(s), s)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
