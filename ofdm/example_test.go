package ofdm_test

import (
	"fmt"

	"github.com/cwbudde/algo-ofdm/frame"
	"github.com/cwbudde/algo-ofdm/ofdm"
)

func ExampleModulator() {
	m, _ := ofdm.NewModulator(ofdm.Config{
		FFTSize: 2048,
		SCS:     frame.SCS15,
	})

	// One subcarrier three bins above DC.
	freq := make([]complex64, 2048)
	freq[3] = 1

	symbol, _ := m.Modulate(freq, 0)

	fmt.Printf("Sample rate: %.2f MHz\n", m.SampleRate()/1e6)
	fmt.Printf("Symbol 0 length: %d samples\n", len(symbol))
	fmt.Printf("Cyclic prefix: %d samples\n", len(symbol)-m.FFTSize())

	// Output:
	// Sample rate: 30.72 MHz
	// Symbol 0 length: 2208 samples
	// Cyclic prefix: 160 samples
}

func ExampleCPLengths() {
	lengths := ofdm.CPLengths(2048, frame.CPNormal)

	fmt.Printf("Symbols per slot: %d\n", len(lengths))
	fmt.Printf("First symbol: %d samples\n", lengths[0])
	fmt.Printf("Other symbols: %d samples\n", lengths[1])

	// Output:
	// Symbols per slot: 14
	// First symbol: 160 samples
	// Other symbols: 144 samples
}

func ExampleSlotTiming() {
	timings := ofdm.SlotTiming(2048, frame.CPNormal)

	for _, tm := range timings[:3] {
		fmt.Printf("start=%d duration=%d cp=%d\n", tm.Start, tm.Duration, tm.CPLength)
	}

	// Output:
	// start=0 duration=2208 cp=160
	// start=2208 duration=2192 cp=144
	// start=4400 duration=2192 cp=144
}
