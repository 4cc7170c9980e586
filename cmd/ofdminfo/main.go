// Command ofdminfo prints OFDM numerology and symbol timing tables.
//
// Usage:
//
//	ofdminfo [flags] [scs ...]
//
// Without arguments it prints info for all subcarrier spacings.
//
// Examples:
//
//	ofdminfo 15khz
//	ofdminfo -fft 4096 30khz
//	ofdminfo -fft 2048 -cp extended
//	ofdminfo -timing -fft 2048 15khz
//	ofdminfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-ofdm/frame"
	"github.com/cwbudde/algo-ofdm/ofdm"
)

type scsEntry struct {
	name string
	scs  frame.SCS
}

var registry = []scsEntry{
	{"15khz", frame.SCS15},
	{"30khz", frame.SCS30},
	{"60khz", frame.SCS60},
	{"120khz", frame.SCS120},
	{"240khz", frame.SCS240},
}

func main() {
	fftSize := flag.Int("fft", 2048, "FFT size in bins")
	cpName := flag.String("cp", "normal", "cyclic prefix type (normal, extended)")
	timing := flag.Bool("timing", false, "print per-symbol timing of one slot")
	list := flag.Bool("list", false, "list available subcarrier spacings")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ofdminfo [flags] [scs ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints OFDM numerology and symbol timing tables.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all subcarrier spacings.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ofdminfo 15khz 30khz\n")
		fmt.Fprintf(os.Stderr, "  ofdminfo -fft 4096 -cp extended\n")
		fmt.Fprintf(os.Stderr, "  ofdminfo -timing -fft 2048 15khz\n")
		fmt.Fprintf(os.Stderr, "  ofdminfo -list\n")
	}
	flag.Parse()

	if *list {
		for _, e := range registry {
			fmt.Println(e.name)
		}
		return
	}

	cp, err := parseCP(*cpName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching subcarrier spacings\n")
		os.Exit(1)
	}

	if *timing {
		printTiming(*fftSize, cp)
		return
	}
	printNumerology(entries, *fftSize, cp)
}

func parseCP(name string) (frame.CyclicPrefix, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal":
		return frame.CPNormal, nil
	case "extended":
		return frame.CPExtended, nil
	}
	return 0, fmt.Errorf("unknown cyclic prefix type %q (use normal or extended)", name)
}

func resolveEntries(names []string) []scsEntry {
	byName := make(map[string]scsEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []scsEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown spacing %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

func printNumerology(entries []scsEntry, fftSize int, cp frame.CyclicPrefix) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SCS\tmu\tSlots/Subframe\tSlot\tSymbols\tSample Rate\tSlot Samples\tCP0\tCP\n")
	fmt.Fprintf(tw, "---\t--\t--------------\t----\t-------\t-----------\t------------\t---\t--\n")

	for _, e := range entries {
		cfg, err := frame.NewSlotConfig(e.scs, cp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.name, err)
			continue
		}

		lengths := ofdm.CPLengths(fftSize, cp)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%d\t%.2f MHz\t%d\t%d\t%d\n",
			e.scs,
			e.scs.Mu(),
			cfg.SlotsPerSubframe,
			cfg.SlotDuration,
			cp.SymbolsPerSlot(),
			frame.SampleRate(fftSize, e.scs)/1e6,
			ofdm.SlotLength(fftSize, cp),
			lengths[0],
			lengths[1],
		)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printTiming(fftSize int, cp frame.CyclicPrefix) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Symbol\tStart\tCP\tBlock\tTotal\n")
	fmt.Fprintf(tw, "------\t-----\t--\t-----\t-----\n")

	for i, tm := range ofdm.SlotTiming(fftSize, cp) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n", i, tm.Start, tm.CPLength, fftSize, tm.Duration)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
