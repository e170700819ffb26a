// Command tuner is a real-time instrument tuner on the default
// microphone.
//
// Usage:
//
//	tuner [flags]
//
// It prints one line per analyzed frame: the matched note with its
// deviation in cents, or "---" while no reliable pitch is present.
//
// Examples:
//
//	tuner
//	tuner -temperament equal -ref 442
//	tuner -temperament werckmeister -oct-low 2 -oct-high 5
//	tuner -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-tuner/capture"
	"github.com/cwbudde/algo-tuner/internal/config"
	"github.com/cwbudde/algo-tuner/temperament"
	"github.com/cwbudde/algo-tuner/tuner"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default: standard locations)")
	temperamentName := flag.String("temperament", "", "tuning system (see -list)")
	ref := flag.Float64("ref", 0, "reference pitch for A4 in Hz")
	octLow := flag.Int("oct-low", -1, "lowest octave to generate targets for")
	octHigh := flag.Int("oct-high", -1, "highest octave to generate targets for")
	rate := flag.Float64("rate", 0, "capture sample rate in Hz")
	frame := flag.Int("frame", 0, "capture frame size in samples")
	list := flag.Bool("list", false, "list tuning systems with their scale deviations and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tuner [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Listens on the default microphone and prints the nearest note\n")
		fmt.Fprintf(os.Stderr, "with its deviation in cents.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tuner -temperament equal -ref 442\n")
		fmt.Fprintf(os.Stderr, "  tuner -list\n")
	}
	flag.Parse()

	if *list {
		printTemperaments()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("tuner: %v", err)
	}

	if *temperamentName != "" {
		cfg.Temperament = *temperamentName
	}
	if *ref > 0 {
		cfg.ReferenceHz = *ref
	}
	if *octLow >= 0 {
		cfg.OctaveLow = *octLow
	}
	if *octHigh >= 0 {
		cfg.OctaveHigh = *octHigh
	}
	if *rate > 0 {
		cfg.SampleRate = *rate
	}
	if *frame > 0 {
		cfg.FrameSize = *frame
	}

	if err := run(cfg); err != nil {
		log.Fatalf("tuner: %v", err)
	}
}

func run(cfg tuner.Config) error {
	mic, err := capture.OpenMicrophone(cfg.SampleRate, cfg.FrameSize)
	if err != nil {
		return err
	}
	defer mic.Close()

	loop, err := tuner.New(cfg, mic)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for fb := range loop.Feedback() {
			fmt.Println(fb)
		}
	}()

	go func() {
		for err := range loop.Errors() {
			log.Printf("tuner: %v", err)
			if rerr := loop.Resume(); rerr != nil {
				return
			}
		}
	}()

	fmt.Printf("tuning with %s temperament, A4 = %g Hz, octaves %d-%d\n",
		cfg.Temperament, cfg.ReferenceHz, cfg.OctaveLow, cfg.OctaveHigh)

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printTemperaments() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Degree")
	for _, sys := range temperament.Types() {
		fmt.Fprintf(tw, "\t%s", sys.Name())
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "------")
	for range temperament.Types() {
		fmt.Fprintf(tw, "\t-----")
	}
	fmt.Fprintln(tw)

	// Deviations from equal temperament in cents, one row per scale
	// degree.
	tables := make([][]float64, 0, len(temperament.Types()))
	for _, sys := range temperament.Types() {
		cents, err := sys.Cents()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		tables = append(tables, cents)
	}

	for d := 0; d < temperament.DegreesPerOctave; d++ {
		fmt.Fprintf(tw, "%d", d)
		for _, cents := range tables {
			fmt.Fprintf(tw, "\t%+.1f", cents[d]-float64(d)*100)
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
