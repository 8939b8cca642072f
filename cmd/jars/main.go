package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/signalsfoundry/jars-simulator/core"
	"github.com/signalsfoundry/jars-simulator/internal/logging"
	"github.com/signalsfoundry/jars-simulator/sampling"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/scenario.json", "path to a JSON scenario file")
	samples := flag.Int("samples", 0, "override the scenario's Monte Carlo sample count")
	seed := flag.Uint64("seed", 0, "override the scenario's random seed")
	bins := flag.Int("histogram-bins", 10, "number of bins in the J/S histogram")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	f, err := os.Open(*scenarioPath)
	if err != nil {
		log.Error(ctx, "failed to open scenario", logging.String("path", *scenarioPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	scenario, err := core.LoadScenario(f)
	f.Close()
	if err != nil {
		log.Error(ctx, "failed to load scenario", logging.String("path", *scenarioPath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	if *samples > 0 {
		scenario.Samples = *samples
	}
	if *seed != 0 {
		scenario.Seed = *seed
		scenario.HasSeed = true
	}

	printDeterministic(scenario)

	if scenario.Samples > 0 {
		if err := runMonteCarlo(ctx, log, scenario, *bins); err != nil {
			log.Error(ctx, "Monte Carlo run failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// printDeterministic evaluates and reports the fixed scenario, when the
// jammer has no sampled parameters.
func printDeterministic(s *core.Scenario) {
	jammer, ok := s.FixedJammer()
	if !ok {
		fmt.Println("Jammer parameters are sampled; skipping deterministic evaluation.")
		return
	}

	result := core.EvaluateScenario(s.Transmitter, jammer, s.Receiver, s.JSThresholdDB)
	jamming := core.IsJammingSuccessful(result.JSRatioDB, s.JSThresholdDB, result.TxReceivedDBm, s.Receiver.SensitivityDBm)

	fmt.Println("=== Deterministic evaluation ===")
	fmt.Printf("Signal received:  %8.2f dBm (sensitivity %.2f dBm)\n", result.TxReceivedDBm, s.Receiver.SensitivityDBm)
	fmt.Printf("Jammer received:  %8.2f dBm\n", result.JamReceivedDBm)
	fmt.Printf("J/S ratio:        %8.2f dB  (threshold %.2f dB)\n", result.JSRatioDB, s.JSThresholdDB)
	fmt.Printf("Communication:    %s\n", verdict(result.CommunicationSuccess))
	fmt.Printf("Jamming:          %s\n", verdict(jamming))
}

func runMonteCarlo(ctx context.Context, log logging.Logger, s *core.Scenario, bins int) error {
	seed := s.Seed
	if !s.HasSeed {
		seed = uint64(time.Now().UnixNano())
	}

	engine, err := s.NewEngine(sampling.NewSource(seed))
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := engine.Run(s.Samples)
	if err != nil {
		return err
	}

	log.Info(ctx, "monte carlo run complete",
		logging.Int("samples", s.Samples),
		logging.Any("seed", seed),
		logging.String("duration", time.Since(start).String()),
	)

	fmt.Println()
	fmt.Printf("=== Monte Carlo (%d samples, seed %d) ===\n", s.Samples, seed)
	fmt.Printf("Mean J/S:  %8.2f dB\n", result.Mean)
	fmt.Printf("P50  J/S:  %8.2f dB\n", result.P50)
	fmt.Printf("P90  J/S:  %8.2f dB\n", result.P90)

	over := 0
	for _, js := range result.JSSamples {
		if js > s.JSThresholdDB {
			over++
		}
	}
	fmt.Printf("Samples above %.1f dB threshold: %d/%d (%.1f%%)\n",
		s.JSThresholdDB, over, len(result.JSSamples),
		100*float64(over)/float64(len(result.JSSamples)))

	if bins > 0 && len(result.JSSamples) > 1 {
		fmt.Println()
		printHistogram(result.JSSamples, bins)
	}
	return nil
}

// printHistogram renders an ASCII histogram of the J/S samples.
func printHistogram(samples []float64, bins int) {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	lo := sorted[0]
	hi := sorted[len(sorted)-1]
	if lo == hi {
		fmt.Printf("All %d samples equal %.2f dB\n", len(sorted), lo)
		return
	}

	dividers := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	// Nudge the top divider so the maximum sample falls inside the last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	max := 0.0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	for i, c := range counts {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("#", int(40*c/max))
		}
		fmt.Printf("%8.2f .. %8.2f dB | %-40s %d\n", dividers[i], lo+float64(i+1)*width, bar, int(c))
	}
}

func verdict(ok bool) string {
	if ok {
		return "SUCCESS"
	}
	return "FAILURE"
}
