package core

import "fmt"

// Sampler is the injected sampling capability for one uncertain scalar
// parameter. Sample draws a batch of n independent values. Implementations
// live outside the engine (see the sampling package) so that tests can inject
// deterministic sequences and distribution families can be swapped without
// touching the engine.
type Sampler interface {
	Sample(n int) ([]float64, error)
}

// JammerSpec describes the jammer for a Monte Carlo run. Transmit power and
// each position coordinate are uncertain and supplied as samplers (a fixed
// value is just a constant sampler); the carrier frequency is always fixed.
type JammerSpec struct {
	PowerDBm Sampler
	PosX     Sampler
	PosY     Sampler
	PosZ     Sampler

	FrequencyMHz float64
}

// MonteCarloResult holds the N sampled J/S ratios in generation order plus
// summary statistics over them.
type MonteCarloResult struct {
	JSSamples []float64

	Mean float64
	P50  float64
	P90  float64
}

// MonteCarloEngine re-evaluates the J/S ratio for a fixed transmitter and
// receiver against a jammer whose parameters are drawn from caller-supplied
// distributions. The engine holds no random state of its own; reproducibility
// comes from seeding the injected samplers.
type MonteCarloEngine struct {
	transmitter RadioSource
	receiver    Receiver
	jammer      JammerSpec
}

// NewMonteCarloEngine validates the jammer spec and returns an engine.
func NewMonteCarloEngine(transmitter RadioSource, receiver Receiver, jammer JammerSpec) (*MonteCarloEngine, error) {
	for _, s := range [...]struct {
		name    string
		sampler Sampler
	}{
		{"power_dbm", jammer.PowerDBm},
		{"pos_x", jammer.PosX},
		{"pos_y", jammer.PosY},
		{"pos_z", jammer.PosZ},
	} {
		if s.sampler == nil {
			return nil, fmt.Errorf("%w: jammer %s sampler is nil", ErrInvalidParameter, s.name)
		}
	}
	if !isFinite(jammer.FrequencyMHz) || jammer.FrequencyMHz <= 0 {
		return nil, invalidParameter("jammer frequency_mhz", jammer.FrequencyMHz, "must be finite and > 0")
	}
	return &MonteCarloEngine{
		transmitter: transmitter,
		receiver:    receiver,
		jammer:      jammer,
	}, nil
}

// Run draws n samples per uncertain jammer parameter (one batch draw each,
// all mutually independent), assembles the i-th jammer from the i-th sample
// of every parameter, and collects the n resulting J/S ratios plus their
// mean, median and 90th percentile.
//
// A sampler failure or a batch of the wrong length aborts the run with an
// error wrapping ErrSampling; no partial result is returned.
func (e *MonteCarloEngine) Run(n int) (*MonteCarloResult, error) {
	if n < 1 {
		return nil, invalidParameter("n", float64(n), "sample count must be >= 1")
	}

	power, err := e.drawBatch("power_dbm", e.jammer.PowerDBm, n)
	if err != nil {
		return nil, err
	}
	posX, err := e.drawBatch("pos_x", e.jammer.PosX, n)
	if err != nil {
		return nil, err
	}
	posY, err := e.drawBatch("pos_y", e.jammer.PosY, n)
	if err != nil {
		return nil, err
	}
	posZ, err := e.drawBatch("pos_z", e.jammer.PosZ, n)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		jammer := RadioSource{
			PowerDBm:     power[i],
			FrequencyMHz: e.jammer.FrequencyMHz,
			Position:     Position{X: posX[i], Y: posY[i], Z: posZ[i]},
		}
		samples[i] = JSRatioDB(jammer, e.transmitter, e.receiver)
	}

	mean, p50, p90 := summarize(samples)
	return &MonteCarloResult{
		JSSamples: samples,
		Mean:      mean,
		P50:       p50,
		P90:       p90,
	}, nil
}

func (e *MonteCarloEngine) drawBatch(param string, s Sampler, n int) ([]float64, error) {
	batch, err := s.Sample(n)
	if err != nil {
		return nil, samplingError(param, err)
	}
	if len(batch) != n {
		return nil, samplingError(param, fmt.Errorf("got %d values, want %d", len(batch), n))
	}
	return batch, nil
}
