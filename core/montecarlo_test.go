package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// constSampler always yields the same value; the Monte Carlo analogue of a
// zero-variance distribution.
type constSampler float64

func (c constSampler) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(c)
	}
	return out, nil
}

// scriptedSampler replays a fixed sequence, so tests control every draw.
type scriptedSampler []float64

func (s scriptedSampler) Sample(n int) ([]float64, error) {
	if n > len(s) {
		return nil, fmt.Errorf("scripted sampler exhausted: want %d, have %d", n, len(s))
	}
	return append([]float64(nil), s[:n]...), nil
}

// failingSampler simulates an external distribution failure.
type failingSampler struct{}

func (failingSampler) Sample(int) ([]float64, error) {
	return nil, errors.New("rng backend unavailable")
}

// shortSampler returns fewer values than requested.
type shortSampler struct{}

func (shortSampler) Sample(n int) ([]float64, error) {
	return make([]float64, n-1), nil
}

func testEngine(t *testing.T, jammer JammerSpec) *MonteCarloEngine {
	t.Helper()
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 300, Position: Position{}}
	rx := Receiver{SensitivityDBm: -90, Position: Position{X: 2000}}
	engine, err := NewMonteCarloEngine(tx, rx, jammer)
	if err != nil {
		t.Fatalf("NewMonteCarloEngine: %v", err)
	}
	return engine
}

func fixedJammerSpec() JammerSpec {
	return JammerSpec{
		PowerDBm:     constSampler(40),
		PosX:         constSampler(1000),
		PosY:         constSampler(500),
		PosZ:         constSampler(0),
		FrequencyMHz: 300,
	}
}

func TestNewMonteCarloEngine_Validation(t *testing.T) {
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 300}
	rx := Receiver{SensitivityDBm: -90, Position: Position{X: 2000}}

	spec := fixedJammerSpec()
	spec.PosY = nil
	if _, err := NewMonteCarloEngine(tx, rx, spec); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("nil sampler: err = %v, want ErrInvalidParameter", err)
	}

	spec = fixedJammerSpec()
	spec.FrequencyMHz = 0
	if _, err := NewMonteCarloEngine(tx, rx, spec); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero frequency: err = %v, want ErrInvalidParameter", err)
	}
}

func TestRun_SampleCountAndFiniteness(t *testing.T) {
	engine := testEngine(t, fixedJammerSpec())

	result, err := engine.Run(100)
	if err != nil {
		t.Fatalf("Run(100): %v", err)
	}
	if len(result.JSSamples) != 100 {
		t.Fatalf("len(JSSamples) = %d, want 100", len(result.JSSamples))
	}
	for i, js := range result.JSSamples {
		if math.IsNaN(js) || math.IsInf(js, 0) {
			t.Fatalf("JSSamples[%d] = %v, want finite", i, js)
		}
	}
}

func TestRun_SingleSample(t *testing.T) {
	engine := testEngine(t, fixedJammerSpec())

	result, err := engine.Run(1)
	if err != nil {
		t.Fatalf("Run(1): %v", err)
	}
	if len(result.JSSamples) != 1 {
		t.Fatalf("len(JSSamples) = %d, want 1", len(result.JSSamples))
	}
	if result.Mean != result.JSSamples[0] || result.P50 != result.JSSamples[0] || result.P90 != result.JSSamples[0] {
		t.Errorf("single-sample statistics should equal the sample: %+v", result)
	}
}

func TestRun_InvalidCount(t *testing.T) {
	engine := testEngine(t, fixedJammerSpec())
	for _, n := range []int{0, -5} {
		if _, err := engine.Run(n); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Run(%d): err = %v, want ErrInvalidParameter", n, err)
		}
	}
}

func TestRun_ConstantDistributionStatistics(t *testing.T) {
	engine := testEngine(t, fixedJammerSpec())

	result, err := engine.Run(50)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// All inputs constant, so every sample equals the deterministic J/S and
	// all three statistics equal it exactly.
	jammer := RadioSource{PowerDBm: 40, FrequencyMHz: 300, Position: Position{X: 1000, Y: 500}}
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 300, Position: Position{}}
	rx := Receiver{SensitivityDBm: -90, Position: Position{X: 2000}}
	want := JSRatioDB(jammer, tx, rx)

	for i, js := range result.JSSamples {
		if js != want {
			t.Fatalf("JSSamples[%d] = %v, want %v", i, js, want)
		}
	}
	if result.Mean != want || result.P50 != want || result.P90 != want {
		t.Errorf("statistics = (%v, %v, %v), want all %v", result.Mean, result.P50, result.P90, want)
	}
}

func TestRun_ScriptedSamplesDriveResults(t *testing.T) {
	spec := fixedJammerSpec()
	spec.PowerDBm = scriptedSampler{40, 50, 60}
	engine := testEngine(t, spec)

	result, err := engine.Run(3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 300, Position: Position{}}
	rx := Receiver{SensitivityDBm: -90, Position: Position{X: 2000}}
	for i, power := range []float64{40, 50, 60} {
		jammer := RadioSource{PowerDBm: power, FrequencyMHz: 300, Position: Position{X: 1000, Y: 500}}
		if want := JSRatioDB(jammer, tx, rx); result.JSSamples[i] != want {
			t.Errorf("JSSamples[%d] = %v, want %v", i, result.JSSamples[i], want)
		}
	}

	// Each extra 10 dB of jammer power raises J/S by exactly 10 dB.
	if diff := result.JSSamples[1] - result.JSSamples[0]; math.Abs(diff-10) > 1e-9 {
		t.Errorf("J/S step = %v, want 10", diff)
	}
}

func TestRun_SamplerFailureAbortsRun(t *testing.T) {
	spec := fixedJammerSpec()
	spec.PosZ = failingSampler{}
	engine := testEngine(t, spec)

	result, err := engine.Run(10)
	if !errors.Is(err, ErrSampling) {
		t.Fatalf("err = %v, want ErrSampling", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on sampling failure", result)
	}
}

func TestRun_ShortBatchAbortsRun(t *testing.T) {
	spec := fixedJammerSpec()
	spec.PosX = shortSampler{}
	engine := testEngine(t, spec)

	if _, err := engine.Run(10); !errors.Is(err, ErrSampling) {
		t.Fatalf("err = %v, want ErrSampling", err)
	}
}
