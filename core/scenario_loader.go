package core

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/exp/rand"

	"github.com/signalsfoundry/jars-simulator/sampling"
)

// Scenario is a fully validated jamming scenario loaded from JSON. The
// transmitter and receiver are always fixed; each uncertain jammer parameter
// carries either a fixed value or a distribution spec.
type Scenario struct {
	Transmitter RadioSource
	Receiver    Receiver

	JammerFrequencyMHz float64
	JSThresholdDB      float64

	// Samples is the requested Monte Carlo sample count; 0 means the
	// scenario is deterministic-only.
	Samples int

	// Seed, when present, pins the random source for reproducible runs.
	Seed    uint64
	HasSeed bool

	jammerPower paramSpec
	jammerX     paramSpec
	jammerY     paramSpec
	jammerZ     paramSpec
}

// internal JSON shapes – kept unexported so the wire format can evolve
// independently of the core types.
type scenarioJSON struct {
	Transmitter radioSourceJSON `json:"transmitter"`
	Receiver    receiverJSON    `json:"receiver"`
	Jammer      jammerJSON      `json:"jammer"`

	JSThresholdDB float64 `json:"js_threshold_db"`
	Samples       int     `json:"samples"`
	Seed          *uint64 `json:"seed"`
}

type radioSourceJSON struct {
	PowerDBm     float64      `json:"power_dbm"`
	FrequencyMHz float64      `json:"frequency_mhz"`
	Position     positionJSON `json:"position"`
}

type receiverJSON struct {
	SensitivityDBm float64      `json:"sensitivity_dbm"`
	Position       positionJSON `json:"position"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jammerJSON struct {
	FrequencyMHz float64   `json:"frequency_mhz"`
	PowerDBm     paramSpec `json:"power_dbm"`
	X            paramSpec `json:"x"`
	Y            paramSpec `json:"y"`
	Z            paramSpec `json:"z"`
}

// paramSpec is one uncertain jammer parameter: either a bare JSON number
// (fixed) or an object selecting a distribution family.
type paramSpec struct {
	Dist string `json:"dist"` // "fixed" | "normal" | "uniform"

	Value  float64 `json:"value"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	set bool
}

func (p *paramSpec) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*p = paramSpec{Dist: "fixed", Value: v, set: true}
		return nil
	}

	type rawSpec paramSpec // shed the method set to avoid recursion
	var raw rawSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parameter spec must be a number or a dist object: %w", err)
	}
	*p = paramSpec(raw)
	p.set = true
	return nil
}

// fixed reports the constant value of the spec, if it has one.
func (p paramSpec) fixed() (float64, bool) {
	switch p.Dist {
	case "fixed":
		return p.Value, true
	case "normal":
		if p.StdDev == 0 {
			return p.Mean, true
		}
	case "uniform":
		if p.Min == p.Max {
			return p.Min, true
		}
	}
	return 0, false
}

// sampler builds the distribution behind the spec, drawing randomness from
// src.
func (p paramSpec) sampler(src rand.Source) (*sampling.Distribution, error) {
	switch p.Dist {
	case "fixed":
		return sampling.Fixed(p.Value)
	case "normal":
		return sampling.Normal(p.Mean, p.StdDev, src)
	case "uniform":
		return sampling.Uniform(p.Min, p.Max, src)
	default:
		return nil, fmt.Errorf("%w: unknown distribution %q", ErrInvalidParameter, p.Dist)
	}
}

// LoadScenario reads a JSON scenario from r and validates it through the
// entity constructors. It fails on structural errors, on entity validation
// errors, and on malformed jammer parameter specs; a negative sample count is
// rejected here while the n >= 1 check stays with MonteCarloEngine.Run.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	txPos, err := NewPosition(payload.Transmitter.Position.X, payload.Transmitter.Position.Y, payload.Transmitter.Position.Z)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: transmitter position: %w", err)
	}
	tx, err := NewRadioSource(payload.Transmitter.PowerDBm, payload.Transmitter.FrequencyMHz, txPos)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: transmitter: %w", err)
	}

	rxPos, err := NewPosition(payload.Receiver.Position.X, payload.Receiver.Position.Y, payload.Receiver.Position.Z)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: receiver position: %w", err)
	}
	rx, err := NewReceiver(payload.Receiver.SensitivityDBm, rxPos)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: receiver: %w", err)
	}

	if !isFinite(payload.JSThresholdDB) {
		return nil, invalidParameter("js_threshold_db", payload.JSThresholdDB, "must be finite")
	}
	if !isFinite(payload.Jammer.FrequencyMHz) || payload.Jammer.FrequencyMHz <= 0 {
		return nil, invalidParameter("jammer frequency_mhz", payload.Jammer.FrequencyMHz, "must be finite and > 0")
	}
	if payload.Samples < 0 {
		return nil, invalidParameter("samples", float64(payload.Samples), "must be >= 0")
	}

	for _, p := range [...]struct {
		name string
		spec paramSpec
	}{
		{"power_dbm", payload.Jammer.PowerDBm},
		{"x", payload.Jammer.X},
		{"y", payload.Jammer.Y},
		{"z", payload.Jammer.Z},
	} {
		if !p.spec.set {
			return nil, fmt.Errorf("%w: jammer %s is missing", ErrInvalidParameter, p.name)
		}
	}

	s := &Scenario{
		Transmitter:        tx,
		Receiver:           rx,
		JammerFrequencyMHz: payload.Jammer.FrequencyMHz,
		JSThresholdDB:      payload.JSThresholdDB,
		Samples:            payload.Samples,
		jammerPower:        payload.Jammer.PowerDBm,
		jammerX:            payload.Jammer.X,
		jammerY:            payload.Jammer.Y,
		jammerZ:            payload.Jammer.Z,
	}
	if payload.Seed != nil {
		s.Seed = *payload.Seed
		s.HasSeed = true
	}
	return s, nil
}

// FixedJammer returns the jammer as a plain RadioSource when every uncertain
// parameter is a constant, which is what the deterministic evaluation needs.
func (s *Scenario) FixedJammer() (RadioSource, bool) {
	power, ok := s.jammerPower.fixed()
	if !ok {
		return RadioSource{}, false
	}
	x, ok := s.jammerX.fixed()
	if !ok {
		return RadioSource{}, false
	}
	y, ok := s.jammerY.fixed()
	if !ok {
		return RadioSource{}, false
	}
	z, ok := s.jammerZ.fixed()
	if !ok {
		return RadioSource{}, false
	}

	pos, err := NewPosition(x, y, z)
	if err != nil {
		return RadioSource{}, false
	}
	jammer, err := NewRadioSource(power, s.JammerFrequencyMHz, pos)
	if err != nil {
		return RadioSource{}, false
	}
	return jammer, true
}

// NewEngine builds the Monte Carlo engine for this scenario, drawing all
// randomness from src. Callers that need reproducible runs seed src from
// Scenario.Seed.
func (s *Scenario) NewEngine(src rand.Source) (*MonteCarloEngine, error) {
	power, err := s.jammerPower.sampler(src)
	if err != nil {
		return nil, fmt.Errorf("jammer power_dbm: %w", err)
	}
	x, err := s.jammerX.sampler(src)
	if err != nil {
		return nil, fmt.Errorf("jammer x: %w", err)
	}
	y, err := s.jammerY.sampler(src)
	if err != nil {
		return nil, fmt.Errorf("jammer y: %w", err)
	}
	z, err := s.jammerZ.sampler(src)
	if err != nil {
		return nil, fmt.Errorf("jammer z: %w", err)
	}

	return NewMonteCarloEngine(s.Transmitter, s.Receiver, JammerSpec{
		PowerDBm:     power,
		PosX:         x,
		PosY:         y,
		PosZ:         z,
		FrequencyMHz: s.JammerFrequencyMHz,
	})
}
