package core

import (
	"math"
	"testing"
)

func TestFreeSpacePathLossDB_KnownValues(t *testing.T) {
	want := 20*math.Log10(1) + 20*math.Log10(100) + 32.44 // ≈ 52.44 dB
	if got := FreeSpacePathLossDB(1, 100); math.Abs(got-want) > 1e-9 {
		t.Errorf("FSPL(1 km, 100 MHz) = %v, want %v", got, want)
	}

	want = 20*math.Log10(10) + 20*math.Log10(500) + 32.44
	if got := FreeSpacePathLossDB(10, 500); math.Abs(got-want) > 1e-9 {
		t.Errorf("FSPL(10 km, 500 MHz) = %v, want %v", got, want)
	}
}

func TestFreeSpacePathLossDB_SentinelOnDegenerateInputs(t *testing.T) {
	cases := []struct {
		name    string
		distKm  float64
		freqMHz float64
	}{
		{"zero distance", 0, 100},
		{"negative distance", -1, 100},
		{"zero frequency", 1, 0},
		{"negative frequency", 1, -100},
	}
	for _, tc := range cases {
		if got := FreeSpacePathLossDB(tc.distKm, tc.freqMHz); !math.IsInf(got, 1) {
			t.Errorf("%s: FSPL = %v, want +Inf", tc.name, got)
		}
	}
}

func TestReceivedPowerDBm_OneKilometre(t *testing.T) {
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 100, Position: Position{}}
	rxPos := Position{X: 1000}

	want := 30 - (20*math.Log10(1) + 20*math.Log10(100) + 32.44) // ≈ -22.44 dBm
	if got := ReceivedPowerDBm(tx, rxPos); math.Abs(got-want) > 1e-9 {
		t.Errorf("ReceivedPowerDBm = %v, want %v", got, want)
	}
}

func TestReceivedPowerDBm_SamePositionIsNegInf(t *testing.T) {
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 100, Position: Position{}}
	if got := ReceivedPowerDBm(tx, Position{}); !math.IsInf(got, -1) {
		t.Errorf("received power at zero distance = %v, want -Inf", got)
	}
}

func TestReceivedPowerDBm_MonotonicInDistanceAndFrequency(t *testing.T) {
	tx := RadioSource{PowerDBm: 30, FrequencyMHz: 300, Position: Position{}}

	near := ReceivedPowerDBm(tx, Position{X: 500})
	far := ReceivedPowerDBm(tx, Position{X: 2000})
	if near <= far {
		t.Errorf("received power should fall with distance: near %v, far %v", near, far)
	}

	higher := RadioSource{PowerDBm: 30, FrequencyMHz: 900, Position: Position{}}
	if lo, hi := ReceivedPowerDBm(tx, Position{X: 500}), ReceivedPowerDBm(higher, Position{X: 500}); lo <= hi {
		t.Errorf("received power should fall with frequency: 300 MHz %v, 900 MHz %v", lo, hi)
	}
}
