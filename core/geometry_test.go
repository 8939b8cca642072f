package core

import (
	"math"
	"testing"
)

func TestNewPosition_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewPosition(bad, 0, 0); err == nil {
			t.Errorf("NewPosition(%v, 0, 0) accepted a non-finite coordinate", bad)
		}
	}

	if _, err := NewPosition(-1e9, 0, 1e9); err != nil {
		t.Errorf("NewPosition rejected finite coordinates: %v", err)
	}
}

func TestDistanceTo_KnownValues(t *testing.T) {
	a := Position{X: 0, Y: 0, Z: 0}
	b := Position{X: 3, Y: 4, Z: 0}
	if got := a.DistanceTo(b); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}

	c := Position{X: 0, Y: 0, Z: 10}
	if got := a.DistanceTo(c); got != 10 {
		t.Errorf("DistanceTo along z = %v, want 10", got)
	}
}

func TestDistanceTo_Symmetric(t *testing.T) {
	a := Position{X: -12.5, Y: 400, Z: 7}
	b := Position{X: 90, Y: -3, Z: 1000}
	if a.DistanceTo(b) != b.DistanceTo(a) {
		t.Errorf("distance not symmetric: %v vs %v", a.DistanceTo(b), b.DistanceTo(a))
	}
}

func TestDistanceTo_ZeroIffEqual(t *testing.T) {
	a := Position{X: 1, Y: 1, Z: 1}
	if got := a.DistanceTo(a); got != 0 {
		t.Errorf("distance to self = %v, want 0", got)
	}

	b := Position{X: 1, Y: 1, Z: 1.000001}
	if got := a.DistanceTo(b); got <= 0 {
		t.Errorf("distance between distinct points = %v, want > 0", got)
	}
}
