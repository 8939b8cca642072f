package core

import "math"

// Position is a 3D point in metres. It is a plain value type: constructed
// once per entity and never mutated.
type Position struct {
	X, Y, Z float64
}

// NewPosition validates that all coordinates are finite and returns the
// position. Coordinates may be any sign.
func NewPosition(x, y, z float64) (Position, error) {
	for _, c := range [...]struct {
		name  string
		value float64
	}{
		{"x", x},
		{"y", y},
		{"z", z},
	} {
		if !isFinite(c.value) {
			return Position{}, invalidParameter(c.name, c.value, "must be finite")
		}
	}
	return Position{X: x, Y: y, Z: z}, nil
}

// DistanceTo returns the straight-line distance to another position, in
// metres. Symmetric; zero iff the positions are component-wise equal.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
