// Package sampling provides distribution-backed implementations of the
// engine's sampling capability. Each constructor returns a *Distribution
// whose Sample method draws a batch of independent values; randomness comes
// from an injectable source so that runs are reproducible under a seed.
package sampling

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidDistribution marks distribution parameters that cannot describe
// a sampleable distribution.
var ErrInvalidDistribution = errors.New("invalid distribution")

// NewSource returns a seeded random source. Two sources built from the same
// seed drive identical sample sequences.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// rander is the part of a gonum distuv distribution the Distribution needs.
type rander interface {
	Rand() float64
}

// Distribution draws batches of independent values from one continuous
// distribution (or a constant).
type Distribution struct {
	rv rander
}

// Sample draws n independent values. n < 1 is an error.
func (d *Distribution) Sample(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count %d, want >= 1", ErrInvalidDistribution, n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.rv.Rand()
	}
	return out, nil
}

type constant float64

func (c constant) Rand() float64 { return float64(c) }

// Fixed returns a zero-variance sampler that always yields value.
func Fixed(value float64) (*Distribution, error) {
	if !finite(value) {
		return nil, fmt.Errorf("%w: fixed value %v is not finite", ErrInvalidDistribution, value)
	}
	return &Distribution{rv: constant(value)}, nil
}

// Normal returns a Gaussian sampler with the given mean and standard
// deviation. A zero stddev degrades to the constant sampler; a negative or
// non-finite parameter is an error. src may be nil, in which case the global
// source is used (seeded runs should always pass one).
func Normal(mean, stddev float64, src rand.Source) (*Distribution, error) {
	if !finite(mean) || !finite(stddev) {
		return nil, fmt.Errorf("%w: normal(%v, %v) has non-finite parameters", ErrInvalidDistribution, mean, stddev)
	}
	if stddev < 0 {
		return nil, fmt.Errorf("%w: normal stddev %v is negative", ErrInvalidDistribution, stddev)
	}
	if stddev == 0 {
		return Fixed(mean)
	}
	return &Distribution{rv: distuv.Normal{Mu: mean, Sigma: stddev, Src: src}}, nil
}

// Uniform returns a sampler drawing uniformly from [min, max). Equal bounds
// degrade to the constant sampler; max < min or a non-finite bound is an
// error.
func Uniform(min, max float64, src rand.Source) (*Distribution, error) {
	if !finite(min) || !finite(max) {
		return nil, fmt.Errorf("%w: uniform(%v, %v) has non-finite bounds", ErrInvalidDistribution, min, max)
	}
	if max < min {
		return nil, fmt.Errorf("%w: uniform bounds inverted (min %v > max %v)", ErrInvalidDistribution, min, max)
	}
	if max == min {
		return Fixed(min)
	}
	return &Distribution{rv: distuv.Uniform{Min: min, Max: max, Src: src}}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
