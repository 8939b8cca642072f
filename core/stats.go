package core

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// percentile returns the p-th percentile (p in [0,1]) of sorted using linear
// interpolation between order statistics: h = (len-1)*p, interpolate between
// sorted[floor(h)] and sorted[ceil(h)].
//
// gonum's stat.Quantile offers the empirical and the n*p interpolation
// definitions only, neither of which matches this one, so it is computed
// directly here.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(h)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// summarize computes mean, median and 90th percentile over samples without
// modifying the input slice.
func summarize(samples []float64) (mean, p50, p90 float64) {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	// A zero-variance batch must report the constant itself; summing n
	// copies and dividing can be off by an ulp.
	if sorted[0] == sorted[len(sorted)-1] {
		return sorted[0], sorted[0], sorted[0]
	}

	return stat.Mean(samples, nil), percentile(sorted, 0.50), percentile(sorted, 0.90)
}
