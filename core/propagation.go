package core

import "math"

// FreeSpacePathLossDB returns the free-space path loss in dB:
//
//	20 log10(d_km) + 20 log10(f_MHz) + 32.44
//
// A non-positive distance or frequency yields +Inf. That is a deliberate
// sentinel: a source at the receiver's own location (or with an invalid
// carrier) produces no usable signal once combined with ReceivedPowerDBm,
// which turns the +Inf loss into -Inf dBm received power.
func FreeSpacePathLossDB(distanceKm, frequencyMHz float64) float64 {
	if distanceKm <= 0 || frequencyMHz <= 0 {
		return math.Inf(1)
	}
	return 20*math.Log10(distanceKm) + 20*math.Log10(frequencyMHz) + 32.44
}

// ReceivedPowerDBm returns the power received from src at the given position,
// in dBm. Strictly decreasing in distance and (above 1 MHz) in frequency;
// -Inf at zero distance per the FSPL sentinel.
func ReceivedPowerDBm(src RadioSource, at Position) float64 {
	distanceKm := src.Position.DistanceTo(at) / 1000.0
	return src.PowerDBm - FreeSpacePathLossDB(distanceKm, src.FrequencyMHz)
}
