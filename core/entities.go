package core

// RadioSource is an emitter with a transmit power, carrier frequency and
// position. The legitimate transmitter and the jammer share this shape; the
// role comes from context, not from a subtype.
type RadioSource struct {
	PowerDBm     float64
	FrequencyMHz float64
	Position     Position
}

// Receiver is a radio receiver with a detection sensitivity and position.
// SensitivityDBm is the minimum received power at which a signal counts as
// detectable.
type Receiver struct {
	SensitivityDBm float64
	Position       Position
}

// NewRadioSource validates the raw fields and returns a RadioSource.
// FrequencyMHz must be > 0 for a physically meaningful path loss.
func NewRadioSource(powerDBm, frequencyMHz float64, pos Position) (RadioSource, error) {
	if !isFinite(powerDBm) {
		return RadioSource{}, invalidParameter("power_dbm", powerDBm, "must be finite")
	}
	if !isFinite(frequencyMHz) || frequencyMHz <= 0 {
		return RadioSource{}, invalidParameter("frequency_mhz", frequencyMHz, "must be finite and > 0")
	}
	return RadioSource{PowerDBm: powerDBm, FrequencyMHz: frequencyMHz, Position: pos}, nil
}

// NewReceiver validates the raw fields and returns a Receiver.
func NewReceiver(sensitivityDBm float64, pos Position) (Receiver, error) {
	if !isFinite(sensitivityDBm) {
		return Receiver{}, invalidParameter("sensitivity_dbm", sensitivityDBm, "must be finite")
	}
	return Receiver{SensitivityDBm: sensitivityDBm, Position: pos}, nil
}
