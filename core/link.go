package core

// SimulationResult is the outcome of one deterministic link evaluation.
type SimulationResult struct {
	JSRatioDB            float64
	TxReceivedDBm        float64
	JamReceivedDBm       float64
	CommunicationSuccess bool
}

// JSRatioDB returns the Jammer-to-Signal power ratio in dB at the receiver's
// position: received jammer power minus received signal power.
func JSRatioDB(jammer, transmitter RadioSource, rx Receiver) float64 {
	jamRecv := ReceivedPowerDBm(jammer, rx.Position)
	sigRecv := ReceivedPowerDBm(transmitter, rx.Position)
	return jamRecv - sigRecv
}

// IsCommunicationSuccessful reports whether the link survives: the signal
// must be detectable (signalDBm >= sensitivityDBm, inclusive) and the J/S
// ratio must not exceed the threshold. Jamming has to exceed the threshold
// strictly to block the link; equality still succeeds.
func IsCommunicationSuccessful(signalDBm, sensitivityDBm, jsDB, jsThresholdDB float64) bool {
	if signalDBm < sensitivityDBm {
		return false // signal too weak to be received at all
	}
	if jsDB > jsThresholdDB {
		return false // jamming overwhelms the link
	}
	return true
}

// IsJammingSuccessful reports whether the jammer blocked an otherwise working
// link. A signal below sensitivity cannot be jammed: there is no link to
// disrupt. Given a detectable signal, exactly one of IsJammingSuccessful and
// IsCommunicationSuccessful holds.
func IsJammingSuccessful(jsDB, jsThresholdDB, signalDBm, sensitivityDBm float64) bool {
	if signalDBm < sensitivityDBm {
		return false
	}
	return jsDB > jsThresholdDB
}

// EvaluateScenario runs one full deterministic evaluation: received powers,
// J/S ratio, and the communication verdict. Pure function, no side effects.
func EvaluateScenario(transmitter, jammer RadioSource, rx Receiver, jsThresholdDB float64) SimulationResult {
	txRecv := ReceivedPowerDBm(transmitter, rx.Position)
	jamRecv := ReceivedPowerDBm(jammer, rx.Position)
	js := jamRecv - txRecv
	return SimulationResult{
		JSRatioDB:            js,
		TxReceivedDBm:        txRecv,
		JamReceivedDBm:       jamRecv,
		CommunicationSuccess: IsCommunicationSuccessful(txRecv, rx.SensitivityDBm, js, jsThresholdDB),
	}
}

// ReceivedPowers returns the received transmitter and jammer powers at the
// receiver, for callers that only need the two power figures.
func ReceivedPowers(transmitter, jammer RadioSource, rx Receiver) (txDBm, jamDBm float64) {
	return ReceivedPowerDBm(transmitter, rx.Position), ReceivedPowerDBm(jammer, rx.Position)
}
