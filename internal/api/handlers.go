package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/jars-simulator/core"
	"github.com/signalsfoundry/jars-simulator/internal/logging"
	"github.com/signalsfoundry/jars-simulator/internal/observability"
	"github.com/signalsfoundry/jars-simulator/sampling"
)

type handlers struct {
	collector *observability.Collector
	log       logging.Logger
}

type positionBody struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type radioSourceBody struct {
	PowerDBm     float64      `json:"power_dbm"`
	FrequencyMHz float64      `json:"frequency_mhz"`
	Position     positionBody `json:"position"`
}

type receiverBody struct {
	SensitivityDBm float64      `json:"sensitivity_dbm"`
	Position       positionBody `json:"position"`
}

type evaluateRequest struct {
	Transmitter   radioSourceBody `json:"transmitter"`
	Jammer        radioSourceBody `json:"jammer"`
	Receiver      receiverBody    `json:"receiver"`
	JSThresholdDB float64         `json:"js_threshold_db"`
}

type evaluateResponse struct {
	JSRatioDB            float64 `json:"js_ratio_db"`
	TxReceivedDBm        float64 `json:"tx_received_dbm"`
	JamReceivedDBm       float64 `json:"jam_received_dbm"`
	CommunicationSuccess bool    `json:"communication_success"`
	JammingSuccess       bool    `json:"jamming_success"`
}

type monteCarloResponse struct {
	RunID   string  `json:"run_id"`
	Samples int     `json:"samples"`
	Seed    uint64  `json:"seed"`
	Mean    float64 `json:"mean"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`

	JSSamples []float64 `json:"js_samples,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tx, err := req.Transmitter.toRadioSource()
	if err != nil {
		writeError(w, http.StatusBadRequest, "transmitter: "+err.Error())
		return
	}
	jammer, err := req.Jammer.toRadioSource()
	if err != nil {
		writeError(w, http.StatusBadRequest, "jammer: "+err.Error())
		return
	}
	rx, err := req.Receiver.toReceiver()
	if err != nil {
		writeError(w, http.StatusBadRequest, "receiver: "+err.Error())
		return
	}

	result := core.EvaluateScenario(tx, jammer, rx, req.JSThresholdDB)
	h.collector.ObserveEvaluation()

	h.log.Debug(ctx, "evaluated scenario",
		logging.Float64("js_ratio_db", result.JSRatioDB),
		logging.Bool("communication_success", result.CommunicationSuccess),
	)

	writeJSON(w, http.StatusOK, evaluateResponse{
		JSRatioDB:            result.JSRatioDB,
		TxReceivedDBm:        result.TxReceivedDBm,
		JamReceivedDBm:       result.JamReceivedDBm,
		CommunicationSuccess: result.CommunicationSuccess,
		JammingSuccess: core.IsJammingSuccessful(
			result.JSRatioDB, req.JSThresholdDB,
			result.TxReceivedDBm, rx.SensitivityDBm,
		),
	})
}

func (h *handlers) monteCarlo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := core.LoadScenario(r.Body)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	seed := scenario.Seed
	if !scenario.HasSeed {
		seed = uint64(time.Now().UnixNano())
	}

	engine, err := scenario.NewEngine(sampling.NewSource(seed))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	runID := uuid.NewString()
	runCtx, span := startChildSpan(ctx, "montecarlo.run",
		attribute.String("run_id", runID),
		attribute.Int("samples", scenario.Samples),
	)

	start := time.Now()
	result, err := engine.Run(scenario.Samples)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.End()
		h.collector.ObserveMonteCarloFailure()
		writeError(w, statusForError(err), err.Error())
		return
	}
	span.End()

	h.collector.ObserveMonteCarloRun(scenario.Samples, elapsed)
	h.log.Info(runCtx, "monte carlo run complete",
		logging.String("run_id", runID),
		logging.Int("samples", scenario.Samples),
		logging.Float64("mean_js_db", result.Mean),
		logging.Float64("p90_js_db", result.P90),
		logging.String("duration", elapsed.String()),
	)

	resp := monteCarloResponse{
		RunID:   runID,
		Samples: len(result.JSSamples),
		Seed:    seed,
		Mean:    result.Mean,
		P50:     result.P50,
		P90:     result.P90,
	}
	if r.URL.Query().Get("include_samples") == "true" {
		resp.JSSamples = result.JSSamples
	}
	writeJSON(w, http.StatusOK, resp)
}

func (b radioSourceBody) toRadioSource() (core.RadioSource, error) {
	pos, err := core.NewPosition(b.Position.X, b.Position.Y, b.Position.Z)
	if err != nil {
		return core.RadioSource{}, err
	}
	return core.NewRadioSource(b.PowerDBm, b.FrequencyMHz, pos)
}

func (b receiverBody) toReceiver() (core.Receiver, error) {
	pos, err := core.NewPosition(b.Position.X, b.Position.Y, b.Position.Z)
	if err != nil {
		return core.Receiver{}, err
	}
	return core.NewReceiver(b.SensitivityDBm, pos)
}

// statusForError maps the core error taxonomy onto HTTP status codes:
// caller mistakes are 400s, a failing sampling backend is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidParameter),
		errors.Is(err, sampling.ErrInvalidDistribution):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrSampling):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
