package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the analysis service: the HTTP
// surface plus the evaluation and Monte Carlo engine counters.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Evaluations        prometheus.Counter
	MonteCarloRuns     prometheus.Counter
	MonteCarloFailures prometheus.Counter
	MonteCarloSamples  prometheus.Histogram
	MonteCarloDuration prometheus.Histogram
}

// NewCollector registers the service metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jars_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by path, method, and status code.",
	}, []string{"path", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "jars_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jars_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
	durations, err = registerHistogramVec(reg, durations, "jars_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	evaluations, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jars_evaluations_total",
		Help: "Total number of deterministic link evaluations served.",
	}), "jars_evaluations_total")
	if err != nil {
		return nil, err
	}

	mcRuns, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jars_montecarlo_runs_total",
		Help: "Total number of completed Monte Carlo runs.",
	}), "jars_montecarlo_runs_total")
	if err != nil {
		return nil, err
	}

	mcFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jars_montecarlo_failures_total",
		Help: "Total number of Monte Carlo runs aborted by validation or sampling errors.",
	}), "jars_montecarlo_failures_total")
	if err != nil {
		return nil, err
	}

	mcSamples, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jars_montecarlo_samples",
		Help:    "Sample count per Monte Carlo run.",
		Buckets: prometheus.ExponentialBuckets(10, 10, 6),
	}), "jars_montecarlo_samples")
	if err != nil {
		return nil, err
	}

	mcDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jars_montecarlo_duration_seconds",
		Help:    "Wall-clock duration of Monte Carlo runs in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}), "jars_montecarlo_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		HTTPRequests:       requests,
		HTTPDurations:      durations,
		Evaluations:        evaluations,
		MonteCarloRuns:     mcRuns,
		MonteCarloFailures: mcFailures,
		MonteCarloSamples:  mcSamples,
		MonteCarloDuration: mcDuration,
	}, nil
}

// ObserveEvaluation records one served deterministic evaluation.
func (c *Collector) ObserveEvaluation() {
	if c == nil || c.Evaluations == nil {
		return
	}
	c.Evaluations.Inc()
}

// ObserveMonteCarloRun records one completed Monte Carlo run.
func (c *Collector) ObserveMonteCarloRun(samples int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.MonteCarloRuns != nil {
		c.MonteCarloRuns.Inc()
	}
	if c.MonteCarloSamples != nil {
		c.MonteCarloSamples.Observe(float64(samples))
	}
	if c.MonteCarloDuration != nil {
		c.MonteCarloDuration.Observe(elapsed.Seconds())
	}
}

// ObserveMonteCarloFailure records an aborted Monte Carlo run.
func (c *Collector) ObserveMonteCarloFailure() {
	if c == nil || c.MonteCarloFailures == nil {
		return
	}
	c.MonteCarloFailures.Inc()
}

// Middleware records request counts and durations around next.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		if c == nil {
			return
		}
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(r.URL.Path, r.Method, fmt.Sprintf("%d", rec.statusCode)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
