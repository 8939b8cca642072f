// Package api exposes the link evaluator and Monte Carlo engine as a small
// JSON-over-HTTP surface for presentation-layer clients.
package api

import (
	"net/http"
	"time"

	"github.com/signalsfoundry/jars-simulator/internal/logging"
	"github.com/signalsfoundry/jars-simulator/internal/observability"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
}

// NewServer wires routes, middleware, metrics, and tracing into an HTTP
// server listening on addr.
func NewServer(addr string, collector *observability.Collector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}

	h := &handlers{collector: collector, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/evaluate", h.evaluate)
	mux.HandleFunc("POST /v1/montecarlo", h.monteCarlo)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	// Middleware chain: metrics -> request-id logging -> tracing -> mux.
	var handler http.Handler = mux
	handler = tracingMiddleware(handler)
	handler = requestLogMiddleware(log)(handler)
	handler = collector.Middleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// HTTPServer returns the underlying *http.Server for external control.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Handler returns the full middleware-wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func requestLogMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, reqLog := logging.WithRequestLogger(r.Context(), log)
			start := time.Now()

			next.ServeHTTP(w, r.WithContext(ctx))

			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				return
			}
			reqLog.Info(ctx, "handled request",
				logging.String("path", r.URL.Path),
				logging.String("method", r.Method),
				logging.String("duration", time.Since(start).String()),
			)
		})
	}
}
