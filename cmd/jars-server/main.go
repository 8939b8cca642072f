package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/jars-simulator/internal/api"
	"github.com/signalsfoundry/jars-simulator/internal/logging"
	"github.com/signalsfoundry/jars-simulator/internal/observability"
)

func main() {
	httpAddr := flag.String("http-addr", ":8080", "TCP address the analysis HTTP server listens on")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	server := api.NewServer(*httpAddr, collector, log)

	log.Info(ctx, "starting JARS analysis server", logging.String("addr", *httpAddr))
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down JARS analysis server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.HTTPServer().Shutdown(shutdownCtx)

	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}
