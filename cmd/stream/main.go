// Package main serves the intraday telemetry dataset as a live WebSocket
// feed, replaying rows at an accelerated clock, with Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mushroom-demand-lab/internal/config"
	"mushroom-demand-lab/internal/generator"
	"mushroom-demand-lab/internal/observability"
	"mushroom-demand-lab/internal/stream"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address for /ws and /metrics")
	seed := flag.Int64("seed", 1, "Random seed for the telemetry dataset")
	interval := flag.Duration("interval", time.Second, "Replay interval between telemetry frames")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, shutting down...\n", sig)
		cancel()
	}()

	cfg := config.DefaultGeneration(time.Now())
	cfg.Seed = *seed
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Generate the telemetry window up front; the feed replays it.
	buf := &generator.TelemetryBuffer{}
	gen := generator.NewIntraday(generator.IntradayOptions{Config: cfg})
	count, err := gen.Run(ctx, buf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d telemetry rows, serving on %s\n", count, *addr)

	metrics := observability.NewMetrics("")
	hub := stream.NewHub(metrics)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", observability.Handler())

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			cancel()
		}
	}()

	// Replay the dataset in a loop until shutdown.
	for ctx.Err() == nil {
		if err := stream.Replay(ctx, hub, buf.Rows, *interval); err != nil {
			break
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	hub.Close()
}
