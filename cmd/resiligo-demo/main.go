// Command resiligo-demo exercises the orchestrator against a simulated
// flaky backend and prints the resulting metrics and health snapshots.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prilive-com/resiligo"
	"github.com/prilive-com/resiligo/prom"
)

var (
	calls       = flag.Int("calls", 50, "Number of calls to make per operation")
	failureRate = flag.Float64("failure-rate", 0.4, "Probability that a backend call fails")
	strategy    = flag.String("strategy", "", "Per-call strategy override: aggressive, balanced, conservative")
	listen      = flag.String("listen", "", "Serve Prometheus metrics on this address (e.g. :9090) and block")
	seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed for the flaky backend")
)

var errBackendBusy = errors.New("backend busy")

func main() {
	flag.Parse()

	logLevel := slog.LevelInfo
	if os.Getenv("RESILIGO_LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := resiligo.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	orch := resiligo.New(resiligo.WithLogger(logger))
	orch.RegisterOperation("chat-completion", resiligo.StrategyBalanced)
	orch.RegisterOperation("embeddings", resiligo.StrategyConservative)

	logger.Info("resiligo-demo starting",
		"calls", *calls,
		"failure_rate", *failureRate,
		"strategy", *strategy,
		"max_attempts", cfg.Retry.MaxAttempts,
	)

	rng := rand.New(rand.NewSource(*seed))
	opts := resiligo.CallOptions{Strategy: resiligo.Strategy(*strategy)}

	ctx := context.Background()
	for _, op := range []string{"chat-completion", "embeddings"} {
		runOperation(ctx, logger, orch, rng, op, opts)
	}

	printSnapshot(orch)

	if *listen != "" {
		serveMetrics(logger, orch, *listen)
	}
}

// runOperation fires the configured number of calls at a flaky backend,
// falling back to a canned response on terminal failures.
func runOperation(ctx context.Context, logger *slog.Logger, orch *resiligo.Orchestrator, rng *rand.Rand, op string, opts resiligo.CallOptions) {
	backend := func(ctx context.Context) (string, error) {
		if rng.Float64() < *failureRate {
			return "", resiligo.Transient(errBackendBusy)
		}
		return "ok", nil
	}

	fallback := func(ctx context.Context, cause error) (string, error) {
		logger.Debug("fallback engaged", "operation", op, "cause", cause)
		return "degraded", nil
	}

	degraded := 0
	for i := 0; i < *calls; i++ {
		result, err := resiligo.ExecuteWith(ctx, orch, op, opts, backend, fallback)
		if err != nil {
			logger.Error("call failed", "operation", op, "error", err)
			continue
		}
		if result == "degraded" {
			degraded++
		}
	}

	logger.Info("operation finished", "operation", op, "calls", *calls, "degraded", degraded)
}

func printSnapshot(orch *resiligo.Orchestrator) {
	all := orch.GetAllMetrics()
	health := orch.Health()

	out, _ := json.MarshalIndent(map[string]any{
		"metrics": all,
		"health":  health,
	}, "", "  ")
	fmt.Println(string(out))
}

func serveMetrics(logger *slog.Logger, orch *resiligo.Orchestrator, addr string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prom.NewCollector(orch))

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("metrics server failed", "error", err)
		os.Exit(1)
	}
}
