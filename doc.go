// Package resiligo wraps calls to unreliable backends with configurable
// retry, circuit breaking, rate limiting, metrics, and fallback semantics.
//
// resiligo is a pure in-process library: it owns no network or file I/O.
// Operations are arbitrary callables identified by name; the name is the
// sole key partitioning metrics and circuit breaker state.
//
// # Quick Start
//
//	orch := resiligo.New()
//	orch.RegisterOperation("embeddings", resiligo.StrategyConservative)
//
//	result, err := resiligo.Execute(ctx, orch, "embeddings",
//	    func(ctx context.Context) ([]float32, error) {
//	        return backend.Embed(ctx, text)
//	    })
//
// # Overrides and Fallbacks
//
// Per-call strategy or full custom config, plus a degraded-mode fallback:
//
//	result, err := resiligo.ExecuteWith(ctx, orch, "chat",
//	    resiligo.CallOptions{Strategy: resiligo.StrategyAggressive},
//	    primary,
//	    func(ctx context.Context, cause error) (string, error) {
//	        return cachedAnswer, nil
//	    })
//
// # Error Classification
//
// Errors are partitioned into transient (retried) and permanent (failed
// immediately). Mark errors with Transient/Permanent, or install a custom
// Classifier for an existing error hierarchy.
//
// # Features
//
//   - Circuit breaker with sony/gobreaker, one per operation name
//   - Retry with exponential backoff and crypto jitter
//   - Named strategy presets: aggressive, balanced, conservative
//   - Per-operation rate limiting with golang.org/x/time/rate
//   - Thread-safe per-operation metrics with snapshot reads
//   - Health aggregation over circuit breaker state
//   - Prometheus bridge in the prom subpackage
//   - Structured logging with slog
package resiligo
