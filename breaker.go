package resiligo

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// State is the circuit breaker state as exposed in views.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// CircuitBreaker gates execution for a single operation name.
// It wraps a gobreaker state machine and owns its own Metrics, so
// failure-threshold tracking stays decoupled from the operation-level
// registry.
type CircuitBreaker struct {
	name    string
	cfg     BreakerConfig
	gb      *gobreaker.CircuitBreaker[any]
	metrics *Metrics

	mu             sync.Mutex
	lastTransition time.Time
}

// BreakerView is a point-in-time snapshot of one breaker.
type BreakerView struct {
	State                  State       `json:"state"`
	FailureThreshold       uint32      `json:"failure_threshold"`
	RecoveryTimeoutSeconds float64     `json:"recovery_timeout_seconds"`
	LastTransition         string      `json:"last_transition"`
	Metrics                MetricsView `json:"metrics"`
}

func newCircuitBreaker(name string, cfg BreakerConfig, logger *slog.Logger) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:           name,
		cfg:            cfg,
		metrics:        &Metrics{},
		lastTransition: time.Now().UTC(),
	}

	cb.gb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name: name,
		// One request through in half-open: the probe is serialized and
		// concurrent callers fail fast as if the breaker were still open.
		MaxRequests: 1,
		Timeout:     cfg.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			cb.mu.Lock()
			cb.lastTransition = time.Now().UTC()
			cb.mu.Unlock()
			logger.Info("circuit breaker state changed",
				"operation", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return cb
}

// execute runs fn under the breaker. An open breaker (or a half-open
// breaker whose probe slot is taken) rejects without running fn.
func (cb *CircuitBreaker) execute(fn func() error) error {
	_, err := cb.gb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return err
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() State {
	switch cb.gb.State() {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// Metrics returns the breaker's own metrics instance.
func (cb *CircuitBreaker) Metrics() *Metrics {
	return cb.metrics
}

// View returns a consistent snapshot of the breaker.
func (cb *CircuitBreaker) View() BreakerView {
	cb.mu.Lock()
	last := cb.lastTransition
	cb.mu.Unlock()

	return BreakerView{
		State:                  cb.State(),
		FailureThreshold:       cb.cfg.FailureThreshold,
		RecoveryTimeoutSeconds: cb.cfg.RecoveryTimeout.Seconds(),
		LastTransition:         last.Format(time.RFC3339),
		Metrics:                cb.metrics.Snapshot(),
	}
}

// getBreaker returns the breaker for name, creating it lazily with cfg.
// The first caller's config wins; breakers live for the orchestrator's
// lifetime.
func (o *Orchestrator) getBreaker(name string, cfg BreakerConfig) *CircuitBreaker {
	o.breakerMu.RLock()
	cb, exists := o.breakers[name]
	o.breakerMu.RUnlock()

	if exists {
		return cb
	}

	o.breakerMu.Lock()
	defer o.breakerMu.Unlock()

	// Double-check after acquiring write lock
	if cb, exists = o.breakers[name]; exists {
		return cb
	}

	cb = newCircuitBreaker(name, cfg, o.logger)
	o.breakers[name] = cb
	return cb
}
