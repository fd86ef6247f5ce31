package resiligo

import (
	"sort"
	"sync"
	"time"
)

// Metrics tracks call outcomes for a single operation name.
// All mutation is serialized; Snapshot never observes a partial update.
type Metrics struct {
	mu              sync.Mutex
	totalCalls      uint64
	successfulCalls uint64
	failedCalls     uint64
	retryAttempts   uint64
	lastSuccess     time.Time
	lastFailure     time.Time
}

// MetricsView is a point-in-time snapshot safe to serialize to JSON.
// Timestamps are RFC3339 strings, empty until the first success/failure.
type MetricsView struct {
	TotalCalls      uint64 `json:"total_calls"`
	SuccessfulCalls uint64 `json:"successful_calls"`
	FailedCalls     uint64 `json:"failed_calls"`
	RetryAttempts   uint64 `json:"retry_attempts"`
	LastSuccess     string `json:"last_success,omitempty"`
	LastFailure     string `json:"last_failure,omitempty"`
}

func (m *Metrics) recordSuccess() {
	m.mu.Lock()
	m.totalCalls++
	m.successfulCalls++
	m.lastSuccess = time.Now().UTC()
	m.mu.Unlock()
}

func (m *Metrics) recordFailure() {
	m.mu.Lock()
	m.totalCalls++
	m.failedCalls++
	m.lastFailure = time.Now().UTC()
	m.mu.Unlock()
}

func (m *Metrics) recordRetry() {
	m.mu.Lock()
	m.retryAttempts++
	m.mu.Unlock()
}

func (m *Metrics) reset() {
	m.mu.Lock()
	m.totalCalls = 0
	m.successfulCalls = 0
	m.failedCalls = 0
	m.retryAttempts = 0
	m.lastSuccess = time.Time{}
	m.lastFailure = time.Time{}
	m.mu.Unlock()
}

// Snapshot returns a consistent copy of the counters.
func (m *Metrics) Snapshot() MetricsView {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := MetricsView{
		TotalCalls:      m.totalCalls,
		SuccessfulCalls: m.successfulCalls,
		FailedCalls:     m.failedCalls,
		RetryAttempts:   m.retryAttempts,
	}
	if !m.lastSuccess.IsZero() {
		v.LastSuccess = m.lastSuccess.Format(time.RFC3339)
	}
	if !m.lastFailure.IsZero() {
		v.LastFailure = m.lastFailure.Format(time.RFC3339)
	}
	return v
}

// SummaryView aggregates counts across every known operation and breaker.
type SummaryView struct {
	TotalOperations        int    `json:"total_operations"`
	TotalCircuitBreakers   int    `json:"total_circuit_breakers"`
	HealthyCircuitBreakers int    `json:"healthy_circuit_breakers"`
	Timestamp              string `json:"timestamp"`
}

// AllMetricsView is the full registry snapshot.
type AllMetricsView struct {
	Operations      map[string]MetricsView `json:"operations"`
	CircuitBreakers map[string]BreakerView `json:"circuit_breakers"`
	Summary         SummaryView            `json:"summary"`
	Timestamp       string                 `json:"timestamp"`
}

// GetMetrics returns the metrics for name, creating them on first access.
// Repeat calls for the same name return the same instance, so counters
// accumulate across calls.
func (o *Orchestrator) GetMetrics(name string) *Metrics {
	o.metricsMu.RLock()
	m, exists := o.metrics[name]
	o.metricsMu.RUnlock()

	if exists {
		return m
	}

	o.metricsMu.Lock()
	defer o.metricsMu.Unlock()

	// Double-check after acquiring write lock
	if m, exists = o.metrics[name]; exists {
		return m
	}

	m = &Metrics{}
	o.metrics[name] = m
	return m
}

// GetAllMetrics snapshots every known operation and circuit breaker.
func (o *Orchestrator) GetAllMetrics() AllMetricsView {
	now := time.Now().UTC().Format(time.RFC3339)

	o.metricsMu.RLock()
	ops := make(map[string]MetricsView, len(o.metrics))
	for name, m := range o.metrics {
		ops[name] = m.Snapshot()
	}
	o.metricsMu.RUnlock()

	o.breakerMu.RLock()
	breakers := make(map[string]BreakerView, len(o.breakers))
	healthy := 0
	for name, cb := range o.breakers {
		view := cb.View()
		breakers[name] = view
		if view.State != StateOpen {
			healthy++
		}
	}
	o.breakerMu.RUnlock()

	return AllMetricsView{
		Operations:      ops,
		CircuitBreakers: breakers,
		Summary: SummaryView{
			TotalOperations:        len(ops),
			TotalCircuitBreakers:   len(breakers),
			HealthyCircuitBreakers: healthy,
			Timestamp:              now,
		},
		Timestamp: now,
	}
}

// ResetMetrics zeroes the counters for one operation and its breaker.
// Breaker state is left untouched: resetting observability must not
// close an open circuit.
func (o *Orchestrator) ResetMetrics(name string) {
	o.metricsMu.RLock()
	m, exists := o.metrics[name]
	o.metricsMu.RUnlock()
	if exists {
		m.reset()
	}

	o.breakerMu.RLock()
	cb, exists := o.breakers[name]
	o.breakerMu.RUnlock()
	if exists {
		cb.metrics.reset()
	}
}

// ResetAll replaces every operation's and breaker's counters with fresh
// zeroed instances. Breaker state is preserved.
func (o *Orchestrator) ResetAll() {
	o.metricsMu.Lock()
	for name := range o.metrics {
		o.metrics[name] = &Metrics{}
	}
	o.metricsMu.Unlock()

	o.breakerMu.RLock()
	for _, cb := range o.breakers {
		cb.metrics.reset()
	}
	o.breakerMu.RUnlock()
}

// OperationNames returns the sorted names of all operations with metrics.
// Useful for monitoring and testing.
func (o *Orchestrator) OperationNames() []string {
	o.metricsMu.RLock()
	names := make([]string, 0, len(o.metrics))
	for name := range o.metrics {
		names = append(names, name)
	}
	o.metricsMu.RUnlock()

	sort.Strings(names)
	return names
}
