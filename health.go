package resiligo

import (
	"sort"
	"time"
)

// HealthStatus summarizes circuit breaker state across the orchestrator.
// Every known breaker lands in exactly one of the two name lists, or in
// neither when closed.
type HealthStatus struct {
	Healthy                 bool     `json:"healthy"`
	OpenCircuitBreakers     []string `json:"open_circuit_breakers"`
	HalfOpenCircuitBreakers []string `json:"half_open_circuit_breakers"`
	TotalCircuitBreakers    int      `json:"total_circuit_breakers"`
	TotalOperations         int      `json:"total_operations"`
	Timestamp               string   `json:"timestamp"`
}

// IsHealthy reports whether no breaker is open. Half-open breakers count
// as healthy: a system in active recovery is still reachable. With zero
// breakers the orchestrator is healthy by definition.
func (o *Orchestrator) IsHealthy() bool {
	o.breakerMu.RLock()
	defer o.breakerMu.RUnlock()

	for _, cb := range o.breakers {
		if cb.State() == StateOpen {
			return false
		}
	}
	return true
}

// Health returns the full health snapshot.
func (o *Orchestrator) Health() HealthStatus {
	open := []string{}
	halfOpen := []string{}

	o.breakerMu.RLock()
	total := len(o.breakers)
	for name, cb := range o.breakers {
		switch cb.State() {
		case StateOpen:
			open = append(open, name)
		case StateHalfOpen:
			halfOpen = append(halfOpen, name)
		}
	}
	o.breakerMu.RUnlock()

	sort.Strings(open)
	sort.Strings(halfOpen)

	o.metricsMu.RLock()
	totalOps := len(o.metrics)
	o.metricsMu.RUnlock()

	return HealthStatus{
		Healthy:                 len(open) == 0,
		OpenCircuitBreakers:     open,
		HalfOpenCircuitBreakers: halfOpen,
		TotalCircuitBreakers:    total,
		TotalOperations:         totalOps,
		Timestamp:               time.Now().UTC().Format(time.RFC3339),
	}
}
