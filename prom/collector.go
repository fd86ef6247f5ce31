package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prilive-com/resiligo"
)

// Collector bridges an orchestrator's metrics registry into Prometheus.
// Each Collect call takes a consistent snapshot via GetAllMetrics, so
// scrapes never observe torn counters.
type Collector struct {
	orch *resiligo.Orchestrator

	opCalls      *prometheus.Desc
	opRetries    *prometheus.Desc
	breakerCalls *prometheus.Desc
	breakerState *prometheus.Desc
	healthy      *prometheus.Desc
}

// NewCollector creates a Collector over orch.
func NewCollector(orch *resiligo.Orchestrator) *Collector {
	return &Collector{
		orch: orch,
		opCalls: prometheus.NewDesc(
			"resiligo_operation_calls_total",
			"Total orchestrated calls by operation and result.",
			[]string{"operation", "result"}, nil,
		),
		opRetries: prometheus.NewDesc(
			"resiligo_operation_retry_attempts_total",
			"Total retry attempts by operation.",
			[]string{"operation"}, nil,
		),
		breakerCalls: prometheus.NewDesc(
			"resiligo_circuit_breaker_calls_total",
			"Calls recorded by each circuit breaker, by result.",
			[]string{"operation", "result"}, nil,
		),
		breakerState: prometheus.NewDesc(
			"resiligo_circuit_breaker_state",
			"Circuit breaker state: 0 closed, 1 half-open, 2 open.",
			[]string{"operation"}, nil,
		),
		healthy: prometheus.NewDesc(
			"resiligo_healthy",
			"1 when no circuit breaker is open.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.opCalls
	ch <- c.opRetries
	ch <- c.breakerCalls
	ch <- c.breakerState
	ch <- c.healthy
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	all := c.orch.GetAllMetrics()

	for name, m := range all.Operations {
		ch <- prometheus.MustNewConstMetric(c.opCalls, prometheus.CounterValue,
			float64(m.SuccessfulCalls), name, "success")
		ch <- prometheus.MustNewConstMetric(c.opCalls, prometheus.CounterValue,
			float64(m.FailedCalls), name, "failure")
		ch <- prometheus.MustNewConstMetric(c.opRetries, prometheus.CounterValue,
			float64(m.RetryAttempts), name)
	}

	for name, b := range all.CircuitBreakers {
		ch <- prometheus.MustNewConstMetric(c.breakerCalls, prometheus.CounterValue,
			float64(b.Metrics.SuccessfulCalls), name, "success")
		ch <- prometheus.MustNewConstMetric(c.breakerCalls, prometheus.CounterValue,
			float64(b.Metrics.FailedCalls), name, "failure")
		ch <- prometheus.MustNewConstMetric(c.breakerState, prometheus.GaugeValue,
			stateValue(b.State), name)
	}

	healthy := 0.0
	if c.orch.IsHealthy() {
		healthy = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

func stateValue(s resiligo.State) float64 {
	switch s {
	case resiligo.StateOpen:
		return 2
	case resiligo.StateHalfOpen:
		return 1
	default:
		return 0
	}
}

// Verify interface compliance.
var _ prometheus.Collector = (*Collector)(nil)
