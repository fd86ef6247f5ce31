package prom_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/resiligo"
	"github.com/prilive-com/resiligo/prom"
	itestutil "github.com/prilive-com/resiligo/internal/testutil"
)

func TestCollector_OperationCounters(t *testing.T) {
	orch, _ := itestutil.NewOrchestrator(t)
	cfg := resiligo.Config{EnableRetry: false, EnableBreaker: false}
	opts := resiligo.CallOptions{Config: &cfg}

	_, err := resiligo.ExecuteWith(context.Background(), orch, "demo", opts,
		func(ctx context.Context) (string, error) { return "ok", nil }, nil)
	require.NoError(t, err)

	_, err = resiligo.ExecuteWith(context.Background(), orch, "demo", opts,
		func(ctx context.Context) (string, error) { return "", errors.New("boom") }, nil)
	require.Error(t, err)

	expected := `
# HELP resiligo_healthy 1 when no circuit breaker is open.
# TYPE resiligo_healthy gauge
resiligo_healthy 1
# HELP resiligo_operation_calls_total Total orchestrated calls by operation and result.
# TYPE resiligo_operation_calls_total counter
resiligo_operation_calls_total{operation="demo",result="failure"} 1
resiligo_operation_calls_total{operation="demo",result="success"} 1
# HELP resiligo_operation_retry_attempts_total Total retry attempts by operation.
# TYPE resiligo_operation_retry_attempts_total counter
resiligo_operation_retry_attempts_total{operation="demo"} 0
`

	err = testutil.CollectAndCompare(prom.NewCollector(orch), strings.NewReader(expected),
		"resiligo_healthy",
		"resiligo_operation_calls_total",
		"resiligo_operation_retry_attempts_total",
	)
	require.NoError(t, err)
}

func TestCollector_BreakerStateGauge(t *testing.T) {
	orch := itestutil.NewBreakerOrchestrator(t)
	cfg := itestutil.FastBreakerConfig(1)
	opts := resiligo.CallOptions{Config: &cfg}

	_, err := resiligo.ExecuteWith(context.Background(), orch, "guarded", opts,
		func(ctx context.Context) (string, error) { return "", errors.New("boom") }, nil)
	require.Error(t, err)

	expected := `
# HELP resiligo_circuit_breaker_state Circuit breaker state: 0 closed, 1 half-open, 2 open.
# TYPE resiligo_circuit_breaker_state gauge
resiligo_circuit_breaker_state{operation="guarded"} 2
# HELP resiligo_healthy 1 when no circuit breaker is open.
# TYPE resiligo_healthy gauge
resiligo_healthy 0
`

	err = testutil.CollectAndCompare(prom.NewCollector(orch), strings.NewReader(expected),
		"resiligo_circuit_breaker_state",
		"resiligo_healthy",
	)
	require.NoError(t, err)
}

func TestCollector_Lint(t *testing.T) {
	orch, _ := itestutil.NewOrchestrator(t)

	problems, err := testutil.CollectAndLint(prom.NewCollector(orch))
	require.NoError(t, err)
	require.Empty(t, problems)
}
