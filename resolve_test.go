package resiligo_test

import (
	"context"
	"testing"

	"github.com/prilive-com/resiligo"
	"github.com/prilive-com/resiligo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolvedAttempts runs one always-failing call and reports how many times
// the operation was invoked, which exposes which config won resolution.
func resolvedAttempts(t *testing.T, orch *resiligo.Orchestrator, name string, opts resiligo.CallOptions) int {
	t.Helper()

	calls := 0
	_, err := resiligo.ExecuteWith(context.Background(), orch, name, opts,
		func(ctx context.Context) (string, error) {
			calls++
			return "", resiligo.Transient(assert.AnError)
		}, nil)
	require.Error(t, err)
	return calls
}

func TestResolve_DefaultIsBalanced(t *testing.T) {
	orch, _ := testutil.NewOrchestrator(t)

	// Balanced preset allows 3 attempts.
	attempts := resolvedAttempts(t, orch, "unregistered", resiligo.CallOptions{})
	assert.Equal(t, 3, attempts)
}

func TestResolve_RegisteredStrategyWins(t *testing.T) {
	orch, _ := testutil.NewOrchestrator(t)
	orch.RegisterOperation("translate", resiligo.StrategyAggressive)

	// Aggressive preset allows 5 attempts.
	attempts := resolvedAttempts(t, orch, "translate", resiligo.CallOptions{})
	assert.Equal(t, 5, attempts)
}

func TestResolve_ExplicitStrategyBeatsRegistration(t *testing.T) {
	orch, _ := testutil.NewOrchestrator(t)
	orch.RegisterOperation("translate", resiligo.StrategyAggressive)

	attempts := resolvedAttempts(t, orch, "translate", resiligo.CallOptions{
		Strategy: resiligo.StrategyBalanced,
	})
	assert.Equal(t, 3, attempts)
}

func TestResolve_CustomConfigBeatsEverything(t *testing.T) {
	orch, _ := testutil.NewOrchestrator(t)
	orch.RegisterOperation("translate", resiligo.StrategyAggressive)

	custom := testutil.NoJitterConfig(2)
	attempts := resolvedAttempts(t, orch, "translate", resiligo.CallOptions{
		Strategy: resiligo.StrategyConservative, // ignored: custom config wins
		Config:   &custom,
	})
	assert.Equal(t, 2, attempts)
}

func TestResolve_ReRegistrationOverwrites(t *testing.T) {
	orch, _ := testutil.NewOrchestrator(t)

	orch.RegisterOperation("translate", resiligo.StrategyAggressive)
	orch.RegisterOperation("translate", resiligo.StrategyBalanced)

	s, ok := orch.RegisteredStrategy("translate")
	require.True(t, ok)
	assert.Equal(t, resiligo.StrategyBalanced, s)

	attempts := resolvedAttempts(t, orch, "translate", resiligo.CallOptions{})
	assert.Equal(t, 3, attempts)
}
