package metrics_test

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/metrics"
	"github.com/katalvlaran/transship/network"
	"github.com/katalvlaran/transship/simplex"
)

func TestInstrument_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	calls := 0
	stub := lp.SolverFunc(func(context.Context, *lp.Model) (*lp.Solution, error) {
		calls++
		switch calls {
		case 1:
			return &lp.Solution{Status: lp.StatusInfeasible}, nil
		case 2:
			return nil, lp.ErrInvalidModel
		default:
			return &lp.Solution{Status: lp.StatusOptimal}, nil
		}
	})
	s, err := metrics.Instrument(stub, reg)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, _ = s.Solve(context.Background(), &lp.Model{})
	}

	counts, err := metrics.Counts(reg)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Infeasible": 1, "Error": 1, "Optimal": 2}, counts)

	n, err := testutil.GatherAndCount(reg, metrics.SolveDuration)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInstrument_PassesThrough(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := metrics.Instrument(simplex.New(), reg)
	require.NoError(t, err)

	ref := network.Reference()
	f, err := ref.Topology.Build(ref.Costs, nil)
	require.NoError(t, err)

	sol, err := s.Solve(context.Background(), f.Model())
	require.NoError(t, err)
	assert.Equal(t, lp.StatusOptimal, sol.Status)
	assert.InDelta(t, 15500, sol.Objective, 1e-6)

	counts, err := metrics.Counts(reg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, counts["Optimal"])
}

func TestInstrument_SharesCollectorsOnOneRegistry(t *testing.T) {
	reg := metrics.NewRegistry()
	ok := lp.SolverFunc(func(context.Context, *lp.Model) (*lp.Solution, error) {
		return &lp.Solution{Status: lp.StatusOptimal}, nil
	})
	a, err := metrics.Instrument(ok, reg)
	require.NoError(t, err)
	b, err := metrics.Instrument(ok, reg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = a.Solve(context.Background(), nil) }()
		go func() { defer wg.Done(); _, _ = b.Solve(context.Background(), nil) }()
	}
	wg.Wait()

	counts, err := metrics.Counts(reg)
	require.NoError(t, err)
	assert.Equal(t, 20.0, counts["Optimal"])
}

func TestInstrument_RejectsConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: metrics.SolvesTotal, Help: "clash"}))

	_, err := metrics.Instrument(simplex.New(), reg)
	require.Error(t, err)
}
