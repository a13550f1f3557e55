package sensitivity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
	"github.com/katalvlaran/transship/sensitivity"
	"github.com/katalvlaran/transship/simplex"
)

func arc(from, to string) network.ArcID { return network.ArcID{From: from, To: to} }

// coef returns the objective coefficient of variable v in m.
func coef(m *lp.Model, v string) float64 {
	for _, t := range m.Objective {
		if t.Var == v {
			return t.Coef
		}
	}

	return 0
}

// countingSolver wraps the gonum backend, counts calls and reports
// Undetermined whenever fail(m) holds.
type countingSolver struct {
	inner lp.Solver
	fail  func(m *lp.Model) bool
	calls atomic.Int64
}

func newCounting(fail func(m *lp.Model) bool) *countingSolver {
	return &countingSolver{inner: simplex.New(), fail: fail}
}

func (s *countingSolver) Solve(ctx context.Context, m *lp.Model) (*lp.Solution, error) {
	s.calls.Inc()
	if s.fail != nil && s.fail(m) {
		return lp.Undetermined("stub: probe rejected"), nil
	}

	return s.inner.Solve(ctx, m)
}

// s1h1Perturbed rejects every model that does not price S1->H1 at 4.
func s1h1Perturbed(m *lp.Model) bool { return coef(m, "flow[S1->H1]") != 4 }

func newEngine(t *testing.T, solver lp.Solver, opts ...sensitivity.Option) (*network.Network, *sensitivity.Engine) {
	t.Helper()
	ref := network.Reference()
	e, err := sensitivity.New(ref.Topology, solver, opts...)
	require.NoError(t, err)

	return ref, e
}
