package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
	"github.com/katalvlaran/transship/simplex"
)

func arc(from, to string) network.ArcID { return network.ArcID{From: from, To: to} }

// referenceFlows is the unique optimum of the uncapacitated reference network.
var referenceFlows = map[network.ArcID]float64{
	arc("S1", "H1"): 550,
	arc("S1", "H3"): 350,
	arc("S2", "H2"): 700,
	arc("H1", "D1"): 300,
	arc("H1", "D2"): 250,
	arc("H2", "D4"): 400,
	arc("H2", "D5"): 300,
	arc("H3", "D3"): 350,
}

func solveReference(t *testing.T, caps network.Capacities) (*network.Network, *flow.Result) {
	t.Helper()
	ref := network.Reference()
	f, err := ref.Topology.Build(ref.Costs, caps)
	require.NoError(t, err)
	sol, err := simplex.New().Solve(context.Background(), f.Model())
	require.NoError(t, err)
	res, err := flow.Extract(f, sol)
	require.NoError(t, err)

	return ref, res
}

func TestExtract_Reference(t *testing.T) {
	ref, res := solveReference(t, nil)
	require.True(t, res.Optimal())
	assert.InDelta(t, 15500, res.Objective, 1e-6)
	assert.Len(t, res.Arcs, 19)

	for _, a := range ref.Topology.Arcs() {
		assert.InDelta(t, referenceFlows[a], res.Flow(a), flow.DefaultTolerance, a.String())
	}
	assert.InDelta(t, res.Objective, flow.Cost(ref.Costs, res.Flows), 1e-6)
	require.NoError(t, flow.Verify(ref.Topology, res.Flows, 0))

	// Strong duality: Σ rhs·dual equals the optimum.
	require.NotNil(t, res.Duals)
	var dualObj float64
	for _, n := range ref.Topology.Nodes() {
		var k network.RowKind
		switch n.Role {
		case network.Source:
			k = network.RowSupply
		case network.Hub:
			k = network.RowBalance
		case network.Destination:
			k = network.RowDemand
		}
		dualObj += n.Amount * res.Duals[network.RowName(k, n.ID)]
	}
	assert.InDelta(t, 15500, dualObj, 1e-4)
}

func TestExtract_ResolveIsIdempotent(t *testing.T) {
	_, first := solveReference(t, nil)
	_, second := solveReference(t, nil)
	assert.InDelta(t, first.Objective, second.Objective, 1e-9)
	for a, x := range first.Flows {
		assert.InDelta(t, x, second.Flows[a], flow.DefaultTolerance, a.String())
	}
}

func TestExtract_Capacitated(t *testing.T) {
	ref := network.Reference()
	_, res := solveReference(t, ref.Capacities)
	require.True(t, res.Optimal())
	assert.InDelta(t, 16200, res.Objective, 1e-6)
	require.NoError(t, flow.Verify(ref.Topology, res.Flows, 0))
	for a, c := range ref.Capacities {
		assert.LessOrEqual(t, res.Flow(a), c+flow.DefaultTolerance, a.String())
	}
}

func TestExtract_Stub(t *testing.T) {
	ref := network.Reference()
	f, err := ref.Topology.Build(ref.Costs, nil)
	require.NoError(t, err)

	_, err = flow.Extract(f, nil)
	require.ErrorIs(t, err, flow.ErrNilSolution)

	res, err := flow.Extract(f, &lp.Solution{Status: lp.StatusInfeasible, Reason: "no way"})
	require.NoError(t, err)
	assert.False(t, res.Optimal())
	assert.Nil(t, res.Flows)
	assert.Equal(t, "no way", res.Reason)
	basic, nonBasic := flow.Classify(res, 0)
	assert.Empty(t, basic)
	assert.Len(t, nonBasic, 19)

	_, err = flow.Extract(f, &lp.Solution{Status: lp.StatusOptimal, Values: map[string]float64{"flow[S1->H1]": 1}})
	require.ErrorIs(t, err, flow.ErrMissingValue)
}

func TestClassify(t *testing.T) {
	_, res := solveReference(t, nil)
	basic, nonBasic := flow.Classify(res, flow.DefaultTolerance)
	assert.Len(t, basic, len(referenceFlows))
	assert.Len(t, nonBasic, 19-len(referenceFlows))
	for _, a := range basic {
		assert.Contains(t, referenceFlows, a)
	}

	// Threshold is strict: a flow equal to tol is non-basic.
	r := &flow.Result{
		Status: lp.StatusOptimal,
		Arcs:   []network.ArcID{arc("S", "H"), arc("H", "D")},
		Flows:  map[network.ArcID]float64{arc("S", "H"): 0.01, arc("H", "D"): 0.011},
	}
	basic, nonBasic = flow.Classify(r, 0.01)
	assert.Equal(t, []network.ArcID{arc("H", "D")}, basic)
	assert.Equal(t, []network.ArcID{arc("S", "H")}, nonBasic)
}

func TestVerify_Violations(t *testing.T) {
	ref := network.Reference()
	flows := make(map[network.ArcID]float64, len(referenceFlows))
	for a, x := range referenceFlows {
		flows[a] = x
	}
	require.NoError(t, flow.Verify(ref.Topology, flows, 0))

	flows[arc("S1", "H1")] = 549
	err := flow.Verify(ref.Topology, flows, 0)
	var be *flow.BalanceError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "S1", be.Node)
	assert.Equal(t, network.Source, be.Role)
	assert.Equal(t, 900.0, be.Want)
	assert.Equal(t, 899.0, be.Got)

	flows[arc("S1", "H1")] = 550
	flows[arc("H2", "D4")] = 399
	flows[arc("H2", "D5")] = 301
	err = flow.Verify(ref.Topology, flows, 0)
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "D4", be.Node)

	flows[arc("H2", "D4")] = 400
	flows[arc("H2", "D5")] = 300
	flows[arc("H3", "D4")] = -1
	require.ErrorIs(t, flow.Verify(ref.Topology, flows, 0), flow.ErrNegativeFlow)
}
