package dijkstra_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transship/dijkstra"
	"github.com/katalvlaran/transship/network"
)

func arc(from, to string) network.ArcID { return network.ArcID{From: from, To: to} }

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestDijkstra_Validation(t *testing.T) {
	ref := network.Reference()

	_, _, err := dijkstra.Dijkstra(ref.Topology, ref.Costs)
	require.ErrorIs(t, err, dijkstra.ErrEmptySource)

	// an empty source has priority over a nil topology
	_, _, err = dijkstra.Dijkstra(nil, ref.Costs)
	require.ErrorIs(t, err, dijkstra.ErrEmptySource)

	_, _, err = dijkstra.Dijkstra(nil, ref.Costs, dijkstra.Source("S1"))
	require.ErrorIs(t, err, dijkstra.ErrNilTopology)

	_, _, err = dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("X"))
	require.ErrorIs(t, err, dijkstra.ErrSourceNotFound)

	_, _, err = dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("S1"), dijkstra.WithMaxCost(-1))
	require.ErrorIs(t, err, dijkstra.ErrBadMaxCost)

	_, _, err = dijkstra.Dijkstra(ref.Topology, ref.Costs.With(arc("S1", "H1"), -2), dijkstra.Source("S1"))
	require.ErrorIs(t, err, network.ErrNegativeCost)

	_, err = dijkstra.CheapestRoutes(nil, ref.Costs)
	require.ErrorIs(t, err, dijkstra.ErrNilTopology)
}

// ------------------------------------------------------------------------
// 2. Distances on the reference network
// ------------------------------------------------------------------------

func TestDijkstra_FromS1(t *testing.T) {
	ref := network.Reference()
	dist, prev, err := dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("S1"))
	require.NoError(t, err)

	want := map[string]float64{
		"S1": 0, "H1": 4, "H2": 6, "H3": 5,
		"D1": 12, "D2": 10, "D3": 10, "D4": 10, "D5": 11,
	}
	for id, d := range want {
		assert.Equal(t, d, dist[id], id)
	}
	assert.True(t, math.IsInf(dist["S2"], 1))

	assert.Equal(t, []string{"S1", "H2", "D4"}, dijkstra.Path(prev, "D4"))
	assert.Equal(t, []string{"S1", "H3", "D3"}, dijkstra.Path(prev, "D3"))
	assert.Nil(t, dijkstra.Path(prev, "S1"))
	assert.Nil(t, dijkstra.Path(prev, "S2"))
	assert.Nil(t, dijkstra.Path(prev, "nowhere"))
}

func TestDijkstra_MaxCostAndClosedArcs(t *testing.T) {
	ref := network.Reference()

	dist, _, err := dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("S1"), dijkstra.WithMaxCost(10))
	require.NoError(t, err)
	assert.Equal(t, 10.0, dist["D4"])
	assert.True(t, math.IsInf(dist["D1"], 1))
	assert.True(t, math.IsInf(dist["D5"], 1))

	dist, prev, err := dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("S1"),
		dijkstra.WithClosed(arc("H2", "D4"), arc("H3", "D4")))
	require.NoError(t, err)
	assert.Equal(t, 13.0, dist["D4"])
	assert.Equal(t, []string{"S1", "H1", "D4"}, dijkstra.Path(prev, "D4"))
}

// ------------------------------------------------------------------------
// 3. Cheapest routes
// ------------------------------------------------------------------------

func TestCheapestRoutes_Reference(t *testing.T) {
	ref := network.Reference()
	routes, err := dijkstra.CheapestRoutes(ref.Topology, ref.Costs)
	require.NoError(t, err)

	want := []dijkstra.Route{
		{Destination: "D1", Source: "S2", Path: []string{"S2", "H1", "D1"}, Cost: 11, Reachable: true},
		{Destination: "D2", Source: "S2", Path: []string{"S2", "H1", "D2"}, Cost: 9, Reachable: true},
		{Destination: "D3", Source: "S1", Path: []string{"S1", "H3", "D3"}, Cost: 10, Reachable: true},
		{Destination: "D4", Source: "S2", Path: []string{"S2", "H2", "D4"}, Cost: 8, Reachable: true},
		{Destination: "D5", Source: "S2", Path: []string{"S2", "H2", "D5"}, Cost: 9, Reachable: true},
	}
	assert.Equal(t, want, routes)

	// Supplies are ignored, so the bound sits below the 15500 optimum.
	assert.Equal(t, 14950.0, dijkstra.LowerBound(ref.Topology, routes))
}

func TestCheapestRoutes_Unreachable(t *testing.T) {
	b := network.NewBuilder()
	b.AddSource("P", 5)
	b.AddHub("H")
	b.AddDestination("A", 3)
	b.AddDestination("B", 2)
	b.AddArc("P", "H")
	b.AddArc("H", "A")
	b.AddArc("H", "B")
	topo, err := b.Build()
	require.NoError(t, err)
	costs := network.Costs{arc("P", "H"): 1, arc("H", "A"): 2, arc("H", "B"): 4}

	routes, err := dijkstra.CheapestRoutes(topo, costs, dijkstra.WithClosed(arc("H", "B")))
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, 3.0, routes[0].Cost)
	assert.True(t, routes[0].Reachable)
	assert.Equal(t, dijkstra.Route{Destination: "B"}, routes[1])
	assert.True(t, math.IsInf(dijkstra.LowerBound(topo, routes), 1))
}

func TestCheapestRoutes_ZeroDemandIsolated(t *testing.T) {
	b := network.NewBuilder()
	b.AddSource("S1", 10)
	b.AddHub("H1")
	b.AddDestination("D1", 10)
	b.AddDestination("D2", 0)
	b.AddArc("S1", "H1")
	b.AddArc("H1", "D1")
	topo, err := b.Build()
	require.NoError(t, err)
	costs := network.Costs{arc("S1", "H1"): 2, arc("H1", "D1"): 3}

	routes, err := dijkstra.CheapestRoutes(topo, costs)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, dijkstra.Route{Destination: "D2"}, routes[1])
	assert.Equal(t, 50.0, dijkstra.LowerBound(topo, routes))

	raw, err := json.Marshal(routes)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"destination":"D1","source":"S1","path":["S1","H1","D1"],"cost":5,"reachable":true},
		{"destination":"D2","cost":0,"reachable":false}
	]`, string(raw))
}
