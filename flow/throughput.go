package flow

import (
	"context"
	"math"

	"github.com/katalvlaran/transship/network"
)

// capEps treats residual capacities at or below it as exhausted.
const capEps = 1e-9

// Throughput is the result of MaxThroughput.
type Throughput struct {
	// Value is the largest volume deliverable from sources to destinations.
	Value float64 `json:"value"`
	// Demand is the total demand of the topology.
	Demand float64 `json:"demand"`
	// Shortfall is Demand − Value, clamped at zero.
	Shortfall float64 `json:"shortfall"`
	// Bottleneck lists the saturated network arcs crossing a minimum cut,
	// in declaration order. Empty when demand can be met.
	Bottleneck []network.ArcID `json:"bottleneck,omitempty"`
}

// Feasible reports whether the capacities let every demand be met
// within tol. A non-positive tol selects DefaultTolerance.
func (tp Throughput) Feasible(tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}

	return tp.Shortfall <= tol
}

// residual edge; arc is the topology arc index or −1 for a virtual edge.
type edge struct {
	to, rev, arc int
	cap          float64
}

type residual struct {
	adj   [][]edge
	level []int
	iter  []int
}

func (g *residual) add(u, v, arc int, c float64) {
	g.adj[u] = append(g.adj[u], edge{to: v, rev: len(g.adj[v]), arc: arc, cap: c})
	g.adj[v] = append(g.adj[v], edge{to: u, rev: len(g.adj[u]) - 1, arc: -1})
}

// MaxThroughput computes how much of the total demand of t can be shipped
// when arcs are bounded by caps. Arcs absent from caps are bounded only by
// the total supply.
//
// Steps:
//  1. Index nodes; add virtual source s (→ every Source, cap = supply) and
//     sink z (every Destination →, cap = demand).
//  2. Repeat: BFS level graph from s; stop when z is unreachable.
//  3. Push blocking flow along strictly increasing levels with a per-node
//     edge iterator.
//  4. Nodes still reachable from s form the source side of a minimum cut;
//     saturated network arcs leaving it are the bottleneck.
//
// Complexity:
//
//	Time:   O(V²·E) worst case.
//	Memory: O(V + E).
func MaxThroughput(ctx context.Context, t *network.Topology, caps network.Capacities) (Throughput, error) {
	if err := caps.Validate(t); err != nil {
		return Throughput{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	nodes := t.Nodes()
	arcs := t.Arcs()
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}
	s, z := len(nodes), len(nodes)+1
	g := &residual{adj: make([][]edge, len(nodes)+2)}

	unbounded := t.TotalSupply()
	for _, n := range nodes {
		switch n.Role {
		case network.Source:
			g.add(s, idx[n.ID], -1, n.Amount)
		case network.Destination:
			g.add(idx[n.ID], z, -1, n.Amount)
		}
	}
	for i, a := range arcs {
		c, ok := caps[a]
		if !ok {
			c = unbounded
		}
		g.add(idx[a.From], idx[a.To], i, c)
	}

	var total float64
	for {
		if err := ctx.Err(); err != nil {
			return Throughput{}, err
		}
		if !g.bfs(s, z) {
			break
		}
		g.iter = make([]int, len(g.adj))
		for {
			pushed := g.push(s, z, math.Inf(1))
			if pushed <= capEps {
				break
			}
			total += pushed
		}
	}

	demand := t.TotalDemand()
	tp := Throughput{Value: total, Demand: demand, Shortfall: math.Max(0, demand-total)}
	if tp.Shortfall > capEps {
		tp.Bottleneck = g.cut(arcs)
	}

	return tp, nil
}

// bfs assigns levels from s and reports whether z is reachable.
func (g *residual) bfs(s, z int) bool {
	g.level = make([]int, len(g.adj))
	for i := range g.level {
		g.level[i] = -1
	}
	g.level[s] = 0
	queue := []int{s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range g.adj[u] {
			if e.cap > capEps && g.level[e.to] < 0 {
				g.level[e.to] = g.level[u] + 1
				queue = append(queue, e.to)
			}
		}
	}

	return g.level[z] >= 0
}

// push sends up to avail from u toward z along the level graph.
func (g *residual) push(u, z int, avail float64) float64 {
	if u == z {
		return avail
	}
	for ; g.iter[u] < len(g.adj[u]); g.iter[u]++ {
		e := &g.adj[u][g.iter[u]]
		if e.cap <= capEps || g.level[e.to] != g.level[u]+1 {
			continue
		}
		if d := g.push(e.to, z, math.Min(avail, e.cap)); d > capEps {
			e.cap -= d
			g.adj[e.to][e.rev].cap += d

			return d
		}
	}

	return 0
}

// cut returns the network arcs from the s-reachable side to the rest,
// using the levels of the final (failed) BFS.
func (g *residual) cut(arcs []network.ArcID) []network.ArcID {
	crossing := make([]bool, len(arcs))
	for u := range g.adj {
		if g.level[u] < 0 {
			continue
		}
		for _, e := range g.adj[u] {
			if e.arc >= 0 && g.level[e.to] < 0 {
				crossing[e.arc] = true
			}
		}
	}
	var out []network.ArcID
	for i, a := range arcs {
		if crossing[i] {
			out = append(out, a)
		}
	}

	return out
}
