package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/transship/network"
)

// Dijkstra computes the cheapest per-unit cost from Options.Source to
// every node of t, priced by costs.
//
// Returns:
//
//   - dist: node ID → minimum cost, +Inf if unreachable.
//   - prev: node ID → predecessor on the cheapest path, "" for the source
//     and unreachable nodes.
//   - err:  a sentinel error for invalid input, or a network.ErrConfig
//     error for an invalid cost vector.
//
// Preconditions and validation (in order):
//  1. Source must be non-empty (ErrEmptySource).
//  2. t must be non-nil (ErrNilTopology).
//  3. t must contain Source (ErrSourceNotFound).
//  4. MaxCost must be ≥ 0 (ErrBadMaxCost).
//  5. costs must price every arc with a finite non-negative value.
func Dijkstra(t *network.Topology, costs network.Costs, opts ...Option) (map[string]float64, map[string]string, error) {
	cfg := DefaultOptions("")
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if t == nil {
		return nil, nil, ErrNilTopology
	}
	if _, ok := t.Node(cfg.Source); !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrSourceNotFound, cfg.Source)
	}
	if math.IsNaN(cfg.MaxCost) || cfg.MaxCost < 0 {
		return nil, nil, ErrBadMaxCost
	}
	if err := costs.Validate(t); err != nil {
		return nil, nil, err
	}

	r := &runner{
		t:       t,
		costs:   costs,
		options: cfg,
		dist:    make(map[string]float64),
		prev:    make(map[string]string),
		visited: make(map[string]bool),
	}
	r.init()
	r.process()

	return r.dist, r.prev, nil
}

// runner holds the mutable state of a single run.
type runner struct {
	t       *network.Topology
	costs   network.Costs
	options Options
	dist    map[string]float64
	prev    map[string]string
	visited map[string]bool
	pq      nodePQ
}

// init sets every distance to +Inf except the source, which is pushed
// onto the heap at zero.
func (r *runner) init() {
	for _, n := range r.t.Nodes() {
		r.dist[n.ID] = math.Inf(1)
		r.prev[n.ID] = ""
	}
	r.dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops nodes in cost order until the heap is empty or the
// cheapest entry exceeds MaxCost.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue // stale entry
		}
		if item.dist > r.options.MaxCost {
			break
		}
		r.visited[item.id] = true
		r.relax(item.id)
	}
}

// relax improves the neighbours of u. Only strictly cheaper paths replace
// a predecessor, so the first hub finalized wins a tie.
func (r *runner) relax(u string) {
	for _, a := range r.t.Outgoing(u) {
		if r.options.Closed[a] {
			continue
		}
		d := r.dist[u] + r.costs[a]
		if d > r.options.MaxCost || d >= r.dist[a.To] {
			continue
		}
		r.dist[a.To] = d
		r.prev[a.To] = u
		heap.Push(&r.pq, &nodeItem{id: a.To, dist: d})
	}
}

// Path walks prev back from target. It returns nil when target was not
// reached.
func Path(prev map[string]string, target string) []string {
	p, ok := prev[target]
	if !ok {
		return nil
	}
	path := []string{target}
	for p != "" {
		path = append(path, p)
		p = prev[p]
	}
	if len(path) == 1 {
		return nil // target is the source or unreachable
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// CheapestRoutes returns, for every destination of t in declaration
// order, the source and path with the lowest per-unit cost. Ties go to
// the source declared first. Unreachable destinations are returned with
// Reachable false.
func CheapestRoutes(t *network.Topology, costs network.Costs, opts ...Option) ([]Route, error) {
	if t == nil {
		return nil, ErrNilTopology
	}
	dests := t.Destinations()
	routes := make([]Route, len(dests))
	for i, d := range dests {
		routes[i] = Route{Destination: d.ID}
	}

	run := append(append([]Option(nil), opts...), nil)
	for _, s := range t.Sources() {
		run[len(run)-1] = Source(s.ID)
		dist, prev, err := Dijkstra(t, costs, run...)
		if err != nil {
			return nil, err
		}
		for i := range routes {
			c := dist[routes[i].Destination]
			if math.IsInf(c, 1) || (routes[i].Reachable && c >= routes[i].Cost) {
				continue
			}
			routes[i].Source = s.ID
			routes[i].Cost = c
			routes[i].Path = Path(prev, routes[i].Destination)
			routes[i].Reachable = true
		}
	}

	return routes, nil
}

// LowerBound returns Σ demand·cost over routes. Destinations without
// demand are skipped; an unreachable destination with positive demand
// makes the bound +Inf.
func LowerBound(t *network.Topology, routes []Route) float64 {
	var total float64
	for _, r := range routes {
		n, ok := t.Node(r.Destination)
		if !ok || n.Amount == 0 {
			continue
		}
		if !r.Reachable {
			return math.Inf(1)
		}
		total += n.Amount * r.Cost
	}

	return total
}

// nodeItem is a heap entry: a node and a tentative cost.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist. Outdated entries stay
// in the heap and are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
