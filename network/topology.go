// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
)

// balanceTol is the absolute slack allowed between total supply and total
// demand, scaled by the larger of the two.
const balanceTol = 1e-9

// Topology is the immutable node and arc structure of a network.
//
// Nodes and arcs keep their declaration order; every accessor that returns
// a slice returns a fresh copy.
type Topology struct {
	nodes []Node
	arcs  []ArcID
	index map[string]int
	arcIx map[ArcID]int
	out   map[string][]ArcID
	in    map[string][]ArcID
}

// Builder accumulates nodes and arcs. The first error is sticky: later
// calls become no-ops and Build reports it.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	t   *Topology
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{t: &Topology{
		index: make(map[string]int),
		arcIx: make(map[ArcID]int),
		out:   make(map[string][]ArcID),
		in:    make(map[string][]ArcID),
	}}
}

// AddSource declares a source with the given supply.
func (b *Builder) AddSource(id string, supply float64) *Builder {
	return b.addNode(Node{ID: id, Role: Source, Amount: supply})
}

// AddHub declares a transshipment hub.
func (b *Builder) AddHub(id string) *Builder {
	return b.addNode(Node{ID: id, Role: Hub})
}

// AddDestination declares a destination with the given demand.
func (b *Builder) AddDestination(id string, demand float64) *Builder {
	return b.addNode(Node{ID: id, Role: Destination, Amount: demand})
}

func (b *Builder) addNode(n Node) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case n.ID == "":
		b.err = ErrEmptyNodeID
	case b.has(n.ID):
		b.err = fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	case math.IsNaN(n.Amount) || math.IsInf(n.Amount, 0):
		b.err = fmt.Errorf("%w: amount of %q", ErrNonFinite, n.ID)
	case n.Amount < 0:
		b.err = fmt.Errorf("%w: %q has %g", ErrNegativeAmount, n.ID, n.Amount)
	default:
		b.t.index[n.ID] = len(b.t.nodes)
		b.t.nodes = append(b.t.nodes, n)
	}

	return b
}

// AddArc declares a directed arc. Both endpoints must already exist.
func (b *Builder) AddArc(from, to string) *Builder {
	if b.err != nil {
		return b
	}
	a := ArcID{From: from, To: to}
	fi, okF := b.t.index[from]
	ti, okT := b.t.index[to]
	switch {
	case !okF:
		b.err = fmt.Errorf("%w: %q in arc %s", ErrUnknownNode, from, a)
	case !okT:
		b.err = fmt.Errorf("%w: %q in arc %s", ErrUnknownNode, to, a)
	case !legal(b.t.nodes[fi].Role, b.t.nodes[ti].Role):
		b.err = fmt.Errorf("%w: %s is %s→%s", ErrIllegalArc, a, b.t.nodes[fi].Role, b.t.nodes[ti].Role)
	default:
		if _, dup := b.t.arcIx[a]; dup {
			b.err = fmt.Errorf("%w: %s", ErrDuplicateArc, a)

			return b
		}
		b.t.arcIx[a] = len(b.t.arcs)
		b.t.arcs = append(b.t.arcs, a)
		b.t.out[from] = append(b.t.out[from], a)
		b.t.in[to] = append(b.t.in[to], a)
	}

	return b
}

func (b *Builder) has(id string) bool {
	_, ok := b.t.index[id]

	return ok
}

func legal(from, to Role) bool {
	return (from == Source && to == Hub) || (from == Hub && to == Destination)
}

// Build checks the balance condition and returns the finished topology.
// The Builder must not be used afterwards.
func (b *Builder) Build() (*Topology, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := b.t
	supply, demand := t.TotalSupply(), t.TotalDemand()
	if math.Abs(supply-demand) > balanceTol*math.Max(1, math.Max(supply, demand)) {
		return nil, fmt.Errorf("%w: supply %g, demand %g", ErrUnbalanced, supply, demand)
	}
	b.t = nil

	return t, nil
}

// Nodes returns all nodes in declaration order.
func (t *Topology) Nodes() []Node { return append([]Node(nil), t.nodes...) }

// Arcs returns all arcs in declaration order.
func (t *Topology) Arcs() []ArcID { return append([]ArcID(nil), t.arcs...) }

// NumArcs returns the number of arcs.
func (t *Topology) NumArcs() int { return len(t.arcs) }

// Node looks up a node by id.
func (t *Topology) Node(id string) (Node, bool) {
	i, ok := t.index[id]
	if !ok {
		return Node{}, false
	}

	return t.nodes[i], true
}

// HasArc reports whether a belongs to the topology.
func (t *Topology) HasArc(a ArcID) bool {
	_, ok := t.arcIx[a]

	return ok
}

// Sources returns the source nodes in declaration order.
func (t *Topology) Sources() []Node { return t.byRole(Source) }

// Hubs returns the hub nodes in declaration order.
func (t *Topology) Hubs() []Node { return t.byRole(Hub) }

// Destinations returns the destination nodes in declaration order.
func (t *Topology) Destinations() []Node { return t.byRole(Destination) }

func (t *Topology) byRole(r Role) []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.Role == r {
			out = append(out, n)
		}
	}

	return out
}

// Outgoing returns the arcs leaving id.
func (t *Topology) Outgoing(id string) []ArcID { return append([]ArcID(nil), t.out[id]...) }

// Incoming returns the arcs entering id.
func (t *Topology) Incoming(id string) []ArcID { return append([]ArcID(nil), t.in[id]...) }

// TotalSupply sums the supply of every source.
func (t *Topology) TotalSupply() float64 { return t.total(Source) }

// TotalDemand sums the demand of every destination.
func (t *Topology) TotalDemand() float64 { return t.total(Destination) }

func (t *Topology) total(r Role) float64 {
	var s float64
	for _, n := range t.nodes {
		if n.Role == r {
			s += n.Amount
		}
	}

	return s
}
