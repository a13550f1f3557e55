// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/transship/lp"
)

// ModelName is the name given to every built lp.Model.
const ModelName = "transshipment"

// RowKind tells which family a constraint belongs to.
type RowKind int

const (
	// RowSupply is the equality Σ out = supply of a source.
	RowSupply RowKind = iota
	// RowBalance is the conservation equality of a hub.
	RowBalance
	// RowDemand is the equality Σ in = demand of a destination.
	RowDemand
	// RowCapacity is the upper bound of one arc.
	RowCapacity
)

// String returns the row-name prefix of the kind.
func (k RowKind) String() string {
	switch k {
	case RowSupply:
		return "supply"
	case RowBalance:
		return "balance"
	case RowDemand:
		return "demand"
	case RowCapacity:
		return "capacity"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// Row describes one constraint of a Formulation. Node is set for supply,
// balance and demand rows; Arc for capacity rows.
type Row struct {
	Name string
	Kind RowKind
	Node string
	Arc  ArcID
	RHS  float64
}

// VarName returns the LP variable name of arc a.
func VarName(a ArcID) string { return "flow[" + a.String() + "]" }

// RowName returns the constraint name for a node row of kind k.
func RowName(k RowKind, node string) string { return k.String() + "[" + node + "]" }

// CapacityRowName returns the constraint name of the bound on arc a.
func CapacityRowName(a ArcID) string { return RowName(RowCapacity, a.String()) }

// Formulation is the LP built from a topology and one cost/capacity pair.
// It is read-only and safe to share between goroutines.
type Formulation struct {
	topo  *Topology
	costs Costs
	caps  Capacities
	rows  []Row
	cons  []lp.Constraint
	model *lp.Model
	arcOf map[string]ArcID
}

// Build validates costs and caps against t and lays out the LP. It never
// solves. caps may be nil.
//
// Implementation:
//   - Stage 1: Validate costs (complete, finite, ≥ 0) and caps (known arcs).
//   - Stage 2: One variable per arc in declaration order.
//   - Stage 3: Rows from Topology.Rows, each given its terms and sense.
func (t *Topology) Build(costs Costs, caps Capacities) (*Formulation, error) {
	if err := costs.Validate(t); err != nil {
		return nil, err
	}
	if err := caps.Validate(t); err != nil {
		return nil, err
	}

	f := &Formulation{
		topo:  t,
		costs: costs.Clone(),
		caps:  caps.Clone(),
		arcOf: make(map[string]ArcID, len(t.arcs)),
	}
	for _, a := range t.arcs {
		f.arcOf[VarName(a)] = a
	}

	f.rows = t.Rows(caps)
	f.cons = make([]lp.Constraint, len(f.rows))
	for i, r := range f.rows {
		c := lp.Constraint{Name: r.Name, Sense: lp.EQ, RHS: r.RHS}
		switch r.Kind {
		case RowSupply:
			c.Terms = arcTerms(t.out[r.Node], 1)
		case RowBalance:
			c.Terms = append(arcTerms(t.in[r.Node], 1), arcTerms(t.out[r.Node], -1)...)
		case RowDemand:
			c.Terms = arcTerms(t.in[r.Node], 1)
		case RowCapacity:
			c.Terms = []lp.Term{{Var: VarName(r.Arc), Coef: 1}}
			c.Sense = lp.LE
		}
		f.cons[i] = c
	}

	f.model = f.newModel(f.costs)

	return f, nil
}

// Rows lists the constraints a formulation over t with caps would carry:
// one row per node in declaration order, then one per capacitated arc.
// caps is not validated.
func (t *Topology) Rows(caps Capacities) []Row {
	rows := make([]Row, 0, len(t.nodes)+len(caps))
	for _, n := range t.nodes {
		k := RowSupply
		switch n.Role {
		case Hub:
			k = RowBalance
		case Destination:
			k = RowDemand
		}
		rows = append(rows, Row{Name: RowName(k, n.ID), Kind: k, Node: n.ID, RHS: n.Amount})
	}
	for _, a := range t.arcs {
		if v, ok := caps[a]; ok {
			rows = append(rows, Row{Name: CapacityRowName(a), Kind: RowCapacity, Arc: a, RHS: v})
		}
	}

	return rows
}

func (f *Formulation) newModel(costs Costs) *lp.Model {
	vars := make([]string, len(f.topo.arcs))
	obj := make([]lp.Term, len(f.topo.arcs))
	for i, a := range f.topo.arcs {
		vars[i] = VarName(a)
		obj[i] = lp.Term{Var: vars[i], Coef: costs[a]}
	}

	return &lp.Model{Name: ModelName, Vars: vars, Objective: obj, Constraints: f.cons}
}

func arcTerms(arcs []ArcID, coef float64) []lp.Term {
	out := make([]lp.Term, len(arcs))
	for i, a := range arcs {
		out[i] = lp.Term{Var: VarName(a), Coef: coef}
	}

	return out
}

// WithCosts returns a formulation over the same rows priced by costs. The
// constraint slice is shared; only the objective is rebuilt.
func (f *Formulation) WithCosts(costs Costs) (*Formulation, error) {
	if err := costs.Validate(f.topo); err != nil {
		return nil, err
	}
	g := *f
	g.costs = costs.Clone()
	g.model = g.newModel(g.costs)

	return &g, nil
}

// Model returns the LP. Callers must treat it as read-only.
func (f *Formulation) Model() *lp.Model { return f.model }

// Topology returns the topology the formulation was built from.
func (f *Formulation) Topology() *Topology { return f.topo }

// Costs returns a copy of the objective coefficients.
func (f *Formulation) Costs() Costs { return f.costs.Clone() }

// Capacities returns a copy of the arc bounds; nil when uncapacitated.
func (f *Formulation) Capacities() Capacities { return f.caps.Clone() }

// Rows returns the constraint descriptors in model order.
func (f *Formulation) Rows() []Row { return append([]Row(nil), f.rows...) }

// VarName returns the variable of arc a, or "" when a is not in the topology.
func (f *Formulation) VarName(a ArcID) string {
	if !f.topo.HasArc(a) {
		return ""
	}

	return VarName(a)
}

// ArcOf maps a variable name back to its arc.
func (f *Formulation) ArcOf(name string) (ArcID, bool) {
	a, ok := f.arcOf[name]

	return a, ok
}
