package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

// DefaultTolerance is the activity threshold, in flow units, used by
// Classify and Verify when the caller passes a non-positive tolerance.
const DefaultTolerance = 0.01

var (
	// ErrNilSolution is returned when Extract receives no solution.
	ErrNilSolution = errors.New("flow: nil solution")

	// ErrMissingValue indicates an Optimal solution without a value for an arc.
	ErrMissingValue = errors.New("flow: solution is missing an arc value")

	// ErrNegativeFlow indicates an arc carrying less than −tol.
	ErrNegativeFlow = errors.New("flow: negative arc flow")
)

// Result is a solved network: status, cost and the flow on every arc.
// Flows and Duals are nil unless Status is Optimal.
type Result struct {
	Status    lp.Status                 `json:"status"`
	Objective float64                   `json:"objective"`
	Arcs      []network.ArcID           `json:"-"`
	Flows     map[network.ArcID]float64 `json:"flows,omitempty"`
	Duals     map[string]float64        `json:"duals,omitempty"`
	Reason    string                    `json:"reason,omitempty"`
}

// Optimal reports whether r holds an optimal flow.
func (r *Result) Optimal() bool { return r != nil && r.Status.IsOptimal() }

// Flow returns the flow on arc a, zero when unknown.
func (r *Result) Flow(a network.ArcID) float64 {
	if r == nil {
		return 0
	}

	return r.Flows[a]
}

// Extract maps sol back onto the arcs of f.
//
// A non-Optimal solution yields a Result carrying only status and reason.
func Extract(f *network.Formulation, sol *lp.Solution) (*Result, error) {
	if sol == nil {
		return nil, ErrNilSolution
	}
	arcs := f.Topology().Arcs()
	r := &Result{Status: sol.Status, Arcs: arcs, Reason: sol.Reason}
	if !sol.Status.IsOptimal() {
		return r, nil
	}

	r.Objective = sol.Objective
	r.Flows = make(map[network.ArcID]float64, len(arcs))
	for _, a := range arcs {
		v, ok := sol.Values[network.VarName(a)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, a)
		}
		r.Flows[a] = v
	}
	if sol.Duals != nil {
		r.Duals = make(map[string]float64, len(sol.Duals))
		for k, v := range sol.Duals {
			r.Duals[k] = v
		}
	}

	return r, nil
}

// Classify splits the arcs of r into basic (flow > tol) and non-basic,
// both in declaration order. A non-positive tol selects DefaultTolerance.
// A non-Optimal r has no basic arcs.
func Classify(r *Result, tol float64) (basic, nonBasic []network.ArcID) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	for _, a := range r.Arcs {
		if r.Optimal() && r.Flows[a] > tol {
			basic = append(basic, a)
		} else {
			nonBasic = append(nonBasic, a)
		}
	}

	return basic, nonBasic
}

// Cost returns Σ costs[a]·flows[a] over the arcs of flows.
func Cost(costs network.Costs, flows map[network.ArcID]float64) float64 {
	var total float64
	for a, x := range flows {
		total += costs[a] * x
	}

	return total
}
