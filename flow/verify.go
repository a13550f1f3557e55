package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/transship/network"
)

// BalanceError reports a node whose flows violate its constraint.
//
// Want is the supply, zero or the demand depending on Role; Got is
// outflow for a source, inflow − outflow for a hub and inflow for a
// destination.
type BalanceError struct {
	Node string
	Role network.Role
	Want float64
	Got  float64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("flow: %s %q out of balance: want %g, got %g", e.Role, e.Node, e.Want, e.Got)
}

// Verify checks flows against every node of t. Nodes are visited in
// declaration order and the first violation is returned. A non-positive
// tol selects DefaultTolerance.
func Verify(t *network.Topology, flows map[network.ArcID]float64, tol float64) error {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	for _, a := range t.Arcs() {
		if x := flows[a]; x < -tol {
			return fmt.Errorf("%w: %s carries %g", ErrNegativeFlow, a, x)
		}
	}

	for _, n := range t.Nodes() {
		in := sum(flows, t.Incoming(n.ID))
		out := sum(flows, t.Outgoing(n.ID))

		var got, want float64
		switch n.Role {
		case network.Source:
			got, want = out, n.Amount
		case network.Hub:
			got, want = in-out, 0
		case network.Destination:
			got, want = in, n.Amount
		}
		if math.Abs(got-want) > tol {
			return &BalanceError{Node: n.ID, Role: n.Role, Want: want, Got: got}
		}
	}

	return nil
}

func sum(flows map[network.ArcID]float64, arcs []network.ArcID) float64 {
	var s float64
	for _, a := range arcs {
		s += flows[a]
	}

	return s
}
