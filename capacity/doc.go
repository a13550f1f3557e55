// Package capacity compares the optimal cost of a network with and without
// per-arc capacity limits.
//
// Evaluate solves the uncapacitated relaxation and the capacitated
// variant, reports the cost difference and lists the bounds the
// capacitated optimum saturates. Since a capacity only removes feasible
// flows, the capacitated cost can never be lower; a decrease is flagged
// as anomalous. When the capacitated variant is infeasible, the
// Throughput field tells how much demand the capacities can carry and
// which arcs form the bottleneck.
//
// Example:
//
//	ev, _ := capacity.New(simplex.New())
//	cmp, err := ev.Evaluate(ctx, ref.Topology, ref.Costs, ref.Capacities)
//	if err != nil {
//		return err
//	}
//	fmt.Println(cmp.Effect, cmp.Difference)
package capacity
