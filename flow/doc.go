// Package flow turns solver output into typed arc flows and checks them.
//
// The routines here never solve a linear program; they read what a solver
// produced for a network.Formulation, or, for MaxThroughput, run a
// combinatorial max-flow directly on the topology.
//
//   - Extract
//
//   - Maps lp.Solution values back to arcs.
//
//   - A missing variable on an Optimal solution is fatal (ErrMissingValue).
//
//   - Classify
//
//   - Splits arcs into basic (flow > tol) and non-basic.
//
//   - tol defaults to DefaultTolerance (0.01 units).
//
//   - Verify
//
//   - Re-checks supply, hub conservation and demand per node.
//
//   - Returns *BalanceError naming the first violated node.
//
//   - MaxThroughput
//
//   - Dinic (level graph + blocking flows) from a virtual source feeding
//     every supply node to a virtual sink fed by every demand node.
//
//   - Time: O(V²·E) worst case; a handful of phases on 3-echelon networks.
//
//   - Reports the maximum deliverable volume under the arc capacities and
//     the saturated arcs of a minimum cut when demand cannot be met.
//
// # Errors
//
//	ErrNilSolution   - Extract received a nil solution.
//	ErrMissingValue  - an Optimal solution lacks an arc variable.
//	ErrNegativeFlow  - Verify met a flow below −tol.
//	*BalanceError    - Verify met a node out of balance.
//	context.Canceled / context.DeadlineExceeded from MaxThroughput.
package flow
