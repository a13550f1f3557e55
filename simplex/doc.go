// Package simplex implements lp.Solver on top of gonum's dense simplex
// (gonum.org/v1/gonum/optimize/convex/lp).
//
// Each call is independent: the solver keeps no state between Solve
// calls and may be shared by any number of goroutines.
//
// # Method
//
//  1. Standard form: every LE row gains a slack column, every GE row a
//     surplus column, so the model becomes  min cᵀx, Ax = b, x ≥ 0.
//  2. Row pruning: rows that are linear combinations of earlier rows are
//     dropped. Balanced transshipment networks always carry exactly one
//     such row per connected component, and gonum requires full row rank.
//  3. Primal solve with lp.Simplex. Pruned rows are re-checked against the
//     returned point; a violated pruned row means the original system is
//     inconsistent (Infeasible).
//  4. Dual solve: max bᵀy s.t. Aᵀy ≤ c, written in standard form with
//     y = y⁺ − y⁻ and solved with the same routine. Pruned rows get a zero
//     dual. The dual of row i is ∂objective/∂bᵢ.
//
// # Status mapping
//
//	lp.ErrInfeasible            → StatusInfeasible
//	lp.ErrUnbounded             → StatusUnbounded
//	everything else (singular basis, Bland failure, backend panic,
//	cancelled context)          → StatusUndetermined
package simplex
