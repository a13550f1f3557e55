// Package lp defines the backend-neutral linear-program seam used by
// every other package in transship.
//
// A Model is a minimization over non-negative continuous variables:
//
//	minimize    Σ Objective[i].Coef · x[Objective[i].Var]
//	subject to  Σ c.Terms · x  (=|≤|≥)  c.RHS   for every Constraint c
//	            x ≥ 0
//
// Constraint and variable names are the only identity a Model carries;
// they must be stable across re-solves so that per-constraint duals can
// be matched back to the row that produced them.
//
// The Solver interface is the single dependency on optimization
// machinery. Implementations must be stateless between calls (safe to
// call concurrently) and must never turn a failure into a zero-cost
// optimum: numerical trouble, timeouts, cancelled contexts and backend
// panics are reported as StatusUndetermined.
//
// Errors:
//
//	ErrNilModel     - a nil *Model was passed to Validate or Solve.
//	ErrInvalidModel - duplicate names, unknown variables or non-finite data.
package lp
