package lp

import "context"

// Status is the terminal state of one solve.
type Status int

const (
	// StatusUndetermined means the solver failed (numerical trouble,
	// cancellation, backend error) and no claim about the LP is made.
	StatusUndetermined Status = iota
	// StatusOptimal means Values hold an optimal feasible point.
	StatusOptimal
	// StatusInfeasible means no point satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the objective decreases without limit.
	StatusUnbounded
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Undetermined"
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// IsOptimal reports whether the status is StatusOptimal.
func (s Status) IsOptimal() bool { return s == StatusOptimal }

// Solution is the result of a single Solve call.
type Solution struct {
	Status Status

	// Objective is Σ cost·value; only meaningful when Status is Optimal.
	Objective float64

	// Values maps variable name → value. Nil unless Optimal.
	Values map[string]float64

	// Duals maps constraint name → dual value (∂objective/∂rhs).
	// Nil when the status is not Optimal or the backend has no duals.
	Duals map[string]float64

	// Reason carries the backend's explanation for non-optimal outcomes.
	Reason string
}

// HasDuals reports whether per-constraint duals are available.
func (s *Solution) HasDuals() bool { return s != nil && s.Status.IsOptimal() && s.Duals != nil }

// Undetermined returns a Solution flagged StatusUndetermined.
func Undetermined(reason string) *Solution {
	return &Solution{Status: StatusUndetermined, Reason: reason}
}

// Solver is the opaque optimization backend.
//
// Solve returns an error only for malformed input (see Model.Validate).
// All solver-side failures come back as a Solution whose Status is not
// StatusOptimal.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc func(ctx context.Context, m *Model) (*Solution, error)

// Solve calls f(ctx, m).
func (f SolverFunc) Solve(ctx context.Context, m *Model) (*Solution, error) { return f(ctx, m) }
