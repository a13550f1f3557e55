package lp

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for model validation.
var (
	// ErrNilModel indicates a nil *Model.
	ErrNilModel = errors.New("lp: model is nil")

	// ErrInvalidModel indicates a structurally malformed model.
	ErrInvalidModel = errors.New("lp: invalid model")
)

// Sense is the relation between a constraint's left-hand side and its RHS.
type Sense int

const (
	// EQ is Σ terms = RHS.
	EQ Sense = iota
	// LE is Σ terms ≤ RHS.
	LE
	// GE is Σ terms ≥ RHS.
	GE
)

// String returns the operator for the sense.
func (s Sense) String() string {
	switch s {
	case EQ:
		return "="
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "?"
	}
}

// Term is one coefficient·variable product.
type Term struct {
	Var  string
	Coef float64
}

// Constraint is a named linear row.
type Constraint struct {
	// Name identifies the row; duals are keyed by it.
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a minimization LP over non-negative continuous variables.
type Model struct {
	// Name is informational only.
	Name string

	// Vars lists every decision variable in column order.
	Vars []string

	// Objective holds the cost terms; variables without a term cost zero.
	Objective []Term

	// Constraints lists the rows in order.
	Constraints []Constraint
}

// Validate checks that names are unique and non-empty, that every term
// refers to a declared variable, and that all numbers are finite.
//
// Complexity: O(V + Σ|terms|).
func (m *Model) Validate() error {
	if m == nil {
		return ErrNilModel
	}

	vars := make(map[string]struct{}, len(m.Vars))
	for _, v := range m.Vars {
		if v == "" {
			return fmt.Errorf("%w: empty variable name", ErrInvalidModel)
		}
		if _, dup := vars[v]; dup {
			return fmt.Errorf("%w: duplicate variable %q", ErrInvalidModel, v)
		}
		vars[v] = struct{}{}
	}

	if err := checkTerms("objective", m.Objective, vars); err != nil {
		return err
	}

	rows := make(map[string]struct{}, len(m.Constraints))
	for _, c := range m.Constraints {
		if c.Name == "" {
			return fmt.Errorf("%w: empty constraint name", ErrInvalidModel)
		}
		if _, dup := rows[c.Name]; dup {
			return fmt.Errorf("%w: duplicate constraint %q", ErrInvalidModel, c.Name)
		}
		rows[c.Name] = struct{}{}
		if c.Sense != EQ && c.Sense != LE && c.Sense != GE {
			return fmt.Errorf("%w: constraint %q has unknown sense %d", ErrInvalidModel, c.Name, c.Sense)
		}
		if !finite(c.RHS) {
			return fmt.Errorf("%w: constraint %q has non-finite rhs", ErrInvalidModel, c.Name)
		}
		if err := checkTerms(c.Name, c.Terms, vars); err != nil {
			return err
		}
	}

	return nil
}

// VarIndex returns a variable → column index map.
func (m *Model) VarIndex() map[string]int {
	idx := make(map[string]int, len(m.Vars))
	for i, v := range m.Vars {
		idx[v] = i
	}

	return idx
}

// Evaluate returns Σ objective terms at the given point. Variables
// missing from values count as zero.
func (m *Model) Evaluate(values map[string]float64) float64 {
	var total float64
	for _, t := range m.Objective {
		total += t.Coef * values[t.Var]
	}

	return total
}

func checkTerms(owner string, terms []Term, vars map[string]struct{}) error {
	for _, t := range terms {
		if _, ok := vars[t.Var]; !ok {
			return fmt.Errorf("%w: %s references unknown variable %q", ErrInvalidModel, owner, t.Var)
		}
		if !finite(t.Coef) {
			return fmt.Errorf("%w: %s has non-finite coefficient for %q", ErrInvalidModel, owner, t.Var)
		}
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
