package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/transship/lp"
)

const (
	// DefaultTolerance is the reduced-cost tolerance handed to gonum.
	DefaultTolerance = 1e-10

	// rankTol is the relative residual below which a row is considered a
	// linear combination of the rows already kept.
	rankTol = 1e-9

	// feasTol scales the allowed violation of pruned rows.
	feasTol = 1e-6

	// zeroSnap clamps solver noise around zero.
	zeroSnap = 1e-9
)

// Options configures a Solver.
type Options struct {
	// Tolerance is passed to gonum's Simplex as the optimality threshold.
	Tolerance float64

	// Duals enables the dual solve. Disabled duals halve the work for
	// callers that only read objective and values.
	Duals bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Tolerance=DefaultTolerance and Duals=true.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, Duals: true}
}

// WithTolerance overrides the optimality tolerance. Non-positive values
// are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithDuals toggles the dual solve.
func WithDuals(enabled bool) Option {
	return func(o *Options) { o.Duals = enabled }
}

// Solver is a stateless lp.Solver backed by gonum.
type Solver struct {
	opts Options
}

var _ lp.Solver = (*Solver)(nil)

// New returns a Solver configured by opts.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{opts: o}
}

// standardForm is  min cᵀx, Ax = b, x ≥ 0  plus the bookkeeping needed to
// map columns and rows back to model names.
type standardForm struct {
	a    *mat.Dense
	b    []float64
	c    []float64
	nVar int // leading columns that are model variables; the rest are slacks
}

// Solve implements lp.Solver.
//
// Implementation:
//   - Stage 1: Validate the model (malformed input is the only error path).
//   - Stage 2: Build the standard form and prune dependent rows.
//   - Stage 3: Drop columns that appear in no kept row.
//   - Stage 4: Primal simplex; map gonum errors to statuses.
//   - Stage 5: Re-check pruned rows, recompute the objective exactly.
//   - Stage 6: Optional dual simplex for per-constraint duals.
func (s *Solver) Solve(ctx context.Context, m *lp.Model) (sol *lp.Solution, err error) {
	if err = m.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if cerr := ctx.Err(); cerr != nil {
		return lp.Undetermined(cerr.Error()), nil
	}

	// gonum panics on shape violations; none should reach it, but a panic
	// must still surface as Undetermined rather than kill a probe worker.
	defer func() {
		if r := recover(); r != nil {
			sol, err = lp.Undetermined(fmt.Sprintf("simplex: backend panic: %v", r)), nil
		}
	}()

	sf := buildStandardForm(m)
	rows, _ := sf.a.Dims()
	cols := len(sf.c)

	kept := independentRows(sf.a)
	active := activeColumns(sf.a, kept, cols)

	// A column outside every kept row is a free-standing x ≥ 0.
	for j := 0; j < cols; j++ {
		if !active[j] && sf.c[j] < 0 {
			return &lp.Solution{Status: lp.StatusUnbounded, Reason: "simplex: unconstrained column with negative cost"}, nil
		}
	}
	colIdx := make([]int, 0, cols)
	for j := 0; j < cols; j++ {
		if active[j] {
			colIdx = append(colIdx, j)
		}
	}

	x := make([]float64, cols)
	if len(kept) > 0 {
		subA, subB, subC := extract(sf, kept, colIdx)
		_, subX, serr := golp.Simplex(subC, subA, subB, s.opts.Tolerance, nil)
		if serr != nil {
			return statusFromError(serr), nil
		}
		for k, j := range colIdx {
			x[j] = snap(subX[k])
		}
	}

	// Pruned rows must hold at the returned point.
	for i := range sf.b {
		var lhs float64
		if i < rows {
			lhs = floats.Dot(sf.a.RawRowView(i), x)
		}
		if math.Abs(lhs-sf.b[i]) > feasTol*math.Max(1, math.Abs(sf.b[i])) {
			return &lp.Solution{
				Status: lp.StatusInfeasible,
				Reason: fmt.Sprintf("simplex: row %q is inconsistent with the rest of the system", m.Constraints[i].Name),
			}, nil
		}
	}

	values := make(map[string]float64, sf.nVar)
	for j := 0; j < sf.nVar; j++ {
		values[m.Vars[j]] = x[j]
	}
	sol = &lp.Solution{
		Status:    lp.StatusOptimal,
		Objective: m.Evaluate(values),
		Values:    values,
	}

	if s.opts.Duals && ctx.Err() == nil {
		sol.Duals = s.duals(sf, kept, colIdx, m)
	}

	return sol, nil
}

// buildStandardForm lays out model variables first, then one slack or
// surplus column per inequality row in row order.
func buildStandardForm(m *lp.Model) standardForm {
	nVar := len(m.Vars)
	nSlack := 0
	for _, c := range m.Constraints {
		if c.Sense != lp.EQ {
			nSlack++
		}
	}
	rows, cols := len(m.Constraints), nVar+nSlack

	var a *mat.Dense
	if rows > 0 && cols > 0 {
		a = mat.NewDense(rows, cols, nil)
	} else {
		a = &mat.Dense{}
	}
	b := make([]float64, rows)
	c := make([]float64, cols)

	idx := m.VarIndex()
	for _, t := range m.Objective {
		c[idx[t.Var]] += t.Coef
	}

	slack := nVar
	for i, con := range m.Constraints {
		for _, t := range con.Terms {
			j := idx[t.Var]
			a.Set(i, j, a.At(i, j)+t.Coef)
		}
		switch con.Sense {
		case lp.LE:
			a.Set(i, slack, 1)
			slack++
		case lp.GE:
			a.Set(i, slack, -1)
			slack++
		}
		b[i] = con.RHS
	}

	return standardForm{a: a, b: b, c: c, nVar: nVar}
}

// independentRows runs modified Gram–Schmidt over the rows of a and
// returns the indices of rows that extend the span, in order.
func independentRows(a *mat.Dense) []int {
	rows, cols := a.Dims()
	if rows == 0 || cols == 0 {
		return nil
	}
	basis := make([][]float64, 0, rows)
	kept := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		row := a.RawRowView(i)
		norm := floats.Norm(row, 2)
		if norm == 0 {
			continue
		}
		v := append([]float64(nil), row...)
		for _, q := range basis {
			floats.AddScaled(v, -floats.Dot(v, q), q)
		}
		res := floats.Norm(v, 2)
		if res <= rankTol*norm {
			continue
		}
		floats.Scale(1/res, v)
		basis = append(basis, v)
		kept = append(kept, i)
	}

	return kept
}

func activeColumns(a *mat.Dense, kept []int, cols int) []bool {
	active := make([]bool, cols)
	for _, i := range kept {
		for j, v := range a.RawRowView(i) {
			if v != 0 {
				active[j] = true
			}
		}
	}

	return active
}

func extract(sf standardForm, rowIdx, colIdx []int) (*mat.Dense, []float64, []float64) {
	subA := mat.NewDense(len(rowIdx), len(colIdx), nil)
	subB := make([]float64, len(rowIdx))
	subC := make([]float64, len(colIdx))
	for r, i := range rowIdx {
		for k, j := range colIdx {
			subA.Set(r, k, sf.a.At(i, j))
		}
		subB[r] = sf.b[i]
	}
	for k, j := range colIdx {
		subC[k] = sf.c[j]
	}

	return subA, subB, subC
}

// duals solves  max bᵀy  s.t.  Aᵀy ≤ c  on the kept rows and active
// columns. Returns nil when the dual solve fails.
func (s *Solver) duals(sf standardForm, kept, colIdx []int, m *lp.Model) map[string]float64 {
	out := make(map[string]float64, len(m.Constraints))
	for _, con := range m.Constraints {
		out[con.Name] = 0
	}
	mk, n := len(kept), len(colIdx)
	if mk == 0 {
		return out
	}

	// Columns: y⁺ (mk) | y⁻ (mk) | s (n).  Rows: one per active primal column.
	width := 2*mk + n
	ad := mat.NewDense(n, width, nil)
	bd := make([]float64, n)
	cd := make([]float64, width)
	for k, j := range colIdx {
		for r, i := range kept {
			v := sf.a.At(i, j)
			ad.Set(k, r, v)
			ad.Set(k, mk+r, -v)
		}
		ad.Set(k, 2*mk+k, 1)
		bd[k] = sf.c[j]
	}
	for r, i := range kept {
		cd[r] = -sf.b[i]
		cd[mk+r] = sf.b[i]
	}

	_, y, err := golp.Simplex(cd, ad, bd, s.opts.Tolerance, nil)
	if err != nil {
		return nil
	}
	for r, i := range kept {
		out[m.Constraints[i].Name] = snap(y[r] - y[mk+r])
	}

	return out
}

func statusFromError(err error) *lp.Solution {
	switch {
	case errors.Is(err, golp.ErrInfeasible):
		return &lp.Solution{Status: lp.StatusInfeasible, Reason: err.Error()}
	case errors.Is(err, golp.ErrUnbounded):
		return &lp.Solution{Status: lp.StatusUnbounded, Reason: err.Error()}
	default:
		return lp.Undetermined(err.Error())
	}
}

func snap(v float64) float64 {
	if math.Abs(v) < zeroSnap {
		return 0
	}

	return v
}
