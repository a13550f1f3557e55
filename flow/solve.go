package flow

import (
	"context"

	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

// Solve runs f on solver and never fails: a cancelled ctx, a solver
// error, an extraction error or an optimum that does not balance under
// tol all become an Undetermined Result carrying the reason. A nil ctx
// means context.Background().
func Solve(ctx context.Context, solver lp.Solver, f *network.Formulation, tol float64) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	undetermined := func(reason string) *Result {
		return &Result{Status: lp.StatusUndetermined, Arcs: f.Topology().Arcs(), Reason: reason}
	}
	if err := ctx.Err(); err != nil {
		return undetermined(err.Error())
	}
	sol, err := solver.Solve(ctx, f.Model())
	if err != nil {
		return undetermined(err.Error())
	}
	res, err := Extract(f, sol)
	if err != nil {
		return undetermined(err.Error())
	}
	if res.Optimal() {
		if err = Verify(f.Topology(), res.Flows, tol); err != nil {
			return undetermined(err.Error())
		}
	}

	return res
}
