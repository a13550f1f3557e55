package sensitivity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

// Sentinel errors.
var (
	// ErrNilTopology is returned by New without a topology.
	ErrNilTopology = errors.New("sensitivity: nil topology")

	// ErrNilSolver is returned by New without a solver.
	ErrNilSolver = errors.New("sensitivity: nil solver")

	// ErrBaselineNotOptimal means the unperturbed network did not solve to
	// optimality; no analysis can be anchored on it.
	ErrBaselineNotOptimal = errors.New("sensitivity: baseline is not optimal")

	// ErrNoBaseline is returned when an analysis receives a nil or
	// non-optimal baseline result.
	ErrNoBaseline = errors.New("sensitivity: missing optimal baseline")

	// ErrBadFactor is returned for a scenario factor that is not a finite
	// positive number.
	ErrBadFactor = errors.New("sensitivity: scenario factor must be positive")
)

// Engine re-solves one network under perturbed costs. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	topo   *network.Topology
	solver lp.Solver
	opts   Options
	rows   []network.Row
	log    *zap.Logger
}

// New returns an Engine over t that solves with solver.
func New(t *network.Topology, solver lp.Solver, opts ...Option) (*Engine, error) {
	if t == nil {
		return nil, ErrNilTopology
	}
	if solver == nil {
		return nil, ErrNilSolver
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Capacities.Validate(t); err != nil {
		return nil, err
	}

	return &Engine{
		topo:   t,
		solver: solver,
		opts:   o,
		rows:   t.Rows(o.Capacities),
		log:    o.Logger.Named("sensitivity"),
	}, nil
}

// Options returns a copy of the engine settings.
func (e *Engine) Options() Options {
	o := e.opts
	o.LowerProbes = append([]float64(nil), o.LowerProbes...)
	o.UpperProbes = append([]float64(nil), o.UpperProbes...)
	o.Capacities = o.Capacities.Clone()

	return o
}

// Baseline solves the network at costs. A non-Optimal outcome is an error
// wrapping ErrBaselineNotOptimal; configuration problems surface as
// network.ErrConfig.
func (e *Engine) Baseline(ctx context.Context, costs network.Costs) (*flow.Result, error) {
	ctx = orBackground(ctx)
	f, err := e.topo.Build(costs, e.opts.Capacities)
	if err != nil {
		return nil, err
	}
	res := flow.Solve(ctx, e.solver, f, e.opts.Tolerance)
	if !res.Optimal() {
		return nil, fmt.Errorf("%w: %s: %s", ErrBaselineNotOptimal, res.Status, res.Reason)
	}

	return res, nil
}

// probe is one re-solve at a derived cost vector. Only res is written by
// the worker that runs it.
type probe struct {
	arc    network.ArcID
	label  string
	factor float64
	costs  network.Costs
	res    *flow.Result
}

// runProbes solves every probe against the rows of f, in parallel when
// Workers > 1. Results land in each probe's own slot.
func (e *Engine) runProbes(ctx context.Context, f *network.Formulation, probes []*probe) {
	failed := atomic.NewInt64(0)
	defer func() {
		e.log.Debug("probes finished", zap.Int("probes", len(probes)), zap.Int64("failed", failed.Load()))
	}()

	run := func(p *probe) {
		g, err := f.WithCosts(p.costs)
		if err != nil {
			p.res = &flow.Result{Status: lp.StatusUndetermined, Arcs: f.Topology().Arcs(), Reason: err.Error()}
		} else {
			p.res = flow.Solve(ctx, e.solver, g, e.opts.Tolerance)
		}
		if !p.res.Optimal() {
			failed.Inc()
			e.log.Warn("probe not optimal",
				zap.String("probe", p.label),
				zap.Stringer("arc", p.arc),
				zap.Float64("factor", p.factor),
				zap.Stringer("status", p.res.Status),
				zap.String("reason", p.res.Reason),
			)
		}
	}

	if e.opts.Workers <= 1 || len(probes) < 2 {
		for _, p := range probes {
			run(p)
		}

		return
	}

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(e.opts.Workers, func(arg any) {
		defer wg.Done()
		run(arg.(*probe))
	})
	if err != nil {
		e.log.Warn("probe pool unavailable, running sequentially", zap.Error(err))
		for _, p := range probes {
			run(p)
		}

		return
	}
	defer pool.Release()

	for _, p := range probes {
		wg.Add(1)
		if err = pool.Invoke(p); err != nil {
			wg.Done()
			run(p)
		}
	}
	wg.Wait()
}

// formulation validates costs once for a batch of probes.
func (e *Engine) formulation(costs network.Costs, base *flow.Result) (*network.Formulation, error) {
	if !base.Optimal() {
		return nil, ErrNoBaseline
	}

	return e.topo.Build(costs, e.opts.Capacities)
}
