package capacity

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

var (
	// ErrNilSolver is returned by New without a solver.
	ErrNilSolver = errors.New("capacity: nil solver")

	// ErrNilTopology is returned by Evaluate without a topology.
	ErrNilTopology = errors.New("capacity: nil topology")
)

// Effect describes how capacities moved the optimal cost.
type Effect int

const (
	// EffectUndetermined means one of the two solves failed.
	EffectUndetermined Effect = iota
	// EffectUnchanged means both objectives agree within tolerance.
	EffectUnchanged
	// EffectIncrease means capacities raised the optimal cost.
	EffectIncrease
	// EffectDecrease means capacities lowered the optimal cost. A
	// restriction can never do that, so the model is inconsistent.
	EffectDecrease
	// EffectInfeasible means a variant has no optimum at all.
	EffectInfeasible
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectUnchanged:
		return "Unchanged"
	case EffectIncrease:
		return "Increase"
	case EffectDecrease:
		return "Decrease"
	case EffectInfeasible:
		return "Infeasible"
	default:
		return "Undetermined"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// ActiveBound is a capacity the capacitated optimum runs up against.
type ActiveBound struct {
	Arc      network.ArcID `json:"arc"`
	Flow     float64       `json:"flow"`
	Capacity float64       `json:"capacity"`
}

// Comparison is the outcome of Evaluate.
type Comparison struct {
	Uncapacitated *flow.Result    `json:"uncapacitated"`
	Capacitated   *flow.Result    `json:"capacitated"`
	Difference    float64         `json:"difference"`
	DifferencePct float64         `json:"difference_pct"`
	Effect        Effect          `json:"effect"`
	Active        []ActiveBound   `json:"active,omitempty"`
	Throughput    flow.Throughput `json:"throughput"`
}

// Anomalous reports a capacitated cost below the uncapacitated one.
func (c *Comparison) Anomalous() bool { return c.Effect == EffectDecrease }

// Evaluator compares a network with and without capacities.
type Evaluator struct {
	solver lp.Solver
	tol    float64
	log    *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTolerance sets the tolerance for active bounds and for comparing
// objectives. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(e *Evaluator) {
		if tol > 0 {
			e.tol = tol
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Evaluator backed by solver.
func New(solver lp.Solver, opts ...Option) (*Evaluator, error) {
	if solver == nil {
		return nil, ErrNilSolver
	}
	e := &Evaluator{solver: solver, tol: flow.DefaultTolerance, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("capacity")

	return e, nil
}

// Evaluate solves t at costs once without capacities and once with caps,
// then compares the two optima.
//
// Configuration errors are returned before any solve. Solver trouble is
// not an error: the affected result carries its status and Effect
// becomes Undetermined or Infeasible.
func (e *Evaluator) Evaluate(ctx context.Context, t *network.Topology, costs network.Costs, caps network.Capacities) (*Comparison, error) {
	if t == nil {
		return nil, ErrNilTopology
	}
	if ctx == nil {
		ctx = context.Background()
	}
	free, err := t.Build(costs, nil)
	if err != nil {
		return nil, err
	}
	bounded, err := t.Build(costs, caps)
	if err != nil {
		return nil, err
	}

	c := &Comparison{
		Uncapacitated: flow.Solve(ctx, e.solver, free, e.tol),
		Capacitated:   flow.Solve(ctx, e.solver, bounded, e.tol),
	}
	if c.Throughput, err = flow.MaxThroughput(ctx, t, caps); err != nil {
		e.log.Warn("throughput not computed", zap.Error(err))
	}
	c.Effect = e.effect(c.Uncapacitated, c.Capacitated)

	if c.Uncapacitated.Optimal() && c.Capacitated.Optimal() {
		c.Difference = c.Capacitated.Objective - c.Uncapacitated.Objective
		if c.Uncapacitated.Objective != 0 {
			c.DifferencePct = c.Difference / c.Uncapacitated.Objective * 100
		}
	}
	if c.Capacitated.Optimal() {
		for _, a := range t.Arcs() {
			limit, ok := caps[a]
			if !ok {
				continue
			}
			if x := c.Capacitated.Flows[a]; math.Abs(x-limit) < e.tol {
				c.Active = append(c.Active, ActiveBound{Arc: a, Flow: x, Capacity: limit})
			}
		}
	}

	fields := []zap.Field{
		zap.Stringer("effect", c.Effect),
		zap.Float64("difference", c.Difference),
		zap.Int("active", len(c.Active)),
	}
	switch c.Effect {
	case EffectDecrease:
		e.log.Warn("capacitated cost below uncapacitated cost", fields...)
	case EffectInfeasible, EffectUndetermined:
		e.log.Warn("capacity comparison incomplete", append(fields,
			zap.Stringer("uncapacitated", c.Uncapacitated.Status),
			zap.Stringer("capacitated", c.Capacitated.Status),
			zap.Float64("shortfall", c.Throughput.Shortfall),
		)...)
	default:
		e.log.Info("capacity comparison", fields...)
	}

	return c, nil
}

func (e *Evaluator) effect(free, bounded *flow.Result) Effect {
	switch {
	case free.Status == lp.StatusUndetermined || bounded.Status == lp.StatusUndetermined:
		return EffectUndetermined
	case !free.Optimal() || !bounded.Optimal():
		return EffectInfeasible
	}
	d := bounded.Objective - free.Objective
	switch {
	case d > e.tol:
		return EffectIncrease
	case d < -e.tol:
		return EffectDecrease
	default:
		return EffectUnchanged
	}
}
