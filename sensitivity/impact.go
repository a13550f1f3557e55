package sensitivity

import (
	"context"
	"math"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

// Impact is the magnitude class of a cost-change probe pair.
type Impact int

const (
	// ImpactUndetermined marks a pair with at least one failed probe.
	ImpactUndetermined Impact = iota
	// ImpactLow is max |Δ| below the low threshold.
	ImpactLow
	// ImpactMedium is max |Δ| below the high threshold.
	ImpactMedium
	// ImpactHigh is everything else.
	ImpactHigh
)

// String returns the class name.
func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "Low"
	case ImpactMedium:
		return "Medium"
	case ImpactHigh:
		return "High"
	default:
		return "Undetermined"
	}
}

// MarshalText renders the class name in JSON output.
func (i Impact) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// ImpactRecord is the cost-change sensitivity of one arc.
//
// DeltaLow and DeltaHigh are objective(perturbed) − objective(baseline)
// for the cost scaled down and up; each is meaningful only when its
// status is Optimal.
type ImpactRecord struct {
	Arc        network.ArcID `json:"arc"`
	BaseCost   float64       `json:"base_cost"`
	Flow       float64       `json:"flow"`
	DeltaLow   float64       `json:"delta_low"`
	DeltaHigh  float64       `json:"delta_high"`
	LowStatus  lp.Status     `json:"low_status"`
	HighStatus lp.Status     `json:"high_status"`
	Impact     Impact        `json:"impact"`
}

// MaxDelta returns max(|DeltaLow|, |DeltaHigh|) over the determined sides.
func (r ImpactRecord) MaxDelta() float64 {
	var m float64
	if r.LowStatus.IsOptimal() {
		m = math.Abs(r.DeltaLow)
	}
	if r.HighStatus.IsOptimal() {
		m = math.Max(m, math.Abs(r.DeltaHigh))
	}

	return m
}

// Undetermined reports whether either probe failed.
func (r ImpactRecord) Undetermined() bool { return r.Impact == ImpactUndetermined }

// classify maps a magnitude onto the configured bands.
func (e *Engine) classify(m float64) Impact {
	switch {
	case m < e.opts.Low:
		return ImpactLow
	case m < e.opts.High:
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// CostImpact re-solves the network twice per arc, with that arc's cost
// scaled by (1−p) and (1+p) and every other cost at baseline. Records
// follow arc declaration order.
//
// The error is reserved for an invalid cost vector or a missing baseline;
// failed probes only mark their record Undetermined.
func (e *Engine) CostImpact(ctx context.Context, costs network.Costs, base *flow.Result) ([]ImpactRecord, error) {
	ctx = orBackground(ctx)
	f, err := e.formulation(costs, base)
	if err != nil {
		return nil, err
	}
	arcs := e.topo.Arcs()
	down, up := 1-e.opts.Perturbation, 1+e.opts.Perturbation

	probes := make([]*probe, 0, 2*len(arcs))
	for _, a := range arcs {
		probes = append(probes,
			&probe{arc: a, label: "impact", factor: down, costs: costs.With(a, costs[a]*down)},
			&probe{arc: a, label: "impact", factor: up, costs: costs.With(a, costs[a]*up)},
		)
	}
	e.runProbes(ctx, f, probes)

	out := make([]ImpactRecord, len(arcs))
	for i, a := range arcs {
		lo, hi := probes[2*i].res, probes[2*i+1].res
		r := ImpactRecord{
			Arc:        a,
			BaseCost:   costs[a],
			Flow:       base.Flow(a),
			LowStatus:  lo.Status,
			HighStatus: hi.Status,
		}
		if lo.Optimal() {
			r.DeltaLow = lo.Objective - base.Objective
		}
		if hi.Optimal() {
			r.DeltaHigh = hi.Objective - base.Objective
		}
		if lo.Optimal() && hi.Optimal() {
			r.Impact = e.classify(r.MaxDelta())
		}
		out[i] = r
	}

	return out, nil
}

// CriticalRoutes returns the High-impact records, in input order.
func CriticalRoutes(records []ImpactRecord) []ImpactRecord {
	var out []ImpactRecord
	for _, r := range records {
		if r.Impact == ImpactHigh {
			out = append(out, r)
		}
	}

	return out
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
