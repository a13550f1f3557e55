package sensitivity

import (
	"context"
	"math"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/network"
)

// Range is the empirical optimality interval of one arc cost.
//
// Lower and Upper are the accepted probe costs, or BaseCost on a side
// where no probe kept the arc's flow (zero-width side). LowerFactor and
// UpperFactor are the matching multipliers, 1 on a fallback side.
type Range struct {
	Arc          network.ArcID `json:"arc"`
	Flow         float64       `json:"flow"`
	BaseCost     float64       `json:"base_cost"`
	Lower        float64       `json:"lower"`
	Upper        float64       `json:"upper"`
	LowerFactor  float64       `json:"lower_factor"`
	UpperFactor  float64       `json:"upper_factor"`
	FailedProbes int           `json:"failed_probes"`
}

// Width returns Upper − Lower.
func (r Range) Width() float64 { return r.Upper - r.Lower }

// OptimalityRanges probes every arc with the lower and upper multiplier
// ladders. On each side the first multiplier, in ladder order, whose
// re-solve leaves the arc's flow within tolerance of the baseline flow is
// accepted.
//
// All probes of a ladder are solved; the result equals stopping at the
// first match. FailedProbes counts non-optimal probes up to and including
// the accepted one (the whole ladder when none matches). A failed probe
// never matches.
func (e *Engine) OptimalityRanges(ctx context.Context, costs network.Costs, base *flow.Result) ([]Range, error) {
	ctx = orBackground(ctx)
	f, err := e.formulation(costs, base)
	if err != nil {
		return nil, err
	}
	arcs := e.topo.Arcs()
	lower, upper := e.opts.LowerProbes, e.opts.UpperProbes
	per := len(lower) + len(upper)

	probes := make([]*probe, 0, per*len(arcs))
	for _, a := range arcs {
		for _, ladder := range [][]float64{lower, upper} {
			for _, m := range ladder {
				probes = append(probes, &probe{arc: a, label: "range", factor: m, costs: costs.With(a, costs[a]*m)})
			}
		}
	}
	e.runProbes(ctx, f, probes)

	out := make([]Range, len(arcs))
	for i, a := range arcs {
		own := probes[i*per : (i+1)*per]
		r := Range{Arc: a, Flow: base.Flow(a), BaseCost: costs[a]}

		var failed int
		r.LowerFactor, failed = e.accept(own[:len(lower)], a, r.Flow)
		r.FailedProbes += failed
		r.UpperFactor, failed = e.accept(own[len(lower):], a, r.Flow)
		r.FailedProbes += failed

		r.Lower = r.BaseCost * r.LowerFactor
		r.Upper = r.BaseCost * r.UpperFactor
		out[i] = r
	}

	return out, nil
}

// accept walks one ladder in order and returns the first matching
// multiplier (1 when none) and the failures seen on the way.
func (e *Engine) accept(ladder []*probe, a network.ArcID, flow0 float64) (float64, int) {
	failed := 0
	for _, p := range ladder {
		if !p.res.Optimal() {
			failed++

			continue
		}
		if math.Abs(p.res.Flow(a)-flow0) < e.opts.Tolerance {
			return p.factor, failed
		}
	}

	return 1, failed
}
