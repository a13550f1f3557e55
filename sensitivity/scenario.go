package sensitivity

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/network"
)

// Scenario scales every arc cost by Factor.
type Scenario struct {
	Name   string  `json:"name" mapstructure:"name" yaml:"name"`
	Factor float64 `json:"factor" mapstructure:"factor" yaml:"factor"`
}

// DefaultScenarios returns optimistic (0.9), pessimistic (1.1) and
// inflationary (1.15).
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "optimistic", Factor: 0.9},
		{Name: "pessimistic", Factor: 1.1},
		{Name: "inflationary", Factor: 1.15},
	}
}

// ValidateScenarios rejects non-positive or non-finite factors.
func ValidateScenarios(scenarios []Scenario) error {
	for _, s := range scenarios {
		if !(s.Factor > 0) || math.IsInf(s.Factor, 0) {
			return fmt.Errorf("%w: %q has %g", ErrBadFactor, s.Name, s.Factor)
		}
	}

	return nil
}

// ScenarioResult is the outcome of one scenario. Objective, Change and
// ChangePct are meaningful only when Status is Optimal. ChangePct is zero
// for a zero baseline.
type ScenarioResult struct {
	Scenario
	Status    lp.Status `json:"status"`
	Objective float64   `json:"objective"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
}

// Undetermined reports whether the scenario solve failed.
func (r ScenarioResult) Undetermined() bool { return !r.Status.IsOptimal() }

// Scenarios re-solves once per scenario with every cost scaled by its
// factor and reports the change against base. Results follow input order.
func (e *Engine) Scenarios(ctx context.Context, costs network.Costs, base *flow.Result, scenarios []Scenario) ([]ScenarioResult, error) {
	ctx = orBackground(ctx)
	if err := ValidateScenarios(scenarios); err != nil {
		return nil, err
	}
	f, err := e.formulation(costs, base)
	if err != nil {
		return nil, err
	}

	probes := make([]*probe, len(scenarios))
	for i, s := range scenarios {
		probes[i] = &probe{label: "scenario " + s.Name, factor: s.Factor, costs: costs.Scaled(s.Factor)}
	}
	e.runProbes(ctx, f, probes)

	out := make([]ScenarioResult, len(scenarios))
	for i, s := range scenarios {
		res := probes[i].res
		r := ScenarioResult{Scenario: s, Status: res.Status}
		if res.Optimal() {
			r.Objective = res.Objective
			r.Change = res.Objective - base.Objective
			if base.Objective != 0 {
				r.ChangePct = r.Change / base.Objective * 100
			}
		}
		out[i] = r
	}

	return out, nil
}
