package sensitivity

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/network"
)

// Report aggregates one full analysis run. It is built once by Analyze
// and never modified afterwards.
type Report struct {
	RunID           string           `json:"run_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Baseline        *flow.Result     `json:"baseline"`
	Basic           []network.ArcID  `json:"basic"`
	NonBasic        []network.ArcID  `json:"non_basic"`
	ShadowPrices    []ShadowPrice    `json:"shadow_prices"`
	Impacts         []ImpactRecord   `json:"impacts"`
	Critical        []ImpactRecord   `json:"critical"`
	Ranges          []Range          `json:"ranges"`
	Scenarios       []ScenarioResult `json:"scenarios"`
	Recommendations Recommendations  `json:"recommendations"`
	Undetermined    int              `json:"undetermined"`
}

// Recommendations turns the analysis into actionable data.
//
// Contract lists the critical routes worth securing with long-term
// contracts. Expand lists binding constraints by decreasing |dual|.
// Contingency is the largest cost increase among determined scenarios.
type Recommendations struct {
	Robust      bool           `json:"robust"`
	Contract    []ImpactRecord `json:"contract"`
	Expand      []ShadowPrice  `json:"expand"`
	Budget      float64        `json:"budget"`
	Contingency float64        `json:"contingency"`
}

// Analyze runs the baseline and every analysis at costs. A nil scenarios
// slice selects DefaultScenarios.
//
// Implementation:
//   - Stage 1: Validate scenarios and solve the baseline (errors are fatal).
//   - Stage 2: Shadow prices and basic/non-basic split from the baseline.
//   - Stage 3: Cost impact, ranges and scenarios; failed probes are data.
//   - Stage 4: Aggregate into an immutable Report.
func (e *Engine) Analyze(ctx context.Context, costs network.Costs, scenarios []Scenario) (*Report, error) {
	ctx = orBackground(ctx)
	if scenarios == nil {
		scenarios = DefaultScenarios()
	}
	if err := ValidateScenarios(scenarios); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := e.log.With(zap.String("run_id", runID))
	start := time.Now()
	log.Info("analysis started",
		zap.Int("arcs", e.topo.NumArcs()),
		zap.Int("scenarios", len(scenarios)),
		zap.Int("workers", e.opts.Workers),
	)

	base, err := e.Baseline(ctx, costs)
	if err != nil {
		log.Error("baseline failed", zap.Error(err))

		return nil, err
	}

	impacts, err := e.CostImpact(ctx, costs, base)
	if err != nil {
		return nil, err
	}
	ranges, err := e.OptimalityRanges(ctx, costs, base)
	if err != nil {
		return nil, err
	}
	scen, err := e.Scenarios(ctx, costs, base, scenarios)
	if err != nil {
		return nil, err
	}

	basic, nonBasic := flow.Classify(base, e.opts.Tolerance)
	shadow := e.ShadowPrices(base)
	critical := CriticalRoutes(impacts)

	r := &Report{
		RunID:        runID,
		GeneratedAt:  start.UTC(),
		Baseline:     base,
		Basic:        basic,
		NonBasic:     nonBasic,
		ShadowPrices: shadow,
		Impacts:      impacts,
		Critical:     critical,
		Ranges:       ranges,
		Scenarios:    scen,
		Recommendations: Recommendations{
			Robust:      len(critical) == 0,
			Contract:    critical,
			Expand:      expansionCandidates(shadow),
			Budget:      base.Objective,
			Contingency: contingency(scen),
		},
	}
	for _, im := range impacts {
		if im.Undetermined() {
			r.Undetermined++
		}
	}
	for _, rg := range ranges {
		r.Undetermined += rg.FailedProbes
	}
	for _, s := range scen {
		if s.Undetermined() {
			r.Undetermined++
		}
	}

	log.Info("analysis finished",
		zap.Float64("objective", base.Objective),
		zap.Int("critical", len(critical)),
		zap.Int("undetermined", r.Undetermined),
		zap.Duration("elapsed", time.Since(start)),
	)

	return r, nil
}

func expansionCandidates(prices []ShadowPrice) []ShadowPrice {
	var out []ShadowPrice
	for _, p := range prices {
		if p.Binding != NotBinding {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b ShadowPrice) int {
		x, y := math.Abs(a.Value), math.Abs(b.Value)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		default:
			return 0
		}
	})

	return out
}

func contingency(results []ScenarioResult) float64 {
	var m float64
	for _, r := range results {
		if !r.Undetermined() && r.Change > m {
			m = r.Change
		}
	}

	return m
}
