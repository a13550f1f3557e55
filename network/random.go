// SPDX-License-Identifier: MIT
//
// random.go - seeded generator of balanced transshipment networks.
//
// Contract:
//   - Sources, Hubs, Destinations ≥ 1; 0 ≤ Density ≤ 1; MaxCost ≥ 1;
//     MaxDemand ≥ 1 (else ErrConfig).
//   - rng must be non-nil.
//   - Every source reaches every hub. Destination j always has the arc
//     from hub j mod Hubs; any other hub→destination arc is kept with
//     probability Density. The network is therefore always feasible.
//   - Costs are integers in [1, MaxCost]; demands integers in
//     [1, MaxDemand]. Total supply equals total demand, split as evenly
//     as integers allow with the remainder on the last source.
//
// Determinism:
//   - Trials run in a fixed order (sources, then hubs × destinations), so
//     a fixed seed always yields the same network.

package network

import (
	"fmt"
	"math/rand"
	"strconv"
)

// RandomSpec sizes a generated network.
type RandomSpec struct {
	Sources      int
	Hubs         int
	Destinations int
	Density      float64
	MaxCost      int
	MaxDemand    int
}

// Random samples a balanced, feasible network from spec using rng.
func Random(spec RandomSpec, rng *rand.Rand) (*Network, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random network needs a rand source", ErrConfig)
	}
	if spec.Sources < 1 || spec.Hubs < 1 || spec.Destinations < 1 {
		return nil, fmt.Errorf("%w: random network needs at least one node per role, got %d/%d/%d",
			ErrConfig, spec.Sources, spec.Hubs, spec.Destinations)
	}
	if spec.Density < 0 || spec.Density > 1 {
		return nil, fmt.Errorf("%w: density %g not in [0,1]", ErrConfig, spec.Density)
	}
	if spec.MaxCost < 1 || spec.MaxDemand < 1 {
		return nil, fmt.Errorf("%w: MaxCost and MaxDemand must be at least 1", ErrConfig)
	}

	demands := make([]float64, spec.Destinations)
	var total int
	for j := range demands {
		d := 1 + rng.Intn(spec.MaxDemand)
		demands[j] = float64(d)
		total += d
	}

	b := NewBuilder()
	share := total / spec.Sources
	for i := 0; i < spec.Sources; i++ {
		supply := share
		if i == spec.Sources-1 {
			supply = total - share*(spec.Sources-1)
		}
		b.AddSource(randomID("S", i), float64(supply))
	}
	for h := 0; h < spec.Hubs; h++ {
		b.AddHub(randomID("H", h))
	}
	for j, d := range demands {
		b.AddDestination(randomID("D", j), d)
	}

	costs := make(Costs)
	price := func(a ArcID) { costs[a] = float64(1 + rng.Intn(spec.MaxCost)) }

	for i := 0; i < spec.Sources; i++ {
		for h := 0; h < spec.Hubs; h++ {
			a := ArcID{From: randomID("S", i), To: randomID("H", h)}
			b.AddArc(a.From, a.To)
			price(a)
		}
	}
	for h := 0; h < spec.Hubs; h++ {
		for j := 0; j < spec.Destinations; j++ {
			keep := rng.Float64() < spec.Density
			if j%spec.Hubs != h && !keep {
				continue
			}
			a := ArcID{From: randomID("H", h), To: randomID("D", j)}
			b.AddArc(a.From, a.To)
			price(a)
		}
	}

	t, err := b.Build()
	if err != nil {
		return nil, err
	}

	return &Network{Name: "random", Topology: t, Costs: costs}, nil
}

// randomID returns prefix followed by the 1-based index.
func randomID(prefix string, i int) string { return prefix + strconv.Itoa(i+1) }
