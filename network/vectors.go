package network

import (
	"fmt"
	"math"
	"slices"
)

// Costs maps every arc to its per-unit transport cost.
//
// Methods that derive a new vector always allocate a fresh map, so a
// perturbed copy can be handed to a concurrent probe while the baseline is
// read elsewhere.
type Costs map[ArcID]float64

// Clone returns an independent copy.
func (c Costs) Clone() Costs {
	out := make(Costs, len(c))
	for a, v := range c {
		out[a] = v
	}

	return out
}

// Scaled returns a copy with every cost multiplied by f.
func (c Costs) Scaled(f float64) Costs {
	out := make(Costs, len(c))
	for a, v := range c {
		out[a] = v * f
	}

	return out
}

// With returns a copy in which arc a costs v.
func (c Costs) With(a ArcID, v float64) Costs {
	out := c.Clone()
	out[a] = v

	return out
}

// Validate checks that c prices exactly the arcs of t with finite,
// non-negative values.
func (c Costs) Validate(t *Topology) error {
	for _, a := range t.arcs {
		v, ok := c[a]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCost, a)
		}
		if err := checkValue(a, v, ErrNegativeCost); err != nil {
			return err
		}
	}
	if len(c) != len(t.arcs) {
		if a, ok := firstUnknown(t, c); ok {
			return fmt.Errorf("%w: cost for %s", ErrUnknownArc, a)
		}
	}

	return nil
}

// Capacities maps arcs to an upper bound on their flow. Arcs absent from
// the map are uncapacitated; a nil map means no bounds at all.
type Capacities map[ArcID]float64

// Clone returns an independent copy; nil stays nil.
func (c Capacities) Clone() Capacities {
	if c == nil {
		return nil
	}
	out := make(Capacities, len(c))
	for a, v := range c {
		out[a] = v
	}

	return out
}

// Validate checks that every entry names an arc of t and is finite and
// non-negative.
func (c Capacities) Validate(t *Topology) error {
	if a, ok := firstUnknown(t, c); ok {
		return fmt.Errorf("%w: capacity for %s", ErrUnknownArc, a)
	}
	for _, a := range t.arcs {
		v, ok := c[a]
		if !ok {
			continue
		}
		if err := checkValue(a, v, ErrNegativeCapacity); err != nil {
			return err
		}
	}

	return nil
}

// Uniform returns a map bounding every arc of t by v.
func Uniform(t *Topology, v float64) Capacities {
	out := make(Capacities, len(t.arcs))
	for _, a := range t.arcs {
		out[a] = v
	}

	return out
}

func checkValue(a ArcID, v float64, negErr error) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s", ErrNonFinite, a)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s is %g", negErr, a, v)
	}

	return nil
}

// firstUnknown returns the lexically smallest key of m that is not an arc
// of t, so error messages are deterministic.
func firstUnknown[M ~map[ArcID]float64](t *Topology, m M) (ArcID, bool) {
	var unknown []string
	byName := make(map[string]ArcID)
	for a := range m {
		if !t.HasArc(a) {
			unknown = append(unknown, a.String())
			byName[a.String()] = a
		}
	}
	if len(unknown) == 0 {
		return ArcID{}, false
	}
	slices.Sort(unknown)

	return byName[unknown[0]], true
}
