package sensitivity

import (
	"math"
	"strconv"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/network"
)

// Binding classifies a constraint by the sign of its dual.
type Binding int

const (
	// NotBinding means |dual| < tolerance: the constraint has slack.
	NotBinding Binding = iota
	// RelaxReduces means dual > 0.
	RelaxReduces
	// RaisesCost means dual < 0.
	RaisesCost
)

// String returns the class name.
func (b Binding) String() string {
	switch b {
	case RelaxReduces:
		return "RelaxReduces"
	case RaisesCost:
		return "RaisesCost"
	default:
		return "NotBinding"
	}
}

// MarshalText renders the class name in JSON output.
func (b Binding) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// ShadowPrice is the dual of one constraint with its reading.
type ShadowPrice struct {
	Constraint     string          `json:"constraint"`
	Kind           network.RowKind `json:"-"`
	Node           string          `json:"node,omitempty"`
	Arc            *network.ArcID  `json:"arc,omitempty"`
	Value          float64         `json:"value"`
	Binding        Binding         `json:"binding"`
	Interpretation string          `json:"interpretation"`
}

// Classify maps a dual value to its Binding class.
func Classify(dual, tol float64) Binding {
	switch {
	case math.Abs(dual) < tol:
		return NotBinding
	case dual > 0:
		return RelaxReduces
	default:
		return RaisesCost
	}
}

// Interpret returns the human reading of a dual value.
func Interpret(b Binding, dual float64) string {
	switch b {
	case RelaxReduces:
		return "relaxing this constraint's bound reduces total cost by " + formatAmount(math.Abs(dual)) + " per unit"
	case RaisesCost:
		return "tightening/relaxing this demand increases cost by " + formatAmount(math.Abs(dual)) + " per unit"
	default:
		return "constraint not binding"
	}
}

// ShadowPrices reads the dual of every constraint from base, in
// formulation order. Constraints without a dual read as zero. It returns
// nil when base is not Optimal.
func (e *Engine) ShadowPrices(base *flow.Result) []ShadowPrice {
	if !base.Optimal() {
		return nil
	}
	out := make([]ShadowPrice, 0, len(e.rows))
	for _, r := range e.rows {
		v := base.Duals[r.Name]
		b := Classify(v, e.opts.Tolerance)
		sp := ShadowPrice{
			Constraint:     r.Name,
			Kind:           r.Kind,
			Node:           r.Node,
			Value:          v,
			Binding:        b,
			Interpretation: Interpret(b, v),
		}
		if r.Kind == network.RowCapacity {
			a := r.Arc
			sp.Arc = &a
		}
		out = append(out, sp)
	}

	return out
}

func formatAmount(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
