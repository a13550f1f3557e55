package sensitivity

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/network"
)

// Documented defaults.
const (
	// DefaultPerturbation is the relative cost change used by CostImpact.
	DefaultPerturbation = 0.10

	// DefaultLowThreshold and DefaultHighThreshold bound the Medium impact
	// band: max |Δobjective| < low is Low, < high is Medium, else High.
	DefaultLowThreshold  = 1.0
	DefaultHighThreshold = 100.0
)

// DefaultLowerProbes and DefaultUpperProbes are the multipliers tried by
// OptimalityRanges, in probe order.
var (
	DefaultLowerProbes = []float64{0.5, 0.7, 0.9}
	DefaultUpperProbes = []float64{1.5, 1.3, 1.1}
)

// Options configures an Engine.
type Options struct {
	Tolerance    float64
	Perturbation float64
	Low, High    float64
	LowerProbes  []float64
	UpperProbes  []float64
	Workers      int
	Capacities   network.Capacities
	Logger       *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the reference settings: tolerance 0.01, ±10%
// perturbation, thresholds 1 and 100, the default probe ladders,
// sequential execution, no capacities and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Tolerance:    flow.DefaultTolerance,
		Perturbation: DefaultPerturbation,
		Low:          DefaultLowThreshold,
		High:         DefaultHighThreshold,
		LowerProbes:  append([]float64(nil), DefaultLowerProbes...),
		UpperProbes:  append([]float64(nil), DefaultUpperProbes...),
		Workers:      1,
		Logger:       zap.NewNop(),
	}
}

// WithTolerance sets the flow activity tolerance. Non-positive values are
// ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithPerturbation sets p for the cost-impact probes at (1−p) and (1+p).
// Values outside (0, 1) are ignored.
func WithPerturbation(p float64) Option {
	return func(o *Options) {
		if p > 0 && p < 1 {
			o.Perturbation = p
		}
	}
}

// WithThresholds sets the Low/Medium and Medium/High boundaries. Ignored
// unless 0 ≤ low ≤ high.
func WithThresholds(low, high float64) Option {
	return func(o *Options) {
		if low >= 0 && low <= high {
			o.Low, o.High = low, high
		}
	}
}

// WithRangeProbes replaces the multiplier ladders of OptimalityRanges.
// Lower multipliers must lie in (0, 1), upper ones above 1; an invalid
// ladder leaves the current one in place.
func WithRangeProbes(lower, upper []float64) Option {
	return func(o *Options) {
		if validLadder(lower, 0, 1) {
			o.LowerProbes = append([]float64(nil), lower...)
		}
		if validLadder(upper, 1, 0) {
			o.UpperProbes = append([]float64(nil), upper...)
		}
	}
}

// validLadder checks lo < m and, when hi > 0, m < hi for every m.
func validLadder(ms []float64, lo, hi float64) bool {
	if len(ms) == 0 {
		return false
	}
	for _, m := range ms {
		if m <= lo || (hi > 0 && m >= hi) {
			return false
		}
	}

	return true
}

// WithWorkers sets the number of probes solved concurrently. n ≤ 1 runs
// probes sequentially on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Workers = n
	}
}

// WithCapacities analyses the capacitated variant of the network.
func WithCapacities(caps network.Capacities) Option {
	return func(o *Options) { o.Capacities = caps.Clone() }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
