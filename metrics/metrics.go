// Package metrics instruments an lp.Solver with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/transship/lp"
)

// Metric names.
const (
	SolvesTotal   = "transship_solves_total"
	SolveDuration = "transship_solve_duration_seconds"
	SolvesFlight  = "transship_solves_in_flight"
)

// statusError labels solves that returned an error instead of a solution.
const statusError = "Error"

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return reg
}

// Solver is an lp.Solver that records every solve.
type Solver struct {
	next     lp.Solver
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var _ lp.Solver = (*Solver)(nil)

// Instrument wraps next and registers its collectors on reg. Collectors
// already registered by an earlier Instrument call on the same registry
// are reused.
func Instrument(next lp.Solver, reg prometheus.Registerer) (*Solver, error) {
	s := &Solver{
		next: next,
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: SolvesTotal, Help: "LP solves by terminal status."},
			[]string{"status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: SolveDuration, Help: "LP solve duration in seconds.", Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1}},
			[]string{"status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{Name: SolvesFlight, Help: "LP solves currently running."}),
	}

	var err error
	if s.solves, err = register(reg, s.solves); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.inFlight, err = register(reg, s.inFlight); err != nil {
		return nil, err
	}

	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

// Solve implements lp.Solver.
func (s *Solver) Solve(ctx context.Context, m *lp.Model) (*lp.Solution, error) {
	s.inFlight.Inc()
	start := time.Now()
	sol, err := s.next.Solve(ctx, m)
	elapsed := time.Since(start).Seconds()
	s.inFlight.Dec()

	status := statusError
	if err == nil && sol != nil {
		status = sol.Status.String()
	}
	s.solves.WithLabelValues(status).Inc()
	s.duration.WithLabelValues(status).Observe(elapsed)

	return sol, err
}

// Counts gathers reg and returns transship_solves_total per status label.
func Counts(reg prometheus.Gatherer) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != SolvesTotal {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" {
					out[l.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}

	return out, nil
}
