// Package sensitivity runs post-optimal analysis of a transshipment
// network by re-solving it under perturbed cost vectors.
//
// An Engine binds a topology, an optional capacity map and an lp.Solver.
// Every analysis takes the baseline cost vector explicitly and returns its
// own immutable records; nothing accumulates on the Engine between calls.
//
// Analyses:
//
//   - ShadowPrices     direct read of baseline duals, no re-solve
//   - CostImpact       per arc, re-solve at cost×(1−p) and cost×(1+p)
//   - CriticalRoutes   arcs whose impact is High
//   - OptimalityRanges per arc, probe multipliers until the arc's flow
//     matches the baseline; zero-width side when none does
//   - Scenarios        uniform factor on every cost, one re-solve each
//   - Analyze          all of the above plus recommendations
//
// # Probes
//
// Each re-solve is a probe with its own freshly allocated cost vector, so
// probes never alias the baseline and may run concurrently. With
// WithWorkers(n>1) probes are dispatched on an ants goroutine pool.
//
// A probe whose solve is not Optimal, errors, or is cancelled becomes an
// Undetermined data point. It is logged at Warn, counted where relevant,
// and never aborts the rest of the analysis. Only the baseline solve is
// allowed to fail the call (ErrBaselineNotOptimal).
package sensitivity
