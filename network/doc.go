// Package network describes a three-echelon transshipment network and turns
// it into a linear program.
//
// A network is made of three node roles:
//
//	Source       ships out exactly its supply
//	Hub          pure transshipment point, inflow equals outflow
//	Destination  receives exactly its demand
//
// and directed arcs restricted to Source→Hub and Hub→Destination. The
// Topology is immutable once built; per-arc costs and capacities live in
// plain maps keyed by ArcID so that sensitivity probes can derive perturbed
// copies (Costs.With, Costs.Scaled) without ever touching the baseline.
//
// # Formulation
//
// Topology.Build lays out one non-negative variable per arc and the rows
//
//	supply[S]       Σ flow(S→·) = supply(S)
//	balance[H]      Σ flow(·→H) − Σ flow(H→·) = 0
//	demand[D]       Σ flow(·→D) = demand(D)
//	capacity[F->T]  flow(F→T) ≤ cap(F→T)     (only arcs with a capacity)
//
// minimizing Σ cost·flow. Names are stable across builds, so duals and
// values can be matched between a baseline and any re-solve.
//
// # Errors
//
// Every validation failure wraps ErrConfig; callers that only need the
// category can test errors.Is(err, ErrConfig) and ignore the detail.
//
// # Definitions
//
// Decode and LoadFile read a YAML definition (nodes, arcs, cost and
// optional capacity per arc). Reference returns the bundled 2×3×5
// distribution network used throughout the tests.
package network
