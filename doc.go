// Package transship is a minimum-cost transshipment modeller with
// sensitivity analysis.
//
// 🚚 What is transship?
//
//	Goods move from Sources (plants) through Hubs (warehouses) to
//	Destinations (markets). Every arc has a per-unit cost and, optionally,
//	a capacity. transship builds the linear program, solves it and asks
//	how the optimum reacts when the inputs move:
//		• Shadow prices: what one more unit of supply or demand is worth
//		• Cost impact: ±10% on each arc, classified Low / Medium / High
//		• Critical routes: the High-impact arcs
//		• Optimality ranges: how far an arc cost can drift before the plan changes
//		• Scenarios: global cost factors (optimistic, pessimistic, inflationary)
//		• Capacity variant: what per-arc limits cost, and which ones bind
//
// Under the hood, everything is organized in flat packages:
//
//	lp/           solver-neutral LP model, Solution and the Solver seam
//	simplex/      gonum-backed Solver with dual values
//	network/      nodes, arcs, cost/capacity vectors, YAML definitions, LP build
//	flow/         solution extraction, balance checks, max-throughput (Dinic)
//	dijkstra/     cheapest landed-cost routes and a cost lower bound
//	sensitivity/  the analysis engine, fanned out on an ants worker pool
//	capacity/     capacitated vs uncapacitated comparison
//	metrics/      Prometheus instrumentation of any Solver
//	config/       viper configuration
//	logging/      zap loggers
//	cmd/transship the command-line entry point
//
// Quick ASCII example:
//
//	S1 ──┬── H1 ──┬── D1
//	     ├── H2 ──┼── D2
//	S2 ──┴── H3 ──┴── D3
//
// Two plants, three hubs, three markets: every unit leaves a source,
// crosses exactly one hub and lands at a destination.
//
//	go run ./cmd/transship --config configs/transship.yaml
package transship
