// Package dijkstra computes cheapest routes through a transshipment
// topology priced by a cost vector.
//
// Dijkstra computes the minimum per-unit cost from one source node to all
// other reachable nodes. Arc costs are non-negative by construction
// (network.Costs.Validate rejects negatives), so the classic lazy
// decrease-key algorithm applies unchanged.
//
// CheapestRoutes runs Dijkstra once per source and reports, for every
// destination, the cheapest source and path. Ignoring supplies and
// capacities, Σ demand·cost over those routes is a lower bound on the
// optimal transshipment cost.
//
// Complexity:
//
//	- Time:  O((V + E) log V) per source
//	- Space: O(V + E)
//
// Options:
//
//	- Source:      ID of the starting node (must be non-empty and present).
//	- WithMaxCost: nodes whose cost would exceed the cap are not explored.
//	- WithClosed:  arcs treated as impassable.
//
// Errors (sentinel):
//
//	- ErrEmptySource    if the source ID is empty.
//	- ErrNilTopology    if the topology pointer is nil.
//	- ErrSourceNotFound if the source node does not exist.
//	- ErrBadMaxCost     if the cost cap is negative or NaN.
//	- network.ErrConfig for an invalid cost vector.
//
// Example usage:
//
//	dist, prev, err := dijkstra.Dijkstra(ref.Topology, ref.Costs, dijkstra.Source("S1"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("cost to D4: %.0f via %v\n", dist["D4"], dijkstra.Path(prev, "D4"))
package dijkstra
