package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/transship/dijkstra"
	"github.com/katalvlaran/transship/network"
)

func ExampleCheapestRoutes() {
	ref := network.Reference()
	routes, err := dijkstra.CheapestRoutes(ref.Topology, ref.Costs)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range routes {
		fmt.Printf("%s %v %.0f\n", r.Destination, r.Path, r.Cost)
	}
	fmt.Printf("bound %.0f\n", dijkstra.LowerBound(ref.Topology, routes))
	// Output:
	// D1 [S2 H1 D1] 11
	// D2 [S2 H1 D2] 9
	// D3 [S1 H3 D3] 10
	// D4 [S2 H2 D4] 8
	// D5 [S2 H2 D5] 9
	// bound 14950
}
