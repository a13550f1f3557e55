package network_test

import (
	"fmt"

	"github.com/katalvlaran/transship/network"
)

func ExampleTopology_Build() {
	topo, err := network.NewBuilder().
		AddSource("Plant", 8).
		AddHub("Depot").
		AddDestination("Shop", 8).
		AddArc("Plant", "Depot").
		AddArc("Depot", "Shop").
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}

	costs := network.Costs{
		{From: "Plant", To: "Depot"}: 2,
		{From: "Depot", To: "Shop"}:  3,
	}
	caps := network.Capacities{{From: "Depot", To: "Shop"}: 10}

	f, err := topo.Build(costs, caps)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range f.Model().Constraints {
		fmt.Println(c.Name, c.Sense, c.RHS)
	}
	// Output:
	// supply[Plant] = 8
	// balance[Depot] = 0
	// demand[Shop] = 8
	// capacity[Depot->Shop] <= 10
}
