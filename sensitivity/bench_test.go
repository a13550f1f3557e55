package sensitivity_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/transship/network"
	"github.com/katalvlaran/transship/sensitivity"
	"github.com/katalvlaran/transship/simplex"
)

func benchmarkAnalyze(b *testing.B, n *network.Network, workers int) {
	e, err := sensitivity.New(n.Topology, simplex.New(), sensitivity.WithWorkers(workers))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = e.Analyze(context.Background(), n.Costs, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAnalyze_Reference(b *testing.B) { benchmarkAnalyze(b, network.Reference(), 1) }

func BenchmarkAnalyze_ReferenceParallel(b *testing.B) { benchmarkAnalyze(b, network.Reference(), 8) }

func BenchmarkAnalyze_Random(b *testing.B) {
	n, err := network.Random(network.RandomSpec{Sources: 4, Hubs: 5, Destinations: 12, Density: 0.4, MaxCost: 20, MaxDemand: 100},
		rand.New(rand.NewSource(3)))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkAnalyze(b, n, 8)
}
