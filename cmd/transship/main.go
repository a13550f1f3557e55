// Command transship solves a transshipment network at minimum cost and
// prints the sensitivity report as JSON.
//
// Usage:
//
//	transship [--config configs/transship.yaml] [--network plants.yaml] [--capacitated]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/transship/capacity"
	"github.com/katalvlaran/transship/config"
	"github.com/katalvlaran/transship/dijkstra"
	"github.com/katalvlaran/transship/logging"
	"github.com/katalvlaran/transship/lp"
	"github.com/katalvlaran/transship/metrics"
	"github.com/katalvlaran/transship/network"
	"github.com/katalvlaran/transship/sensitivity"
	"github.com/katalvlaran/transship/simplex"
)

// output is the document written to stdout.
type output struct {
	Network    string               `json:"network"`
	Report     *sensitivity.Report  `json:"report"`
	Routes     []dijkstra.Route     `json:"routes"`
	LowerBound float64              `json:"lower_bound"`
	Capacity   *capacity.Comparison `json:"capacity,omitempty"`
	Solves     map[string]float64   `json:"solves,omitempty"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "transship:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("transship", pflag.ContinueOnError)
	cfgPath := fs.StringP("config", "c", "", "YAML configuration file")
	netPath := fs.StringP("network", "n", "", "network definition file (overrides network.file)")
	capacitated := fs.Bool("capacitated", false, "analyse the capacitated variant")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides app.log_level)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *netPath != "" {
		cfg.Network.File = *netPath
	}
	if *capacitated {
		cfg.Analysis.Capacitated = true
	}
	if *logLevel != "" {
		cfg.App.LogLevel = *logLevel
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("app", cfg.App.Name))

	net, err := loadNetwork(cfg.Network.File)
	if err != nil {
		return err
	}
	log.Info("network loaded",
		zap.String("name", net.Name),
		zap.Int("nodes", len(net.Topology.Nodes())),
		zap.Int("arcs", net.Topology.NumArcs()),
	)

	var solver lp.Solver = simplex.New(cfg.SolverOptions()...)
	reg := metrics.NewRegistry()
	if cfg.Metrics.Enabled {
		if solver, err = metrics.Instrument(solver, reg); err != nil {
			return err
		}
	}

	opts := append(cfg.AnalysisOptions(), sensitivity.WithLogger(log))
	if cfg.Analysis.Capacitated {
		opts = append(opts, sensitivity.WithCapacities(net.Capacities))
	}
	engine, err := sensitivity.New(net.Topology, solver, opts...)
	if err != nil {
		return err
	}
	report, err := engine.Analyze(ctx, net.Costs, cfg.Analysis.Scenarios)
	if err != nil {
		return err
	}

	out := output{Network: net.Name, Report: report}
	if out.Routes, err = dijkstra.CheapestRoutes(net.Topology, net.Costs); err != nil {
		return err
	}
	out.LowerBound = dijkstra.LowerBound(net.Topology, out.Routes)
	if len(net.Capacities) > 0 {
		ev, err := capacity.New(solver, capacity.WithTolerance(cfg.Analysis.Tolerance), capacity.WithLogger(log))
		if err != nil {
			return err
		}
		if out.Capacity, err = ev.Evaluate(ctx, net.Topology, net.Costs, net.Capacities); err != nil {
			return err
		}
	}
	if cfg.Metrics.Enabled {
		if out.Solves, err = metrics.Counts(reg); err != nil {
			log.Warn("metrics not gathered", zap.Error(err))
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(out)
}

func loadNetwork(path string) (*network.Network, error) {
	if path == "" {
		return network.Reference(), nil
	}

	return network.LoadFile(path)
}
