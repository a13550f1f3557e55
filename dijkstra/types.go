package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/transship/network"
)

// Sentinel errors returned by Dijkstra.
var (
	// ErrEmptySource indicates that no source node was given.
	ErrEmptySource = errors.New("dijkstra: source node ID is empty")

	// ErrNilTopology indicates a nil *network.Topology.
	ErrNilTopology = errors.New("dijkstra: topology is nil")

	// ErrSourceNotFound indicates that the source node is not in the topology.
	ErrSourceNotFound = errors.New("dijkstra: source node not found")

	// ErrBadMaxCost indicates a negative or NaN cost cap.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")
)

// Options configures one Dijkstra run.
type Options struct {
	Source  string                 // The ID of the source node
	MaxCost float64                // Nodes beyond this cost are not explored
	Closed  map[network.ArcID]bool // Arcs that cannot be used
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting node. It must be given.
func Source(id string) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithMaxCost caps the per-unit cost to explore. Default +Inf.
func WithMaxCost(max float64) Option {
	return func(o *Options) {
		o.MaxCost = max
	}
}

// WithClosed marks arcs as impassable, e.g. to price a route around a
// closed lane.
func WithClosed(arcs ...network.ArcID) Option {
	return func(o *Options) {
		if o.Closed == nil {
			o.Closed = make(map[network.ArcID]bool, len(arcs))
		}
		for _, a := range arcs {
			o.Closed[a] = true
		}
	}
}

// DefaultOptions returns Options for source with no cost cap and no
// closed arcs.
func DefaultOptions(source string) Options {
	return Options{Source: source, MaxCost: math.Inf(1)}
}

// Route is the cheapest way to serve one destination. An unreachable
// destination has Reachable false, no Source or Path, and Cost 0.
type Route struct {
	Destination string   `json:"destination"`
	Source      string   `json:"source,omitempty"`
	Path        []string `json:"path,omitempty"`
	Cost        float64  `json:"cost"`
	Reachable   bool     `json:"reachable"`
}
