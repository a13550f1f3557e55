package network

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

// Definition is the on-disk shape of a network.
type Definition struct {
	Name         string            `yaml:"name"`
	Sources      []SourceSpec      `yaml:"sources"`
	Hubs         []string          `yaml:"hubs"`
	Destinations []DestinationSpec `yaml:"destinations"`
	Arcs         []ArcSpec         `yaml:"arcs"`
}

// SourceSpec declares a source.
type SourceSpec struct {
	ID     string  `yaml:"id"`
	Supply float64 `yaml:"supply"`
}

// DestinationSpec declares a destination.
type DestinationSpec struct {
	ID     string  `yaml:"id"`
	Demand float64 `yaml:"demand"`
}

// ArcSpec declares an arc. Cost is required; a nil Capacity leaves the
// arc unbounded.
type ArcSpec struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Cost     *float64 `yaml:"cost"`
	Capacity *float64 `yaml:"capacity,omitempty"`
}

// Network validates the definition and assembles a Network. Capacities is
// nil unless at least one arc declares a capacity.
func (d *Definition) Network() (*Network, error) {
	b := NewBuilder()
	for _, s := range d.Sources {
		b.AddSource(s.ID, s.Supply)
	}
	for _, h := range d.Hubs {
		b.AddHub(h)
	}
	for _, s := range d.Destinations {
		b.AddDestination(s.ID, s.Demand)
	}
	for _, a := range d.Arcs {
		b.AddArc(a.From, a.To)
	}
	t, err := b.Build()
	if err != nil {
		return nil, err
	}

	costs := make(Costs, len(d.Arcs))
	var caps Capacities
	for _, spec := range d.Arcs {
		a := ArcID{From: spec.From, To: spec.To}
		if spec.Cost == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingCost, a)
		}
		costs[a] = *spec.Cost
		if spec.Capacity != nil {
			if caps == nil {
				caps = make(Capacities)
			}
			caps[a] = *spec.Capacity
		}
	}
	if err = costs.Validate(t); err != nil {
		return nil, err
	}
	if err = caps.Validate(t); err != nil {
		return nil, err
	}

	return &Network{Name: d.Name, Topology: t, Costs: costs, Capacities: caps}, nil
}

// Decode reads a YAML definition from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Network, error) {
	var d Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: decode definition: %w", ErrConfig, err)
	}

	return d.Network()
}

// LoadFile decodes the definition stored at path.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("network: open %s: %w", path, err)
	}
	defer f.Close()

	n, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("network: load %s: %w", path, err)
	}

	return n, nil
}

// Reference returns a fresh copy of the bundled reference network: two
// sources (900, 700), three hubs, five destinations (300, 250, 350, 400,
// 300) and nineteen priced, capacitated arcs.
func Reference() *Network {
	n, err := Decode(bytes.NewReader(referenceYAML))
	if err != nil {
		panic(fmt.Sprintf("network: embedded reference definition: %v", err))
	}

	return n
}
