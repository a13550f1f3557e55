package network

import (
	"fmt"
	"strings"
)

// Role is the echelon a node belongs to.
type Role int

const (
	// Source nodes ship their supply.
	Source Role = iota
	// Hub nodes only transship.
	Hub
	// Destination nodes absorb their demand.
	Destination
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case Source:
		return "Source"
	case Hub:
		return "Hub"
	case Destination:
		return "Destination"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Node is one location of the network.
//
// Amount is the supply of a Source, the demand of a Destination and zero
// for a Hub.
type Node struct {
	ID     string
	Role   Role
	Amount float64
}

// arcSep separates the endpoints in the textual form of an ArcID.
const arcSep = "->"

// ArcID identifies a directed arc by its endpoints.
type ArcID struct {
	From, To string
}

// String renders the arc as "From->To".
func (a ArcID) String() string { return a.From + arcSep + a.To }

// MarshalText implements encoding.TextMarshaler so ArcID works as a JSON
// map key.
func (a ArcID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ArcID) UnmarshalText(b []byte) error {
	id, err := ParseArcID(string(b))
	if err != nil {
		return err
	}
	*a = id

	return nil
}

// ParseArcID parses "From->To".
func ParseArcID(s string) (ArcID, error) {
	from, to, ok := strings.Cut(s, arcSep)
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" || strings.Contains(to, arcSep) {
		return ArcID{}, fmt.Errorf("%w: %q", ErrBadArcID, s)
	}

	return ArcID{From: from, To: to}, nil
}

// Network bundles a topology with its baseline cost vector and optional
// capacity map. Capacities is nil for an uncapacitated definition.
type Network struct {
	Name       string
	Topology   *Topology
	Costs      Costs
	Capacities Capacities
}
