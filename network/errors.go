// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
)

// ErrConfig is the category of every error this package returns.
var ErrConfig = errors.New("network: invalid configuration")

// Sentinel errors. Each one wraps ErrConfig.
var (
	// ErrEmptyNodeID indicates a node with an empty identifier.
	ErrEmptyNodeID = fmt.Errorf("%w: empty node id", ErrConfig)

	// ErrDuplicateNode indicates two nodes sharing one identifier.
	ErrDuplicateNode = fmt.Errorf("%w: duplicate node", ErrConfig)

	// ErrNegativeAmount indicates a negative supply or demand.
	ErrNegativeAmount = fmt.Errorf("%w: negative supply or demand", ErrConfig)

	// ErrUnknownNode indicates an arc endpoint that was never declared.
	ErrUnknownNode = fmt.Errorf("%w: unknown node", ErrConfig)

	// ErrDuplicateArc indicates the same From→To pair declared twice.
	ErrDuplicateArc = fmt.Errorf("%w: duplicate arc", ErrConfig)

	// ErrIllegalArc indicates an arc that is neither Source→Hub nor Hub→Destination.
	ErrIllegalArc = fmt.Errorf("%w: illegal arc direction", ErrConfig)

	// ErrUnbalanced indicates total supply differs from total demand.
	ErrUnbalanced = fmt.Errorf("%w: total supply does not equal total demand", ErrConfig)

	// ErrMissingCost indicates an arc of the topology without a cost.
	ErrMissingCost = fmt.Errorf("%w: missing arc cost", ErrConfig)

	// ErrUnknownArc indicates a cost or capacity for an arc not in the topology.
	ErrUnknownArc = fmt.Errorf("%w: unknown arc", ErrConfig)

	// ErrNegativeCost indicates a cost below zero.
	ErrNegativeCost = fmt.Errorf("%w: negative arc cost", ErrConfig)

	// ErrNegativeCapacity indicates a capacity below zero.
	ErrNegativeCapacity = fmt.Errorf("%w: negative arc capacity", ErrConfig)

	// ErrNonFinite indicates a NaN or ±Inf amount, cost or capacity.
	ErrNonFinite = fmt.Errorf("%w: NaN or Inf value", ErrConfig)

	// ErrBadArcID indicates a string that does not parse as "From->To".
	ErrBadArcID = fmt.Errorf("%w: malformed arc id", ErrConfig)
)
