package commands

import (
	"fmt"

	"pricing/internal/pkg/errs"
)

// AccumulationMode selects how the demand stage writes the new total.
type AccumulationMode string

const (
	// ReadModifyWrite reads demand, adds in memory and writes it back. Two concurrent
	// orders for the same product may lose one increment.
	ReadModifyWrite AccumulationMode = "read-modify-write"

	// Atomic adds the quantity in a single UPDATE statement and re-reads the total.
	Atomic AccumulationMode = "atomic"
)

// ParseAccumulationMode accepts the configuration spelling of a mode. Empty means ReadModifyWrite.
func ParseAccumulationMode(s string) (AccumulationMode, error) {
	switch AccumulationMode(s) {
	case "", ReadModifyWrite:
		return ReadModifyWrite, nil
	case Atomic:
		return Atomic, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("DEMAND_ACCUMULATION_MODE",
			fmt.Errorf("unknown mode %q", s))
	}
}
