package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCapability is returned for capability names no tool implements
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrUnknownMachineType is returned for machine types absent from the catalog
	ErrUnknownMachineType = errors.New("unknown machine type")

	// ErrHistoryDisabled is returned when no database is configured
	ErrHistoryDisabled = errors.New("analysis history is disabled")
)

// ParseError means the input could not be interpreted as a topology document
// at all. Structural defects in parseable documents are never a ParseError.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse topology %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CapacityError means no catalog offer satisfies the demand. Dimension names
// the unmet axis ("cpu" or "memory") and Shortfall the missing amount.
type CapacityError struct {
	Dimension string
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("no machine offer satisfies %s demand: need %d, largest available %d (short by %d)",
		e.Dimension, e.Required, e.Available, e.Shortfall())
}

// Shortfall returns the unmet amount in the failing dimension
func (e *CapacityError) Shortfall() int {
	return e.Required - e.Available
}
