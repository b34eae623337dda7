/*
errors.go - Error types for lease rules

PURPOSE:
  The engine itself raises no errors for ordinary data variation:
  degenerate inputs (empty lease sets, ranges with no intersection,
  zero-unit occupancy sets) all produce zero/neutral values. The types
  here exist for the write path around the engine - lease creation and
  payment recording - which must turn rule violations into recoverable,
  user-correctable failures.

USAGE:
  Callers match with errors.Is/errors.As:

    var overlap *engine.OverlapError
    if errors.As(err, &overlap) {
        // surface overlap.Message, let the user terminate first
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnitOccupied is returned when creating a lease on a unit that
	// already has an active lease. Recoverable: terminate the existing
	// lease first.
	ErrUnitOccupied = errors.New("unit already has an active lease")

	// ErrInvalidLeaseTerm is returned when a lease's end date precedes
	// its start date.
	ErrInvalidLeaseTerm = errors.New("lease end date before start date")

	// ErrNonPositiveAmount is returned when recording a payment whose
	// amount is zero or negative.
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OverlapError reports which unit and existing lease blocked a creation.
type OverlapError struct {
	UnitID          UnitID
	ExistingLeaseID LeaseID
	Message         string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("unit %s: active lease %s already exists", e.UnitID, e.ExistingLeaseID)
}

func (e *OverlapError) Unwrap() error { return ErrUnitOccupied }

// IsClientError reports whether the error is due to invalid client input
// (as opposed to a storage failure).
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnitOccupied) ||
		errors.Is(err, ErrInvalidLeaseTerm) ||
		errors.Is(err, ErrNonPositiveAmount)
}
