/*
occupancy.go - One-active-lease-per-unit invariant and occupancy status

PURPOSE:
  Uses the temporal predicate over all leases of a unit to enforce
  "at most one active lease per unit" at creation time, and to derive
  occupancy for dashboards and reports.

ENFORCEMENT SCOPE:
  The invariant is checked when a lease is created, not retroactively.
  The only mutation a lease supports after creation is termination,
  which can never introduce an overlap, so creation-time checking is
  sufficient (see property.Service.CreateLease).

SNAPSHOTS:
  Occupancy takes a reference day, so the same code answers both the
  live "now" question and historical ones ("occupied at the end of the
  reporting month?") without a second code path.
*/
package engine

// OccupancyStatus is a unit's derived occupancy at an instant.
type OccupancyStatus string

const (
	Occupied OccupancyStatus = "occupied"
	Vacant   OccupancyStatus = "vacant"
)

// OverlapMessage is the fixed, user-facing reason a lease creation is
// rejected when the unit already has an active lease.
const OverlapMessage = "This unit already has an active lease. Please terminate the existing lease first."

// ValidationResult is a recoverable validation outcome, not an error.
// The lease-creation flow surfaces Error to the user and allows
// correction.
type ValidationResult struct {
	Valid bool
	Error string
}

// ValidateNewLease decides whether a new lease may be created on a unit,
// given all existing leases for that unit. It rejects when any existing
// lease is active on the reference day.
func ValidateNewLease(existing []Lease, ref Day) ValidationResult {
	for _, lease := range existing {
		if lease.ActiveOn(ref) {
			return ValidationResult{Valid: false, Error: OverlapMessage}
		}
	}
	return ValidationResult{Valid: true}
}

// UnitOccupied reports whether at least one of the unit's leases is
// active on the reference day.
func UnitOccupied(leases []Lease, ref Day) bool {
	for _, lease := range leases {
		if lease.ActiveOn(ref) {
			return true
		}
	}
	return false
}

// UnitOccupancy derives a unit's occupancy status at the reference day.
func UnitOccupancy(leases []Lease, ref Day) OccupancyStatus {
	if UnitOccupied(leases, ref) {
		return Occupied
	}
	return Vacant
}

// OccupancyRate returns occupied/total as a fraction in [0, 1].
// An empty unit set yields 0, not an error or NaN.
func OccupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total)
}
