package engine

// =============================================================================
// TEMPORAL PREDICATE - Is a lease active at a given instant?
// =============================================================================

// ActiveOn reports whether the lease is active on the given reference day.
//
// Evaluation order is fixed: the manual override flag is checked first and
// short-circuits to false; only then is the date window consulted. This
// keeps Active=false unconditional even when the dates would still match.
//
// The date check is inclusive containment in [Start, End], with End
// treated as +infinity when absent. A lease whose Start is strictly after
// the reference day is a future lease and therefore inactive.
//
// A lease is evaluated as of a single instant, not a range. Callers that
// need "active over a range" evaluate the predicate at the range boundary
// (occupancy snapshots) or integrate day by day (the accrual calculator).
func (l Lease) ActiveOn(ref Day) bool {
	if !l.Active {
		return false
	}
	if ref.Before(l.Start) {
		return false
	}
	if l.End != nil && ref.After(*l.End) {
		return false
	}
	return true
}
