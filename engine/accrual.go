/*
accrual.go - Expected rent over an arbitrary date window

PURPOSE:
  Computes the rent a set of leases should have produced over a closed
  date range [start, end] using STRICT DAILY ACCRUAL: each calendar month
  contributes (monthlyRent * activeDays) / daysInThatMonth, where
  activeDays is the inclusive day count of the intersection of the
  lease's own window, the requested range, and that month.

WHY DAY-BASED PRORATION, NOT A FIXED 30-DAY MONTH:
  Rent obligations must match actual elapsed calendar days. A February
  accrual and a March accrual for the same monthly rent are not equal,
  and a lease starting on the 20th of a 31-day month accrues 12/31 of
  the monthly rent for that month, not a rounded fraction.

NUMERIC SEMANTICS:
  All money stays fractional decimal through the calculation; rounding
  to a display precision is a presentation concern. The per-month term
  multiplies before dividing so a full month accrues exactly the
  monthly rent for every month length (28/29/30/31).

DETERMINISM:
  No clock reads, no mutable accumulation outside the local sum.
  Identical inputs always yield identical output.

SEE ALSO:
  - reconcile.go: Applies this over a single lease's lifetime
  - report: Applies this over dashboard/report windows
*/
package engine

import "github.com/shopspring/decimal"

// ExpectedRent computes the rent owed by the given leases over the closed
// range [rangeStart, rangeEnd], summed independently per lease.
//
// Degenerate inputs are neutral: an empty lease set, an inverted range,
// or a lease that never intersects the range all contribute zero.
func ExpectedRent(leases []Lease, rangeStart, rangeEnd Day) decimal.Decimal {
	total := decimal.Zero
	for _, lease := range leases {
		total = total.Add(leaseExpectedRent(lease, rangeStart, rangeEnd))
	}
	return total
}

// leaseExpectedRent walks calendar months across the intersection of the
// lease's own window and the requested range.
func leaseExpectedRent(lease Lease, rangeStart, rangeEnd Day) decimal.Decimal {
	// 1. Intersect [Start, End-or-open] with [rangeStart, rangeEnd].
	effStart := lease.Start.Max(rangeStart)
	effEnd := rangeEnd
	if lease.End != nil {
		effEnd = lease.End.Min(rangeEnd)
	}
	if effStart.After(effEnd) {
		return decimal.Zero
	}

	total := decimal.Zero

	// 2. Walk months from the one containing effStart to the one
	//    containing effEnd, inclusive.
	month := effStart.StartOfMonth()
	lastMonth := effEnd.StartOfMonth()

	for month.BeforeOrEqual(lastMonth) {
		monthEnd := month.EndOfMonth()

		// 3. Active window within this month.
		winStart := effStart.Max(month)
		winEnd := effEnd.Min(monthEnd)

		// 4. Accrue for the inclusive day count.
		if winStart.BeforeOrEqual(winEnd) {
			activeDays := decimal.NewFromInt(int64(InclusiveDays(winStart, winEnd)))
			daysInMonth := decimal.NewFromInt(int64(month.DaysInMonth()))

			// rent * days / daysInMonth, in that order: dividing last keeps
			// a full month exactly equal to the monthly rent.
			total = total.Add(lease.RentAmount.Mul(activeDays).Div(daysInMonth))
		}

		month = month.AddMonths(1)
	}

	return total
}
