/*
Package report derives dashboard and owner-report figures from record
snapshots.

PURPOSE:
  Aggregates what the engine computes per lease into the numbers the
  dashboard and reports show for a period: expected vs. collected rent,
  outstanding, accrued expenses, net income, and an occupancy snapshot.
  Like the engine, everything here is a pure function of an
  already-loaded snapshot - nothing is cached between calls, and the
  occupancy snapshot reuses the same temporal predicate the lease list
  and unit pages use, so the figures always agree.

PERIOD CONVENTIONS:
  All ranges are closed [start, end] at day granularity. Occupancy is a
  snapshot at the period END: a unit counts as occupied for a reporting
  month if it has an active lease on the month's last day.
*/
package report

import (
	"github.com/shopspring/decimal"
	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
)

// Snapshot is the already-loaded record set a report is computed over.
type Snapshot struct {
	Units    []property.Unit
	Leases   []engine.Lease
	Payments []engine.Payment
	Expenses []property.Expense
}

// Summary is the period overview shown on the dashboard.
type Summary struct {
	PeriodStart engine.Day
	PeriodEnd   engine.Day

	ExpectedRent  decimal.Decimal // accrual engine over the period
	CollectedRent decimal.Decimal // rent-typed payments received in the period
	Outstanding   decimal.Decimal // expected - collected
	Expenses      decimal.Decimal // approved/paid expenses dated in the period
	NetIncome     decimal.Decimal // collected - expenses

	TotalUnits    int
	OccupiedUnits int
	VacantUnits   int
	OccupancyRate float64 // fraction in [0,1]; 0 when there are no units
}

// Summarize computes the period overview for [start, end].
func Summarize(snap Snapshot, start, end engine.Day) Summary {
	expected := engine.ExpectedRent(snap.Leases, start, end)

	collected := decimal.Zero
	for _, p := range snap.Payments {
		if p.Type != engine.PaymentRent {
			continue
		}
		if p.Date.AfterOrEqual(start) && p.Date.BeforeOrEqual(end) {
			collected = collected.Add(p.Amount)
		}
	}

	expenses := decimal.Zero
	for _, e := range snap.Expenses {
		if !e.Accrued() {
			continue
		}
		if e.Date.AfterOrEqual(start) && e.Date.BeforeOrEqual(end) {
			expenses = expenses.Add(e.Amount)
		}
	}

	occupied := occupiedUnitCount(snap.Units, snap.Leases, end)

	return Summary{
		PeriodStart:   start,
		PeriodEnd:     end,
		ExpectedRent:  expected,
		CollectedRent: collected,
		Outstanding:   expected.Sub(collected),
		Expenses:      expenses,
		NetIncome:     collected.Sub(expenses),
		TotalUnits:    len(snap.Units),
		OccupiedUnits: occupied,
		VacantUnits:   len(snap.Units) - occupied,
		OccupancyRate: engine.OccupancyRate(occupied, len(snap.Units)),
	}
}

// occupiedUnitCount counts units from the snapshot with at least one
// active lease at the reference day. Leases on units outside the
// snapshot (filtered out upstream) are ignored.
func occupiedUnitCount(units []property.Unit, leases []engine.Lease, at engine.Day) int {
	occupied := make(map[engine.UnitID]bool)
	for _, l := range leases {
		if l.ActiveOn(at) {
			occupied[l.UnitID] = true
		}
	}

	count := 0
	for _, u := range units {
		if occupied[u.ID] {
			count++
		}
	}
	return count
}
