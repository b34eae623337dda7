package report

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/property-ledger/engine"
)

// settleEpsilon is the per-lease settlement threshold used by report
// filters: a lease whose period outstanding is within one currency unit
// counts as settled.
var settleEpsilon = decimal.NewFromInt(1)

// Statement is the per-lease line of an owner report for one period.
type Statement struct {
	Lease engine.Lease

	Expected    decimal.Decimal // daily-accrual rent owed within the period
	Collected   decimal.Decimal // rent-typed payments for the lease in the period
	Outstanding decimal.Decimal
	Settled     bool
}

// Statements computes one line per lease over [start, end]. Leases with
// no accrual and no payments in the period still get a line; filtering
// is a presentation concern.
func Statements(leases []engine.Lease, payments []engine.Payment, start, end engine.Day) []Statement {
	byLease := make(map[engine.LeaseID]decimal.Decimal)
	for _, p := range payments {
		if p.LeaseID == "" || p.Type != engine.PaymentRent {
			continue
		}
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		byLease[p.LeaseID] = byLease[p.LeaseID].Add(p.Amount)
	}

	out := make([]Statement, 0, len(leases))
	for _, lease := range leases {
		expected := engine.ExpectedRent([]engine.Lease{lease}, start, end)
		collected := byLease[lease.ID]
		outstanding := expected.Sub(collected)

		out = append(out, Statement{
			Lease:       lease,
			Expected:    expected,
			Collected:   collected,
			Outstanding: outstanding,
			Settled:     outstanding.LessThanOrEqual(settleEpsilon),
		})
	}
	return out
}

// WriteCSV renders statements as CSV. The engine supplies every number;
// this only formats. Amounts are rounded to 2 places for display.
func WriteCSV(w io.Writer, stmts []Statement, start, end engine.Day) error {
	cw := csv.NewWriter(w)

	header := []string{"lease_id", "tenant_id", "unit_id", "period_start", "period_end",
		"expected_rent", "collected_rent", "outstanding", "settled"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range stmts {
		settled := "no"
		if s.Settled {
			settled = "yes"
		}
		row := []string{
			string(s.Lease.ID),
			string(s.Lease.TenantID),
			string(s.Lease.UnitID),
			start.String(),
			end.String(),
			s.Expected.StringFixed(2),
			s.Collected.StringFixed(2),
			s.Outstanding.StringFixed(2),
			settled,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
