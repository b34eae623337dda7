/*
reconcile.go - Expected vs. collected rent for a single lease

PURPOSE:
  Combines the accrual calculator with a payment set to produce the
  paid amount, outstanding balance, last payment date, and a status
  classification for one lease.

PAID AMOUNT SEMANTICS:
  PaidAmount sums EVERY payment referencing the lease id, regardless of
  payment type. Deposits and other receipts linked to the lease reduce
  its balance here; only activity feeds elsewhere distinguish by type.

STATUS TOLERANCE:
  Daily proration accumulates tiny rounding in the last decimal places.
  A tolerance band of +/- StatusTolerance currency units keeps a settled
  lease from flickering into "overdue"/"credit" noise. The band is a
  tunable constant, not a magic literal.

PURITY:
  Reconcile performs no I/O and never reads the clock; the caller
  captures "now" once and passes it as asOf. Calling it twice with
  identical inputs yields identical output.
*/
package engine

import "github.com/shopspring/decimal"

// StatusTolerance is the band, in currency units, within which a balance
// is classified as settled. Balances above it are overdue, below its
// negation are credit.
var StatusTolerance = decimal.NewFromInt(5)

// Reconcile computes the financial position of a lease against a payment
// set as of the given day.
//
// The accrual window is [lease.Start, min(asOf, lease.End)]. A lease that
// has not started by asOf has zero expected rent. The payments slice may
// be the full payment set; payments referencing other leases (or no lease
// at all) are ignored.
func Reconcile(lease Lease, payments []Payment, asOf Day) LeaseFinancials {
	// 1. Paid amount and most recent payment date.
	paid := decimal.Zero
	var lastPayment *Day
	for _, p := range payments {
		if p.LeaseID == "" || p.LeaseID != lease.ID {
			continue
		}
		paid = paid.Add(p.Amount)
		if lastPayment == nil || p.Date.After(*lastPayment) {
			d := p.Date
			lastPayment = &d
		}
	}

	// 2. Accrue from signing up to asOf, capped at the lease end.
	accrualEnd := asOf
	if lease.End != nil && lease.End.Before(asOf) {
		accrualEnd = *lease.End
	}

	expected := decimal.Zero
	if lease.Start.BeforeOrEqual(accrualEnd) {
		expected = ExpectedRent([]Lease{lease}, lease.Start, accrualEnd)
	}

	balance := expected.Sub(paid)

	status := StatusPaid
	switch {
	case balance.GreaterThan(StatusTolerance):
		status = StatusOverdue
	case balance.LessThan(StatusTolerance.Neg()):
		status = StatusCredit
	}

	return LeaseFinancials{
		ExpectedRent:    expected,
		PaidAmount:      paid,
		Balance:         balance,
		LastPaymentDate: lastPayment,
		Status:          status,
	}
}
