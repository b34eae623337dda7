package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/property-ledger/engine"
)

func rentPayment(id string, leaseID engine.LeaseID, amount string, date engine.Day) engine.Payment {
	return engine.Payment{
		ID:       engine.PaymentID(id),
		TenantID: "tenant-1",
		UnitID:   "unit-1",
		LeaseID:  leaseID,
		Amount:   dec(amount),
		Date:     date,
		Method:   engine.MethodCash,
		Type:     engine.PaymentRent,
	}
}

func TestReconcile_CreditScenario(t *testing.T) {
	// GIVEN: 1000/month lease starting Jan 20, one 500 payment on Jan 25
	// WHEN: Reconciling as of Jan 31
	// THEN: Expected = 1000/31*12 ~= 387.10, balance ~= -112.90, status credit

	lease := openLease("1000", engine.NewDay(2024, time.January, 20))
	payments := []engine.Payment{
		rentPayment("p1", lease.ID, "500", engine.NewDay(2024, time.January, 25)),
	}

	fin := engine.Reconcile(lease, payments, engine.NewDay(2024, time.January, 31))

	assertApprox(t, dec("387.10"), fin.ExpectedRent, "0.01")
	assert.True(t, dec("500").Equal(fin.PaidAmount))
	assertApprox(t, dec("-112.90"), fin.Balance, "0.01")
	assert.Equal(t, engine.StatusCredit, fin.Status)
	require.NotNil(t, fin.LastPaymentDate)
	assert.Equal(t, "2024-01-25", fin.LastPaymentDate.String())
}

func TestReconcile_Idempotent(t *testing.T) {
	// Calling twice with identical inputs yields identical output.

	lease := boundedLease("2750",
		engine.NewDay(2023, time.March, 5), engine.NewDay(2024, time.August, 19))
	payments := []engine.Payment{
		rentPayment("p1", lease.ID, "2750", engine.NewDay(2023, time.April, 1)),
		rentPayment("p2", lease.ID, "1300.25", engine.NewDay(2023, time.July, 12)),
	}
	asOf := engine.NewDay(2024, time.September, 1)

	first := engine.Reconcile(lease, payments, asOf)
	second := engine.Reconcile(lease, payments, asOf)

	assert.Equal(t, first, second)
}

func TestReconcile_NotStartedLease(t *testing.T) {
	// GIVEN: A lease starting after the reconciliation day, no payments
	// THEN: Zero expected rent, zero paid, status paid

	lease := openLease("3000", engine.NewDay(2025, time.June, 1))

	fin := engine.Reconcile(lease, nil, engine.NewDay(2025, time.January, 15))

	assert.True(t, fin.ExpectedRent.IsZero())
	assert.True(t, fin.PaidAmount.IsZero())
	assert.True(t, fin.Balance.IsZero())
	assert.Equal(t, engine.StatusPaid, fin.Status)
	assert.Nil(t, fin.LastPaymentDate)
}

func TestReconcile_PaidAmountCountsEveryLinkedPayment(t *testing.T) {
	// Deposits and other receipts linked to the lease reduce its balance;
	// only payments referencing other leases (or none) are excluded.

	lease := openLease("1000", engine.NewDay(2024, time.January, 1))

	deposit := rentPayment("p1", lease.ID, "600", engine.NewDay(2024, time.January, 2))
	deposit.Type = engine.PaymentDeposit

	otherLease := rentPayment("p2", "lease-other", "999", engine.NewDay(2024, time.January, 3))
	unlinked := rentPayment("p3", "", "999", engine.NewDay(2024, time.January, 4))
	rent := rentPayment("p4", lease.ID, "400", engine.NewDay(2024, time.January, 5))

	fin := engine.Reconcile(lease,
		[]engine.Payment{deposit, otherLease, unlinked, rent},
		engine.NewDay(2024, time.January, 31))

	assert.True(t, dec("1000").Equal(fin.PaidAmount), "paid %s", fin.PaidAmount)
	assert.Equal(t, engine.StatusPaid, fin.Status)
	require.NotNil(t, fin.LastPaymentDate)
	assert.Equal(t, "2024-01-05", fin.LastPaymentDate.String())
}

func TestReconcile_AccrualCappedAtLeaseEnd(t *testing.T) {
	// GIVEN: A lease that ended months before the reconciliation day
	// THEN: Accrual stops at the end date; a matching payment settles it

	lease := boundedLease("2000",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.February, 29))
	payments := []engine.Payment{
		rentPayment("p1", lease.ID, "4000", engine.NewDay(2024, time.March, 1)),
	}

	fin := engine.Reconcile(lease, payments, engine.NewDay(2024, time.December, 1))

	assert.True(t, dec("4000").Equal(fin.ExpectedRent), "expected %s", fin.ExpectedRent)
	assert.True(t, fin.Balance.IsZero())
	assert.Equal(t, engine.StatusPaid, fin.Status)
}

func TestReconcile_Overdue(t *testing.T) {
	lease := openLease("3000", engine.NewDay(2024, time.January, 1))

	fin := engine.Reconcile(lease, nil, engine.NewDay(2024, time.March, 31))

	assert.True(t, dec("9000").Equal(fin.ExpectedRent))
	assert.Equal(t, engine.StatusOverdue, fin.Status)
}

func TestReconcile_ToleranceBand(t *testing.T) {
	// Balances within +/- StatusTolerance classify as paid; just outside
	// flips to overdue/credit.

	lease := boundedLease("100",
		engine.NewDay(2024, time.April, 1), engine.NewDay(2024, time.April, 30))
	asOf := engine.NewDay(2024, time.June, 1) // expected = exactly 100

	tests := []struct {
		name string
		paid string
		want engine.BalanceStatus
	}{
		{"balance exactly at tolerance", "95", engine.StatusPaid},
		{"balance just over tolerance", "94.99", engine.StatusOverdue},
		{"balance exactly at negative tolerance", "105", engine.StatusPaid},
		{"balance just under negative tolerance", "105.01", engine.StatusCredit},
		{"settled to the cent", "100", engine.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := []engine.Payment{
				rentPayment("p1", lease.ID, tt.paid, engine.NewDay(2024, time.April, 5)),
			}
			fin := engine.Reconcile(lease, payments, asOf)
			assert.Equal(t, tt.want, fin.Status, "balance %s", fin.Balance)
		})
	}
}
