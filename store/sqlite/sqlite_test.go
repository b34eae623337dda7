package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
	"github.com/warp/property-ledger/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLeaseRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	end := engine.NewDay(2024, time.December, 31)
	lease := engine.Lease{
		ID:          "lease-1",
		TenantID:    "tenant-1",
		UnitID:      "unit-1",
		RentAmount:  decimal.RequireFromString("2750.50"),
		PricingType: engine.PricingPerSqm,
		SizeSqm:     decimal.RequireFromString("85.5"),
		Start:       engine.NewDay(2024, time.January, 15),
		End:         &end,
		RentDueDay:  5,
		Active:      true,
	}
	require.NoError(t, st.CreateLease(ctx, lease))

	got, err := st.Lease(ctx, "lease-1")
	require.NoError(t, err)

	assert.Equal(t, lease.ID, got.ID)
	assert.True(t, lease.RentAmount.Equal(got.RentAmount), "rent %s", got.RentAmount)
	assert.True(t, lease.SizeSqm.Equal(got.SizeSqm))
	assert.True(t, lease.Start.Equal(got.Start))
	require.NotNil(t, got.End)
	assert.True(t, end.Equal(*got.End))
	assert.Equal(t, 5, got.RentDueDay)
	assert.True(t, got.Active)

	_, err = st.Lease(ctx, "missing")
	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestLeaseOpenEnded(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateLease(ctx, engine.Lease{
		ID: "lease-open", TenantID: "t", UnitID: "u",
		RentAmount: decimal.NewFromInt(1000), PricingType: engine.PricingFixed,
		SizeSqm: decimal.Zero, Start: engine.NewDay(2024, time.March, 1), Active: true,
	}))

	got, err := st.Lease(ctx, "lease-open")
	require.NoError(t, err)
	assert.Nil(t, got.End)
}

func TestTerminateLease(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateLease(ctx, engine.Lease{
		ID: "lease-1", TenantID: "t", UnitID: "u",
		RentAmount: decimal.NewFromInt(1000), PricingType: engine.PricingFixed,
		SizeSqm: decimal.Zero, Start: engine.NewDay(2024, time.January, 1), Active: true,
	}))

	on := engine.NewDay(2024, time.June, 15)
	require.NoError(t, st.TerminateLease(ctx, "lease-1", on))

	got, err := st.Lease(ctx, "lease-1")
	require.NoError(t, err)
	assert.False(t, got.Active)
	require.NotNil(t, got.End)
	assert.True(t, on.Equal(*got.End))

	assert.ErrorIs(t, st.TerminateLease(ctx, "missing", on), property.ErrNotFound)
}

func TestLeasesByUnit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, l := range []engine.Lease{
		{ID: "a", TenantID: "t1", UnitID: "unit-1", RentAmount: decimal.NewFromInt(1000),
			PricingType: engine.PricingFixed, SizeSqm: decimal.Zero,
			Start: engine.NewDay(2023, time.January, 1), Active: false},
		{ID: "b", TenantID: "t2", UnitID: "unit-1", RentAmount: decimal.NewFromInt(1200),
			PricingType: engine.PricingFixed, SizeSqm: decimal.Zero,
			Start: engine.NewDay(2024, time.January, 1), Active: true},
		{ID: "c", TenantID: "t3", UnitID: "unit-2", RentAmount: decimal.NewFromInt(900),
			PricingType: engine.PricingFixed, SizeSqm: decimal.Zero,
			Start: engine.NewDay(2024, time.January, 1), Active: true},
	} {
		require.NoError(t, st.CreateLease(ctx, l))
	}

	leases, err := st.LeasesByUnit(ctx, "unit-1")
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, engine.LeaseID("a"), leases[0].ID) // ordered by start date
	assert.Equal(t, engine.LeaseID("b"), leases[1].ID)
}

func TestPaymentsAppendAndQuery(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	linked := engine.Payment{
		ID: "p1", TenantID: "t1", UnitID: "u1", LeaseID: "lease-1",
		Amount: decimal.RequireFromString("1500.25"),
		Date:   engine.NewDay(2024, time.February, 3),
		Method: engine.MethodBankTransfer, Type: engine.PaymentRent,
		Reference: "TXN-42",
	}
	unlinked := engine.Payment{
		ID: "p2", TenantID: "t1", UnitID: "u1",
		Amount: decimal.NewFromInt(300),
		Date:   engine.NewDay(2024, time.February, 1),
		Method: engine.MethodCash, Type: engine.PaymentOther,
	}
	require.NoError(t, st.AppendPayment(ctx, linked))
	require.NoError(t, st.AppendPayment(ctx, unlinked))

	byLease, err := st.PaymentsByLease(ctx, "lease-1")
	require.NoError(t, err)
	require.Len(t, byLease, 1)
	assert.True(t, linked.Amount.Equal(byLease[0].Amount))
	assert.Equal(t, "TXN-42", byLease[0].Reference)

	all, err := st.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by date: the unlinked Feb 1 payment first, empty lease id preserved.
	assert.Equal(t, engine.PaymentID("p2"), all[0].ID)
	assert.Equal(t, engine.LeaseID(""), all[0].LeaseID)
}

func TestExpenseRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := property.Expense{
		ID: "e1", Category: "Utilities", Description: "Water bill",
		Amount: decimal.RequireFromString("420.75"),
		Date:   engine.NewDay(2024, time.May, 2),
		Status: property.ExpenseRequested,
	}
	require.NoError(t, st.SaveExpense(ctx, e))

	// Approval rewrites the same row.
	e.Status = property.ExpenseApproved
	e.ApprovedBy = "owner-1"
	require.NoError(t, st.SaveExpense(ctx, e))

	got, err := st.Expense(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, property.ExpenseApproved, got.Status)
	assert.Equal(t, "owner-1", got.ApprovedBy)
	assert.True(t, e.Amount.Equal(got.Amount))
	assert.True(t, got.Accrued())
}

func TestUnitAndBuildingRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveBuilding(ctx, property.Building{ID: "b1", Name: "Main", Location: "Center"}))
	require.NoError(t, st.SaveUnit(ctx, property.Unit{
		ID: "u1", BuildingID: "b1", UnitNumber: "101", Floor: "Ground",
		Type: property.UnitShop, SizeSqm: decimal.NewFromInt(40),
		PricingType: engine.PricingFixed, ListedRent: decimal.NewFromInt(5000),
	}))

	units, err := st.UnitsByBuilding(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, property.UnitShop, units[0].Type)
	assert.True(t, decimal.NewFromInt(5000).Equal(units[0].ListedRent))
}
