package property_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
	"github.com/warp/property-ledger/property/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(now engine.Day) (*property.Service, *store.Memory) {
	mem := store.NewMemory()
	svc := property.NewService(mem)
	svc.Now = func() engine.Day { return now }
	return svc, mem
}

func testLease(unit engine.UnitID, start engine.Day, end *engine.Day) engine.Lease {
	return engine.Lease{
		TenantID:    "tenant-1",
		UnitID:      unit,
		RentAmount:  decimal.NewFromInt(3000),
		PricingType: engine.PricingFixed,
		Start:       start,
		End:         end,
		RentDueDay:  1,
	}
}

// =============================================================================
// LEASE CREATION
// =============================================================================

func TestCreateLease_SecondActiveLeaseRejected(t *testing.T) {
	// GIVEN: A unit with an active lease for [2024-01-01, 2024-06-30]
	// WHEN: Creating another lease on the same unit starting 2024-03-01
	// THEN: Creation fails with an OverlapError

	now := engine.NewDay(2024, time.March, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	end := engine.NewDay(2024, time.June, 30)
	first, err := svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.January, 1), &end))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID, "service should assign an id")
	assert.True(t, first.Active)

	_, err = svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.March, 1), nil))

	require.Error(t, err)
	var overlap *engine.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, first.ID, overlap.ExistingLeaseID)
	assert.True(t, errors.Is(err, engine.ErrUnitOccupied))
	assert.True(t, engine.IsClientError(err))
}

func TestCreateLease_AllowedAfterTermination(t *testing.T) {
	now := engine.NewDay(2024, time.March, 1)
	svc, _ := newTestService(now)
	ctx := context.Background()

	first, err := svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.January, 1), nil))
	require.NoError(t, err)

	require.NoError(t, svc.TerminateLease(ctx, first.ID, engine.NewDay(2024, time.February, 15)))

	// Validation now passes...
	result, err := svc.ValidateNewLease(ctx, "unit-1")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	// ...and creation succeeds.
	_, err = svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.March, 1), nil))
	assert.NoError(t, err)
}

func TestCreateLease_DifferentUnitsIndependent(t *testing.T) {
	svc, _ := newTestService(engine.NewDay(2024, time.March, 1))
	ctx := context.Background()

	_, err := svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.January, 1), nil))
	require.NoError(t, err)

	_, err = svc.CreateLease(ctx, testLease("unit-2", engine.NewDay(2024, time.January, 1), nil))
	assert.NoError(t, err)
}

func TestCreateLease_EndBeforeStartRejected(t *testing.T) {
	svc, _ := newTestService(engine.NewDay(2024, time.March, 1))

	end := engine.NewDay(2024, time.January, 1)
	_, err := svc.CreateLease(context.Background(),
		testLease("unit-1", engine.NewDay(2024, time.June, 1), &end))

	assert.ErrorIs(t, err, engine.ErrInvalidLeaseTerm)
}

func TestTerminateLease_CapsEndAndClearsFlag(t *testing.T) {
	svc, mem := newTestService(engine.NewDay(2024, time.March, 1))
	ctx := context.Background()

	lease, err := svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.January, 1), nil))
	require.NoError(t, err)

	on := engine.NewDay(2024, time.February, 10)
	require.NoError(t, svc.TerminateLease(ctx, lease.ID, on))

	stored, err := mem.Lease(ctx, lease.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	require.NotNil(t, stored.End)
	assert.True(t, stored.End.Equal(on))

	assert.ErrorIs(t, svc.TerminateLease(ctx, "missing", on), property.ErrNotFound)
}

// =============================================================================
// PAYMENTS AND FINANCIALS
// =============================================================================

func TestRecordPayment_PositiveAmountRequired(t *testing.T) {
	svc, _ := newTestService(engine.NewDay(2024, time.March, 1))

	_, err := svc.RecordPayment(context.Background(), engine.Payment{
		TenantID: "tenant-1",
		UnitID:   "unit-1",
		Amount:   decimal.Zero,
		Date:     engine.NewDay(2024, time.February, 1),
		Method:   engine.MethodCash,
		Type:     engine.PaymentRent,
	})

	assert.ErrorIs(t, err, engine.ErrNonPositiveAmount)
}

func TestLeaseFinancials_ComposesStoreAndEngine(t *testing.T) {
	// GIVEN: 1000/month lease from Jan 20 and a 500 payment on Jan 25
	// WHEN: Asking for financials as of Jan 31
	// THEN: The service reproduces the engine's credit classification

	now := engine.NewDay(2024, time.January, 31)
	svc, _ := newTestService(now)
	ctx := context.Background()

	lease := testLease("unit-1", engine.NewDay(2024, time.January, 20), nil)
	lease.RentAmount = decimal.NewFromInt(1000)
	created, err := svc.CreateLease(ctx, lease)
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, engine.Payment{
		TenantID: created.TenantID,
		UnitID:   created.UnitID,
		LeaseID:  created.ID,
		Amount:   decimal.NewFromInt(500),
		Date:     engine.NewDay(2024, time.January, 25),
		Method:   engine.MethodBankTransfer,
		Type:     engine.PaymentRent,
	})
	require.NoError(t, err)

	fin, err := svc.CurrentLeaseFinancials(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, engine.StatusCredit, fin.Status)
	assert.True(t, decimal.NewFromInt(500).Equal(fin.PaidAmount))

	want := decimal.NewFromInt(1000).Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(31))
	assert.True(t, want.Equal(fin.ExpectedRent), "expected %s, got %s", want, fin.ExpectedRent)

	_, err = svc.LeaseFinancials(ctx, "missing", now)
	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestUnitOccupancy_SnapshotAtInstant(t *testing.T) {
	now := engine.NewDay(2024, time.March, 1)
	svc, mem := newTestService(now)
	ctx := context.Background()

	require.NoError(t, mem.SaveUnit(ctx, property.Unit{ID: "unit-1", BuildingID: "b-1", UnitNumber: "101"}))

	end := engine.NewDay(2024, time.June, 30)
	_, err := svc.CreateLease(ctx, testLease("unit-1", engine.NewDay(2024, time.January, 1), &end))
	require.NoError(t, err)

	status, err := svc.UnitOccupancy(ctx, "unit-1", now)
	require.NoError(t, err)
	assert.Equal(t, engine.Occupied, status)

	// Historical snapshot after the lease ends.
	status, err = svc.UnitOccupancy(ctx, "unit-1", engine.NewDay(2024, time.July, 31))
	require.NoError(t, err)
	assert.Equal(t, engine.Vacant, status)

	_, err = svc.UnitOccupancy(ctx, "missing", now)
	assert.ErrorIs(t, err, property.ErrNotFound)
}
