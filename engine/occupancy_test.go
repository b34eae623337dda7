package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/property-ledger/engine"
)

func TestValidateNewLease_RejectsWhileActiveLeaseExists(t *testing.T) {
	// GIVEN: Lease A active on the unit for [2024-01-01, 2024-06-30]
	// WHEN: Creating lease B on the same unit as of 2024-03-01
	// THEN: Validation fails with the fixed overlap message

	leaseA := boundedLease("3000",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.June, 30))

	result := engine.ValidateNewLease([]engine.Lease{leaseA}, engine.NewDay(2024, time.March, 1))

	assert.False(t, result.Valid)
	assert.Equal(t, engine.OverlapMessage, result.Error)
}

func TestValidateNewLease_AllowsAfterTermination(t *testing.T) {
	ref := engine.NewDay(2024, time.March, 1)

	t.Run("end date in the past", func(t *testing.T) {
		expired := boundedLease("3000",
			engine.NewDay(2023, time.January, 1), engine.NewDay(2024, time.February, 15))
		result := engine.ValidateNewLease([]engine.Lease{expired}, ref)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Error)
	})

	t.Run("manual override set false", func(t *testing.T) {
		terminated := boundedLease("3000",
			engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.June, 30))
		terminated.Active = false
		result := engine.ValidateNewLease([]engine.Lease{terminated}, ref)
		assert.True(t, result.Valid)
	})

	t.Run("no leases at all", func(t *testing.T) {
		result := engine.ValidateNewLease(nil, ref)
		assert.True(t, result.Valid)
	})
}

func TestUnitOccupancy(t *testing.T) {
	lease := boundedLease("3000",
		engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.June, 30))
	leases := []engine.Lease{lease}

	t.Run("occupied inside the window", func(t *testing.T) {
		assert.Equal(t, engine.Occupied,
			engine.UnitOccupancy(leases, engine.NewDay(2024, time.April, 10)))
	})

	t.Run("vacant after the window (historical snapshot)", func(t *testing.T) {
		assert.Equal(t, engine.Vacant,
			engine.UnitOccupancy(leases, engine.NewDay(2024, time.July, 31)))
	})

	t.Run("vacant before the window", func(t *testing.T) {
		assert.Equal(t, engine.Vacant,
			engine.UnitOccupancy(leases, engine.NewDay(2023, time.December, 31)))
	})
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.75, engine.OccupancyRate(3, 4))
	assert.Equal(t, 0.0, engine.OccupancyRate(0, 10))

	// Zero units yields 0, not NaN.
	assert.Equal(t, 0.0, engine.OccupancyRate(0, 0))
}
