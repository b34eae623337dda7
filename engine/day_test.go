package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/property-ledger/engine"
)

func TestDayOf_StripsTimeOfDay(t *testing.T) {
	// GIVEN: Timestamps at different times of the same calendar day
	// THEN: They normalize to the same Day

	morning := time.Date(2024, time.March, 15, 8, 30, 0, 0, time.UTC)
	night := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)

	assert.True(t, engine.DayOf(morning).Equal(engine.DayOf(night)))
	assert.Equal(t, "2024-03-15", engine.DayOf(night).String())
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name string
		from engine.Day
		to   engine.Day
		want int
	}{
		{"single day", engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.January, 1), 1},
		{"first to first of next month", engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.February, 1), 32},
		{"full leap february", engine.NewDay(2024, time.February, 1), engine.NewDay(2024, time.February, 29), 29},
		{"across year boundary", engine.NewDay(2023, time.December, 30), engine.NewDay(2024, time.January, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.InclusiveDays(tt.from, tt.to))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		day  engine.Day
		want int
	}{
		{engine.NewDay(2023, time.February, 10), 28},
		{engine.NewDay(2024, time.February, 10), 29}, // leap year
		{engine.NewDay(2024, time.April, 1), 30},
		{engine.NewDay(2024, time.January, 31), 31},
		{engine.NewDay(2100, time.February, 1), 28}, // century, not leap
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.day.DaysInMonth(), "month of %s", tt.day)
	}
}

func TestMonthBoundaries(t *testing.T) {
	d := engine.NewDay(2024, time.February, 17)

	assert.Equal(t, "2024-02-01", d.StartOfMonth().String())
	assert.Equal(t, "2024-02-29", d.EndOfMonth().String())
	assert.Equal(t, "2024-03-01", d.StartOfMonth().AddMonths(1).String())
}

func TestParseDay(t *testing.T) {
	d, err := engine.ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.DayOfMonth())

	_, err = engine.ParseDay("29/02/2024")
	assert.Error(t, err)
}
