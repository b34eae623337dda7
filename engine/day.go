package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - Calendar-day normalized time
// =============================================================================

// Day is a point in time at calendar-day granularity. All date comparisons
// in the engine go through Day, so mixing normalized and non-normalized
// timestamps (the classic source of off-by-one accrual bugs) cannot happen.
//
// The zero Day is "no date" (see IsZero).
type Day struct {
	t time.Time // always UTC midnight
}

// NewDay constructs a Day from calendar fields.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf normalizes an arbitrary timestamp to its calendar day.
// This is the single normalize-to-day operation; every conversion from
// time.Time into the engine must route through it.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day. Callers capture it once and
// pass it down; the engine itself never reads the clock.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses an ISO date (2006-01-02).
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

func (d Day) Min(other Day) Day {
	if d.Before(other) {
		return d
	}
	return other
}

func (d Day) Max(other Day) Day {
	if d.After(other) {
		return d
	}
	return other
}

// Arithmetic
func (d Day) AddDays(n int) Day   { return DayOf(d.t.AddDate(0, 0, n)) }
func (d Day) AddMonths(n int) Day { return DayOf(d.t.AddDate(0, n, 0)) }

// Properties
func (d Day) Year() int         { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) DayOfMonth() int   { return d.t.Day() }
func (d Day) IsZero() bool      { return d.t.IsZero() }
func (d Day) Time() time.Time   { return d.t }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

// StartOfMonth returns the first day of d's month.
func (d Day) StartOfMonth() Day { return NewDay(d.Year(), d.Month(), 1) }

// EndOfMonth returns the last day of d's month (respects 28/29/30/31).
func (d Day) EndOfMonth() Day { return NewDay(d.Year(), d.Month(), d.DaysInMonth()) }

// DaysInMonth returns the actual number of days in d's month and year.
// February 2024 is 29; February 2023 is 28.
func (d Day) DaysInMonth() int {
	// Day zero of the next month is the last day of this month.
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the number of whole days from 'from' to 'to',
// exclusive of 'to'. Negative when 'to' precedes 'from'.
func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// InclusiveDays counts the days in the closed interval [from, to].
// A single-day interval counts as 1.
func InclusiveDays(from, to Day) int {
	return DaysBetween(from, to) + 1
}
