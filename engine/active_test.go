package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/property-ledger/engine"
)

func TestLeaseActiveOn(t *testing.T) {
	start := engine.NewDay(2024, time.March, 1)
	end := engine.NewDay(2024, time.August, 31)

	bounded := boundedLease("1000", start, end)
	open := openLease("1000", start)

	overridden := boundedLease("1000", start, end)
	overridden.Active = false

	tests := []struct {
		name  string
		lease engine.Lease
		ref   engine.Day
		want  bool
	}{
		{"day before start", bounded, start.AddDays(-1), false},
		{"start day inclusive", bounded, start, true},
		{"mid window", bounded, engine.NewDay(2024, time.May, 15), true},
		{"end day inclusive", bounded, end, true},
		{"day after end", bounded, end.AddDays(1), false},
		{"open-ended far future", open, engine.NewDay(2040, time.January, 1), true},
		{"future lease", open, engine.NewDay(2024, time.February, 29), false},
		{"flag override beats matching dates", overridden, engine.NewDay(2024, time.May, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lease.ActiveOn(tt.ref))
		})
	}
}
