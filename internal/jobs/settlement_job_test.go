package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	// Before this month's run: later the same day.
	got := nextRun(time.Date(2025, 7, 1, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC), got)

	// Mid-month: the 1st of next month.
	got = nextRun(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC), got)

	// Exactly at the run instant: strictly after, so next month.
	got = nextRun(time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 8, 1, 2, 0, 0, 0, time.UTC), got)

	// December rolls over the year.
	got = nextRun(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC), got)
}
