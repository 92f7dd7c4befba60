package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	// Thursday 2025-08-14 -> Monday 2025-08-11.
	thu := time.Date(2025, time.August, 14, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC), StartOfWeek(thu))

	// Sunday belongs to the week starting the previous Monday.
	sun := time.Date(2025, time.August, 17, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC), StartOfWeek(sun))

	// A Monday is its own week start.
	mon := time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(mon))
}

func TestStartOfQuarter(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		StartOfQuarter(time.Date(2025, time.September, 30, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		StartOfQuarter(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestYearMonth(t *testing.T) {
	ym := YearMonthOf(time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-04", ym.String())
	assert.True(t, YearMonth{2024, time.December}.Before(ym))
	assert.False(t, ym.Before(ym))
}

func TestYearMonthNext(t *testing.T) {
	assert.Equal(t, YearMonth{2025, time.May}, YearMonth{2025, time.April}.Next())
	// Year rollover.
	assert.Equal(t, YearMonth{2026, time.January}, YearMonth{2025, time.December}.Next())
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, time.August, 20, 6, 0, 0, 0, time.UTC)

	// Day granularity: late evening yesterday still counts as one day ago.
	yesterday := time.Date(2025, time.August, 19, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysSince(yesterday, now))
	assert.Equal(t, 0, DaysSince(now, now))
}

func TestWithinLastDays(t *testing.T) {
	now := time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinLastDays(now.AddDate(0, 0, -29), 30, now))
	assert.True(t, WithinLastDays(now.AddDate(0, 0, -30), 30, now))
	assert.False(t, WithinLastDays(now.AddDate(0, 0, -31), 30, now))
	assert.False(t, WithinLastDays(now.Add(time.Hour), 30, now))
}

func TestPreviousPeriods(t *testing.T) {
	// Wednesday 2025-08-20.
	now := time.Date(2025, time.August, 20, 6, 0, 0, 0, time.UTC)

	week := PreviousWeek(now)
	assert.Equal(t, time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC), week.End)
	assert.Equal(t, "weekly:2025-08-11", week.Key())

	month := PreviousMonth(now)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), month.Start)
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), month.End)

	quarter := PreviousQuarter(now)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), quarter.Start)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), quarter.End)
}

func TestPeriodContains(t *testing.T) {
	p := Period{
		Label: "monthly",
		Start: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC)))
	// End is exclusive.
	assert.False(t, p.Contains(p.End))
	assert.False(t, p.Contains(p.Start.Add(-time.Second)))
}
