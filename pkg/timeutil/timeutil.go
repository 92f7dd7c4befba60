// Package timeutil provides calendar utilities for portfolio reporting.
// All bucketing and report periods are computed in UTC so that results are
// identical regardless of where a worker happens to run.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns the start of the day (00:00:00) in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the start of the ISO week (Monday 00:00:00) in UTC.
func StartOfWeek(t time.Time) time.Time {
	u := t.UTC()
	weekday := int(u.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return StartOfDay(u.AddDate(0, 0, -(weekday - 1)))
}

// StartOfMonth returns the first day of the month (00:00:00) in UTC.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfQuarter returns the first day of the calendar quarter in UTC.
func StartOfQuarter(t time.Time) time.Time {
	u := t.UTC()
	quarterMonth := time.Month(((int(u.Month())-1)/3)*3 + 1)
	return time.Date(u.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
}

// ══════════════════════════════════════════════════════════════════════════════
// MONTH BUCKETS
// ══════════════════════════════════════════════════════════════════════════════

// YearMonth identifies a calendar month, used as a time-series bucket key.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf truncates a time to its calendar month in UTC.
func YearMonthOf(t time.Time) YearMonth {
	u := t.UTC()
	return YearMonth{Year: u.Year(), Month: u.Month()}
}

// Before reports whether ym is chronologically before other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the immediately following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// String formats the bucket as "2025-04".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Time returns the first instant of the month in UTC.
func (ym YearMonth) Time() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// ══════════════════════════════════════════════════════════════════════════════
// DAY ARITHMETIC
// ══════════════════════════════════════════════════════════════════════════════

// DaysBetween returns the fractional number of days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// DaysSince returns the whole days elapsed from t until now, comparing at
// day granularity.
func DaysSince(t time.Time, now time.Time) int {
	return int(StartOfDay(now).Sub(StartOfDay(t)).Hours() / 24)
}

// WithinLastDays reports whether t falls inside the trailing window of the
// given number of days ending at now.
func WithinLastDays(t time.Time, days int, now time.Time) bool {
	if t.After(now) {
		return false
	}
	return !t.Before(now.AddDate(0, 0, -days))
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT PERIODS
// ══════════════════════════════════════════════════════════════════════════════

// Period is a half-open calendar window [Start, End) labeled for reporting.
type Period struct {
	// Label identifies the period kind: "weekly", "monthly", "quarterly".
	Label string

	// Start is inclusive, End is exclusive.
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Key returns a stable identifier such as "weekly:2025-08-25" suitable for
// dedup keys and report filenames.
func (p Period) Key() string {
	return fmt.Sprintf("%s:%s", p.Label, p.Start.Format("2006-01-02"))
}

// PreviousWeek returns the most recently completed Monday-to-Sunday week
// relative to now.
func PreviousWeek(now time.Time) Period {
	end := StartOfWeek(now)
	return Period{Label: "weekly", Start: end.AddDate(0, 0, -7), End: end}
}

// PreviousMonth returns the most recently completed calendar month relative
// to now.
func PreviousMonth(now time.Time) Period {
	end := StartOfMonth(now)
	return Period{Label: "monthly", Start: end.AddDate(0, -1, 0), End: end}
}

// PreviousQuarter returns the most recently completed calendar quarter
// relative to now.
func PreviousQuarter(now time.Time) Period {
	end := StartOfQuarter(now)
	return Period{Label: "quarterly", Start: end.AddDate(0, -3, 0), End: end}
}
