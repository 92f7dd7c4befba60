// Package alert contains the KPI alert domain model: the fixed anomaly
// thresholds the daily check compares against, and the notification rows it
// emits when a threshold is breached.
package alert

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// THRESHOLDS
// Fixed portfolio-wide constants. These are product-owned numbers, not
// configuration; changing them is a product decision.
// ══════════════════════════════════════════════════════════════════════════════

const (
	// DropoutRateThreshold fires the dropout alert when the overall dropout
	// rate rises above this percentage.
	DropoutRateThreshold = 15.0

	// DropoutTrendDelta fires the dropout-trend alert when the current
	// dropout rate exceeds the trailing-30-day rate by more than this many
	// percentage points.
	DropoutTrendDelta = 5.0

	// DropoutTrailingWindowDays is the trailing window for the trend
	// comparison.
	DropoutTrailingWindowDays = 30

	// EmploymentRateThreshold fires the employment alert when the overall
	// employment rate falls below this percentage.
	EmploymentRateThreshold = 30.0

	// EnrollmentStagnationDays fires the stagnation alert when no
	// enrollment is dated within this many days.
	EnrollmentStagnationDays = 14
)

// ══════════════════════════════════════════════════════════════════════════════
// ALERT ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Type identifies which KPI check produced an alert.
type Type string

const (
	// TypeDropoutRate - dropout rate above the fixed threshold.
	TypeDropoutRate Type = "dropout_rate"
	// TypeDropoutTrend - dropout rate rising faster than the trailing
	// 30-day baseline allows.
	TypeDropoutTrend Type = "dropout_trend"
	// TypeEmploymentRate - employment rate below the fixed threshold.
	TypeEmploymentRate Type = "employment_rate"
	// TypeEnrollmentStagnation - no new enrollments within the stagnation
	// window.
	TypeEnrollmentStagnation Type = "enrollment_stagnation"
)

// Severity grades how urgent an alert is.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a single KPI anomaly notification.
type Alert struct {
	ID       string
	Type     Type
	Severity Severity

	// Message is the human-readable alert text shown to portfolio managers.
	Message string

	// Observed is the KPI value that breached the threshold.
	Observed float64

	// Threshold is the limit that was breached.
	Threshold float64

	CreatedAt time.Time
}

// Notifier delivers alerts to portfolio managers. Delivery channels
// (email, in-app, messenger) are external to the analytics core.
type Notifier interface {
	// Notify persists and dispatches a single alert.
	Notify(ctx context.Context, a *Alert) error
}

// Reader exposes recent alerts for the dashboard's alert summary.
type Reader interface {
	// Recent returns the most recent alerts, newest first.
	Recent(ctx context.Context, limit int) ([]*Alert, error)
}

// Deduper suppresses duplicate alerts for the same period. The reference
// behavior is to re-emit on every run; dedup is an opt-in implementation
// choice keyed by (period, alert type).
type Deduper interface {
	// ShouldEmit reports whether an alert with the given dedup key has not
	// been emitted yet within the key's lifetime, and marks it as emitted.
	ShouldEmit(ctx context.Context, key string) (bool, error)
}
