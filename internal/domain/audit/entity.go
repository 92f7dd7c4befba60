// Package audit contains the audit-trail domain model. The analytics engine
// never mutates domain entities; audit entries and alert notifications are the
// only rows it asks collaborators to write.
package audit

import (
	"context"
	"time"
)

// Action identifies what kind of event an audit entry records.
type Action string

const (
	// ActionAnomalyDetected - the KPI anomaly check found a breach.
	ActionAnomalyDetected Action = "ANOMALY_DETECTED"
	// ActionReportGenerated - a scheduled portfolio report was produced.
	ActionReportGenerated Action = "REPORT_GENERATED"
	// ActionJobFailed - a scheduled job run failed and was skipped.
	ActionJobFailed Action = "JOB_FAILED"
)

// Entry is a single audit-trail record.
type Entry struct {
	ID string

	// Actor names the system component that produced the entry, e.g.
	// "kpi_anomaly_check" or "portfolio_report".
	Actor string

	Action Action

	// Detail is a human-readable description of what happened.
	Detail string

	CreatedAt time.Time
}

// Recorder writes audit entries. Implementations live in
// infrastructure/persistence.
type Recorder interface {
	// Record persists a single audit entry.
	Record(ctx context.Context, entry *Entry) error
}

// Reader exposes recent audit entries for the dashboard's activity feed.
type Reader interface {
	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]*Entry, error)
}
