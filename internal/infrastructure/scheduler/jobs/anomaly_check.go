// Package jobs contains the scheduled analytics jobs: the daily KPI anomaly
// check and the periodic portfolio report builds.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/shared"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// KPI ANOMALY CHECK JOB
// Recomputes the portfolio KPIs once a day and compares them against the
// fixed thresholds. Breaches emit an alert through the notifier and an audit
// entry; a re-run within the same day re-emits unless dedup is enabled.
// ══════════════════════════════════════════════════════════════════════════════

// AnomalyCheckJob runs the daily KPI threshold checks.
type AnomalyCheckJob struct {
	loader   *analytics.Loader
	notifier alert.Notifier
	auditor  audit.Recorder
	deduper  alert.Deduper
	ids      shared.IDGenerator
	logger   *slog.Logger

	config AnomalyCheckConfig

	lastRunStats atomic.Value // *AnomalyCheckStats
}

// AnomalyCheckConfig contains configuration for the anomaly check job.
type AnomalyCheckConfig struct {
	// DedupEnabled suppresses a second alert of the same type within the
	// same day. Off by default: the reference behavior re-emits on every
	// run.
	DedupEnabled bool

	// Timeout is the maximum duration for one run.
	Timeout time.Duration
}

// DefaultAnomalyCheckConfig returns sensible defaults.
func DefaultAnomalyCheckConfig() AnomalyCheckConfig {
	return AnomalyCheckConfig{
		DedupEnabled: false,
		Timeout:      5 * time.Minute,
	}
}

// AnomalyCheckStats contains statistics from one check run.
type AnomalyCheckStats struct {
	StartedAt        time.Time
	CompletedAt      time.Time
	Duration         time.Duration
	ChecksEvaluated  int
	AlertsEmitted    int
	AlertsSuppressed int
	AlertsByType     map[alert.Type]int
	Errors           []error
}

// NewAnomalyCheckJob creates the daily anomaly check job. The deduper may be
// nil when dedup is disabled.
func NewAnomalyCheckJob(
	loader *analytics.Loader,
	notifier alert.Notifier,
	auditor audit.Recorder,
	deduper alert.Deduper,
	ids shared.IDGenerator,
	logger *slog.Logger,
	config AnomalyCheckConfig,
) *AnomalyCheckJob {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnomalyCheckJob{
		loader:   loader,
		notifier: notifier,
		auditor:  auditor,
		deduper:  deduper,
		ids:      ids,
		logger:   logger,
		config:   config,
	}
}

// Name returns the job name.
func (j *AnomalyCheckJob) Name() string {
	return "kpi_anomaly_check"
}

// Description returns a human-readable description.
func (j *AnomalyCheckJob) Description() string {
	return "Checks portfolio KPIs against fixed thresholds and emits alerts on breaches"
}

// Run executes the anomaly check.
func (j *AnomalyCheckJob) Run(ctx context.Context) error {
	startedAt := timeutil.Now()
	stats := &AnomalyCheckStats{
		StartedAt:    startedAt,
		AlertsByType: make(map[alert.Type]int),
		Errors:       make([]error, 0),
	}

	j.logger.Info("starting kpi_anomaly_check job")

	if j.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.Timeout)
		defer cancel()
	}

	snap, err := j.loader.Load(ctx)
	if err != nil {
		j.recordFailure(ctx, fmt.Sprintf("snapshot load failed: %v", err))
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	now := startedAt
	for _, breach := range j.evaluate(snap, now) {
		stats.ChecksEvaluated++
		if breach == nil {
			continue
		}

		if err := j.emit(ctx, breach, now, stats); err != nil {
			stats.Errors = append(stats.Errors, err)
			j.logger.Error("failed to emit alert",
				"alert_type", breach.Type,
				"error", err,
			)
		}
	}

	stats.CompletedAt = timeutil.Now()
	stats.Duration = stats.CompletedAt.Sub(startedAt)
	j.lastRunStats.Store(stats)

	j.logger.Info("kpi_anomaly_check job completed",
		"duration", stats.Duration.String(),
		"checks", stats.ChecksEvaluated,
		"alerts_emitted", stats.AlertsEmitted,
		"alerts_suppressed", stats.AlertsSuppressed,
	)

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// THRESHOLD CHECKS
// ══════════════════════════════════════════════════════════════════════════════

// evaluate runs every check and returns one slot per check; a nil slot means
// the check passed.
func (j *AnomalyCheckJob) evaluate(snap *analytics.Snapshot, now time.Time) []*alert.Alert {
	completion := analytics.ComputeCompletionStats(snap)
	employment := analytics.ComputeEmploymentStats(snap)

	return []*alert.Alert{
		j.checkDropoutRate(completion),
		j.checkDropoutTrend(snap, completion, now),
		j.checkEmploymentRate(employment),
		j.checkEnrollmentStagnation(snap, now),
	}
}

// checkDropoutRate fires when the overall dropout rate is above the fixed
// threshold.
func (j *AnomalyCheckJob) checkDropoutRate(completion analytics.CompletionStats) *alert.Alert {
	if completion.DropoutRate <= alert.DropoutRateThreshold {
		return nil
	}

	severity := alert.SeverityWarning
	if completion.DropoutRate > alert.DropoutRateThreshold+10 {
		severity = alert.SeverityCritical
	}

	return &alert.Alert{
		Type:     alert.TypeDropoutRate,
		Severity: severity,
		Message: fmt.Sprintf("portfolio dropout rate %.2f%% exceeds the %.0f%% threshold",
			completion.DropoutRate, alert.DropoutRateThreshold),
		Observed:  completion.DropoutRate,
		Threshold: alert.DropoutRateThreshold,
	}
}

// checkDropoutTrend fires when the overall dropout rate exceeds the rate
// among enrollments dated inside the trailing 30-day window by more than the
// allowed delta.
func (j *AnomalyCheckJob) checkDropoutTrend(snap *analytics.Snapshot, completion analytics.CompletionStats, now time.Time) *alert.Alert {
	var recentTotal, recentDropouts int
	for _, e := range snap.Enrollments {
		if !timeutil.WithinLastDays(e.EnrolledAt, alert.DropoutTrailingWindowDays, now) {
			continue
		}
		recentTotal++
		if e.Status == program.EnrollmentStatusDroppedOut {
			recentDropouts++
		}
	}

	trailingRate := analytics.Percentage(recentDropouts, recentTotal)
	delta := completion.DropoutRate - trailingRate
	if delta <= alert.DropoutTrendDelta {
		return nil
	}

	return &alert.Alert{
		Type:     alert.TypeDropoutTrend,
		Severity: alert.SeverityWarning,
		Message: fmt.Sprintf("dropout rate %.2f%% exceeds the trailing %d-day rate %.2f%% by %.2fpp",
			completion.DropoutRate, alert.DropoutTrailingWindowDays, trailingRate, delta),
		Observed:  delta,
		Threshold: alert.DropoutTrendDelta,
	}
}

// checkEmploymentRate fires when the overall employment rate is below the
// fixed threshold. A portfolio with no completed enrollments yet has a rate
// of 0 and would always fire, so the check requires at least one completion.
func (j *AnomalyCheckJob) checkEmploymentRate(employment analytics.EmploymentStats) *alert.Alert {
	if employment.CompletedEnrollments == 0 {
		return nil
	}
	if employment.OverallEmploymentRate >= alert.EmploymentRateThreshold {
		return nil
	}

	severity := alert.SeverityWarning
	if employment.OverallEmploymentRate < alert.EmploymentRateThreshold/2 {
		severity = alert.SeverityCritical
	}

	return &alert.Alert{
		Type:     alert.TypeEmploymentRate,
		Severity: severity,
		Message: fmt.Sprintf("portfolio employment rate %.2f%% is below the %.0f%% threshold",
			employment.OverallEmploymentRate, alert.EmploymentRateThreshold),
		Observed:  employment.OverallEmploymentRate,
		Threshold: alert.EmploymentRateThreshold,
	}
}

// checkEnrollmentStagnation fires when no enrollment is dated within the
// stagnation window. An empty portfolio does not fire: there is nothing to
// stagnate.
func (j *AnomalyCheckJob) checkEnrollmentStagnation(snap *analytics.Snapshot, now time.Time) *alert.Alert {
	if len(snap.Enrollments) == 0 {
		return nil
	}

	var latest time.Time
	for _, e := range snap.Enrollments {
		if e.EnrolledAt.After(latest) {
			latest = e.EnrolledAt
		}
	}

	days := timeutil.DaysSince(latest, now)
	if days <= alert.EnrollmentStagnationDays {
		return nil
	}

	return &alert.Alert{
		Type:     alert.TypeEnrollmentStagnation,
		Severity: alert.SeverityWarning,
		Message: fmt.Sprintf("no new enrollments for %d days (limit %d)",
			days, alert.EnrollmentStagnationDays),
		Observed:  float64(days),
		Threshold: float64(alert.EnrollmentStagnationDays),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// EMISSION
// ══════════════════════════════════════════════════════════════════════════════

// emit delivers one alert and its audit entry, honoring dedup when enabled.
func (j *AnomalyCheckJob) emit(ctx context.Context, a *alert.Alert, now time.Time, stats *AnomalyCheckStats) error {
	if j.config.DedupEnabled && j.deduper != nil {
		key := dedupKey(a.Type, now)
		fresh, err := j.deduper.ShouldEmit(ctx, key)
		if err != nil {
			// A broken dedup store must not silence alerts.
			j.logger.Warn("alert dedup unavailable, emitting anyway", "key", key, "error", err)
		} else if !fresh {
			stats.AlertsSuppressed++
			j.logger.Info("alert suppressed by dedup", "alert_type", a.Type, "key", key)
			return nil
		}
	}

	a.ID = j.ids.NewID()
	a.CreatedAt = now

	if err := j.notifier.Notify(ctx, a); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	stats.AlertsEmitted++
	stats.AlertsByType[a.Type]++

	entry := &audit.Entry{
		ID:        j.ids.NewID(),
		Actor:     j.Name(),
		Action:    audit.ActionAnomalyDetected,
		Detail:    a.Message,
		CreatedAt: now,
	}
	if err := j.auditor.Record(ctx, entry); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	return nil
}

// dedupKey identifies one alert type within one calendar day.
func dedupKey(t alert.Type, now time.Time) string {
	return fmt.Sprintf("%s:%s", timeutil.StartOfDay(now).Format("2006-01-02"), t)
}

// recordFailure writes a best-effort JOB_FAILED audit entry.
func (j *AnomalyCheckJob) recordFailure(ctx context.Context, detail string) {
	entry := &audit.Entry{
		ID:        j.ids.NewID(),
		Actor:     j.Name(),
		Action:    audit.ActionJobFailed,
		Detail:    detail,
		CreatedAt: timeutil.Now(),
	}
	if err := j.auditor.Record(ctx, entry); err != nil {
		j.logger.Warn("failed to record job failure", "error", err)
	}
}

// LastRunStats returns statistics from the last run.
func (j *AnomalyCheckJob) LastRunStats() *AnomalyCheckStats {
	stats := j.lastRunStats.Load()
	if stats == nil {
		return nil
	}
	return stats.(*AnomalyCheckStats)
}
