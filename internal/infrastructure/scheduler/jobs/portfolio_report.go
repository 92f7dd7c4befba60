package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/report"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/shared"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PORTFOLIO REPORT JOB
// One job per cadence: the weekly, monthly and quarterly schedules each
// register their own instance with the matching period function. The job
// builds the report for the most recently completed period and hands it to
// the exporter.
// ══════════════════════════════════════════════════════════════════════════════

// Cadence selects which calendar period a report job covers.
type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
)

// periodFor maps a cadence to its most recently completed window.
func (c Cadence) periodFor(now time.Time) timeutil.Period {
	switch c {
	case CadenceMonthly:
		return timeutil.PreviousMonth(now)
	case CadenceQuarterly:
		return timeutil.PreviousQuarter(now)
	default:
		return timeutil.PreviousWeek(now)
	}
}

// Exporter hands a finished report to its destination. Formatting beyond
// the default JSON wiring is out of the analytics core's hands.
type Exporter interface {
	// Export delivers one report.
	Export(ctx context.Context, r *report.PortfolioReport) error
}

// PortfolioReportJob builds and exports one cadence of portfolio report.
type PortfolioReportJob struct {
	cadence   Cadence
	generator *report.Generator
	exporter  Exporter
	auditor   audit.Recorder
	ids       shared.IDGenerator
	logger    *slog.Logger
	now       func() time.Time

	lastRunStats atomic.Value // *ReportRunStats
}

// ReportRunStats contains statistics from one report run.
type ReportRunStats struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	PeriodKey   string
	Exported    bool
}

// NewPortfolioReportJob creates a report job for one cadence.
func NewPortfolioReportJob(
	cadence Cadence,
	generator *report.Generator,
	exporter Exporter,
	auditor audit.Recorder,
	ids shared.IDGenerator,
	logger *slog.Logger,
) *PortfolioReportJob {
	if logger == nil {
		logger = slog.Default()
	}

	return &PortfolioReportJob{
		cadence:   cadence,
		generator: generator,
		exporter:  exporter,
		auditor:   auditor,
		ids:       ids,
		logger:    logger,
		now:       timeutil.Now,
	}
}

// Name returns the job name, unique per cadence.
func (j *PortfolioReportJob) Name() string {
	return fmt.Sprintf("portfolio_report_%s", j.cadence)
}

// Description returns a human-readable description.
func (j *PortfolioReportJob) Description() string {
	return fmt.Sprintf("Builds and exports the %s portfolio report", j.cadence)
}

// Run builds the report for the most recently completed period and exports
// it.
func (j *PortfolioReportJob) Run(ctx context.Context) error {
	startedAt := j.now()
	period := j.cadence.periodFor(startedAt)
	stats := &ReportRunStats{StartedAt: startedAt, PeriodKey: period.Key()}

	j.logger.Info("starting portfolio report job",
		"cadence", j.cadence,
		"period", period.Key(),
	)

	r, err := j.generator.Generate(ctx, period)
	if err != nil {
		j.recordAudit(ctx, audit.ActionJobFailed, fmt.Sprintf("%s report build failed: %v", period.Key(), err))
		return fmt.Errorf("failed to build %s report: %w", j.cadence, err)
	}

	if err := j.exporter.Export(ctx, r); err != nil {
		j.recordAudit(ctx, audit.ActionJobFailed, fmt.Sprintf("%s report export failed: %v", period.Key(), err))
		return fmt.Errorf("failed to export %s report: %w", j.cadence, err)
	}

	stats.Exported = true
	stats.CompletedAt = j.now()
	stats.Duration = stats.CompletedAt.Sub(startedAt)
	j.lastRunStats.Store(stats)

	j.recordAudit(ctx, audit.ActionReportGenerated, fmt.Sprintf("%s report generated and exported", period.Key()))

	j.logger.Info("portfolio report job completed",
		"cadence", j.cadence,
		"period", period.Key(),
		"duration", stats.Duration.String(),
	)

	return nil
}

// recordAudit writes a best-effort audit entry for the run.
func (j *PortfolioReportJob) recordAudit(ctx context.Context, action audit.Action, detail string) {
	entry := &audit.Entry{
		ID:        j.ids.NewID(),
		Actor:     j.Name(),
		Action:    action,
		Detail:    detail,
		CreatedAt: j.now(),
	}
	if err := j.auditor.Record(ctx, entry); err != nil {
		j.logger.Warn("failed to record audit entry", "action", action, "error", err)
	}
}

// LastRunStats returns statistics from the last run.
func (j *PortfolioReportJob) LastRunStats() *ReportRunStats {
	stats := j.lastRunStats.Load()
	if stats == nil {
		return nil
	}
	return stats.(*ReportRunStats)
}
