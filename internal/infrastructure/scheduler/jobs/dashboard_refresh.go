package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/dashboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// DASHBOARD REFRESH JOB
// Recomposes the dashboard summary on a short interval so the Redis cache is
// already warm when the overview screen asks for it. Only registered when a
// cache is wired; without one the composer recomputes per request anyway.
// ══════════════════════════════════════════════════════════════════════════════

// DashboardRefreshJob keeps the cached dashboard summary warm.
type DashboardRefreshJob struct {
	composer *dashboard.Composer
	logger   *slog.Logger

	lastRunStats atomic.Value // *DashboardRefreshStats
}

// DashboardRefreshStats contains statistics from one refresh run.
type DashboardRefreshStats struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	GeneratedAt time.Time
}

// NewDashboardRefreshJob creates the cache warming job.
func NewDashboardRefreshJob(composer *dashboard.Composer, logger *slog.Logger) *DashboardRefreshJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardRefreshJob{
		composer: composer,
		logger:   logger,
	}
}

// Name returns the job name.
func (j *DashboardRefreshJob) Name() string {
	return "dashboard_refresh"
}

// Description returns a human-readable description of the job.
func (j *DashboardRefreshJob) Description() string {
	return "Recomposes the dashboard summary to keep the cache warm"
}

// Run composes a fresh summary. The composer writes it through to the cache
// as part of Handle.
func (j *DashboardRefreshJob) Run(ctx context.Context) error {
	stats := &DashboardRefreshStats{StartedAt: time.Now()}

	summary, err := j.composer.Handle(ctx)
	if err != nil {
		j.logger.Error("dashboard refresh failed", "error", err)
		return err
	}

	stats.CompletedAt = time.Now()
	stats.Duration = stats.CompletedAt.Sub(stats.StartedAt)
	stats.GeneratedAt = summary.GeneratedAt
	j.lastRunStats.Store(stats)

	j.logger.Debug("dashboard summary refreshed",
		"duration", stats.Duration,
		"generated_at", summary.GeneratedAt,
	)
	return nil
}

// LastRunStats returns statistics from the most recent run, or nil if the job
// has not run yet.
func (j *DashboardRefreshJob) LastRunStats() *DashboardRefreshStats {
	if v := j.lastRunStats.Load(); v != nil {
		return v.(*DashboardRefreshStats)
	}
	return nil
}
