// Package dashboard composes the portfolio overview served to program
// managers. Queries never modify state - they only read and return data.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DASHBOARD COMPOSER
// Synchronous fan-in over the aggregation modules: one snapshot load, every
// module computed from that same snapshot, recent activity and alerts
// attached from their stores. A short-TTL cache sits in front; staleness
// within the TTL is acceptable for an overview screen.
// ══════════════════════════════════════════════════════════════════════════════

// recentLimit bounds the activity and alert feeds on the dashboard.
const recentLimit = 10

// SummaryCache caches composed summaries. Invalidation is by key expiry
// only; nothing actively evicts on data change.
type SummaryCache interface {
	// Get returns the cached summary, or an error when none is cached.
	Get(ctx context.Context) (*Summary, error)

	// Set stores the summary for the cache's configured TTL.
	Set(ctx context.Context, s *Summary) error
}

// Summary is the dashboard DTO: headline counts, the KPI module outputs the
// overview screen renders, and the two recency feeds.
type Summary struct {
	// TotalParticipants counts every participant across all partners.
	TotalParticipants int `json:"total_participants"`

	// TotalPartners counts every partner, active or not.
	TotalPartners int `json:"total_partners"`

	// TotalCenters counts every training center.
	TotalCenters int `json:"total_centers"`

	// ActiveCohorts counts cohorts currently in the ACTIVE state.
	ActiveCohorts int `json:"active_cohorts"`

	// Enrollment carries totals, monthly growth and breakdowns.
	Enrollment analytics.EnrollmentKPIs `json:"enrollment"`

	// Completion carries completion/dropout rates and the reason histogram.
	Completion analytics.CompletionStats `json:"completion"`

	// Employment carries employment rates and internship conversion.
	Employment analytics.EmploymentStats `json:"employment"`

	// Demographics carries the participant breakdowns.
	Demographics analytics.Demographics `json:"demographics"`

	// RecentActivity lists the latest audit entries, newest first.
	RecentActivity []ActivityDTO `json:"recent_activity"`

	// RecentAlerts lists the latest KPI alerts, newest first.
	RecentAlerts []AlertDTO `json:"recent_alerts"`

	// GeneratedAt is when this summary was composed.
	GeneratedAt time.Time `json:"generated_at"`
}

// ActivityDTO is one row of the dashboard activity feed.
type ActivityDTO struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertDTO is one row of the dashboard alert feed.
type AlertDTO struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Observed  float64   `json:"observed"`
	Threshold float64   `json:"threshold"`
	CreatedAt time.Time `json:"created_at"`
}

// Composer builds dashboard summaries.
type Composer struct {
	loader *analytics.Loader
	audits audit.Reader
	alerts alert.Reader
	cache  SummaryCache
	logger *slog.Logger
	now    func() time.Time
}

// NewComposer creates a dashboard composer. The cache may be nil, in which
// case every request recomputes; the audit and alert readers may be nil,
// leaving their feeds empty.
func NewComposer(
	loader *analytics.Loader,
	audits audit.Reader,
	alerts alert.Reader,
	cache SummaryCache,
	logger *slog.Logger,
) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		loader: loader,
		audits: audits,
		alerts: alerts,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the dashboard summary, from cache when a fresh copy exists.
func (c *Composer) Handle(ctx context.Context) (*Summary, error) {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	snap, err := c.loader.Load(ctx)
	if err != nil {
		return nil, shared.WrapError("dashboard", "Handle", shared.ErrExternalService, "loading snapshot", err)
	}

	summary := c.compose(ctx, snap)

	if c.cache != nil {
		if err := c.cache.Set(ctx, summary); err != nil {
			// Cache failures degrade to recompute-per-request, nothing more.
			c.logger.Warn("dashboard cache write failed", "error", err)
		}
	}

	return summary, nil
}

// compose fans the snapshot into every module output the dashboard renders.
func (c *Composer) compose(ctx context.Context, snap *analytics.Snapshot) *Summary {
	summary := &Summary{
		TotalParticipants: len(snap.Participants),
		TotalPartners:     len(snap.Partners),
		TotalCenters:      len(snap.Centers),
		Enrollment:        analytics.ComputeEnrollmentKPIs(snap),
		Completion:        analytics.ComputeCompletionStats(snap),
		Employment:        analytics.ComputeEmploymentStats(snap),
		Demographics:      analytics.ComputeDemographics(snap),
		RecentActivity:    []ActivityDTO{},
		RecentAlerts:      []AlertDTO{},
		GeneratedAt:       c.now(),
	}

	for _, co := range snap.Cohorts {
		if co.Status == program.CohortStatusActive {
			summary.ActiveCohorts++
		}
	}

	summary.RecentActivity = c.recentActivity(ctx)
	summary.RecentAlerts = c.recentAlerts(ctx)

	return summary
}

// recentActivity reads the audit feed. Feed failures leave the dashboard
// without a feed, never without a dashboard.
func (c *Composer) recentActivity(ctx context.Context) []ActivityDTO {
	if c.audits == nil {
		return []ActivityDTO{}
	}

	entries, err := c.audits.Recent(ctx, recentLimit)
	if err != nil {
		c.logger.Warn("audit feed unavailable", "error", err)
		return []ActivityDTO{}
	}

	dtos := make([]ActivityDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ActivityDTO{
			Actor:     e.Actor,
			Action:    string(e.Action),
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		}
	}
	return dtos
}

// recentAlerts reads the alert feed, with the same degradation rule as the
// activity feed.
func (c *Composer) recentAlerts(ctx context.Context) []AlertDTO {
	if c.alerts == nil {
		return []AlertDTO{}
	}

	alerts, err := c.alerts.Recent(ctx, recentLimit)
	if err != nil {
		c.logger.Warn("alert feed unavailable", "error", err)
		return []AlertDTO{}
	}

	dtos := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = AlertDTO{
			Type:      string(a.Type),
			Severity:  string(a.Severity),
			Message:   a.Message,
			Observed:  a.Observed,
			Threshold: a.Threshold,
			CreatedAt: a.CreatedAt,
		}
	}
	return dtos
}
