// Package report builds scheduled portfolio reports: full-portfolio module
// outputs plus deltas scoped to the report's calendar window.
package report

import (
	"context"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/shared"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PORTFOLIO REPORT GENERATOR
// One snapshot load per report; every section computes from the same
// snapshot. The report carries whole-portfolio aggregates - the period only
// scopes the delta section and the report's identity.
// ══════════════════════════════════════════════════════════════════════════════

// PortfolioReport is the full report DTO handed to exporters.
type PortfolioReport struct {
	// PeriodLabel is the report cadence: "weekly", "monthly", "quarterly".
	PeriodLabel string `json:"period_label"`

	// PeriodStart is inclusive, PeriodEnd exclusive.
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Deltas counts activity dated inside the period window.
	Deltas PeriodDeltas `json:"deltas"`

	Enrollment   analytics.EnrollmentKPIs      `json:"enrollment"`
	Completion   analytics.CompletionStats     `json:"completion"`
	Employment   analytics.EmploymentStats     `json:"employment"`
	Longitudinal analytics.LongitudinalImpact  `json:"longitudinal"`
	Demographics analytics.Demographics        `json:"demographics"`
	Regional     analytics.RegionalRollups     `json:"regional"`
	SurveyImpact analytics.SurveyImpactSummary `json:"survey_impact"`

	// GeneratedAt is when the report was built, not the period end.
	GeneratedAt time.Time `json:"generated_at"`
}

// PeriodDeltas counts what happened during the report window.
type PeriodDeltas struct {
	// NewEnrollments counts enrollments whose enrolled-at date falls in the
	// window.
	NewEnrollments int `json:"new_enrollments"`

	// Completions counts enrollments completed during the window.
	Completions int `json:"completions"`

	// Dropouts counts enrollments dropped during the window.
	Dropouts int `json:"dropouts"`

	// SurveyResponses counts responses submitted during the window.
	SurveyResponses int `json:"survey_responses"`
}

// Generator builds portfolio reports from record store snapshots.
type Generator struct {
	loader *analytics.Loader
	now    func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(loader *analytics.Loader) *Generator {
	return &Generator{
		loader: loader,
		now:    timeutil.Now,
	}
}

// Generate builds the report for one calendar period.
func (g *Generator) Generate(ctx context.Context, period timeutil.Period) (*PortfolioReport, error) {
	snap, err := g.loader.Load(ctx)
	if err != nil {
		return nil, shared.WrapError("report", "Generate", shared.ErrExternalService, "loading snapshot", err)
	}

	now := g.now()
	return &PortfolioReport{
		PeriodLabel:  period.Label,
		PeriodStart:  period.Start,
		PeriodEnd:    period.End,
		Deltas:       computeDeltas(snap, period),
		Enrollment:   analytics.ComputeEnrollmentKPIs(snap),
		Completion:   analytics.ComputeCompletionStats(snap),
		Employment:   analytics.ComputeEmploymentStats(snap),
		Longitudinal: analytics.ComputeLongitudinalImpact(snap, now),
		Demographics: analytics.ComputeDemographics(snap),
		Regional:     analytics.ComputeRegionalRollups(snap),
		SurveyImpact: analytics.ComputeSurveyImpact(snap),
		GeneratedAt:  now,
	}, nil
}

// computeDeltas counts window-scoped activity. Each enrollment can appear in
// several buckets: one enrolled and dropped inside the same window counts in
// both.
func computeDeltas(snap *analytics.Snapshot, period timeutil.Period) PeriodDeltas {
	var d PeriodDeltas

	for _, e := range snap.Enrollments {
		if period.Contains(e.EnrolledAt) {
			d.NewEnrollments++
		}
		if e.CompletedAt != nil && period.Contains(*e.CompletedAt) {
			d.Completions++
		}
		if e.DroppedOutAt != nil && period.Contains(*e.DroppedOutAt) {
			d.Dropouts++
		}
	}

	for _, r := range snap.SurveyResponses {
		if r.SubmittedAt != nil && period.Contains(*r.SubmittedAt) {
			d.SurveyResponses++
		}
	}

	return d
}
