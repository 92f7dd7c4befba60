package analytics

import (
	"sort"

	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT KPI MODULE
// Portfolio-wide enrollment volume: total count, month-over-month growth,
// and breakdowns by owning partner and program.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentKPIs is the output of the enrollment KPI module.
type EnrollmentKPIs struct {
	// TotalEnrollments is the count of every enrollment record.
	TotalEnrollments int `json:"total_enrollments"`

	// MonthlyGrowth is the chronological month-bucket series.
	MonthlyGrowth []MonthlyGrowthPoint `json:"monthly_growth"`

	// ByPartner breaks enrollments down by the participant's partner,
	// sorted descending by count.
	ByPartner []BreakdownEntry `json:"by_partner"`

	// ByProgram breaks enrollments down by the cohort's program,
	// sorted descending by count.
	ByProgram []BreakdownEntry `json:"by_program"`
}

// MonthlyGrowthPoint is one month bucket in the growth series.
type MonthlyGrowthPoint struct {
	// Month is the bucket key in "2006-01" form.
	Month string `json:"month"`

	// Count is the number of enrollments dated in this month.
	Count int `json:"count"`

	// GrowthPercent is the change relative to the previous month. The
	// first bucket reads 0; a month following an empty month reads 100.
	GrowthPercent float64 `json:"growth_percent"`
}

// BreakdownEntry is one group in a categorical breakdown.
type BreakdownEntry struct {
	// Key is the grouping id (partner id, program id, or the categorical
	// value itself for demographic breakdowns).
	Key string `json:"key"`

	// Label is the display name for the group.
	Label string `json:"label"`

	// Count is the absolute number of records in the group.
	Count int `json:"count"`

	// Percentage is the group's share of the module's total, in [0,100].
	Percentage float64 `json:"percentage"`
}

// ComputeEnrollmentKPIs aggregates all enrollments into portfolio KPIs.
// Empty input yields zero totals and empty breakdown lists, never an error.
func ComputeEnrollmentKPIs(snap *Snapshot) EnrollmentKPIs {
	out := EnrollmentKPIs{
		TotalEnrollments: len(snap.Enrollments),
		MonthlyGrowth:    monthlyGrowthSeries(snap),
		ByPartner:        enrollmentsByPartner(snap),
		ByProgram:        enrollmentsByProgram(snap),
	}
	return out
}

// monthlyGrowthSeries buckets enrollments by calendar month and computes
// month-over-month growth. The series is contiguous from the first to the
// last observed month: gap months appear with a zero count, so a month that
// resumes after a gap reads exactly 100.
func monthlyGrowthSeries(snap *Snapshot) []MonthlyGrowthPoint {
	counts := make(map[timeutil.YearMonth]int)
	for _, e := range snap.Enrollments {
		counts[timeutil.YearMonthOf(e.EnrolledAt)]++
	}
	if len(counts) == 0 {
		return nil
	}

	var first, last timeutil.YearMonth
	started := false
	for ym := range counts {
		if !started {
			first, last = ym, ym
			started = true
			continue
		}
		if ym.Before(first) {
			first = ym
		}
		if last.Before(ym) {
			last = ym
		}
	}

	var series []MonthlyGrowthPoint
	prev := 0
	for ym := first; ; ym = ym.Next() {
		point := MonthlyGrowthPoint{Month: ym.String(), Count: counts[ym]}
		if len(series) > 0 {
			point.GrowthPercent = GrowthPercent(prev, point.Count)
		}
		series = append(series, point)
		prev = point.Count
		if ym == last {
			break
		}
	}
	return series
}

// enrollmentsByPartner groups enrollments by the owning partner, resolved
// through the participant. Enrollments whose participant or partner cannot be
// resolved are dropped from this breakdown only.
func enrollmentsByPartner(snap *Snapshot) []BreakdownEntry {
	participants := snap.ParticipantsByID()
	partners := snap.PartnersByID()

	counts := make(map[string]int)
	for _, e := range snap.Enrollments {
		p, ok := participants[e.ParticipantID]
		if !ok {
			continue
		}
		if _, ok := partners[p.PartnerID]; !ok {
			continue
		}
		counts[p.PartnerID]++
	}

	entries := make([]BreakdownEntry, 0, len(counts))
	for partnerID, count := range counts {
		entries = append(entries, BreakdownEntry{
			Key:        partnerID,
			Label:      partners[partnerID].Name,
			Count:      count,
			Percentage: Percentage(count, len(snap.Enrollments)),
		})
	}
	sortBreakdown(entries)
	return entries
}

// enrollmentsByProgram groups enrollments by program, resolved through the
// cohort. Enrollments whose cohort or program cannot be resolved are dropped
// from this breakdown only.
func enrollmentsByProgram(snap *Snapshot) []BreakdownEntry {
	cohorts := snap.CohortsByID()
	programs := snap.ProgramsByID()

	counts := make(map[string]int)
	for _, e := range snap.Enrollments {
		c, ok := cohorts[e.CohortID]
		if !ok {
			continue
		}
		if _, ok := programs[c.ProgramID]; !ok {
			continue
		}
		counts[c.ProgramID]++
	}

	entries := make([]BreakdownEntry, 0, len(counts))
	for programID, count := range counts {
		entries = append(entries, BreakdownEntry{
			Key:        programID,
			Label:      programs[programID].Name,
			Count:      count,
			Percentage: Percentage(count, len(snap.Enrollments)),
		})
	}
	sortBreakdown(entries)
	return entries
}

// sortBreakdown orders entries descending by count, ties broken by label so
// output is deterministic.
func sortBreakdown(entries []BreakdownEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
}
