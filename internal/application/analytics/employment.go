package analytics

import (
	"sort"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

// ══════════════════════════════════════════════════════════════════════════════
// EMPLOYMENT OUTCOMES MODULE
// Employment rates over completed enrollments, broken down by partner and
// cohort, plus internship-to-employment conversion.
// ══════════════════════════════════════════════════════════════════════════════

// EmploymentStats is the output of the employment outcomes module.
type EmploymentStats struct {
	// CompletedEnrollments is the denominator for the overall rate.
	CompletedEnrollments int `json:"completed_enrollments"`

	// TotalEmployed counts completed enrollments with at least one
	// employed or self-employed outcome.
	TotalEmployed int `json:"total_employed"`

	// OverallEmploymentRate = TotalEmployed / CompletedEnrollments * 100.
	OverallEmploymentRate float64 `json:"overall_employment_rate"`

	// ByPartner mirrors the overall ratio scoped to each partner's
	// completed enrollments, sorted descending by rate.
	ByPartner []EmploymentGroup `json:"by_partner"`

	// ByCohort mirrors the overall ratio scoped to each cohort's
	// completed enrollments, sorted descending by rate.
	ByCohort []EmploymentGroup `json:"by_cohort"`

	// InternshipConversion summarizes completed internships that led to
	// employment.
	InternshipConversion ConversionStats `json:"internship_conversion"`
}

// EmploymentGroup is the employment ratio for one partner or cohort.
type EmploymentGroup struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Completed      int     `json:"completed"`
	Employed       int     `json:"employed"`
	EmploymentRate float64 `json:"employment_rate"`
}

// ConversionStats summarizes internship-to-employment conversion.
type ConversionStats struct {
	CompletedInternships int     `json:"completed_internships"`
	Converted            int     `json:"converted"`
	ConversionRate       float64 `json:"conversion_rate"`
}

// ComputeEmploymentStats aggregates employment outcomes against completed
// enrollments. Zero completed enrollments yields a zero rate, never an error.
func ComputeEmploymentStats(snap *Snapshot) EmploymentStats {
	outcomes := snap.OutcomesByEnrollment()

	completed := make([]*program.Enrollment, 0)
	for _, e := range snap.Enrollments {
		if e.Status == program.EnrollmentStatusCompleted {
			completed = append(completed, e)
		}
	}

	stats := EmploymentStats{CompletedEnrollments: len(completed)}
	for _, e := range completed {
		if hasEmployedOutcome(outcomes[e.ID]) {
			stats.TotalEmployed++
		}
	}
	stats.OverallEmploymentRate = Percentage(stats.TotalEmployed, stats.CompletedEnrollments)

	stats.ByPartner = employmentByPartner(snap, completed, outcomes)
	stats.ByCohort = employmentByCohort(snap, completed, outcomes)
	stats.InternshipConversion = internshipConversion(snap, outcomes)

	return stats
}

// hasEmployedOutcome reports whether any outcome for the enrollment counts as
// employment.
func hasEmployedOutcome(outcomes []*program.EmploymentOutcome) bool {
	for _, o := range outcomes {
		if o.Status.IsEmployed() {
			return true
		}
	}
	return false
}

// employmentByPartner scopes the employment ratio to each partner's completed
// enrollments, resolved through the participant. Enrollments without a
// resolvable partner are excluded from this breakdown only.
func employmentByPartner(
	snap *Snapshot,
	completed []*program.Enrollment,
	outcomes map[string][]*program.EmploymentOutcome,
) []EmploymentGroup {
	participants := snap.ParticipantsByID()
	partners := snap.PartnersByID()

	groups := make(map[string]*EmploymentGroup)
	for _, e := range completed {
		p, ok := participants[e.ParticipantID]
		if !ok {
			continue
		}
		partner, ok := partners[p.PartnerID]
		if !ok {
			continue
		}

		g, ok := groups[partner.ID]
		if !ok {
			g = &EmploymentGroup{Key: partner.ID, Label: partner.Name}
			groups[partner.ID] = g
		}
		g.Completed++
		if hasEmployedOutcome(outcomes[e.ID]) {
			g.Employed++
		}
	}

	return finishEmploymentGroups(groups)
}

// employmentByCohort scopes the employment ratio to each cohort's completed
// enrollments. Enrollments without a resolvable cohort are excluded from this
// breakdown only.
func employmentByCohort(
	snap *Snapshot,
	completed []*program.Enrollment,
	outcomes map[string][]*program.EmploymentOutcome,
) []EmploymentGroup {
	cohorts := snap.CohortsByID()

	groups := make(map[string]*EmploymentGroup)
	for _, e := range completed {
		cohort, ok := cohorts[e.CohortID]
		if !ok {
			continue
		}

		g, ok := groups[cohort.ID]
		if !ok {
			g = &EmploymentGroup{Key: cohort.ID, Label: cohort.Name}
			groups[cohort.ID] = g
		}
		g.Completed++
		if hasEmployedOutcome(outcomes[e.ID]) {
			g.Employed++
		}
	}

	return finishEmploymentGroups(groups)
}

// finishEmploymentGroups computes rates and sorts groups descending by rate,
// ties broken by label.
func finishEmploymentGroups(groups map[string]*EmploymentGroup) []EmploymentGroup {
	out := make([]EmploymentGroup, 0, len(groups))
	for _, g := range groups {
		g.EmploymentRate = Percentage(g.Employed, g.Completed)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmploymentRate != out[j].EmploymentRate {
			return out[i].EmploymentRate > out[j].EmploymentRate
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// internshipConversion counts completed internships that converted into
// employment. An internship converts when the same enrollment has an employed
// outcome that either references this internship explicitly or carries no
// internship reference at all. The unreferenced branch is deliberately
// lenient and can over-count when one participant holds several completed
// internships; tightening it is a product decision, not an engineering one.
func internshipConversion(
	snap *Snapshot,
	outcomes map[string][]*program.EmploymentOutcome,
) ConversionStats {
	stats := ConversionStats{}
	for _, in := range snap.Internships {
		if in.Status != program.InternshipStatusCompleted {
			continue
		}
		stats.CompletedInternships++
		for _, o := range outcomes[in.EnrollmentID] {
			if !o.Status.IsEmployed() {
				continue
			}
			if o.InternshipID == in.ID || !o.HasInternshipRef() {
				stats.Converted++
				break
			}
		}
	}
	stats.ConversionRate = Percentage(stats.Converted, stats.CompletedInternships)
	return stats
}
