package analytics

import (
	"sort"
	"strings"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGIONAL ROLLUP MODULE
// Three-level geographic rollup: center, (region, country), country. Regions
// group on the composite key so that two "North" regions in different
// countries never merge. Distinct participants are deduplicated per group,
// not summed from center counts.
// ══════════════════════════════════════════════════════════════════════════════

// RegionalRollups is the output of the regional rollup module.
type RegionalRollups struct {
	// Centers has one entry per center, including centers with blank
	// region or country.
	Centers []CenterRollup `json:"centers"`

	// Regions groups centers by (region, country). Centers with a blank
	// region or country are excluded from this level only.
	Regions []RegionRollup `json:"regions"`

	// Countries groups centers by country. Centers with a blank country
	// are excluded from this level only.
	Countries []CountryRollup `json:"countries"`
}

// CenterRollup aggregates one training center.
type CenterRollup struct {
	CenterID string `json:"center_id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Country  string `json:"country"`

	// DistinctParticipants counts unique participants reachable via the
	// center's cohorts and their enrollments.
	DistinctParticipants int `json:"distinct_participants"`

	TotalEnrollments int `json:"total_enrollments"`
	ActiveCohorts    int `json:"active_cohorts"`
}

// RegionRollup aggregates all centers sharing (region, country).
type RegionRollup struct {
	Region  string `json:"region"`
	Country string `json:"country"`

	DistinctParticipants int `json:"distinct_participants"`
	TotalEnrollments     int `json:"total_enrollments"`
	ActiveCohorts        int `json:"active_cohorts"`
	Centers              int `json:"centers"`
	Partners             int `json:"partners"`
}

// CountryRollup aggregates all centers in one country.
type CountryRollup struct {
	Country string `json:"country"`

	DistinctParticipants int `json:"distinct_participants"`
	TotalEnrollments     int `json:"total_enrollments"`
	ActiveCohorts        int `json:"active_cohorts"`
	Centers              int `json:"centers"`
	Partners             int `json:"partners"`
	Regions              int `json:"regions"`
}

// centerFacts is the per-center working set shared by all three levels.
type centerFacts struct {
	center       *program.Center
	participants map[string]struct{}
	enrollments  int
	activeCohort int
}

// ComputeRegionalRollups builds the three-level geographic rollup.
// Empty input yields empty slices, never an error.
func ComputeRegionalRollups(snap *Snapshot) RegionalRollups {
	facts := collectCenterFacts(snap)

	out := RegionalRollups{
		Centers:   centerLevel(facts),
		Regions:   regionLevel(facts),
		Countries: countryLevel(facts),
	}
	return out
}

// collectCenterFacts walks cohort -> enrollment -> participant once per
// center and records the raw sets every level aggregates from.
func collectCenterFacts(snap *Snapshot) []*centerFacts {
	cohortsByCenter := snap.CohortsByCenter()
	enrollmentsByCohort := snap.EnrollmentsByCohort()
	participants := snap.ParticipantsByID()

	facts := make([]*centerFacts, 0, len(snap.Centers))
	for _, c := range snap.Centers {
		f := &centerFacts{center: c, participants: make(map[string]struct{})}
		for _, cohort := range cohortsByCenter[c.ID] {
			if cohort.Status == program.CohortStatusActive {
				f.activeCohort++
			}
			for _, e := range enrollmentsByCohort[cohort.ID] {
				f.enrollments++
				if _, ok := participants[e.ParticipantID]; ok {
					f.participants[e.ParticipantID] = struct{}{}
				}
			}
		}
		facts = append(facts, f)
	}
	return facts
}

func centerLevel(facts []*centerFacts) []CenterRollup {
	out := make([]CenterRollup, 0, len(facts))
	for _, f := range facts {
		out = append(out, CenterRollup{
			CenterID:             f.center.ID,
			Name:                 f.center.Name,
			Region:               f.center.Region,
			Country:              f.center.Country,
			DistinctParticipants: len(f.participants),
			TotalEnrollments:     f.enrollments,
			ActiveCohorts:        f.activeCohort,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistinctParticipants != out[j].DistinctParticipants {
			return out[i].DistinctParticipants > out[j].DistinctParticipants
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// regionKey is the composite grouping key preventing same-named regions in
// different countries from merging.
type regionKey struct {
	region  string
	country string
}

func regionLevel(facts []*centerFacts) []RegionRollup {
	type group struct {
		rollup       RegionRollup
		participants map[string]struct{}
		partners     map[string]struct{}
	}

	groups := make(map[regionKey]*group)
	for _, f := range facts {
		region := strings.TrimSpace(f.center.Region)
		country := strings.TrimSpace(f.center.Country)
		if region == "" || country == "" {
			continue
		}

		key := regionKey{region: region, country: country}
		g, ok := groups[key]
		if !ok {
			g = &group{
				rollup:       RegionRollup{Region: region, Country: country},
				participants: make(map[string]struct{}),
				partners:     make(map[string]struct{}),
			}
			groups[key] = g
		}

		g.rollup.Centers++
		g.rollup.TotalEnrollments += f.enrollments
		g.rollup.ActiveCohorts += f.activeCohort
		g.partners[f.center.PartnerID] = struct{}{}
		for id := range f.participants {
			g.participants[id] = struct{}{}
		}
	}

	out := make([]RegionRollup, 0, len(groups))
	for _, g := range groups {
		g.rollup.DistinctParticipants = len(g.participants)
		g.rollup.Partners = len(g.partners)
		out = append(out, g.rollup)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistinctParticipants != out[j].DistinctParticipants {
			return out[i].DistinctParticipants > out[j].DistinctParticipants
		}
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Region < out[j].Region
	})
	return out
}

func countryLevel(facts []*centerFacts) []CountryRollup {
	type group struct {
		rollup       CountryRollup
		participants map[string]struct{}
		partners     map[string]struct{}
		regions      map[string]struct{}
	}

	groups := make(map[string]*group)
	for _, f := range facts {
		country := strings.TrimSpace(f.center.Country)
		if country == "" {
			continue
		}

		g, ok := groups[country]
		if !ok {
			g = &group{
				rollup:       CountryRollup{Country: country},
				participants: make(map[string]struct{}),
				partners:     make(map[string]struct{}),
				regions:      make(map[string]struct{}),
			}
			groups[country] = g
		}

		g.rollup.Centers++
		g.rollup.TotalEnrollments += f.enrollments
		g.rollup.ActiveCohorts += f.activeCohort
		g.partners[f.center.PartnerID] = struct{}{}
		if region := strings.TrimSpace(f.center.Region); region != "" {
			g.regions[region] = struct{}{}
		}
		for id := range f.participants {
			g.participants[id] = struct{}{}
		}
	}

	out := make([]CountryRollup, 0, len(groups))
	for _, g := range groups {
		g.rollup.DistinctParticipants = len(g.participants)
		g.rollup.Partners = len(g.partners)
		g.rollup.Regions = len(g.regions)
		out = append(out, g.rollup)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistinctParticipants != out[j].DistinctParticipants {
			return out[i].DistinctParticipants > out[j].DistinctParticipants
		}
		return out[i].Country < out[j].Country
	})
	return out
}
