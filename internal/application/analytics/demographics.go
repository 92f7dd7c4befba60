package analytics

import "strings"

// ══════════════════════════════════════════════════════════════════════════════
// DEMOGRAPHICS MODULE
// Participant composition by gender, disability status and education level.
// Undisclosed values are excluded from the affected breakdown rather than
// bucketed, so breakdown percentages may legitimately sum to less than 100
// of the total participant count. That is disclosed behavior, not a bug.
// ══════════════════════════════════════════════════════════════════════════════

// Demographics is the output of the demographics module.
type Demographics struct {
	// TotalParticipants is the denominator for every breakdown percentage.
	TotalParticipants int `json:"total_participants"`

	ByGender     []BreakdownEntry `json:"by_gender"`
	ByDisability []BreakdownEntry `json:"by_disability"`
	ByEducation  []BreakdownEntry `json:"by_education"`
}

// ComputeDemographics aggregates participant attributes. Empty input yields
// a zero total and empty breakdowns, never an error.
func ComputeDemographics(snap *Snapshot) Demographics {
	total := len(snap.Participants)

	genders := make(map[string]int)
	disabilities := make(map[string]int)
	educations := make(map[string]int)

	for _, p := range snap.Participants {
		if p.Gender != "" {
			genders[p.Gender]++
		}
		if p.DisabilityStatus != "" {
			disabilities[p.DisabilityStatus]++
		}
		// Education is free text: blank after trimming counts as
		// undisclosed.
		if edu := strings.TrimSpace(p.EducationLevel); edu != "" {
			educations[edu]++
		}
	}

	return Demographics{
		TotalParticipants: total,
		ByGender:          categoricalBreakdown(genders, total),
		ByDisability:      categoricalBreakdown(disabilities, total),
		ByEducation:       categoricalBreakdown(educations, total),
	}
}

// categoricalBreakdown converts value counts into sorted entries whose
// percentages are shares of the full participant count, not of the disclosed
// subset.
func categoricalBreakdown(counts map[string]int, total int) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, BreakdownEntry{
			Key:        value,
			Label:      value,
			Count:      count,
			Percentage: Percentage(count, total),
		})
	}
	sortBreakdown(entries)
	return entries
}
