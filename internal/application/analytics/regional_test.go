package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

func TestComputeRegionalRollups_EmptyInput(t *testing.T) {
	rollups := ComputeRegionalRollups(&Snapshot{})

	assert.Empty(t, rollups.Centers)
	assert.Empty(t, rollups.Regions)
	assert.Empty(t, rollups.Countries)
}

// Two centers with the same region name in different countries must stay
// separate: the region key is (region, country), not the bare name.
func TestComputeRegionalRollups_SameRegionNameDifferentCountries(t *testing.T) {
	snap := &Snapshot{
		Centers: []*program.Center{
			center("ce1", "pa1", "Nairobi North", "North", "Kenya"),
			center("ce2", "pa2", "Kampala North", "North", "Uganda"),
		},
		Cohorts: []*program.Cohort{
			cohort("c1", "ce1", "pr1", program.CohortStatusActive),
			cohort("c2", "ce2", "pr1", program.CohortStatusActive),
		},
		Participants: []*program.Participant{participant("p1", "pa1"), participant("p2", "pa2")},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e2", "p2", "c2", program.EnrollmentStatusActive, date(2025, time.March, 1)),
		},
	}

	rollups := ComputeRegionalRollups(snap)
	require.Len(t, rollups.Regions, 2)
	countries := []string{rollups.Regions[0].Country, rollups.Regions[1].Country}
	assert.ElementsMatch(t, []string{"Kenya", "Uganda"}, countries)
	for _, r := range rollups.Regions {
		assert.Equal(t, "North", r.Region)
		assert.Equal(t, 1, r.DistinctParticipants)
	}
}

// When two centers in one region enroll the same participant, the region
// count deduplicates: it is not the sum of the center counts.
func TestComputeRegionalRollups_DistinctParticipantsDeduplicated(t *testing.T) {
	shared := participant("p1", "pa1")
	snap := &Snapshot{
		Centers: []*program.Center{
			center("ce1", "pa1", "Center One", "Coast", "Kenya"),
			center("ce2", "pa1", "Center Two", "Coast", "Kenya"),
		},
		Cohorts: []*program.Cohort{
			cohort("c1", "ce1", "pr1", program.CohortStatusActive),
			cohort("c2", "ce2", "pr1", program.CohortStatusCompleted),
		},
		Participants: []*program.Participant{shared, participant("p2", "pa1")},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusCompleted, date(2025, time.January, 1)),
			enrollment("e2", "p1", "c2", program.EnrollmentStatusActive, date(2025, time.February, 1)),
			enrollment("e3", "p2", "c2", program.EnrollmentStatusActive, date(2025, time.February, 1)),
		},
	}

	rollups := ComputeRegionalRollups(snap)

	require.Len(t, rollups.Centers, 2)
	centerSum := rollups.Centers[0].DistinctParticipants + rollups.Centers[1].DistinctParticipants
	assert.Equal(t, 3, centerSum, "p1 counts at both centers")

	require.Len(t, rollups.Regions, 1)
	region := rollups.Regions[0]
	assert.Equal(t, 2, region.DistinctParticipants, "p1 deduplicates at region level")
	assert.Equal(t, 3, region.TotalEnrollments)
	assert.Equal(t, 1, region.ActiveCohorts)
	assert.Equal(t, 2, region.Centers)
	assert.Equal(t, 1, region.Partners)

	require.Len(t, rollups.Countries, 1)
	assert.Equal(t, 2, rollups.Countries[0].DistinctParticipants)
	assert.Equal(t, 1, rollups.Countries[0].Regions)
}

// Centers with blank geography stay in the center-level output but drop out
// of the rollup levels that need the missing value.
func TestComputeRegionalRollups_BlankGeographyExcludedPerLevel(t *testing.T) {
	snap := &Snapshot{
		Centers: []*program.Center{
			center("ce1", "pa1", "Mapped", "Rift Valley", "Kenya"),
			center("ce2", "pa1", "No Region", "", "Kenya"),
			center("ce3", "pa1", "No Country", "Somewhere", ""),
		},
	}

	rollups := ComputeRegionalRollups(snap)

	assert.Len(t, rollups.Centers, 3)
	require.Len(t, rollups.Regions, 1)
	assert.Equal(t, "Rift Valley", rollups.Regions[0].Region)

	// Country level keeps the center that only lacks a region.
	require.Len(t, rollups.Countries, 1)
	assert.Equal(t, "Kenya", rollups.Countries[0].Country)
	assert.Equal(t, 2, rollups.Countries[0].Centers)
}

func TestComputeRegionalRollups_SortedByDistinctParticipants(t *testing.T) {
	snap := &Snapshot{
		Centers: []*program.Center{
			center("ce1", "pa1", "Small", "West", "Kenya"),
			center("ce2", "pa1", "Big", "East", "Kenya"),
		},
		Cohorts: []*program.Cohort{
			cohort("c1", "ce1", "pr1", program.CohortStatusActive),
			cohort("c2", "ce2", "pr1", program.CohortStatusActive),
		},
		Participants: []*program.Participant{
			participant("p1", "pa1"), participant("p2", "pa1"), participant("p3", "pa1"),
		},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e2", "p2", "c2", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e3", "p3", "c2", program.EnrollmentStatusActive, date(2025, time.March, 1)),
		},
	}

	rollups := ComputeRegionalRollups(snap)
	require.Len(t, rollups.Centers, 2)
	assert.Equal(t, "Big", rollups.Centers[0].Name)
	require.Len(t, rollups.Regions, 2)
	assert.Equal(t, "East", rollups.Regions[0].Region)
}
