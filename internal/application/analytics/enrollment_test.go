package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

func TestComputeEnrollmentKPIs_EmptyInput(t *testing.T) {
	kpis := ComputeEnrollmentKPIs(&Snapshot{})

	assert.Equal(t, 0, kpis.TotalEnrollments)
	assert.Empty(t, kpis.MonthlyGrowth)
	assert.Empty(t, kpis.ByPartner)
	assert.Empty(t, kpis.ByProgram)
}

func TestComputeEnrollmentKPIs_MonthlyGrowth(t *testing.T) {
	snap := &Snapshot{
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.January, 10)),
			enrollment("e2", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.January, 20)),
			enrollment("e3", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.February, 5)),
			enrollment("e4", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.February, 6)),
			enrollment("e5", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.February, 7)),
			// March empty, then April resumes.
			enrollment("e6", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.April, 1)),
		},
	}

	kpis := ComputeEnrollmentKPIs(snap)
	require.Len(t, kpis.MonthlyGrowth, 4, "gap months appear as zero-count buckets")

	jan := kpis.MonthlyGrowth[0]
	assert.Equal(t, "2025-01", jan.Month)
	assert.Equal(t, 2, jan.Count)
	assert.Equal(t, 0.0, jan.GrowthPercent, "first bucket has no growth")

	feb := kpis.MonthlyGrowth[1]
	assert.Equal(t, "2025-02", feb.Month)
	assert.Equal(t, 3, feb.Count)
	assert.Equal(t, 50.0, feb.GrowthPercent)

	mar := kpis.MonthlyGrowth[2]
	assert.Equal(t, "2025-03", mar.Month)
	assert.Equal(t, 0, mar.Count)
	assert.Equal(t, -100.0, mar.GrowthPercent)

	apr := kpis.MonthlyGrowth[3]
	assert.Equal(t, "2025-04", apr.Month)
	assert.Equal(t, 1, apr.Count)
	assert.Equal(t, 100.0, apr.GrowthPercent, "resuming after an empty month reads exactly 100")
}

func TestComputeEnrollmentKPIs_GrowthAfterEmptyMonthIs100(t *testing.T) {
	snap := &Snapshot{
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.January, 5)),
			enrollment("e2", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.January, 9)),
			enrollment("e3", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 2)),
		},
	}

	kpis := ComputeEnrollmentKPIs(snap)
	require.Len(t, kpis.MonthlyGrowth, 3)

	feb := kpis.MonthlyGrowth[1]
	assert.Equal(t, "2025-02", feb.Month)
	assert.Equal(t, 0, feb.Count)
	assert.Equal(t, -100.0, feb.GrowthPercent)

	mar := kpis.MonthlyGrowth[2]
	assert.Equal(t, "2025-03", mar.Month)
	assert.Equal(t, 1, mar.Count)
	assert.Equal(t, 100.0, mar.GrowthPercent)
}

func TestComputeEnrollmentKPIs_GrowthFromZeroMonthIs100(t *testing.T) {
	assert.Equal(t, 100.0, GrowthPercent(0, 4))
}

func TestComputeEnrollmentKPIs_PartnerBreakdown(t *testing.T) {
	snap := &Snapshot{
		Partners: []*program.Partner{
			partner("pa1", "Hope Foundation"),
			partner("pa2", "Bright Futures"),
		},
		Participants: []*program.Participant{
			participant("p1", "pa1"),
			participant("p2", "pa1"),
			participant("p3", "pa2"),
			participant("p4", "pa-missing"), // partner not in snapshot
		},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e2", "p2", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e3", "p3", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e4", "p4", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e5", "p-unknown", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
		},
	}

	kpis := ComputeEnrollmentKPIs(snap)
	require.Len(t, kpis.ByPartner, 2, "unresolved participants and partners are dropped")

	assert.Equal(t, "Hope Foundation", kpis.ByPartner[0].Label)
	assert.Equal(t, 2, kpis.ByPartner[0].Count)
	// Percentages are of the full enrollment total, including dropped rows.
	assert.Equal(t, 40.0, kpis.ByPartner[0].Percentage)

	assert.Equal(t, "Bright Futures", kpis.ByPartner[1].Label)
	assert.Equal(t, 1, kpis.ByPartner[1].Count)
	assert.Equal(t, 20.0, kpis.ByPartner[1].Percentage)
}

func TestComputeEnrollmentKPIs_ProgramBreakdownSorted(t *testing.T) {
	snap := &Snapshot{
		Programs: []*program.Program{
			{ID: "pr1", PartnerID: "pa1", Name: "Tailoring"},
			{ID: "pr2", PartnerID: "pa1", Name: "Welding"},
		},
		Cohorts: []*program.Cohort{
			cohort("c1", "ce1", "pr1", program.CohortStatusActive),
			cohort("c2", "ce1", "pr2", program.CohortStatusActive),
		},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e2", "p2", "c2", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e3", "p3", "c2", program.EnrollmentStatusActive, date(2025, time.March, 1)),
		},
	}

	kpis := ComputeEnrollmentKPIs(snap)
	require.Len(t, kpis.ByProgram, 2)
	assert.Equal(t, "Welding", kpis.ByProgram[0].Label)
	assert.Equal(t, 2, kpis.ByProgram[0].Count)
	assert.Equal(t, "Tailoring", kpis.ByProgram[1].Label)
}

func TestComputeEnrollmentKPIs_RatesWithinBounds(t *testing.T) {
	snap := &Snapshot{
		Partners:     []*program.Partner{partner("pa1", "Solo")},
		Participants: []*program.Participant{participant("p1", "pa1")},
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p1", "c1", program.EnrollmentStatusActive, date(2025, time.March, 1)),
		},
	}

	kpis := ComputeEnrollmentKPIs(snap)
	for _, e := range kpis.ByPartner {
		assert.GreaterOrEqual(t, e.Percentage, 0.0)
		assert.LessOrEqual(t, e.Percentage, 100.0)
	}
	for _, p := range kpis.MonthlyGrowth {
		assert.False(t, p.Count < 0)
	}
}
