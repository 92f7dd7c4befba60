package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

func TestComputeCompletionStats_EmptyInput(t *testing.T) {
	stats := ComputeCompletionStats(&Snapshot{})

	assert.Equal(t, 0, stats.TotalEnrollments)
	assert.Equal(t, 0.0, stats.CompletionRate)
	assert.Equal(t, 0.0, stats.DropoutRate)
	assert.Empty(t, stats.DropoutReasons)
}

// Ten enrollments: 3 completed, 2 dropped out (one without a reason), 5
// active. Rates and the reason histogram must come out exactly.
func TestComputeCompletionStats_MixedStatuses(t *testing.T) {
	enrolled := date(2025, time.January, 1)
	enrollments := make([]*program.Enrollment, 0, 10)
	for i := 0; i < 3; i++ {
		e := enrollment(string(rune('a'+i)), "p", "c", program.EnrollmentStatusCompleted, enrolled)
		e.CompletedAt = tp(date(2025, time.June, 1))
		enrollments = append(enrollments, e)
	}
	dropNoReason := enrollment("d1", "p", "c", program.EnrollmentStatusDroppedOut, enrolled)
	dropNoReason.DroppedOutAt = tp(date(2025, time.April, 1))
	dropRelocated := enrollment("d2", "p", "c", program.EnrollmentStatusDroppedOut, enrolled)
	dropRelocated.DroppedOutAt = tp(date(2025, time.May, 1))
	dropRelocated.DropoutReason = "Relocated"
	enrollments = append(enrollments, dropNoReason, dropRelocated)
	for i := 0; i < 5; i++ {
		enrollments = append(enrollments, enrollment(string(rune('k'+i)), "p", "c", program.EnrollmentStatusActive, enrolled))
	}

	stats := ComputeCompletionStats(&Snapshot{Enrollments: enrollments})

	assert.Equal(t, 10, stats.TotalEnrollments)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 2, stats.DroppedOut)
	assert.Equal(t, 5, stats.Active)
	assert.Equal(t, 30.0, stats.CompletionRate)
	assert.Equal(t, 20.0, stats.DropoutRate)
	assert.Equal(t, 50.0, stats.ActiveRate)

	require.Len(t, stats.DropoutReasons, 2)
	// Equal counts tie-break alphabetically.
	assert.Equal(t, NotSpecifiedReason, stats.DropoutReasons[0].Reason)
	assert.Equal(t, 1, stats.DropoutReasons[0].Count)
	assert.Equal(t, 50.0, stats.DropoutReasons[0].Percentage)
	assert.Equal(t, "Relocated", stats.DropoutReasons[1].Reason)
	assert.Equal(t, 50.0, stats.DropoutReasons[1].Percentage)
}

func TestComputeCompletionStats_ActiveCountsEnrolledToo(t *testing.T) {
	snap := &Snapshot{
		Enrollments: []*program.Enrollment{
			enrollment("e1", "p", "c", program.EnrollmentStatusEnrolled, date(2025, time.March, 1)),
			enrollment("e2", "p", "c", program.EnrollmentStatusActive, date(2025, time.March, 1)),
			enrollment("e3", "p", "c", program.EnrollmentStatusWithdrawn, date(2025, time.March, 1)),
		},
	}

	stats := ComputeCompletionStats(snap)
	assert.Equal(t, 2, stats.Active)

	// WITHDRAWN is counted in the total but in none of the three rates,
	// so the rates may sum below 100.
	sum := stats.CompletionRate + stats.DropoutRate + stats.ActiveRate
	assert.LessOrEqual(t, sum, 100.0)
}

func TestComputeCompletionStats_HistogramSumsToDroppedOut(t *testing.T) {
	reasons := []string{"", "  ", "Relocated", "Family", "Relocated", "Found work"}
	enrollments := make([]*program.Enrollment, 0, len(reasons))
	for i, r := range reasons {
		e := enrollment(string(rune('a'+i)), "p", "c", program.EnrollmentStatusDroppedOut, date(2025, time.January, 1))
		e.DropoutReason = r
		enrollments = append(enrollments, e)
	}

	stats := ComputeCompletionStats(&Snapshot{Enrollments: enrollments})
	assert.Equal(t, 6, stats.DroppedOut)

	var sum int
	for _, b := range stats.DropoutReasons {
		assert.NotEmpty(t, b.Reason, "grouping keys are never empty")
		sum += b.Count
	}
	assert.Equal(t, stats.DroppedOut, sum)

	// Blank and whitespace-only reasons merge into one bucket.
	var notSpecified int
	for _, b := range stats.DropoutReasons {
		if b.Reason == NotSpecifiedReason {
			notSpecified = b.Count
		}
	}
	assert.Equal(t, 2, notSpecified)
}
