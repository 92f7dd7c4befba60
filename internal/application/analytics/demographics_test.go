package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

func TestComputeDemographics_EmptyInput(t *testing.T) {
	demo := ComputeDemographics(&Snapshot{})

	assert.Equal(t, 0, demo.TotalParticipants)
	assert.Empty(t, demo.ByGender)
	assert.Empty(t, demo.ByDisability)
	assert.Empty(t, demo.ByEducation)
}

func TestComputeDemographics_UndisclosedValuesExcluded(t *testing.T) {
	snap := &Snapshot{
		Participants: []*program.Participant{
			{ID: "p1", Gender: "FEMALE", DisabilityStatus: "NONE", EducationLevel: "Secondary"},
			{ID: "p2", Gender: "FEMALE", DisabilityStatus: "NONE", EducationLevel: "  "},
			{ID: "p3", Gender: "MALE", EducationLevel: "Secondary"},
			{ID: "p4"}, // nothing disclosed
		},
	}

	demo := ComputeDemographics(snap)
	assert.Equal(t, 4, demo.TotalParticipants)

	require.Len(t, demo.ByGender, 2)
	assert.Equal(t, "FEMALE", demo.ByGender[0].Key)
	assert.Equal(t, 2, demo.ByGender[0].Count)
	// Percentage is of all 4 participants, not of the 3 who disclosed:
	// the disclosed shares may sum below 100 and that is intentional.
	assert.Equal(t, 50.0, demo.ByGender[0].Percentage)
	assert.Equal(t, 25.0, demo.ByGender[1].Percentage)

	require.Len(t, demo.ByDisability, 1)
	assert.Equal(t, 50.0, demo.ByDisability[0].Percentage)

	// Whitespace-only education is treated as undisclosed.
	require.Len(t, demo.ByEducation, 1)
	assert.Equal(t, "Secondary", demo.ByEducation[0].Key)
	assert.Equal(t, 2, demo.ByEducation[0].Count)
}

func TestComputeDemographics_BreakdownSorted(t *testing.T) {
	snap := &Snapshot{
		Participants: []*program.Participant{
			{ID: "p1", Gender: "MALE"},
			{ID: "p2", Gender: "FEMALE"},
			{ID: "p3", Gender: "FEMALE"},
			{ID: "p4", Gender: "FEMALE"},
			{ID: "p5", Gender: "MALE"},
		},
	}

	demo := ComputeDemographics(snap)
	require.Len(t, demo.ByGender, 2)
	assert.Equal(t, "FEMALE", demo.ByGender[0].Key)
	assert.Equal(t, 3, demo.ByGender[0].Count)
	assert.Equal(t, 60.0, demo.ByGender[0].Percentage)
}
