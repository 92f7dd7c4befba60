package analytics

import (
	"context"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/shared"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT LOADER
// Materializes the full Snapshot from the record store. One load per
// aggregation request; every caller of the engine goes through here.
// ══════════════════════════════════════════════════════════════════════════════

// Loader assembles snapshots from the two domain record stores.
type Loader struct {
	programs program.SnapshotRepository
	surveys  survey.SnapshotRepository
}

// NewLoader creates a snapshot loader over the given record stores.
func NewLoader(programs program.SnapshotRepository, surveys survey.SnapshotRepository) *Loader {
	return &Loader{programs: programs, surveys: surveys}
}

// Load reads every collection and returns the assembled snapshot. A failure
// on any collection aborts the load; the engine never computes over a
// partially materialized snapshot.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error

	if snap.Partners, err = l.programs.AllPartners(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading partners", err)
	}
	if snap.Centers, err = l.programs.AllCenters(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading centers", err)
	}
	if snap.Programs, err = l.programs.AllPrograms(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading programs", err)
	}
	if snap.Cohorts, err = l.programs.AllCohorts(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading cohorts", err)
	}
	if snap.Participants, err = l.programs.AllParticipants(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading participants", err)
	}
	if snap.Enrollments, err = l.programs.AllEnrollments(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading enrollments", err)
	}
	if snap.Internships, err = l.programs.AllInternships(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading internships", err)
	}
	if snap.EmploymentOutcomes, err = l.programs.AllEmploymentOutcomes(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading employment outcomes", err)
	}

	if snap.Surveys, err = l.surveys.AllSurveys(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading surveys", err)
	}
	if snap.SurveyQuestions, err = l.surveys.AllQuestions(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading survey questions", err)
	}
	if snap.SurveyResponses, err = l.surveys.AllResponses(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading survey responses", err)
	}
	if snap.SurveyAnswers, err = l.surveys.AllAnswers(ctx); err != nil {
		return nil, shared.WrapError("analytics", "Load", shared.ErrExternalService, "loading survey answers", err)
	}

	return snap, nil
}
