package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

type fakeStore struct {
	snap analytics.Snapshot
	err  error
}

func (f *fakeStore) AllPartners(ctx context.Context) ([]*program.Partner, error) {
	return f.snap.Partners, f.err
}
func (f *fakeStore) AllCenters(ctx context.Context) ([]*program.Center, error) {
	return f.snap.Centers, f.err
}
func (f *fakeStore) AllPrograms(ctx context.Context) ([]*program.Program, error) {
	return f.snap.Programs, f.err
}
func (f *fakeStore) AllCohorts(ctx context.Context) ([]*program.Cohort, error) {
	return f.snap.Cohorts, f.err
}
func (f *fakeStore) AllParticipants(ctx context.Context) ([]*program.Participant, error) {
	return f.snap.Participants, f.err
}
func (f *fakeStore) AllEnrollments(ctx context.Context) ([]*program.Enrollment, error) {
	return f.snap.Enrollments, f.err
}
func (f *fakeStore) AllInternships(ctx context.Context) ([]*program.Internship, error) {
	return f.snap.Internships, f.err
}
func (f *fakeStore) AllEmploymentOutcomes(ctx context.Context) ([]*program.EmploymentOutcome, error) {
	return f.snap.EmploymentOutcomes, f.err
}
func (f *fakeStore) AllSurveys(ctx context.Context) ([]*survey.Survey, error) {
	return f.snap.Surveys, f.err
}
func (f *fakeStore) AllQuestions(ctx context.Context) ([]*survey.Question, error) {
	return f.snap.SurveyQuestions, f.err
}
func (f *fakeStore) AllResponses(ctx context.Context) ([]*survey.Response, error) {
	return f.snap.SurveyResponses, f.err
}
func (f *fakeStore) AllAnswers(ctx context.Context) ([]*survey.Answer, error) {
	return f.snap.SurveyAnswers, f.err
}

func tp(t time.Time) *time.Time { return &t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newGenerator(store *fakeStore) *Generator {
	return NewGenerator(analytics.NewLoader(store, store))
}

func TestGenerate_EmptyPortfolio(t *testing.T) {
	g := newGenerator(&fakeStore{})
	period := timeutil.PreviousWeek(day(2025, time.August, 20))

	r, err := g.Generate(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, "weekly", r.PeriodLabel)
	assert.Equal(t, day(2025, time.August, 11), r.PeriodStart)
	assert.Equal(t, day(2025, time.August, 18), r.PeriodEnd)
	assert.Equal(t, PeriodDeltas{}, r.Deltas)
	assert.Equal(t, 0, r.Enrollment.TotalEnrollments)
	assert.Equal(t, 0, r.SurveyImpact.TotalSurveys)
}

func TestGenerate_PeriodDeltas(t *testing.T) {
	// Monthly window: July 2025.
	period := timeutil.PreviousMonth(day(2025, time.August, 1))
	require.Equal(t, day(2025, time.July, 1), period.Start)

	store := &fakeStore{snap: analytics.Snapshot{
		Enrollments: []*program.Enrollment{
			// Enrolled inside the window.
			{ID: "e1", Status: program.EnrollmentStatusActive, EnrolledAt: day(2025, time.July, 10)},
			// Enrolled before, completed inside.
			{ID: "e2", Status: program.EnrollmentStatusCompleted,
				EnrolledAt: day(2025, time.May, 1), CompletedAt: tp(day(2025, time.July, 20))},
			// Enrolled and dropped inside: counts in both buckets.
			{ID: "e3", Status: program.EnrollmentStatusDroppedOut,
				EnrolledAt: day(2025, time.July, 5), DroppedOutAt: tp(day(2025, time.July, 25))},
			// Entirely outside.
			{ID: "e4", Status: program.EnrollmentStatusCompleted,
				EnrolledAt: day(2025, time.April, 1), CompletedAt: tp(day(2025, time.June, 1))},
			// End is exclusive: August 1st does not count.
			{ID: "e5", Status: program.EnrollmentStatusActive, EnrolledAt: day(2025, time.August, 1)},
		},
		SurveyResponses: []*survey.Response{
			{ID: "r1", SurveyID: "s1", SubmittedAt: tp(day(2025, time.July, 15))},
			{ID: "r2", SurveyID: "s1", SubmittedAt: tp(day(2025, time.June, 15))},
			{ID: "r3", SurveyID: "s1"}, // pending
		},
	}}

	r, err := newGenerator(store).Generate(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Deltas.NewEnrollments)
	assert.Equal(t, 1, r.Deltas.Completions)
	assert.Equal(t, 1, r.Deltas.Dropouts)
	assert.Equal(t, 1, r.Deltas.SurveyResponses)
}

func TestGenerate_CarriesWholePortfolioAggregates(t *testing.T) {
	// Aggregates are portfolio-wide even when dated outside the window.
	period := timeutil.PreviousQuarter(day(2025, time.August, 1))
	require.Equal(t, "quarterly", period.Label)
	require.Equal(t, day(2025, time.April, 1), period.Start)

	store := &fakeStore{snap: analytics.Snapshot{
		Enrollments: []*program.Enrollment{
			{ID: "e1", Status: program.EnrollmentStatusCompleted, EnrolledAt: day(2024, time.January, 1)},
			{ID: "e2", Status: program.EnrollmentStatusDroppedOut, EnrolledAt: day(2024, time.January, 1)},
		},
	}}

	r, err := newGenerator(store).Generate(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Completion.TotalEnrollments)
	assert.Equal(t, 50.0, r.Completion.CompletionRate)
	assert.Equal(t, 0, r.Deltas.NewEnrollments)
}

func TestGenerate_LoadFailure(t *testing.T) {
	g := newGenerator(&fakeStore{err: errors.New("connection refused")})

	_, err := g.Generate(context.Background(), timeutil.PreviousWeek(day(2025, time.August, 20)))
	assert.Error(t, err)
}
