package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// fakeStore serves a fixed snapshot through both record store interfaces.
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

type fakeAuditReader struct {
	entries []*audit.Entry
	err     error
}

func (f *fakeAuditReader) Recent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	return f.entries, f.err
}

type fakeAlertReader struct {
	alerts []*alert.Alert
	err    error
}

func (f *fakeAlertReader) Recent(ctx context.Context, limit int) ([]*alert.Alert, error) {
	return f.alerts, f.err
}

type fakeCache struct {
	stored *Summary
	gets   int
	sets   int
}

func (f *fakeCache) Get(ctx context.Context) (*Summary, error) {
	f.gets++
	if f.stored == nil {
		return nil, errors.New("cache miss")
	}
	return f.stored, nil
}

func (f *fakeCache) Set(ctx context.Context, s *Summary) error {
	f.sets++
	f.stored = s
	return nil
}

func newComposer(store *fakeStore, audits audit.Reader, alerts alert.Reader, cache SummaryCache) *Composer {
	return NewComposer(analytics.NewLoader(store, store), audits, alerts, cache, nil)
}

func TestComposer_EmptyPortfolio(t *testing.T) {
	c := newComposer(&fakeStore{}, nil, nil, nil)

	summary, err := c.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalParticipants)
	assert.Equal(t, 0, summary.ActiveCohorts)
	assert.Equal(t, 0, summary.Enrollment.TotalEnrollments)
	assert.Equal(t, 0.0, summary.Completion.CompletionRate)
	assert.Empty(t, summary.RecentActivity)
	assert.Empty(t, summary.RecentAlerts)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestComposer_CountsAndModules(t *testing.T) {
	store := &fakeStore{snap: analytics.Snapshot{
		Partners: []*program.Partner{{ID: "pa1", Name: "Hope"}, {ID: "pa2", Name: "Bridge"}},
		Centers:  []*program.Center{{ID: "ce1", PartnerID: "pa1", Name: "Main"}},
		Cohorts: []*program.Cohort{
			{ID: "c1", CenterID: "ce1", Status: program.CohortStatusActive},
			{ID: "c2", CenterID: "ce1", Status: program.CohortStatusCompleted},
			{ID: "c3", CenterID: "ce1", Status: program.CohortStatusActive},
		},
		Participants: []*program.Participant{
			{ID: "p1", PartnerID: "pa1"}, {ID: "p2", PartnerID: "pa1"},
		},
		Enrollments: []*program.Enrollment{
			{ID: "e1", ParticipantID: "p1", CohortID: "c1", Status: program.EnrollmentStatusCompleted,
				EnrolledAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "e2", ParticipantID: "p2", CohortID: "c1", Status: program.EnrollmentStatusActive,
				EnrolledAt: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}

	c := newComposer(store, nil, nil, nil)
	summary, err := c.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalParticipants)
	assert.Equal(t, 2, summary.TotalPartners)
	assert.Equal(t, 1, summary.TotalCenters)
	assert.Equal(t, 2, summary.ActiveCohorts)
	assert.Equal(t, 2, summary.Enrollment.TotalEnrollments)
	assert.Equal(t, 50.0, summary.Completion.CompletionRate)
}

func TestComposer_FeedsAttached(t *testing.T) {
	now := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	audits := &fakeAuditReader{entries: []*audit.Entry{
		{ID: "a1", Actor: "kpi_anomaly_check", Action: audit.ActionAnomalyDetected, Detail: "dropout above limit", CreatedAt: now},
	}}
	alerts := &fakeAlertReader{alerts: []*alert.Alert{
		{ID: "al1", Type: alert.TypeDropoutRate, Severity: alert.SeverityWarning, Message: "dropout 18%", Observed: 18, Threshold: 15, CreatedAt: now},
	}}

	c := newComposer(&fakeStore{}, audits, alerts, nil)
	summary, err := c.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.RecentActivity, 1)
	assert.Equal(t, "ANOMALY_DETECTED", summary.RecentActivity[0].Action)
	require.Len(t, summary.RecentAlerts, 1)
	assert.Equal(t, "dropout_rate", summary.RecentAlerts[0].Type)
	assert.Equal(t, 18.0, summary.RecentAlerts[0].Observed)
}

// A broken feed store degrades to an empty feed; the dashboard itself still
// renders.
func TestComposer_FeedFailureDegrades(t *testing.T) {
	audits := &fakeAuditReader{err: errors.New("audit store down")}
	alerts := &fakeAlertReader{err: errors.New("alert store down")}

	c := newComposer(&fakeStore{}, audits, alerts, nil)
	summary, err := c.Handle(context.Background())
	require.NoError(t, err)

	assert.Empty(t, summary.RecentActivity)
	assert.Empty(t, summary.RecentAlerts)
}

func TestComposer_SnapshotLoadFailureAborts(t *testing.T) {
	c := newComposer(&fakeStore{err: errors.New("connection refused")}, nil, nil, nil)

	_, err := c.Handle(context.Background())
	assert.Error(t, err)
}

func TestComposer_CacheHitSkipsRecompute(t *testing.T) {
	cache := &fakeCache{}
	store := &fakeStore{}
	c := newComposer(store, nil, nil, cache)

	first, err := c.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Breaking the store proves the second request never reloads.
	store.err = errors.New("connection refused")

	second, err := c.Handle(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
}
