package jobs

import (
	"context"
	"fmt"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/report"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// Shared in-memory fakes for the job tests.

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

func (f *fakeStore) loader() *analytics.Loader {
	return analytics.NewLoader(f, f)
}

type fakeNotifier struct {
	alerts []*alert.Alert
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, a *alert.Alert) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeNotifier) byType(t alert.Type) *alert.Alert {
	for _, a := range f.alerts {
		if a.Type == t {
			return a
		}
	}
	return nil
}

type fakeRecorder struct {
	entries []*audit.Entry
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, entry *audit.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRecorder) byAction(action audit.Action) []*audit.Entry {
	var out []*audit.Entry
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// fakeDeduper emits each key once, mirroring SET NX semantics.
type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{seen: make(map[string]bool)}
}

func (f *fakeDeduper) ShouldEmit(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fakeExporter struct {
	reports []*report.PortfolioReport
	err     error
}

func (f *fakeExporter) Export(ctx context.Context, r *report.PortfolioReport) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, r)
	return nil
}
