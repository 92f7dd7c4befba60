// Package analytics implements the portfolio analytics aggregation engine.
// Seven independent, pure computation units turn whole-collection snapshots
// into cross-tenant KPIs, time-series trends, categorical breakdowns and
// sentiment summaries. Modules never mutate their input, never perform I/O,
// and never call each other; the same snapshot always produces the same
// output.
package analytics

import (
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// Snapshot is an in-memory materialization of every collection the engine
// consumes. It is assembled once per aggregation call from the record store;
// entity-graph traversal happens through explicit id-keyed indexes built from
// these flat slices, never through live persistence references.
type Snapshot struct {
	Partners           []*program.Partner
	Centers            []*program.Center
	Programs           []*program.Program
	Cohorts            []*program.Cohort
	Participants       []*program.Participant
	Enrollments        []*program.Enrollment
	Internships        []*program.Internship
	EmploymentOutcomes []*program.EmploymentOutcome

	Surveys         []*survey.Survey
	SurveyQuestions []*survey.Question
	SurveyResponses []*survey.Response
	SurveyAnswers   []*survey.Answer
}

// ══════════════════════════════════════════════════════════════════════════════
// ID-KEYED INDEXES
// Cheap map builds over the flat collections. Each module builds only the
// indexes it needs, once per call.
// ══════════════════════════════════════════════════════════════════════════════

// PartnersByID indexes partners by id.
func (s *Snapshot) PartnersByID() map[string]*program.Partner {
	m := make(map[string]*program.Partner, len(s.Partners))
	for _, p := range s.Partners {
		m[p.ID] = p
	}
	return m
}

// CentersByID indexes centers by id.
func (s *Snapshot) CentersByID() map[string]*program.Center {
	m := make(map[string]*program.Center, len(s.Centers))
	for _, c := range s.Centers {
		m[c.ID] = c
	}
	return m
}

// ProgramsByID indexes programs by id.
func (s *Snapshot) ProgramsByID() map[string]*program.Program {
	m := make(map[string]*program.Program, len(s.Programs))
	for _, p := range s.Programs {
		m[p.ID] = p
	}
	return m
}

// CohortsByID indexes cohorts by id.
func (s *Snapshot) CohortsByID() map[string]*program.Cohort {
	m := make(map[string]*program.Cohort, len(s.Cohorts))
	for _, c := range s.Cohorts {
		m[c.ID] = c
	}
	return m
}

// ParticipantsByID indexes participants by id.
func (s *Snapshot) ParticipantsByID() map[string]*program.Participant {
	m := make(map[string]*program.Participant, len(s.Participants))
	for _, p := range s.Participants {
		m[p.ID] = p
	}
	return m
}

// EnrollmentsByID indexes enrollments by id.
func (s *Snapshot) EnrollmentsByID() map[string]*program.Enrollment {
	m := make(map[string]*program.Enrollment, len(s.Enrollments))
	for _, e := range s.Enrollments {
		m[e.ID] = e
	}
	return m
}

// EnrollmentsByCohort groups enrollments by cohort id.
func (s *Snapshot) EnrollmentsByCohort() map[string][]*program.Enrollment {
	m := make(map[string][]*program.Enrollment)
	for _, e := range s.Enrollments {
		m[e.CohortID] = append(m[e.CohortID], e)
	}
	return m
}

// CohortsByCenter groups cohorts by center id.
func (s *Snapshot) CohortsByCenter() map[string][]*program.Cohort {
	m := make(map[string][]*program.Cohort)
	for _, c := range s.Cohorts {
		m[c.CenterID] = append(m[c.CenterID], c)
	}
	return m
}

// OutcomesByEnrollment groups employment outcomes by enrollment id.
func (s *Snapshot) OutcomesByEnrollment() map[string][]*program.EmploymentOutcome {
	m := make(map[string][]*program.EmploymentOutcome)
	for _, o := range s.EmploymentOutcomes {
		m[o.EnrollmentID] = append(m[o.EnrollmentID], o)
	}
	return m
}

// SurveysByID indexes surveys by id.
func (s *Snapshot) SurveysByID() map[string]*survey.Survey {
	m := make(map[string]*survey.Survey, len(s.Surveys))
	for _, sv := range s.Surveys {
		m[sv.ID] = sv
	}
	return m
}

// QuestionsByID indexes survey questions by id.
func (s *Snapshot) QuestionsByID() map[string]*survey.Question {
	m := make(map[string]*survey.Question, len(s.SurveyQuestions))
	for _, q := range s.SurveyQuestions {
		m[q.ID] = q
	}
	return m
}

// ResponsesBySurvey groups response rows by survey id.
func (s *Snapshot) ResponsesBySurvey() map[string][]*survey.Response {
	m := make(map[string][]*survey.Response)
	for _, r := range s.SurveyResponses {
		m[r.SurveyID] = append(m[r.SurveyID], r)
	}
	return m
}

// AnswersByResponse groups answers by response id.
func (s *Snapshot) AnswersByResponse() map[string][]*survey.Answer {
	m := make(map[string][]*survey.Answer)
	for _, a := range s.SurveyAnswers {
		m[a.ResponseID] = append(m[a.ResponseID], a)
	}
	return m
}
