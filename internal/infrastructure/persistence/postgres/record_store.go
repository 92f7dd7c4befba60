package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD STORE
// Whole-collection reads for the analytics snapshot. The engine loads every
// table into memory and aggregates there, so each method is a single SELECT
// with no filtering.
// ══════════════════════════════════════════════════════════════════════════════

// RecordStore reads the program and survey collections the analytics snapshot
// is built from. It implements program.SnapshotRepository and
// survey.SnapshotRepository.
type RecordStore struct {
	conn *Connection
}

// NewRecordStore creates a record store over a connection pool.
func NewRecordStore(conn *Connection) *RecordStore {
	return &RecordStore{conn: conn}
}

// AllPartners returns every partner.
func (s *RecordStore) AllPartners(ctx context.Context) ([]*program.Partner, error) {
	query := `SELECT id, name, active FROM partners ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []*program.Partner
	for rows.Next() {
		p := &program.Partner{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}

	return partners, rows.Err()
}

// AllCenters returns every center.
func (s *RecordStore) AllCenters(ctx context.Context) ([]*program.Center, error) {
	query := `SELECT id, partner_id, name, location, region, country, active FROM centers ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query centers: %w", err)
	}
	defer rows.Close()

	var centers []*program.Center
	for rows.Next() {
		c := &program.Center{}
		if err := rows.Scan(&c.ID, &c.PartnerID, &c.Name, &c.Location, &c.Region, &c.Country, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan center: %w", err)
		}
		centers = append(centers, c)
	}

	return centers, rows.Err()
}

// AllPrograms returns every program.
func (s *RecordStore) AllPrograms(ctx context.Context) ([]*program.Program, error) {
	query := `SELECT id, partner_id, name, duration_weeks FROM programs ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var programs []*program.Program
	for rows.Next() {
		p := &program.Program{}
		if err := rows.Scan(&p.ID, &p.PartnerID, &p.Name, &p.DurationWeeks); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}

	return programs, rows.Err()
}

// AllCohorts returns every cohort.
func (s *RecordStore) AllCohorts(ctx context.Context) ([]*program.Cohort, error) {
	query := `
		SELECT id, center_id, program_id, name, start_date, end_date, status, target_enrollment
		FROM cohorts ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohorts: %w", err)
	}
	defer rows.Close()

	var cohorts []*program.Cohort
	for rows.Next() {
		c := &program.Cohort{}
		var startDate, endDate *time.Time
		if err := rows.Scan(&c.ID, &c.CenterID, &c.ProgramID, &c.Name,
			&startDate, &endDate, &c.Status, &c.TargetEnrollment); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		c.StartDate = timeOrZero(startDate)
		c.EndDate = timeOrZero(endDate)
		cohorts = append(cohorts, c)
	}

	return cohorts, rows.Err()
}

// AllParticipants returns every participant.
func (s *RecordStore) AllParticipants(ctx context.Context) ([]*program.Participant, error) {
	query := `
		SELECT id, partner_id, name, gender, disability_status, education_level
		FROM participants ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []*program.Participant
	for rows.Next() {
		p := &program.Participant{}
		if err := rows.Scan(&p.ID, &p.PartnerID, &p.Name,
			&p.Gender, &p.DisabilityStatus, &p.EducationLevel); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// AllEnrollments returns every enrollment.
func (s *RecordStore) AllEnrollments(ctx context.Context) ([]*program.Enrollment, error) {
	query := `
		SELECT id, participant_id, cohort_id, enrolled_at, status,
		       completed_at, dropped_out_at, dropout_reason
		FROM enrollments ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*program.Enrollment
	for rows.Next() {
		e := &program.Enrollment{}
		if err := rows.Scan(&e.ID, &e.ParticipantID, &e.CohortID, &e.EnrolledAt, &e.Status,
			&e.CompletedAt, &e.DroppedOutAt, &e.DropoutReason); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// AllInternships returns every internship.
func (s *RecordStore) AllInternships(ctx context.Context) ([]*program.Internship, error) {
	query := `SELECT id, enrollment_id, organization, status FROM internships ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query internships: %w", err)
	}
	defer rows.Close()

	var internships []*program.Internship
	for rows.Next() {
		i := &program.Internship{}
		if err := rows.Scan(&i.ID, &i.EnrollmentID, &i.Organization, &i.Status); err != nil {
			return nil, fmt.Errorf("failed to scan internship: %w", err)
		}
		internships = append(internships, i)
	}

	return internships, rows.Err()
}

// AllEmploymentOutcomes returns every employment outcome.
func (s *RecordStore) AllEmploymentOutcomes(ctx context.Context) ([]*program.EmploymentOutcome, error) {
	query := `
		SELECT id, enrollment_id, internship_id, status, employer, job_title, monthly_amount, start_date
		FROM employment_outcomes ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employment outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*program.EmploymentOutcome
	for rows.Next() {
		o := &program.EmploymentOutcome{}
		var internshipID *string
		var startDate *time.Time
		if err := rows.Scan(&o.ID, &o.EnrollmentID, &internshipID, &o.Status,
			&o.Employer, &o.JobTitle, &o.MonthlyAmount, &startDate); err != nil {
			return nil, fmt.Errorf("failed to scan employment outcome: %w", err)
		}
		if internshipID != nil {
			o.InternshipID = *internshipID
		}
		o.StartDate = timeOrZero(startDate)
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// AllSurveys returns every survey.
func (s *RecordStore) AllSurveys(ctx context.Context) ([]*survey.Survey, error) {
	query := `
		SELECT id, cohort_id, title, type, status, start_date, end_date, created_at
		FROM surveys ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*survey.Survey
	for rows.Next() {
		sv := &survey.Survey{}
		var cohortID *string
		var startDate, endDate *time.Time
		if err := rows.Scan(&sv.ID, &cohortID, &sv.Title, &sv.Type, &sv.Status,
			&startDate, &endDate, &sv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		if cohortID != nil {
			sv.CohortID = *cohortID
		}
		sv.StartDate = timeOrZero(startDate)
		sv.EndDate = timeOrZero(endDate)
		surveys = append(surveys, sv)
	}

	return surveys, rows.Err()
}

// AllQuestions returns every survey question.
func (s *RecordStore) AllQuestions(ctx context.Context) ([]*survey.Question, error) {
	query := `SELECT id, survey_id, text, type, required, sequence FROM survey_questions ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey questions: %w", err)
	}
	defer rows.Close()

	var questions []*survey.Question
	for rows.Next() {
		q := &survey.Question{}
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Text, &q.Type, &q.Required, &q.Sequence); err != nil {
			return nil, fmt.Errorf("failed to scan survey question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// AllResponses returns every survey response, pending ones included.
func (s *RecordStore) AllResponses(ctx context.Context) ([]*survey.Response, error) {
	query := `SELECT id, survey_id, respondent_id, submitted_at FROM survey_responses ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey responses: %w", err)
	}
	defer rows.Close()

	var responses []*survey.Response
	for rows.Next() {
		r := &survey.Response{}
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.RespondentID, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey response: %w", err)
		}
		responses = append(responses, r)
	}

	return responses, rows.Err()
}

// AllAnswers returns every survey answer.
func (s *RecordStore) AllAnswers(ctx context.Context) ([]*survey.Answer, error) {
	query := `SELECT id, response_id, question_id, value FROM survey_answers ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey answers: %w", err)
	}
	defer rows.Close()

	var answers []*survey.Answer
	for rows.Next() {
		a := &survey.Answer{}
		if err := rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.Value); err != nil {
			return nil, fmt.Errorf("failed to scan survey answer: %w", err)
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
