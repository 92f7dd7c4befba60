// Package survey contains the survey domain model: surveys with ordered
// questions, responses from participants, and individual answers. Survey data
// feeds the longitudinal impact and sentiment analytics.
package survey

import (
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Type defines where in the program lifecycle a survey sits.
type Type string

const (
	// TypeBaseline - collected before the program starts.
	TypeBaseline Type = "BASELINE"
	// TypeMidline - collected mid-program. Excluded from longitudinal
	// baseline/endline comparison on purpose.
	TypeMidline Type = "MIDLINE"
	// TypeEndline - collected at program end.
	TypeEndline Type = "ENDLINE"
	// TypeTracer - post-program follow-up.
	TypeTracer Type = "TRACER"
)

// IsValid reports whether the type is a known survey type.
func (t Type) IsValid() bool {
	switch t {
	case TypeBaseline, TypeMidline, TypeEndline, TypeTracer:
		return true
	default:
		return false
	}
}

// IsLongitudinal reports whether surveys of this type participate in the
// longitudinal impact comparison. MIDLINE does not.
func (t Type) IsLongitudinal() bool {
	return t == TypeBaseline || t == TypeEndline || t == TypeTracer
}

// Status defines the publication status of a survey.
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// QuestionType defines how a question is answered.
type QuestionType string

const (
	// QuestionTypeScale - numeric rating, typically 1..5.
	QuestionTypeScale QuestionType = "SCALE"
	// QuestionTypeSingleChoice - one option from a fixed list.
	QuestionTypeSingleChoice QuestionType = "SINGLE_CHOICE"
	// QuestionTypeMultipleChoice - several options from a fixed list.
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	// QuestionTypeText - free text.
	QuestionTypeText QuestionType = "TEXT"
	// QuestionTypeDate - a calendar date.
	QuestionTypeDate QuestionType = "DATE"
)

// IsChoice reports whether answers are picked from a fixed option list.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// Survey is a questionnaire, optionally scoped to a single cohort.
type Survey struct {
	ID string

	// CohortID scopes the survey to one cohort. Empty for portfolio-wide
	// surveys.
	CohortID string

	Title  string
	Type   Type
	Status Status

	// StartDate and EndDate bound the response window. StartDate may be
	// zero for surveys opened ad hoc.
	StartDate time.Time
	EndDate   time.Time

	CreatedAt time.Time
}

// EffectiveDate returns the date a survey is plotted at in time series:
// the start date when present, otherwise the creation date, otherwise now.
// Fallbacks are truncated to the day so a survey plots at a calendar date,
// not at the instant its row happened to be written.
func (s *Survey) EffectiveDate(now time.Time) time.Time {
	if !s.StartDate.IsZero() {
		return s.StartDate
	}
	if !s.CreatedAt.IsZero() {
		return dateOf(s.CreatedAt)
	}
	return dateOf(now)
}

// dateOf truncates a time to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Question is one question within a survey.
type Question struct {
	ID       string
	SurveyID string
	Text     string
	Type     QuestionType
	Required bool

	// Sequence orders questions within the survey, starting at 1.
	Sequence int
}

// Response links a survey to one respondent. A response row is created when
// the survey is sent out; SubmittedAt stays nil until the respondent submits.
type Response struct {
	ID       string
	SurveyID string

	// RespondentID is the participant the response was targeted at.
	RespondentID string

	// SubmittedAt is nil while the response is still pending.
	SubmittedAt *time.Time
}

// IsSubmitted reports whether the respondent actually submitted.
func (r *Response) IsSubmitted() bool {
	return r.SubmittedAt != nil
}

// Answer is a single raw answer value within a response.
type Answer struct {
	ID         string
	ResponseID string
	QuestionID string

	// Value is the raw answer as entered. Numeric parsing happens in the
	// analytics layer; unparseable values are skipped there, never errors.
	Value string
}

// TrimmedValue returns the answer value with surrounding whitespace removed.
func (a *Answer) TrimmedValue() string {
	return strings.TrimSpace(a.Value)
}
