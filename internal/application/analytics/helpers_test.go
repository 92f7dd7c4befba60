package analytics

import (
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// Shared fixture helpers for the analytics package tests.

func tp(t time.Time) *time.Time { return &t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func enrollment(id, participantID, cohortID string, status program.EnrollmentStatus, enrolledAt time.Time) *program.Enrollment {
	return &program.Enrollment{
		ID:            id,
		ParticipantID: participantID,
		CohortID:      cohortID,
		Status:        status,
		EnrolledAt:    enrolledAt,
	}
}

func participant(id, partnerID string) *program.Participant {
	return &program.Participant{ID: id, PartnerID: partnerID, Name: "Participant " + id}
}

func partner(id, name string) *program.Partner {
	return &program.Partner{ID: id, Name: name, Active: true}
}

func center(id, partnerID, name, region, country string) *program.Center {
	return &program.Center{
		ID:        id,
		PartnerID: partnerID,
		Name:      name,
		Region:    region,
		Country:   country,
		Active:    true,
	}
}

func cohort(id, centerID, programID string, status program.CohortStatus) *program.Cohort {
	return &program.Cohort{
		ID:        id,
		CenterID:  centerID,
		ProgramID: programID,
		Name:      "Cohort " + id,
		Status:    status,
	}
}

func surveyWith(id string, typ survey.Type, createdAt time.Time) *survey.Survey {
	return &survey.Survey{
		ID:        id,
		Title:     "Survey " + id,
		Type:      typ,
		Status:    survey.StatusOpen,
		CreatedAt: createdAt,
	}
}

func response(id, surveyID string, submittedAt *time.Time) *survey.Response {
	return &survey.Response{
		ID:           id,
		SurveyID:     surveyID,
		RespondentID: "resp-" + id,
		SubmittedAt:  submittedAt,
	}
}

func question(id, surveyID string, typ survey.QuestionType) *survey.Question {
	return &survey.Question{ID: id, SurveyID: surveyID, Type: typ, Sequence: 1}
}

func answer(id, responseID, questionID, value string) *survey.Answer {
	return &survey.Answer{ID: id, ResponseID: responseID, QuestionID: questionID, Value: value}
}
