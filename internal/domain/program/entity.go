// Package program contains the training-program domain model of SkillBridge
// Portfolio Hub: partners (tenants), centers, programs, cohorts, participants,
// enrollments, internships and employment outcomes. This is the core of the
// business vocabulary - no external dependencies here.
package program

import (
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// CohortStatus defines the lifecycle status of a cohort.
type CohortStatus string

const (
	// CohortStatusActive - the cohort is currently running.
	CohortStatusActive CohortStatus = "ACTIVE"
	// CohortStatusCompleted - the cohort has finished.
	CohortStatusCompleted CohortStatus = "COMPLETED"
)

// IsValid reports whether the status is a known cohort status.
func (s CohortStatus) IsValid() bool {
	return s == CohortStatusActive || s == CohortStatusCompleted
}

// EnrollmentStatus defines the lifecycle status of an enrollment.
type EnrollmentStatus string

const (
	// EnrollmentStatusEnrolled - registered, training not yet started.
	EnrollmentStatusEnrolled EnrollmentStatus = "ENROLLED"
	// EnrollmentStatusActive - currently attending the program.
	EnrollmentStatusActive EnrollmentStatus = "ACTIVE"
	// EnrollmentStatusCompleted - finished the program successfully.
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	// EnrollmentStatusDroppedOut - left before completion.
	EnrollmentStatusDroppedOut EnrollmentStatus = "DROPPED_OUT"
	// EnrollmentStatusWithdrawn - withdrawn administratively.
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
)

// IsValid reports whether the status is a known enrollment status.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentStatusEnrolled, EnrollmentStatusActive, EnrollmentStatusCompleted,
		EnrollmentStatusDroppedOut, EnrollmentStatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsOngoing reports whether the participant is still in the program.
// Both ENROLLED and ACTIVE count as ongoing for KPI purposes.
func (s EnrollmentStatus) IsOngoing() bool {
	return s == EnrollmentStatusEnrolled || s == EnrollmentStatusActive
}

// InternshipStatus defines the lifecycle status of an internship placement.
type InternshipStatus string

const (
	// InternshipStatusPlanned - placement agreed but not started.
	InternshipStatusPlanned InternshipStatus = "PLANNED"
	// InternshipStatusOngoing - internship in progress.
	InternshipStatusOngoing InternshipStatus = "ONGOING"
	// InternshipStatusCompleted - internship finished.
	InternshipStatusCompleted InternshipStatus = "COMPLETED"
	// InternshipStatusTerminated - internship ended early.
	InternshipStatusTerminated InternshipStatus = "TERMINATED"
)

// EmploymentStatus defines the kind of employment outcome recorded.
type EmploymentStatus string

const (
	// EmploymentStatusEmployed - hired by an employer.
	EmploymentStatusEmployed EmploymentStatus = "EMPLOYED"
	// EmploymentStatusSelfEmployed - running their own business.
	EmploymentStatusSelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	// EmploymentStatusUnemployed - not employed at follow-up.
	EmploymentStatusUnemployed EmploymentStatus = "UNEMPLOYED"
	// EmploymentStatusFurtherEducation - continued into further education.
	EmploymentStatusFurtherEducation EmploymentStatus = "FURTHER_EDUCATION"
)

// IsEmployed reports whether the outcome counts as employment for KPI
// purposes. Self-employment counts.
func (s EmploymentStatus) IsEmployed() bool {
	return s == EmploymentStatusEmployed || s == EmploymentStatusSelfEmployed
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// Partner is a tenant organization running training programs.
type Partner struct {
	// ID is the internal unique identifier (UUID in string form).
	ID string

	// Name is the partner organization name.
	Name string

	// Active indicates whether the partner is currently operating.
	Active bool
}

// Center is a physical training location belonging to one partner.
type Center struct {
	ID        string
	PartnerID string
	Name      string
	Location  string

	// Region and Country place the center geographically. Either may be
	// blank for legacy records; rollups skip the affected level then.
	Region  string
	Country string

	Active bool
}

// HasRegion reports whether the center carries a usable region value.
func (c *Center) HasRegion() bool {
	return strings.TrimSpace(c.Region) != ""
}

// HasCountry reports whether the center carries a usable country value.
func (c *Center) HasCountry() bool {
	return strings.TrimSpace(c.Country) != ""
}

// Program is a training curriculum offered by a partner.
type Program struct {
	ID        string
	PartnerID string
	Name      string

	// DurationWeeks is the nominal program length.
	DurationWeeks int
}

// Cohort is a bounded group of participants going through one program at one
// center together.
type Cohort struct {
	ID        string
	CenterID  string
	ProgramID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    CohortStatus

	// TargetEnrollment is the planned number of participants.
	TargetEnrollment int
}

// Participant is a person enrolled with a partner.
type Participant struct {
	ID        string
	PartnerID string
	Name      string

	// Gender and DisabilityStatus are categorical and may be empty when the
	// participant chose not to disclose. Empty values are excluded from
	// demographic breakdowns rather than bucketed.
	Gender           string
	DisabilityStatus string

	// EducationLevel is free text and may be blank.
	EducationLevel string
}

// Enrollment links one participant to one cohort with a lifecycle status.
type Enrollment struct {
	ID            string
	ParticipantID string
	CohortID      string
	EnrolledAt    time.Time
	Status        EnrollmentStatus

	// CompletedAt is set when Status is COMPLETED.
	CompletedAt *time.Time

	// DroppedOutAt is set when Status is DROPPED_OUT.
	DroppedOutAt *time.Time

	// DropoutReason is free text and may be blank even for dropouts.
	DropoutReason string
}

// Internship is a placement tied to an enrollment, potentially preceding an
// employment outcome.
type Internship struct {
	ID           string
	EnrollmentID string
	Organization string
	Status       InternshipStatus
}

// EmploymentOutcome is a recorded employment result tied to an enrollment and
// optionally to the internship that led to it.
type EmploymentOutcome struct {
	ID           string
	EnrollmentID string

	// InternshipID references the internship that produced this outcome.
	// Empty when the outcome is not tied to a specific internship.
	InternshipID string

	Status        EmploymentStatus
	Employer      string
	JobTitle      string
	MonthlyAmount float64
	StartDate     time.Time
}

// HasInternshipRef reports whether the outcome references a specific
// internship.
func (o *EmploymentOutcome) HasInternshipRef() bool {
	return o.InternshipID != ""
}
