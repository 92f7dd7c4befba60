package program

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT REPOSITORY INTERFACES
// The analytics engine reads entire collections at invocation time and joins
// them in memory. No filtering or pagination is pushed down to this boundary;
// full materialization is an accepted ceiling of the reporting core.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// SnapshotRepository exposes whole-collection reads for every program-domain
// entity the aggregation engine consumes.
type SnapshotRepository interface {
	// AllPartners returns every partner, active or not.
	AllPartners(ctx context.Context) ([]*Partner, error)

	// AllCenters returns every training center.
	AllCenters(ctx context.Context) ([]*Center, error)

	// AllPrograms returns every program.
	AllPrograms(ctx context.Context) ([]*Program, error)

	// AllCohorts returns every cohort.
	AllCohorts(ctx context.Context) ([]*Cohort, error)

	// AllParticipants returns every participant.
	AllParticipants(ctx context.Context) ([]*Participant, error)

	// AllEnrollments returns every enrollment regardless of status.
	AllEnrollments(ctx context.Context) ([]*Enrollment, error)

	// AllInternships returns every internship placement.
	AllInternships(ctx context.Context) ([]*Internship, error)

	// AllEmploymentOutcomes returns every recorded employment outcome.
	AllEmploymentOutcomes(ctx context.Context) ([]*EmploymentOutcome, error)
}
