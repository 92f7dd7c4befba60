package survey

import "context"

// SnapshotRepository exposes whole-collection reads for the survey domain.
// Like the program snapshot contract, no filtering is pushed down; the
// analytics engine joins responses to surveys and answers to questions in
// memory.
type SnapshotRepository interface {
	// AllSurveys returns every survey regardless of status.
	AllSurveys(ctx context.Context) ([]*Survey, error)

	// AllQuestions returns every question across all surveys.
	AllQuestions(ctx context.Context) ([]*Question, error)

	// AllResponses returns every response row, submitted or pending.
	AllResponses(ctx context.Context) ([]*Response, error)

	// AllAnswers returns every answer across all responses.
	AllAnswers(ctx context.Context) ([]*Answer, error)
}
