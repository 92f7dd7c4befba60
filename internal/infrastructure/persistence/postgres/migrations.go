package postgres

import (
	"context"
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// The worker owns only the two tables it writes (alerts, audit_log). The
// program and survey tables are owned by the management platform; their
// migrations live here too so a standalone deployment can bootstrap a full
// schema.
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a database migration.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	AppliedAt time.Time
	IsApplied bool
}

// Migrator applies migrations in version order.
type Migrator struct {
	conn       *Connection
	migrations []Migration
	tableName  string
}

// NewMigrator creates a migrator with the embedded migrations.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{
		conn:       conn,
		migrations: GetMigrations(),
		tableName:  "schema_migrations",
	}
}

// EnsureMigrationTable creates the migration tracking table if needed.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, m.tableName)

	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns the applied versions with their timestamps.
func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	query := fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName)

	rows, err := m.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if _, isApplied := applied[mig.Version]; isApplied {
			continue
		}

		if mig.UpSQL == "" {
			return fmt.Errorf("%w: missing up SQL for migration %d", ErrMigrationFailed, mig.Version)
		}

		if _, err := m.conn.Exec(ctx, mig.UpSQL); err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}

		insertQuery := fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", m.tableName)
		if _, err := m.conn.Exec(ctx, insertQuery, mig.Version, mig.Name); err != nil {
			return fmt.Errorf("%w: recording version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}

	return nil
}

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_program_tables", UpSQL: migration001Up, DownSQL: migration001Down},
		{Version: 2, Name: "create_survey_tables", UpSQL: migration002Up, DownSQL: migration002Down},
		{Version: 3, Name: "create_alerts_and_audit", UpSQL: migration003Up, DownSQL: migration003Down},
	}
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS partners (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS centers (
	id UUID PRIMARY KEY,
	partner_id UUID NOT NULL REFERENCES partners(id),
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	region TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS programs (
	id UUID PRIMARY KEY,
	partner_id UUID NOT NULL REFERENCES partners(id),
	name TEXT NOT NULL,
	duration_weeks INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cohorts (
	id UUID PRIMARY KEY,
	center_id UUID NOT NULL REFERENCES centers(id),
	program_id UUID NOT NULL REFERENCES programs(id),
	name TEXT NOT NULL,
	start_date TIMESTAMPTZ,
	end_date TIMESTAMPTZ,
	status TEXT NOT NULL,
	target_enrollment INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS participants (
	id UUID PRIMARY KEY,
	partner_id UUID NOT NULL REFERENCES partners(id),
	name TEXT NOT NULL,
	gender TEXT NOT NULL DEFAULT '',
	disability_status TEXT NOT NULL DEFAULT '',
	education_level TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS enrollments (
	id UUID PRIMARY KEY,
	participant_id UUID NOT NULL REFERENCES participants(id),
	cohort_id UUID NOT NULL REFERENCES cohorts(id),
	enrolled_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	completed_at TIMESTAMPTZ,
	dropped_out_at TIMESTAMPTZ,
	dropout_reason TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS internships (
	id UUID PRIMARY KEY,
	enrollment_id UUID NOT NULL REFERENCES enrollments(id),
	organization TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS employment_outcomes (
	id UUID PRIMARY KEY,
	enrollment_id UUID NOT NULL REFERENCES enrollments(id),
	internship_id UUID,
	status TEXT NOT NULL,
	employer TEXT NOT NULL DEFAULT '',
	job_title TEXT NOT NULL DEFAULT '',
	monthly_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
	start_date TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_enrollments_cohort ON enrollments(cohort_id);
CREATE INDEX IF NOT EXISTS idx_outcomes_enrollment ON employment_outcomes(enrollment_id);
`

const migration001Down = `
DROP TABLE IF EXISTS employment_outcomes;
DROP TABLE IF EXISTS internships;
DROP TABLE IF EXISTS enrollments;
DROP TABLE IF EXISTS participants;
DROP TABLE IF EXISTS cohorts;
DROP TABLE IF EXISTS programs;
DROP TABLE IF EXISTS centers;
DROP TABLE IF EXISTS partners;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS surveys (
	id UUID PRIMARY KEY,
	cohort_id UUID,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	start_date TIMESTAMPTZ,
	end_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS survey_questions (
	id UUID PRIMARY KEY,
	survey_id UUID NOT NULL REFERENCES surveys(id),
	text TEXT NOT NULL,
	type TEXT NOT NULL,
	required BOOLEAN NOT NULL DEFAULT FALSE,
	sequence INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS survey_responses (
	id UUID PRIMARY KEY,
	survey_id UUID NOT NULL REFERENCES surveys(id),
	respondent_id UUID NOT NULL,
	submitted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS survey_answers (
	id UUID PRIMARY KEY,
	response_id UUID NOT NULL REFERENCES survey_responses(id),
	question_id UUID NOT NULL REFERENCES survey_questions(id),
	value TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_responses_survey ON survey_responses(survey_id);
CREATE INDEX IF NOT EXISTS idx_answers_response ON survey_answers(response_id);
`

const migration002Down = `
DROP TABLE IF EXISTS survey_answers;
DROP TABLE IF EXISTS survey_responses;
DROP TABLE IF EXISTS survey_questions;
DROP TABLE IF EXISTS surveys;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS alerts (
	id UUID PRIMARY KEY,
	type TEXT NOT NULL,
	severity TEXT NOT NULL,
	message TEXT NOT NULL,
	observed DOUBLE PRECISION NOT NULL,
	threshold DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS audit_log (
	id UUID PRIMARY KEY,
	actor TEXT NOT NULL,
	action TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at DESC);
`

const migration003Down = `
DROP TABLE IF EXISTS audit_log;
DROP TABLE IF EXISTS alerts;
`
