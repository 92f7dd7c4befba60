package postgres

import (
	"context"
	"fmt"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/audit"
)

// AuditRepository persists audit-trail entries. It implements audit.Recorder
// for the scheduled jobs and audit.Reader for the dashboard activity feed.
type AuditRepository struct {
	conn *Connection
}

// NewAuditRepository creates an audit repository.
func NewAuditRepository(conn *Connection) *AuditRepository {
	return &AuditRepository{conn: conn}
}

// Record persists a single audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO audit_log (id, actor, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.conn.Exec(ctx, query,
		entry.ID, entry.Actor, entry.Action, entry.Detail, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Recent returns the most recent audit entries, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	query := `
		SELECT id, actor, action, detail, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		e := &audit.Entry{}
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
