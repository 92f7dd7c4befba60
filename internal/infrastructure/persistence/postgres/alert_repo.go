package postgres

import (
	"context"
	"fmt"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
)

// AlertRepository persists KPI anomaly alerts. It backs the alert notifier
// and implements alert.Reader for the dashboard alert feed.
type AlertRepository struct {
	conn *Connection
}

// NewAlertRepository creates an alert repository.
func NewAlertRepository(conn *Connection) *AlertRepository {
	return &AlertRepository{conn: conn}
}

// Save persists a single alert row.
func (r *AlertRepository) Save(ctx context.Context, a *alert.Alert) error {
	query := `
		INSERT INTO alerts (id, type, severity, message, observed, threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.conn.Exec(ctx, query,
		a.ID, a.Type, a.Severity, a.Message, a.Observed, a.Threshold, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

// Recent returns the most recent alerts, newest first.
func (r *AlertRepository) Recent(ctx context.Context, limit int) ([]*alert.Alert, error) {
	query := `
		SELECT id, type, severity, message, observed, threshold, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert
	for rows.Next() {
		a := &alert.Alert{}
		if err := rows.Scan(&a.ID, &a.Type, &a.Severity, &a.Message,
			&a.Observed, &a.Threshold, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}
