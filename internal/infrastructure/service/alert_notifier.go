package service

import (
	"context"
	"log/slog"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/retry"
)

// AlertStore persists alert rows. Implemented by postgres.AlertRepository.
type AlertStore interface {
	Save(ctx context.Context, a *alert.Alert) error
}

// AlertNotifier implements alert.Notifier: it persists each alert and logs it
// at a level matching the severity. External delivery channels (email,
// messenger) hang off the persisted rows, not off this component.
type AlertNotifier struct {
	store   AlertStore
	logger  *slog.Logger
	retrier *retry.Retrier
}

// NewAlertNotifier creates an alert notifier over a persistent store.
func NewAlertNotifier(store AlertStore, logger *slog.Logger) *AlertNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertNotifier{
		store:   store,
		logger:  logger,
		retrier: retry.DatabaseRetrier(),
	}
}

// Notify persists the alert, retrying transient store failures.
func (n *AlertNotifier) Notify(ctx context.Context, a *alert.Alert) error {
	err := n.retrier.Do(ctx, func(ctx context.Context) error {
		return retry.Retryable(n.store.Save(ctx, a))
	})
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.Severity == alert.SeverityCritical {
		level = slog.LevelError
	}
	n.logger.Log(ctx, level, "kpi alert",
		"alert_id", a.ID,
		"type", string(a.Type),
		"severity", string(a.Severity),
		"observed", a.Observed,
		"threshold", a.Threshold,
		"message", a.Message,
	)
	return nil
}
