// Package metrics exposes Prometheus instrumentation for the analytics
// worker: scheduled job executions and KPI alert emissions.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/scheduler"
)

// Metrics holds the worker's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	alertsFired *prometheus.CounterVec
}

// New creates and registers the worker metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Subsystem: "worker",
			Name:      "job_runs_total",
			Help:      "Scheduled job executions by job name and outcome.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillbridge",
			Subsystem: "worker",
			Name:      "job_duration_seconds",
			Help:      "Scheduled job execution duration.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"job"}),
		alertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Subsystem: "worker",
			Name:      "alerts_fired_total",
			Help:      "KPI anomaly alerts emitted by alert type.",
		}, []string{"type"}),
	}

	registry.MustRegister(m.jobRuns, m.jobDuration, m.alertsFired)
	return m
}

// JobCompletionHook returns a callback for scheduler.OnJobComplete.
func (m *Metrics) JobCompletionHook() func(result scheduler.JobResult) {
	return func(result scheduler.JobResult) {
		status := "success"
		if !result.Success {
			status = "failure"
		}
		m.jobRuns.WithLabelValues(result.JobName, status).Inc()
		m.jobDuration.WithLabelValues(result.JobName).Observe(result.Duration.Seconds())
	}
}

// AlertFired counts one emitted alert of the given type.
func (m *Metrics) AlertFired(alertType string) {
	m.alertsFired.WithLabelValues(alertType).Inc()
}

// Handler returns the /metrics HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentNotifier wraps a notifier so every successful emission is counted.
func (m *Metrics) InstrumentNotifier(next alert.Notifier) alert.Notifier {
	return &instrumentedNotifier{next: next, metrics: m}
}

type instrumentedNotifier struct {
	next    alert.Notifier
	metrics *Metrics
}

func (n *instrumentedNotifier) Notify(ctx context.Context, a *alert.Alert) error {
	if err := n.next.Notify(ctx, a); err != nil {
		return err
	}
	n.metrics.AlertFired(string(a.Type))
	return nil
}
