// Package main is the entry point of the SkillBridge Portfolio analytics
// worker. The worker loads portfolio snapshots from PostgreSQL, runs the
// scheduled KPI anomaly check and the weekly/monthly/quarterly report jobs,
// and serves Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillbridge-hub/skillbridge-portfolio/config"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/analytics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/dashboard"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/report"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/alert"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/export"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/metrics"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/persistence/postgres"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/persistence/redis"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/scheduler"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/scheduler/jobs"
	"github.com/skillbridge-hub/skillbridge-portfolio/internal/infrastructure/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting SkillBridge Portfolio worker",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching and dedup disabled", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REPOSITORIES AND SERVICES
	// ─────────────────────────────────────────────────────────────────────────
	recordStore := postgres.NewRecordStore(dbConn)
	alertRepo := postgres.NewAlertRepository(dbConn)
	auditRepo := postgres.NewAuditRepository(dbConn)

	loader := analytics.NewLoader(recordStore, recordStore)
	ids := service.NewIDGenerator()

	workerMetrics := metrics.New()
	var notifier alert.Notifier = service.NewAlertNotifier(alertRepo, log)
	notifier = workerMetrics.InstrumentNotifier(notifier)

	var deduper alert.Deduper
	if redisCache != nil && cfg.Alerts.DedupEnabled {
		deduper = redis.NewAlertDeduper(redisCache)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. SCHEDULED JOBS
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.New(scheduler.Config{
		Logger:   log,
		Timezone: cfg.App.Location,
	})
	sched.OnJobComplete(workerMetrics.JobCompletionHook())

	anomalyCfg := jobs.DefaultAnomalyCheckConfig()
	anomalyCfg.DedupEnabled = cfg.Alerts.DedupEnabled && deduper != nil
	anomalyCfg.Timeout = cfg.Scheduler.JobTimeout

	anomalyJob := jobs.NewAnomalyCheckJob(loader, notifier, auditRepo, deduper, ids, log, anomalyCfg)
	if err := sched.Register(anomalyJob, scheduler.MustParseCronExpression(cfg.Scheduler.AnomalyCheckCron)); err != nil {
		return fmt.Errorf("failed to register anomaly check: %w", err)
	}

	generator := report.NewGenerator(loader)
	exporter := export.NewJSONExporter(cfg.Reports.ExportDir, log)

	reportJobs := []struct {
		cadence jobs.Cadence
		cron    string
	}{
		{jobs.CadenceWeekly, cfg.Scheduler.WeeklyReportCron},
		{jobs.CadenceMonthly, cfg.Scheduler.MonthlyReportCron},
		{jobs.CadenceQuarterly, cfg.Scheduler.QuarterlyReportCron},
	}
	for _, rj := range reportJobs {
		job := jobs.NewPortfolioReportJob(rj.cadence, generator, exporter, auditRepo, ids, log)
		if err := sched.Register(job, scheduler.MustParseCronExpression(rj.cron)); err != nil {
			return fmt.Errorf("failed to register %s report: %w", rj.cadence, err)
		}
	}

	// The refresh interval matches the summary TTL, so the cache is rewarmed
	// right as the previous entry expires.
	if redisCache != nil {
		composer := dashboard.NewComposer(loader, auditRepo, alertRepo, redis.NewSummaryCache(redisCache), log)
		refreshJob := jobs.NewDashboardRefreshJob(composer, log)
		if err := sched.Register(refreshJob, scheduler.NewIntervalSchedule(redis.TTLDashboardSummary)); err != nil {
			return fmt.Errorf("failed to register dashboard refresh: %w", err)
		}
	}

	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler...")
			_ = sched.Stop()
		}()
	} else {
		log.Warn("scheduler disabled, jobs will not run")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. METRICS ENDPOINT
	// ─────────────────────────────────────────────────────────────────────────
	var metricsServer *http.Server
	if cfg.Observability.MetricsEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Observability.MetricsPort),
			Handler: mux,
		}
		go func() {
			log.Info("metrics endpoint listening", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", "error", err)
			}
		}()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("SkillBridge Portfolio worker is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigCh
	log.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown failed", "error", err)
		}
	}

	log.Info("shutdown completed successfully")
	return nil
}

// setupLogger configures structured logging for the worker.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Observability.LogLevel),
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" || cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
