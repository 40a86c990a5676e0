package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/coastal-hazard-analytics/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/coastal-hazard-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/adapter/social"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/alerts"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/analytics"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/config"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/observability"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/scheduler"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/store"
)

// readiness adapts the report store ping to the server's readiness check.
type readiness struct {
	store *store.ReportStore
}

func (r *readiness) CheckReadiness(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		logger.Error("failed to connect to mysql", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reportStore := store.NewReportStore(db, metrics)
	alertStore := store.NewAlertStore(db, metrics)

	// Social analytics source (optional, fail-soft).
	var socialSource analytics.SocialSource
	if cfg.SocialAPIURL != "" {
		socialSource = social.NewClient(cfg.SocialAPIURL, cfg.SocialTimeout, logger)
		logger.Info("social analytics enabled", "url", cfg.SocialAPIURL)
	} else {
		logger.Info("social analytics disabled")
	}

	aggregator := analytics.NewService(
		reportStore,
		socialSource,
		domain.NewBoundingBoxMapper(),
		clock,
		logger,
		metrics,
		cfg.ReportFetchLimit,
		cfg.CacheTTL,
	)

	// Alert fan-out to Kafka (optional, feature-flagged).
	var publisher alerts.AlertPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.AlertsSinkTopic, logger)
		publisher = kafkaPublisher
		logger.Info("kafka alert fan-out enabled", "topic", cfg.AlertsSinkTopic)
	} else {
		logger.Info("kafka alert fan-out disabled")
	}

	evaluator := alerts.NewEvaluator(alertStore, publisher, clock, logger, metrics, cfg.AlertCooldown)

	srv := httpadapter.NewServer(cfg.HTTPAddr, aggregator, evaluator, &readiness{store: reportStore}, clock, logger)

	// Periodic alert evaluation (optional).
	var sched *scheduler.Scheduler
	if cfg.AlertCheckSchedule != "" {
		sched = scheduler.New(aggregator, evaluator, logger)
		if err := sched.Start(cfg.AlertCheckSchedule); err != nil {
			logger.Error("failed to start alert check scheduler", "error", err)
			os.Exit(1)
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
