// Package scheduler runs the periodic alert evaluation loop. The evaluator
// itself is request-driven; this is the caller-side timer that feeds it when
// no dashboard is polling.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/analytics"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
)

// SnapshotSource produces the analytics snapshot to evaluate.
type SnapshotSource interface {
	ReportAnalytics(ctx context.Context, f analytics.Filters) (domain.AnalyticsSnapshot, error)
}

// ConditionChecker evaluates a snapshot against the alert rules.
type ConditionChecker interface {
	CheckConditions(ctx context.Context, snap domain.AnalyticsSnapshot) []domain.Alert
}

// Scheduler triggers snapshot evaluation on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	source  SnapshotSource
	checker ConditionChecker
	logger  *slog.Logger
}

// New creates a scheduler; Start registers the schedule and begins running.
func New(source SnapshotSource, checker ConditionChecker, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		source:  source,
		checker: checker,
		logger:  logger,
	}
}

// Start registers the evaluation job under the given cron expression and
// starts the scheduler.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("alert check scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("alert check scheduler stopped")
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := s.source.ReportAnalytics(ctx, analytics.Filters{})
	if err != nil {
		s.logger.Error("scheduled alert check: analytics failed", "error", err)
		return
	}
	fired := s.checker.CheckConditions(ctx, snapshot)
	if len(fired) > 0 {
		s.logger.Info("scheduled alert check fired alerts", "count", len(fired))
	}
}
