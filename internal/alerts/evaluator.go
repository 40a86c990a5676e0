// Package alerts evaluates analytics snapshots against threshold rules and
// manages the resulting alert records.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/observability"
)

// activeAlertsCap bounds the active-alerts listing.
const activeAlertsCap = 50

// defaultClearAgeDays is the cutoff when clearOld is called without one.
const defaultClearAgeDays = 30

// AlertStore persists and queries alert records.
type AlertStore interface {
	Insert(ctx context.Context, alert domain.Alert) error
	// Query returns alerts newest first, filtered by status when non-empty,
	// capped at limit when positive.
	Query(ctx context.Context, status domain.AlertStatus, limit int) ([]domain.Alert, error)
	// Acknowledge marks an alert acknowledged. Returns false when no active
	// alert with that id exists.
	Acknowledge(ctx context.Context, id string, at time.Time) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AlertPublisher fans created alerts out to downstream consumers. Optional.
type AlertPublisher interface {
	Publish(ctx context.Context, alerts []domain.Alert) error
}

// Evaluator owns the threshold configuration and the cooldown history.
// Construct once at process start; all methods are safe for concurrent use.
type Evaluator struct {
	store     AlertStore
	publisher AlertPublisher // nil when fan-out is disabled
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	cooldown  time.Duration

	thresholdsMu sync.RWMutex
	thresholds   domain.Thresholds

	// history maps rule+data cooldown keys to the last emission time.
	historyMu sync.Mutex
	history   map[string]time.Time
}

// NewEvaluator creates an evaluator with default thresholds. publisher may
// be nil.
func NewEvaluator(
	store AlertStore,
	publisher AlertPublisher,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
	cooldown time.Duration,
) *Evaluator {
	return &Evaluator{
		store:      store,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
		cooldown:   cooldown,
		thresholds: domain.DefaultThresholds(),
		history:    make(map[string]time.Time),
	}
}

// CheckConditions evaluates all rules against a snapshot and returns the
// alerts that passed the cooldown gate. Created alerts are persisted as a
// side effect; a persistence failure is logged and the alert is still
// returned with Persisted=false, so the caller sees the condition even when
// the store write was lost.
func (e *Evaluator) CheckConditions(ctx context.Context, snap domain.AnalyticsSnapshot) []domain.Alert {
	now := e.clock.Now()
	candidates := evaluateRules(snap, e.Thresholds())

	var fired []domain.Alert
	for _, c := range candidates {
		key := cooldownKey(c)
		if !e.tryAcquire(key, now) {
			e.metrics.AlertsSuppressed.WithLabelValues(string(c.kind)).Inc()
			e.logger.Debug("alert suppressed by cooldown", "rule", c.kind, "key", key)
			continue
		}

		alert := domain.Alert{
			ID:              uuid.NewString(),
			Type:            c.kind,
			Severity:        c.severity,
			Title:           c.title,
			Message:         c.message,
			Data:            c.data,
			Recommendations: c.recommendations,
			Status:          domain.AlertActive,
			CreatedAt:       now,
			Persisted:       true,
		}

		if err := e.store.Insert(ctx, alert); err != nil {
			// Best-effort: the caller still gets the alert, flagged unsaved.
			e.metrics.AlertStoreErrors.Inc()
			e.logger.Error("alert insert failed", "rule", c.kind, "alert_id", alert.ID, "error", err)
			alert.Persisted = false
		}

		e.metrics.AlertsEmitted.WithLabelValues(string(c.kind)).Inc()
		fired = append(fired, alert)
	}

	if e.publisher != nil && len(fired) > 0 {
		if err := e.publisher.Publish(ctx, fired); err != nil {
			e.logger.Warn("alert publish failed", "count", len(fired), "error", err)
		}
	}

	return fired
}

// cooldownKey combines the rule kind with its triggering data so distinct
// conditions of the same rule cool down independently. encoding/json sorts
// map keys, which keeps the key deterministic.
func cooldownKey(c candidate) string {
	data, err := json.Marshal(c.data)
	if err != nil {
		// Data maps hold only strings and numbers; this cannot happen.
		return string(c.kind)
	}
	return fmt.Sprintf("%s:%s", c.kind, data)
}

// tryAcquire records an emission at now unless one within the cooldown window
// already exists. Check and insert happen under one lock so concurrent
// evaluations cannot double-emit.
func (e *Evaluator) tryAcquire(key string, now time.Time) bool {
	e.historyMu.Lock()
	defer e.historyMu.Unlock()

	if last, ok := e.history[key]; ok && now.Sub(last) < e.cooldown {
		return false
	}
	e.history[key] = now
	return true
}

// ActiveAlerts returns active alerts, newest first, capped at 50.
func (e *Evaluator) ActiveAlerts(ctx context.Context) ([]domain.Alert, error) {
	alerts, err := e.store.Query(ctx, domain.AlertActive, activeAlertsCap)
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	return alerts, nil
}

// Acknowledge transitions an alert to acknowledged. Returns false, never an
// error, when the alert does not exist or the store fails; callers surface
// that as a failed action without crashing.
func (e *Evaluator) Acknowledge(ctx context.Context, id string) bool {
	ok, err := e.store.Acknowledge(ctx, id, e.clock.Now())
	if err != nil {
		e.logger.Error("acknowledge alert failed", "alert_id", id, "error", err)
		return false
	}
	return ok
}

// Statistics summarizes the stored alert population.
func (e *Evaluator) Statistics(ctx context.Context) (domain.AlertStatistics, error) {
	alerts, err := e.store.Query(ctx, "", 0)
	if err != nil {
		return domain.AlertStatistics{}, fmt.Errorf("query alerts: %w", err)
	}

	stats := domain.AlertStatistics{
		Total: len(alerts),
		BySeverity: map[domain.Level]int{
			domain.LevelHigh:   0,
			domain.LevelMedium: 0,
			domain.LevelLow:    0,
		},
	}
	dayAgo := e.clock.Now().Add(-24 * time.Hour)
	for _, a := range alerts {
		switch a.Status {
		case domain.AlertActive:
			stats.Active++
		case domain.AlertAcknowledged:
			stats.Acknowledged++
		}
		stats.BySeverity[a.Severity]++
		if a.CreatedAt.After(dayAgo) {
			stats.Recent++
		}
	}
	return stats, nil
}

// ClearOld deletes alerts older than daysOld days (default 30). Returns false
// on store failure.
func (e *Evaluator) ClearOld(ctx context.Context, daysOld int) bool {
	if daysOld <= 0 {
		daysOld = defaultClearAgeDays
	}
	cutoff := e.clock.Now().AddDate(0, 0, -daysOld)
	deleted, err := e.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		e.logger.Error("clear old alerts failed", "days_old", daysOld, "error", err)
		return false
	}
	e.logger.Info("old alerts cleared", "days_old", daysOld, "deleted", deleted)
	return true
}

// UpdateThresholds shallow-merges the patch into the live configuration.
func (e *Evaluator) UpdateThresholds(patch domain.ThresholdPatch) {
	e.thresholdsMu.Lock()
	defer e.thresholdsMu.Unlock()
	e.thresholds = patch.Apply(e.thresholds)
	e.logger.Info("alert thresholds updated",
		"high_risk_score", e.thresholds.HighRiskScore,
		"high_activity", e.thresholds.HighActivity,
		"low_verification_rate", e.thresholds.LowVerificationRate,
		"high_response_hours", e.thresholds.HighResponseHours,
	)
}

// Thresholds returns a copy of the current configuration.
func (e *Evaluator) Thresholds() domain.Thresholds {
	e.thresholdsMu.RLock()
	defer e.thresholdsMu.RUnlock()
	return e.thresholds
}
