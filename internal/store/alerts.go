package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/observability"
)

// AlertStore persists evaluator alerts.
type AlertStore struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewAlertStore wraps a database handle.
func NewAlertStore(db *sql.DB, metrics *observability.Metrics) *AlertStore {
	return &AlertStore{db: db, metrics: metrics}
}

const insertAlert = `
INSERT INTO alerts (id, type, severity, title, message, data, recommendations, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert stores a new alert. Data and recommendations are serialized to JSON
// columns.
func (s *AlertStore) Insert(ctx context.Context, alert domain.Alert) error {
	data, err := json.Marshal(alert.Data)
	if err != nil {
		return fmt.Errorf("marshal alert data: %w", err)
	}
	recs, err := json.Marshal(alert.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal alert recommendations: %w", err)
	}

	start := time.Now()
	res, err := s.db.ExecContext(ctx, insertAlert,
		alert.ID, alert.Type, alert.Severity, alert.Title, alert.Message,
		data, recs, alert.Status, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows != 1 {
		return fmt.Errorf("insert alert: affected %d rows", rows)
	}

	s.metrics.StoreQueryDuration.WithLabelValues("alerts").Observe(time.Since(start).Seconds())
	return nil
}

const selectAlerts = `
SELECT id, type, severity, title, message, data, recommendations, status, created_at, acknowledged_at
FROM alerts`

// Query returns alerts newest first. A non-empty status filters; a positive
// limit caps the result.
func (s *AlertStore) Query(ctx context.Context, status domain.AlertStatus, limit int) ([]domain.Alert, error) {
	query := selectAlerts
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var (
			a       domain.Alert
			data    []byte
			recs    []byte
			ackedAt sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message,
			&data, &recs, &a.Status, &a.CreatedAt, &ackedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &a.Data); err != nil {
				return nil, fmt.Errorf("unmarshal alert data: %w", err)
			}
		}
		if len(recs) > 0 {
			if err := json.Unmarshal(recs, &a.Recommendations); err != nil {
				return nil, fmt.Errorf("unmarshal alert recommendations: %w", err)
			}
		}
		if ackedAt.Valid {
			a.AcknowledgedAt = &ackedAt.Time
		}
		a.Persisted = true
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}

	s.metrics.StoreQueryDuration.WithLabelValues("alerts").Observe(time.Since(start).Seconds())
	return alerts, nil
}

const acknowledgeAlert = `
UPDATE alerts SET status = ?, acknowledged_at = ?
WHERE id = ? AND status = ?`

// Acknowledge transitions an active alert to acknowledged. Returns false when
// no active alert with that id exists.
func (s *AlertStore) Acknowledge(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, acknowledgeAlert,
		domain.AlertAcknowledged, at, id, domain.AlertActive)
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	return rows == 1, nil
}

// DeleteOlderThan removes alerts created before cutoff and returns the count.
func (s *AlertStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old alerts: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete old alerts: %w", err)
	}
	return rows, nil
}
