package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/observability"
)

// ReportStore reads citizen hazard reports. This service never writes to the
// reports table; submissions and moderation belong to other services.
type ReportStore struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewReportStore wraps a database handle.
func NewReportStore(db *sql.DB, metrics *observability.Metrics) *ReportStore {
	return &ReportStore{db: db, metrics: metrics}
}

const selectReports = `
SELECT id, title, type, description, status, latitude, longitude, image_url, created_at, updated_at
FROM reports
WHERE created_at >= ?
ORDER BY created_at DESC
LIMIT ?`

// RecentReports returns up to limit reports created at or after since,
// newest first.
func (s *ReportStore) RecentReports(ctx context.Context, since time.Time, limit int) ([]domain.Report, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, selectReports, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var (
			r         domain.Report
			lat, lon  sql.NullFloat64
			imageURL  sql.NullString
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &r.Description, &r.Status,
			&lat, &lon, &imageURL, &r.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if lat.Valid && lon.Valid {
			r.Latitude, r.Longitude = &lat.Float64, &lon.Float64
		}
		if imageURL.Valid {
			r.ImageURL = imageURL.String
		}
		if updatedAt.Valid {
			r.UpdatedAt = &updatedAt.Time
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	s.metrics.StoreQueryDuration.WithLabelValues("reports").Observe(time.Since(start).Seconds())
	return reports, nil
}

// Ping reports whether the backing database is reachable. Used by /readyz.
func (s *ReportStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
