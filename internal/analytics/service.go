// Package analytics aggregates raw hazard reports into cached derived views.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/observability"
)

// ReportStore reads hazard reports from the backing store.
type ReportStore interface {
	// RecentReports returns up to limit reports created at or after since,
	// newest first.
	RecentReports(ctx context.Context, since time.Time, limit int) ([]domain.Report, error)
}

// SocialSource fetches the social media analytics view. Optional: the
// aggregator degrades to a nil snapshot when the source is absent or failing.
type SocialSource interface {
	Fetch(ctx context.Context) (*domain.SocialSnapshot, error)
}

// Filters narrows an analytics request. Only DateRange affects the aggregate
// cutoff; Location and HazardType are echoed back for display-layer filtering.
type Filters struct {
	DateRange  string `json:"dateRange,omitempty"`
	Location   string `json:"location,omitempty"`
	HazardType string `json:"hazardType,omitempty"`
}

// cutoff converts the date-range label into an absolute lower bound.
// Unknown labels fall back to the 7-day default.
func (f Filters) cutoff(now time.Time) time.Time {
	switch f.DateRange {
	case "24h":
		return now.Add(-24 * time.Hour)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default: // "7d" and anything unrecognized
		return now.AddDate(0, 0, -7)
	}
}

// cacheKey builds the cache signature for this filter set. Location and
// hazard type are included so callers that do pass them get distinct entries.
func (f Filters) cacheKey() string {
	r := f.DateRange
	if r == "" {
		r = "7d"
	}
	return fmt.Sprintf("reports:%s:%s:%s", r, f.Location, f.HazardType)
}

const socialCacheKey = "social"

// Service is the aggregator: it owns the analytics cache and computes
// snapshots on demand. Construct once at process start and share.
type Service struct {
	store      ReportStore
	social     SocialSource // nil when no social source is configured
	regions    domain.RegionMapper
	cache      *ttlCache
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
	fetchLimit int
}

// NewService creates the aggregator. social may be nil.
func NewService(
	store ReportStore,
	social SocialSource,
	regions domain.RegionMapper,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
	fetchLimit int,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		store:      store,
		social:     social,
		regions:    regions,
		cache:      newTTLCache(cacheTTL),
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
		fetchLimit: fetchLimit,
	}
}

// ReportAnalytics returns the snapshot for the given filters, recomputing on
// cache miss. Store failures propagate: dashboards must show an error state
// rather than stale-but-plausible numbers.
func (s *Service) ReportAnalytics(ctx context.Context, f Filters) (domain.AnalyticsSnapshot, error) {
	now := s.clock.Now()
	key := f.cacheKey()

	if cached, ok := s.cache.get(key, now); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached.(domain.AnalyticsSnapshot), nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	reports, err := s.store.RecentReports(ctx, f.cutoff(now), s.fetchLimit)
	if err != nil {
		return domain.AnalyticsSnapshot{}, fmt.Errorf("fetch reports: %w", err)
	}

	snapshot := domain.BuildSnapshot(reports, now, s.regions)
	s.cache.put(key, snapshot, now)

	s.metrics.SnapshotsComputed.Inc()
	s.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	s.metrics.ReportsAggregated.Observe(float64(len(reports)))
	s.logger.Debug("snapshot computed",
		"key", key,
		"reports", len(reports),
		"risk_level", snapshot.Risk.Level,
		"risk_score", snapshot.Risk.Score,
	)
	return snapshot, nil
}

// SocialAnalytics returns the social media view, or nil when the source is
// unconfigured or failing. Failures are logged, never surfaced: social data
// is a secondary signal and must not break a combined dashboard.
func (s *Service) SocialAnalytics(ctx context.Context) *domain.SocialSnapshot {
	if s.social == nil {
		return nil
	}

	now := s.clock.Now()
	if cached, ok := s.cache.get(socialCacheKey, now); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached.(*domain.SocialSnapshot)
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	snapshot, err := s.social.Fetch(ctx)
	if err != nil {
		s.metrics.SocialFetches.WithLabelValues("error").Inc()
		s.logger.Warn("social analytics fetch failed", "error", err)
		return nil
	}
	s.metrics.SocialFetches.WithLabelValues("success").Inc()
	s.cache.put(socialCacheKey, snapshot, now)
	return snapshot
}

// CombinedAnalytics holds both views for dashboards that render them together.
type CombinedAnalytics struct {
	Reports domain.AnalyticsSnapshot `json:"reports"`
	Social  *domain.SocialSnapshot   `json:"social"`
}

// Combined fetches report and social analytics concurrently. Report failure
// fails the whole call; social failure leaves Social nil.
func (s *Service) Combined(ctx context.Context, f Filters) (CombinedAnalytics, error) {
	var (
		wg       sync.WaitGroup
		snapshot domain.AnalyticsSnapshot
		social   *domain.SocialSnapshot
		err      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot, err = s.ReportAnalytics(ctx, f)
	}()
	go func() {
		defer wg.Done()
		social = s.SocialAnalytics(ctx)
	}()
	wg.Wait()

	if err != nil {
		return CombinedAnalytics{}, err
	}
	return CombinedAnalytics{Reports: snapshot, Social: social}, nil
}

// ClearCache drops every cached view unconditionally.
func (s *Service) ClearCache() {
	s.cache.clear()
	s.logger.Info("analytics cache cleared")
}

// CacheStatus reports cache contents for the introspection endpoint. Read-only.
func (s *Service) CacheStatus() CacheStatus {
	return s.cache.status(s.clock.Now())
}
