// Package http exposes the analytics and alert JSON API consumed by the
// dashboards, plus health, readiness, and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/analytics"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
)

// AnalyticsService is the aggregator surface the API depends on.
type AnalyticsService interface {
	ReportAnalytics(ctx context.Context, f analytics.Filters) (domain.AnalyticsSnapshot, error)
	SocialAnalytics(ctx context.Context) *domain.SocialSnapshot
	Combined(ctx context.Context, f analytics.Filters) (analytics.CombinedAnalytics, error)
	ClearCache()
	CacheStatus() analytics.CacheStatus
}

// AlertService is the evaluator surface the API depends on.
type AlertService interface {
	CheckConditions(ctx context.Context, snap domain.AnalyticsSnapshot) []domain.Alert
	ActiveAlerts(ctx context.Context) ([]domain.Alert, error)
	Acknowledge(ctx context.Context, id string) bool
	Statistics(ctx context.Context) (domain.AlertStatistics, error)
	ClearOld(ctx context.Context, daysOld int) bool
	UpdateThresholds(patch domain.ThresholdPatch)
	Thresholds() domain.Thresholds
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server wires the gin router into a managed http.Server.
type Server struct {
	httpServer *http.Server
	analytics  AnalyticsService
	alerts     AlertService
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewServer creates the API server. Routes are registered immediately.
func NewServer(
	addr string,
	analyticsSvc AnalyticsService,
	alertSvc AlertService,
	ready ReadinessChecker,
	clock clockwork.Clock,
	logger *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		analytics: analyticsSvc,
		alerts:    alertSvc,
		clock:     clock,
		logger:    logger,
	}

	router.Use(s.requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/readyz", handleReady(ready))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/analytics", s.handleGetAnalytics)
		v1.POST("/analytics", s.handlePostAnalytics)
		v1.GET("/alerts", s.handleGetAlerts)
		v1.POST("/alerts", s.handlePostAlerts)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/metrics" {
			return
		}
		s.logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
