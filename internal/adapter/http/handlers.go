package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/analytics"
	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
)

// envelope is the uniform success response shape.
type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	Filters   any       `json:"filters,omitempty"`
}

func (s *Server) respond(c *gin.Context, data, filters any) {
	c.JSON(http.StatusOK, envelope{
		Success:   true,
		Data:      data,
		Timestamp: s.clock.Now(),
		Filters:   filters,
	})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func filtersFromQuery(c *gin.Context) analytics.Filters {
	return analytics.Filters{
		DateRange:  c.Query("dateRange"),
		Location:   c.Query("location"),
		HazardType: c.Query("hazardType"),
	}
}

// handleGetAnalytics serves the read side: reports, social, combined, or
// cache introspection, selected by the type query parameter.
func (s *Server) handleGetAnalytics(c *gin.Context) {
	f := filtersFromQuery(c)

	switch c.DefaultQuery("type", "reports") {
	case "reports":
		snapshot, err := s.analytics.ReportAnalytics(c.Request.Context(), f)
		if err != nil {
			s.logger.Error("report analytics failed", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to compute report analytics")
			return
		}
		s.respond(c, snapshot, f)
	case "social":
		s.respond(c, s.analytics.SocialAnalytics(c.Request.Context()), nil)
	case "combined":
		combined, err := s.analytics.Combined(c.Request.Context(), f)
		if err != nil {
			s.logger.Error("combined analytics failed", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to compute combined analytics")
			return
		}
		s.respond(c, combined, f)
	case "cache":
		s.respond(c, s.analytics.CacheStatus(), nil)
	default:
		respondError(c, http.StatusBadRequest, "unknown analytics type")
	}
}

type analyticsMutation struct {
	Action     string `json:"action"`
	DateRange  string `json:"dateRange,omitempty"`
	Location   string `json:"location,omitempty"`
	HazardType string `json:"hazardType,omitempty"`
}

// handlePostAnalytics serves the mutate side: clear-cache and refresh.
func (s *Server) handlePostAnalytics(c *gin.Context) {
	var req analyticsMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "clear-cache":
		s.analytics.ClearCache()
		s.respond(c, gin.H{"cleared": true}, nil)
	case "refresh":
		s.analytics.ClearCache()
		f := analytics.Filters{DateRange: req.DateRange, Location: req.Location, HazardType: req.HazardType}
		snapshot, err := s.analytics.ReportAnalytics(c.Request.Context(), f)
		if err != nil {
			s.logger.Error("refresh failed", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to refresh analytics")
			return
		}
		s.respond(c, snapshot, f)
	case "":
		respondError(c, http.StatusBadRequest, "action is required")
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
	}
}

// handleGetAlerts serves alert reads: list, statistics, or thresholds.
func (s *Server) handleGetAlerts(c *gin.Context) {
	switch c.DefaultQuery("action", "list") {
	case "list":
		active, err := s.alerts.ActiveAlerts(c.Request.Context())
		if err != nil {
			s.logger.Error("list alerts failed", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to list alerts")
			return
		}
		if active == nil {
			active = []domain.Alert{}
		}
		s.respond(c, active, nil)
	case "statistics":
		stats, err := s.alerts.Statistics(c.Request.Context())
		if err != nil {
			s.logger.Error("alert statistics failed", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to compute alert statistics")
			return
		}
		s.respond(c, stats, nil)
	case "thresholds":
		s.respond(c, s.alerts.Thresholds(), nil)
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
	}
}

type alertMutation struct {
	Action     string                    `json:"action"`
	AlertID    string                    `json:"alertId,omitempty"`
	Thresholds *domain.ThresholdPatch    `json:"thresholds,omitempty"`
	DaysOld    int                       `json:"daysOld,omitempty"`
	Analytics  *domain.AnalyticsSnapshot `json:"analytics,omitempty"`
}

// handlePostAlerts serves alert mutations. Each action validates its own
// required fields with a 400 before touching the evaluator.
func (s *Server) handlePostAlerts(c *gin.Context) {
	var req alertMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "acknowledge":
		if req.AlertID == "" {
			respondError(c, http.StatusBadRequest, "alertId is required")
			return
		}
		if !s.alerts.Acknowledge(c.Request.Context(), req.AlertID) {
			respondError(c, http.StatusInternalServerError, "failed to acknowledge alert")
			return
		}
		s.respond(c, gin.H{"acknowledged": true}, nil)
	case "update-thresholds":
		if req.Thresholds == nil {
			respondError(c, http.StatusBadRequest, "thresholds is required")
			return
		}
		s.alerts.UpdateThresholds(*req.Thresholds)
		s.respond(c, s.alerts.Thresholds(), nil)
	case "clear-old":
		if !s.alerts.ClearOld(c.Request.Context(), req.DaysOld) {
			respondError(c, http.StatusInternalServerError, "failed to clear old alerts")
			return
		}
		s.respond(c, gin.H{"cleared": true}, nil)
	case "check-conditions":
		if req.Analytics == nil {
			respondError(c, http.StatusBadRequest, "analytics is required")
			return
		}
		fired := s.alerts.CheckConditions(c.Request.Context(), *req.Analytics)
		if fired == nil {
			fired = []domain.Alert{}
		}
		s.respond(c, fired, nil)
	case "":
		respondError(c, http.StatusBadRequest, "action is required")
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
	}
}
