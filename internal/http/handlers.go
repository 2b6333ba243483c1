package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-forecast-service/internal/apidoc"
	"github.com/kjstillabower/weather-forecast-service/internal/forecast"
	"github.com/kjstillabower/weather-forecast-service/internal/lifecycle"
	"github.com/kjstillabower/weather-forecast-service/internal/models"
	"github.com/kjstillabower/weather-forecast-service/internal/observability"
	"github.com/kjstillabower/weather-forecast-service/internal/overload"
	"github.com/kjstillabower/weather-forecast-service/internal/validation"
)

// HealthConfig holds thresholds for the health handler.
type HealthConfig struct {
	OverloadWindow       time.Duration
	OverloadThresholdPct int
	RateLimitRPS         int // 0 when rate limiter disabled
	RateLimitBurst       int
	Version              string
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	generator        *forecast.Generator
	docs             *apidoc.Registry // nil when docs are disabled
	healthConfig     *HealthConfig
	overload         *overload.Detector // nil when healthConfig is nil
	logger           *zap.Logger
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler. docs and healthConfig may be nil.
func NewHandler(
	generator *forecast.Generator,
	docs *apidoc.Registry,
	healthConfig *HealthConfig,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		generator:    generator,
		docs:         docs,
		healthConfig: healthConfig,
		logger:       logger,
	}
	if healthConfig != nil {
		h.overload = overload.NewDetector(healthConfig.OverloadWindow, healthConfig.OverloadThresholdPct, healthConfig.RateLimitRPS)
	}
	return h
}

// GetForecastV1 handles GET /api/v1/weatherforecast.
func (h *Handler) GetForecastV1(w http.ResponseWriter, r *http.Request) {
	if requestExpired(w, r) {
		return
	}
	entries := h.generator.GenerateV1(r.Context(), models.VersionV1, h.generator.Today())
	writeForecast(w, r, entries)
}

// GetForecastV2 handles GET /api/v2/weatherforecast?days=N.
func (h *Handler) GetForecastV2(w http.ResponseWriter, r *http.Request) {
	days, err := validation.ParseDays(r.URL.Query().Get("days"), forecast.DefaultDays)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
		return
	}
	if requestExpired(w, r) {
		return
	}
	entries := h.generator.Generate(r.Context(), models.VersionV2, days, h.generator.Today())
	writeForecast(w, r, entries)
}

// GetForecastLegacy handles GET /weatherforecast. Same body as v1, flagged deprecated.
func (h *Handler) GetForecastLegacy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Deprecation", "true")
	w.Header().Set("Link", "<"+apidoc.PathV1+`>; rel="successor-version"`)
	if requestExpired(w, r) {
		return
	}
	entries := h.generator.GenerateV1(r.Context(), models.VersionLegacy, h.generator.Today())
	writeForecast(w, r, entries)
}

// requestExpired writes 503 TIMEOUT when the deadline set by TimeoutMiddleware has passed and
// drops the response when the client went away. It reports whether the handler must stop.
func requestExpired(w http.ResponseWriter, r *http.Request) bool {
	switch err := r.Context().Err(); {
	case err == nil:
		return false
	case errors.Is(err, context.DeadlineExceeded):
		if logger := observability.LoggerFromContext(r.Context()); logger != nil {
			logger.Warn("request deadline exceeded", zap.String("path", r.URL.Path))
		}
		writeError(w, r, http.StatusServiceUnavailable, "TIMEOUT", "request timed out")
		return true
	default:
		return true
	}
}

// writeForecast writes entries unless the request expired while they were generated.
func writeForecast(w http.ResponseWriter, r *http.Request, entries interface{}) {
	if requestExpired(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetAPIDoc handles GET /swagger/{version}/swagger.json.
func (h *Handler) GetAPIDoc(w http.ResponseWriter, r *http.Request) {
	version := mux.Vars(r)["version"]
	if h.docs == nil {
		writeError(w, r, http.StatusNotFound, "DOCS_DISABLED", "api documentation is disabled")
		return
	}
	raw, err := h.docs.JSON(version)
	if errors.Is(err, apidoc.ErrUnknownVersion) {
		writeError(w, r, http.StatusNotFound, "UNKNOWN_VERSION", "no api document for version "+version)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "unable to render api document")
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

type healthResult struct {
	status     string
	statusCode int
	reason     string
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	result := h.computeHealthStatus()

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != result.status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", result.status),
			zap.String("reason", result.reason))
	}
	h.healthStatusPrev = result.status
	h.healthStatusMu.Unlock()

	checks := map[string]string{"forecastGenerator": "healthy"}
	if h.docs != nil {
		checks["apiDocs"] = "healthy"
	} else {
		checks["apiDocs"] = "disabled"
	}
	version := "dev"
	if h.healthConfig != nil && h.healthConfig.Version != "" {
		version = h.healthConfig.Version
	}
	now := time.Now()
	writeJSON(w, result.statusCode, map[string]interface{}{
		"status":    result.status,
		"service":   observability.ServiceName,
		"version":   version,
		"checks":    checks,
		"config":    h.healthConfigBlock(),
		"uptime":    lifecycle.Uptime(now).Round(time.Second).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}

// healthConfigBlock reports the limits behind the overload decision. Empty without a HealthConfig.
func (h *Handler) healthConfigBlock() map[string]interface{} {
	cfg := make(map[string]interface{})
	if h.healthConfig == nil {
		return cfg
	}
	cfg["rate_limit_rps"] = h.healthConfig.RateLimitRPS
	cfg["rate_limit_burst"] = h.healthConfig.RateLimitBurst
	cfg["overload_threshold"] = int(h.overload.Threshold())
	cfg["overload_window_seconds"] = h.healthConfig.OverloadWindow.Seconds()
	cfg["requests_in_window"] = h.overload.RequestCount()
	return cfg
}

// computeHealthStatus evaluates conditions in priority order: shutting-down > overloaded > healthy.
func (h *Handler) computeHealthStatus() healthResult {
	if lifecycle.IsShuttingDown() {
		return healthResult{"shutting-down", http.StatusServiceUnavailable, "signal"}
	}
	if h.overload.Overloaded() {
		return healthResult{"overloaded", http.StatusServiceUnavailable, "overload_threshold"}
	}
	return healthResult{"healthy", http.StatusOK, ""}
}

const contentTypeJSON = "application/json; charset=utf-8"

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope with the request correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": observability.CorrelationIDFromContext(r.Context()),
		},
	})
	if logger := observability.LoggerFromContext(r.Context()); logger != nil {
		logger.Debug("request rejected", zap.String("code", code), zap.Int("status", status))
	}
}
