package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-forecast-service/internal/apidoc"
	"github.com/kjstillabower/weather-forecast-service/internal/models"
	"github.com/kjstillabower/weather-forecast-service/internal/observability"
)

// Route is one entry of the forecast route table.
type Route struct {
	Name    string
	Path    string
	Version models.Version
	Handler http.HandlerFunc
}

// ForecastRoutes returns the forecast route table. All routes are GET-only.
func (h *Handler) ForecastRoutes() []Route {
	return []Route{
		{Name: "GetWeatherForecastV1", Path: apidoc.PathV1, Version: models.VersionV1, Handler: h.GetForecastV1},
		{Name: "GetWeatherForecastV2", Path: apidoc.PathV2, Version: models.VersionV2, Handler: h.GetForecastV2},
		{Name: "GetWeatherForecastLegacy", Path: apidoc.PathLegacy, Version: models.VersionLegacy, Handler: h.GetForecastLegacy},
	}
}

// RouterOptions configures NewRouter. A nil RateLimiter or zero RequestTimeout disables that middleware.
type RouterOptions struct {
	RateLimiter    *rate.Limiter
	RequestTimeout time.Duration
}

// NewRouter wires system endpoints, the forecast route table and, when h has a registry,
// the documentation endpoints.
func NewRouter(h *Handler, logger *zap.Logger, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)
	router.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)

	// the legacy alias shares no prefix with the versioned routes
	forecastRouter := router.NewRoute().Subrouter()
	forecastRouter.Use(RateLimitMiddleware(opts.RateLimiter))
	if opts.RequestTimeout > 0 {
		forecastRouter.Use(TimeoutMiddleware(opts.RequestTimeout))
	}
	for _, rt := range h.ForecastRoutes() {
		forecastRouter.HandleFunc(rt.Path, rt.Handler).Methods(http.MethodGet).Name(rt.Name)
	}

	if h.docs != nil {
		router.HandleFunc("/swagger/{version}/swagger.json", h.GetAPIDoc).Methods(http.MethodGet)
		router.PathPrefix("/swagger/").Handler(apidoc.UIHandler(h.docs)).Methods(http.MethodGet)
		router.Handle("/", http.RedirectHandler("/swagger/index.html", http.StatusFound)).Methods(http.MethodGet)
	}
	return router
}
