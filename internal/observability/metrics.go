package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kjstillabower/weather-forecast-service/internal/traffic"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight.
	HTTPRequestsInFlight prometheus.Gauge

	// Response body size per route. Watch for: v2 payload growth as days increases.
	HTTPResponseSize *prometheus.HistogramVec

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// Forecast generator invocations per version (v1, v2, legacy). Legacy traffic should trend to zero.
	ForecastsGeneratedTotal *prometheus.CounterVec

	// Forecast entries produced per version.
	ForecastEntriesTotal *prometheus.CounterVec

	// Raw days parameter on v2 before clamping. Values outside 1..14 show clients relying on clamping.
	ForecastDaysRequested prometheus.Histogram

	rateLimitGaugesOnce sync.Once
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	HTTPResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpResponseSizeBytes",
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 2, 10),
		},
		[]string{"route"},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)
	ForecastsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastsGeneratedTotal",
			Help: "Total number of forecast generator invocations",
		},
		[]string{"version"},
	)
	ForecastEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastEntriesTotal",
			Help: "Total number of forecast entries generated",
		},
		[]string{"version"},
	)
	ForecastDaysRequested = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecastDaysRequested",
			Help:    "Requested v2 forecast length before clamping",
			Buckets: []float64{0, 1, 3, 5, 7, 10, 14, 30},
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight, HTTPResponseSize,
		RateLimitDeniedTotal,
		ForecastsGeneratedTotal, ForecastEntriesTotal, ForecastDaysRequested,
	)
}

// RegisterRateLimitGauges registers load and rejects gauges for the rate-limited path.
// Call from main after config load with cfg.OverloadWindow.
func RegisterRateLimitGauges(window time.Duration) {
	rateLimitGaugesOnce.Do(func() {
		registry.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "rateLimitRequestsInWindow",
					Help: "Requests hitting rate-limited path in sliding window; load/capacity planning",
				},
				func() float64 { return float64(traffic.RequestCount(window)) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "rateLimitRejectsInWindow",
					Help: "429 responses in sliding window",
				},
				func() float64 { return float64(traffic.DenialCount(window)) },
			),
		)
	})
}

// RecordForecast records one generator invocation producing entries records.
func RecordForecast(version string, entries int) {
	ForecastsGeneratedTotal.WithLabelValues(version).Inc()
	ForecastEntriesTotal.WithLabelValues(version).Add(float64(entries))
}

// RecordDaysRequested records the raw v2 days parameter.
func RecordDaysRequested(days int) {
	ForecastDaysRequested.Observe(float64(days))
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
