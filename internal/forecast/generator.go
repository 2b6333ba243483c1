package forecast

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-forecast-service/internal/models"
	"github.com/kjstillabower/weather-forecast-service/internal/observability"
)

const (
	MinDays     = 1
	MaxDays     = 14
	DefaultDays = 5

	MinTemperatureC = -20
	MaxTemperatureC = 54
	MaxHumidity     = 100
	MaxWindSpeedKmh = 49
)

// Generator produces synthetic forecasts. Safe for concurrent use when its Source is.
type Generator struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for Today and the logged request time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator returns a Generator drawing from source. logger is used when the request
// context carries no logger of its own.
func NewGenerator(source Source, logger *zap.Logger, opts ...Option) *Generator {
	if source == nil {
		source = NewSource()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		source: source,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the current calendar date according to the generator clock.
func (g *Generator) Today() models.Date {
	return models.DateOf(g.now())
}

// ClampDays saturates n into [MinDays, MaxDays].
func ClampDays(n int) int {
	return min(max(n, MinDays), MaxDays)
}

// Generate returns forecasts for version starting the day after baseDate.
// v1 and legacy always produce DefaultDays entries and leave Humidity and WindSpeed zero;
// v2 produces ClampDays(count) entries.
func (g *Generator) Generate(ctx context.Context, version models.Version, count int, baseDate models.Date) []models.ForecastV2 {
	days := DefaultDays
	if version == models.VersionV2 {
		days = ClampDays(count)
	}
	g.logRequest(ctx, version, count, days)

	out := make([]models.ForecastV2, days)
	for i := range out {
		entry := models.ForecastV2{
			Forecast: models.NewForecast(
				baseDate.AddDays(i+1),
				g.source.Intn(MinTemperatureC, MaxTemperatureC),
				models.Summaries[g.source.Intn(0, len(models.Summaries)-1)],
			),
		}
		if version == models.VersionV2 {
			entry.Humidity = g.source.Intn(0, MaxHumidity)
			entry.WindSpeed = g.source.Intn(0, MaxWindSpeedKmh)
		}
		out[i] = entry
	}

	observability.RecordForecast(string(version), days)
	if version == models.VersionV2 {
		observability.RecordDaysRequested(count)
	}
	return out
}

// GenerateV1 is Generate projected onto the v1 shape. Used by the v1 and legacy routes.
func (g *Generator) GenerateV1(ctx context.Context, version models.Version, baseDate models.Date) []models.Forecast {
	return models.ToV1(g.Generate(ctx, version, DefaultDays, baseDate))
}

func (g *Generator) logRequest(ctx context.Context, version models.Version, requested, days int) {
	logger := observability.LoggerFromContext(ctx)
	if logger == nil {
		logger = g.logger
	}
	requestTime := zap.Time("request_time", g.now())
	switch version {
	case models.VersionV2:
		logger.Info("weather forecast v2 requested",
			zap.Int("days", days),
			zap.Int("requested_days", requested),
			requestTime)
	case models.VersionLegacy:
		logger.Info("legacy weather forecast endpoint accessed, serving v1 shape", requestTime)
	default:
		logger.Info("weather forecast v1 requested", requestTime)
	}
}
