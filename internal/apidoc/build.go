package apidoc

import (
	"github.com/go-openapi/spec"

	"github.com/kjstillabower/weather-forecast-service/internal/forecast"
	"github.com/kjstillabower/weather-forecast-service/internal/models"
)

// Route paths described by the document.
const (
	PathV1     = "/api/v1/weatherforecast"
	PathV2     = "/api/v2/weatherforecast"
	PathLegacy = "/weatherforecast"
)

// Info is the per-document metadata.
type Info struct {
	Key         string
	Title       string
	Version     string
	Description string
}

// DefaultDocuments are the documents served by the service, in UI order.
var DefaultDocuments = []Info{
	{
		Key:         "v1",
		Title:       "API Versioning Demo",
		Version:     "v1",
		Description: "A simple example Go Web API - Version 1",
	},
	{
		Key:         "v2",
		Title:       "API Versioning Demo",
		Version:     "v2",
		Description: "A simple example Go Web API - Version 2 with enhanced features",
	},
}

// Build returns the unfiltered document describing every route.
func Build(info Info) *spec.Swagger {
	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			BasePath: "/",
			Produces: []string{"application/json"},
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       info.Title,
					Version:     info.Version,
					Description: info.Description,
				},
			},
			Paths: &spec.Paths{
				Paths: map[string]spec.PathItem{
					PathV1:     getItem(v1Operation()),
					PathV2:     getItem(v2Operation()),
					PathLegacy: getItem(legacyOperation()),
				},
			},
			Definitions: spec.Definitions{
				"Forecast":   forecastSchema(),
				"ForecastV2": forecastV2Schema(),
			},
			Tags: []spec.Tag{
				spec.NewTag("Weather v1", "Original forecast contract", nil),
				spec.NewTag("Weather v2", "Configurable length with humidity and wind speed", nil),
				spec.NewTag("Weather Legacy", "Unversioned alias of v1", nil),
			},
		},
	}
}

func getItem(op *spec.Operation) spec.PathItem {
	return spec.PathItem{PathItemProps: spec.PathItemProps{Get: op}}
}

func arrayOf(definition string) *spec.Response {
	return spec.NewResponse().
		WithDescription("OK").
		WithSchema(spec.ArrayProperty(spec.RefSchema("#/definitions/" + definition)))
}

func v1Operation() *spec.Operation {
	return spec.NewOperation("GetWeatherForecastV1").
		WithTags("Weather v1").
		WithSummary("Get weather forecast (v1)").
		WithDescription("Retrieves a 5-day weather forecast with random temperature and weather conditions").
		WithProduces("application/json").
		RespondsWith(200, arrayOf("Forecast"))
}

func v2Operation() *spec.Operation {
	days := spec.QueryParam("days").
		Typed("integer", "int32").
		WithDescription("Number of days to forecast; values outside 1-14 are clamped").
		WithDefault(forecast.DefaultDays).
		WithMinimum(forecast.MinDays, false).
		WithMaximum(forecast.MaxDays, false)

	return spec.NewOperation("GetWeatherForecastV2").
		WithTags("Weather v2").
		WithSummary("Get weather forecast (v2)").
		WithDescription("Retrieves weather forecast with configurable days (1-14) and additional data like humidity and wind speed").
		WithProduces("application/json").
		AddParam(days).
		RespondsWith(200, arrayOf("ForecastV2")).
		RespondsWith(400, spec.NewResponse().WithDescription("days is not an integer"))
}

func legacyOperation() *spec.Operation {
	op := spec.NewOperation("GetWeatherForecastLegacy").
		WithTags("Weather Legacy").
		WithSummary("Get weather forecast (legacy)").
		WithDescription("Legacy endpoint - use " + PathV1 + " or " + PathV2 + " instead").
		WithProduces("application/json").
		RespondsWith(200, arrayOf("Forecast"))
	op.Deprecated = true
	return op
}

func forecastSchema() spec.Schema {
	summaries := make([]interface{}, len(models.Summaries))
	for i, s := range models.Summaries {
		summaries[i] = s
	}
	s := new(spec.Schema).Typed("object", "")
	s.SetProperty("date", *spec.DateProperty())
	s.SetProperty("temperatureC", *spec.Int32Property().
		WithMinimum(forecast.MinTemperatureC, false).
		WithMaximum(forecast.MaxTemperatureC, false))
	s.SetProperty("temperatureF", *spec.Int32Property().
		WithDescription("32 + round(temperatureC / 0.5556)"))
	s.SetProperty("summary", *spec.StringProperty().WithEnum(summaries...))
	s.WithRequired("date", "temperatureC", "temperatureF", "summary")
	return *s
}

func forecastV2Schema() spec.Schema {
	s := forecastSchema()
	s.SetProperty("humidity", *spec.Int32Property().
		WithDescription("Relative humidity, percent").
		WithMinimum(0, false).
		WithMaximum(forecast.MaxHumidity, false))
	s.SetProperty("windSpeed", *spec.Int32Property().
		WithDescription("Wind speed, km/h").
		WithMinimum(0, false).
		WithMaximum(forecast.MaxWindSpeedKmh, false))
	s.WithRequired("date", "temperatureC", "temperatureF", "summary", "humidity", "windSpeed")
	return s
}
