package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Version identifies which forecast contract a route serves.
type Version string

const (
	VersionV1     Version = "v1"
	VersionV2     Version = "v2"
	VersionLegacy Version = "legacy"
)

// Summaries is the fixed set of forecast descriptions, coldest first.
var Summaries = []string{
	"Freezing",
	"Bracing",
	"Chilly",
	"Cool",
	"Mild",
	"Warm",
	"Balmy",
	"Hot",
	"Sweltering",
	"Scorching",
}

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day. Serialized as "YYYY-MM-DD".
type Date struct {
	t time.Time
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of calendar days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Forecast is a single v1 forecast entry.
type Forecast struct {
	Date         Date   `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	TemperatureF int    `json:"temperatureF"`
	Summary      string `json:"summary"`
}

// ForecastV2 extends Forecast with humidity (percent) and wind speed (km/h).
type ForecastV2 struct {
	Forecast
	Humidity  int `json:"humidity"`
	WindSpeed int `json:"windSpeed"`
}

// NewForecast builds an entry and fills the derived Fahrenheit value.
func NewForecast(date Date, temperatureC int, summary string) Forecast {
	return Forecast{
		Date:         date,
		TemperatureC: temperatureC,
		TemperatureF: FahrenheitFromCelsius(temperatureC),
		Summary:      summary,
	}
}

// FahrenheitFromCelsius converts using the 0.5556 approximation: 32 + round(c / 0.5556).
func FahrenheitFromCelsius(c int) int {
	return 32 + int(math.Round(float64(c)/0.5556))
}

// ToV1 drops the v2-only fields.
func ToV1(entries []ForecastV2) []Forecast {
	out := make([]Forecast, len(entries))
	for i, e := range entries {
		out[i] = e.Forecast
	}
	return out
}
