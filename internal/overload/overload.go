// Package overload decides whether traffic admitted over a recent window has used more than
// a configured share of the rate limiter's capacity.
package overload

import (
	"time"

	"github.com/kjstillabower/weather-forecast-service/internal/traffic"
)

// Detector compares the admitted request count in Window against ThresholdPct of RPS×Window.
type Detector struct {
	Window       time.Duration
	ThresholdPct int
	RPS          int

	count func(window time.Duration) int
}

// NewDetector returns a Detector reading the process-wide traffic window. rps is 0 when
// rate limiting is disabled, which turns detection off.
func NewDetector(window time.Duration, thresholdPct, rps int) *Detector {
	return &Detector{
		Window:       window,
		ThresholdPct: thresholdPct,
		RPS:          rps,
		count:        traffic.RequestCount,
	}
}

// Enabled reports whether the detector has enough configuration to judge load.
func (d *Detector) Enabled() bool {
	return d != nil && d.RPS > 0 && d.Window > 0 && d.ThresholdPct > 0
}

// Threshold is the request count within one window above which the service is overloaded.
func (d *Detector) Threshold() float64 {
	if !d.Enabled() {
		return 0
	}
	return float64(d.RPS) * d.Window.Seconds() * float64(d.ThresholdPct) / 100
}

// RequestCount returns admitted and denied requests within the window.
func (d *Detector) RequestCount() int {
	if d == nil || d.Window <= 0 {
		return 0
	}
	return d.count(d.Window)
}

// Overloaded reports whether the window's request count is strictly above Threshold.
func (d *Detector) Overloaded() bool {
	if !d.Enabled() {
		return false
	}
	return float64(d.RequestCount()) > d.Threshold()
}
