package http

import (
	"context"
	"sync/atomic"
	"time"
)

// requestGauge tracks requests between Begin and their returned done func, and the highest
// concurrency seen, so shutdown can drain and report.
type requestGauge struct {
	active atomic.Int64
	peak   atomic.Int64
}

// Begin marks a request active. The returned func must be called exactly once when it ends.
func (g *requestGauge) Begin() (done func()) {
	n := g.active.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			g.active.Add(-1)
		}
	}
}

func (g *requestGauge) Active() int64 { return g.active.Load() }

func (g *requestGauge) Peak() int64 { return g.peak.Load() }

// Drain polls every interval until no request is active or ctx is done.
func (g *requestGauge) Drain(ctx context.Context, interval time.Duration) error {
	if g.Active() == 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if g.Active() == 0 {
				return nil
			}
		}
	}
}

// inFlight is fed by MetricsMiddleware.
var inFlight requestGauge

// InFlightCount returns the number of requests being served.
func InFlightCount() int64 {
	return inFlight.Active()
}

// PeakInFlight returns the highest concurrent request count since start.
func PeakInFlight() int64 {
	return inFlight.Peak()
}

// WaitForInFlight blocks until in-flight requests reach zero or ctx is done.
func WaitForInFlight(ctx context.Context, checkInterval time.Duration) error {
	return inFlight.Drain(ctx, checkInterval)
}
