package thermal

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/seatsense/internal/timeutil"
)

// rateWindow is the number of recent cycle intervals averaged into the
// frame-rate estimate.
const rateWindow = 16

// RateEstimator tracks a rolling frames-per-second estimate. It is owned by
// the cycle orchestrator and updated exactly once per rendered frame.
type RateEstimator struct {
	clock     timeutil.Clock
	last      time.Time
	intervals [rateWindow]float64 // seconds per frame, ring buffer
	next      int
	filled    int
}

// NewRateEstimator creates an estimator using the given clock.
func NewRateEstimator(clock timeutil.Clock) *RateEstimator {
	return &RateEstimator{clock: clock}
}

// Tick records the completion of one cycle and returns the current estimate
// in frames per second. The first call establishes the baseline and returns 0.
func (r *RateEstimator) Tick() float64 {
	now := r.clock.Now()
	if r.last.IsZero() {
		r.last = now
		return 0
	}

	interval := now.Sub(r.last).Seconds()
	r.last = now
	if interval <= 0 {
		return r.FPS()
	}

	r.intervals[r.next] = interval
	r.next = (r.next + 1) % rateWindow
	if r.filled < rateWindow {
		r.filled++
	}
	return r.FPS()
}

// FPS returns the current estimate without recording a cycle.
func (r *RateEstimator) FPS() float64 {
	if r.filled == 0 {
		return 0
	}
	mean := stat.Mean(r.intervals[:r.filled], nil)
	if mean <= 0 {
		return 0
	}
	return 1 / mean
}
