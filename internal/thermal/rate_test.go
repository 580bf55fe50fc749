package thermal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/seatsense/internal/timeutil"
)

func TestRateEstimatorFirstTickIsZero(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	r := NewRateEstimator(clock)

	assert.Zero(t, r.Tick())
	assert.Zero(t, r.FPS())
}

func TestRateEstimatorSteadyRate(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	r := NewRateEstimator(clock)

	r.Tick()
	var fps float64
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		fps = r.Tick()
	}
	assert.InDelta(t, 10.0, fps, 0.01)
}

func TestRateEstimatorRollingMean(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	r := NewRateEstimator(clock)

	r.Tick()
	clock.Advance(100 * time.Millisecond)
	r.Tick()
	clock.Advance(300 * time.Millisecond)
	fps := r.Tick()

	// mean interval (100ms+300ms)/2 = 200ms -> 5 FPS
	assert.InDelta(t, 5.0, fps, 0.01)
}

func TestRateEstimatorWindowForgetsOldIntervals(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	r := NewRateEstimator(clock)

	r.Tick()
	// one slow frame, then enough fast frames to evict it from the window
	clock.Advance(time.Second)
	r.Tick()
	var fps float64
	for i := 0; i < rateWindow; i++ {
		clock.Advance(50 * time.Millisecond)
		fps = r.Tick()
	}
	assert.InDelta(t, 20.0, fps, 0.01)
}
