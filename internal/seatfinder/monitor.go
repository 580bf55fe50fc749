// Package seatfinder sequences the per-cycle pipeline: acquire a sensor
// frame, validate and decode it, detect occupancy, drive the alert and render
// the visualization.
package seatfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/seatsense/internal/alert"
	"github.com/banshee-data/seatsense/internal/mlx90640"
	"github.com/banshee-data/seatsense/internal/monitoring"
	"github.com/banshee-data/seatsense/internal/render"
	"github.com/banshee-data/seatsense/internal/thermal"
	"github.com/banshee-data/seatsense/internal/timeutil"
)

// Monitor owns the pipeline and its per-cycle buffers. It is single-threaded:
// one cycle runs to completion before the next begins, and the only state
// carried across cycles lives in the alert controller and the rate estimator.
type Monitor struct {
	reader    *mlx90640.Reader
	alert     *alert.Controller
	renderer  *render.Renderer
	display   render.Display
	rate      *thermal.RateEstimator
	threshold float64
	verbose   bool

	// per-cycle buffers, reused across cycles but never across goroutines
	frame [mlx90640.FrameSize]byte
	grid  mlx90640.Grid
}

// Options configures a Monitor.
type Options struct {
	Link      mlx90640.Link
	Actuator  alert.Actuator
	Display   render.Display
	Clock     timeutil.Clock
	Renderer  *render.Renderer
	Threshold float64 // degrees Celsius; <=0 selects the default
	Cooldown  time.Duration
	Pulse     time.Duration
	Verbose   bool
}

// New assembles a Monitor from its collaborators.
func New(opts Options) *Monitor {
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = thermal.DefaultPersonThreshold
	}
	return &Monitor{
		reader:    mlx90640.NewReader(opts.Link),
		alert:     alert.NewController(opts.Actuator, clock, opts.Cooldown, opts.Pulse),
		renderer:  opts.Renderer,
		display:   opts.Display,
		rate:      thermal.NewRateEstimator(clock),
		threshold: threshold,
		verbose:   opts.Verbose,
	}
}

// Cycle executes one acquire-validate-decode-analyze-alert-render pass.
// Returned errors are cycle-local: mlx90640.ErrNoData marks a normal idle
// poll and the remaining reasons mean the frame was discarded.
func (m *Monitor) Cycle() error {
	if err := m.reader.AcquireFrame(m.frame[:]); err != nil {
		return err
	}
	if err := mlx90640.Validate(m.frame[:]); err != nil {
		return err
	}

	selfTemp, err := mlx90640.Decode(m.frame[:], &m.grid)
	if err != nil {
		return err
	}
	if m.verbose {
		monitoring.Logf("checksum ok, sensor board temperature: %.2fC", selfTemp)
	}

	det := thermal.Analyze(&m.grid, m.threshold)
	if m.alert.OnCycle(det.Occupied) {
		monitoring.Logf("vibration: seat occupied (max %.1fC at %v)", det.MaxTemp, det.Hottest)
	}

	fps := m.rate.Tick()
	img := m.renderer.Render(&m.grid, det, fps)
	if err := m.display.Present(img); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Run polls the sensor until the context is cancelled. Rejected frames are
// logged and skipped, and unexpected panics inside a cycle are converted into
// a logged skip so monitoring never stops.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m.safeCycle()
	}
}

func (m *Monitor) safeCycle() {
	defer func() {
		if r := recover(); r != nil {
			monitoring.Logf("cycle panic recovered: %v", r)
		}
	}()

	err := m.Cycle()
	switch {
	case err == nil:
	case errors.Is(err, mlx90640.ErrNoData):
		// normal idle poll, re-poll immediately
	default:
		monitoring.Logf("frame discarded: %v", err)
	}
}
