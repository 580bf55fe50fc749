// Package thermal computes per-frame statistics and seat-occupancy detection
// over decoded temperature grids.
package thermal

import (
	"image"

	"github.com/banshee-data/seatsense/internal/mlx90640"
)

// Display scaling limits in degrees Celsius. Reported extremes are clamped
// into this range so a glitched pixel cannot blow out the color mapping.
const (
	MinTempLimit = 0
	MaxTempLimit = 300
)

// DefaultPersonThreshold is the temperature above which a pixel reads as a
// warm body.
const DefaultPersonThreshold = 30.0

// DetectionState holds the outcome of analyzing one frame. It is scoped to a
// single cycle and carries no history.
type DetectionState struct {
	// MinTemp and MaxTemp are the frame extremes, clamped to
	// [MinTempLimit, MaxTempLimit]. Analyze widens MaxTemp to MinTemp+1
	// when the frame is flat, so MaxTemp-MinTemp is always a usable span.
	MinTemp float64
	MaxTemp float64

	// Hottest is the sensor-space coordinate of the hottest pixel, valid
	// only when HottestValid is set. A frame whose pixels never rise above
	// MinTempLimit records no hottest pixel.
	Hottest      image.Point
	HottestValid bool

	// Occupied reports that a warm body was detected this frame.
	Occupied bool
}

// Analyze scans the grid once in row-major order and returns the frame's
// detection state.
//
// The running minimum starts at MaxTempLimit and the running maximum at
// MinTempLimit, so the first pixel inside the limits moves both. New extremes
// are clamped into the display range as they are recorded. Occupancy is
// flagged only at the moment a new running maximum exceeds threshold: a pixel
// above threshold that is not itself a new maximum does not trigger on its
// own, which keeps detection tied to the hottest pixel.
func Analyze(grid *mlx90640.Grid, threshold float64) DetectionState {
	state := DetectionState{
		MinTemp: MaxTempLimit,
		MaxTemp: MinTempLimit,
	}

	for i, t := range grid {
		if t < state.MinTemp {
			state.MinTemp = max(t, MinTempLimit)
		}
		if t > state.MaxTemp {
			state.MaxTemp = min(t, MaxTempLimit)
			state.Hottest = image.Pt(i%mlx90640.Width, i/mlx90640.Width)
			state.HottestValid = true
			if t > threshold {
				state.Occupied = true
			}
		}
	}

	// avoid a zero span on flat frames; downstream normalization divides
	// by MaxTemp-MinTemp
	if state.MaxTemp == state.MinTemp {
		state.MaxTemp = state.MinTemp + 1
	}

	return state
}
