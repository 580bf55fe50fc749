package alert

import (
	"time"

	"github.com/banshee-data/seatsense/internal/monitoring"
	"github.com/banshee-data/seatsense/internal/timeutil"
)

// Default debounce parameters.
const (
	DefaultCooldown = 500 * time.Millisecond
	DefaultPulse    = 100 * time.Millisecond
)

// Controller fires a debounced actuator pulse when a cycle reports
// occupancy. The last trigger time is the only state carried across cycles;
// occupancy signals arriving inside the cooldown window are dropped silently
// with no queueing or catch-up pulses.
type Controller struct {
	actuator    Actuator
	clock       timeutil.Clock
	cooldown    time.Duration
	pulse       time.Duration
	lastTrigger time.Time
}

// NewController creates a controller. Non-positive cooldown or pulse values
// fall back to the defaults.
func NewController(actuator Actuator, clock timeutil.Clock, cooldown, pulse time.Duration) *Controller {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if pulse <= 0 {
		pulse = DefaultPulse
	}
	return &Controller{
		actuator: actuator,
		clock:    clock,
		cooldown: cooldown,
		pulse:    pulse,
	}
}

// OnCycle processes one cycle's occupancy flag and reports whether a pulse
// was fired. The pulse is synchronous: the output is held high for the pulse
// duration before OnCycle returns. Actuator failures are logged and leave the
// debounce state unchanged so the next cycle retries.
func (c *Controller) OnCycle(occupied bool) bool {
	if !occupied {
		return false
	}
	now := c.clock.Now()
	if !c.lastTrigger.IsZero() && now.Sub(c.lastTrigger) <= c.cooldown {
		return false
	}
	if err := c.actuator.Set(true); err != nil {
		monitoring.Logf("alert: raise actuator: %v", err)
		return false
	}
	c.clock.Sleep(c.pulse)
	if err := c.actuator.Set(false); err != nil {
		monitoring.Logf("alert: clear actuator: %v", err)
	}
	c.lastTrigger = now
	return true
}

// LastTrigger returns the time of the most recent pulse, zero if none fired.
func (c *Controller) LastTrigger() time.Time {
	return c.lastTrigger
}
