package alert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/seatsense/internal/timeutil"
)

func newTestController(t *testing.T) (*Controller, *MockActuator, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	actuator := &MockActuator{Now: clock.Now}
	return NewController(actuator, clock, DefaultCooldown, DefaultPulse), actuator, clock
}

func TestControllerFirstOccupancyPulses(t *testing.T) {
	c, actuator, clock := newTestController(t)

	assert.True(t, c.OnCycle(true))
	assert.Equal(t, 1, actuator.Pulses())
	assert.Equal(t, clock.Now(), c.LastTrigger())

	// pulse shape: high, hold for the pulse duration, low
	transitions := actuator.Transitions()
	require.Len(t, transitions, 2)
	assert.True(t, transitions[0].On)
	assert.False(t, transitions[1].On)
	require.Len(t, clock.Sleeps(), 1)
	assert.Equal(t, DefaultPulse, clock.Sleeps()[0])
}

func TestControllerNotOccupiedDoesNothing(t *testing.T) {
	c, actuator, _ := newTestController(t)

	assert.False(t, c.OnCycle(false))
	assert.Empty(t, actuator.Transitions())
	assert.True(t, c.LastTrigger().IsZero())
}

func TestControllerDebounce(t *testing.T) {
	// events 400ms apart: one pulse; a further event 600ms later: two
	c, actuator, clock := newTestController(t)

	assert.True(t, c.OnCycle(true))
	clock.Advance(400 * time.Millisecond)
	assert.False(t, c.OnCycle(true), "second event inside cooldown must be dropped")
	assert.Equal(t, 1, actuator.Pulses())

	clock.Advance(600 * time.Millisecond)
	assert.True(t, c.OnCycle(true))
	assert.Equal(t, 2, actuator.Pulses())
}

func TestControllerCooldownBoundaryIsExclusive(t *testing.T) {
	c, actuator, clock := newTestController(t)

	assert.True(t, c.OnCycle(true))
	clock.Advance(DefaultCooldown)
	assert.False(t, c.OnCycle(true), "elapsed == cooldown must still be dropped")

	clock.Advance(time.Millisecond)
	assert.True(t, c.OnCycle(true))
	assert.Equal(t, 2, actuator.Pulses())
}

func TestControllerDroppedEventsDoNotQueue(t *testing.T) {
	c, actuator, clock := newTestController(t)

	assert.True(t, c.OnCycle(true))
	for i := 0; i < 5; i++ {
		clock.Advance(50 * time.Millisecond)
		c.OnCycle(true)
	}
	assert.Equal(t, 1, actuator.Pulses(), "suppressed events must not produce catch-up pulses")
}

func TestControllerActuatorErrorLeavesDebounceUnchanged(t *testing.T) {
	c, actuator, clock := newTestController(t)
	actuator.SetError = errors.New("gpio unavailable")

	assert.False(t, c.OnCycle(true))
	assert.True(t, c.LastTrigger().IsZero())

	// next cycle retries immediately
	clock.Advance(10 * time.Millisecond)
	assert.True(t, c.OnCycle(true))
	assert.Equal(t, 1, actuator.Pulses())
}

func TestNewControllerDefaults(t *testing.T) {
	clock := timeutil.NewMockClock(time.Time{})
	c := NewController(&MockActuator{}, clock, 0, -time.Second)
	assert.Equal(t, DefaultCooldown, c.cooldown)
	assert.Equal(t, DefaultPulse, c.pulse)
}
