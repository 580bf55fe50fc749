// Package alert drives the vibration motor that signals an occupied seat,
// debouncing triggers across cycles.
package alert

import (
	"fmt"
	"os"
	"strconv"

	"github.com/banshee-data/seatsense/internal/monitoring"
)

// Actuator is a single digital output.
type Actuator interface {
	// Set drives the output high (true) or low (false).
	Set(on bool) error
}

// GPIOActuator drives a vibration motor through the kernel's sysfs GPIO
// interface.
type GPIOActuator struct {
	valuePath string
}

// NewGPIOActuator exports the given GPIO pin, configures it as an output and
// returns an actuator for it. The output starts low.
func NewGPIOActuator(pin int) (*GPIOActuator, error) {
	base := fmt.Sprintf("/sys/class/gpio/gpio%d", pin)
	if _, err := os.Stat(base); os.IsNotExist(err) {
		if err := os.WriteFile("/sys/class/gpio/export", []byte(strconv.Itoa(pin)), 0o644); err != nil {
			return nil, fmt.Errorf("export gpio %d: %w", pin, err)
		}
	}
	if err := os.WriteFile(base+"/direction", []byte("out"), 0o644); err != nil {
		return nil, fmt.Errorf("set gpio %d direction: %w", pin, err)
	}
	a := &GPIOActuator{valuePath: base + "/value"}
	if err := a.Set(false); err != nil {
		return nil, err
	}
	return a, nil
}

// Set writes the output value.
func (a *GPIOActuator) Set(on bool) error {
	v := []byte("0")
	if on {
		v = []byte("1")
	}
	if err := os.WriteFile(a.valuePath, v, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.valuePath, err)
	}
	return nil
}

// LogActuator logs output transitions instead of driving hardware (dev mode).
type LogActuator struct{}

// Set logs the requested state.
func (LogActuator) Set(on bool) error {
	monitoring.Logf("actuator: %v", on)
	return nil
}
