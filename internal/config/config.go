// Package config loads the seat-finder tuning file. Fields omitted from the
// JSON retain their defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the root configuration for the seat finder. All fields
// are optional; the Get* accessors supply defaults.
type Config struct {
	// Sensor link params
	SerialPort *string `json:"serial_port,omitempty"`
	BaudRate   *int    `json:"baud_rate,omitempty"`

	// Detection params
	PersonThreshold *float64 `json:"person_threshold,omitempty"` // degrees Celsius

	// Alert params
	VibrationPin      *int    `json:"vibration_pin,omitempty"`
	VibrationCooldown *string `json:"vibration_cooldown,omitempty"` // duration string like "500ms"
	VibrationPulse    *string `json:"vibration_pulse,omitempty"`    // duration string like "100ms"

	// Display params
	DisplayWidth  *int    `json:"display_width,omitempty"`
	DisplayHeight *int    `json:"display_height,omitempty"`
	FrameOutput   *string `json:"frame_output,omitempty"` // path for the file-backed display
}

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json extension
// and stay under the max file size.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.BaudRate != nil && *c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", *c.BaudRate)
	}

	if c.PersonThreshold != nil {
		if *c.PersonThreshold < 0 || *c.PersonThreshold > 300 {
			return fmt.Errorf("person_threshold must be between 0 and 300, got %f", *c.PersonThreshold)
		}
	}

	if c.VibrationCooldown != nil && *c.VibrationCooldown != "" {
		if _, err := time.ParseDuration(*c.VibrationCooldown); err != nil {
			return fmt.Errorf("invalid vibration_cooldown '%s': %w", *c.VibrationCooldown, err)
		}
	}

	if c.VibrationPulse != nil && *c.VibrationPulse != "" {
		if _, err := time.ParseDuration(*c.VibrationPulse); err != nil {
			return fmt.Errorf("invalid vibration_pulse '%s': %w", *c.VibrationPulse, err)
		}
	}

	if c.DisplayWidth != nil && *c.DisplayWidth <= 0 {
		return fmt.Errorf("display_width must be positive, got %d", *c.DisplayWidth)
	}
	if c.DisplayHeight != nil && *c.DisplayHeight <= 0 {
		return fmt.Errorf("display_height must be positive, got %d", *c.DisplayHeight)
	}

	return nil
}

// GetSerialPort returns the serial_port value or the default.
func (c *Config) GetSerialPort() string {
	if c.SerialPort == nil || *c.SerialPort == "" {
		return "/dev/ttyS1"
	}
	return *c.SerialPort
}

// GetBaudRate returns the baud_rate value or the default.
func (c *Config) GetBaudRate() int {
	if c.BaudRate == nil {
		return 115200
	}
	return *c.BaudRate
}

// GetPersonThreshold returns the person_threshold value or the default.
func (c *Config) GetPersonThreshold() float64 {
	if c.PersonThreshold == nil {
		return 30.0
	}
	return *c.PersonThreshold
}

// GetVibrationPin returns the vibration_pin value or the default.
func (c *Config) GetVibrationPin() int {
	if c.VibrationPin == nil {
		return 15
	}
	return *c.VibrationPin
}

// GetVibrationCooldown parses and returns the cooldown as a time.Duration.
func (c *Config) GetVibrationCooldown() time.Duration {
	if c.VibrationCooldown == nil || *c.VibrationCooldown == "" {
		return 500 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.VibrationCooldown)
	if err != nil {
		return 500 * time.Millisecond // default on parse error
	}
	return d
}

// GetVibrationPulse parses and returns the pulse width as a time.Duration.
func (c *Config) GetVibrationPulse() time.Duration {
	if c.VibrationPulse == nil || *c.VibrationPulse == "" {
		return 100 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.VibrationPulse)
	if err != nil {
		return 100 * time.Millisecond // default on parse error
	}
	return d
}

// GetDisplayWidth returns the display_width value or the default.
func (c *Config) GetDisplayWidth() int {
	if c.DisplayWidth == nil {
		return 160
	}
	return *c.DisplayWidth
}

// GetDisplayHeight returns the display_height value or the default.
func (c *Config) GetDisplayHeight() int {
	if c.DisplayHeight == nil {
		return 120
	}
	return *c.DisplayHeight
}

// GetFrameOutput returns the frame_output value or the default.
func (c *Config) GetFrameOutput() string {
	if c.FrameOutput == nil || *c.FrameOutput == "" {
		return "frame.png"
	}
	return *c.FrameOutput
}
