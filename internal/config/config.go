// Package config handles viewer configuration loading and management
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/philipparndt/stlmeasure/internal/logger"
	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

// Config holds all viewer settings
type Config struct {
	Window      WindowConfig      `yaml:"window" toml:"window"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera"`
	Measurement MeasurementConfig `yaml:"measurement" toml:"measurement"`
	Watch       WatchConfig       `yaml:"watch" toml:"watch"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
}

// WindowConfig holds window and frame settings
type WindowConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Title      string `yaml:"title" toml:"title"`
	FPS        int    `yaml:"fps" toml:"fps"`
	ClearColor string `yaml:"clear_color" toml:"clear_color"` // #rrggbb
}

// CameraConfig holds camera control settings
type CameraConfig struct {
	FOV        float64           `yaml:"fov" toml:"fov"` // Degrees
	OrbitSpeed float64           `yaml:"orbit_speed" toml:"orbit_speed"`
	ZoomSpeed  float64           `yaml:"zoom_speed" toml:"zoom_speed"`
	PanSpeed   float64           `yaml:"pan_speed" toml:"pan_speed"`
	Bindings   map[string]string `yaml:"bindings,omitempty" toml:"bindings,omitempty"` // Key -> action; empty means defaults
}

// MeasurementConfig holds distance measurement settings
type MeasurementConfig struct {
	Modifier  string  `yaml:"modifier" toml:"modifier"`
	Precision int     `yaml:"precision" toml:"precision"`
	Unit      string  `yaml:"unit" toml:"unit"`
	Snap      float64 `yaml:"snap" toml:"snap"` // Model units; picks this close to a triangle corner land on it, 0 disables
}

// WatchConfig holds source file watching settings
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" toml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms" toml:"debounce_ms"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	speeds := viewer.DefaultSpeeds()
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     800,
			Title:      "stlmeasure",
			FPS:        60,
			ClearColor: "#444444",
		},
		Camera: CameraConfig{
			FOV:        45,
			OrbitSpeed: speeds.Orbit,
			ZoomSpeed:  speeds.Zoom,
			PanSpeed:   speeds.Pan,
		},
		Measurement: MeasurementConfig{
			Modifier:  "alt",
			Precision: measurement.DefaultPrecision,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 500,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS < 0 {
		errs = append(errs, fmt.Errorf("window fps %d must not be negative", c.Window.FPS))
	}
	if _, err := ParseHexColor(c.Window.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("window clear_color: %w", err))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be between 0 and 180 degrees", c.Camera.FOV))
	}
	if c.Camera.OrbitSpeed < 0 || c.Camera.ZoomSpeed < 0 || c.Camera.PanSpeed < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}
	if _, err := viewer.ParseBindings(c.Camera.Bindings); err != nil {
		errs = append(errs, fmt.Errorf("camera bindings: %w", err))
	}
	if _, err := measurement.ParseModifier(c.Measurement.Modifier); err != nil {
		errs = append(errs, fmt.Errorf("measurement modifier: %w", err))
	}
	if c.Measurement.Precision < 0 || c.Measurement.Precision > 12 {
		errs = append(errs, fmt.Errorf("measurement precision %d must be between 0 and 12", c.Measurement.Precision))
	}
	if c.Measurement.Snap < 0 {
		errs = append(errs, fmt.Errorf("measurement snap %g must not be negative", c.Measurement.Snap))
	}
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("watch debounce_ms %d must not be negative", c.Watch.DebounceMS))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging level: %w", err))
	}

	return errors.Join(errs...)
}

// ClearColor returns the parsed background colour, falling back to #444444
func (c *Config) ClearColor() color.RGBA {
	col, err := ParseHexColor(c.Window.ClearColor)
	if err != nil {
		return color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	}
	return col
}

// FOVRadians returns the vertical field of view in radians
func (c *Config) FOVRadians() float64 {
	return c.Camera.FOV * math.Pi / 180
}

// Speeds returns the camera speeds for viewer.Controls
func (c *Config) Speeds() viewer.Speeds {
	return viewer.Speeds{
		Orbit: c.Camera.OrbitSpeed,
		Zoom:  c.Camera.ZoomSpeed,
		Pan:   c.Camera.PanSpeed,
	}
}

// Bindings returns the configured key bindings, or the defaults when none are set
func (c *Config) Bindings() (viewer.Bindings, error) {
	if len(c.Camera.Bindings) == 0 {
		return viewer.DefaultBindings(), nil
	}
	return viewer.ParseBindings(c.Camera.Bindings)
}

// Modifier returns the measurement trigger modifier
func (c *Config) Modifier() (measurement.Modifier, error) {
	return measurement.ParseModifier(c.Measurement.Modifier)
}

// Format returns the distance label format
func (c *Config) Format() measurement.Format {
	return measurement.Format{
		Precision: c.Measurement.Precision,
		Unit:      c.Measurement.Unit,
	}
}

// Debounce returns the watch debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
