package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "#444444", cfg.Window.ClearColor)
	assert.Equal(t, color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}, cfg.ClearColor())
	assert.Equal(t, viewer.DefaultSpeeds(), cfg.Speeds())
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, measurement.DefaultFormat(), cfg.Format())
	assert.InDelta(t, 0.7853981, cfg.FOVRadians(), 1e-6)

	mod, err := cfg.Modifier()
	require.NoError(t, err)
	assert.Equal(t, measurement.ModAlt, mod)

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, viewer.DefaultBindings(), bindings)
}

func TestLoadYAMLMergesWithDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
window:
  width: 800
measurement:
  modifier: ctrl+shift
  unit: mm
camera:
  bindings:
    h: orbit-left
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	want := Default()
	want.Window.Width = 800
	want.Measurement.Modifier = "ctrl+shift"
	want.Measurement.Unit = "mm"
	want.Camera.Bindings = map[string]string{"h": "orbit-left"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, viewer.Bindings{"h": viewer.OrbitLeft}, bindings)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[window]
clear_color = "#202020"
fps = 30

[watch]
enabled = false
debounce_ms = 250
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	want := Default()
	want.Window.ClearColor = "#202020"
	want.Window.FPS = 30
	want.Watch = WatchConfig{Enabled: false, DebounceMS: 250}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(&Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"), Precision: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "measurement:\n  modifier: hyper\n  precision: 40\n")

	_, err := Load(&Flags{ConfigPath: path, Precision: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hyper")
	assert.Contains(t, err.Error(), "precision 40")
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "measurement:\n  precision: 2\n  unit: mm\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--config", path,
		"--debug",
		"--precision", "3",
		"--modifier", "shift",
		"--snap", "0.25",
		"--no-watch",
	}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Measurement.Precision)
	assert.Equal(t, "mm", cfg.Measurement.Unit)
	assert.Equal(t, "shift", cfg.Measurement.Modifier)
	assert.Equal(t, 0.25, cfg.Measurement.Snap)
	assert.False(t, cfg.Watch.Enabled)
}

func TestUnsetPrecisionFlagKeepsFileValue(t *testing.T) {
	path := writeFile(t, "config.yaml", "measurement:\n  precision: 0\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", path}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Measurement.Precision)
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Measurement.Unit = "in"
	cfg.Camera.Bindings = map[string]string{"x": "zoom-in"}

	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, cfg.SaveTo(path))

			loaded, err := LoadFile(path)
			require.NoError(t, err)
			if diff := cmp.Diff(cfg, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveWritesDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Measurement.Snap = 0.5
	require.NoError(t, cfg.Save())

	loaded, err := LoadFile(DefaultPath())
	require.NoError(t, err)
	assert.Equal(t, 0.5, loaded.Measurement.Snap)
}

func TestMarshalFormats(t *testing.T) {
	y, err := Default().Marshal(false)
	require.NoError(t, err)
	assert.Contains(t, string(y), "measurement:\n")

	tm, err := Default().Marshal(true)
	require.NoError(t, err)
	assert.Contains(t, string(tm), "[measurement]")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"bad colour", func(c *Config) { c.Window.ClearColor = "grey" }, "clear_color"},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }, "fov"},
		{"speed", func(c *Config) { c.Camera.PanSpeed = -1 }, "speeds"},
		{"binding", func(c *Config) { c.Camera.Bindings = map[string]string{"x": "spin"} }, "spin"},
		{"snap", func(c *Config) { c.Measurement.Snap = -1 }, "snap"},
		{"debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "debounce_ms"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#444")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}, c)

	c, err = ParseHexColor("ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, A: 0xff}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#gggggg")
	assert.Error(t, err)
}
