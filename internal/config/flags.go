package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the config untouched
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Width      int
	Height     int
	Modifier   string
	Precision  int
	Unit       string
	Snap       float64
	NoWatch    bool
}

// BindFlags registers the config flags on fs
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.Modifier, "modifier", "", "Modifier key that turns a click into a measurement pick (alt, ctrl, shift, super)")
	fs.IntVar(&f.Precision, "precision", -1, "Decimals shown in distance labels")
	fs.StringVar(&f.Unit, "unit", "", "Unit appended to distance labels")
	fs.Float64Var(&f.Snap, "snap", -1, "Snap picks onto triangle corners within this distance (0 disables)")
	fs.BoolVar(&f.NoWatch, "no-watch", false, "Do not reload the model when the source file changes")
	return f
}

// apply applies CLI flag overrides to the config
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.File = f.LogFile
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Modifier != "" {
		cfg.Measurement.Modifier = f.Modifier
	}
	if f.Precision >= 0 {
		cfg.Measurement.Precision = f.Precision
	}
	if f.Unit != "" {
		cfg.Measurement.Unit = f.Unit
	}
	if f.Snap >= 0 {
		cfg.Measurement.Snap = f.Snap
	}
	if f.NoWatch {
		cfg.Watch.Enabled = false
	}
}
