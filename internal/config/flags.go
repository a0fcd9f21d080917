package config

import "github.com/spf13/pflag"

// Overrides holds command-line settings that take priority over the file.
// Zero values leave the loaded setting unchanged.
type Overrides struct {
	Debug   bool
	FPS     int
	Theme   string
	Seed    uint64
	LogFile string
}

// RegisterFlags binds the override flags onto fs.
func (o *Overrides) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&o.FPS, "fps", 0, "Target frames per second")
	fs.StringVar(&o.Theme, "theme", "", "Color theme (dark or light)")
	fs.Uint64Var(&o.Seed, "seed", 0, "Seed for generated point clouds")
	fs.StringVar(&o.LogFile, "log-file", "", "Write logs to this file")
}

// ApplyOverrides applies command-line overrides to cfg.
func ApplyOverrides(cfg *Config, o Overrides) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.FPS > 0 {
		cfg.Display.FPS = o.FPS
	}
	if o.Theme != "" {
		cfg.Display.Theme = o.Theme
	}
	if o.Seed != 0 {
		cfg.Scatter.Seed = o.Seed
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
