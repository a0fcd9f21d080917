// Package config handles atlas configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all atlas settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Scatter  ScatterConfig  `yaml:"scatter"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds frame rate and surface settings.
type DisplayConfig struct {
	FPS    int     `yaml:"fps"`
	Theme  string  `yaml:"theme"` // "dark" or "light"
	DPR    float64 `yaml:"dpr"`   // Device pixel ratio; 0 picks one from the surface
	Width  int     `yaml:"width"` // Window size for the desktop host
	Height int     `yaml:"height"`
	Guides bool    `yaml:"guides"` // Bounding cube and axes around the point cloud
}

// ScatterConfig holds point cloud data settings.
type ScatterConfig struct {
	Points   int     `yaml:"points"`
	Spread   float64 `yaml:"spread"`
	Clusters int     `yaml:"clusters"`
	Seed     uint64  `yaml:"seed"`
	GLB      string  `yaml:"glb"` // Load points from a glTF/GLB file instead
}

// TerrainConfig holds height grid settings.
type TerrainConfig struct {
	Half          int     `yaml:"half"` // Grid side is 2*half+1
	Spacing       float64 `yaml:"spacing"`
	WaveFrequency float64 `yaml:"wave_frequency"`
	WaveAmplitude float64 `yaml:"wave_amplitude"`
	AutoRange     bool    `yaml:"auto_range"` // Color over the grid's own elevation range
}

// SnapshotConfig holds headless rendering settings.
type SnapshotConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Supersample int `yaml:"supersample"`
	Frames      int `yaml:"frames"` // Frames to advance before capturing
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the dashboard's default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			FPS:    60,
			Theme:  "dark",
			Width:  1280,
			Height: 640,
		},
		Scatter: ScatterConfig{
			Points:   200,
			Spread:   400,
			Clusters: 5,
			Seed:     1,
		},
		Terrain: TerrainConfig{
			Half:          20,
			Spacing:       20,
			WaveFrequency: 0.1,
			WaveAmplitude: 10,
		},
		Snapshot: SnapshotConfig{
			Width:       800,
			Height:      600,
			Supersample: 2,
			Frames:      1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Display.FPS <= 0:
		return fmt.Errorf("%w: display.fps must be positive, got %d", ErrInvalid, c.Display.FPS)
	case c.Display.Theme != "dark" && c.Display.Theme != "light":
		return fmt.Errorf("%w: display.theme %q is not dark or light", ErrInvalid, c.Display.Theme)
	case c.Display.DPR < 0:
		return fmt.Errorf("%w: display.dpr must not be negative", ErrInvalid)
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Scatter.Points < 0 || c.Scatter.Clusters <= 0 || c.Scatter.Spread <= 0:
		return fmt.Errorf("%w: scatter needs points >= 0, clusters > 0 and spread > 0", ErrInvalid)
	case c.Terrain.Half < 0 || c.Terrain.Spacing <= 0:
		return fmt.Errorf("%w: terrain needs half >= 0 and spacing > 0", ErrInvalid)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 || c.Snapshot.Supersample <= 0:
		return fmt.Errorf("%w: snapshot size %dx%d x%d", ErrInvalid,
			c.Snapshot.Width, c.Snapshot.Height, c.Snapshot.Supersample)
	case c.Snapshot.Frames < 0:
		return fmt.Errorf("%w: snapshot.frames must not be negative", ErrInvalid)
	}
	return nil
}
