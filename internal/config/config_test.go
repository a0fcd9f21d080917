package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Display.FPS)
	}
	if cfg.Display.Theme != "dark" {
		t.Errorf("expected theme dark, got %s", cfg.Display.Theme)
	}
	if cfg.Scatter.Points != 200 || cfg.Scatter.Clusters != 5 || cfg.Scatter.Spread != 400 {
		t.Errorf("unexpected scatter defaults: %+v", cfg.Scatter)
	}
	if cfg.Terrain.Half != 20 || cfg.Terrain.Spacing != 20 {
		t.Errorf("unexpected terrain defaults: %+v", cfg.Terrain)
	}
	if cfg.Terrain.WaveFrequency != 0.1 || cfg.Terrain.WaveAmplitude != 10 {
		t.Errorf("unexpected wave defaults: %+v", cfg.Terrain)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
display:
  fps: 30
  theme: light
  dpr: 2

scatter:
  points: 500
  seed: 42
  glb: cloud.glb

terrain:
  half: 10
  auto_range: true

logging:
  level: "debug"
  log_file: "atlas.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, used, err := Load(configPath, Overrides{})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if used != configPath {
		t.Errorf("expected path %s, got %s", configPath, used)
	}

	if cfg.Display.FPS != 30 || cfg.Display.Theme != "light" || cfg.Display.DPR != 2 {
		t.Errorf("display not loaded: %+v", cfg.Display)
	}
	if cfg.Scatter.Points != 500 || cfg.Scatter.Seed != 42 || cfg.Scatter.GLB != "cloud.glb" {
		t.Errorf("scatter not loaded: %+v", cfg.Scatter)
	}
	if cfg.Terrain.Half != 10 || !cfg.Terrain.AutoRange {
		t.Errorf("terrain not loaded: %+v", cfg.Terrain)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "atlas.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}

	// Unset keys keep their defaults.
	if cfg.Scatter.Clusters != 5 {
		t.Errorf("expected default clusters 5, got %d", cfg.Scatter.Clusters)
	}
	if cfg.Terrain.Spacing != 20 {
		t.Errorf("expected default spacing 20, got %v", cfg.Terrain.Spacing)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{})
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("display: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path, Overrides{}); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestOverrides(t *testing.T) {
	var o Overrides
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.RegisterFlags(fs)
	if err := fs.Parse([]string{"--debug", "--fps", "24", "--theme", "light", "--seed", "7"}); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	ApplyOverrides(cfg, o)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Display.FPS != 24 || cfg.Display.Theme != "light" || cfg.Scatter.Seed != 7 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Display, cfg.Scatter)
	}

	// Zero overrides change nothing.
	before := *cfg
	ApplyOverrides(cfg, Overrides{})
	if *cfg != before {
		t.Error("empty overrides modified the config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"unknown theme", func(c *Config) { c.Display.Theme = "neon" }},
		{"negative dpr", func(c *Config) { c.Display.DPR = -1 }},
		{"zero clusters", func(c *Config) { c.Scatter.Clusters = 0 }},
		{"zero spacing", func(c *Config) { c.Terrain.Spacing = 0 }},
		{"zero supersample", func(c *Config) { c.Snapshot.Supersample = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Display.Theme = "light"
	cfg.Terrain.Half = 8
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, _, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}
