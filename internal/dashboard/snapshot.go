package dashboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/config"
	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/render"
)

// View names accepted by Snapshot and Export.
const (
	ViewCloud   = "cloud"
	ViewTerrain = "terrain"
)

// Snapshot renders cfg.Snapshot.Frames frames of the named view headlessly
// and returns the supersampled framebuffer.
func Snapshot(cfg *config.Config, view string, log *zap.Logger) (*render.Framebuffer, error) {
	var scene render.Scene
	switch view {
	case ViewCloud:
		pc, err := NewPointCloud(cfg, log)
		if err != nil {
			return nil, err
		}
		scene = pc
	case ViewTerrain:
		terr, _, err := NewTerrain(cfg, log)
		if err != nil {
			return nil, err
		}
		scene = terr
	default:
		return nil, fmt.Errorf("unknown view %q (want %s or %s)", view, ViewCloud, ViewTerrain)
	}

	s := cfg.Snapshot
	c := render.NewCanvas(float64(s.Width), float64(s.Height), float64(s.Supersample))
	if theme, ok := render.ThemeByName(cfg.Display.Theme); ok {
		c.Background = theme.Background
	}
	loop := render.NewLoop(c, render.WithLogger(log))
	if !loop.Start(scene.Frame) {
		return nil, fmt.Errorf("snapshot: surface unavailable")
	}
	defer loop.Stop()

	for range max(s.Frames, 1) {
		loop.Tick()
	}
	log.Debug("snapshot rendered",
		zap.String("view", view),
		zap.Uint64("frames", loop.Frames()),
	)
	return c.Framebuffer(), nil
}

// Export writes the named view as a binary glTF file. The terrain is
// displaced as it looks at time clock.
func Export(cfg *config.Config, view, path string, clock float64, log *zap.Logger) error {
	switch view {
	case ViewCloud:
		points, err := LoadPoints(cfg, log)
		if err != nil {
			return err
		}
		if err := dataset.SavePointsGLB(path, points, render.DefaultPalette); err != nil {
			return fmt.Errorf("export point cloud: %w", err)
		}
		log.Info("exported point cloud", zap.String("path", path), zap.Int("points", len(points)))
	case ViewTerrain:
		terr, grid, err := NewTerrain(cfg, log)
		if err != nil {
			return err
		}
		elevation := func(i int) float64 { return terr.Elevation(i, clock) }
		if err := dataset.SaveTerrainGLB(path, grid, terr.Side(), elevation); err != nil {
			return fmt.Errorf("export terrain: %w", err)
		}
		log.Info("exported terrain", zap.String("path", path), zap.Int("side", terr.Side()), zap.Float64("clock", clock))
	default:
		return fmt.Errorf("unknown view %q (want %s or %s)", view, ViewCloud, ViewTerrain)
	}
	return nil
}
