// Package dashboard assembles the point cloud and terrain views into the
// two-pane layout shared by the terminal and desktop hosts.
package dashboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/config"
	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/render"
)

// LoadPoints returns the configured point cloud: the GLB file when one is
// set, otherwise generated data.
func LoadPoints(cfg *config.Config, log *zap.Logger) ([]dataset.Point3D, error) {
	if cfg.Scatter.GLB == "" {
		return dataset.GeneratePoints(dataset.PointOptions{
			Count:    cfg.Scatter.Points,
			Spread:   cfg.Scatter.Spread,
			Clusters: cfg.Scatter.Clusters,
			Seed:     cfg.Scatter.Seed,
		}), nil
	}
	points, err := dataset.LoadPointsGLB(cfg.Scatter.GLB)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	log.Info("loaded point cloud",
		zap.String("path", cfg.Scatter.GLB),
		zap.Int("points", len(points)),
	)
	return dataset.Normalize(points, cfg.Scatter.Spread), nil
}

// NewPointCloud builds the point cloud view.
func NewPointCloud(cfg *config.Config, log *zap.Logger) (*render.PointCloud, error) {
	points, err := LoadPoints(cfg, log)
	if err != nil {
		return nil, err
	}
	pc := render.NewPointCloud(points, cfg.Display.FPS)
	pc.ShowGuides = cfg.Display.Guides
	pc.GuideSize = cfg.Scatter.Spread
	return pc, nil
}

// NewTerrain builds the terrain view over a generated grid.
func NewTerrain(cfg *config.Config, log *zap.Logger) (*render.Terrain, []dataset.HeightSample, error) {
	gen := dataset.TerrainOptions{Half: cfg.Terrain.Half, Spacing: cfg.Terrain.Spacing}
	grid := dataset.GenerateTerrain(gen)

	opts := render.DefaultTerrainOptions()
	opts.Wave = render.Wave{Frequency: cfg.Terrain.WaveFrequency, Amplitude: cfg.Terrain.WaveAmplitude}
	if theme, ok := render.ThemeByName(cfg.Display.Theme); ok {
		opts.Theme = theme
	}
	if cfg.Terrain.AutoRange {
		lo, hi := dataset.ElevationRange(grid)
		// Leave room for the wave on both ends.
		amp := cfg.Terrain.WaveAmplitude
		if hi-lo+2*amp > 0 {
			opts.ElevationMin, opts.ElevationMax = lo-amp, hi+amp
		}
		log.Debug("terrain elevation range", zap.Float64("min", opts.ElevationMin), zap.Float64("max", opts.ElevationMax))
	}

	terr, err := render.NewTerrain(grid, gen.Side(), opts, cfg.Display.FPS)
	if err != nil {
		return nil, nil, fmt.Errorf("build terrain: %w", err)
	}
	return terr, grid, nil
}
