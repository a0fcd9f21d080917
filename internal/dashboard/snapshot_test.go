package dashboard

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/config"
	"github.com/taigrr/atlas/pkg/dataset"
)

func TestSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Width, cfg.Snapshot.Height = 120, 80
	cfg.Snapshot.Supersample = 2
	cfg.Terrain.Half = 4

	for _, view := range []string{ViewCloud, ViewTerrain} {
		t.Run(view, func(t *testing.T) {
			fb, err := Snapshot(cfg, view, zap.NewNop())
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if fb.Width != 240 || fb.Height != 160 {
				t.Errorf("framebuffer = %dx%d, want 240x160", fb.Width, fb.Height)
			}
			bg := fb.GetPixel(0, 0)
			painted := 0
			for _, px := range fb.Pixels {
				if px != bg {
					painted++
				}
			}
			if painted == 0 {
				t.Error("snapshot is blank")
			}

			path := filepath.Join(t.TempDir(), view+".png")
			if err := fb.SavePNGScaled(path, cfg.Snapshot.Width, cfg.Snapshot.Height); err != nil {
				t.Errorf("SavePNGScaled: %v", err)
			}
		})
	}

	if _, err := Snapshot(cfg, "bars", zap.NewNop()); err == nil {
		t.Error("unknown view accepted")
	}
}

func TestExport(t *testing.T) {
	cfg := config.Default()
	cfg.Scatter.Points = 30
	cfg.Terrain.Half = 3
	dir := t.TempDir()

	cloud := filepath.Join(dir, "cloud.glb")
	if err := Export(cfg, ViewCloud, cloud, 0, zap.NewNop()); err != nil {
		t.Fatalf("export cloud: %v", err)
	}
	points, err := dataset.LoadPointsGLB(cloud)
	if err != nil {
		t.Fatalf("reload cloud: %v", err)
	}
	if len(points) != 30 {
		t.Errorf("reloaded %d points, want 30", len(points))
	}

	// A loaded cloud is normalised to the configured spread.
	cfg.Scatter.GLB = cloud
	loaded, err := LoadPoints(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadPoints: %v", err)
	}
	if len(loaded) != 30 {
		t.Errorf("LoadPoints returned %d points", len(loaded))
	}

	terrain := filepath.Join(dir, "terrain.glb")
	if err := Export(cfg, ViewTerrain, terrain, 1.5, zap.NewNop()); err != nil {
		t.Fatalf("export terrain: %v", err)
	}

	if err := Export(cfg, "bars", filepath.Join(dir, "x.glb"), 0, zap.NewNop()); err == nil {
		t.Error("unknown view accepted")
	}
}
