package render

import (
	"testing"

	"github.com/taigrr/atlas/pkg/dataset"
	"github.com/taigrr/atlas/pkg/math3d"
)

func flatCloud(points ...dataset.Point3D) *PointCloud {
	pc := NewPointCloud(points, 60)
	pc.Camera.Rotation = RotationState{}
	pc.IdleYaw = 0
	return pc
}

func TestPointCloudDepthOrder(t *testing.T) {
	points := []dataset.Point3D{
		{Z: 10, ID: "a"},
		{Z: 100, ID: "b"},
		{Z: -50, ID: "c"},
		{Z: 100, ID: "d"},
		{Z: 0, ID: "e"},
	}
	pc := flatCloud(points...)

	got := pc.Project(points, math3d.V2(0, 0))
	wantIDs := []string{"b", "d", "a", "e", "c"}
	for i, pp := range got {
		if id := points[pp.Index].ID; id != wantIDs[i] {
			t.Errorf("position %d: got %s, want %s", i, id, wantIDs[i])
		}
		if i > 0 && got[i-1].Depth < pp.Depth {
			t.Errorf("depth not descending at %d: %v < %v", i, got[i-1].Depth, pp.Depth)
		}
	}
}

func TestPointCloudCullsBehindCamera(t *testing.T) {
	points := []dataset.Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: -PointCloudFocalLength - PointCloudDistance},
		{X: 0, Y: 0, Z: -2000},
	}
	pc := flatCloud(points...)
	c := NewCanvas(200, 200, 1)

	pc.Render(c, points)
	if len(pc.drawn) != 1 || pc.drawn[0].Index != 0 {
		t.Errorf("drawn = %+v, want only point 0", pc.drawn)
	}
}

func TestPointCloudEmpty(t *testing.T) {
	pc := flatCloud()
	c := NewCanvas(50, 50, 1)
	pc.Render(c, nil)

	fb := c.Framebuffer()
	for i, px := range fb.Pixels {
		if px != c.Background {
			t.Fatalf("pixel %d = %v, want background", i, px)
		}
	}
}

func TestPointCloudDrawsDisc(t *testing.T) {
	points := []dataset.Point3D{{Cluster: 1}}
	pc := flatCloud(points...)
	c := NewCanvas(200, 200, 1)

	pc.Render(c, points)
	fb := c.Framebuffer()
	if got := fb.GetPixel(100, 100); got == c.Background {
		t.Error("center pixel not painted")
	}
	if got := fb.GetPixel(10, 10); got != c.Background {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestClusterColorWraps(t *testing.T) {
	tests := []struct {
		cluster int
		want    int
	}{
		{0, 0},
		{2, 2},
		{7, 2},
		{5, 0},
		{-1, 4},
		{-6, 4},
	}

	for _, tc := range tests {
		if got := ClusterColor(DefaultPalette, tc.cluster); got != DefaultPalette[tc.want] {
			t.Errorf("ClusterColor(%d) = %v, want palette[%d] %v", tc.cluster, got, tc.want, DefaultPalette[tc.want])
		}
	}
	if ClusterColor(DefaultPalette, 7) != ClusterColor(DefaultPalette, 2) {
		t.Error("cluster 7 and cluster 2 differ with five colors")
	}
}

func TestPointCloudPick(t *testing.T) {
	points := []dataset.Point3D{
		{X: 0, Y: 0, Z: 0, ID: "center"},
		{X: 200, Y: 0, Z: 0, ID: "right"},
	}
	pc := flatCloud(points...)
	c := NewCanvas(200, 200, 1)
	pc.Render(c, points)

	p, ok := pc.Pick(100, 100)
	if !ok || p.ID != "center" {
		t.Errorf("Pick(100, 100) = %v, %v, want center", p, ok)
	}
	if _, ok := pc.Pick(5, 190); ok {
		t.Error("Pick on empty space found a point")
	}
}

func TestPointCloudSelectOnClick(t *testing.T) {
	points := []dataset.Point3D{{ID: "P-0"}}
	pc := flatCloud(points...)
	var selected []string
	pc.OnSelect = func(p dataset.Point3D) { selected = append(selected, p.ID) }
	c := NewCanvas(200, 200, 1)
	pc.Frame(c)

	ctrl := pc.Controller()
	ctrl.PointerDown(100, 100)
	ctrl.PointerUp()
	ctrl.PointerDown(0, 0)
	ctrl.PointerUp()

	if len(selected) != 1 || selected[0] != "P-0" {
		t.Errorf("selected = %v, want [P-0]", selected)
	}
}

func TestPointCloudIdleRotation(t *testing.T) {
	pc := NewPointCloud([]dataset.Point3D{{}}, 60)
	c := NewCanvas(100, 100, 1)
	start := pc.Camera.Rotation.Yaw

	pc.Frame(c)
	if !near(pc.Camera.Rotation.Yaw, start+PointCloudIdleYaw) {
		t.Errorf("yaw after frame = %v, want %v", pc.Camera.Rotation.Yaw, start+PointCloudIdleYaw)
	}

	pc.Controller().PointerDown(0, 0)
	before := pc.Camera.Rotation
	pc.Frame(c)
	if pc.Camera.Rotation != before {
		t.Errorf("idle rotation applied while dragging: %+v -> %+v", before, pc.Camera.Rotation)
	}
}

func TestPointCloudRotationIdempotent(t *testing.T) {
	points := dataset.GeneratePoints(dataset.DefaultPointOptions())
	pc := NewPointCloud(points, 60)
	pc.IdleYaw = 0
	c := NewCanvas(300, 300, 1)

	pc.Frame(c)
	first := pc.Project(points, c.Center())
	for range 10 {
		pc.Frame(c)
	}
	again := pc.Project(points, c.Center())
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("projection %d changed: %+v -> %+v", i, first[i], again[i])
		}
	}
}

func TestPointCloudGuides(t *testing.T) {
	pc := flatCloud()
	pc.Camera.Rotation = PointCloudRotation
	pc.ShowGuides = true
	c := NewCanvas(200, 200, 1)
	pc.Render(c, nil)

	painted := 0
	for _, px := range c.Framebuffer().Pixels {
		if px != c.Background {
			painted++
		}
	}
	if painted == 0 {
		t.Error("guides drew nothing")
	}
}
