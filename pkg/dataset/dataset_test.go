package dataset

import (
	"errors"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func TestGeneratePoints(t *testing.T) {
	opts := DefaultPointOptions()
	points := GeneratePoints(opts)

	if len(points) != opts.Count {
		t.Fatalf("got %d points, want %d", len(points), opts.Count)
	}
	seen := map[string]bool{}
	for i, p := range points {
		for _, v := range []float64{p.X, p.Y, p.Z} {
			if math.Abs(v) > opts.Spread/2 {
				t.Errorf("point %d coordinate %v outside ±%v", i, v, opts.Spread/2)
			}
		}
		if p.Cluster < 0 || p.Cluster >= opts.Clusters {
			t.Errorf("point %d cluster %d outside [0, %d)", i, p.Cluster, opts.Clusters)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if points[0].ID != "P-0" {
		t.Errorf("first id = %s, want P-0", points[0].ID)
	}
}

func TestGeneratePointsDeterministic(t *testing.T) {
	opts := DefaultPointOptions()
	a, b := GeneratePoints(opts), GeneratePoints(opts)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}

	opts.Seed++
	c := GeneratePoints(opts)
	same := 0
	for i := range a {
		if a[i] == c[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced the same cloud")
	}

	if got := GeneratePoints(PointOptions{}); got != nil {
		t.Errorf("zero count produced %d points", len(got))
	}
}

func TestGenerateTerrain(t *testing.T) {
	opts := DefaultTerrainOptions()
	grid := GenerateTerrain(opts)
	n := opts.Side()
	if n != 41 || len(grid) != n*n {
		t.Fatalf("grid has %d samples, side %d, want 41x41", len(grid), n)
	}

	// Row-major: i+1 is the next column (z), i+n the next row (x).
	if grid[1].Z-grid[0].Z != opts.Spacing || grid[1].X != grid[0].X {
		t.Errorf("neighbour i+1 = %+v, want next z after %+v", grid[1], grid[0])
	}
	if grid[n].X-grid[0].X != opts.Spacing || grid[n].Z != grid[0].Z {
		t.Errorf("neighbour i+n = %+v, want next x after %+v", grid[n], grid[0])
	}

	center := grid[len(grid)/2]
	if center.X != 0 || center.Z != 0 || center.Y != 0 {
		t.Errorf("center sample = %+v, want origin at elevation 0", center)
	}
	for i, s := range grid {
		if s.Value != s.Y {
			t.Errorf("sample %d value %v != elevation %v", i, s.Value, s.Y)
		}
		if math.Abs(s.Y) > 60 {
			t.Errorf("sample %d elevation %v outside ±60", i, s.Y)
		}
	}
}

func TestGridSide(t *testing.T) {
	tests := []struct {
		count  int
		n      int
		square bool
	}{
		{0, 0, false},
		{1, 1, true},
		{9, 3, true},
		{10, 4, false},
		{1681, 41, true},
	}
	for _, tc := range tests {
		n, ok := GridSide(tc.count)
		if n != tc.n || ok != tc.square {
			t.Errorf("GridSide(%d) = %d, %v, want %d, %v", tc.count, n, ok, tc.n, tc.square)
		}
	}
}

func TestElevationRange(t *testing.T) {
	if lo, hi := ElevationRange(nil); lo != 0 || hi != 0 {
		t.Errorf("empty range = %v, %v", lo, hi)
	}
	grid := []HeightSample{{Y: 3}, {Y: -7}, {Y: 12}, {Y: 0}}
	if lo, hi := ElevationRange(grid); lo != -7 || hi != 12 {
		t.Errorf("range = %v, %v, want -7, 12", lo, hi)
	}
}

func TestNormalize(t *testing.T) {
	points := []Point3D{
		{X: 10, Y: 10, Z: 10, ID: "a", Cluster: 1},
		{X: 30, Y: 20, Z: 10, ID: "b", Cluster: 2},
	}
	out := Normalize(points, 400)

	if out[0].X != -200 || out[1].X != 200 {
		t.Errorf("x range = %v..%v, want -200..200", out[0].X, out[1].X)
	}
	if out[0].Y != -100 || out[1].Y != 100 {
		t.Errorf("y range = %v..%v, want -100..100", out[0].Y, out[1].Y)
	}
	if out[0].ID != "a" || out[1].Cluster != 2 {
		t.Error("normalize dropped ids or clusters")
	}
	if points[0].X != 10 {
		t.Error("normalize modified its input")
	}
}

func TestPointsGLBRoundTrip(t *testing.T) {
	points := []Point3D{
		{X: 1, Y: 2, Z: 3, Cluster: 4},
		{X: -1, Y: 0, Z: 0.5, Cluster: 9},
		{X: 7, Y: 8, Z: 9, Cluster: 4},
	}
	palette := []color.RGBA{{255, 0, 0, 255}, {0, 0, 255, 255}}
	path := filepath.Join(t.TempDir(), "cloud.glb")

	if err := SavePointsGLB(path, points, palette); err != nil {
		t.Fatalf("SavePointsGLB: %v", err)
	}
	loaded, err := LoadPointsGLB(path)
	if err != nil {
		t.Fatalf("LoadPointsGLB: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d points, want 3", len(loaded))
	}

	// Clusters are renumbered by primitive: cluster 4 first, then 9.
	want := []Point3D{
		{X: 1, Y: 2, Z: 3, Cluster: 0},
		{X: 7, Y: 8, Z: 9, Cluster: 0},
		{X: -1, Y: 0, Z: 0.5, Cluster: 1},
	}
	for i, w := range want {
		got := loaded[i]
		if got.X != w.X || got.Y != w.Y || got.Z != w.Z || got.Cluster != w.Cluster {
			t.Errorf("point %d = %+v, want %+v", i, got, w)
		}
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Materials) != 2 {
		t.Errorf("materials = %d, want 2", len(doc.Materials))
	}
}

func TestSaveTerrainGLB(t *testing.T) {
	grid := GenerateTerrain(TerrainOptions{Half: 2, Spacing: 10})
	n := 5
	path := filepath.Join(t.TempDir(), "terrain.glb")

	if err := SaveTerrainGLB(path, grid, n, func(i int) float64 { return grid[i].Y + 1 }); err != nil {
		t.Fatalf("SaveTerrainGLB: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltf.PrimitiveLines {
		t.Errorf("mode = %v, want lines", prim.Mode)
	}
	if got, want := doc.Accessors[*prim.Indices].Count, 4*n*(n-1); got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}

	if err := SaveTerrainGLB(path, grid[:5], n, nil); err == nil {
		t.Error("mismatched grid accepted")
	}
}

func TestLoadPointsGLBErrors(t *testing.T) {
	if _, err := LoadPointsGLB("/nonexistent/path.glb"); err == nil {
		t.Error("expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(gltf.NewDocument(), path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPointsGLB(path); !errors.Is(err, ErrNoPositions) {
		t.Errorf("err = %v, want ErrNoPositions", err)
	}

	// A position accessor pointing at a missing buffer view is an error,
	// not a panic.
	doc := positionsDocument()
	doc.Accessors[0].BufferView = gltf.Index(7)
	bad := filepath.Join(t.TempDir(), "bad.glb")
	if err := gltf.SaveBinary(doc, bad); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPointsGLB(bad); err == nil {
		t.Error("dangling buffer view accepted")
	}
}

// positionsDocument holds one POINTS primitive with two positions.
func positionsDocument() *gltf.Document {
	doc := gltf.NewDocument()
	idx := modeler.WritePosition(doc, [][3]float32{{1, 2, 3}, {4, 5, 6}})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "cloud",
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitivePoints,
			Attributes: map[string]int{gltf.POSITION: idx},
		}},
	})
	return doc
}

func TestDocumentPointsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"missing accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION] = 5
		}},
		{"no buffer view", func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = nil
		}},
		{"missing buffer view", func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = gltf.Index(7)
		}},
		{"missing buffer", func(doc *gltf.Document) {
			doc.BufferViews[0].Buffer = 3
		}},
		{"count past buffer view", func(doc *gltf.Document) {
			doc.Accessors[0].Count = 1000
		}},
		{"buffer view past data", func(doc *gltf.Document) {
			doc.BufferViews[0].ByteLength = 1 << 20
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := positionsDocument()
			tc.mutate(doc)
			if _, err := documentPoints(doc, "bad.glb"); err == nil {
				t.Error("malformed document accepted")
			}
		})
	}

	points, err := documentPoints(positionsDocument(), "ok.glb")
	if err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
	if len(points) != 2 || points[1].X != 4 || points[1].ID != "ok.glb-1" {
		t.Errorf("points = %+v", points)
	}
}
