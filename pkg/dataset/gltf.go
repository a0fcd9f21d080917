package dataset

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/atlas/pkg/math3d"
)

// ErrNoPositions is returned when a glTF file holds no position data.
var ErrNoPositions = errors.New("dataset: no POSITION attributes found")

// LoadPointsGLB loads every vertex position of a glTF/GLB file as a point
// cloud. Each primitive becomes its own cluster, in document order.
func LoadPointsGLB(path string) ([]Point3D, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return documentPoints(doc, filepath.Base(path))
}

func documentPoints(doc *gltf.Document, base string) ([]Point3D, error) {
	var points []Point3D
	cluster := 0
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}
			for _, p := range positions {
				points = append(points, Point3D{
					X:       float64(p[0]),
					Y:       float64(p[1]),
					Z:       float64(p[2]),
					Cluster: cluster,
					ID:      fmt.Sprintf("%s-%d", base, len(points)),
				})
			}
			cluster++
		}
	}
	if len(points) == 0 {
		return nil, ErrNoPositions
	}
	return points, nil
}

// readPositions decodes a POSITION accessor after checking that every index
// it refers to exists in doc.
func readPositions(doc *gltf.Document, idx int) ([][3]float32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acr := doc.Accessors[idx]
	if acr.BufferView == nil {
		return nil, errors.New("accessor has no buffer view")
	}
	bv := *acr.BufferView
	if bv < 0 || bv >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", bv)
	}
	view := doc.BufferViews[bv]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	if acr.Count > 0 {
		size := gltf.SizeOfElement(acr.ComponentType, acr.Type)
		stride := max(view.ByteStride, size)
		end := acr.ByteOffset + (acr.Count-1)*stride + size
		if end > view.ByteLength || view.ByteOffset+view.ByteLength > len(doc.Buffers[view.Buffer].Data) {
			return nil, fmt.Errorf("accessor %d exceeds its buffer", idx)
		}
	}
	return modeler.ReadPosition(doc, acr, nil)
}

// SavePointsGLB writes points as a binary glTF with one POINTS primitive per
// cluster. Primitive k is colored palette[k mod len(palette)] when a palette
// is given.
func SavePointsGLB(path string, points []Point3D, palette []color.RGBA) error {
	if len(points) == 0 {
		return ErrNoPositions
	}
	byCluster := map[int][][3]float32{}
	var order []int
	for _, p := range points {
		if _, ok := byCluster[p.Cluster]; !ok {
			order = append(order, p.Cluster)
		}
		byCluster[p.Cluster] = append(byCluster[p.Cluster], p.Position().Float32())
	}

	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{Name: "point-cloud"}
	for k, cluster := range order {
		prim := &gltf.Primitive{
			Mode: gltf.PrimitivePoints,
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, byCluster[cluster]),
			},
		}
		if len(palette) > 0 {
			prim.Material = gltf.Index(addMaterial(doc, fmt.Sprintf("cluster-%d", cluster), palette[k%len(palette)]))
		}
		mesh.Primitives = append(mesh.Primitives, prim)
	}
	return saveMesh(doc, mesh, path)
}

// SaveTerrainGLB writes a height grid of side n as a binary glTF line mesh
// with the same right/down connectivity the terrain renderer draws. elevation
// returns the height to export for sample i.
func SaveTerrainGLB(path string, grid []HeightSample, n int, elevation func(i int) float64) error {
	if n <= 0 || len(grid) != n*n {
		return fmt.Errorf("terrain export: %d samples do not form a %dx%d grid", len(grid), n, n)
	}
	positions := make([][3]float32, len(grid))
	for i, s := range grid {
		y := s.Y
		if elevation != nil {
			y = elevation(i)
		}
		positions[i] = math3d.V3(s.X, y, s.Z).Float32()
	}

	indices := make([]uint32, 0, 4*n*(n-1))
	for i := range grid {
		row, col := i/n, i%n
		if col < n-1 {
			indices = append(indices, uint32(i), uint32(i+1))
		}
		if row < n-1 {
			indices = append(indices, uint32(i), uint32(i+n))
		}
	}

	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{
		Name: "terrain",
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveLines,
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
			},
		}},
	}
	return saveMesh(doc, mesh, path)
}

func addMaterial(doc *gltf.Document, name string, c color.RGBA) int {
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
				1,
			},
		},
	})
	return len(doc.Materials) - 1
}

func saveMesh(doc *gltf.Document, mesh *gltf.Mesh, path string) error {
	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}
