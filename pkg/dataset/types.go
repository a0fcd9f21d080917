// Package dataset provides the plain data consumed by the atlas renderers:
// point clouds and row-major height grids, their mock generators and glTF
// import/export.
package dataset

import "github.com/taigrr/atlas/pkg/math3d"

// Point3D is one point of a cloud. Renderers only read it.
type Point3D struct {
	X, Y, Z float64
	Cluster int
	ID      string
}

// Position returns the point as a vector.
func (p Point3D) Position() math3d.Vec3 {
	return math3d.V3(p.X, p.Y, p.Z)
}

// HeightSample is one vertex of a square height grid. X and Z are its fixed
// grid position, Y its base elevation and Value the elevation the sample
// reports (equal to Y for generated terrain).
type HeightSample struct {
	X, Z  float64
	Y     float64
	Value float64
}

// GridSide returns the side of a square grid holding count samples and
// whether count is a perfect square.
func GridSide(count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	n := 0
	for n*n < count {
		n++
	}
	return n, n*n == count
}
