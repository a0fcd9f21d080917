package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/taigrr/atlas/pkg/math3d"
)

// PointOptions configures GeneratePoints.
type PointOptions struct {
	Count    int     // Number of points
	Spread   float64 // Side of the cube the points are drawn from
	Clusters int     // Number of distinct cluster ids
	Seed     uint64
}

// DefaultPointOptions matches the dashboard's scatter data: 200 points in a
// 400-unit cube across five clusters.
func DefaultPointOptions() PointOptions {
	return PointOptions{Count: 200, Spread: 400, Clusters: 5, Seed: 1}
}

// GeneratePoints draws points uniformly from a cube centered at the origin.
// The same options always produce the same cloud.
func GeneratePoints(opts PointOptions) []Point3D {
	if opts.Count <= 0 {
		return nil
	}
	clusters := max(opts.Clusters, 1)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	coord := distuv.Uniform{Min: -opts.Spread / 2, Max: opts.Spread / 2, Src: rng}

	points := make([]Point3D, opts.Count)
	for i := range points {
		points[i] = Point3D{
			ID:      fmt.Sprintf("P-%d", i),
			X:       coord.Rand(),
			Y:       coord.Rand(),
			Z:       coord.Rand(),
			Cluster: rng.IntN(clusters),
		}
	}
	return points
}

// TerrainOptions configures GenerateTerrain.
type TerrainOptions struct {
	Half    int     // Grid runs from -Half to Half on both axes
	Spacing float64 // World distance between neighboring samples
}

// DefaultTerrainOptions produces the dashboard's 41x41 grid.
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{Half: 20, Spacing: 20}
}

// Side returns the number of samples along one grid edge.
func (o TerrainOptions) Side() int {
	return 2*max(o.Half, 0) + 1
}

// GenerateTerrain builds a row-major grid of side 2*Half+1. Rows run along
// x and columns along z, so sample i+1 is the next z and i+side the next x.
func GenerateTerrain(opts TerrainOptions) []HeightSample {
	half := max(opts.Half, 0)
	grid := make([]HeightSample, 0, opts.Side()*opts.Side())
	for x := -half; x <= half; x++ {
		for z := -half; z <= half; z++ {
			fx, fz := float64(x), float64(z)
			// Radial ripple plus a cross wave.
			dist := math.Hypot(fx, fz)
			y := math.Sin(dist*0.4)*35 + math.Cos(fx*0.3)*math.Sin(fz*0.3)*25
			grid = append(grid, HeightSample{
				X:     fx * opts.Spacing,
				Z:     fz * opts.Spacing,
				Y:     y,
				Value: y,
			})
		}
	}
	return grid
}

// ElevationRange returns the lowest and highest base elevation in grid.
// An empty grid yields (0, 0).
func ElevationRange(grid []HeightSample) (lo, hi float64) {
	if len(grid) == 0 {
		return 0, 0
	}
	ys := make([]float64, len(grid))
	for i, s := range grid {
		ys[i] = s.Y
	}
	return floats.Min(ys), floats.Max(ys)
}

// Normalize recenters points on the origin and scales them uniformly so the
// largest bounding-box dimension equals spread. It returns a new slice.
func Normalize(points []Point3D, spread float64) []Point3D {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0].Position(), points[0].Position()
	for _, p := range points[1:] {
		lo = lo.Min(p.Position())
		hi = hi.Max(p.Position())
	}
	size := hi.Sub(lo)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if maxDim > 0 {
		scale = spread / maxDim
	}
	center := lo.Add(hi).Scale(0.5)
	transform := math3d.ScaleUniform(scale).Mul(math3d.Translate(center.Scale(-1)))

	out := make([]Point3D, len(points))
	for i, p := range points {
		v := transform.MulVec3(p.Position())
		out[i] = Point3D{X: v.X, Y: v.Y, Z: v.Z, Cluster: p.Cluster, ID: p.ID}
	}
	return out
}
