package math3d

import (
	"math"
	"testing"
)

func cosf(a float64) float64 { return math.Cos(a) }
func sinf(a float64) float64 { return math.Sin(a) }

func vecNear(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestRotateMatchesOrbitFormulas(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float64
		p          Vec3
	}{
		{"identity", 0, 0, V3(1, 2, 3)},
		{"yaw only", 0, math.Pi / 2, V3(1, 0, 0)},
		{"pitch only", math.Pi / 2, 0, V3(0, 1, 0)},
		{"both", 0.8, 0.6, V3(120, -35, 80)},
		{"negative", -1.2, -2.5, V3(-40, 10, 200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Yaw about the vertical axis, then pitch about the horizontal axis.
			x := tc.p.X*math.Cos(tc.yaw) - tc.p.Z*math.Sin(tc.yaw)
			z := tc.p.X*math.Sin(tc.yaw) + tc.p.Z*math.Cos(tc.yaw)
			y := tc.p.Y*math.Cos(tc.pitch) - z*math.Sin(tc.pitch)
			z2 := tc.p.Y*math.Sin(tc.pitch) + z*math.Cos(tc.pitch)
			want := V3(x, y, z2)

			got := RotateX(tc.pitch).Mul(RotateY(-tc.yaw)).MulVec3(tc.p)
			if !vecNear(got, want, 1e-9) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestMat4Identity(t *testing.T) {
	p := V3(3, -4, 5)
	if got := Identity().MulVec3(p); got != p {
		t.Errorf("Identity().MulVec3(%v) = %v", p, got)
	}
	m := RotateX(0.3).Mul(Identity())
	if m != RotateX(0.3) {
		t.Error("M * I should equal M")
	}
}

func TestTranslateScale(t *testing.T) {
	m := ScaleUniform(2).Mul(Translate(V3(1, 1, 1)))
	got := m.MulVec3(V3(1, 2, 3))
	want := V3(4, 6, 8)
	if !vecNear(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestVec2Len(t *testing.T) {
	d := V2(4, 6).Sub(V2(1, 2))
	if d.Len() != 5 {
		t.Errorf("len = %v, want 5", d.Len())
	}
	if d.LenSq() != 25 {
		t.Errorf("lenSq = %v, want 25", d.LenSq())
	}
}
