package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := RotateX(0.8)
	m2 := RotateY(-0.6)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := RotateX(0.8).Mul(RotateY(-0.6))
	v := V3(120, -35, 80)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkOrbitPointDirect(b *testing.B) {
	// Same transform as BenchmarkMat4MulVec3, computed with per-point trig.
	pitch, yaw := 0.8, 0.6
	v := V3(120, -35, 80)

	for b.Loop() {
		x := v.X*cosf(yaw) - v.Z*sinf(yaw)
		z := v.X*sinf(yaw) + v.Z*cosf(yaw)
		_ = v.Y*cosf(pitch) - z*sinf(pitch)
		_ = v.Y*sinf(pitch) + z*cosf(pitch)
		_ = x
	}
}
