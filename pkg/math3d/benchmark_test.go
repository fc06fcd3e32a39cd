package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Reflect(b *testing.B) {
	v := V3(1, -2, 3)
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = v.Reflect(n)
	}
}

func BenchmarkAABBIntersectRay(b *testing.B) {
	box := NewAABB(V3(0, 0, 0), V3(16, 8, 16))
	r := NewRay(V3(-10, 20, -10), V3(1, -1, 1), 1)

	for b.Loop() {
		_, _, _, _ = box.IntersectRay(r)
	}
}
