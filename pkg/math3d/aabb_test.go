package math3d

import (
	"math"
	"testing"
)

func TestAABBBasics(t *testing.T) {
	box := NewAABB(V3(-1, -2, -3), V3(1, 2, 3))

	center := box.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}

	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}

	halfSize := box.HalfSize()
	if halfSize.X != 1 || halfSize.Y != 2 || halfSize.Z != 3 {
		t.Errorf("halfSize = %v, want (1, 2, 3)", halfSize)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(V3(0, 0, 0), V3(10, 10, 10))

	tests := []struct {
		name  string
		point Vec3
		want  bool
	}{
		{"center", V3(5, 5, 5), true},
		{"corner", V3(0, 0, 0), true},
		{"far corner", V3(10, 10, 10), true},
		{"outside x", V3(11, 5, 5), false},
		{"outside neg", V3(-0.1, 5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.ContainsPoint(tc.point); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestAABBIntersectRay(t *testing.T) {
	box := NewAABB(V3(0, 0, 0), V3(4, 4, 4))

	tests := []struct {
		name     string
		ray      Ray
		wantOK   bool
		wantNear float64
		wantFar  float64
		wantAxis int
	}{
		{"from -x", NewRay(V3(-2, 1, 1), V3(1, 0, 0), 1), true, 2, 6, 0},
		{"from +y", NewRay(V3(1, 10, 1), V3(0, -1, 0), 1), true, 6, 10, 1},
		{"from -z", NewRay(V3(2, 2, -1), V3(0, 0, 1), 1), true, 1, 5, 2},
		{"inside", NewRay(V3(2, 2, 2), V3(1, 0, 0), 1), true, 0, 2, -1},
		{"pointing away", NewRay(V3(-2, 1, 1), V3(-1, 0, 0), 1), false, 0, 0, -1},
		{"parallel outside", NewRay(V3(-2, 5, 1), V3(1, 0, 0), 1), false, 0, 0, -1},
		{"miss diagonal", NewRay(V3(-2, 10, 1), V3(1, 0.1, 0), 1), false, 0, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			near, far, axis, ok := box.IntersectRay(tc.ray)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(near-tc.wantNear) > tolerance || math.Abs(far-tc.wantFar) > tolerance {
				t.Errorf("t = [%v, %v], want [%v, %v]", near, far, tc.wantNear, tc.wantFar)
			}
			if axis != tc.wantAxis {
				t.Errorf("axis = %d, want %d", axis, tc.wantAxis)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(V3(1, 1, 1), V3(0, 0, 2), 3)
	if r.Dir != V3(0, 0, 1) {
		t.Errorf("NewRay did not normalize: %v", r.Dir)
	}
	if p := r.At(2.5); !vecNear(p, V3(1, 1, 3.5), tolerance) {
		t.Errorf("At(2.5) = %v", p)
	}
}

func TestNewRayDegenerateDir(t *testing.T) {
	for _, dir := range []Vec3{Zero3(), V3(1e-14, 0, -1e-14)} {
		r := NewRay(Zero3(), dir, 1)
		if r.Dir != FallbackDir {
			t.Errorf("NewRay(%v).Dir = %v, want %v", dir, r.Dir, FallbackDir)
		}
		if math.Abs(r.Dir.Len()-1) > tolerance {
			t.Errorf("fallback length = %v, want 1", r.Dir.Len())
		}
	}
}
