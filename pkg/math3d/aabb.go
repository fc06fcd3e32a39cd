package math3d

import "math"

// ParallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a slab.
const ParallelEpsilon = 1e-12

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfSize returns half the dimensions (extents from center).
func (b AABB) HalfSize() Vec3 {
	return b.Size().Scale(0.5)
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectRay runs the slab test against r.
//
// tNear is clamped to 0 when the origin is inside the box. axis is the slab
// (0, 1, 2) whose plane the ray crosses at tNear, or -1 when the origin is
// inside. ok is false if the ray misses or the box is entirely behind it.
func (b AABB) IntersectRay(r Ray) (tNear, tFar float64, axis int, ok bool) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)
	axis = -1

	for i := range 3 {
		o := r.Origin.Axis(i)
		d := r.Dir.Axis(i)
		lo := b.Min.Axis(i)
		hi := b.Max.Axis(i)

		if math.Abs(d) < ParallelEpsilon {
			if o < lo || o > hi {
				return 0, 0, -1, false
			}
			continue
		}

		t0 := (lo - o) / d
		t1 := (hi - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
			axis = i
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return 0, 0, -1, false
		}
	}

	if tFar < 0 {
		return 0, 0, -1, false
	}
	if tNear < 0 {
		tNear = 0
		axis = -1
	}
	return tNear, tFar, axis, true
}
