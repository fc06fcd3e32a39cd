package render

import (
	"math"

	"github.com/taigrr/diorama/pkg/math3d"
)

// MaxPitch keeps the eye away from the poles where forward and world up
// become parallel.
const MaxPitch = math.Pi/2 - 0.1

// radiusMargin is added to the half-diagonal of fitted bounds.
const radiusMargin = 0.5

// Camera orbits a target point. The eye sits on a sphere of Radius around
// Target, placed by Yaw (around world up) and Pitch (above the horizon).
type Camera struct {
	Target math3d.Vec3

	Yaw    float64 // Radians in [0, 2π)
	Pitch  float64 // Radians in [-MaxPitch, MaxPitch]
	Radius float64

	FOV float64 // Vertical field of view in radians

	MinRadius float64
	MaxRadius float64
}

// NewCamera creates a camera looking at the origin from a raised diagonal.
func NewCamera() *Camera {
	return &Camera{
		Yaw:       math.Pi / 4,
		Pitch:     math.Pi / 6,
		Radius:    40,
		FOV:       math.Pi / 3, // 60 degrees
		MinRadius: 1,
		MaxRadius: 200,
	}
}

// Eye returns the eye position in world space.
func (c *Camera) Eye() math3d.Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(math3d.V3(
		cp*math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		cp*math.Cos(c.Yaw),
	).Scale(c.Radius))
}

// Basis returns the orthonormal view basis. Right is forward × world up; when
// the two are parallel +Z stands in for world up.
func (c *Camera) Basis() (forward, right, up math3d.Vec3) {
	forward = c.Target.Sub(c.Eye()).NormalizeOr(math3d.V3(0, 0, -1))
	right = forward.Cross(math3d.Up())
	if right.Len() < math3d.Epsilon {
		right = forward.Cross(math3d.V3(0, 0, 1))
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// PrimaryRay returns the ray through the center of pixel (px, py) of a w×h
// image. Pixel rows run top to bottom. The ray carries no bounce budget; the
// scene assigns one.
func (c *Camera) PrimaryRay(px, py, w, h int) math3d.Ray {
	forward, right, up := c.Basis()
	return c.rayFrom(c.Eye(), forward, right, up, px, py, w, h)
}

func (c *Camera) rayFrom(eye, forward, right, up math3d.Vec3, px, py, w, h int) math3d.Ray {
	if w <= 0 || h <= 0 {
		return math3d.NewRay(eye, forward, 0)
	}
	aspect := float64(w) / float64(h)
	half := math.Tan(c.FOV / 2)
	u := (2*(float64(px)+0.5)/float64(w) - 1) * aspect * half
	v := (1 - 2*(float64(py)+0.5)/float64(h)) * half
	dir := forward.Add(right.Scale(u)).Add(up.Scale(v))
	return math3d.NewRay(eye, dir, 0)
}

// Rotate orbits the eye. Yaw wraps and pitch is clamped to ±MaxPitch.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.SetOrbit(c.Yaw+dYaw, c.Pitch+dPitch, c.Radius)
}

// Zoom moves the eye toward (negative delta) or away from the target,
// keeping the radius within [MinRadius, MaxRadius].
func (c *Camera) Zoom(delta float64) {
	c.SetOrbit(c.Yaw, c.Pitch, c.Radius+delta)
}

// SetOrbit places the eye directly, applying the same wrap and clamps as
// Rotate and Zoom.
func (c *Camera) SetOrbit(yaw, pitch, radius float64) {
	c.Yaw = wrapAngle(yaw)
	c.Pitch = max(-MaxPitch, min(MaxPitch, pitch))
	c.Radius = c.clampRadius(radius)
}

// FitBounds centers the orbit on box and raises MinRadius so the eye can
// never enter it.
func (c *Camera) FitBounds(box math3d.AABB) {
	c.Target = box.Center()
	c.MinRadius = box.HalfSize().Len() + radiusMargin
	if c.MaxRadius < c.MinRadius {
		c.MaxRadius = c.MinRadius * 4
	}
	c.Radius = c.clampRadius(c.Radius)
}

func (c *Camera) clampRadius(r float64) float64 {
	lo, hi := c.MinRadius, c.MaxRadius
	if hi < lo {
		hi = lo
	}
	return max(lo, min(hi, r))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
