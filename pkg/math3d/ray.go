package math3d

// Ray is a half-line with a unit direction and a remaining bounce budget.
// A ray with Budget 0 is not traced; each reflection spawns a ray with
// Budget-1.
type Ray struct {
	Origin Vec3
	Dir    Vec3
	Budget int
}

// FallbackDir is the direction given to rays built from a degenerate vector.
var FallbackDir = Vec3{0, 0, 1}

// NewRay creates a ray, normalizing dir. A dir shorter than Epsilon becomes
// FallbackDir.
func NewRay(origin, dir Vec3, budget int) Ray {
	return Ray{Origin: origin, Dir: dir.NormalizeOr(FallbackDir), Budget: budget}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
