package render

import (
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/sky"
	"github.com/taigrr/diorama/pkg/voxel"
)

// NormalBias lifts reflected rays off the surface they leave.
const NormalBias = 1e-4

// frame is the immutable state one rendered image is shaded against.
type frame struct {
	chunk    *voxel.Chunk
	camera   Camera
	light    sky.Light
	sky      math3d.Vec3
	ambient  float64
	maxDepth int

	eye, forward, right, up math3d.Vec3
}

func (f *frame) primaryRay(px, py, w, h int) math3d.Ray {
	r := f.camera.rayFrom(f.eye, f.forward, f.right, f.up, px, py, w, h)
	r.Budget = f.maxDepth
	return r
}

// shade traces r through the chunk. An exhausted budget or a miss returns the
// sky color. A hit is lit by Lambert diffuse plus ambient plus emission, and
// reflective materials blend in a recursive trace along the mirrored ray.
func (f *frame) shade(r math3d.Ray) math3d.Vec3 {
	if r.Budget <= 0 {
		return f.sky
	}
	hit, ok := f.chunk.Intersect(r)
	if !ok {
		return f.sky
	}

	mat := hit.Kind
	base := mat.ColorAt(hit.I, hit.J, hit.K)

	lambert := max(0, hit.Normal.Dot(f.light.Direction))
	light := f.light.Color.Scale(lambert * f.light.Intensity).Add(math3d.Gray(f.ambient))
	direct := base.Mul(light).Add(base.Scale(mat.Emissive()))

	if rf := mat.Reflectivity(); rf > 0 {
		bounce := math3d.Ray{
			Origin: hit.Point.Add(hit.Normal.Scale(NormalBias)),
			Dir:    r.Dir.Reflect(hit.Normal),
			Budget: r.Budget - 1,
		}
		direct = reflect(direct, f.shade(bounce), rf)
	}

	return direct.Clamp(0, 1)
}

// reflect blends the direct term with the reflected trace by reflectivity r.
// r <= 0 returns direct unchanged.
func reflect(direct, reflected math3d.Vec3, r float64) math3d.Vec3 {
	if r <= 0 {
		return direct
	}
	return direct.Scale(1 - r).Add(reflected.Scale(r))
}
