package models

import (
	"errors"
	"math"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/voxel"
)

// ErrEmptyMesh is returned when a mesh has no triangles to voxelize.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// DefaultKind fills faces that carry no material.
const DefaultKind = voxel.Stone

// KindOf picks the voxel material for m: a material named after a kind maps
// to it directly, anything else to the kind with the closest base color.
func KindOf(m *Material) voxel.Kind {
	if m == nil {
		return DefaultKind
	}
	if k, err := voxel.ParseKind(m.Name); err == nil && k.Solid() {
		return k
	}

	c := math3d.V3(m.BaseColor[0], m.BaseColor[1], m.BaseColor[2])
	best, bestDist := DefaultKind, math.Inf(1)
	for _, k := range voxel.Kinds {
		if d := k.Base().Sub(c).LenSq(); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// FitTransform maps the mesh bounds into a grid of n cells of size cell with
// uniform scale. The model is centered in x and z and rests on y = 0 of the
// grid; flat axes do not constrain the scale.
func FitTransform(bounds math3d.AABB, n [3]int, origin, cell math3d.Vec3) math3d.Mat4 {
	size := bounds.Size()
	extent := math3d.V3(float64(n[0]), float64(n[1]), float64(n[2])).Mul(cell)

	s := math.Inf(1)
	for a := range 3 {
		if size.Axis(a) > math3d.Epsilon {
			s = min(s, extent.Axis(a)/size.Axis(a))
		}
	}
	if math.IsInf(s, 1) {
		s = 1
	}

	scaled := size.Scale(s)
	offset := math3d.V3(
		origin.X+(extent.X-scaled.X)/2,
		origin.Y,
		origin.Z+(extent.Z-scaled.Z)/2,
	)
	return math3d.Translate(offset).
		Mul(math3d.ScaleUniform(s)).
		Mul(math3d.Translate(bounds.Min.Negate()))
}

// Voxelize rasterizes the surface of m into a new nx×ny×nz chunk. Every
// triangle is sampled on a barycentric lattice finer than half a cell, so
// thin shells come out watertight at grid resolution.
func Voxelize(m *Mesh, nx, ny, nz int, origin, cell math3d.Vec3) (*voxel.Chunk, error) {
	if m.TriangleCount() == 0 {
		return nil, ErrEmptyMesh
	}

	chunk := voxel.NewChunk(nx, ny, nz, origin, cell)
	cell = chunk.CellSize()
	fitted := m.Clone()
	fitted.CalculateBounds()
	fitted.Transform(FitTransform(fitted.Bounds(), [3]int{nx, ny, nz}, origin, cell))

	spacing := min(cell.X, cell.Y, cell.Z) / 2
	for i := range fitted.Faces {
		kind := KindOf(fitted.GetMaterial(fitted.Faces[i].Material))
		a, b, c := fitted.Triangle(i)
		ab, ac := b.Sub(a), c.Sub(a)

		longest := max(ab.Len(), ac.Len(), c.Sub(b).Len())
		steps := max(1, int(math.Ceil(longest/spacing)))
		for u := 0; u <= steps; u++ {
			for v := 0; u+v <= steps; v++ {
				p := a.Add(ab.Scale(float64(u) / float64(steps))).Add(ac.Scale(float64(v) / float64(steps)))
				ci, cj, ck := chunk.CellOf(p)
				chunk.Set(clamp(ci, nx), clamp(cj, ny), clamp(ck, nz), kind)
			}
		}
	}
	return chunk, nil
}

// clamp pulls points on the far grid faces back into the last cell.
func clamp(v, n int) int {
	return max(0, min(n-1, v))
}
