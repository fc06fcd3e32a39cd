package voxel

import (
	"math"

	"github.com/taigrr/diorama/pkg/math3d"
)

const (
	// DirEpsilon replaces direction components smaller than it (keeping their
	// sign, + for zero) before computing axis crossing distances.
	DirEpsilon = 1e-9

	// EntryNudge pushes the grid entry point inside the grid before the
	// entry voxel is computed.
	EntryNudge = 1e-9
)

// Hit describes the first occupied voxel a ray reaches.
type Hit struct {
	Point    math3d.Vec3 // World position on the struck face
	Normal   math3d.Vec3 // Unit axis vector of the struck face
	Kind     Kind        // Material of the voxel
	Distance float64     // Ray parameter at Point
	I, J, K  int         // Voxel coordinates
}

// Intersect marches r through the grid voxel by voxel (Amanatides–Woo DDA)
// and returns the first occupied voxel. When the ray grazes an edge or a
// corner, the crossed axis is chosen in x, y, z order.
func (c *Chunk) Intersect(r math3d.Ray) (Hit, bool) {
	if len(c.cells) == 0 {
		return Hit{}, false
	}

	tNear, _, axis, ok := c.Bounds().IntersectRay(r)
	if !ok {
		return Hit{}, false
	}

	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{guardDir(r.Dir.X), guardDir(r.Dir.Y), guardDir(r.Dir.Z)}
	org := [3]float64{c.origin.X, c.origin.Y, c.origin.Z}
	size := [3]float64{c.cell.X, c.cell.Y, c.cell.Z}
	n := [3]int{c.nx, c.ny, c.nz}

	entry := r.At(tNear + EntryNudge)
	e := [3]float64{entry.X, entry.Y, entry.Z}

	var cell, step [3]int
	var tMax, tDelta [3]float64
	for a := range 3 {
		cell[a] = clampInt(int(math.Floor((e[a]-org[a])/size[a])), 0, n[a]-1)

		var boundary float64
		if d[a] > 0 {
			step[a] = 1
			boundary = org[a] + float64(cell[a]+1)*size[a]
		} else {
			step[a] = -1
			boundary = org[a] + float64(cell[a])*size[a]
		}
		tMax[a] = (boundary - o[a]) / d[a]
		tDelta[a] = size[a] / math.Abs(d[a])
	}

	if axis < 0 {
		axis = dominantAxis(d)
	}

	t := tNear
	for {
		if kind := c.cells[c.index(cell[0], cell[1], cell[2])]; kind.Solid() {
			return Hit{
				Point:    r.At(t),
				Normal:   math3d.AxisVec(axis, -float64(step[axis])),
				Kind:     kind,
				Distance: t,
				I:        cell[0],
				J:        cell[1],
				K:        cell[2],
			}, true
		}

		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}

		cell[a] += step[a]
		if cell[a] < 0 || cell[a] >= n[a] {
			return Hit{}, false
		}
		t = tMax[a]
		tMax[a] += tDelta[a]
		axis = a
	}
}

func guardDir(v float64) float64 {
	if math.Abs(v) >= DirEpsilon {
		return v
	}
	if v < 0 {
		return -DirEpsilon
	}
	return DirEpsilon
}

func dominantAxis(d [3]float64) int {
	a := 0
	for i := 1; i < 3; i++ {
		if math.Abs(d[i]) > math.Abs(d[a]) {
			a = i
		}
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
