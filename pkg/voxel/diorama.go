package voxel

import (
	"fmt"
	"math"
)

// Layout names accepted by LayoutFunc.
const (
	LayoutDiorama = "diorama"
	LayoutFlat    = "flat"
	LayoutEmpty   = "empty"
)

// LayoutFunc returns the generator for a named built-in layout sized for an
// nx×ny×nz grid.
func LayoutFunc(name string, nx, ny, nz int) (GeneratorFunc, error) {
	switch name {
	case LayoutDiorama, "":
		return Diorama(nx, ny, nz), nil
	case LayoutFlat:
		return Flat, nil
	case LayoutEmpty:
		return func(int, int, int) Kind { return Empty }, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}

// Flat is a stone slab with a single grass layer on top.
func Flat(_, j, _ int) Kind {
	switch j {
	case 0:
		return Stone
	case 1:
		return Grass
	default:
		return Empty
	}
}

// Diorama returns the built-in scene: stone bedrock under rolling grass
// terrain, a pond, a stone path, one tree and four glowstone lamp posts.
func Diorama(nx, ny, nz int) GeneratorFunc {
	d := diorama{nx: nx, ny: ny, nz: nz}
	d.base = max(2, ny/4)
	d.pondX = float64(nx) * 0.68
	d.pondZ = float64(nz) * 0.32
	d.pondR = float64(min(nx, nz)) * 0.18
	d.pathK = nz * 2 / 3
	d.treeI = nx / 4
	d.treeK = nz * 3 / 4
	d.treeTop = d.height(d.treeI, d.treeK) + 3
	return d.at
}

type diorama struct {
	nx, ny, nz          int
	base                int
	pondX, pondZ, pondR float64
	pathK               int
	treeI, treeK        int
	treeTop             int // highest trunk voxel
}

func (d diorama) pondDist(i, k int) float64 {
	return math.Hypot(float64(i)+0.5-d.pondX, float64(k)+0.5-d.pondZ)
}

// height is the number of solid voxels in column (i, k) outside the pond.
func (d diorama) height(i, k int) int {
	if d.pondDist(i, k) < d.pondR+1.5 {
		return d.base
	}
	hill := 1.2*math.Sin(float64(i)*0.45) + 1.2*math.Cos(float64(k)*0.38) + 0.6
	h := d.base + int(math.Floor(math.Max(0, hill)))
	return min(h, max(d.ny/2, d.base))
}

func (d diorama) isLampPost(i, k int) bool {
	for _, p := range [][2]int{{1, 1}, {d.nx - 2, 1}, {1, d.nz - 2}, {d.nx - 2, d.nz - 2}} {
		if i == p[0] && k == p[1] {
			return true
		}
	}
	return false
}

func (d diorama) at(i, j, k int) Kind {
	if j == 0 {
		return Stone
	}

	if d.pondDist(i, k) < d.pondR {
		switch {
		case j < d.base-1:
			return Stone
		case j == d.base-1:
			return Water
		default:
			return Empty
		}
	}

	h := d.height(i, k)
	switch {
	case j < h-1:
		return Stone
	case j == h-1:
		if k == d.pathK {
			return Stone
		}
		return Grass
	}

	// Above the surface.
	if d.isLampPost(i, k) {
		switch j - h {
		case 0:
			return Stone
		case 1:
			return Glowstone
		}
		return Empty
	}

	if i == d.treeI && k == d.treeK && j <= d.treeTop {
		return Wood
	}
	dx, dy, dz := i-d.treeI, j-(d.treeTop+1), k-d.treeK
	if dx*dx+dy*dy+dz*dz <= 5 {
		return Grass
	}
	return Empty
}
