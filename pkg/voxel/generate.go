package voxel

import (
	"runtime"

	"github.com/alitto/pond/v2"
	"github.com/taigrr/diorama/pkg/math3d"
)

// GeneratorFunc decides the material of voxel (i, j, k). It is called from
// several goroutines at once and must not keep mutable state.
type GeneratorFunc func(i, j, k int) Kind

// Generate builds a chunk by evaluating fn for every voxel. Work is split into
// x-slabs on a pond worker pool; slabs write disjoint cells.
func Generate(nx, ny, nz int, origin, cell math3d.Vec3, fn GeneratorFunc) *Chunk {
	c := NewChunk(nx, ny, nz, origin, cell)
	if len(c.cells) == 0 {
		return c
	}

	pool := pond.NewPool(runtime.NumCPU())
	for i := range c.nx {
		pool.Submit(func() {
			for k := range c.nz {
				for j := range c.ny {
					c.cells[c.index(i, j, k)] = fn(i, j, k)
				}
			}
		})
	}

	pool.StopAndWait()
	return c
}
