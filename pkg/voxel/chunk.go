package voxel

import "github.com/taigrr/diorama/pkg/math3d"

// Chunk is a dense 3D grid of voxels placed in world space.
//
// A chunk is filled once at setup (Set, Fill or Generate) and is read-only
// afterwards, so any number of goroutines may intersect it concurrently.
type Chunk struct {
	nx, ny, nz int
	origin     math3d.Vec3
	cell       math3d.Vec3
	cells      []Kind // index i + nx*(j + ny*k)
}

// NewChunk creates an empty chunk of nx×ny×nz voxels whose (0,0,0) corner is
// at origin. Non-positive dimensions produce an empty grid. Non-positive
// cell size components default to 1.
func NewChunk(nx, ny, nz int, origin, cell math3d.Vec3) *Chunk {
	nx, ny, nz = max(nx, 0), max(ny, 0), max(nz, 0)
	if cell.X <= 0 {
		cell.X = 1
	}
	if cell.Y <= 0 {
		cell.Y = 1
	}
	if cell.Z <= 0 {
		cell.Z = 1
	}
	return &Chunk{
		nx:     nx,
		ny:     ny,
		nz:     nz,
		origin: origin,
		cell:   cell,
		cells:  make([]Kind, nx*ny*nz),
	}
}

// Dims returns the grid dimensions in voxels.
func (c *Chunk) Dims() (nx, ny, nz int) {
	return c.nx, c.ny, c.nz
}

// Origin returns the world position of the grid's minimum corner.
func (c *Chunk) Origin() math3d.Vec3 {
	return c.origin
}

// CellSize returns the per-axis voxel size.
func (c *Chunk) CellSize() math3d.Vec3 {
	return c.cell
}

// Bounds returns the world-space box covered by the grid.
func (c *Chunk) Bounds() math3d.AABB {
	ext := math3d.V3(float64(c.nx), float64(c.ny), float64(c.nz)).Mul(c.cell)
	return math3d.NewAABB(c.origin, c.origin.Add(ext))
}

// InBounds reports whether (i, j, k) addresses a voxel of the grid.
func (c *Chunk) InBounds(i, j, k int) bool {
	return i >= 0 && i < c.nx && j >= 0 && j < c.ny && k >= 0 && k < c.nz
}

func (c *Chunk) index(i, j, k int) int {
	return i + c.nx*(j+c.ny*k)
}

// At returns the voxel at (i, j, k). Coordinates outside the grid are Empty.
func (c *Chunk) At(i, j, k int) Kind {
	if !c.InBounds(i, j, k) {
		return Empty
	}
	return c.cells[c.index(i, j, k)]
}

// Set stores kind at (i, j, k). Out-of-bounds writes are ignored.
func (c *Chunk) Set(i, j, k int, kind Kind) {
	if !c.InBounds(i, j, k) {
		return
	}
	c.cells[c.index(i, j, k)] = kind
}

// Fill sets every voxel of the inclusive box [i0..i1]×[j0..j1]×[k0..k1].
func (c *Chunk) Fill(i0, j0, k0, i1, j1, k1 int, kind Kind) {
	for k := max(min(k0, k1), 0); k <= min(max(k0, k1), c.nz-1); k++ {
		for j := max(min(j0, j1), 0); j <= min(max(j0, j1), c.ny-1); j++ {
			for i := max(min(i0, i1), 0); i <= min(max(i0, i1), c.nx-1); i++ {
				c.cells[c.index(i, j, k)] = kind
			}
		}
	}
}

// Count returns the number of occupied voxels.
func (c *Chunk) Count() int {
	n := 0
	for _, k := range c.cells {
		if k.Solid() {
			n++
		}
	}
	return n
}

// CountKind returns the number of voxels holding kind.
func (c *Chunk) CountKind(kind Kind) int {
	n := 0
	for _, k := range c.cells {
		if k == kind {
			n++
		}
	}
	return n
}

// CellCenter returns the world position of the center of voxel (i, j, k).
func (c *Chunk) CellCenter(i, j, k int) math3d.Vec3 {
	idx := math3d.V3(float64(i)+0.5, float64(j)+0.5, float64(k)+0.5)
	return c.origin.Add(idx.Mul(c.cell))
}

// CellOf returns the integer coordinates of the voxel containing p. The
// result may lie outside the grid.
func (c *Chunk) CellOf(p math3d.Vec3) (i, j, k int) {
	local := p.Sub(c.origin)
	f := math3d.V3(local.X/c.cell.X, local.Y/c.cell.Y, local.Z/c.cell.Z).Floor()
	return int(f.X), int(f.Y), int(f.Z)
}
