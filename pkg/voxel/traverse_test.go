package voxel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/diorama/pkg/math3d"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-6 }

func unitChunk(nx, ny, nz int) *Chunk {
	return NewChunk(nx, ny, nz, math3d.Zero3(), math3d.Gray(1))
}

func TestIntersectFaces(t *testing.T) {
	c := unitChunk(3, 3, 3)
	c.Set(1, 1, 1, Stone)

	tests := []struct {
		name       string
		origin     math3d.Vec3
		dir        math3d.Vec3
		wantNormal math3d.Vec3
		wantDist   float64
	}{
		{"from -x", math3d.V3(-2, 1.5, 1.5), math3d.V3(1, 0, 0), math3d.V3(-1, 0, 0), 3},
		{"from +x", math3d.V3(5, 1.5, 1.5), math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), 3},
		{"from +y", math3d.V3(1.5, 9, 1.5), math3d.V3(0, -1, 0), math3d.V3(0, 1, 0), 7},
		{"from -y", math3d.V3(1.5, -1, 1.5), math3d.V3(0, 1, 0), math3d.V3(0, -1, 0), 2},
		{"from +z", math3d.V3(1.5, 1.5, 4), math3d.V3(0, 0, -1), math3d.V3(0, 0, 1), 2},
		{"from inside grid", math3d.V3(1.5, 1.5, 0.2), math3d.V3(0, 0, 1), math3d.V3(0, 0, -1), 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := c.Intersect(math3d.NewRay(tc.origin, tc.dir, 1))
			if !ok {
				t.Fatal("expected a hit")
			}
			if hit.I != 1 || hit.J != 1 || hit.K != 1 || hit.Kind != Stone {
				t.Errorf("hit voxel (%d,%d,%d) %v, want (1,1,1) stone", hit.I, hit.J, hit.K, hit.Kind)
			}
			if hit.Normal != tc.wantNormal {
				t.Errorf("normal = %v, want %v", hit.Normal, tc.wantNormal)
			}
			if !near(hit.Distance, tc.wantDist) {
				t.Errorf("distance = %v, want %v", hit.Distance, tc.wantDist)
			}
			if math.Abs(hit.Normal.Len()-1) > eps {
				t.Errorf("normal %v is not unit", hit.Normal)
			}
		})
	}
}

func TestIntersectMisses(t *testing.T) {
	c := unitChunk(4, 4, 4)
	c.Set(0, 0, 0, Grass)

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
	}{
		{"never enters", math3d.V3(-5, 10, -5), math3d.V3(1, 0, 0)},
		{"points away", math3d.V3(-1, 0.5, 0.5), math3d.V3(-1, 0, 0)},
		{"crosses empty cells", math3d.V3(-1, 3.5, 3.5), math3d.V3(1, 0, 0)},
		{"diagonal above", math3d.V3(-1, 2.5, -1), math3d.V3(1, 0.1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if hit, ok := c.Intersect(math3d.NewRay(tc.origin, tc.dir, 1)); ok {
				t.Errorf("unexpected hit at (%d,%d,%d)", hit.I, hit.J, hit.K)
			}
		})
	}
}

func TestIntersectEmptyChunk(t *testing.T) {
	c := unitChunk(8, 8, 8)
	r := math3d.NewRay(math3d.V3(-3, 4, -3), math3d.V3(1, 0.01, 1), 1)
	if _, ok := c.Intersect(r); ok {
		t.Error("empty chunk reported a hit")
	}
}

func TestIntersectEdgeTieBreak(t *testing.T) {
	// The ray passes exactly through the edge shared by the four cells around
	// x = 1, y = 1. Ties cross x before y.
	dir := math3d.V3(1, 1, 0)
	origin := math3d.V3(0.5, 0.5, 0.5)

	t.Run("x first", func(t *testing.T) {
		c := unitChunk(2, 2, 1)
		c.Set(1, 0, 0, Stone)
		c.Set(0, 1, 0, Wood)
		hit, ok := c.Intersect(math3d.NewRay(origin, dir, 1))
		if !ok || hit.I != 1 || hit.J != 0 {
			t.Fatalf("hit = %+v, %v; want voxel (1,0,0)", hit, ok)
		}
		if hit.Normal != math3d.V3(-1, 0, 0) {
			t.Errorf("normal = %v, want -x", hit.Normal)
		}
	})

	t.Run("then y", func(t *testing.T) {
		c := unitChunk(2, 2, 1)
		c.Set(1, 1, 0, Stone)
		hit, ok := c.Intersect(math3d.NewRay(origin, dir, 1))
		if !ok || hit.I != 1 || hit.J != 1 {
			t.Fatalf("hit = %+v, %v; want voxel (1,1,0)", hit, ok)
		}
		if hit.Normal != math3d.V3(0, -1, 0) {
			t.Errorf("normal = %v, want -y", hit.Normal)
		}
		if !near(hit.Distance, math.Sqrt2/2) {
			t.Errorf("distance = %v, want %v", hit.Distance, math.Sqrt2/2)
		}
	})
}

func TestIntersectAxisAlignedDirections(t *testing.T) {
	// Zero direction components go through the epsilon substitution.
	c := unitChunk(4, 1, 1)
	c.Set(3, 0, 0, Stone)

	r := math3d.Ray{Origin: math3d.V3(-1, 0.5, 0.5), Dir: math3d.V3(1, 0, 0), Budget: 1}
	hit, ok := c.Intersect(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.I != 3 || !near(hit.Distance, 4) || hit.Normal != math3d.V3(-1, 0, 0) {
		t.Errorf("hit = %+v", hit)
	}

	// Negative zero components behave like positive zero.
	r.Dir = math3d.V3(1, math.Copysign(0, -1), math.Copysign(0, -1))
	if hit2, ok := c.Intersect(r); !ok || hit2.I != 3 {
		t.Errorf("negative zero direction: hit = %+v, %v", hit2, ok)
	}
}

func TestIntersectScaledOffsetGrid(t *testing.T) {
	c := NewChunk(4, 4, 4, math3d.V3(10, -2, 0), math3d.V3(0.5, 2, 1))
	c.Set(2, 1, 3, Glowstone)

	target := c.CellCenter(2, 1, 3)
	origin := target.Add(math3d.V3(0, 10, 0))
	hit, ok := c.Intersect(math3d.NewRay(origin, math3d.V3(0, -1, 0), 1))
	if !ok || hit.Kind != Glowstone {
		t.Fatalf("hit = %+v, %v", hit, ok)
	}
	// Voxel j=1 spans world y in [0, 2]; the ray strikes its top face.
	if !near(hit.Point.Y, 2) || hit.Normal != math3d.V3(0, 1, 0) {
		t.Errorf("hit point %v normal %v", hit.Point, hit.Normal)
	}
}

func TestIntersectInsideSolidVoxel(t *testing.T) {
	c := unitChunk(2, 2, 2)
	c.Set(0, 0, 0, Stone)
	hit, ok := c.Intersect(math3d.NewRay(math3d.V3(0.5, 0.5, 0.5), math3d.V3(0, 0, 1), 1))
	if !ok || hit.Distance != 0 {
		t.Fatalf("hit = %+v, %v; want immediate hit", hit, ok)
	}
	if hit.Normal != math3d.V3(0, 0, -1) {
		t.Errorf("normal = %v, want facing the ray", hit.Normal)
	}
}

// TestIntersectAgainstMarch compares the DDA with a fine fixed-step march.
// Sampling may skip a voxel that the ray only clips, so the checks are
// one-sided: every solid sample must be at or after the DDA hit, and no
// solid sample may exist if the DDA reports a miss.
func TestIntersectAgainstMarch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := unitChunk(8, 8, 8)
	for range 60 {
		c.Set(rng.Intn(8), rng.Intn(8), rng.Intn(8), Stone)
	}

	const step = 2e-3
	for n := range 300 {
		origin := math3d.V3(rng.Float64()*16-4, rng.Float64()*16-4, rng.Float64()*16-4)
		aim := math3d.V3(rng.Float64()*8, rng.Float64()*8, rng.Float64()*8)
		r := math3d.NewRay(origin, aim.Sub(origin), 1)

		hit, ok := c.Intersect(r)
		if ok {
			if c.At(hit.I, hit.J, hit.K) != hit.Kind || !hit.Kind.Solid() {
				t.Fatalf("ray %d: hit reports %v at non-solid voxel", n, hit.Kind)
			}
			box := math3d.NewAABB(c.CellCenter(hit.I, hit.J, hit.K).Sub(math3d.Gray(0.5+1e-6)),
				c.CellCenter(hit.I, hit.J, hit.K).Add(math3d.Gray(0.5+1e-6)))
			if !box.ContainsPoint(hit.Point) {
				t.Fatalf("ray %d: hit point %v is not on voxel (%d,%d,%d)", n, hit.Point, hit.I, hit.J, hit.K)
			}
		}

		for s := 0.0; s < 40; s += step {
			i, j, k := c.CellOf(r.At(s))
			if !c.At(i, j, k).Solid() {
				continue
			}
			if !ok {
				t.Fatalf("ray %d: DDA missed solid voxel (%d,%d,%d) at t=%v", n, i, j, k, s)
			}
			if s < hit.Distance-1e-6 {
				t.Fatalf("ray %d: solid voxel (%d,%d,%d) at t=%v before DDA hit at %v", n, i, j, k, s, hit.Distance)
			}
			break
		}
	}
}

func BenchmarkIntersect(b *testing.B) {
	c := Generate(24, 12, 24, math3d.Zero3(), math3d.Gray(1), Diorama(24, 12, 24))
	r := math3d.NewRay(math3d.V3(-10, 20, -10), math3d.V3(1, -0.9, 1.1), 1)

	for b.Loop() {
		_, _ = c.Intersect(r)
	}
}
