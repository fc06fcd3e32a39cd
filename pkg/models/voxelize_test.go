package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/voxel"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		mat  *Material
		want voxel.Kind
	}{
		{"nil", nil, DefaultKind},
		{"by name", &Material{Name: " GlowStone "}, voxel.Glowstone},
		{"empty name falls to color", &Material{Name: "empty", BaseColor: [4]float64{0.2, 0.4, 0.85, 1}}, voxel.Water},
		{"green", &Material{Name: "leaves", BaseColor: [4]float64{0.25, 0.7, 0.2, 1}}, voxel.Grass},
		{"brown", &Material{Name: "bark", BaseColor: [4]float64{0.45, 0.3, 0.15, 1}}, voxel.Wood},
		{"gray", &Material{Name: "rock", BaseColor: [4]float64{0.5, 0.5, 0.5, 1}}, voxel.Stone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.mat); got != tc.want {
				t.Errorf("KindOf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFitTransform(t *testing.T) {
	bounds := math3d.NewAABB(math3d.V3(-1, 2, -1), math3d.V3(1, 3, 1))
	m := FitTransform(bounds, [3]int{8, 8, 4}, math3d.V3(10, 0, 0), math3d.Gray(1))

	// z limits the scale to 2: the box becomes 4×2×4 centered in x.
	lo := m.MulVec3(bounds.Min)
	hi := m.MulVec3(bounds.Max)
	want := []math3d.Vec3{math3d.V3(12, 0, 0), math3d.V3(16, 2, 4)}
	for i, got := range []math3d.Vec3{lo, hi} {
		if got.Sub(want[i]).Len() > 1e-9 {
			t.Errorf("corner %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestVoxelizeQuad(t *testing.T) {
	mesh, err := FromDocument(quadDocument(), "pond")
	if err != nil {
		t.Fatal(err)
	}
	// Keep only the floor quad.
	mesh.Faces = mesh.Faces[:2]

	chunk, err := Voxelize(mesh, 4, 3, 4, math3d.Zero3(), math3d.Gray(1))
	if err != nil {
		t.Fatal(err)
	}
	if got := chunk.CountKind(voxel.Water); got != 16 {
		t.Errorf("water voxels = %d, want 16", got)
	}
	if got := chunk.Count(); got != 16 {
		t.Errorf("solid voxels = %d, want 16", got)
	}
	for i := range 4 {
		for k := range 4 {
			if chunk.At(i, 0, k) != voxel.Water {
				t.Errorf("floor voxel (%d,0,%d) = %v", i, k, chunk.At(i, 0, k))
			}
		}
	}
}

func TestVoxelizeMixedMaterials(t *testing.T) {
	mesh, err := FromDocument(quadDocument(), "pond")
	if err != nil {
		t.Fatal(err)
	}

	chunk, err := Voxelize(mesh, 10, 10, 10, math3d.Zero3(), math3d.Gray(1))
	if err != nil {
		t.Fatal(err)
	}
	if chunk.CountKind(voxel.Water) == 0 || chunk.CountKind(voxel.Wood) == 0 {
		t.Errorf("water %d, wood %d: want both", chunk.CountKind(voxel.Water), chunk.CountKind(voxel.Wood))
	}
	// The 1×0.5×1 bounds fit by x and z: the quad spans the whole floor and
	// the standing triangle tops out at half the grid height.
	for _, c := range [][2]int{{0, 0}, {9, 0}, {0, 9}, {9, 9}} {
		if got := chunk.At(c[0], 0, c[1]); got != voxel.Water {
			t.Errorf("floor corner (%d,0,%d) = %v, want water", c[0], c[1], got)
		}
	}
	top := -1
	for j := range 10 {
		for i := range 10 {
			for k := range 10 {
				if chunk.At(i, j, k) == voxel.Wood {
					top = j
				}
			}
		}
	}
	if want := int(0.5 * 10); top != want {
		t.Errorf("topmost wood layer = %d, want %d", top, want)
	}
	if mesh.Vertices[1] != math3d.V3(1, 0, 0) {
		t.Error("Voxelize modified the source mesh")
	}
}

func TestVoxelizeEmptyMesh(t *testing.T) {
	_, err := Voxelize(NewMesh("none"), 4, 4, 4, math3d.Zero3(), math3d.Gray(1))
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("err = %v, want ErrEmptyMesh", err)
	}
}

func TestMeshCalculateBounds(t *testing.T) {
	m := NewMesh("tri")
	m.Vertices = []math3d.Vec3{math3d.V3(1, -2, 3), math3d.V3(-1, 4, 0), math3d.V3(0, 0, math.Pi)}
	m.CalculateBounds()
	if m.BoundsMin != math3d.V3(-1, -2, 0) || m.BoundsMax != math3d.V3(1, 4, math.Pi) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}

	m.Transform(math3d.Translate(math3d.V3(1, 1, 1)))
	if m.BoundsMin != math3d.V3(0, -1, 1) {
		t.Errorf("translated min = %v", m.BoundsMin)
	}
}
