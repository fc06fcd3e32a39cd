// Package voxel holds the diorama's voxel grid, its materials and the grid
// traversal used to intersect rays with it.
package voxel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/diorama/pkg/math3d"
)

// ErrUnknownKind is returned by ParseKind for names that are not a material.
var ErrUnknownKind = errors.New("unknown voxel kind")

// Kind is the material occupying a voxel. The zero value is Empty.
type Kind uint8

const (
	Empty Kind = iota
	Water
	Grass
	Stone
	Wood
	Glowstone
)

// Kinds lists every occupied material, in declaration order.
var Kinds = []Kind{Water, Grass, Stone, Wood, Glowstone}

// Salts keep the per-channel hashes of one voxel independent.
const (
	saltBrightness uint64 = iota + 1
	saltTint
	saltGrain
)

var (
	waterColor     = math3d.V3(0.20, 0.40, 0.85)
	grassColor     = math3d.V3(0.30, 0.62, 0.22)
	grassDryColor  = math3d.V3(0.55, 0.62, 0.25)
	stoneColor     = math3d.V3(0.50, 0.50, 0.52)
	woodColor      = math3d.V3(0.45, 0.30, 0.16)
	glowstoneColor = math3d.V3(1.00, 0.85, 0.40)
)

// String returns the lower-case material name.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Water:
		return "water"
	case Grass:
		return "grass"
	case Stone:
		return "stone"
	case Wood:
		return "wood"
	case Glowstone:
		return "glowstone"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind resolves a material name, ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range append([]Kind{Empty}, Kinds...) {
		if k.String() == n {
			return k, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Solid reports whether the voxel is occupied.
func (k Kind) Solid() bool {
	return k != Empty
}

// Base returns the material's unperturbed color.
func (k Kind) Base() math3d.Vec3 {
	switch k {
	case Water:
		return waterColor
	case Grass:
		return grassColor
	case Stone:
		return stoneColor
	case Wood:
		return woodColor
	case Glowstone:
		return glowstoneColor
	default:
		return math3d.Zero3()
	}
}

// ColorAt returns the color of a voxel of this kind at integer coordinates
// (i, j, k). Grass, Stone and Wood vary per voxel through a coordinate hash;
// the result never depends on anything but the arguments.
func (k Kind) ColorAt(i, j, kk int) math3d.Vec3 {
	switch k {
	case Grass:
		b := 1 + 0.15*signedHash(i, j, kk, saltBrightness)
		tint := 0.35 * unitHash(i, j, kk, saltTint)
		return grassColor.Lerp(grassDryColor, tint).Scale(b).Clamp(0, 1)
	case Stone:
		b := 1 + 0.12*signedHash(i, j, kk, saltBrightness)
		return stoneColor.Scale(b).Clamp(0, 1)
	case Wood:
		// Grain runs along y: a column keeps its ring shade, voxels jitter a little.
		grain := 1 + 0.10*signedHash(i, 0, kk, saltGrain)
		jitter := 1 + 0.04*signedHash(i, j, kk, saltBrightness)
		return woodColor.Scale(grain * jitter).Clamp(0, 1)
	default:
		return k.Base()
	}
}

// Reflectivity returns the mirror blend weight in [0, 1].
func (k Kind) Reflectivity() float64 {
	if k == Water {
		return 0.45
	}
	return 0
}

// Emissive returns the self-illumination weight in [0, 1].
func (k Kind) Emissive() float64 {
	if k == Glowstone {
		return 0.85
	}
	return 0
}
