// Package config loads the diorama settings from JSON and builds the runtime
// chunk, camera, sun and pipeline options from them.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/models"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/sky"
	"github.com/taigrr/diorama/pkg/voxel"
)

const deg = math.Pi / 180

type ChunkCfg struct {
	Size     [3]int  `json:"size"`
	CellSize float64 `json:"cellSize"`
	Layout   string  `json:"layout,omitempty"`
	// GLB file voxelized into the grid; overrides Layout when set.
	Model string `json:"model,omitempty"`
}

type CameraCfg struct {
	FOVDeg        float64 `json:"fovDeg"`
	YawDeg        float64 `json:"yawDeg"`
	PitchDeg      float64 `json:"pitchDeg"`
	Radius        float64 `json:"radius,omitempty"` // 0 fits the chunk
	MaxRadius     float64 `json:"maxRadius,omitempty"`
	RotateStepDeg float64 `json:"rotateStepDeg"`
	ZoomStep      float64 `json:"zoomStep"`
}

type SunCfg struct {
	PhaseDeg     float64 `json:"phaseDeg"`
	DayLengthSec float64 `json:"dayLengthSec"` // 0 freezes the sun
	AzimuthDeg   float64 `json:"azimuthDeg"`
}

type RenderCfg struct {
	MaxDepth int     `json:"maxDepth"`
	Ambient  float64 `json:"ambient"`
	Workers  int     `json:"workers,omitempty"` // 0 uses every CPU
}

type Config struct {
	Chunk  ChunkCfg  `json:"chunk"`
	Camera CameraCfg `json:"camera"`
	Sun    SunCfg    `json:"sun"`
	Render RenderCfg `json:"render"`
}

// Default returns the built-in diorama: a 32×16×32 grid seen from a raised
// diagonal at mid-morning, with a two minute day.
func Default() Config {
	return Config{
		Chunk: ChunkCfg{
			Size:     [3]int{32, 16, 32},
			CellSize: 1,
			Layout:   voxel.LayoutDiorama,
		},
		Camera: CameraCfg{
			FOVDeg:        60,
			YawDeg:        45,
			PitchDeg:      30,
			RotateStepDeg: 7.5,
			ZoomStep:      2,
		},
		Sun: SunCfg{
			PhaseDeg:     40,
			DayLengthSec: 120,
			AzimuthDeg:   30,
		},
		Render: RenderCfg{
			MaxDepth: render.DefaultMaxDepth,
			Ambient:  render.DefaultAmbient,
		},
	}
}

// Load decodes path over Default, so a file only needs the keys it changes.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	for a, n := range c.Chunk.Size {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("chunk.size[%d] must be > 0, got %d", a, n))
		}
	}
	if c.Chunk.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk.cellSize must be > 0, got %v", c.Chunk.CellSize))
	}
	if c.Chunk.Model == "" {
		if _, err := voxel.LayoutFunc(c.Chunk.Layout, 1, 1, 1); err != nil {
			errs = append(errs, fmt.Errorf("chunk.layout: %w", err))
		}
	}
	if c.Camera.FOVDeg <= 0 || c.Camera.FOVDeg >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovDeg must be in (0, 180), got %v", c.Camera.FOVDeg))
	}
	if c.Camera.Radius < 0 || c.Camera.MaxRadius < 0 {
		errs = append(errs, errors.New("camera.radius and camera.maxRadius must not be negative"))
	}
	if c.Camera.RotateStepDeg <= 0 || c.Camera.ZoomStep <= 0 {
		errs = append(errs, errors.New("camera.rotateStepDeg and camera.zoomStep must be > 0"))
	}
	if c.Sun.DayLengthSec < 0 {
		errs = append(errs, fmt.Errorf("sun.dayLengthSec must not be negative, got %v", c.Sun.DayLengthSec))
	}
	if c.Render.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("render.maxDepth must be >= 1, got %d", c.Render.MaxDepth))
	}
	if c.Render.Ambient < 0 || c.Render.Ambient > 1 {
		errs = append(errs, fmt.Errorf("render.ambient must be in [0, 1], got %v", c.Render.Ambient))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers))
	}
	return errors.Join(errs...)
}

// BuildChunk generates the configured layout, or voxelizes the model file.
// The grid's bottom face is centered on the world origin.
func (c Config) BuildChunk() (*voxel.Chunk, error) {
	nx, ny, nz := c.Chunk.Size[0], c.Chunk.Size[1], c.Chunk.Size[2]
	cell := math3d.Gray(c.Chunk.CellSize)
	origin := math3d.V3(-float64(nx)/2, 0, -float64(nz)/2).Scale(c.Chunk.CellSize)

	if c.Chunk.Model != "" {
		mesh, err := models.LoadGLB(c.Chunk.Model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		chunk, err := models.Voxelize(mesh, nx, ny, nz, origin, cell)
		if err != nil {
			return nil, fmt.Errorf("voxelize %s: %w", c.Chunk.Model, err)
		}
		return chunk, nil
	}

	fn, err := voxel.LayoutFunc(c.Chunk.Layout, nx, ny, nz)
	if err != nil {
		return nil, err
	}
	return voxel.Generate(nx, ny, nz, origin, cell, fn), nil
}

// BuildCamera builds an orbit camera framing bounds.
func (c Config) BuildCamera(bounds math3d.AABB) *render.Camera {
	cam := render.NewCamera()
	cam.FOV = c.Camera.FOVDeg * deg
	if c.Camera.MaxRadius > 0 {
		cam.MaxRadius = c.Camera.MaxRadius
	}
	cam.FitBounds(bounds)

	radius := c.Camera.Radius
	if radius == 0 {
		radius = cam.MinRadius * 2
	}
	cam.SetOrbit(c.Camera.YawDeg*deg, c.Camera.PitchDeg*deg, radius)
	return cam
}

// RotateStep returns the per-keypress rotation in radians.
func (c Config) RotateStep() float64 {
	return c.Camera.RotateStepDeg * deg
}

// BuildSun builds the day/night cycle.
func (c Config) BuildSun() *sky.Sun {
	day := time.Duration(c.Sun.DayLengthSec * float64(time.Second))
	return sky.NewSun(c.Sun.PhaseDeg*deg, day, c.Sun.AzimuthDeg*deg)
}

// SceneOptions returns the shading pipeline settings.
func (c Config) SceneOptions() render.Options {
	workers := c.Render.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return render.Options{
		MaxDepth: c.Render.MaxDepth,
		Ambient:  c.Render.Ambient,
		Workers:  workers,
	}
}
