package render

import (
	"runtime"
	"time"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/sky"
	"github.com/taigrr/diorama/pkg/voxel"
)

// DefaultMaxDepth is the bounce budget of a primary ray.
const DefaultMaxDepth = 3

// DefaultAmbient lifts faces turned away from the sun off pure black.
const DefaultAmbient = 0.08

// Options tune the shading pipeline.
type Options struct {
	MaxDepth int     // Bounce budget of primary rays; <= 0 means DefaultMaxDepth
	Ambient  float64 // Constant ambient term; negative means DefaultAmbient
	Workers  int     // Parallel row renderers; <= 0 means runtime.NumCPU()
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		Ambient:  DefaultAmbient,
		Workers:  runtime.NumCPU(),
	}
}

func (o Options) normalized() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Ambient < 0 {
		o.Ambient = DefaultAmbient
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Scene ties a chunk, a sun and a camera together. The chunk is read-only;
// the camera and sun are mutated only between frames by the goroutine that
// calls Render.
type Scene struct {
	chunk  *voxel.Chunk
	sun    *sky.Sun
	camera *Camera
	opts   Options

	front *Framebuffer
	back  *Framebuffer
}

// NewScene creates a scene. It does not copy chunk, sun or camera.
func NewScene(chunk *voxel.Chunk, sun *sky.Sun, camera *Camera, opts Options) *Scene {
	return &Scene{
		chunk:  chunk,
		sun:    sun,
		camera: camera,
		opts:   opts.normalized(),
	}
}

// Chunk returns the scene's voxel grid.
func (s *Scene) Chunk() *voxel.Chunk {
	return s.chunk
}

// Camera returns the camera for input handlers to mutate.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Sun returns the sun for time handlers to mutate.
func (s *Scene) Sun() *sky.Sun {
	return s.sun
}

// Options returns the normalized pipeline settings.
func (s *Scene) Options() Options {
	return s.opts
}

// AdvanceTime moves the day/night cycle forward by dt.
func (s *Scene) AdvanceTime(dt time.Duration) {
	s.sun.Advance(dt)
}

// Front returns the last completed frame, or nil before the first one.
func (s *Scene) Front() *Framebuffer {
	return s.front
}

// Shade returns the color seen along r under the current sun.
func (s *Scene) Shade(r math3d.Ray) math3d.Vec3 {
	return s.snapshot().shade(r)
}

// snapshot freezes the per-frame state so row workers never observe a camera
// or sun update mid-frame.
func (s *Scene) snapshot() *frame {
	cam := *s.camera
	f := &frame{
		chunk:    s.chunk,
		camera:   cam,
		light:    s.sun.Current(),
		sky:      s.sun.CurrentSky(),
		ambient:  s.opts.Ambient,
		maxDepth: s.opts.MaxDepth,
	}
	f.eye = cam.Eye()
	f.forward, f.right, f.up = cam.Basis()
	return f
}
