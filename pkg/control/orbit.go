// Package control eases the orbit camera toward input targets with springs.
package control

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/diorama/pkg/render"
)

const (
	// Frequency 6.0 settles in well under a second, damping 1.0 = critically
	// damped (no overshoot)
	springFrequency = 6.0
	springDamping   = 1.0

	settleEpsilon = 1e-4
)

// axis tracks one orbit coordinate chasing its target.
type axis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newAxis(fps int, v float64) axis {
	return axis{
		Position: v,
		Target:   v,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
}

func (a *axis) update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

func (a *axis) settled() bool {
	return math.Abs(a.Position-a.Target) < settleEpsilon && math.Abs(a.velocity) < settleEpsilon
}

// Orbit owns the targets behind a camera. Input moves the targets; Update
// steps the springs one frame and writes the result to the camera. Yaw is
// kept unwrapped here so the spring never swings the long way round.
type Orbit struct {
	camera *render.Camera
	fps    int

	Yaw, Pitch, Radius axis
}

// NewOrbit starts at the camera's current orbit. fps is the update rate.
func NewOrbit(camera *render.Camera, fps int) *Orbit {
	fps = max(1, fps)
	return &Orbit{
		camera: camera,
		fps:    fps,
		Yaw:    newAxis(fps, camera.Yaw),
		Pitch:  newAxis(fps, camera.Pitch),
		Radius: newAxis(fps, camera.Radius),
	}
}

// Rotate moves the yaw and pitch targets. The pitch target is clamped the
// same way the camera clamps pitch.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.Yaw.Target += dYaw
	o.Pitch.Target = max(-render.MaxPitch, min(render.MaxPitch, o.Pitch.Target+dPitch))
}

// Zoom moves the radius target within the camera's radius limits.
func (o *Orbit) Zoom(delta float64) {
	lo, hi := o.camera.MinRadius, max(o.camera.MinRadius, o.camera.MaxRadius)
	o.Radius.Target = max(lo, min(hi, o.Radius.Target+delta))
}

// Reset jumps straight to an orbit, dropping any motion in flight.
func (o *Orbit) Reset(yaw, pitch, radius float64) {
	o.camera.SetOrbit(yaw, pitch, radius)
	o.Yaw = newAxis(o.fps, o.camera.Yaw)
	o.Pitch = newAxis(o.fps, o.camera.Pitch)
	o.Radius = newAxis(o.fps, o.camera.Radius)
}

// Update advances the springs by one frame and applies them to the camera.
func (o *Orbit) Update() {
	o.Yaw.update()
	o.Pitch.update()
	o.Radius.update()
	o.camera.SetOrbit(o.Yaw.Position, o.Pitch.Position, o.Radius.Position)
}

// Settled reports whether every axis has reached its target.
func (o *Orbit) Settled() bool {
	return o.Yaw.settled() && o.Pitch.settled() && o.Radius.settled()
}
