// Package sky drives the day/night cycle: the sun's path, its light and the
// background color of rays that escape the scene.
package sky

import (
	"math"
	"time"

	"github.com/taigrr/diorama/pkg/math3d"
)

// FullCycle is one day in phase units.
const FullCycle = 2 * math.Pi

// Preset phases.
const (
	PhaseDay    = math.Pi / 2
	PhaseSunset = math.Pi
	PhaseNight  = 3 * math.Pi / 2
)

// Light is the sun's contribution at one phase.
type Light struct {
	Direction math3d.Vec3 // Unit vector from the scene toward the sun
	Color     math3d.Vec3
	Intensity float64
	Elevation float64 // sin(phase); > 0 is day
}

// Palette holds the two ends of the day/night interpolation.
type Palette struct {
	DayColor       math3d.Vec3
	DayIntensity   float64
	DaySky         math3d.Vec3
	NightColor     math3d.Vec3
	NightIntensity float64
	NightSky       math3d.Vec3
}

// DefaultPalette is a bluish-white noon over a dim orange night.
func DefaultPalette() Palette {
	return Palette{
		DayColor:       math3d.V3(0.90, 0.95, 1.00),
		DayIntensity:   1.0,
		DaySky:         math3d.V3(0.53, 0.81, 0.92),
		NightColor:     math3d.V3(1.00, 0.55, 0.25),
		NightIntensity: 0.12,
		NightSky:       math3d.V3(0.10, 0.06, 0.09),
	}
}

// Sun owns the time-of-day phase. Phase advances with Advance and is read by
// the renderer at the start of every frame.
type Sun struct {
	Phase   float64 // Radians in [0, 2π)
	Speed   float64 // Radians per second
	Azimuth float64 // Rotation of the sun's path around the world up axis
	Palette Palette
}

// NewSun creates a sun at phase whose full cycle lasts dayLength. A
// non-positive dayLength freezes the sun.
func NewSun(phase float64, dayLength time.Duration, azimuth float64) *Sun {
	s := &Sun{
		Phase:   Wrap(phase),
		Azimuth: azimuth,
		Palette: DefaultPalette(),
	}
	if dayLength > 0 {
		s.Speed = FullCycle / dayLength.Seconds()
	}
	return s
}

// Wrap maps any phase into [0, 2π).
func Wrap(phase float64) float64 {
	p := math.Mod(phase, FullCycle)
	if p < 0 {
		p += FullCycle
	}
	if p >= FullCycle {
		p = 0
	}
	return p
}

// Advance moves the phase forward by Speed·dt.
func (s *Sun) Advance(dt time.Duration) {
	s.Phase = Wrap(s.Phase + s.Speed*dt.Seconds())
}

// SetPhase jumps to phase.
func (s *Sun) SetPhase(phase float64) {
	s.Phase = Wrap(phase)
}

// blend returns the day weight for a phase, 0 at the night trough and 1 at
// noon. smoothstep keeps it monotonic in elevation and flattens the ends.
func blend(phase float64) float64 {
	t := (math.Sin(phase) + 1) / 2
	return t * t * (3 - 2*t)
}

// State returns the sun's light at phase. The sun travels a vertical circle:
// at phase 0 it rises on the horizon, at π/2 it is overhead, at 3π/2 it is
// directly below.
func (s *Sun) State(phase float64) Light {
	phase = Wrap(phase)
	dir := math3d.RotateY(s.Azimuth).Mul(math3d.RotateZ(phase)).MulVec3Dir(math3d.V3(1, 0, 0))
	t := blend(phase)
	p := s.Palette
	return Light{
		Direction: dir.Normalize(),
		Color:     p.NightColor.Lerp(p.DayColor, t),
		Intensity: p.NightIntensity + (p.DayIntensity-p.NightIntensity)*t,
		Elevation: math.Sin(phase),
	}
}

// SkyColor returns the background color at phase: bright blue by day, dark
// and warm by night.
func (s *Sun) SkyColor(phase float64) math3d.Vec3 {
	return s.Palette.NightSky.Lerp(s.Palette.DaySky, blend(Wrap(phase)))
}

// Current returns State at the current phase.
func (s *Sun) Current() Light {
	return s.State(s.Phase)
}

// CurrentSky returns SkyColor at the current phase.
func (s *Sun) CurrentSky() math3d.Vec3 {
	return s.SkyColor(s.Phase)
}

// TimeOfDay names the part of the cycle the phase falls in.
func TimeOfDay(phase float64) string {
	e := math.Sin(Wrap(phase))
	rising := math.Cos(Wrap(phase)) > 0
	switch {
	case e > 0.25:
		return "day"
	case e < -0.25:
		return "night"
	case rising:
		return "dawn"
	default:
		return "dusk"
	}
}
