package main

import (
	"fmt"
	"math"
	"time"

	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/sky"
)

// HUD renders an overlay with the frame rate, the time of day and the camera.
type HUD struct {
	voxels    int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	Show      bool
}

// NewHUD creates a new HUD
func NewHUD(voxels int) *HUD {
	return &HUD{
		voxels:  voxels,
		fpsTime: time.Now(),
		Show:    true,
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// clock turns a sun phase into a 24-hour time, phase 0 being 06:00.
func clock(phase float64) string {
	minutes := int(math.Round(phase/sky.FullCycle*24*60)) + 6*60
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, scene *render.Scene, paused bool) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	if !h.Show {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: time of day
	sun := scene.Sun()
	state := " "
	if paused {
		state = " (paused) "
	}
	title := fmt.Sprintf("%s %s%s", clock(sun.Phase), sky.TimeOfDay(sun.Phase), state)
	titleCol := max((width-len(title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s%s", bold, bgBlack, fgYellow, title, reset))

	// Top right: voxel count
	voxStr := fmt.Sprintf("%d voxels", h.voxels)
	fmt.Print(moveTo(1, max(width-len(voxStr)-1, 1)) + fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, voxStr, reset))

	// Bottom: camera and controls hint
	cam := scene.Camera()
	camStr := fmt.Sprintf("yaw %3.0f° pitch %3.0f° r %.1f", cam.Yaw*180/math.Pi, cam.Pitch*180/math.Pi, cam.Radius)
	fmt.Print(moveTo(height, 1) + clearLine + fmt.Sprintf("%s%s %s %s", bgBlack, fgWhite, camStr, reset))

	hint := "arrows: orbit  +/-: zoom  [/]: time  1/2/3: day/sunset/night  space: pause  ?: hud"
	fmt.Print(moveTo(height, max(width-len(hint)-1, 1)) + fmt.Sprintf("%s%s%s %s %s", bgBlack, dim, fgWhite, hint, reset))
}
