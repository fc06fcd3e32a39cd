// diorama - Terminal Voxel Diorama Ray Tracer
// Orbit a small voxel world while the sun crosses its sky.
//
// Controls:
//
//	Arrows/WASD - Orbit (yaw/pitch)
//	Scroll, +/- - Zoom in/out
//	[ / ]       - Move the sun back/forward one hour
//	Space       - Pause/resume the day cycle
//	R           - Reset view
//	?           - Toggle HUD overlay
//	Esc, Q      - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/control"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/sky"
)

var (
	configPath   = flag.String("config", "", "Path to a JSON config file")
	targetFPS    = flag.Int("fps", 30, "Target FPS")
	snapshotPath = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	snapshotSize = flag.String("size", "320x180", "Snapshot size (WxH)")
	phaseDeg     = flag.Float64("phase", 0, "Sun phase in degrees (0 sunrise, 90 noon); overrides the config")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "diorama - Terminal Voxel Diorama Ray Tracer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: diorama [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Arrows/WASD - Orbit the camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  [ / ]       - Move the sun one hour\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause the day cycle\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc, Q      - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "phase" {
			cfg.Sun.PhaseDeg = *phaseDeg
		}
	})
	return cfg, cfg.Validate()
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	chunk, err := cfg.BuildChunk()
	if err != nil {
		return fmt.Errorf("build chunk: %w", err)
	}
	nx, ny, nz := chunk.Dims()
	source := cfg.Chunk.Layout
	if cfg.Chunk.Model != "" {
		source = cfg.Chunk.Model
	}
	fmt.Printf("Loaded: %s (%dx%dx%d grid, %d voxels)\n", source, nx, ny, nz, chunk.Count())

	camera := cfg.BuildCamera(chunk.Bounds())
	scene := render.NewScene(chunk, cfg.BuildSun(), camera, cfg.SceneOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if *snapshotPath != "" {
		return snapshot(ctx, scene, *snapshotPath, *snapshotSize)
	}
	return interactive(ctx, cancel, scene, cfg)
}

func snapshot(ctx context.Context, scene *render.Scene, path, size string) error {
	w, h, err := parseSize(size)
	if err != nil {
		return err
	}
	start := time.Now()
	fb, err := scene.Render(ctx, w, h)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d, %s, %v)\n", path, w, h, sky.TimeOfDay(scene.Sun().Phase), time.Since(start).Round(time.Millisecond))
	return nil
}

func interactive(ctx context.Context, cancel context.CancelFunc, scene *render.Scene, cfg config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	fps := max(1, *targetFPS)
	camera := scene.Camera()
	home := [3]float64{camera.Yaw, camera.Pitch, camera.Radius}
	orbit := control.NewOrbit(camera, fps)
	hud := NewHUD(scene.Chunk().Count())
	step := cfg.RotateStep()
	zoom := cfg.Camera.ZoomStep
	var paused bool

	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					cancel()
				case ev.MatchString("a", "left"):
					orbit.Rotate(-step, 0)
				case ev.MatchString("d", "right"):
					orbit.Rotate(step, 0)
				case ev.MatchString("w", "up"):
					orbit.Rotate(0, step)
				case ev.MatchString("s", "down"):
					orbit.Rotate(0, -step)
				case ev.MatchString("+", "="):
					orbit.Zoom(-zoom)
				case ev.MatchString("-", "_"):
					orbit.Zoom(zoom)
				case ev.MatchString("["):
					scene.Sun().SetPhase(scene.Sun().Phase - sky.FullCycle/24)
				case ev.MatchString("]"):
					scene.Sun().SetPhase(scene.Sun().Phase + sky.FullCycle/24)
				case ev.MatchString("1"):
					scene.Sun().SetPhase(sky.PhaseDay)
				case ev.MatchString("2"):
					scene.Sun().SetPhase(sky.PhaseSunset)
				case ev.MatchString("3"):
					scene.Sun().SetPhase(sky.PhaseNight)
				case ev.MatchString("space"):
					paused = !paused
				case ev.MatchString("r"):
					orbit.Reset(home[0], home[1], home[2])
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.Show = !hud.Show
					term.Erase()
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbit.Zoom(-zoom)
				case uv.MouseWheelDown:
					orbit.Zoom(zoom)
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame)
			lastFrame = now
			if !paused {
				scene.AdvanceTime(dt)
			}
			orbit.Update()

			fb, err := scene.Render(ctx, width, height*2)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("render: %w", err)
			}

			fb.Draw(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}

			hud.UpdateFPS()
			hud.Render(width, height, scene, paused)
		}
	}
}
