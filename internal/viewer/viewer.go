// Package viewer implements the interactive window: input routing, the frame
// loop and rendering of scene snapshots.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/config"
	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/engine/guides"
	"github.com/Faultbox/deskscene/internal/engine/input"
	"github.com/Faultbox/deskscene/internal/engine/renderer"
	"github.com/Faultbox/deskscene/internal/engine/window"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/internal/telemetry"
)

// maxStep caps the frame time fed to the scene after stalls.
const maxStep = 0.1

// Viewer is the interactive application.
type Viewer struct {
	cfg      *config.Config
	running  bool
	paused   bool
	orbiting bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	recorder *telemetry.Recorder
	shots    *guides.ScreenshotCapture
	capture  bool
}

// New creates the window, renderer and scene.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	v := &Viewer{cfg: cfg}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "DeskScene",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	sc := cfg.ToScene()

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:        dw,
		Height:       dh,
		ParticleSize: 3,
		Steam:        sc.Steam,
		Scene:        sc,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := v.window.GetSize()
	v.input = input.New(ww, wh)
	v.camera = cfg.NewCamera(ww, wh)
	v.scene = scene.New(sc, v.camera, scene.Callbacks{
		OnDragChange: func(name string, dragging bool) {
			logger.Debug("drag changed", zap.String("entity", name), zap.Bool("dragging", dragging))
		},
	})

	v.recorder, err = telemetry.NewRecorder(cfg.Trace.Dir, cfg.Trace.Every)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create trace recorder: %w", err)
	}
	if err := v.recorder.WriteConfig(cfg); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to write trace config: %w", err)
	}

	v.shots = guides.NewScreenshotCapture("screenshots", "deskscene")

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting frame loop")

	for v.running {
		frameStart := time.Now()

		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if dt > maxStep {
			dt = maxStep
		}

		// 1. Process input
		if v.input.Update() {
			// Quit event received
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		// 2. Advance the scene
		if v.paused {
			dt = 0
		}
		snap := v.scene.Frame(dt)
		if err := v.recorder.Record(snap); err != nil {
			return fmt.Errorf("trace error: %w", err)
		}

		// 3. Render
		v.renderer.Begin()
		v.renderer.Draw(snap, v.camera)
		v.renderer.End()
		if v.capture {
			v.capture = false
			v.screenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("particles", snap.Particles.Count),
				zap.Stringer("steam_mode", snap.SteamMode),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handle applies one input event: pointer events go to the scene first,
// the right button orbits the camera.
func (v *Viewer) handle(event input.Event) {
	if pev, ok := event.Pointer(); ok {
		v.scene.HandlePointer(pev)
	}

	switch event.Type {
	case input.EventWindowResize:
		v.camera.Resize(event.Width, event.Height)
		dw, dh := v.window.DrawableSize()
		v.renderer.Resize(dw, dh)

	case input.EventFocusLost:
		// releases that happen outside the window never arrive
		v.scene.CancelDrags()
		v.orbiting = false

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_RIGHT {
			v.orbiting = true
		}
	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_RIGHT {
			v.orbiting = false
		}
	case input.EventMouseMove:
		if v.orbiting {
			v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(float32(event.WheelY))

	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_F12:
			v.capture = true
		case sdl.SCANCODE_F11:
			if err := v.window.SetFullscreen(!v.window.Fullscreen()); err != nil {
				logger.Warn("fullscreen toggle failed", zap.Error(err))
			}
		case sdl.SCANCODE_SPACE:
			v.paused = !v.paused
		case sdl.SCANCODE_S:
			next := (v.scene.SteamMode() + 1) % 3
			v.scene.SetSteamMode(next)
			logger.Info("steam mode", zap.Stringer("mode", next))
		}
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.recorder != nil {
		logger.Info("trace summary", v.recorder.Summary().Fields()...)
		if err := v.recorder.Close(); err != nil {
			logger.Warn("closing trace failed", zap.Error(err))
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
