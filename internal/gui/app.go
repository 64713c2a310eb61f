// Package gui is the raylib window: it polls the keyboard, ticks the
// session with the frame time and draws every vehicle from the tracked
// vehicle's chase camera.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/san-kum/flysim/internal/assets"
	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/sim"
)

type Application struct {
	cfg      config.WindowConfig
	session  *sim.Session
	cache    *assets.Cache[Mesh]
	keys     []assets.Key
	models   []Mesh
	bindings []Binding
	log      zerolog.Logger
}

func NewApplication(cfg config.WindowConfig, session *sim.Session, log zerolog.Logger) *Application {
	if cfg.Opacity <= 0 || cfg.Opacity > 1 {
		cfg.Opacity = 1
	}
	if cfg.FPS <= 0 {
		cfg.FPS = config.DefaultFPS
	}
	log = log.With().Str("component", "gui").Logger()
	return &Application{
		cfg:      cfg,
		session:  session,
		cache:    assets.NewCache[Mesh](NewMeshLoader(log), log),
		bindings: DefaultBindings,
		log:      log,
	}
}

func (a *Application) initWindow() {
	rl.SetTraceLogLevel(rl.LogWarning)
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if a.cfg.Opacity < 1 {
		flags |= rl.FlagWindowTransparent
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(a.cfg.Width), int32(a.cfg.Height), a.cfg.Title)
	rl.SetWindowMonitor(a.cfg.Monitor)
	rl.SetWindowOpacity(float32(a.cfg.Opacity))
	if a.cfg.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(int32(a.cfg.FPS))
	rl.SetExitKey(0)
}

func (a *Application) loadModels() error {
	a.models = a.models[:0]
	a.keys = a.keys[:0]
	for _, v := range a.session.Vehicles() {
		spec := v.Spec()
		key := assets.Key{Model: spec.ModelPath, Texture: spec.TexturePath}
		mesh, err := a.cache.Acquire(key)
		if err != nil {
			return fmt.Errorf("load %s: %w", spec.Name, err)
		}
		a.keys = append(a.keys, key)
		a.models = append(a.models, mesh)
	}
	a.log.Info().Int("vehicles", len(a.models)).Int("meshes", a.cache.Len()).Msg("models loaded")
	return nil
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func (a *Application) Run() error {
	if len(a.session.Vehicles()) == 0 {
		return fmt.Errorf("gui: nothing to fly")
	}
	a.initWindow()
	defer rl.CloseWindow()
	defer a.cache.Close()
	defer func() { releaseMeshes(a.cache, a.keys) }()

	if err := a.loadModels(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		if rl.IsKeyDown(rl.KeyEscape) {
			return nil
		}
		a.update()
		a.draw()
	}
	return nil
}

func (a *Application) update() {
	if rl.IsKeyPressed(rl.KeyI) {
		a.session.CycleTracked()
		a.log.Info().Int("index", a.session.TrackedIndex()).Str("vehicle", a.session.Tracked().Name()).Msg("tracking")
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.session.Camera().ToggleMode()
	}

	inputs := make([]control.Input, len(a.session.Vehicles()))
	inputs[a.session.TrackedIndex()] = Poll(a.bindings, rl.IsKeyDown)
	a.session.Tick(float64(rl.GetFrameTime()), inputs)
}

func (a *Application) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(camera3D(a.session.Camera()))
	rl.DrawGrid(100, 1.0)
	a.drawVehicles()
	rl.EndMode3D()

	a.drawOverlay()
	rl.EndDrawing()
}
