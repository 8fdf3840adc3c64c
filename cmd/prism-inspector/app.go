package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/debug"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/renderer"
	"github.com/Faultbox/prism/internal/engine/shader"
	engineui "github.com/Faultbox/prism/internal/engine/ui"
	"github.com/Faultbox/prism/internal/game"
	"github.com/Faultbox/prism/internal/game/ui"
	"github.com/Faultbox/prism/internal/logger"
)

const inspectorWidth = 360

// App is the inspector: a scene rendered into an offscreen view with
// editing panels beside it.
type App struct {
	cfg       *config.Config
	backend   *engineui.Backend
	renderer  *renderer.Renderer
	shaders   *shader.Library
	session   *game.Session
	view      *framebuffer.Framebuffer
	inspector *ui.Inspector
	input     *input.State
	shots     *debug.ScreenshotCapture
	log       *zap.Logger

	// Written by the dialog goroutine, drained on the main thread.
	pendingPath chan string

	capture      bool // save the view after it is drawn this frame
	viewHovered  bool
	lastMousePos imgui.Vec2
	lastFrame    time.Time
}

// NewApp creates the window, the renderer and an empty session.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:         cfg,
		input:       input.New(),
		pendingPath: make(chan string, 1),
		log:         logger.For("inspector"),
	}

	var err error
	app.shots, err = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "prism", cfg.Debug.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	app.backend, err = engineui.NewBackend(engineui.Options{
		Title:     "Prism Inspector",
		Width:     cfg.Graphics.Width,
		Height:    cfg.Graphics.Height,
		FontPaths: engineui.DefaultFontPaths,
	})
	if err != nil {
		return nil, err
	}

	app.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width - inspectorWidth,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	app.shaders, err = shader.NewLibrary(shader.Builtin)
	if err != nil {
		return nil, fmt.Errorf("compiling shaders: %w", err)
	}
	app.view, err = framebuffer.New(cfg.Graphics.Width-inspectorWidth, cfg.Graphics.Height)
	if err != nil {
		return nil, err
	}

	app.session = game.NewSession(cfg, app.renderer, app.shaders)
	app.inspector = ui.NewInspector(ui.Actions{
		Open:   app.openFileDialog,
		Reload: app.reload,
		Quit:   func() { app.backend.SetShouldClose(true) },
	})
	app.inspector.Actions.Screenshot = func() { app.capture = true }
	return app, nil
}

// Run starts the render loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

// Close releases the scene and every GPU object.
func (app *App) Close() {
	if app.session != nil {
		if err := app.session.Close(); err != nil {
			app.log.Warn("closing session", zap.Error(err))
		}
	}
	if app.view != nil {
		app.view.Destroy()
	}
	if app.shaders != nil {
		app.shaders.Release()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Scene Files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scene").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Error("file dialog", zap.Error(err))
			}
			return
		}
		select {
		case app.pendingPath <- filename:
		default:
		}
	}()
}

func (app *App) open(path string) {
	if err := app.session.Open(path); err != nil {
		app.log.Error("opening scene", zap.Error(err))
		app.inspector.SetStatus(err.Error())
		return
	}
	app.inspector.SetStatus("Loaded " + path)
	app.backend.SetWindowTitle("Prism Inspector - " + filepath.Base(path))
}

func (app *App) reload() {
	if err := app.session.Reload(); err != nil {
		app.inspector.SetStatus(err.Error())
		return
	}
	app.inspector.SetStatus("Reloaded " + app.session.Path())
}

func (app *App) render() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now

	select {
	case path := <-app.pendingPath:
		app.open(path)
	default:
	}

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.capture = true
	}

	app.inspector.RenderMenu()

	x, y, w, h := engineui.Viewport()
	app.renderViewport(x, y, w-inspectorWidth, h, dt)
	app.inspector.SetScene(app.session.Scene())
	app.inspector.Render(x+w-inspectorWidth, y, inspectorWidth, h)

	if app.session.QuitRequested() {
		app.backend.SetShouldClose(true)
	}
}
