// Package game drives frames: it polls the window, updates and draws the
// running scene, and handles reload and capture keys.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/debug"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/renderer"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/engine/window"
	"github.com/Faultbox/prism/internal/logger"
)

// Game is the windowed viewer.
type Game struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	shaders  *shader.Library
	input    *input.State
	session  *Session
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New creates the window, the renderer and the built-in shader programs.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		input:  input.New(),
		log:    logger.For("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	shots, err := debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "prism", cfg.Debug.ScreenshotFormat)
	if err != nil {
		return nil, err
	}
	g.shots = shots

	g.window, err = window.New(window.Config{
		Title:      "Prism",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The drawable can be larger than the requested window on high-DPI displays.
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height, MSAA: cfg.Graphics.MSAA})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	g.shaders, err = shader.NewLibrary(shader.Builtin)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("compiling shaders: %w", err)
	}

	g.session = NewSession(cfg, g.renderer, g.shaders)
	_ = g.session.Resize(width, height)
	return g, nil
}

// Open loads the first scene.
func (g *Game) Open(path string) error {
	if err := g.session.Open(path); err != nil {
		return err
	}
	g.window.SetTitle("Prism - " + path)
	return nil
}

// Run drives frames until the window closes or the scene asks to quit.
func (g *Game) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	g.log.Info("starting frame loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		g.window.PollEvents(g.input)
		if g.input.QuitRequested() {
			break
		}
		if w, h, ok := g.input.TakeResize(); ok && w > 0 && h > 0 {
			g.renderer.Resize(w, h)
			if err := g.session.Resize(w, h); err != nil {
				g.log.Warn("resizing scene", zap.Error(err))
			}
		}

		if err := g.session.Update(dt, g.input); err != nil {
			return err
		}
		if g.session.QuitRequested() {
			break
		}

		g.renderer.Begin()
		if err := g.session.Draw(g.renderer); err != nil {
			return fmt.Errorf("drawing: %w", err)
		}
		g.renderer.End()

		if g.input.KeyPressed(input.KeyF12) {
			g.screenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			drawCalls, triangles := g.renderer.Stats()
			g.log.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("draw_calls", drawCalls),
				zap.Int("triangles", triangles))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	g.log.Info("frame loop finished")
	return nil
}

// screenshot captures the back buffer before it is presented.
func (g *Game) screenshot() {
	w, h := g.renderer.Size()
	path, err := g.shots.CaptureFromPixels(framebuffer.ReadBackBuffer(w, h), w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, shaders, renderer and window.
func (g *Game) Close() {
	g.log.Info("closing")
	if g.session != nil {
		if err := g.session.Close(); err != nil {
			g.log.Warn("closing session", zap.Error(err))
		}
	}
	if g.shaders != nil {
		g.shaders.Release()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
