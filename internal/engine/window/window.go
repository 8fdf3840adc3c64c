// Package window handles SDL2 window and OpenGL context creation and feeds
// SDL events into input.State.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	MSAA       int
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// New creates a window with an OpenGL 4.1 core context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.For("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	if cfg.MSAA > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.MSAA)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("msaa", cfg.MSAA))

	return w, nil
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// PollEvents drains the SDL event queue into in. It starts a new input frame
// first, so edge and delta queries cover exactly the events polled here.
func (w *Window) PollEvents(in *input.State) {
	in.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.RequestQuit()
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				in.Resize(w.DrawableSize())
			}
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			in.SetKey(MapKey(e.Keysym.Sym), e.State == sdl.PRESSED)
		case *sdl.MouseButtonEvent:
			if b, ok := MapButton(e.Button); ok {
				in.SetMouseButton(b, e.State == sdl.PRESSED)
			}
		case *sdl.MouseMotionEvent:
			in.MoveMouse(float32(e.X), float32(e.Y), float32(e.XRel), float32(e.YRel))
		case *sdl.MouseWheelEvent:
			in.Scroll(float32(e.Y))
		}
	}
}

// MapKey translates an SDL keycode to the keys the renderer reacts to.
func MapKey(sym sdl.Keycode) input.Key {
	switch sym {
	case sdl.K_w:
		return input.KeyW
	case sdl.K_a:
		return input.KeyA
	case sdl.K_s:
		return input.KeyS
	case sdl.K_d:
		return input.KeyD
	case sdl.K_SPACE:
		return input.KeySpace
	case sdl.K_x:
		return input.KeyX
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_TAB:
		return input.KeyTab
	case sdl.K_p:
		return input.KeyP
	case sdl.K_F1:
		return input.KeyF1
	case sdl.K_F5:
		return input.KeyF5
	case sdl.K_F12:
		return input.KeyF12
	}
	return input.KeyUnknown
}

// MapButton translates an SDL mouse button index.
func MapButton(button uint8) (input.MouseButton, bool) {
	switch button {
	case sdl.BUTTON_LEFT:
		return input.MouseLeft, true
	case sdl.BUTTON_MIDDLE:
		return input.MouseMiddle, true
	case sdl.BUTTON_RIGHT:
		return input.MouseRight, true
	}
	return 0, false
}
