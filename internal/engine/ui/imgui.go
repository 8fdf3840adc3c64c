// Package ui wraps the cimgui SDL backend used by the inspector.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
)

// Options configures the backend window.
type Options struct {
	Title  string
	Width  int
	Height int

	// FontPaths are tried in order; the first existing file is loaded.
	// With none found ImGui keeps its built-in font.
	FontPaths []string
	FontSize  float32
}

// DefaultFontPaths lists common system fonts.
var DefaultFontPaths = []string{
	"/System/Library/Fonts/SFNS.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// Backend owns the ImGui context and its SDL window.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// NewBackend creates the window and initializes OpenGL on its context.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{log: logger.For("ui")}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont(opts.FontPaths, opts.FontSize)
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func (b *Backend) loadFont(paths []string, size float32) {
	path := FirstExisting(paths)
	if path == "" {
		return
	}
	if size <= 0 {
		size = 16
	}
	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, nil)
	b.log.Debug("font loaded", zap.String("path", path), zap.Float32("size", size))
}

// FirstExisting returns the first path that exists, or "".
func FirstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Run starts the render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetShouldClose asks the loop to stop after the current frame.
func (b *Backend) SetShouldClose(v bool) {
	b.backend.SetShouldClose(v)
}

// Viewport returns the main viewport work area.
func Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
