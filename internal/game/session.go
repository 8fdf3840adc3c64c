package game

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/game/scene"
	"github.com/Faultbox/prism/internal/game/states"
	"github.com/Faultbox/prism/internal/logger"
)

// ErrNoScene is returned by Reload before any scene was opened.
var ErrNoScene = errors.New("no scene opened")

// Session owns the running scene, reloads it on request or when its file
// changes, and forwards frames to it. Both front ends drive one.
type Session struct {
	cfg      *config.Config
	device   gpu.Device
	programs scene.Programs
	manager  *states.Manager
	log      *zap.Logger

	path    string
	watcher *scene.Watcher

	width, height int
}

// NewSession creates a session with no scene.
func NewSession(cfg *config.Config, device gpu.Device, programs scene.Programs) *Session {
	s := &Session{
		cfg:      cfg,
		device:   device,
		programs: programs,
		manager:  states.NewManager(),
		log:      logger.For("session"),
	}
	// No state is running yet, so this only records the size.
	_ = s.Resize(cfg.Graphics.Width, cfg.Graphics.Height)
	return s
}

// Open loads a scene file and schedules it to replace the running scene at
// the start of the next Update. On error the running scene is kept.
func (s *Session) Open(path string) error {
	sc, err := scene.Load(s.device, path, s.options(path))
	if err != nil {
		return err
	}
	s.manager.Change(sc)

	if s.path != path {
		s.path = path
		if err := s.watch(); err != nil {
			s.log.Warn("scene file will not be watched", zap.String("path", path), zap.Error(err))
		}
	}
	s.log.Info("scene loaded", zap.String("path", path))
	return nil
}

// Reload loads the current scene file again.
func (s *Session) Reload() error {
	if s.path == "" {
		return ErrNoScene
	}
	return s.Open(s.path)
}

func (s *Session) options(path string) scene.Options {
	base := s.cfg.Scene.AssetDir
	if base == "" {
		base = filepath.Dir(path)
	}
	aspect := float32(16) / 9
	if s.width > 0 && s.height > 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	return scene.Options{
		Programs: s.programs,
		BaseDir:  base,
		Camera:   s.cfg.Camera,
		Aspect:   aspect,
	}
}

func (s *Session) watch() error {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.Warn("closing watcher", zap.Error(err))
		}
		s.watcher = nil
	}
	if !s.cfg.Scene.Watch {
		return nil
	}
	w, err := scene.Watch(s.path)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Path returns the file of the scene last opened.
func (s *Session) Path() string {
	return s.path
}

// Scene returns the running scene, or nil before the first Update.
func (s *Session) Scene() *scene.Scene {
	sc, _ := s.manager.Current().(*scene.Scene)
	return sc
}

// Resize records a new drawable size and forwards it to the running scene.
func (s *Session) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.width, s.height = width, height
	return s.manager.Resize(width, height)
}

// Update handles session keys and file changes, then advances the scene.
// F5 reloads the scene file; P toggles entity animation.
func (s *Session) Update(dt float32, in *input.State) error {
	reload := in.KeyPressed(input.KeyF5)
	if s.watcher != nil {
		select {
		case <-s.watcher.Changes():
			s.log.Info("scene file changed", zap.String("path", s.path))
			reload = true
		default:
		}
	}
	if reload {
		if err := s.Reload(); err != nil {
			s.log.Error("reloading scene", zap.Error(err))
		}
	}

	switching := s.manager.Pending()
	if err := s.manager.Update(dt, in); err != nil {
		if switching {
			s.log.Error("starting scene, keeping the previous one", zap.Error(err))
			return nil
		}
		return fmt.Errorf("updating scene: %w", err)
	}

	if sc := s.Scene(); sc != nil && in.KeyPressed(input.KeyP) {
		sc.State.Spin = !sc.State.Spin
	}
	return nil
}

// Draw renders the running scene.
func (s *Session) Draw(ctx gpu.Context) error {
	return s.manager.Draw(ctx)
}

// QuitRequested reports whether the running scene asked to quit.
func (s *Session) QuitRequested() bool {
	sc := s.Scene()
	return sc != nil && sc.State.QuitRequested
}

// Close shuts the scene down and stops watching.
func (s *Session) Close() error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}
	errs = append(errs, s.manager.Shutdown())
	return errors.Join(errs...)
}
