// Package scene composes cameras, entities, lights and the sky into frames
// and manages their lifecycle.
package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/resource"
	"github.com/Faultbox/prism/internal/engine/sky"
	"github.com/Faultbox/prism/internal/game/entity"
	"github.com/Faultbox/prism/internal/logger"
)

var (
	// ErrNoCamera is returned by Init for a scene without cameras.
	ErrNoCamera = errors.New("scene has no camera")
	// ErrTooManyLights is returned when the light list is full.
	ErrTooManyLights = errors.New("too many lights")
)

// Input is what a scene reads each frame. input.State implements it.
type Input interface {
	camera.Input
	KeyPressed(k input.Key) bool
}

// Scene owns the objects drawn each frame and the resources they share.
type Scene struct {
	Name  string
	State State

	// Overlay, if set, is called at the end of Draw to render debug UI.
	Overlay func()

	phase    Phase
	cameras  []*camera.Camera
	entities []*entity.Entity
	lights   *lighting.List
	sky      *sky.Sky

	meshes    map[string]entity.MeshHandle
	materials map[string]entity.MaterialHandle
	textures  map[string]gpu.Texture
	samplers  map[string]gpu.Sampler
	builtins  []gpu.Releaser

	lightWarned map[gpu.Shader]bool
}

// New creates an empty scene in the Uninitialized phase.
func New(name string) *Scene {
	return &Scene{
		Name:        name,
		State:       DefaultState(),
		lights:      lighting.NewList(),
		meshes:      map[string]entity.MeshHandle{},
		materials:   map[string]entity.MaterialHandle{},
		textures:    map[string]gpu.Texture{},
		samplers:    map[string]gpu.Sampler{},
		lightWarned: map[gpu.Shader]bool{},
	}
}

// Phase returns the current lifecycle phase.
func (s *Scene) Phase() Phase {
	return s.phase
}

func (s *Scene) requireLive() error {
	if s.phase == PhaseShutdown {
		return fmt.Errorf("scene %q: %w (%s)", s.Name, ErrInvalidPhase, s.phase)
	}
	return nil
}

func (s *Scene) requireStarted() error {
	if s.phase != PhaseInitialized && s.phase != PhaseRunning {
		return fmt.Errorf("scene %q: %w (%s)", s.Name, ErrInvalidPhase, s.phase)
	}
	return nil
}

// AddCamera appends a camera. The first camera added is active by default.
func (s *Scene) AddCamera(c *camera.Camera) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	s.cameras = append(s.cameras, c)
	return nil
}

// AddEntity appends an entity. The scene releases it on Shutdown.
func (s *Scene) AddEntity(e *entity.Entity) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	s.entities = append(s.entities, e)
	return nil
}

// RemoveEntity releases and removes the entity at index i.
func (s *Scene) RemoveEntity(i int) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.entities) {
		return fmt.Errorf("entity index %d out of range", i)
	}
	s.entities[i].Release()
	s.entities = slices.Delete(s.entities, i, i+1)
	return nil
}

// AddLight appends a light with its direction normalized.
func (s *Scene) AddLight(l lighting.Light) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	if !s.lights.Add(l) {
		return fmt.Errorf("%w: limit is %d", ErrTooManyLights, lighting.MaxLights)
	}
	s.lights.Normalize()
	return nil
}

// SetSky replaces the sky, releasing the previous one.
func (s *Scene) SetSky(sk *sky.Sky) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	if s.sky != nil && s.sky != sk {
		s.sky.Release()
	}
	s.sky = sk
	return nil
}

// AddMesh registers a named mesh. The scene keeps the passed reference and
// drops it on Shutdown.
func (s *Scene) AddMesh(name string, m *resource.Handle[*mesh.Mesh]) {
	if old, ok := s.meshes[name]; ok {
		old.Release()
	}
	s.meshes[name] = m
}

// AddMaterial registers a named material. The scene keeps the passed reference.
func (s *Scene) AddMaterial(name string, m *resource.Handle[*material.Material]) {
	if old, ok := s.materials[name]; ok {
		old.Release()
	}
	s.materials[name] = m
}

// AddTexture registers a texture released on Shutdown.
func (s *Scene) AddTexture(name string, t gpu.Texture) {
	s.textures[name] = t
}

// AddSampler registers a sampler released on Shutdown.
func (s *Scene) AddSampler(name string, smp gpu.Sampler) {
	s.samplers[name] = smp
}

// own registers an unnamed resource released on Shutdown.
func (s *Scene) own(r gpu.Releaser) {
	s.builtins = append(s.builtins, r)
}

// Mesh returns a registered mesh handle without acquiring it.
func (s *Scene) Mesh(name string) (entity.MeshHandle, bool) {
	m, ok := s.meshes[name]
	return m, ok
}

// Material returns a registered material handle without acquiring it.
func (s *Scene) Material(name string) (entity.MaterialHandle, bool) {
	m, ok := s.materials[name]
	return m, ok
}

// MaterialNames returns registered material names in sorted order.
func (s *Scene) MaterialNames() []string {
	return slices.Sorted(maps.Keys(s.materials))
}

// Init moves the scene to Initialized. It requires at least one camera.
func (s *Scene) Init() error {
	if s.phase != PhaseUninitialized {
		return fmt.Errorf("scene %q init: %w (%s)", s.Name, ErrInvalidPhase, s.phase)
	}
	if len(s.cameras) == 0 {
		return fmt.Errorf("scene %q: %w", s.Name, ErrNoCamera)
	}
	s.lights.Normalize()
	s.clampActiveCamera()
	s.phase = PhaseInitialized

	logger.For("scene").Info("scene initialized",
		zap.String("scene", s.Name),
		zap.Int("cameras", len(s.cameras)),
		zap.Int("entities", len(s.entities)),
		zap.Int("lights", s.lights.Len()),
		zap.Bool("sky", s.sky != nil))
	return nil
}

// Update advances one frame: Escape requests quit, Tab cycles cameras, the
// active camera reads input and entities animate.
func (s *Scene) Update(dt float32, in Input) error {
	if err := s.requireStarted(); err != nil {
		return err
	}
	s.phase = PhaseRunning

	if in.KeyPressed(input.KeyEscape) {
		s.State.QuitRequested = true
	}
	if in.KeyPressed(input.KeyTab) {
		s.State.ActiveCamera++
	}
	s.clampActiveCamera()

	s.ActiveCamera().Update(dt, in)

	if s.State.Spin {
		for _, e := range s.entities {
			e.Update(dt)
		}
	}

	s.State.Frame++
	s.State.Elapsed += float64(dt)
	return nil
}

// Draw clears the target, uploads lights, draws every entity with the active
// camera, then the sky, then the overlay.
func (s *Scene) Draw(ctx gpu.Context) error {
	if err := s.requireStarted(); err != nil {
		return err
	}
	s.clampActiveCamera()
	cam := s.ActiveCamera()

	ctx.Clear(s.State.ClearColor, 1.0)

	s.uploadLights()
	for _, e := range s.entities {
		e.Draw(ctx, cam)
	}
	if s.sky != nil && s.State.ShowSky {
		s.sky.Draw(ctx, cam)
	}
	if s.Overlay != nil {
		s.Overlay()
	}
	return nil
}

// uploadLights stages the light block once per distinct pixel shader.
func (s *Scene) uploadLights() {
	seen := map[gpu.Shader]bool{}
	for _, e := range s.entities {
		ps := e.Material().PixelShader()
		if seen[ps] {
			continue
		}
		seen[ps] = true
		if !s.lights.Upload(ps, s.State.Ambient) && !s.lightWarned[ps] {
			s.lightWarned[ps] = true
			logger.For("scene").Debug("pixel shader ignores some lighting parameters",
				zap.String("material", e.Material().Name()))
		}
	}
}

// OnResize recomputes every camera's projection for a new drawable size.
// A zero-sized (minimized) window is ignored.
func (s *Scene) OnResize(width, height int) error {
	if err := s.requireLive(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	aspect := float32(width) / float32(height)
	var errs []error
	for _, c := range s.cameras {
		if err := c.UpdateProjectionMatrix(aspect); err != nil {
			errs = append(errs, fmt.Errorf("camera %q: %w", c.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown releases entities, the sky and every registered resource.
func (s *Scene) Shutdown() error {
	if err := s.requireLive(); err != nil {
		return err
	}
	for _, e := range s.entities {
		e.Release()
	}
	s.entities = nil
	if s.sky != nil {
		s.sky.Release()
		s.sky = nil
	}
	for _, m := range s.meshes {
		m.Release()
	}
	for _, m := range s.materials {
		m.Release()
	}
	for _, t := range s.textures {
		t.Release()
	}
	for _, smp := range s.samplers {
		smp.Release()
	}
	for _, r := range s.builtins {
		r.Release()
	}
	s.builtins = nil
	clear(s.meshes)
	clear(s.materials)
	clear(s.textures)
	clear(s.samplers)
	s.phase = PhaseShutdown

	logger.For("scene").Info("scene shut down", zap.String("scene", s.Name))
	return nil
}

func (s *Scene) clampActiveCamera() {
	n := len(s.cameras)
	if n == 0 {
		s.State.ActiveCamera = 0
		return
	}
	s.State.ActiveCamera = ((s.State.ActiveCamera % n) + n) % n
}

// ActiveCamera returns the camera Draw renders from, or nil before any camera is added.
func (s *Scene) ActiveCamera() *camera.Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	s.clampActiveCamera()
	return s.cameras[s.State.ActiveCamera]
}

// SetActiveCamera selects the camera at index i.
func (s *Scene) SetActiveCamera(i int) error {
	if i < 0 || i >= len(s.cameras) {
		return fmt.Errorf("camera index %d out of range (have %d)", i, len(s.cameras))
	}
	s.State.ActiveCamera = i
	return nil
}

func (s *Scene) Cameras() []*camera.Camera { return s.cameras }
func (s *Scene) Entities() []*entity.Entity { return s.entities }

// EntityIndex returns the position of the entity with the given ID, or -1.
func (s *Scene) EntityIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.entities, func(e *entity.Entity) bool { return e.ID == id })
}
func (s *Scene) Lights() *lighting.List { return s.lights }
func (s *Scene) Sky() *sky.Sky { return s.sky }
