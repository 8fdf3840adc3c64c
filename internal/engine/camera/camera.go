// Package camera provides a free-fly camera producing view and projection matrices.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/transform"
	"github.com/Faultbox/prism/pkg/math"
)

// Defaults applied by New before options.
const (
	DefaultFieldOfView       = math32.Pi / 4
	DefaultNearClip          = 0.01
	DefaultFarClip           = 100
	DefaultMoveSpeed         = 3
	DefaultMouseSpeed        = 0.005
	DefaultOrthographicWidth = 10
)

// MaxPitch is the pitch limit in either direction, straight up or down.
const MaxPitch = math32.Pi / 2

// Projection selects the projection model.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	switch p {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return "unknown"
}

// Input is what the camera reads each frame. input.State implements it.
type Input interface {
	KeyDown(k input.Key) bool
	MouseButtonDown(b input.MouseButton) bool
	MouseDelta() (dx, dy float32)
}

// Camera owns a Transform and caches view and projection matrices derived from it.
type Camera struct {
	name      string
	transform *transform.Transform

	aspect     float32
	fov        float32
	near, far  float32
	orthoWidth float32
	projection Projection

	moveSpeed  float32 // units per second
	mouseSpeed float32 // radians per pixel

	view math.Mat4
	proj math.Mat4
}

// Option configures a camera at construction.
type Option func(*Camera)

// WithFieldOfView sets the vertical field of view in radians.
func WithFieldOfView(fov float32) Option {
	return func(c *Camera) { c.fov = fov }
}

// WithClipPlanes sets the near and far clip distances.
func WithClipPlanes(near, far float32) Option {
	return func(c *Camera) { c.near, c.far = near, far }
}

// WithMoveSpeed sets the movement speed in units per second.
func WithMoveSpeed(speed float32) Option {
	return func(c *Camera) { c.moveSpeed = speed }
}

// WithMouseSpeed sets the look speed in radians per pixel of mouse motion.
func WithMouseSpeed(speed float32) Option {
	return func(c *Camera) { c.mouseSpeed = speed }
}

// WithOrientation sets the initial pitch, yaw and roll in radians.
func WithOrientation(pitchYawRoll math.Vec3) Option {
	return func(c *Camera) { c.transform.SetRotation(pitchYawRoll) }
}

// WithProjection sets the projection model.
func WithProjection(p Projection) Option {
	return func(c *Camera) { c.projection = p }
}

// WithOrthographicWidth sets the view volume width used by orthographic projection.
func WithOrthographicWidth(width float32) Option {
	return func(c *Camera) { c.orthoWidth = width }
}

// New creates a camera at position. Parameters are validated and a
// *ValidationError is returned for values that would produce a degenerate projection.
func New(name string, position math.Vec3, aspect float32, opts ...Option) (*Camera, error) {
	c := &Camera{
		name:       name,
		transform:  transform.New(),
		aspect:     aspect,
		fov:        DefaultFieldOfView,
		near:       DefaultNearClip,
		far:        DefaultFarClip,
		orthoWidth: DefaultOrthographicWidth,
		moveSpeed:  DefaultMoveSpeed,
		mouseSpeed: DefaultMouseSpeed,
	}
	c.transform.SetPosition(position)
	for _, opt := range opts {
		opt(c)
	}

	if err := validate(c.aspect, c.fov, c.near, c.far, c.orthoWidth); err != nil {
		return nil, err
	}
	c.clampPitch()
	c.UpdateViewMatrix()
	c.rebuildProjection()
	return c, nil
}

// Update applies one frame of fly controls: W/S/A/D move along forward and right,
// Space/X move along up, and dragging with the left button looks around.
func (c *Camera) Update(dt float32, in Input) {
	step := c.moveSpeed * dt
	var move math.Vec3
	if in.KeyDown(input.KeyW) {
		move.Z += step
	}
	if in.KeyDown(input.KeyS) {
		move.Z -= step
	}
	if in.KeyDown(input.KeyD) {
		move.X += step
	}
	if in.KeyDown(input.KeyA) {
		move.X -= step
	}
	if in.KeyDown(input.KeySpace) {
		move.Y += step
	}
	if in.KeyDown(input.KeyX) {
		move.Y -= step
	}
	if move != (math.Vec3{}) {
		c.transform.MoveRelative(move)
	}

	if in.MouseButtonDown(input.MouseLeft) {
		dx, dy := in.MouseDelta()
		c.transform.Rotate(math.Vec3{X: dy * c.mouseSpeed, Y: dx * c.mouseSpeed})
		c.clampPitch()
	}

	c.UpdateViewMatrix()
}

// UpdateViewMatrix rebuilds the view matrix from the transform, using world up
// unless the camera looks straight along it.
func (c *Camera) UpdateViewMatrix() {
	pos := c.transform.Position()
	forward := c.transform.Forward()
	up := math.Vec3Up
	if up.Cross(forward).Length() < 1e-6 {
		up = c.transform.Up()
	}
	c.view = math.LookToLH(pos, forward, up)
}

// UpdateProjectionMatrix stores a new aspect ratio and rebuilds the projection.
// The view matrix is untouched. An invalid aspect leaves the camera unchanged.
func (c *Camera) UpdateProjectionMatrix(aspect float32) error {
	if err := validate(aspect, c.fov, c.near, c.far, c.orthoWidth); err != nil {
		return err
	}
	c.aspect = aspect
	c.rebuildProjection()
	return nil
}

func (c *Camera) rebuildProjection() {
	switch c.projection {
	case Orthographic:
		c.proj = math.OrthographicLH(c.orthoWidth, c.orthoWidth/c.aspect, c.near, c.far)
	default:
		c.proj = math.PerspectiveFovLH(c.fov, c.aspect, c.near, c.far)
	}
}

func (c *Camera) clampPitch() {
	r := c.transform.Rotation()
	clamped := math32.Max(-MaxPitch, math32.Min(MaxPitch, r.X))
	if clamped != r.X {
		r.X = clamped
		c.transform.SetRotation(r)
	}
}

// SetProjectionMode switches projection model and rebuilds the projection.
func (c *Camera) SetProjectionMode(p Projection) {
	c.projection = p
	c.rebuildProjection()
}

// SetFieldOfView sets the vertical field of view in radians.
func (c *Camera) SetFieldOfView(fov float32) error {
	if err := validate(c.aspect, fov, c.near, c.far, c.orthoWidth); err != nil {
		return err
	}
	c.fov = fov
	c.rebuildProjection()
	return nil
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float32) error {
	if err := validate(c.aspect, c.fov, near, far, c.orthoWidth); err != nil {
		return err
	}
	c.near, c.far = near, far
	c.rebuildProjection()
	return nil
}

// SetOrthographicWidth sets the orthographic view width.
func (c *Camera) SetOrthographicWidth(width float32) error {
	if err := validate(c.aspect, c.fov, c.near, c.far, width); err != nil {
		return err
	}
	c.orthoWidth = width
	c.rebuildProjection()
	return nil
}

// SetMoveSpeed sets the movement speed in units per second.
func (c *Camera) SetMoveSpeed(speed float32) { c.moveSpeed = speed }

// SetMouseSpeed sets the look speed in radians per pixel.
func (c *Camera) SetMouseSpeed(speed float32) { c.mouseSpeed = speed }

func (c *Camera) Name() string { return c.name }
func (c *Camera) Transform() *transform.Transform { return c.transform }
func (c *Camera) Position() math.Vec3 { return c.transform.Position() }
func (c *Camera) ViewMatrix() math.Mat4 { return c.view }
func (c *Camera) ProjectionMatrix() math.Mat4 { return c.proj }
func (c *Camera) ProjectionMode() Projection { return c.projection }
func (c *Camera) AspectRatio() float32 { return c.aspect }
func (c *Camera) FieldOfView() float32 { return c.fov }
func (c *Camera) NearClip() float32 { return c.near }
func (c *Camera) FarClip() float32 { return c.far }
func (c *Camera) OrthographicWidth() float32 { return c.orthoWidth }
func (c *Camera) MoveSpeed() float32 { return c.moveSpeed }
func (c *Camera) MouseSpeed() float32 { return c.mouseSpeed }
