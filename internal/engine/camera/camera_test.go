package camera

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/pkg/math"
)

const eps = 1e-4

func newCamera(t *testing.T, opts ...Option) *Camera {
	t.Helper()
	c, err := New("main", math.Vec3{0, 0, -5}, 16.0/9.0, opts...)
	require.NoError(t, err)
	return c
}

func TestNewDefaults(t *testing.T) {
	c := newCamera(t)
	assert.Equal(t, "main", c.Name())
	assert.Equal(t, math.Vec3{0, 0, -5}, c.Position())
	assert.InDelta(t, math32.Pi/4, c.FieldOfView(), eps)
	assert.InDelta(t, DefaultNearClip, c.NearClip(), eps)
	assert.InDelta(t, DefaultFarClip, c.FarClip(), eps)
	assert.InDelta(t, DefaultMoveSpeed, c.MoveSpeed(), eps)
	assert.InDelta(t, DefaultMouseSpeed, c.MouseSpeed(), eps)
	assert.Equal(t, Perspective, c.ProjectionMode())

	want := math.PerspectiveFovLH(math32.Pi/4, 16.0/9.0, DefaultNearClip, DefaultFarClip)
	assert.Equal(t, want, c.ProjectionMatrix())
}

func TestNewFullForm(t *testing.T) {
	c := newCamera(t,
		WithFieldOfView(1.2),
		WithClipPlanes(0.5, 250),
		WithMoveSpeed(10),
		WithMouseSpeed(0.01),
		WithOrientation(math.Vec3{0.2, 1, 0}),
	)
	assert.InDelta(t, 1.2, c.FieldOfView(), eps)
	assert.InDelta(t, 0.5, c.NearClip(), eps)
	assert.InDelta(t, 250, c.FarClip(), eps)
	assert.InDelta(t, 10, c.MoveSpeed(), eps)
	assert.Equal(t, math.Vec3{0.2, 1, 0}, c.Transform().Rotation())
}

func TestViewLooksAlongForward(t *testing.T) {
	c := newCamera(t)
	// A point one unit ahead of the camera sits on the view +Z axis.
	ahead := c.Position().Add(c.Transform().Forward())
	p := c.ViewMatrix().TransformPoint(ahead)
	assert.InDelta(t, 0, p.X, eps)
	assert.InDelta(t, 0, p.Y, eps)
	assert.InDelta(t, 1, p.Z, eps)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		aspect float32
		opts   []Option
		field  string
	}{
		{"zero aspect", 0, nil, "aspect"},
		{"negative aspect", -1, nil, "aspect"},
		{"nan aspect", math32.NaN(), nil, "aspect"},
		{"zero fov", 1, []Option{WithFieldOfView(0)}, "fov"},
		{"straight fov", 1, []Option{WithFieldOfView(math32.Pi)}, "fov"},
		{"zero near", 1, []Option{WithClipPlanes(0, 10)}, "near"},
		{"near equals far", 1, []Option{WithClipPlanes(5, 5)}, "far"},
		{"far before near", 1, []Option{WithClipPlanes(5, 1)}, "far"},
		{"zero ortho width", 1, []Option{WithOrthographicWidth(0)}, "orthoWidth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", math.Vec3{}, tt.aspect, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUpdateProjectionChangesOnlyProjection(t *testing.T) {
	c := newCamera(t)
	c.Transform().SetRotation(math.Vec3{0.3, -0.7, 0})
	c.UpdateViewMatrix()

	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()

	require.NoError(t, c.UpdateProjectionMatrix(4.0/3.0))
	assert.Equal(t, view, c.ViewMatrix())
	assert.NotEqual(t, proj, c.ProjectionMatrix())
	assert.InDelta(t, 4.0/3.0, c.AspectRatio(), eps)
}

func TestUpdateProjectionRejectsDegenerateAspect(t *testing.T) {
	c := newCamera(t)
	proj := c.ProjectionMatrix()

	err := c.UpdateProjectionMatrix(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, proj, c.ProjectionMatrix(), "projection kept on bad input")
	assert.InDelta(t, 16.0/9.0, c.AspectRatio(), eps)
}

func TestOrthographicProjection(t *testing.T) {
	c := newCamera(t, WithProjection(Orthographic), WithOrthographicWidth(20))
	want := math.OrthographicLH(20, 20/(16.0/9.0), DefaultNearClip, DefaultFarClip)
	assert.True(t, c.ProjectionMatrix().ApproxEqual(want, eps))

	c.SetProjectionMode(Perspective)
	assert.Equal(t, Perspective, c.ProjectionMode())
	assert.Equal(t, float32(1), c.ProjectionMatrix()[11], "perspective divides by view depth")
}

func TestSetters(t *testing.T) {
	c := newCamera(t)
	require.NoError(t, c.SetFieldOfView(1))
	require.NoError(t, c.SetClipPlanes(1, 10))
	require.NoError(t, c.SetOrthographicWidth(4))
	assert.ErrorIs(t, c.SetFieldOfView(-1), ErrInvalidParameter)
	assert.ErrorIs(t, c.SetClipPlanes(10, 1), ErrInvalidParameter)
	assert.ErrorIs(t, c.SetOrthographicWidth(0), ErrInvalidParameter)
	assert.InDelta(t, 1, c.FieldOfView(), eps)
	assert.InDelta(t, 1, c.NearClip(), eps)
	assert.InDelta(t, 4, c.OrthographicWidth(), eps)
}

func TestUpdateMovement(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math.Vec3
	}{
		{input.KeyW, math.Vec3{0, 0, 3}},
		{input.KeyS, math.Vec3{0, 0, -3}},
		{input.KeyD, math.Vec3{3, 0, 0}},
		{input.KeyA, math.Vec3{-3, 0, 0}},
		{input.KeySpace, math.Vec3{0, 3, 0}},
		{input.KeyX, math.Vec3{0, -3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			c, err := New("fly", math.Vec3{}, 1)
			require.NoError(t, err)

			in := input.New()
			in.SetKey(tt.key, true)
			c.Update(1, in)

			got := c.Position()
			assert.InDelta(t, tt.want.X, got.X, eps)
			assert.InDelta(t, tt.want.Y, got.Y, eps)
			assert.InDelta(t, tt.want.Z, got.Z, eps)
		})
	}
}

func TestUpdateMovementScalesWithDeltaTime(t *testing.T) {
	c := newCamera(t, WithMoveSpeed(4))
	in := input.New()
	in.SetKey(input.KeyW, true)
	c.Update(0.25, in)
	assert.InDelta(t, -4, c.Position().Z, eps)
}

func TestMouseLookRequiresButton(t *testing.T) {
	c := newCamera(t)
	in := input.New()
	in.MoveMouse(0, 0, 100, 50)

	c.Update(0.016, in)
	assert.Equal(t, math.Vec3{}, c.Transform().Rotation(), "no rotation without the button")

	in.SetMouseButton(input.MouseLeft, true)
	c.Update(0.016, in)
	r := c.Transform().Rotation()
	assert.InDelta(t, 50*DefaultMouseSpeed, r.X, eps)
	assert.InDelta(t, 100*DefaultMouseSpeed, r.Y, eps)
	assert.InDelta(t, 0, r.Z, eps)
}

func TestPitchClamped(t *testing.T) {
	c := newCamera(t)
	in := input.New()
	in.SetMouseButton(input.MouseLeft, true)

	for _, dy := range []float32{1e4, 3e5, -1e6, 2e6, 7e3} {
		in.BeginFrame()
		in.MoveMouse(0, 0, 13, dy)
		c.Update(0.016, in)

		pitch := c.Transform().Rotation().X
		assert.LessOrEqual(t, pitch, float32(MaxPitch))
		assert.GreaterOrEqual(t, pitch, float32(-MaxPitch))
	}

	// Looking straight down still yields a finite view.
	for _, v := range c.ViewMatrix() {
		assert.False(t, math32.IsNaN(v), "view matrix contains NaN: %v", c.ViewMatrix())
	}
}

func TestProjectionString(t *testing.T) {
	assert.Equal(t, "perspective", Perspective.String())
	assert.Equal(t, "orthographic", Orthographic.String())
	assert.Equal(t, "unknown", Projection(9).String())
}
