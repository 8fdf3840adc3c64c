// Package transform holds an object's position, orientation and scale and derives
// its world matrices.
package transform

import "github.com/Faultbox/prism/pkg/math"

// Transform is a local-to-world placement. Rotation is stored as pitch, yaw and
// roll in radians (about X, Y and Z).
//
// The world matrix is Translation * Rotation * Scale in column-vector form, so
// scale applies first and translation last. It is cached and rebuilt on the next
// read after any mutation; the inverse-transpose is always rebuilt with it.
type Transform struct {
	position math.Vec3
	rotation math.Vec3
	scale    math.Vec3

	world             math.Mat4
	worldInvTranspose math.Mat4
	dirty             bool
}

// New returns an identity transform.
func New() *Transform {
	return &Transform{
		scale:             math.Vec3One,
		world:             math.Identity(),
		worldInvTranspose: math.Identity(),
	}
}

// Clone returns an independent copy.
func (t *Transform) Clone() *Transform {
	c := *t
	return &c
}

// Position returns the position.
func (t *Transform) Position() math.Vec3 { return t.position }

// Rotation returns pitch, yaw and roll in radians.
func (t *Transform) Rotation() math.Vec3 { return t.rotation }

// Scale returns the per-axis scale.
func (t *Transform) Scale() math.Vec3 { return t.scale }

// SetPosition overwrites the position.
func (t *Transform) SetPosition(p math.Vec3) {
	t.position = p
	t.dirty = true
}

// SetRotation overwrites pitch, yaw and roll.
func (t *Transform) SetRotation(pitchYawRoll math.Vec3) {
	t.rotation = pitchYawRoll
	t.dirty = true
}

// SetScale overwrites the scale.
func (t *Transform) SetScale(s math.Vec3) {
	t.scale = s
	t.dirty = true
}

// MoveAbsolute translates along the world axes.
func (t *Transform) MoveAbsolute(offset math.Vec3) {
	t.position = t.position.Add(offset)
	t.dirty = true
}

// MoveRelative translates along the transform's own rotated axes, so +Z moves
// along Forward.
func (t *Transform) MoveRelative(offset math.Vec3) {
	t.position = t.position.Add(t.orientation().Rotate(offset))
	t.dirty = true
}

// Rotate adds to pitch, yaw and roll.
func (t *Transform) Rotate(pitchYawRoll math.Vec3) {
	t.rotation = t.rotation.Add(pitchYawRoll)
	t.dirty = true
}

// ScaleBy multiplies the current scale component-wise.
func (t *Transform) ScaleBy(factor math.Vec3) {
	t.scale = t.scale.Mul(factor)
	t.dirty = true
}

// Forward returns the local +Z axis in world space.
func (t *Transform) Forward() math.Vec3 {
	return t.orientation().Rotate(math.Vec3Forward)
}

// Up returns the local +Y axis in world space.
func (t *Transform) Up() math.Vec3 {
	return t.orientation().Rotate(math.Vec3Up)
}

// Right returns the local +X axis in world space.
func (t *Transform) Right() math.Vec3 {
	return t.orientation().Rotate(math.Vec3Right)
}

// WorldMatrix returns the local-to-world matrix.
func (t *Transform) WorldMatrix() math.Mat4 {
	t.update()
	return t.world
}

// WorldInverseTransposeMatrix returns the matrix for transforming normals.
func (t *Transform) WorldInverseTransposeMatrix() math.Mat4 {
	t.update()
	return t.worldInvTranspose
}

func (t *Transform) orientation() math.Quat {
	return math.QuatFromPitchYawRoll(t.rotation.X, t.rotation.Y, t.rotation.Z)
}

func (t *Transform) update() {
	if !t.dirty {
		return
	}
	r := math.RotatePitchYawRoll(t.rotation.X, t.rotation.Y, t.rotation.Z)
	t.world = math.Translate(t.position).Mul(r).Mul(math.Scale(t.scale))
	t.worldInvTranspose = t.world.Inverse().Transpose()
	t.dirty = false
}
