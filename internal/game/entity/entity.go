// Package entity implements drawable game entities: a transform paired with a
// shared mesh and a shared material.
package entity

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/resource"
	"github.com/Faultbox/prism/internal/engine/transform"
	"github.com/Faultbox/prism/pkg/math"
)

var (
	ErrMissingMesh     = errors.New("entity has no mesh")
	ErrMissingMaterial = errors.New("entity has no material")
	// ErrReleased is returned by operations on an entity whose references were dropped.
	ErrReleased = errors.New("entity released")
)

// idSpace namespaces the name-derived IDs of StableID.
var idSpace = uuid.MustParse("6f1f7a52-3c4e-4b8e-9a55-2d4b1c0e9e11")

// StableID derives an ID from a scope and a name, so an entity rebuilt from
// the same description keeps its identity across reloads.
func StableID(scope, name string) uuid.UUID {
	return uuid.NewSHA1(idSpace, []byte(scope+"\x00"+name))
}

// MeshHandle and MaterialHandle are the shared references an entity holds.
type (
	MeshHandle     = *resource.Handle[*mesh.Mesh]
	MaterialHandle = *resource.Handle[*material.Material]
)

// Entity owns one Transform and holds one reference each to a mesh and a material.
type Entity struct {
	// ID identifies the entity in editors; random unless set from StableID.
	ID   uuid.UUID
	Name string

	transform *transform.Transform
	mesh      MeshHandle
	material  MaterialHandle

	// Spin is a pitch/yaw/roll rate in radians per second applied by Update.
	Spin math.Vec3

	released bool
}

// New creates an entity at the origin. The entity takes ownership of the
// references passed in; call Acquire on a handle first to keep your own.
func New(name string, m MeshHandle, mat MaterialHandle) (*Entity, error) {
	if m == nil {
		return nil, ErrMissingMesh
	}
	if mat == nil {
		return nil, ErrMissingMaterial
	}
	return &Entity{
		ID:        uuid.New(),
		Name:      name,
		transform: transform.New(),
		mesh:      m,
		material:  mat,
	}, nil
}

// Update advances per-frame animation.
func (e *Entity) Update(dt float32) {
	if e.Spin != (math.Vec3{}) {
		e.transform.Rotate(e.Spin.Scale(dt))
	}
}

// Draw fully binds the material for this entity's transform, then draws the mesh.
func (e *Entity) Draw(ctx gpu.Context, cam material.Viewer) {
	e.material.Get().Prepare(e.transform, cam)
	e.mesh.Get().Draw(ctx)
}

// Clone returns a new entity with a fresh ID, a copied transform and new
// references to the same mesh and material.
func (e *Entity) Clone(name string) (*Entity, error) {
	if e.released {
		return nil, ErrReleased
	}
	return &Entity{
		ID:        uuid.New(),
		Name:      name,
		transform: e.transform.Clone(),
		mesh:      e.mesh.Acquire(),
		material:  e.material.Acquire(),
		Spin:      e.Spin,
	}, nil
}

// SetMaterial swaps the material, releasing the previous reference. On error
// the caller keeps ownership of mat.
func (e *Entity) SetMaterial(mat MaterialHandle) error {
	if mat == nil {
		return ErrMissingMaterial
	}
	if e.released {
		return ErrReleased
	}
	e.material.Release()
	e.material = mat
	return nil
}

// Release drops the entity's mesh and material references. Calling it twice is a no-op.
func (e *Entity) Release() {
	if e.released {
		return
	}
	e.released = true
	e.mesh.Release()
	e.material.Release()
}

// Released reports whether Release was called.
func (e *Entity) Released() bool { return e.released }

func (e *Entity) Transform() *transform.Transform { return e.transform }
func (e *Entity) Mesh() *mesh.Mesh { return e.mesh.Get() }
func (e *Entity) Material() *material.Material { return e.material.Get() }
func (e *Entity) MeshHandle() MeshHandle { return e.mesh }
func (e *Entity) MaterialHandle() MaterialHandle { return e.material }
