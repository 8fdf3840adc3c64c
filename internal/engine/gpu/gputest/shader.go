package gputest

import (
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// Shader is a fake gpu.Shader. Only names listed in Declared are accepted.
// Staged values move to Uploaded on CopyAllBufferData.
type Shader struct {
	Stage    string // "vs" or "ps", prefixed onto logged ops
	Declared map[string]bool
	Staged   map[string]any
	Uploaded map[string]any
	Textures map[string]gpu.Texture
	Samplers map[string]gpu.Sampler

	log *Log
}

// NewShader returns a fake stage declaring names, logging into log.
func NewShader(log *Log, stage string, names ...string) *Shader {
	s := &Shader{
		Stage:    stage,
		Declared: map[string]bool{},
		Staged:   map[string]any{},
		Uploaded: map[string]any{},
		Textures: map[string]gpu.Texture{},
		Samplers: map[string]gpu.Sampler{},
		log:      log,
	}
	for _, n := range names {
		s.Declared[n] = true
	}
	return s
}

// Standard parameter names of the lit shader pair.
var (
	VertexParams = []string{"world", "worldInvTranspose", "view", "projection"}
	PixelParams  = []string{
		"colorTint", "cameraPosition", "roughness", "uvScale", "uvOffset",
		"ambientColor", "lightCount", "lights", "SurfaceTexture", "BasicSampler",
	}
)

func (s *Shader) stage(name string, v any) bool {
	if !s.Declared[name] {
		s.log.add(s.Stage+".Missing", name, v)
		return false
	}
	s.Staged[name] = v
	s.log.add(s.Stage+".Set", name, v)
	return true
}

func (s *Shader) Activate() { s.log.add(s.Stage+".Activate", "", nil) }

func (s *Shader) SetMatrix4x4(name string, m math.Mat4) bool { return s.stage(name, m) }
func (s *Shader) SetFloat(name string, v float32) bool { return s.stage(name, v) }
func (s *Shader) SetFloat2(name string, v math.Vec2) bool { return s.stage(name, v) }
func (s *Shader) SetFloat3(name string, v math.Vec3) bool { return s.stage(name, v) }
func (s *Shader) SetFloat4(name string, v math.Vec4) bool { return s.stage(name, v) }
func (s *Shader) SetInt(name string, v int32) bool { return s.stage(name, v) }

func (s *Shader) SetData(name string, data []byte) bool {
	return s.stage(name, append([]byte(nil), data...))
}

func (s *Shader) SetTexture(name string, t gpu.Texture) bool {
	if !s.Declared[name] {
		s.log.add(s.Stage+".Missing", name, t)
		return false
	}
	s.Textures[name] = t
	s.log.add(s.Stage+".SetTexture", name, t)
	return true
}

func (s *Shader) SetSampler(name string, smp gpu.Sampler) bool {
	if !s.Declared[name] {
		s.log.add(s.Stage+".Missing", name, smp)
		return false
	}
	s.Samplers[name] = smp
	s.log.add(s.Stage+".SetSampler", name, smp)
	return true
}

func (s *Shader) CopyAllBufferData() {
	for k, v := range s.Staged {
		s.Uploaded[k] = v
	}
	s.log.add(s.Stage+".CopyAllBufferData", "", len(s.Staged))
}

var _ gpu.Shader = (*Shader)(nil)
