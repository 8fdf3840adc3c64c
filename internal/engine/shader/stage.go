package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// GLTexture is implemented by textures created by the OpenGL renderer.
type GLTexture interface {
	GLName() uint32
	GLTarget() uint32
}

// GLSampler is implemented by samplers created by the OpenGL renderer.
type GLSampler interface {
	GLName() uint32
}

type uniform struct {
	location int32
	unit     int32 // texture unit for sampler uniforms, otherwise -1
}

type block struct {
	index   uint32
	binding uint32
	size    int
	ubo     uint32
	data    []byte
	dirty   bool
}

// Stage is one compiled stage. Parameter setters stage values and
// CopyAllBufferData uploads them, so values set before a program is activated
// still apply to the next draw.
type Stage struct {
	name     string
	kind     Kind
	program  uint32
	pipeline uint32

	uniforms map[string]uniform
	blocks   map[string]*block
	samplers map[string]bool
	units    []int32

	pending map[string]func()
}

func newStage(name string, kind Kind, program, pipeline uint32, samplerNames []string, nextBinding *uint32) *Stage {
	s := &Stage{
		name:     name,
		kind:     kind,
		program:  program,
		pipeline: pipeline,
		uniforms: map[string]uniform{},
		blocks:   map[string]*block{},
		samplers: map[string]bool{},
		pending:  map[string]func(){},
	}
	for _, n := range samplerNames {
		s.samplers[n] = true
	}
	s.introspect(nextBinding)
	return s
}

// introspect records active uniforms, assigns texture units to sampler
// uniforms and creates one uniform buffer per block.
func (s *Stage) introspect(nextBinding *uint32) {
	var count, maxLen int32
	gl.GetProgramiv(s.program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(s.program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	buf := make([]byte, maxLen+1)

	blockMembers := map[int32]string{}
	unit := s.kind.firstUnit()
	for i := range uint32(count) {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(s.program, i, maxLen, &length, &size, &xtype, &buf[0])
		full := string(buf[:length])
		name := baseName(full)

		var blockIndex int32
		gl.GetActiveUniformsiv(s.program, 1, &i, gl.UNIFORM_BLOCK_INDEX, &blockIndex)
		if blockIndex >= 0 {
			blockMembers[blockIndex] = name
			continue
		}

		loc := gl.GetUniformLocation(s.program, gl.Str(full+"\x00"))
		u := uniform{location: loc, unit: -1}
		if xtype == gl.SAMPLER_2D || xtype == gl.SAMPLER_CUBE {
			u.unit = unit
			gl.ProgramUniform1i(s.program, loc, unit)
			s.units = append(s.units, unit)
			unit++
		}
		s.uniforms[name] = u
	}

	for index, member := range blockMembers {
		var size int32
		gl.GetActiveUniformBlockiv(s.program, uint32(index), gl.UNIFORM_BLOCK_DATA_SIZE, &size)
		b := &block{index: uint32(index), binding: *nextBinding, size: int(size)}
		*nextBinding++

		gl.UniformBlockBinding(s.program, b.index, b.binding)
		gl.GenBuffers(1, &b.ubo)
		gl.BindBuffer(gl.UNIFORM_BUFFER, b.ubo)
		gl.BufferData(gl.UNIFORM_BUFFER, b.size, nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
		s.blocks[member] = b
	}
}

// Name returns the program name this stage belongs to.
func (s *Stage) Name() string { return s.name }

// Kind returns the pipeline stage.
func (s *Stage) Kind() Kind { return s.kind }

// Activate installs this stage in the shared program pipeline.
func (s *Stage) Activate() {
	gl.UseProgramStages(s.pipeline, s.kind.stageBit(), s.program)
	for _, b := range s.blocks {
		gl.BindBufferBase(gl.UNIFORM_BUFFER, b.binding, b.ubo)
	}
}

func (s *Stage) set(name string, apply func(loc int32)) bool {
	u, ok := s.uniforms[name]
	if !ok || u.unit >= 0 {
		return false
	}
	s.pending[name] = func() { apply(u.location) }
	return true
}

func (s *Stage) SetMatrix4x4(name string, m math.Mat4) bool {
	return s.set(name, func(loc int32) {
		gl.ProgramUniformMatrix4fv(s.program, loc, 1, false, m.Ptr())
	})
}

func (s *Stage) SetFloat(name string, v float32) bool {
	return s.set(name, func(loc int32) { gl.ProgramUniform1f(s.program, loc, v) })
}

func (s *Stage) SetFloat2(name string, v math.Vec2) bool {
	return s.set(name, func(loc int32) { gl.ProgramUniform2f(s.program, loc, v.X, v.Y) })
}

func (s *Stage) SetFloat3(name string, v math.Vec3) bool {
	return s.set(name, func(loc int32) { gl.ProgramUniform3f(s.program, loc, v.X, v.Y, v.Z) })
}

func (s *Stage) SetFloat4(name string, v math.Vec4) bool {
	return s.set(name, func(loc int32) { gl.ProgramUniform4f(s.program, loc, v[0], v[1], v[2], v[3]) })
}

func (s *Stage) SetInt(name string, v int32) bool {
	return s.set(name, func(loc int32) { gl.ProgramUniform1i(s.program, loc, v) })
}

// SetData stages raw bytes for the uniform block containing name. Data
// longer than the block is truncated.
func (s *Stage) SetData(name string, data []byte) bool {
	b, ok := s.blocks[name]
	if !ok {
		return false
	}
	b.data = append(b.data[:0], data[:min(len(data), b.size)]...)
	b.dirty = true
	return true
}

// SetTexture binds t to the texture unit of the named sampler uniform.
func (s *Stage) SetTexture(name string, t gpu.Texture) bool {
	u, ok := s.uniforms[name]
	if !ok || u.unit < 0 {
		return false
	}
	if gt, ok := t.(GLTexture); ok {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(u.unit))
		gl.BindTexture(gt.GLTarget(), gt.GLName())
	}
	return true
}

// SetSampler binds smp to every texture unit of this stage. GLSL has no
// separate sampler variables, so names are declared per program instead.
func (s *Stage) SetSampler(name string, smp gpu.Sampler) bool {
	if !s.samplers[name] {
		return false
	}
	if gs, ok := smp.(GLSampler); ok {
		for _, unit := range s.units {
			gl.BindSampler(uint32(unit), gs.GLName())
		}
	}
	return true
}

// CopyAllBufferData uploads every staged value.
func (s *Stage) CopyAllBufferData() {
	for name, apply := range s.pending {
		apply()
		delete(s.pending, name)
	}
	for _, b := range s.blocks {
		if !b.dirty || len(b.data) == 0 {
			continue
		}
		gl.BindBuffer(gl.UNIFORM_BUFFER, b.ubo)
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(b.data), gl.Ptr(b.data))
		gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
		b.dirty = false
	}
}

func (s *Stage) release() {
	for _, b := range s.blocks {
		gl.DeleteBuffers(1, &b.ubo)
	}
	gl.DeleteProgram(s.program)
	s.program = 0
}

var _ gpu.Shader = (*Stage)(nil)
