// Package shader compiles GLSL stages into separable OpenGL programs and
// exposes each stage through the gpu.Shader interface.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrUnknownProgram is returned by Library.Program for a name that was never compiled.
var ErrUnknownProgram = errors.New("unknown shader program")

// Kind is a programmable pipeline stage.
type Kind int

const (
	Vertex Kind = iota
	Fragment
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "unknown"
}

func (k Kind) glType() uint32 {
	if k == Vertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (k Kind) stageBit() uint32 {
	if k == Vertex {
		return gl.VERTEX_SHADER_BIT
	}
	return gl.FRAGMENT_SHADER_BIT
}

// firstUnit is the first texture unit a stage of this kind binds to.
func (k Kind) firstUnit() int32 {
	if k == Vertex {
		return 8
	}
	return 0
}

// compileStage compiles and links a single-stage separable program.
func compileStage(source string, kind Kind) (uint32, error) {
	csource, free := gl.Strs(source + "\x00")
	program := gl.CreateShaderProgramv(kind.glType(), 1, csource)
	free()
	if program == 0 {
		return 0, fmt.Errorf("%s shader: program creation failed", kind)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s shader: %s", kind, strings.TrimRight(string(log), "\x00"))
	}
	return program, nil
}

// baseName reduces an active uniform name to the name callers use:
// "lights[0].type" and "lights[0]" both become "lights".
func baseName(name string) string {
	if i := strings.IndexAny(name, "[."); i >= 0 {
		return name[:i]
	}
	return name
}
