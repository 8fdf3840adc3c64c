package shader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/shader/shaders"
	"github.com/Faultbox/prism/internal/logger"
)

// Source is the GLSL of one program.
type Source struct {
	Vertex   string
	Fragment string
	// Samplers lists the sampler names the fragment stage accepts.
	Samplers []string
}

// Builtin holds the programs scenes refer to by name.
var Builtin = map[string]Source{
	"lit": {
		Vertex:   shaders.LitVertexShader,
		Fragment: shaders.LitFragmentShader,
		Samplers: []string{"BasicSampler"},
	},
	"unlit": {
		Vertex:   shaders.LitVertexShader,
		Fragment: shaders.UnlitFragmentShader,
		Samplers: []string{"BasicSampler"},
	},
	"sky": {
		Vertex:   shaders.SkyVertexShader,
		Fragment: shaders.SkyFragmentShader,
		Samplers: []string{"BasicSampler"},
	},
}

// Library compiles a set of programs that share one program pipeline.
// It requires a current OpenGL context.
type Library struct {
	pipeline uint32
	programs map[string][2]*Stage
	binding  uint32
}

// NewLibrary compiles every source. On error nothing is leaked.
func NewLibrary(sources map[string]Source) (*Library, error) {
	l := &Library{programs: map[string][2]*Stage{}}
	gl.GenProgramPipelines(1, &l.pipeline)
	l.Bind()

	for _, name := range slices.Sorted(maps.Keys(sources)) {
		src := sources[name]
		vs, err := compileStage(src.Vertex, Vertex)
		if err != nil {
			l.Release()
			return nil, fmt.Errorf("program %q: %w", name, err)
		}
		fs, err := compileStage(src.Fragment, Fragment)
		if err != nil {
			gl.DeleteProgram(vs)
			l.Release()
			return nil, fmt.Errorf("program %q: %w", name, err)
		}
		l.programs[name] = [2]*Stage{
			newStage(name, Vertex, vs, l.pipeline, nil, &l.binding),
			newStage(name, Fragment, fs, l.pipeline, src.Samplers, &l.binding),
		}
		logger.For("shader").Debug("program compiled",
			zap.String("program", name),
			zap.Int("vertex_uniforms", len(l.programs[name][0].uniforms)),
			zap.Int("fragment_uniforms", len(l.programs[name][1].uniforms)))
	}
	return l, nil
}

// Bind makes the library's pipeline current. A program bound with
// glUseProgram takes precedence over any pipeline, so it is cleared.
func (l *Library) Bind() {
	gl.UseProgram(0)
	gl.BindProgramPipeline(l.pipeline)
}

// Program returns the vertex and pixel stages of a compiled program.
func (l *Library) Program(name string) (vs, ps gpu.Shader, err error) {
	p, ok := l.programs[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownProgram, name)
	}
	return p[0], p[1], nil
}

// Names returns the compiled program names in sorted order.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.programs))
}

// Release deletes every program and the pipeline.
func (l *Library) Release() {
	for _, p := range l.programs {
		p[0].release()
		p[1].release()
	}
	clear(l.programs)
	if l.pipeline != 0 {
		gl.BindProgramPipeline(0)
		gl.DeleteProgramPipelines(1, &l.pipeline)
		l.pipeline = 0
	}
}
