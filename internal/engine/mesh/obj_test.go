package mesh

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/gpu/gputest"
	"github.com/Faultbox/prism/pkg/math"
)

const quadOBJ = `# unit quad, right-handed, facing +Z
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl none
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	v, i, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	require.Len(t, v, 4)
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, i, "fan triangulated with reversed winding")

	for _, vert := range v {
		assert.Equal(t, math.Vec3{Z: -1}, vert.Normal, "z negated")
		assert.InDelta(t, 1, vert.Tangent.X, 1e-5)
		assert.InDelta(t, 0, vert.Tangent.Y, 1e-5)
		assert.InDelta(t, 0, vert.Tangent.Z, 1e-5)
	}
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, v[0].UV, "v flipped")
	assert.Equal(t, math.Vec2{X: 1, Y: 0}, v[2].UV)

	frontFacing(t, v, i)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
vt 0 0
vt 1 0
vt 1 1
vn 0 0 1
f -3/-3/-1 -2/-2/-1 -1/-1/-1
`
	v, i, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, v, 3)
	assert.Equal(t, []uint32{0, 2, 1}, i)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 0}, v[2].Position)
}

func TestParseOBJSharesCorners(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`
	v, i, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, v, 4)
	assert.Len(t, i, 6)
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 0 1
f 1 2 3
`
	v, _, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	for _, vert := range v {
		assert.InDelta(t, 0, vert.Normal.X, 1e-5)
		assert.InDelta(t, -1, vert.Normal.Y, 1e-5)
		assert.InDelta(t, 0, vert.Normal.Z, 1e-5)
		assert.InDelta(t, 0, vert.Normal.Dot(vert.Tangent), 1e-5)
		assert.InDelta(t, 1, vert.Tangent.Length(), 1e-5)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"empty", "# nothing\n", ErrEmptyGeometry},
		{"short vertex", "v 1 2\n", nil},
		{"bad number", "v 1 two 3\n", nil},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", nil},
		{"out of range", "v 0 0 0\nf 1 2 3\n", ErrIndexOutOfRange},
		{"dangling normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//4 2//4 3//4\n", ErrIndexOutOfRange},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", nil},
		{"bad uv", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseOBJSeveralObjects(t *testing.T) {
	src := `o first
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o second
v 0 0 1
v 1 0 1
v 0 1 1
f 4 5 6
`
	v, i, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, v, 6)
	assert.Equal(t, []uint32{0, 2, 1, 3, 5, 4}, i)
	assert.Equal(t, float32(-1), v[3].Position.Z)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	dev := gputest.NewDevice()
	m, err := Load(dev, path)
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", m.Name())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(gputest.NewDevice(), filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
