package mesh

import (
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// absentIndex marks a face corner without a UV or normal in the decoder output.
const absentIndex = gomath.MaxUint32

// Load reads a Wavefront OBJ file and uploads it. The mesh is named after the file.
func Load(device gpu.Device, path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	vertices, indices, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	logger.For("mesh").Debug("loaded obj",
		zap.String("path", path),
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(indices)))

	return New(device, filepath.Base(path), vertices, indices)
}

// ParseOBJ decodes OBJ geometry into the scene's left-handed convention.
//
// Polygons are triangulated as fans. Z is negated and winding reversed to turn
// right-handed data left-handed, and V is flipped so the origin is top-left.
// Missing normals are generated from faces. Tangents are always generated.
// Materials are ignored; scenes bind their own.
func ParseOBJ(r io.Reader) ([]gpu.Vertex, []uint32, error) {
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, nil, err
	}

	b := &objBuilder{
		dec:    dec,
		lookup: map[[3]int]uint32{},
	}
	for _, o := range dec.Objects {
		for fi, face := range o.Faces {
			if err := b.addFace(face); err != nil {
				return nil, nil, fmt.Errorf("object %q face %d: %w", o.Name, fi+1, err)
			}
		}
	}
	if len(b.indices) == 0 {
		return nil, nil, ErrEmptyGeometry
	}

	b.fillNormals()
	computeTangents(b.vertices, b.indices)
	return b.vertices, b.indices, nil
}

// objBuilder turns decoded faces into a deduplicated triangle list.
type objBuilder struct {
	dec *obj.Decoder

	vertices  []gpu.Vertex
	indices   []uint32
	hasNormal []bool
	lookup    map[[3]int]uint32
}

func (b *objBuilder) addFace(face obj.Face) error {
	if len(face.Vertices) < 3 {
		return fmt.Errorf("face needs at least 3 vertices")
	}
	corners := make([]uint32, len(face.Vertices))
	for i := range face.Vertices {
		idx, err := b.corner(face, i)
		if err != nil {
			return err
		}
		corners[i] = idx
	}
	for i := 1; i+1 < len(corners); i++ {
		b.indices = append(b.indices, corners[0], corners[i+1], corners[i])
	}
	return nil
}

func (b *objBuilder) corner(face obj.Face, i int) (uint32, error) {
	key := [3]int{-1, -1, -1}

	p := face.Vertices[i]
	if p < 0 || p >= len(b.dec.Vertices)/3 {
		return 0, fmt.Errorf("position index %d out of range (%d defined): %w", p+1, len(b.dec.Vertices)/3, ErrIndexOutOfRange)
	}
	key[0] = p

	var err error
	if i < len(face.Uvs) {
		if key[1], err = optionalIndex(face.Uvs[i], len(b.dec.Uvs)/2, "uv"); err != nil {
			return 0, err
		}
	}
	if i < len(face.Normals) {
		if key[2], err = optionalIndex(face.Normals[i], len(b.dec.Normals)/3, "normal"); err != nil {
			return 0, err
		}
	}

	if idx, ok := b.lookup[key]; ok {
		return idx, nil
	}

	pos := b.dec.Vertices[3*p : 3*p+3]
	v := gpu.Vertex{Position: math.Vec3{X: pos[0], Y: pos[1], Z: -pos[2]}}
	if t := key[1]; t >= 0 {
		v.UV = math.Vec2{X: b.dec.Uvs[2*t], Y: 1 - b.dec.Uvs[2*t+1]}
	}
	if n := key[2]; n >= 0 {
		nrm := b.dec.Normals[3*n : 3*n+3]
		v.Normal = math.Vec3{X: nrm[0], Y: nrm[1], Z: -nrm[2]}
	}

	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	b.hasNormal = append(b.hasNormal, key[2] >= 0)
	b.lookup[key] = idx
	return idx, nil
}

// optionalIndex returns -1 for an absent attribute and rejects dangling ones.
func optionalIndex(idx, count int, what string) (int, error) {
	if idx == absentIndex {
		return -1, nil
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%s index %d out of range (%d defined): %w", what, idx+1, count, ErrIndexOutOfRange)
	}
	return idx, nil
}

// fillNormals gives vertices without a file normal the sum of their face normals.
func (b *objBuilder) fillNormals() {
	missing := false
	for _, ok := range b.hasNormal {
		if !ok {
			missing = true
			break
		}
	}
	if !missing {
		return
	}
	for i := 0; i+2 < len(b.indices); i += 3 {
		i0, i1, i2 := b.indices[i], b.indices[i+1], b.indices[i+2]
		n := faceNormal(b.vertices[i0].Position, b.vertices[i1].Position, b.vertices[i2].Position)
		for _, idx := range [3]uint32{i0, i1, i2} {
			if !b.hasNormal[idx] {
				b.vertices[idx].Normal = b.vertices[idx].Normal.Add(n)
			}
		}
	}
	for i := range b.vertices {
		if !b.hasNormal[i] {
			b.vertices[i].Normal = b.vertices[i].Normal.Normalize()
		}
	}
}
