package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/texture"
)

type glTexture struct {
	id            uint32
	target        uint32
	kind          gpu.TextureKind
	width, height int
}

func (t *glTexture) Kind() gpu.TextureKind { return t.kind }
func (t *glTexture) Size() (int, int) { return t.width, t.height }
func (t *glTexture) GLName() uint32 { return t.id }
func (t *glTexture) GLTarget() uint32 { return t.target }

func (t *glTexture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// CreateTexture2D uploads img as RGBA8 with a full mip chain. The first image
// row becomes v = 0.
func (r *Renderer) CreateTexture2D(img image.Image) (gpu.Texture, error) {
	rgba := texture.ToNRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture: empty image")
	}

	t := &glTexture{target: gl.TEXTURE_2D, kind: gpu.Texture2D, width: w, height: h}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// CreateCubemap uploads six faces ordered +X, -X, +Y, -Y, +Z, -Z.
func (r *Renderer) CreateCubemap(faces [6]image.Image) (gpu.Texture, error) {
	if err := texture.CheckFaces(faces); err != nil {
		return nil, err
	}
	size := faces[0].Bounds().Dx()

	t := &glTexture{target: gl.TEXTURE_CUBE_MAP, kind: gpu.TextureCube, width: size, height: size}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, face := range faces {
		rgba := texture.ToNRGBA(face)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8, int32(size), int32(size), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}
