package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// ErrCubemapFaceMismatch is returned when cubemap faces differ in size or are not square.
var ErrCubemapFaceMismatch = errors.New("cubemap faces must be square and equal in size")

// Cubemap face order, matching gpu.Device.CreateCubemap.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// FaceNames are the conventional file name stems per face.
var FaceNames = [6]string{"right", "left", "up", "down", "front", "back"}

// CheckFaces verifies six faces are present, square and the same size.
func CheckFaces(faces [6]image.Image) error {
	if faces[0] == nil {
		return fmt.Errorf("face %s missing: %w", FaceNames[0], ErrCubemapFaceMismatch)
	}
	want := faces[0].Bounds().Size()
	if want.X != want.Y || want.X == 0 {
		return fmt.Errorf("face %s is %dx%d: %w", FaceNames[0], want.X, want.Y, ErrCubemapFaceMismatch)
	}
	for i, f := range faces[1:] {
		if f == nil {
			return fmt.Errorf("face %s missing: %w", FaceNames[i+1], ErrCubemapFaceMismatch)
		}
		if got := f.Bounds().Size(); got != want {
			return fmt.Errorf("face %s is %dx%d, want %dx%d: %w",
				FaceNames[i+1], got.X, got.Y, want.X, want.Y, ErrCubemapFaceMismatch)
		}
	}
	return nil
}

// NewCubemap validates the faces (ordered +X, -X, +Y, -Y, +Z, -Z) and uploads them.
func NewCubemap(device gpu.Device, faces [6]image.Image) (gpu.Texture, error) {
	if err := CheckFaces(faces); err != nil {
		return nil, err
	}
	tex, err := device.CreateCubemap(faces)
	if err != nil {
		return nil, fmt.Errorf("upload cubemap: %w", err)
	}
	return tex, nil
}

// LoadCubemap reads six face files, ordered +X, -X, +Y, -Y, +Z, -Z, and uploads them.
func LoadCubemap(device gpu.Device, paths [6]string) (gpu.Texture, error) {
	var faces [6]image.Image
	for i, p := range paths {
		img, err := LoadImage(p)
		if err != nil {
			return nil, fmt.Errorf("cubemap face %s: %w", FaceNames[i], err)
		}
		faces[i] = img
	}
	return NewCubemap(device, faces)
}

// faceDirection maps a face and texel coordinates in [-1, 1] to a direction,
// following the OpenGL cubemap face orientation.
func faceDirection(face int, u, v float32) math.Vec3 {
	switch face {
	case FacePosX:
		return math.Vec3{X: 1, Y: -v, Z: -u}
	case FaceNegX:
		return math.Vec3{X: -1, Y: -v, Z: u}
	case FacePosY:
		return math.Vec3{X: u, Y: 1, Z: v}
	case FaceNegY:
		return math.Vec3{X: u, Y: -1, Z: -v}
	case FacePosZ:
		return math.Vec3{X: u, Y: -v, Z: 1}
	default:
		return math.Vec3{X: -u, Y: -v, Z: -1}
	}
}

// GradientFaces renders a vertical sky gradient into six size×size faces.
// Straight up is top, straight down is bottom. Colours are linear RGB in [0, 1].
func GradientFaces(size int, top, bottom math.Vec3) [6]image.Image {
	var faces [6]image.Image
	for f := range faces {
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			v := 2*(float32(y)+0.5)/float32(size) - 1
			for x := 0; x < size; x++ {
				u := 2*(float32(x)+0.5)/float32(size) - 1
				t := faceDirection(f, u, v).Normalize().Y*0.5 + 0.5
				c := bottom.Scale(1 - t).Add(top.Scale(t))
				img.SetNRGBA(x, y, color.NRGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255})
			}
		}
		faces[f] = img
	}
	return faces
}

// Gradient uploads GradientFaces as a cubemap.
func Gradient(device gpu.Device, size int, top, bottom math.Vec3) (gpu.Texture, error) {
	return NewCubemap(device, GradientFaces(size, top, bottom))
}

func toByte(c float32) uint8 {
	return uint8(math32.Round(math32.Max(0, math32.Min(1, c)) * 255))
}
