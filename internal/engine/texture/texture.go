// Package texture decodes image files and builds GPU textures and cubemaps.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/Faultbox/prism/internal/engine/gpu"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// decoders maps a lower-case file extension to its decoder. TGA has no magic
// number, so formats are chosen by extension rather than sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// Supported reports whether path has an extension Decode understands.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode reads an image in the format named by ext (".png", ".tga", ...)
// and returns it as NRGBA.
func Decode(r io.Reader, ext string) (*image.NRGBA, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	img, err := dec(r)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Load reads an image file and uploads it as a 2D texture.
func Load(device gpu.Device, path string) (gpu.Texture, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	tex, err := device.CreateTexture2D(img)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	return tex, nil
}

// ToNRGBA converts any image to non-premultiplied RGBA with its origin at (0, 0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
