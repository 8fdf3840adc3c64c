package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Description is the YAML scene file. Angles are in degrees, colours are
// linear RGB(A) in [0, 1] and relative paths resolve against the asset directory.
type Description struct {
	ClearColor   *[4]float32         `yaml:"clear_color"`
	Ambient      *[3]float32         `yaml:"ambient"`
	ActiveCamera int                 `yaml:"active_camera"`
	Spin         *bool               `yaml:"spin"`
	Cameras      []CameraDesc        `yaml:"cameras"`
	Meshes       map[string]MeshDesc `yaml:"meshes"`
	Textures     map[string]string   `yaml:"textures"`
	Materials    []MaterialDesc      `yaml:"materials"`
	Entities     []EntityDesc        `yaml:"entities"`
	Lights       []LightDesc         `yaml:"lights"`
	Sky          *SkyDesc            `yaml:"sky"`
}

// CameraDesc describes one camera. Unset fields take the configured defaults.
type CameraDesc struct {
	Name       string     `yaml:"name"`
	Position   [3]float32 `yaml:"position"`
	Rotation   [3]float32 `yaml:"rotation"` // pitch, yaw, roll
	FOV        float32    `yaml:"fov"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Projection string     `yaml:"projection"` // perspective or orthographic
	OrthoWidth float32    `yaml:"ortho_width"`
	MoveSpeed  float32    `yaml:"move_speed"`
	MouseSpeed float32    `yaml:"mouse_speed"`
}

// MeshDesc is either an OBJ path or a generated primitive.
type MeshDesc struct {
	Path      string  `yaml:"path"`
	Primitive string  `yaml:"primitive"` // cube, sphere or plane
	Size      float32 `yaml:"size"`
	Radius    float32 `yaml:"radius"`
	Slices    int     `yaml:"slices"`
	Stacks    int     `yaml:"stacks"`
	UVRepeat  float32 `yaml:"uv_repeat"`
}

// MaterialDesc describes a material. Textures maps shader slot names to
// entries of Description.Textures.
type MaterialDesc struct {
	Name      string            `yaml:"name"`
	Shader    string            `yaml:"shader"` // lit or unlit
	Tint      *[4]float32       `yaml:"tint"`
	Roughness float32           `yaml:"roughness"`
	UVScale   *[2]float32       `yaml:"uv_scale"`
	UVOffset  [2]float32        `yaml:"uv_offset"`
	Textures  map[string]string `yaml:"textures"`
	Sampler   string            `yaml:"sampler"` // linear, nearest or anisotropic
}

// EntityDesc places a mesh with a material.
type EntityDesc struct {
	Name     string      `yaml:"name"`
	Mesh     string      `yaml:"mesh"`
	Material string      `yaml:"material"`
	Position [3]float32  `yaml:"position"`
	Rotation [3]float32  `yaml:"rotation"`
	Scale    *[3]float32 `yaml:"scale"`
	Spin     [3]float32  `yaml:"spin"` // degrees per second
}

// LightDesc holds the fields of every light type; Type selects which apply.
type LightDesc struct {
	Type         string      `yaml:"type"` // directional, point or spot
	Direction    [3]float32  `yaml:"direction"`
	Position     [3]float32  `yaml:"position"`
	Range        float32     `yaml:"range"`
	Color        *[3]float32 `yaml:"color"`
	Intensity    *float32    `yaml:"intensity"`
	InnerAngle   float32     `yaml:"inner_angle"`
	OuterAngle   float32     `yaml:"outer_angle"`
	CastsShadows bool        `yaml:"casts_shadows"`
	// Sun places a directional light by longitude and latitude instead of Direction.
	Sun *[2]float32 `yaml:"sun"`
}

// SkyDesc uses six face images, ordered +X, -X, +Y, -Y, +Z, -Z, or a gradient.
type SkyDesc struct {
	Faces    []string      `yaml:"faces"`
	Gradient *GradientDesc `yaml:"gradient"`
}

// GradientDesc is a procedural sky.
type GradientDesc struct {
	Top    [3]float32 `yaml:"top"`
	Bottom [3]float32 `yaml:"bottom"`
	Size   int        `yaml:"size"`
}

// ParseDescription decodes a scene file. Unknown keys are errors.
func ParseDescription(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return &d, nil
		}
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &d, nil
}

// LoadDescription reads and parses a scene file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	d, err := ParseDescription(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
