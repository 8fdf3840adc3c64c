package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/resource"
	"github.com/Faultbox/prism/internal/engine/sky"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/internal/game/entity"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// ErrUnknownReference is returned when a scene file names a mesh, material,
// texture or shader that does not exist.
var ErrUnknownReference = errors.New("unknown reference")

// Shader program names a scene file may use.
const (
	ProgramLit   = "lit"
	ProgramUnlit = "unlit"
	ProgramSky   = "sky"
)

// DefaultTextureSlot receives a white texture on materials that name none.
const DefaultTextureSlot = "SurfaceTexture"

// Programs supplies compiled vertex and pixel shader pairs by name.
type Programs interface {
	Program(name string) (vs, ps gpu.Shader, err error)
}

// Options controls how a Description becomes a Scene.
type Options struct {
	Programs Programs
	// BaseDir is prepended to relative asset paths.
	BaseDir string
	// Camera supplies values for camera fields a description leaves unset.
	Camera config.CameraConfig
	// Aspect is the initial drawable aspect ratio.
	Aspect float32
}

// Build creates every resource a description names and returns an
// Uninitialized scene. On error all resources created so far are released.
func Build(device gpu.Device, name string, d *Description, opts Options) (*Scene, error) {
	if opts.Aspect <= 0 {
		opts.Aspect = 16.0 / 9.0
	}
	b := &builder{device: device, desc: d, opts: opts, scene: New(name)}
	if err := b.build(); err != nil {
		if serr := b.scene.Shutdown(); serr != nil {
			err = errors.Join(err, serr)
		}
		return nil, fmt.Errorf("building scene %q: %w", name, err)
	}

	logger.For("scene").Debug("scene built",
		zap.String("scene", name),
		zap.Int("meshes", len(b.scene.meshes)),
		zap.Int("materials", len(b.scene.materials)),
		zap.Int("textures", len(b.scene.textures)))
	return b.scene, nil
}

// Load reads a scene file and builds it. The scene is named after the file.
func Load(device gpu.Device, path string, opts Options) (*Scene, error) {
	d, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Build(device, name, d, opts)
}

type builder struct {
	device gpu.Device
	desc   *Description
	opts   Options
	scene  *Scene

	// Built-in resources live outside the scene's name tables so a
	// description can never shadow them.
	white    gpu.Texture
	samplers map[string]gpu.Sampler
}

func (b *builder) build() error {
	b.applyState()

	steps := []func() error{
		b.buildTextures,
		b.buildMeshes,
		b.buildMaterials,
		b.buildEntities,
		b.buildLights,
		b.buildSky,
		b.buildCameras,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) applyState() {
	st := &b.scene.State
	if c := b.desc.ClearColor; c != nil {
		st.ClearColor = math.Vec4(*c)
	}
	if a := b.desc.Ambient; a != nil {
		st.Ambient = vec3(*a)
	}
	if b.desc.Spin != nil {
		st.Spin = *b.desc.Spin
	}
	st.ActiveCamera = b.desc.ActiveCamera
}

func (b *builder) path(p string) string {
	if filepath.IsAbs(p) || b.opts.BaseDir == "" {
		return p
	}
	return filepath.Join(b.opts.BaseDir, p)
}

func (b *builder) buildTextures() error {
	for _, name := range slices.Sorted(maps.Keys(b.desc.Textures)) {
		t, err := texture.Load(b.device, b.path(b.desc.Textures[name]))
		if err != nil {
			return fmt.Errorf("texture %q: %w", name, err)
		}
		b.scene.AddTexture(name, t)
	}
	return nil
}

func (b *builder) buildMeshes() error {
	for _, name := range slices.Sorted(maps.Keys(b.desc.Meshes)) {
		m, err := b.mesh(name, b.desc.Meshes[name])
		if err != nil {
			return fmt.Errorf("mesh %q: %w", name, err)
		}
		b.scene.AddMesh(name, resource.New(name, m, (*mesh.Mesh).Release))
	}
	return nil
}

func (b *builder) mesh(name string, md MeshDesc) (*mesh.Mesh, error) {
	if md.Path != "" {
		if md.Primitive != "" {
			return nil, errors.New("path and primitive are mutually exclusive")
		}
		return mesh.Load(b.device, b.path(md.Path))
	}
	switch md.Primitive {
	case "cube":
		return mesh.Cube(b.device, name, orDefault(md.Size, 1))
	case "plane":
		return mesh.Plane(b.device, name, orDefault(md.Size, 10), orDefault(md.UVRepeat, 1))
	case "sphere":
		sl, st := md.Slices, md.Stacks
		if sl <= 0 {
			sl = 32
		}
		if st <= 0 {
			st = 16
		}
		return mesh.Sphere(b.device, name, orDefault(md.Radius, 0.5), sl, st)
	case "":
		return nil, errors.New("needs a path or a primitive")
	}
	return nil, fmt.Errorf("unknown primitive %q", md.Primitive)
}

func (b *builder) sampler(kind string) (gpu.Sampler, error) {
	if kind == "" {
		kind = "linear"
	}
	if smp, ok := b.samplers[kind]; ok {
		return smp, nil
	}

	desc := gpu.SamplerDesc{Address: gpu.AddressWrap}
	switch kind {
	case "linear":
		desc.Filter = gpu.FilterLinear
	case "nearest":
		desc.Filter = gpu.FilterNearest
	case "anisotropic":
		desc.Filter = gpu.FilterAnisotropic
		desc.MaxAnisotropy = 16
	case "clamp":
		desc.Filter = gpu.FilterLinear
		desc.Address = gpu.AddressClamp
	default:
		return nil, fmt.Errorf("unknown sampler %q", kind)
	}
	smp, err := b.device.CreateSampler(desc)
	if err != nil {
		return nil, fmt.Errorf("sampler %q: %w", kind, err)
	}
	if b.samplers == nil {
		b.samplers = map[string]gpu.Sampler{}
	}
	b.samplers[kind] = smp
	b.scene.own(smp)
	return smp, nil
}

// whiteTexture returns the 1x1 white texture shared by untextured materials.
func (b *builder) whiteTexture() (gpu.Texture, error) {
	if b.white != nil {
		return b.white, nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	t, err := b.device.CreateTexture2D(img)
	if err != nil {
		return nil, fmt.Errorf("default texture: %w", err)
	}
	b.white = t
	b.scene.own(t)
	return t, nil
}

func (b *builder) program(name string) (vs, ps gpu.Shader, err error) {
	if b.opts.Programs == nil {
		return nil, nil, errors.New("no shader programs configured")
	}
	vs, ps, err = b.opts.Programs.Program(name)
	if err != nil {
		return nil, nil, fmt.Errorf("shader %q: %w", name, err)
	}
	return vs, ps, nil
}

func (b *builder) buildMaterials() error {
	for _, md := range b.desc.Materials {
		if md.Name == "" {
			return errors.New("material without a name")
		}
		if _, dup := b.scene.materials[md.Name]; dup {
			return fmt.Errorf("material %q defined twice", md.Name)
		}
		mat, err := b.material(md)
		if err != nil {
			return fmt.Errorf("material %q: %w", md.Name, err)
		}
		b.scene.AddMaterial(md.Name, resource.New(md.Name, mat, nil))
	}
	return nil
}

func (b *builder) material(md MaterialDesc) (*material.Material, error) {
	shader := md.Shader
	if shader == "" {
		shader = ProgramLit
	}
	if shader != ProgramLit && shader != ProgramUnlit {
		return nil, fmt.Errorf("shader %q: %w", shader, ErrUnknownReference)
	}
	vs, ps, err := b.program(shader)
	if err != nil {
		return nil, err
	}

	opts := []material.Option{material.WithRoughness(md.Roughness)}
	if t := md.Tint; t != nil {
		opts = append(opts, material.WithTint(math.Vec4(*t)))
	}
	scale := math.Vec2{X: 1, Y: 1}
	if s := md.UVScale; s != nil {
		scale = math.Vec2{X: s[0], Y: s[1]}
	}
	opts = append(opts, material.WithUVTransform(scale, math.Vec2{X: md.UVOffset[0], Y: md.UVOffset[1]}))

	mat := material.New(md.Name, vs, ps, opts...)
	for _, slot := range slices.Sorted(maps.Keys(md.Textures)) {
		texName := md.Textures[slot]
		t, ok := b.scene.textures[texName]
		if !ok {
			return nil, fmt.Errorf("texture %q: %w", texName, ErrUnknownReference)
		}
		mat.AddTexture(slot, t)
	}
	if len(md.Textures) == 0 {
		white, err := b.whiteTexture()
		if err != nil {
			return nil, err
		}
		mat.AddTexture(DefaultTextureSlot, white)
	}
	smp, err := b.sampler(md.Sampler)
	if err != nil {
		return nil, err
	}
	mat.AddSampler("BasicSampler", smp)
	return mat, nil
}

func (b *builder) buildEntities() error {
	seen := map[string]int{}
	for i, ed := range b.desc.Entities {
		name := ed.Name
		if name == "" {
			name = fmt.Sprintf("entity%d", i)
		}
		// Repeated names get an ordinal so their IDs stay distinct.
		key := fmt.Sprintf("%s#%d", name, seen[name])
		seen[name]++
		m, ok := b.scene.meshes[ed.Mesh]
		if !ok {
			return fmt.Errorf("entity %q: mesh %q: %w", name, ed.Mesh, ErrUnknownReference)
		}
		mat, ok := b.scene.materials[ed.Material]
		if !ok {
			return fmt.Errorf("entity %q: material %q: %w", name, ed.Material, ErrUnknownReference)
		}

		e, err := entity.New(name, m.Acquire(), mat.Acquire())
		if err != nil {
			return fmt.Errorf("entity %q: %w", name, err)
		}
		e.ID = entity.StableID(b.scene.Name, key)
		t := e.Transform()
		t.SetPosition(vec3(ed.Position))
		t.SetRotation(radians(ed.Rotation))
		if ed.Scale != nil {
			t.SetScale(vec3(*ed.Scale))
		}
		e.Spin = radians(ed.Spin)
		if err := b.scene.AddEntity(e); err != nil {
			e.Release()
			return err
		}
	}
	return nil
}

func (b *builder) buildLights() error {
	for i, ld := range b.desc.Lights {
		l, err := light(ld)
		if err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
		if err := b.scene.AddLight(l); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	return nil
}

func light(ld LightDesc) (lighting.Light, error) {
	color := math.Vec3{X: 1, Y: 1, Z: 1}
	if ld.Color != nil {
		color = vec3(*ld.Color)
	}
	intensity := float32(1)
	if ld.Intensity != nil {
		intensity = *ld.Intensity
	}

	switch ld.Type {
	case "directional":
		if ld.Sun != nil {
			sun := lighting.Sun(ld.Sun[0], ld.Sun[1], color, intensity)
			sun.CastsShadows = ld.CastsShadows
			return sun, nil
		}
		if ld.Direction == ([3]float32{}) {
			return nil, errors.New("directional light needs a direction or sun")
		}
		return lighting.Directional{
			Direction:    vec3(ld.Direction),
			Color:        color,
			Intensity:    intensity,
			CastsShadows: ld.CastsShadows,
		}, nil
	case "point":
		return lighting.Point{
			Position:     vec3(ld.Position),
			Range:        orDefault(ld.Range, 10),
			Color:        color,
			Intensity:    intensity,
			CastsShadows: ld.CastsShadows,
		}, nil
	case "spot":
		if ld.Direction == ([3]float32{}) {
			return nil, errors.New("spot light needs a direction")
		}
		inner := orDefault(ld.InnerAngle, 20)
		outer := orDefault(ld.OuterAngle, 30)
		if outer < inner {
			return nil, fmt.Errorf("outer angle %g is smaller than inner angle %g", outer, inner)
		}
		return lighting.Spot{
			Position:     vec3(ld.Position),
			Direction:    vec3(ld.Direction),
			Range:        orDefault(ld.Range, 10),
			Color:        color,
			Intensity:    intensity,
			InnerAngle:   inner * math32.Pi / 180,
			OuterAngle:   outer * math32.Pi / 180,
			CastsShadows: ld.CastsShadows,
		}, nil
	}
	return nil, fmt.Errorf("unknown light type %q", ld.Type)
}

func (b *builder) buildSky() error {
	sd := b.desc.Sky
	if sd == nil {
		return nil
	}

	cubemap, err := b.cubemap(sd)
	if err != nil {
		return fmt.Errorf("sky: %w", err)
	}
	vs, ps, err := b.program(ProgramSky)
	if err != nil {
		cubemap.Release()
		return fmt.Errorf("sky: %w", err)
	}
	smp, err := b.sampler("clamp")
	if err != nil {
		cubemap.Release()
		return fmt.Errorf("sky: %w", err)
	}
	cube, err := mesh.Cube(b.device, "sky", 1)
	if err != nil {
		cubemap.Release()
		return fmt.Errorf("sky: %w", err)
	}
	h := resource.New("sky", cube, (*mesh.Mesh).Release)
	sk, err := sky.New(b.device, h, cubemap, vs, ps, smp)
	if err != nil {
		h.Release()
		cubemap.Release()
		return err
	}
	return b.scene.SetSky(sk)
}

func (b *builder) cubemap(sd *SkyDesc) (gpu.Texture, error) {
	switch {
	case len(sd.Faces) > 0 && sd.Gradient != nil:
		return nil, errors.New("faces and gradient are mutually exclusive")
	case len(sd.Faces) > 0:
		if len(sd.Faces) != 6 {
			return nil, fmt.Errorf("need 6 faces, got %d", len(sd.Faces))
		}
		var paths [6]string
		for i, f := range sd.Faces {
			paths[i] = b.path(f)
		}
		return texture.LoadCubemap(b.device, paths)
	case sd.Gradient != nil:
		g := sd.Gradient
		size := g.Size
		if size <= 0 {
			size = 64
		}
		return texture.Gradient(b.device, size, vec3(g.Top), vec3(g.Bottom))
	}
	return nil, errors.New("needs faces or a gradient")
}

func (b *builder) buildCameras() error {
	if len(b.desc.Cameras) == 0 {
		c, err := b.camera(CameraDesc{Name: "default", Position: [3]float32{0, 1, -5}})
		if err != nil {
			return err
		}
		return b.scene.AddCamera(c)
	}
	for i, cd := range b.desc.Cameras {
		if cd.Name == "" {
			cd.Name = fmt.Sprintf("camera%d", i)
		}
		c, err := b.camera(cd)
		if err != nil {
			return err
		}
		if err := b.scene.AddCamera(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) camera(cd CameraDesc) (*camera.Camera, error) {
	def := b.opts.Camera
	opts := []camera.Option{
		camera.WithOrientation(radians(cd.Rotation)),
		camera.WithFieldOfView(orDefault(cd.FOV, orDefault(def.FOVDegrees, 45)) * math32.Pi / 180),
		camera.WithClipPlanes(
			orDefault(cd.Near, orDefault(def.Near, camera.DefaultNearClip)),
			orDefault(cd.Far, orDefault(def.Far, camera.DefaultFarClip))),
		camera.WithMoveSpeed(orDefault(cd.MoveSpeed, orDefault(def.MoveSpeed, camera.DefaultMoveSpeed))),
		camera.WithMouseSpeed(orDefault(cd.MouseSpeed, orDefault(def.MouseSpeed, camera.DefaultMouseSpeed))),
		camera.WithOrthographicWidth(orDefault(cd.OrthoWidth, orDefault(def.OrthographicSize, camera.DefaultOrthographicWidth))),
	}
	switch cd.Projection {
	case "", "perspective":
	case "orthographic":
		opts = append(opts, camera.WithProjection(camera.Orthographic))
	default:
		return nil, fmt.Errorf("camera %q: unknown projection %q", cd.Name, cd.Projection)
	}

	c, err := camera.New(cd.Name, vec3(cd.Position), b.opts.Aspect, opts...)
	if err != nil {
		return nil, fmt.Errorf("camera %q: %w", cd.Name, err)
	}
	return c, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// radians converts a pitch/yaw/roll triple given in degrees.
func radians(deg [3]float32) math.Vec3 {
	return vec3(deg).Scale(math32.Pi / 180)
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}
