package lighting

import (
	"bytes"
	"encoding/binary"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// MaxLights is the size of the light array declared by the lit shader.
const MaxLights = 32

// GPULight is the packed light record, laid out for a std140 uniform block.
// Every vec3 starts on a 16-byte boundary and the record is 64 bytes.
type GPULight struct {
	Type         int32
	Range        float32
	Intensity    float32
	SpotInner    float32
	Direction    [3]float32
	SpotOuter    float32
	Position     [3]float32
	CastsShadows int32
	Color        [3]float32
	_            float32
}

// GPULightSize is the byte size of one packed record.
const GPULightSize = 64

// List is the ordered set of active lights, capped at MaxLights.
type List struct {
	lights []Light
}

// NewList creates an empty light list.
func NewList() *List {
	return &List{lights: make([]Light, 0, MaxLights)}
}

// Add appends a light. It returns false when the list is full.
func (l *List) Add(light Light) bool {
	if len(l.lights) >= MaxLights {
		return false
	}
	l.lights = append(l.lights, light)
	return true
}

// Set replaces the light at index i, normalizing its direction.
func (l *List) Set(i int, light Light) {
	l.lights[i] = light.normalized()
}

// Remove deletes the light at index i, keeping the order of the rest.
func (l *List) Remove(i int) {
	l.lights = append(l.lights[:i], l.lights[i+1:]...)
}

// Clear removes all lights.
func (l *List) Clear() {
	l.lights = l.lights[:0]
}

// Len returns the number of active lights.
func (l *List) Len() int {
	return len(l.lights)
}

// At returns the light at index i.
func (l *List) At(i int) Light {
	return l.lights[i]
}

// All returns the lights in insertion order. The slice must not be modified.
func (l *List) All() []Light {
	return l.lights
}

// Normalize makes the direction of every directional and spot light unit length.
// Point lights are left as they are.
func (l *List) Normalize() {
	for i, light := range l.lights {
		l.lights[i] = light.normalized()
	}
}

// Pack returns one record per active light, in order.
func (l *List) Pack() []GPULight {
	out := make([]GPULight, len(l.lights))
	for i, light := range l.lights {
		out[i] = light.Record()
	}
	return out
}

// Bytes returns the packed records as a contiguous little-endian block.
func (l *List) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(l.lights) * GPULightSize)
	// Writes to a bytes.Buffer of fixed-size values cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, l.Pack())
	return buf.Bytes()
}

// Upload stages the light block, its count and the ambient colour on a pixel
// stage. It reports whether the stage declares all three.
func (l *List) Upload(ps gpu.Shader, ambient math.Vec3) bool {
	ok := ps.SetData("lights", l.Bytes())
	ok = ps.SetInt("lightCount", int32(len(l.lights))) && ok
	ok = ps.SetFloat3("ambientColor", ambient) && ok
	return ok
}
