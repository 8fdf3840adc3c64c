package scene

import "github.com/Faultbox/prism/pkg/math"

// State is the per-scene frame state shared by Update, Draw and the debug UI.
// The frame thread is its only writer.
type State struct {
	ClearColor   math.Vec4
	Ambient      math.Vec3
	ActiveCamera int

	// QuitRequested is set by Update when the user asks to leave.
	QuitRequested bool

	// Spin enables per-entity animation.
	Spin    bool
	ShowSky bool

	Frame   uint64
	Elapsed float64 // seconds of Update time
}

// DefaultState returns the state a new scene starts with.
func DefaultState() State {
	return State{
		ClearColor: math.Vec4{0.4, 0.6, 0.75, 1},
		Ambient:    math.Vec3{X: 0.1, Y: 0.1, Z: 0.15},
		Spin:       true,
		ShowSky:    true,
	}
}
