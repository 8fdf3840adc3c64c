package input

// Key identifies a keyboard key the renderer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyX
	KeyEscape
	KeyTab
	KeyP
	KeyF1
	KeyF5
	KeyF12

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeySpace:   "Space",
	KeyX:       "X",
	KeyEscape:  "Escape",
	KeyTab:     "Tab",
	KeyP:       "P",
	KeyF1:      "F1",
	KeyF5:      "F5",
	KeyF12:     "F12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "invalid"
	}
	return keyNames[k]
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight

	buttonCount
)
