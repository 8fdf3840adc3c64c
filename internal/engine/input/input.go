// Package input holds polled keyboard and mouse state for one frame.
//
// The window layer feeds events in; cameras and the scene read it. Nothing here
// depends on SDL, so consumers can be tested with a hand-built State.
package input

// State is the input snapshot for the current frame.
type State struct {
	keys     [keyCount]bool
	prevKeys [keyCount]bool
	buttons  [buttonCount]bool

	mouseX, mouseY   float32
	mouseDX, mouseDY float32
	wheel            float32

	keyboardCaptured bool
	mouseCaptured    bool

	quit          bool
	resized       bool
	width, height int
}

// New creates an empty input state.
func New() *State {
	return &State{}
}

// BeginFrame starts a new poll: edge tracking advances and per-frame deltas reset.
func (s *State) BeginFrame() {
	s.prevKeys = s.keys
	s.mouseDX, s.mouseDY = 0, 0
	s.wheel = 0
}

// SetKey records a key transition.
func (s *State) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	s.keys[k] = down
}

// SetMouseButton records a button transition.
func (s *State) SetMouseButton(b MouseButton, down bool) {
	if b < 0 || b >= buttonCount {
		return
	}
	s.buttons[b] = down
}

// MoveMouse records an absolute cursor position and accumulates the relative motion.
func (s *State) MoveMouse(x, y, dx, dy float32) {
	s.mouseX, s.mouseY = x, y
	s.mouseDX += dx
	s.mouseDY += dy
}

// Scroll accumulates wheel movement.
func (s *State) Scroll(delta float32) {
	s.wheel += delta
}

// SetCapture marks keyboard and mouse input as consumed by an overlay UI.
// Captured devices report nothing to the scene.
func (s *State) SetCapture(keyboard, mouse bool) {
	s.keyboardCaptured = keyboard
	s.mouseCaptured = mouse
}

// KeyDown reports whether k is held.
func (s *State) KeyDown(k Key) bool {
	if s.keyboardCaptured || k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s.keys[k]
}

// KeyPressed reports whether k went down since the previous frame.
func (s *State) KeyPressed(k Key) bool {
	return s.KeyDown(k) && !s.prevKeys[k]
}

// MouseButtonDown reports whether b is held.
func (s *State) MouseButtonDown(b MouseButton) bool {
	if s.mouseCaptured || b < 0 || b >= buttonCount {
		return false
	}
	return s.buttons[b]
}

// MouseDelta returns cursor motion in pixels since the last BeginFrame.
func (s *State) MouseDelta() (dx, dy float32) {
	if s.mouseCaptured {
		return 0, 0
	}
	return s.mouseDX, s.mouseDY
}

// MousePosition returns the last cursor position in window pixels.
func (s *State) MousePosition() (x, y float32) {
	return s.mouseX, s.mouseY
}

// Wheel returns wheel movement since the last BeginFrame.
func (s *State) Wheel() float32 {
	if s.mouseCaptured {
		return 0
	}
	return s.wheel
}

// RequestQuit records a quit request from the window or the user.
func (s *State) RequestQuit() {
	s.quit = true
}

// QuitRequested reports whether a quit was requested.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Resize records a new drawable size.
func (s *State) Resize(width, height int) {
	s.resized = true
	s.width, s.height = width, height
}

// TakeResize returns and clears a pending resize.
func (s *State) TakeResize() (width, height int, ok bool) {
	if !s.resized {
		return 0, 0, false
	}
	s.resized = false
	return s.width, s.height, true
}
