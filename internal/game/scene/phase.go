package scene

import "errors"

// ErrInvalidPhase is returned when an operation is not allowed in the scene's
// current lifecycle phase.
var ErrInvalidPhase = errors.New("operation not valid in current scene phase")

// Phase is a scene lifecycle phase. Scenes move strictly forward:
// Uninitialized, Initialized, Running, Shutdown.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitialized
	PhaseRunning
	PhaseShutdown
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseShutdown:
		return "shutdown"
	}
	return "unknown"
}
