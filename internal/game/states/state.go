// Package states switches the running scene, for example after the scene file
// changes on disk or when another file is opened from the inspector.
package states

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/game/scene"
	"github.com/Faultbox/prism/internal/logger"
)

// State is a runnable scene. *scene.Scene implements it.
type State interface {
	Init() error
	Update(dt float32, in scene.Input) error
	Draw(ctx gpu.Context) error
	OnResize(width, height int) error
	Shutdown() error
}

// Manager owns the current state and applies scheduled changes at the start
// of the next Update.
type Manager struct {
	current State
	next    State

	width, height int
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the running state, or nil.
func (m *Manager) Current() State {
	return m.current
}

// Pending reports whether a change is scheduled.
func (m *Manager) Pending() bool {
	return m.next != nil
}

// Change schedules next to replace the current state. A previously
// scheduled state that never ran is shut down.
func (m *Manager) Change(next State) {
	if m.next != nil && m.next != next {
		if err := m.next.Shutdown(); err != nil {
			logger.For("states").Warn("discarding pending state", zap.Error(err))
		}
	}
	m.next = next
}

// Resize records the drawable size and forwards it to the current state.
// States switched in later receive the last recorded size.
func (m *Manager) Resize(width, height int) error {
	m.width, m.height = width, height
	if m.current == nil {
		return nil
	}
	return m.current.OnResize(width, height)
}

// Update applies a pending change, then updates the current state. If the
// new state fails to initialize, the previous one keeps running and the
// error is returned. A previous state that fails to shut down is logged and
// dropped; the new state still runs.
func (m *Manager) Update(dt float32, in scene.Input) error {
	if m.next != nil {
		if err := m.switchTo(m.next); err != nil {
			return err
		}
	}
	if m.current == nil {
		return nil
	}
	return m.current.Update(dt, in)
}

func (m *Manager) switchTo(next State) error {
	m.next = nil
	if err := next.Init(); err != nil {
		return errors.Join(fmt.Errorf("initializing state: %w", err), next.Shutdown())
	}
	if m.width > 0 && m.height > 0 {
		if err := next.OnResize(m.width, m.height); err != nil {
			logger.For("states").Warn("resizing new state", zap.Error(err))
		}
	}

	prev := m.current
	m.current = next
	if prev != nil {
		if err := prev.Shutdown(); err != nil {
			logger.For("states").Warn("shutting down previous state", zap.Error(err))
		}
	}
	return nil
}

// Draw draws the current state.
func (m *Manager) Draw(ctx gpu.Context) error {
	if m.current == nil {
		return nil
	}
	return m.current.Draw(ctx)
}

// Shutdown shuts down the current and any pending state.
func (m *Manager) Shutdown() error {
	var errs []error
	if m.next != nil {
		errs = append(errs, m.next.Shutdown())
		m.next = nil
	}
	if m.current != nil {
		errs = append(errs, m.current.Shutdown())
		m.current = nil
	}
	return errors.Join(errs...)
}

var _ State = (*scene.Scene)(nil)
