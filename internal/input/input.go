package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical demo action, not a physical key.
type Action int

const (
	ActionQuit Action = iota
	ActionToggleFullscreen
	ActionCyclePreset
	ActionToggleOverlay
	ActionToggleVSync
	ActionCount // sentinel for array sizing
)

// Manager maps physical keys to logical actions and tracks per-frame edge
// state. Callbacks arrive on the main thread, but state is still guarded
// so overlay/debug goroutines can poll safely.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
}

// NewManager creates a Manager with the default demo bindings.
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
	}

	m.BindKey(glfw.KeyEscape, ActionQuit)
	m.BindKey(glfw.KeyQ, ActionQuit)
	m.BindKey(glfw.KeyF11, ActionToggleFullscreen)
	m.BindKey(glfw.KeyF, ActionToggleFullscreen)
	m.BindKey(glfw.KeyTab, ActionCyclePreset)
	m.BindKey(glfw.KeyO, ActionToggleOverlay)
	m.BindKey(glfw.KeyV, ActionToggleVSync)

	return m
}

// BindKey binds a physical key to a logical action. Multiple keys can be
// bound to the same action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// HandleKeyEvent processes a key event and updates internal state.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.RLock()
	actions, exists := m.keyToActions[key]
	m.mu.RUnlock()

	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	m.mu.Lock()
	for _, act := range actions {
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		m.currentState[act] = isPressed
	}
	m.mu.Unlock()
}

// SetKeyCallback installs the GLFW key callback. Call once at startup.
func (m *Manager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the per-frame edge flags. Call at the end of each
// frame, after all input checks.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.justPressed {
		m.justPressed[i] = false
	}
}

// IsActive returns true while the action's key is held down.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only on the frame the action was pressed.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}
