package input

import (
	"slices"
	"sync"
)

// manager is the implementation of the Manager interface.
type manager struct {
	mu     sync.Mutex
	held   map[uint32]bool
	tapped map[uint32]bool
	scroll float32
}

// Manager tracks keyboard and scroll state between scene updates.
// Window callbacks report key transitions; terminals, which only see key presses, report taps
// that count as held for exactly one update.
type Manager interface {
	// KeyDown marks a key as held.
	//
	// Parameters:
	//   - keyCode: GLFW key code (see common.Key*)
	KeyDown(keyCode uint32)

	// KeyUp releases a held key.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	KeyUp(keyCode uint32)

	// Tap marks a key as pressed until the next EndUpdate.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	Tap(keyCode uint32)

	// Scroll accumulates a scroll wheel delta.
	//
	// Parameters:
	//   - delta: scroll offset, positive away from the user
	Scroll(delta float32)

	// IsHeld reports whether a key is held or was tapped since the last EndUpdate.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	//
	// Returns:
	//   - bool: true if the key is active
	IsHeld(keyCode uint32) bool

	// Axis combines two keys into -1, 0 or 1.
	//
	// Parameters:
	//   - negative: key that pushes toward -1
	//   - positive: key that pushes toward +1
	//
	// Returns:
	//   - float32: the axis value
	Axis(negative, positive uint32) float32

	// ConsumeScroll returns the scroll delta accumulated since the last call and clears it.
	//
	// Returns:
	//   - float32: accumulated scroll
	ConsumeScroll() float32

	// Held returns the held key codes in ascending order.
	//
	// Returns:
	//   - []uint32: held key codes
	Held() []uint32

	// EndUpdate clears taps. Called once per scene update.
	EndUpdate()

	// Reset releases every key and drops pending scroll, e.g. when the window loses focus.
	Reset()
}

var _ Manager = &manager{}

// NewManager creates an empty input Manager.
//
// Returns:
//   - Manager: the new manager
func NewManager() Manager {
	return &manager{
		held:   make(map[uint32]bool),
		tapped: make(map[uint32]bool),
	}
}

func (m *manager) KeyDown(keyCode uint32) {
	m.mu.Lock()
	m.held[keyCode] = true
	m.mu.Unlock()
}

func (m *manager) KeyUp(keyCode uint32) {
	m.mu.Lock()
	delete(m.held, keyCode)
	m.mu.Unlock()
}

func (m *manager) Tap(keyCode uint32) {
	m.mu.Lock()
	m.tapped[keyCode] = true
	m.mu.Unlock()
}

func (m *manager) Scroll(delta float32) {
	m.mu.Lock()
	m.scroll += delta
	m.mu.Unlock()
}

func (m *manager) IsHeld(keyCode uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[keyCode] || m.tapped[keyCode]
}

func (m *manager) Axis(negative, positive uint32) float32 {
	var v float32
	if m.IsHeld(positive) {
		v++
	}
	if m.IsHeld(negative) {
		v--
	}
	return v
}

func (m *manager) ConsumeScroll() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.scroll
	m.scroll = 0
	return s
}

func (m *manager) Held() []uint32 {
	m.mu.Lock()
	keys := make([]uint32, 0, len(m.held))
	for k := range m.held {
		keys = append(keys, k)
	}
	m.mu.Unlock()
	slices.Sort(keys)
	return keys
}

func (m *manager) EndUpdate() {
	m.mu.Lock()
	clear(m.tapped)
	m.mu.Unlock()
}

func (m *manager) Reset() {
	m.mu.Lock()
	clear(m.held)
	clear(m.tapped)
	m.scroll = 0
	m.mu.Unlock()
}
