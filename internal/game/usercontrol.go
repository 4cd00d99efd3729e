package game

import "sync"

// UserControl names one of the discrete inputs the physics tick reads
// every frame.
type UserControl int

const (
	ControlLeft UserControl = iota
	ControlRight
	ControlUp
	ControlDown
	ControlSprint
)

// KeyState is a concurrency-safe LEFT/RIGHT/UP/DOWN/SPRINT flag map,
// written only by the input handler and read only by the physics tick.
type KeyState struct {
	mu    sync.RWMutex
	state map[UserControl]bool
}

// NewKeyState returns a KeyState with every control initialized to
// released.
func NewKeyState() *KeyState {
	return &KeyState{
		state: map[UserControl]bool{
			ControlLeft:   false,
			ControlRight:  false,
			ControlUp:     false,
			ControlDown:   false,
			ControlSprint: false,
		},
	}
}

// Set records whether c is currently held.
func (k *KeyState) Set(c UserControl, pressed bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state[c] = pressed
}

// Get reports whether c is currently held.
func (k *KeyState) Get(c UserControl) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state[c]
}
