// Package input turns polled key state into per-frame press edges.
package input

import "fmt"

// Key is a logical key; samplers map it to a physical one.
type Key int

const (
	ToggleMenu Key = iota
	Up
	Down
	Confirm
	Cheat1
	Cheat2
	Cheat3
	Cheat4
	PermanentDisplay
	Discovery
	Stats
	Unload

	keyCount
)

var keyNames = [keyCount]string{
	"ToggleMenu", "Up", "Down", "Confirm",
	"Cheat1", "Cheat2", "Cheat3", "Cheat4",
	"PermanentDisplay", "Discovery", "Stats", "Unload",
}

func (k Key) String() string {
	if k >= 0 && k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Keys lists every logical key.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Sampler reports whether a key is held down right now.
type Sampler interface {
	Held(k Key) bool
}

// Held is a fixed set of held keys.
type Held map[Key]bool

func (h Held) Held(k Key) bool { return h[k] }

// State is the input of one frame.
type State struct {
	held    [keyCount]bool
	pressed [keyCount]bool
}

// Pressed reports whether k went down this frame.
func (s State) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && s.pressed[k]
}

func (s State) Held(k Key) bool {
	return k >= 0 && k < keyCount && s.held[k]
}

// Edges remembers the previous frame's key state. It is used from a single
// thread.
type Edges struct {
	prev [keyCount]bool
}

// Sample polls every key once and reports the up-to-down transitions since
// the previous Sample. A key held across frames is pressed only once.
func (e *Edges) Sample(s Sampler) State {
	var st State
	for k := Key(0); k < keyCount; k++ {
		down := s.Held(k)
		st.held[k] = down
		st.pressed[k] = down && !e.prev[k]
		e.prev[k] = down
	}
	return st
}

// Press returns a State in which exactly the given keys were pressed.
func Press(keys ...Key) State {
	var st State
	for _, k := range keys {
		if k >= 0 && k < keyCount {
			st.held[k] = true
			st.pressed[k] = true
		}
	}
	return st
}
