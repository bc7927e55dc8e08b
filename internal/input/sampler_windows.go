package input

import "github.com/lxn/win"

// DefaultBindings maps logical keys to virtual-key codes.
var DefaultBindings = map[Key]int32{
	ToggleMenu:       int32(win.VK_INSERT),
	Up:               int32(win.VK_UP),
	Down:             int32(win.VK_DOWN),
	Confirm:          int32(win.VK_RETURN),
	Cheat1:           int32(win.VK_F1),
	Cheat2:           int32(win.VK_F2),
	Cheat3:           int32(win.VK_F3),
	Cheat4:           int32(win.VK_F4),
	PermanentDisplay: int32(win.VK_F6),
	Discovery:        int32(win.VK_F7),
	Stats:            int32(win.VK_F8),
	Unload:           int32(win.VK_F9),
}

// Keyboard samples the physical keyboard with GetAsyncKeyState, so it works
// from any thread regardless of window focus.
type Keyboard struct {
	Bindings map[Key]int32
}

func NewKeyboard() *Keyboard {
	return &Keyboard{Bindings: DefaultBindings}
}

func (k *Keyboard) Held(key Key) bool {
	vk, ok := k.Bindings[key]
	if !ok {
		return false
	}
	return uint16(win.GetAsyncKeyState(vk))&0x8000 != 0
}
