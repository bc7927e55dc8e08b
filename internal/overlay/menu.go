package overlay

// MenuItem is either a toggle or an action. Confirming an item with an
// action runs it; otherwise the toggle flips.
type MenuItem struct {
	Label  string
	Toggle *Toggle
	Action func()
}

func (i MenuItem) Text() string {
	if i.Action == nil && i.Toggle != nil {
		if i.Toggle.On() {
			return i.Label + ": ON"
		}
		return i.Label + ": OFF"
	}
	return i.Label
}

// Menu is an ordered item list with a cyclic selection.
type Menu struct {
	Visible  bool
	items    []MenuItem
	selected int
}

func (m *Menu) Add(items ...MenuItem) {
	m.items = append(m.items, items...)
}

func (m *Menu) Items() []MenuItem { return m.items }
func (m *Menu) Selected() int     { return m.selected }

// Move shifts the selection by delta, wrapping around both ends.
func (m *Menu) Move(delta int) {
	n := len(m.items)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Confirm activates the selected item.
func (m *Menu) Confirm() {
	if len(m.items) == 0 {
		return
	}
	item := m.items[m.selected]
	switch {
	case item.Action != nil:
		item.Action()
	case item.Toggle != nil:
		item.Toggle.Flip()
	}
}
