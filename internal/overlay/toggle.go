package overlay

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Toggle is a named on/off switch. It is flipped on the render thread and
// may be read from any thread through the module's exports.
type Toggle struct {
	Name string
	on   atomic.Bool
}

func NewToggle(name string, on bool) *Toggle {
	t := &Toggle{Name: name}
	t.on.Store(on)
	return t
}

func (t *Toggle) On() bool { return t.on.Load() }
func (t *Toggle) Set(on bool) { t.on.Store(on) }
func (t *Toggle) Flip() bool {
	for {
		old := t.on.Load()
		if t.on.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Cheats is the set of named cheat toggles in registration order.
type Cheats struct {
	order  []*Toggle
	byName map[string]*Toggle
}

func NewCheats() *Cheats {
	return &Cheats{byName: make(map[string]*Toggle)}
}

func (c *Cheats) Register(name string) (*Toggle, error) {
	if name == "" {
		return nil, errors.New("cheat name is empty")
	}
	if _, dup := c.byName[name]; dup {
		return nil, errors.Errorf("cheat %q registered twice", name)
	}
	t := NewToggle(name, false)
	c.order = append(c.order, t)
	c.byName[name] = t
	return t, nil
}

func (c *Cheats) Lookup(name string) (*Toggle, bool) {
	t, ok := c.byName[name]
	return t, ok
}

func (c *Cheats) All() []*Toggle {
	return c.order
}

// Enabled returns the names of the cheats that are on, in registration order.
func (c *Cheats) Enabled() []string {
	var names []string
	for _, t := range c.order {
		if t.On() {
			names = append(names, t.Name)
		}
	}
	return names
}
