package overlay

import (
	"math/rand"
	"testing"
)

func newTestMenu(n int) *Menu {
	m := &Menu{}
	for i := 0; i < n; i++ {
		m.Add(MenuItem{Label: "item", Toggle: NewToggle("t", false)})
	}
	return m
}

func TestMenuWraps(t *testing.T) {
	m := newTestMenu(9)
	m.Move(-1)
	if m.Selected() != 8 {
		t.Errorf("up from first selected %d", m.Selected())
	}
	m.Move(1)
	if m.Selected() != 0 {
		t.Errorf("down from last selected %d", m.Selected())
	}
}

func TestMenuSelectionStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 9} {
		m := newTestMenu(n)
		for i := 0; i < 1000; i++ {
			m.Move(rng.Intn(7) - 3)
			if s := m.Selected(); s < 0 || s >= n {
				t.Fatalf("n=%d: selection %d out of range", n, s)
			}
		}
	}
	empty := &Menu{}
	empty.Move(1)
	empty.Confirm()
	if empty.Selected() != 0 {
		t.Error("empty menu moved")
	}
}

func TestMenuConfirm(t *testing.T) {
	toggle := NewToggle("God Mode", false)
	ran := 0
	m := &Menu{}
	m.Add(MenuItem{Label: "God Mode", Toggle: toggle}, MenuItem{Label: "Reset", Action: func() { ran++ }})

	m.Confirm()
	if !toggle.On() {
		t.Error("toggle not flipped")
	}
	if m.Items()[0].Text() != "God Mode: ON" {
		t.Errorf("text %q", m.Items()[0].Text())
	}
	m.Move(1)
	m.Confirm()
	if ran != 1 || !toggle.On() {
		t.Errorf("action ran %d times, toggle %v", ran, toggle.On())
	}
	if m.Items()[1].Text() != "Reset" {
		t.Errorf("action text %q", m.Items()[1].Text())
	}
}

func TestCheatsRegister(t *testing.T) {
	c := NewCheats()
	if _, err := c.Register("God Mode"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Register("God Mode"); err == nil {
		t.Error("duplicate name accepted")
	}
	if _, err := c.Register(""); err == nil {
		t.Error("empty name accepted")
	}
	nc, _ := c.Register("No Clip")
	nc.Set(true)
	if got := c.Enabled(); len(got) != 1 || got[0] != "No Clip" {
		t.Errorf("enabled %v", got)
	}
}
