package input

import "testing"

func TestEdgesHeldKeyPressedOnce(t *testing.T) {
	var e Edges
	held := Held{ToggleMenu: true}
	if !e.Sample(held).Pressed(ToggleMenu) {
		t.Fatal("first down frame not pressed")
	}
	for i := 0; i < 5; i++ {
		st := e.Sample(held)
		if st.Pressed(ToggleMenu) {
			t.Fatalf("held key pressed again on frame %d", i+2)
		}
		if !st.Held(ToggleMenu) {
			t.Fatal("held key not reported as held")
		}
	}
	e.Sample(Held{})
	if !e.Sample(held).Pressed(ToggleMenu) {
		t.Fatal("key not pressed after release")
	}
}

func TestEdgesIndependentKeys(t *testing.T) {
	var e Edges
	e.Sample(Held{Up: true})
	st := e.Sample(Held{Up: true, Down: true})
	if st.Pressed(Up) || !st.Pressed(Down) {
		t.Errorf("up pressed=%v down pressed=%v", st.Pressed(Up), st.Pressed(Down))
	}
}

func TestPress(t *testing.T) {
	st := Press(Confirm, Key(99))
	if !st.Pressed(Confirm) || st.Pressed(Up) || st.Pressed(Key(99)) {
		t.Error("unexpected pressed set")
	}
	if Key(99).String() != "Key(99)" || Stats.String() != "Stats" {
		t.Error("unexpected key names")
	}
	if len(Keys()) != int(keyCount) {
		t.Error("Keys() incomplete")
	}
}
