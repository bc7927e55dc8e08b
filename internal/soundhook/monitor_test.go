package soundhook

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

type call struct {
	name string
	id   uint32
}

type recorder struct{ calls []call }

func (r *recorder) NotifyTrackStart(id uint32) bool {
	r.calls = append(r.calls, call{"start", id})
	return true
}

func (r *recorder) NotifyTrackStop(id uint32) bool {
	r.calls = append(r.calls, call{"stop", id})
	return true
}

func (r *recorder) ResetSession() bool {
	r.calls = append(r.calls, call{"reset", 0})
	return true
}

func TestIsBGM(t *testing.T) {
	for _, id := range []uint32{0x34, 0x34D, 0x100, 0x108, 0x200, 0x209, 0x305, 0x402} {
		if !IsBGM(id) {
			t.Errorf("0x%X is music", id)
		}
	}
	for _, id := range []uint32{0, 0x33, 0x109, 0x20A, 0x306, 0x403, 0x500} {
		if IsBGM(id) {
			t.Errorf("0x%X is not music", id)
		}
	}
}

func TestObserve(t *testing.T) {
	r := &recorder{}
	m := NewMonitor(r, 0x34, zap.NewNop().Sugar())
	m.Observe(0)
	m.Observe(0x34)  // title from nothing resets
	m.Observe(0x34)  // title again does not
	m.Observe(0x510) // sfx keeps the last BGM
	m.Observe(0x100)
	m.Observe(0x34)
	want := []call{
		{"start", 0x34}, {"reset", 0},
		{"start", 0x34},
		{"start", 0x510},
		{"start", 0x100},
		{"start", 0x34}, {"reset", 0},
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("%v != %v", r.calls, want)
	}
	if m.LastBGM() != 0x34 {
		t.Errorf("last BGM 0x%X", m.LastBGM())
	}
}

func TestStop(t *testing.T) {
	r := &recorder{}
	m := NewMonitor(r, 0x34, zap.NewNop().Sugar())
	m.Stop()
	if len(r.calls) != 0 {
		t.Fatalf("stop without music notified %v", r.calls)
	}
	m.Observe(0x200)
	m.Observe(0x510)
	m.Stop()
	if got := r.calls[len(r.calls)-1]; got != (call{"stop", 0x200}) {
		t.Errorf("last call %v", got)
	}
	m.Stop()
	if got := r.calls[len(r.calls)-1]; got != (call{"stop", 0x200}) || len(r.calls) != 3 {
		t.Errorf("second stop notified again: %v", r.calls)
	}
}

func TestFrequencies(t *testing.T) {
	m := NewMonitor(&recorder{}, 0x34, zap.NewNop().Sugar())
	for i := 0; i < 3; i++ {
		m.Observe(0x10)
	}
	m.Observe(0x100)
	m.Observe(0x20)
	want := []Count{{0x10, 3}, {0x20, 1}, {0x100, 1}}
	if got := m.Frequencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if !m.ToggleDiscovery() || m.ToggleDiscovery() {
		t.Error("discovery toggle")
	}
	m.Report()
}

func TestCategory(t *testing.T) {
	if Category(0x10) != "player/system sfx" || Category(0x250) != "boss music?" || Category(0x900) != "unknown" {
		t.Error("unexpected categories")
	}
}
