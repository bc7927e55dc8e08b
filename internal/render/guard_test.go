package render

import (
	"testing"

	"github.com/pkg/errors"
)

func seededDevice() (*fakeDevice, *fakeResource, *fakeResource) {
	dev := newFakeDevice()
	for i, o := range overlayStates {
		dev.states[o.state] = uint32(100 + i)
	}
	dev.fvf = 0x152
	tex := &fakeResource{name: "game texture"}
	vb := &fakeResource{name: "game vertex buffer"}
	dev.texture = tex
	dev.stream = StreamSource{Buffer: vb, Offset: 16, Stride: 32}
	return dev, tex, vb
}

func snapshot(dev *fakeDevice) map[RenderState]uint32 {
	m := make(map[RenderState]uint32, len(dev.states))
	for k, v := range dev.states {
		m[k] = v
	}
	return m
}

func assertRestored(t *testing.T, dev *fakeDevice, before map[RenderState]uint32, tex, vb *fakeResource) {
	t.Helper()
	for k, v := range before {
		if dev.states[k] != v {
			t.Errorf("%s = %d, want %d", k, dev.states[k], v)
		}
	}
	if dev.fvf != 0x152 {
		t.Errorf("FVF = %#x", dev.fvf)
	}
	if dev.texture != tex {
		t.Errorf("texture 0 not restored")
	}
	if dev.stream.Buffer != vb || dev.stream.Offset != 16 || dev.stream.Stride != 32 {
		t.Errorf("stream 0 not restored: %+v", dev.stream)
	}
	if tex.released != 1 || vb.released != 1 {
		t.Errorf("released texture %d times, buffer %d times", tex.released, vb.released)
	}
}

func TestWithOverlayRenderState(t *testing.T) {
	dev, tex, vb := seededDevice()
	before := snapshot(dev)
	err := WithOverlayRenderState(dev, func() error {
		for _, o := range overlayStates {
			if dev.states[o.state] != o.value {
				t.Errorf("inside pass %s = %d, want %d", o.state, dev.states[o.state], o.value)
			}
		}
		if dev.fvf != OverlayFVF || dev.texture != nil || dev.stream.Buffer != nil {
			t.Error("inside pass the pipeline is not unbound")
		}
		NewCanvas(dev).FillRect(0, 0, 10, 10, White)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	assertRestored(t, dev, before, tex, vb)
}

func TestWithOverlayRenderStateError(t *testing.T) {
	dev, tex, vb := seededDevice()
	before := snapshot(dev)
	want := errors.New("draw failed")
	if err := WithOverlayRenderState(dev, func() error { return want }); err != want {
		t.Errorf("err = %v", err)
	}
	assertRestored(t, dev, before, tex, vb)
}

func TestWithOverlayRenderStatePanic(t *testing.T) {
	dev, tex, vb := seededDevice()
	before := snapshot(dev)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic was swallowed")
			}
		}()
		WithOverlayRenderState(dev, func() error {
			dev.SetRenderState(StateCullMode, 99)
			panic("boom")
		})
	}()
	assertRestored(t, dev, before, tex, vb)
}

func TestWithOverlayRenderStateCaptureFailure(t *testing.T) {
	dev, _, _ := seededDevice()
	dev.failGet = StateLighting
	called := false
	err := WithOverlayRenderState(dev, func() error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Errorf("err = %v, draw called = %v", err, called)
	}
}

func TestNilBindingsReleaseNothing(t *testing.T) {
	dev := newFakeDevice()
	if err := WithOverlayRenderState(dev, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if dev.texture != nil || dev.stream.Buffer != nil {
		t.Error("nil bindings were not restored as nil")
	}
}
