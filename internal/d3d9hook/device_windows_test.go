package d3d9hook

import (
	"testing"
	"unsafe"

	"github.com/castaneai/skhook/internal/render"
	"github.com/gonutz/d3d9"
	"github.com/lxn/win"
)

func newTestDevice(t *testing.T) *d3d9.Device {
	d3d, err := d3d9.Create(d3d9.SDK_VERSION)
	if err != nil {
		t.Skipf("no Direct3D 9: %v", err)
	}
	t.Cleanup(func() { d3d.Release() })
	wnd := d3d9.HWND(win.GetDesktopWindow())
	dev, _, err := d3d.CreateDevice(d3d9.ADAPTER_DEFAULT, d3d9.DEVTYPE_HAL, wnd,
		d3d9.CREATE_SOFTWARE_VERTEXPROCESSING,
		d3d9.PRESENT_PARAMETERS{
			Windowed:         1,
			BackBufferCount:  1,
			BackBufferWidth:  64,
			BackBufferHeight: 64,
			HDeviceWindow:    wnd,
			SwapEffect:       d3d9.SWAPEFFECT_DISCARD,
		})
	if err != nil {
		t.Skipf("no device: %v", err)
	}
	t.Cleanup(func() { dev.Release() })
	return dev
}

func TestBorrowedDeviceGuardRestores(t *testing.T) {
	raw := newTestDevice(t)
	dev := BorrowDevice(uintptr(unsafe.Pointer(raw)))

	if err := dev.SetRenderState(render.StateZEnable, 1); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetFVF(0x002); err != nil { // D3DFVF_XYZ
		t.Fatal(err)
	}
	vp, err := dev.Viewport()
	if err != nil {
		t.Fatal(err)
	}
	if vp.Width != 64 || vp.Height != 64 {
		t.Fatalf("viewport %+v", vp)
	}

	if err := raw.BeginScene(); err != nil {
		t.Fatal(err)
	}
	defer raw.EndScene()
	cv := render.NewCanvas(dev)
	err = render.WithOverlayRenderState(dev, func() error {
		if v, err := dev.RenderState(render.StateZEnable); err != nil || v != 0 {
			t.Errorf("z test inside the pass: %d, %v", v, err)
		}
		cv.FillRect(1, 1, 10, 10, render.White)
		return cv.Err()
	})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := dev.RenderState(render.StateZEnable); err != nil || v != 1 {
		t.Errorf("z test after the pass: %d, %v", v, err)
	}
	if fvf, err := dev.FVF(); err != nil || fvf != 0x002 {
		t.Errorf("FVF after the pass: 0x%X, %v", fvf, err)
	}
	if tex, err := dev.Texture(0); err != nil || tex != nil {
		t.Errorf("texture 0 after the pass: %v, %v", tex, err)
	}
}
