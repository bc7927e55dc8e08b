package d3d9hook

import (
	"unsafe"

	"github.com/gonutz/d3d9"
	"github.com/lxn/win"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var direct3DCreate9Ex = windows.NewLazySystemDLL("d3d9.dll").NewProc("Direct3DCreate9Ex")

// Bootstrap patches the shared d3d9 vtables through throwaway probe
// objects. The probes are released before Bootstrap returns; the patched
// vtables stay in use by every object the game creates afterwards.
func (h *Hooks) Bootstrap() error {
	if err := h.probeDevice(); err != nil {
		return err
	}
	if err := h.probeD3D9Ex(); err != nil {
		h.log.Warnw("IDirect3D9Ex probe failed, CreateDeviceEx is not watched", "error", err)
	}
	h.log.Infow("probe objects released, hooks installed", "slots", len(h.Registry.Slots()))
	return nil
}

func (h *Hooks) probeDevice() error {
	d3d, err := d3d9.Create(d3d9.SDK_VERSION)
	if err != nil {
		return errors.Wrap(err, "Direct3DCreate9")
	}
	defer d3d.Release()

	wnd := d3d9.HWND(win.GetDesktopWindow())
	dev, _, err := d3d.CreateDevice(
		d3d9.ADAPTER_DEFAULT,
		d3d9.DEVTYPE_HAL,
		wnd,
		d3d9.CREATE_SOFTWARE_VERTEXPROCESSING,
		d3d9.PRESENT_PARAMETERS{
			Windowed:         1,
			BackBufferCount:  1,
			BackBufferWidth:  1,
			BackBufferHeight: 1,
			HDeviceWindow:    wnd,
			SwapEffect:       d3d9.SWAPEFFECT_DISCARD,
		},
	)
	if err != nil {
		return errors.Wrap(err, "create probe device")
	}
	defer dev.Release()

	if err := h.HookDevice(uintptr(unsafe.Pointer(dev))); err != nil {
		return err
	}
	// after the probe device exists, so the probe is not reported as the game's device
	if err := h.HookD3D9(uintptr(unsafe.Pointer(d3d))); err != nil {
		h.log.Warnw("CreateDevice is not watched", "error", err)
	}
	h.log.Debugw("probe device hooked", "device", uintptr(unsafe.Pointer(dev)))
	return nil
}

func (h *Hooks) probeD3D9Ex() error {
	if err := direct3DCreate9Ex.Find(); err != nil {
		return err
	}
	var d3d uintptr
	r, _, _ := direct3DCreate9Ex.Call(uintptr(d3d9.SDK_VERSION), uintptr(unsafe.Pointer(&d3d)))
	if int32(r) < 0 || d3d == 0 {
		return errors.Errorf("Direct3DCreate9Ex: HRESULT 0x%08X", uint32(r))
	}
	// IDirect3D9Ex extends IDirect3D9, so Release is at the same place
	defer (*d3d9.Direct3D)(unsafe.Pointer(d3d)).Release()
	return h.HookD3D9Ex(d3d)
}
