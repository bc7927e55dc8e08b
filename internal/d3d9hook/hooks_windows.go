package d3d9hook

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"github.com/castaneai/skhook/internal/hook"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Hooks owns the replacement functions installed into d3d9.
type Hooks struct {
	Registry *hook.Registry
	Renderer *Renderer
	Trace    *Trace

	log       *zap.SugaredLogger
	callbacks map[hook.Slot]uintptr
}

// NewHooks creates the native callbacks. They are process-wide resources,
// so a process should create a single Hooks.
func NewHooks(reg *hook.Registry, r *Renderer, trace *Trace, log *zap.SugaredLogger) *Hooks {
	h := &Hooks{Registry: reg, Renderer: r, Trace: trace, log: log}
	h.callbacks = map[hook.Slot]uintptr{
		endSceneSlot:       syscall.NewCallback(h.endScene),
		presentSlot:        syscall.NewCallback(h.present),
		resetSlot:          syscall.NewCallback(h.reset),
		createDeviceSlot:   syscall.NewCallback(h.createDevice),
		createDeviceExSlot: syscall.NewCallback(h.createDeviceEx),
	}
	if trace != nil {
		h.callbacks[traceCreateTexture] = syscall.NewCallback(h.createTexture)
		h.callbacks[traceSetTexture] = syscall.NewCallback(h.setTexture)
		h.callbacks[traceSetFVF] = syscall.NewCallback(h.setFVF)
	}
	return h
}

func (h *Hooks) deviceSlots() []hook.Slot {
	slots := append([]hook.Slot{}, DeviceSlots...)
	if h.Trace != nil {
		slots = append(slots, TraceSlots...)
	}
	return slots
}

func (h *Hooks) install(object uintptr, slots []hook.Slot) error {
	for _, s := range slots {
		if _, err := h.Registry.Intercept(object, s, h.callbacks[s]); err != nil {
			return err
		}
	}
	return nil
}

// HookDevice patches the overlay (and trace) methods of a device's vtable.
func (h *Hooks) HookDevice(dev uintptr) error {
	return errors.Wrap(h.install(dev, h.deviceSlots()), "hook device")
}

// HookD3D9 patches CreateDevice of an IDirect3D9 vtable.
func (h *Hooks) HookD3D9(d3d uintptr) error {
	return errors.Wrap(h.install(d3d, []hook.Slot{createDeviceSlot}), "hook IDirect3D9")
}

// HookD3D9Ex patches CreateDeviceEx of an IDirect3D9Ex vtable.
func (h *Hooks) HookD3D9Ex(d3d uintptr) error {
	return errors.Wrap(h.install(d3d, []hook.Slot{createDeviceExSlot}), "hook IDirect3D9Ex")
}

// ensureDevice checks that a device the game created runs through our
// replacements and patches its vtable if it does not.
func (h *Hooks) ensureDevice(dev uintptr) {
	for _, s := range h.deviceSlots() {
		if h.Registry.IsHooked(dev, s) {
			continue
		}
		h.log.Infow("device vtable differs from the probe, re-hooking", "slot", s.String())
		if _, err := h.Registry.Intercept(dev, s, h.callbacks[s]); err != nil {
			h.log.Errorw("re-hook failed", "slot", s.String(), "error", err)
		}
	}
}

func (h *Hooks) forward(s hook.Slot, args ...uintptr) uintptr {
	i, ok := h.Registry.Lookup(s)
	if !ok || i.Original() == 0 {
		// E_FAIL; unreachable while the slot points at our callback
		return 0x80004005
	}
	return i.Call(args...)
}

// guard keeps a panic in overlay code from unwinding into the game. The
// hooked method still reaches the original afterwards.
func (h *Hooks) guard(what string) {
	if r := recover(); r != nil {
		h.Renderer.Warn(what, fmt.Errorf("panic: %v", r))
	}
}

func (h *Hooks) endScene(dev uintptr) uintptr {
	func() {
		defer h.guard("EndScene")
		h.Renderer.EndScene(BorrowDevice(dev))
		if h.Trace != nil {
			h.Trace.Tick(time.Now())
		}
	}()
	return h.forward(endSceneSlot, dev)
}

func (h *Hooks) present(dev, src, dst, wnd, dirty uintptr) uintptr {
	func() {
		defer h.guard("Present")
		h.Renderer.Present()
	}()
	return h.forward(presentSlot, dev, src, dst, wnd, dirty)
}

func (h *Hooks) reset(dev, params uintptr) uintptr {
	func() {
		defer h.guard("Reset")
		h.Renderer.BeforeReset()
	}()
	r := h.forward(resetSlot, dev, params)
	func() {
		defer h.guard("Reset")
		h.Renderer.AfterReset(int32(r) >= 0)
	}()
	return r
}

func (h *Hooks) createDevice(d3d, adapter, devType, focus, flags, params, out uintptr) uintptr {
	r := h.forward(createDeviceSlot, d3d, adapter, devType, focus, flags, params, out)
	h.deviceCreated("CreateDevice", r, out)
	return r
}

func (h *Hooks) createDeviceEx(d3d, adapter, devType, focus, flags, params, mode, out uintptr) uintptr {
	r := h.forward(createDeviceExSlot, d3d, adapter, devType, focus, flags, params, mode, out)
	h.deviceCreated("CreateDeviceEx", r, out)
	return r
}

func (h *Hooks) deviceCreated(what string, r, out uintptr) {
	defer h.guard(what)
	if int32(r) < 0 || out == 0 {
		return
	}
	dev := *(*uintptr)(unsafe.Pointer(out))
	if dev == 0 {
		return
	}
	h.ensureDevice(dev)
	h.Renderer.DeviceCreated()
}

func (h *Hooks) createTexture(dev, width, height, levels, usage, format, pool, out, shared uintptr) uintptr {
	h.Trace.CreateTexture.Add(1)
	return h.forward(traceCreateTexture, dev, width, height, levels, usage, format, pool, out, shared)
}

func (h *Hooks) setTexture(dev, stage, tex uintptr) uintptr {
	h.Trace.SetTexture.Add(1)
	return h.forward(traceSetTexture, dev, stage, tex)
}

func (h *Hooks) setFVF(dev, fvf uintptr) uintptr {
	h.Trace.SetFVF.Add(1)
	return h.forward(traceSetFVF, dev, fvf)
}

// Close restores every patched slot.
func (h *Hooks) Close() error {
	return h.Registry.Close()
}
