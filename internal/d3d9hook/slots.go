// Package d3d9hook attaches the overlay to the game's Direct3D 9 device.
//
// The device methods are intercepted by patching vtable slots. Every
// device created by d3d9.dll shares one vtable, so the slots are first
// patched through a short-lived probe device. Hooks on CreateDevice and
// CreateDeviceEx check the game's real device and re-patch it when it was
// given a different vtable.
package d3d9hook

import "github.com/castaneai/skhook/internal/hook"

const (
	TagDevice = "IDirect3DDevice9"
	TagD3D9   = "IDirect3D9"
	TagD3D9Ex = "IDirect3D9Ex"
	TagTrace  = "IDirect3DDevice9/trace"
)

// IDirect3DDevice9 vtable indices of the hooked methods.
const (
	SlotReset         = 16
	SlotPresent       = 17
	SlotCreateTexture = 23
	SlotEndScene      = 42
	SlotSetTexture    = 65
	SlotSetFVF        = 89
)

// IDirect3D9 and IDirect3D9Ex vtable indices.
const (
	SlotCreateDevice   = 16
	SlotCreateDeviceEx = 20
)

var (
	endSceneSlot       = hook.Slot{Tag: TagDevice, Index: SlotEndScene}
	presentSlot        = hook.Slot{Tag: TagDevice, Index: SlotPresent}
	resetSlot          = hook.Slot{Tag: TagDevice, Index: SlotReset}
	createDeviceSlot   = hook.Slot{Tag: TagD3D9, Index: SlotCreateDevice}
	createDeviceExSlot = hook.Slot{Tag: TagD3D9Ex, Index: SlotCreateDeviceEx}

	traceCreateTexture = hook.Slot{Tag: TagTrace, Index: SlotCreateTexture}
	traceSetTexture    = hook.Slot{Tag: TagTrace, Index: SlotSetTexture}
	traceSetFVF        = hook.Slot{Tag: TagTrace, Index: SlotSetFVF}
)

// DeviceSlots are the device methods the overlay needs on every device.
var DeviceSlots = []hook.Slot{endSceneSlot, presentSlot, resetSlot}

// TraceSlots are the device methods the diagnostics layer counts.
var TraceSlots = []hook.Slot{traceCreateTexture, traceSetTexture, traceSetFVF}
