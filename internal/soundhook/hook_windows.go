package soundhook

import (
	"fmt"
	"syscall"

	"github.com/castaneai/skhook/internal/hook"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// Hook is the inline hook on the game's sound player function, which
// receives the sound id in ECX.
type Hook struct {
	Monitor *Monitor

	inline *hook.InlineHook
	log    *zap.SugaredLogger
	failed bool
}

// ModuleAddress returns base address of a loaded module plus rva.
func ModuleAddress(module string, rva uint32) (uintptr, error) {
	name, err := windows.UTF16PtrFromString(module)
	if err != nil {
		return 0, err
	}
	var base windows.Handle
	if err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, name, &base); err != nil {
		return 0, errors.Wrapf(err, "module %s is not loaded", module)
	}
	return uintptr(base) + uintptr(rva), nil
}

// Install hooks module+rva and reports every call to m.
func Install(module string, rva uint32, m *Monitor, log *zap.SugaredLogger) (*Hook, error) {
	arch, err := hook.NewRuntimeArch()
	if err != nil {
		return nil, err
	}
	target, err := ModuleAddress(module, rva)
	if err != nil {
		return nil, err
	}
	h := &Hook{Monitor: m, log: log}
	cb := syscall.NewCallback(h.observe)
	h.inline, err = hook.NewDetour(arch, target, cb, log)
	if err != nil {
		return nil, errors.Wrapf(err, "hook %s+0x%X", module, rva)
	}
	log.Infow("sound player hooked", "target", fmt.Sprintf("%s+0x%X", module, rva), "trampoline", fmt.Sprintf("0x%X", h.inline.Trampoline))
	return h, nil
}

// observe runs on the game's thread between the saved and restored
// registers of the detour stub; it must never panic back into the game.
func (h *Hook) observe(id uintptr) uintptr {
	defer func() {
		if r := recover(); r != nil && !h.failed {
			h.failed = true
			h.log.Errorw("sound callback panicked", "panic", r)
		}
	}()
	h.Monitor.Observe(uint32(id))
	return 0
}

// Close notifies the overlay that the music stopped and removes the hook.
func (h *Hook) Close() error {
	h.Monitor.Stop()
	return h.inline.Close()
}
