package bridge

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// ModuleResolver resolves exports of modules already loaded in the
// process. It never loads a module itself.
type ModuleResolver struct{}

func (ModuleResolver) Resolve(module, name string) (uintptr, bool) {
	p, err := windows.UTF16PtrFromString(module)
	if err != nil {
		return 0, false
	}
	var h windows.Handle
	if err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, p, &h); err != nil {
		return 0, false
	}
	fn, err := windows.GetProcAddress(h, name)
	if err != nil {
		return 0, false
	}
	return fn, true
}

// The exports are cgo functions using the C calling convention; SyscallN
// restores the stack pointer after the call, so it is safe for them too.
func SyscallInvoke(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}
