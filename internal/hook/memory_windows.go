package hook

import (
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// ProcessMemory patches memory of the current process, lifting page
// protection around each write.
type ProcessMemory struct{}

func (ProcessMemory) ReadPointer(addr uintptr) (uintptr, error) {
	if addr == 0 {
		return 0, ErrNilObject
	}
	if !readable(addr, ptrSize) {
		return 0, errors.Wrapf(ErrNilObject, "0x%X is not committed", addr)
	}
	return atomic.LoadUintptr((*uintptr)(unsafe.Pointer(addr))), nil
}

func (ProcessMemory) WritePointer(addr, value uintptr) error {
	if addr == 0 {
		return ErrNilObject
	}
	var oldProtect uint32
	if err := windows.VirtualProtect(addr, ptrSize, windows.PAGE_READWRITE, &oldProtect); err != nil {
		return errors.Wrapf(ErrNotWritable, "VirtualProtect 0x%X: %v", addr, err)
	}
	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(addr)), value)
	if err := windows.VirtualProtect(addr, ptrSize, oldProtect, &oldProtect); err != nil {
		return errors.Wrapf(err, "restore protection of 0x%X", addr)
	}
	return nil
}

func readable(addr, size uintptr) bool {
	var mbi windows.MemoryBasicInformation
	if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
		return false
	}
	if mbi.State != windows.MEM_COMMIT || mbi.Protect&(windows.PAGE_NOACCESS|windows.PAGE_GUARD) != 0 {
		return false
	}
	return addr+size <= mbi.BaseAddress+mbi.RegionSize
}

// SyscallInvoke calls fn with the platform calling convention used by COM
// methods and stdcall exports.
func SyscallInvoke(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}
