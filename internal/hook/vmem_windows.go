package hook

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	flushInstructionCache = kernel32.NewProc("FlushInstructionCache")
)

type virtualAllocatedMemory struct {
	Addr uintptr
	Size uint
}

func newVirtualAllocatedMemory(size uint, protect uint32) (*virtualAllocatedMemory, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, protect)
	if err != nil {
		return nil, errors.Wrapf(err, "VirtualAlloc %d bytes", size)
	}
	return &virtualAllocatedMemory{Addr: addr, Size: size}, nil
}

func (vmem *virtualAllocatedMemory) Read(p []byte) (int, error) {
	unsafeReadMemory(vmem.Addr, p)
	return len(p), nil
}

func (vmem *virtualAllocatedMemory) WriteAt(p []byte, off int64) (int, error) {
	if uint(off)+uint(len(p)) > vmem.Size {
		return 0, errors.Errorf("write of %d bytes at %d overflows %d byte buffer", len(p), off, vmem.Size)
	}
	unsafeWriteMemory(vmem.Addr+uintptr(off), p)
	return len(p), nil
}

func (vmem *virtualAllocatedMemory) Close() error {
	return windows.VirtualFree(vmem.Addr, 0, windows.MEM_RELEASE)
}

func unsafeReadMemory(ptr uintptr, out []byte) {
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(out)))
}

func unsafeWriteMemory(ptr uintptr, in []byte) {
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(in)), in)
}

// patchCode overwrites executable code, restoring the page protection and
// flushing the instruction cache afterwards.
func patchCode(addr uintptr, code []byte) error {
	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(len(code)), windows.PAGE_EXECUTE_READWRITE, &oldProtect); err != nil {
		return errors.Wrapf(ErrNotWritable, "VirtualProtect 0x%X: %v", addr, err)
	}
	unsafeWriteMemory(addr, code)
	if err := windows.VirtualProtect(addr, uintptr(len(code)), oldProtect, &oldProtect); err != nil {
		return errors.Wrapf(err, "restore protection of 0x%X", addr)
	}
	flushInstructionCache.Call(uintptr(windows.CurrentProcess()), addr, uintptr(len(code)))
	return nil
}
