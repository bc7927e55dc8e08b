package hook

import (
	"sync/atomic"
	"unsafe"
)

// Memory reads and patches pointer-sized words of the current process.
// WritePointer is responsible for lifting and restoring page protection and
// must report a failure wrapping ErrNotWritable.
type Memory interface {
	ReadPointer(addr uintptr) (uintptr, error)
	WritePointer(addr, value uintptr) error
}

// Invoker calls a native function pointer with pointer-sized arguments.
type Invoker func(fn uintptr, args ...uintptr) uintptr

const ptrSize = unsafe.Sizeof(uintptr(0))

// DirectMemory accesses memory that is already readable and writable, such
// as vtables built by Go code.
type DirectMemory struct{}

func (DirectMemory) ReadPointer(addr uintptr) (uintptr, error) {
	if addr == 0 {
		return 0, ErrNilObject
	}
	return atomic.LoadUintptr((*uintptr)(unsafe.Pointer(addr))), nil
}

func (DirectMemory) WritePointer(addr, value uintptr) error {
	if addr == 0 {
		return ErrNilObject
	}
	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(addr)), value)
	return nil
}
