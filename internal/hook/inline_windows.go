package hook

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const headReadSize = 32

// InlineHook redirects a native function to a detour stub that reports the
// call to a Go callback and then resumes the original function through a
// trampoline.
type InlineHook struct {
	Arch   Arch
	Target uintptr

	// Trampoline runs the relocated head of the target and jumps back into
	// its body. Calling it is equivalent to calling the unhooked target.
	Trampoline uintptr

	mem       *virtualAllocatedMemory
	original  []byte
	closeOnce sync.Once
	log       *zap.SugaredLogger
}

// NewDetour patches target so that every call first runs callback with the
// call's first integer register (see Arch.NewDetourStub). callback must be
// a pointer from syscall.NewCallback.
func NewDetour(arch Arch, target, callback uintptr, log *zap.SugaredLogger) (*InlineHook, error) {
	if target == 0 || callback == 0 {
		return nil, ErrNilObject
	}

	head := make([]byte, headReadSize)
	unsafeReadMemory(target, head)
	log.Debugw("function head before patch", "target", target, "code", Disassemble(head, arch.DisassembleMode(), target))

	size := maxTrampolineSize(arch) + 128
	mem, err := newVirtualAllocatedMemory(size, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return nil, err
	}
	stubAddr := mem.Addr + uintptr(maxTrampolineSize(arch))

	patchSize, err := PatchSize(head, arch.DisassembleMode(), jumpSize(arch, target, stubAddr))
	if err != nil {
		mem.Close()
		return nil, err
	}

	// trampoline: relocated head + jump back behind the patch
	tramp := append([]byte{}, head[:patchSize]...)
	tramp = append(tramp, newJumpAsm(arch, mem.Addr+uintptr(patchSize), target+uintptr(patchSize))...)
	stub := arch.NewDetourStub(stubAddr, callback, mem.Addr)
	if _, err := mem.WriteAt(tramp, 0); err != nil {
		mem.Close()
		return nil, err
	}
	if _, err := mem.WriteAt(stub, int64(maxTrampolineSize(arch))); err != nil {
		mem.Close()
		return nil, err
	}
	flushInstructionCache.Call(uintptr(windows.CurrentProcess()), mem.Addr, uintptr(size))

	jmp := newJumpAsm(arch, target, stubAddr)
	// pad with nops so the disassembly of the patched head stays readable
	for len(jmp) < patchSize {
		jmp = append(jmp, 0x90)
	}
	if err := patchCode(target, jmp); err != nil {
		mem.Close()
		return nil, err
	}

	return &InlineHook{
		Arch:       arch,
		Target:     target,
		Trampoline: mem.Addr,
		mem:        mem,
		original:   head[:patchSize],
		log:        log,
	}, nil
}

// NewDetourByName hooks an export of an already loaded module.
func NewDetourByName(arch Arch, dllName, funcName string, callback uintptr, log *zap.SugaredLogger) (*InlineHook, error) {
	proc := windows.NewLazySystemDLL(dllName).NewProc(funcName)
	if err := proc.Find(); err != nil {
		return nil, errors.Wrapf(err, "find %s!%s", dllName, funcName)
	}
	return NewDetour(arch, proc.Addr(), callback, log)
}

// Close writes the original head back. The trampoline memory is kept
// because a thread may still be executing inside it.
func (h *InlineHook) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = patchCode(h.Target, h.original)
		if err == nil {
			h.log.Debugw("function head restored", "target", h.Target)
		}
	})
	return err
}
