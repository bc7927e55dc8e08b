package hook

import (
	"runtime"

	"github.com/pkg/errors"
)

const (
	_ASM_OP_NEAR_JMP  = 0xE9   // jmp rel32
	_ASM_OP_FAR_JMP   = 0x25FF // jmp dword ptr[addr32] / jmp qword ptr[rip+0]
	_ASM_OP_PUSHAD    = 0x60
	_ASM_OP_POPAD     = 0x61
	_ASM_OP_PUSHFD    = 0x9C
	_ASM_OP_POPFD     = 0x9D
	_ASM_OP_PUSH_ECX  = 0x51
	_ASM_OP_MOV_EAX   = 0xB8   // mov eax, imm32
	_ASM_OP_CALL_EAX  = 0xD0FF // call eax / call rax
	_ASM_OP_REX_W     = 0x48
	_ASM_OP_MOVABS_RA = 0xB848 // movabs rax, imm64
)

// Arch encodes the machine code the inline hooks write into target
// functions and trampolines.
type Arch interface {
	DisassembleMode() int
	NearJumpSize() uint
	FarJumpSize() uint
	NewNearJumpAsm(from, to uintptr) []byte
	NewFarJumpAsm(from, to uintptr) []byte

	// NewDetourStub returns a stub located at `at` which saves every
	// register and the flags, calls callback with the first integer
	// register of the hooked call (ECX on 386, RCX on amd64) as its only
	// argument, restores the saved state and jumps to resume.
	NewDetourStub(at, callback, resume uintptr) []byte
}

func maxTrampolineSize(arch Arch) uint {
	// longest stolen prologue (a jump plus one 15 byte instruction) and the jump back
	return arch.FarJumpSize() + 15 + arch.FarJumpSize()
}

func isFarJump(from, to uintptr) bool {
	if to >= from {
		return (to - from) > uintptr(0x7fff0000)
	}
	return (from - to) > uintptr(0x7fff0000)
}

func jumpSize(arch Arch, from, to uintptr) uint {
	if isFarJump(from, to) {
		return arch.FarJumpSize()
	}
	return arch.NearJumpSize()
}

func newJumpAsm(arch Arch, from, to uintptr) []byte {
	if isFarJump(from, to) {
		return arch.NewFarJumpAsm(from, to)
	}
	return arch.NewNearJumpAsm(from, to)
}

// NewRuntimeArch returns the encoder for the architecture this binary runs on.
func NewRuntimeArch() (Arch, error) {
	return archFor(runtime.GOARCH)
}

func archFor(goarch string) (Arch, error) {
	switch goarch {
	case "386":
		return &Arch386{}, nil
	case "amd64":
		return &ArchAMD64{}, nil
	}
	return nil, errors.Wrap(ErrUnsupportedArch, goarch)
}
