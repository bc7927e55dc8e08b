package hook

import (
	"encoding/binary"
	"unsafe"
)

type ArchAMD64 struct{}

func (a *ArchAMD64) DisassembleMode() int {
	return 64
}

func (a *ArchAMD64) NearJumpSize() uint {
	return uint(1 + unsafe.Sizeof(uint32(0)))
}

// jmp qword ptr [rip+0] followed by the absolute target; no register is clobbered
func (a *ArchAMD64) FarJumpSize() uint {
	return 14
}

func (a *ArchAMD64) NewNearJumpAsm(from, to uintptr) []byte {
	asm := make([]byte, a.NearJumpSize())
	asm[0] = _ASM_OP_NEAR_JMP
	binary.LittleEndian.PutUint32(asm[1:], uint32(int32(to)-int32(from)-int32(a.NearJumpSize())))
	return asm
}

func (a *ArchAMD64) NewFarJumpAsm(from, to uintptr) []byte {
	asm := make([]byte, a.FarJumpSize())
	binary.LittleEndian.PutUint16(asm, _ASM_OP_FAR_JMP)
	binary.LittleEndian.PutUint64(asm[6:], uint64(to))
	return asm
}

var (
	amd64SaveRegs = []byte{
		0x9C,       // pushfq
		0x50,       // push rax
		0x51,       // push rcx
		0x52,       // push rdx
		0x41, 0x50, // push r8
		0x41, 0x51, // push r9
		0x41, 0x52, // push r10
		0x41, 0x53, // push r11
		0x48, 0x83, 0xEC, 0x28, // sub rsp, 0x28
	}
	amd64RestoreRegs = []byte{
		0x48, 0x83, 0xC4, 0x28, // add rsp, 0x28
		0x41, 0x5B, // pop r11
		0x41, 0x5A, // pop r10
		0x41, 0x59, // pop r9
		0x41, 0x58, // pop r8
		0x5A, // pop rdx
		0x59, // pop rcx
		0x58, // pop rax
		0x9D, // popfq
	}
)

// Saves the volatile registers and calls callback with RCX untouched so the
// Windows x64 convention hands it the hooked call's first argument. The
// shadow space keeps rsp 16 byte aligned at the call.
func (a *ArchAMD64) NewDetourStub(at, callback, resume uintptr) []byte {
	asm := append([]byte{}, amd64SaveRegs...)
	asm = binary.LittleEndian.AppendUint16(asm, _ASM_OP_MOVABS_RA)
	asm = binary.LittleEndian.AppendUint64(asm, uint64(callback))
	asm = binary.LittleEndian.AppendUint16(asm, _ASM_OP_CALL_EAX)
	asm = append(asm, amd64RestoreRegs...)
	return append(asm, newJumpAsm(a, at+uintptr(len(asm)), resume)...)
}
