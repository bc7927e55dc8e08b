package hook

import (
	"encoding/binary"
	"unsafe"
)

type Arch386 struct{}

func (a *Arch386) DisassembleMode() int {
	return 32
}

func (a *Arch386) NearJumpSize() uint {
	return uint(1 + unsafe.Sizeof(uint32(0)))
}

func (a *Arch386) FarJumpSize() uint {
	return uint(2 + unsafe.Sizeof(uint32(0))*2)
}

func (a *Arch386) NewNearJumpAsm(from, to uintptr) []byte {
	asm := make([]byte, a.NearJumpSize())
	asm[0] = _ASM_OP_NEAR_JMP
	binary.LittleEndian.PutUint32(asm[1:], uint32(int32(to)-int32(from)-int32(a.NearJumpSize())))
	return asm
}

func (a *Arch386) NewFarJumpAsm(from, to uintptr) []byte {
	asm := make([]byte, a.FarJumpSize())
	binary.LittleEndian.PutUint16(asm, _ASM_OP_FAR_JMP)
	binary.LittleEndian.PutUint32(asm[2:], uint32(from+6))
	binary.LittleEndian.PutUint32(asm[6:], uint32(to))
	return asm
}

// pushad; pushfd; push ecx; mov eax, callback; call eax; popfd; popad; jmp resume
//
// The callback is stdcall and pops its own argument.
func (a *Arch386) NewDetourStub(at, callback, resume uintptr) []byte {
	asm := []byte{_ASM_OP_PUSHAD, _ASM_OP_PUSHFD, _ASM_OP_PUSH_ECX, _ASM_OP_MOV_EAX, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(asm[4:], uint32(callback))
	asm = binary.LittleEndian.AppendUint16(asm, _ASM_OP_CALL_EAX)
	asm = append(asm, _ASM_OP_POPFD, _ASM_OP_POPAD)
	return append(asm, newJumpAsm(a, at+uintptr(len(asm)), resume)...)
}
