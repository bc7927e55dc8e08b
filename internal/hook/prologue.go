package hook

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/arch/x86/x86asm"
)

func disassemble(src []byte, mode int) ([]x86asm.Inst, error) {
	r := make([]x86asm.Inst, 0, len(src)/4)
	for len(src) > 0 {
		inst, err := x86asm.Decode(src, mode)
		if err != nil {
			// a truncated tail is fine as long as the patch area decoded
			if len(r) > 0 {
				return r, nil
			}
			return nil, errors.Wrap(err, "decode function head")
		}
		r = append(r, inst)
		src = src[inst.Len:]
	}
	return r, nil
}

// getAsmPatchSize returns how many whole instructions must be moved to the
// trampoline to make room for a jump of jumpSize bytes.
func getAsmPatchSize(insts []x86asm.Inst, jumpSize uint) (int, error) {
	res := 0
	for i := 0; res < int(jumpSize) && i < len(insts); i++ {
		if isBranchInst(insts[i]) || isRIPRelative(insts[i]) {
			return -1, errors.Wrapf(ErrBranchInPrologue, "%s at +%d", insts[i].Op, res)
		}
		res += insts[i].Len
	}
	if res < int(jumpSize) {
		return -1, errors.Wrapf(ErrPatchTooSmall, "%d < %d bytes", res, jumpSize)
	}
	return res, nil
}

func isBranchInst(inst x86asm.Inst) bool {
	op := inst.Op.String()
	return strings.HasPrefix(op, "J") ||
		strings.HasPrefix(op, "CALL") ||
		strings.HasPrefix(op, "LOOP") ||
		strings.HasPrefix(op, "RET")
}

// relocated rip-relative operands would address the wrong memory
func isRIPRelative(inst x86asm.Inst) bool {
	for _, arg := range inst.Args {
		if mem, ok := arg.(x86asm.Mem); ok && mem.Base == x86asm.RIP {
			return true
		}
	}
	return false
}

// PatchSize decodes a function head and returns the number of bytes an
// inline hook with a jump of jumpSize bytes has to relocate.
func PatchSize(head []byte, mode int, jumpSize uint) (int, error) {
	insts, err := disassemble(head, mode)
	if err != nil {
		return -1, err
	}
	return getAsmPatchSize(insts, jumpSize)
}
