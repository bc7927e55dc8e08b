package hook

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// Disassemble renders code located at baseAddr in Intel syntax, one
// instruction per line. It is used for debug dumps of hooked functions.
func Disassemble(code []byte, mode int, baseAddr uintptr) []string {
	insts, _ := disassemble(code, mode)
	lines := make([]string, 0, len(insts))
	addr := baseAddr
	for _, inst := range insts {
		lines = append(lines, fmt.Sprintf("[0x%X] %s", addr, x86asm.IntelSyntax(inst, uint64(addr), nil)))
		addr += uintptr(inst.Len)
	}
	return lines
}
