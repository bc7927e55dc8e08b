package hook

import "github.com/pkg/errors"

var (
	ErrNilObject        = errors.New("hook: nil object or vtable")
	ErrAlreadyHooked    = errors.New("hook: slot already intercepted by a different replacement")
	ErrNotWritable      = errors.New("hook: memory is not writable")
	ErrUnsupportedArch  = errors.New("hook: unsupported architecture")
	ErrPatchTooSmall    = errors.New("hook: unable to insert jump within the function head")
	ErrBranchInPrologue = errors.New("hook: branch or rip-relative instruction in the patch area")
)
