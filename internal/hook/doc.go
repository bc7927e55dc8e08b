// Package hook patches native code of the current process: vtable slots of
// COM objects through a shared Registry, and function heads through inline
// detours built from the x86 encoders in this package.
//
// Only the encoders, the registry and the prologue analysis build on every
// platform; the memory and inline hook implementations are windows only.
package hook
