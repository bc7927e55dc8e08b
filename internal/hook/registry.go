package hook

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Slot names one method of one COM interface, e.g. {"IDirect3DDevice9", 42}.
type Slot struct {
	Tag   string
	Index int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s[%d]", s.Tag, s.Index)
}

// Interception is the record of one installed replacement. The original
// pointer may be refreshed when the slot is re-hooked on another vtable, so
// it is read atomically on every forwarded call.
type Interception struct {
	Slot        Slot
	Replacement uintptr

	original atomic.Uintptr
	invoke   Invoker
}

// Original returns the function the replacement forwards to.
func (i *Interception) Original() uintptr {
	return i.original.Load()
}

// Call forwards to the original function.
func (i *Interception) Call(args ...uintptr) uintptr {
	return i.invoke(i.Original(), args...)
}

type patch struct {
	owner    *Interception
	original uintptr
}

// Registry owns every vtable interception of the process. Independent
// hook layers share one registry; each layer is identified by the
// replacement it installs, so two layers can never silently overwrite each
// other's slots.
type Registry struct {
	mu      sync.Mutex
	mem     Memory
	invoke  Invoker
	log     *zap.SugaredLogger
	entries map[Slot]*Interception
	patched map[uintptr]patch
}

func NewRegistry(mem Memory, invoke Invoker, log *zap.SugaredLogger) *Registry {
	return &Registry{
		mem:     mem,
		invoke:  invoke,
		log:     log,
		entries: make(map[Slot]*Interception),
		patched: make(map[uintptr]patch),
	}
}

func (r *Registry) slotAddr(object uintptr, slot Slot) (uintptr, error) {
	if object == 0 {
		return 0, errors.Wrapf(ErrNilObject, "install %s", slot)
	}
	vtbl, err := r.mem.ReadPointer(object)
	if err != nil {
		return 0, errors.Wrapf(err, "read vtable of %s", slot)
	}
	if vtbl == 0 {
		return 0, errors.Wrapf(ErrNilObject, "vtable of %s", slot)
	}
	return vtbl + uintptr(slot.Index)*ptrSize, nil
}

// InstallHook replaces the method at slot in object's vtable and returns
// the previous function pointer.
func (r *Registry) InstallHook(object uintptr, slot Slot, replacement uintptr) (uintptr, error) {
	i, err := r.Intercept(object, slot, replacement)
	if err != nil {
		return 0, err
	}
	return i.Original(), nil
}

// Intercept is InstallHook returning the interception record, which the
// replacement uses to reach the original.
//
// Installing the same replacement again is a no-op while the vtable still
// points at it. When the slot no longer points at the replacement (a new
// vtable, or someone restored it) the current pointer becomes the new
// original, never our own replacement.
func (r *Registry) Intercept(object uintptr, slot Slot, replacement uintptr) (*Interception, error) {
	if replacement == 0 {
		return nil, errors.Wrapf(ErrNilObject, "replacement for %s", slot)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	addr, err := r.slotAddr(object, slot)
	if err != nil {
		return nil, err
	}
	current, err := r.mem.ReadPointer(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", slot)
	}

	entry, known := r.entries[slot]
	if known && entry.Replacement != replacement {
		return nil, errors.Wrapf(ErrAlreadyHooked, "%s", slot)
	}
	if p, ok := r.patched[addr]; ok && p.owner.Replacement != replacement && current == p.owner.Replacement {
		return nil, errors.Wrapf(ErrAlreadyHooked, "%s is held by %s", slot, p.owner.Slot)
	}

	if current == replacement {
		if !known {
			return nil, errors.Wrapf(ErrAlreadyHooked, "%s already points at the replacement", slot)
		}
		return entry, nil
	}

	// the record exists before the slot is live so a call racing the patch
	// can already forward
	if !known {
		entry = &Interception{Slot: slot, Replacement: replacement, invoke: r.invoke}
		r.entries[slot] = entry
	}
	previous := entry.original.Swap(current)
	if err := r.mem.WritePointer(addr, replacement); err != nil {
		if known {
			entry.original.Store(previous)
		} else {
			delete(r.entries, slot)
		}
		return nil, errors.Wrapf(err, "patch %s", slot)
	}
	r.patched[addr] = patch{owner: entry, original: current}
	if r.log != nil {
		r.log.Debugw("vtable slot patched", "slot", slot.String(),
			"address", fmt.Sprintf("0x%X", addr),
			"original", fmt.Sprintf("0x%X", current),
			"replacement", fmt.Sprintf("0x%X", replacement))
	}
	return entry, nil
}

// IsHooked reports whether object's vtable still points at the replacement
// registered for slot.
func (r *Registry) IsHooked(object uintptr, slot Slot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[slot]
	if !ok {
		return false
	}
	addr, err := r.slotAddr(object, slot)
	if err != nil {
		return false
	}
	current, err := r.mem.ReadPointer(addr)
	return err == nil && current == entry.Replacement
}

// Lookup returns the interception installed for slot.
func (r *Registry) Lookup(slot Slot) (*Interception, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.entries[slot]
	return i, ok
}

// Slots lists the installed interceptions in a stable order.
func (r *Registry) Slots() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots := make([]Slot, 0, len(r.entries))
	for s := range r.entries {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Tag != slots[j].Tag {
			return slots[i].Tag < slots[j].Tag
		}
		return slots[i].Index < slots[j].Index
	})
	return slots
}

// Close writes every original pointer back where it still holds our
// replacement. The interception records stay valid so that calls already
// inside a replacement can still forward.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for addr, p := range r.patched {
		current, err := r.mem.ReadPointer(addr)
		if err != nil || current != p.owner.Replacement {
			delete(r.patched, addr)
			continue
		}
		if err := r.mem.WritePointer(addr, p.original); err != nil {
			if first == nil {
				first = errors.Wrapf(err, "restore %s", p.owner.Slot)
			}
			continue
		}
		delete(r.patched, addr)
	}
	return first
}
