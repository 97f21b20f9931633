package hotkeys

import (
	"fmt"
	"log/slog"

	"clipreg/internal/keybind"
)

// Registry maps live key bindings to register names.
//
// It is not safe for concurrent use: the coordinator serializes every call
// (user operations and fired-event resolution alike) onto its own loop, so
// the registry itself carries no locking.
type Registry struct {
	facility Facility
	entries  map[keybind.Binding]*entry
	byHandle map[Handle]keybind.Binding
}

type entry struct {
	name   string
	handle Handle
}

// NewRegistry returns an empty registry on top of facility.
func NewRegistry(facility Facility) *Registry {
	return &Registry{
		facility: facility,
		entries:  make(map[keybind.Binding]*entry),
		byHandle: make(map[Handle]keybind.Binding),
	}
}

// Bind points binding at the named register, installing the OS hotkey if the
// binding is new. A binding already owned by another register is taken over
// silently (last writer wins); re-binding the same pair is a no-op.
func (r *Registry) Bind(binding keybind.Binding, name string) error {
	if e, ok := r.entries[binding]; ok {
		if e.name == name {
			return nil
		}
		slog.Info("hotkey rebound", "binding", binding.String(), "from", e.name, "to", name)
		e.name = name
		return nil
	}

	h, err := r.facility.Install(binding)
	if err != nil {
		return fmt.Errorf("bind %s: %w", binding, err)
	}
	r.entries[binding] = &entry{name: name, handle: h}
	r.byHandle[h] = binding
	slog.Info("hotkey bound", "binding", binding.String(), "register", name)
	return nil
}

// Unbind removes the OS hotkey for binding. Unknown bindings are a no-op.
func (r *Registry) Unbind(binding keybind.Binding) {
	e, ok := r.entries[binding]
	if !ok {
		return
	}
	delete(r.entries, binding)
	delete(r.byHandle, e.handle)
	r.facility.Uninstall(e.handle)
	slog.Info("hotkey unbound", "binding", binding.String(), "register", e.name)
}

// Resolve maps a fired handle to its register name.
func (r *Registry) Resolve(handle Handle) (string, bool) {
	binding, ok := r.byHandle[handle]
	if !ok {
		return "", false
	}
	return r.entries[binding].name, true
}

// ResolveBinding returns the register name a binding currently points at.
func (r *Registry) ResolveBinding(binding keybind.Binding) (string, bool) {
	e, ok := r.entries[binding]
	if !ok {
		return "", false
	}
	return e.name, true
}

// UnbindAll removes every live binding, e.g. before a rebuild or shutdown.
func (r *Registry) UnbindAll() {
	for binding := range r.entries {
		r.Unbind(binding)
	}
}

// Len returns the number of live bindings.
func (r *Registry) Len() int { return len(r.entries) }
