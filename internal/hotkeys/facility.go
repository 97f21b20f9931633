// Package hotkeys owns the live mapping of key bindings to register names
// and the OS global-hotkey boundary.
//
// The OS facility is abstracted behind the Facility interface so that the
// registry and its callers never touch foreign callback contexts directly:
// fired hotkeys surface as opaque Handles on a channel, and the coordinator
// resolves them on its own serialized loop.
package hotkeys

import "clipreg/internal/keybind"

// Handle identifies one live OS-level hotkey installation. It is an opaque
// token; the facility maps it back to its internal state via table lookup.
type Handle uint64

// Facility is the OS global-hotkey boundary.
type Facility interface {
	// Install registers binding with the OS and returns its handle.
	Install(binding keybind.Binding) (Handle, error)

	// Uninstall removes the OS-level registration for handle.
	// Unknown handles are ignored.
	Uninstall(handle Handle)

	// Events returns the channel on which fired hotkeys are delivered.
	// The channel is never closed.
	Events() <-chan Handle
}
