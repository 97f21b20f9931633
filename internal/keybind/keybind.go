// Package keybind defines the canonical, platform-independent form of a
// keyboard shortcut and the parser that produces it from human-readable
// descriptors like "cmd+shift+1".
//
// A Binding is comparable and usable as a map key. Translation to OS-level
// modifier masks and key codes happens in internal/hotkeys, not here.
package keybind

import (
	"strconv"
	"strings"
)

// Mod is a bitmask of shortcut modifiers.
type Mod uint8

const (
	ModCmd Mod = 1 << iota
	ModShift
	ModAlt
	ModCtrl
)

// Key is a canonical key code: letters and digits are their lowercase ASCII
// value, function keys occupy a reserved range above it.
type Key uint8

const (
	KeyNone Key = 0

	// KeyF1..KeyF12 are contiguous; KeyF1+n is function key n+1.
	KeyF1  Key = 0xF1
	KeyF12 Key = KeyF1 + 11
)

// Binding is the parsed form of a shortcut descriptor.
type Binding struct {
	Mods Mod
	Key  Key
}

// IsZero reports whether b carries no key.
func (b Binding) IsZero() bool { return b.Key == KeyNone }

// String renders the canonical descriptor, e.g. "cmd+shift+1".
func (b Binding) String() string {
	if b.IsZero() {
		return ""
	}
	var parts []string
	if b.Mods&ModCmd != 0 {
		parts = append(parts, "cmd")
	}
	if b.Mods&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if b.Mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if b.Mods&ModShift != 0 {
		parts = append(parts, "shift")
	}
	parts = append(parts, b.keyName())
	return strings.Join(parts, "+")
}

func (b Binding) keyName() string {
	if b.Key >= KeyF1 && b.Key <= KeyF12 {
		return "f" + strconv.Itoa(int(b.Key-KeyF1)+1)
	}
	return string(rune(b.Key))
}
