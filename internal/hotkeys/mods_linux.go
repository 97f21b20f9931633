//go:build linux

package hotkeys

import (
	"golang.design/x/hotkey"

	"clipreg/internal/keybind"
)

// X11: Alt is Mod1, Super/Cmd is Mod4.
var platformMods = map[keybind.Mod]hotkey.Modifier{
	keybind.ModCmd:   hotkey.Mod4,
	keybind.ModShift: hotkey.ModShift,
	keybind.ModAlt:   hotkey.Mod1,
	keybind.ModCtrl:  hotkey.ModCtrl,
}
