//go:build windows

package hotkeys

import (
	"golang.design/x/hotkey"

	"clipreg/internal/keybind"
)

// Cmd maps to the Windows key.
var platformMods = map[keybind.Mod]hotkey.Modifier{
	keybind.ModCmd:   hotkey.ModWin,
	keybind.ModShift: hotkey.ModShift,
	keybind.ModAlt:   hotkey.ModAlt,
	keybind.ModCtrl:  hotkey.ModCtrl,
}
