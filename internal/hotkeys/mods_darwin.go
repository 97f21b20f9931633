//go:build darwin

package hotkeys

import (
	"golang.design/x/hotkey"

	"clipreg/internal/keybind"
)

var platformMods = map[keybind.Mod]hotkey.Modifier{
	keybind.ModCmd:   hotkey.ModCmd,
	keybind.ModShift: hotkey.ModShift,
	keybind.ModAlt:   hotkey.ModOption,
	keybind.ModCtrl:  hotkey.ModCtrl,
}
