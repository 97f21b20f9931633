package keybind

import (
	"strconv"
	"strings"
)

var modifierByName = map[string]Mod{
	"cmd":     ModCmd,
	"command": ModCmd,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
}

// Parse converts a shortcut descriptor into a Binding. ok is false when the
// descriptor yields no binding: an empty string, or modifiers without a key.
//
// Tokens are split on "+", trimmed, and matched case-insensitively. Tokens
// that are neither a known modifier nor a recognizable key are dropped; when
// several key tokens appear, the last one wins. Both behaviours match the
// shipped parser and are pinned by tests.
func Parse(descriptor string) (Binding, bool) {
	var b Binding
	for _, token := range strings.Split(descriptor, "+") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if mod, ok := modifierByName[token]; ok {
			b.Mods |= mod
			continue
		}
		if key, ok := parseKey(token); ok {
			b.Key = key
		}
	}
	if b.Key == KeyNone {
		return Binding{}, false
	}
	return b, true
}

// parseKey recognizes a single lowercase alphanumeric character or a
// function key f1..f12.
func parseKey(token string) (Key, bool) {
	if len(token) == 1 {
		c := token[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return Key(c), true
		}
		return KeyNone, false
	}
	if token[0] == 'f' {
		n, err := strconv.Atoi(token[1:])
		if err == nil && n >= 1 && n <= 12 {
			return KeyF1 + Key(n-1), true
		}
	}
	return KeyNone, false
}
