package shortcut

import (
	"fmt"
	"strings"
)

var modifierAliases = map[string]Modifier{
	"SHIFT":   ModShift,
	"CTRL":    ModControl,
	"CONTROL": ModControl,
	"ALT":     ModOption,
	"OPT":     ModOption,
	"OPTION":  ModOption,
	"CMD":     ModCommand,
	"COMMAND": ModCommand,
	"META":    ModCommand,
	"SUPER":   ModCommand,
	"WIN":     ModCommand,
}

var keyAliases = map[string]KeyCode{
	"ESC":   KeyEscape,
	"ENTER": KeyReturn,
	"SPACE": KeySpace,
	"TAB":   KeyTab,
}

// codesByName is the inverse of keyNames, keyed by upper-case name.
var codesByName = func() map[string]KeyCode {
	m := make(map[string]KeyCode, len(keyNames)+len(keyAliases))
	for code, name := range keyNames {
		m[strings.ToUpper(name)] = code
	}
	for name, code := range keyAliases {
		if _, ok := m[name]; !ok {
			m[name] = code
		}
	}
	return m
}()

// ParseBinding parses combos such as "Cmd+Shift+K" or "ctrl + alt + space".
// The last part is the key, everything before it a modifier. A combo
// without a modifier is rejected with ErrInvalidBinding.
func ParseBinding(combo string) (KeyBinding, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return KeyBinding{}, fmt.Errorf("empty hotkey combo")
	}

	parts := strings.Split(combo, "+")
	keyPart := strings.TrimSpace(parts[len(parts)-1])

	var b KeyBinding
	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		mod, ok := modifierAliases[strings.ToUpper(part)]
		if !ok {
			return KeyBinding{}, fmt.Errorf("unknown modifier %q in %q (valid: Shift, Ctrl, Alt, Option, Cmd, Win)", part, combo)
		}
		b.Modifiers |= mod
	}

	code, ok := codesByName[strings.ToUpper(keyPart)]
	if !ok {
		if _, isMod := modifierAliases[strings.ToUpper(keyPart)]; isMod {
			return KeyBinding{}, fmt.Errorf("%w: %q has no primary key", ErrInvalidBinding, combo)
		}
		return KeyBinding{}, fmt.Errorf("unknown key %q in %q", keyPart, combo)
	}
	b.Code = code

	if err := b.Valid(); err != nil {
		return KeyBinding{}, err
	}
	return b, nil
}
