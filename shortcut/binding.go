// Package shortcut implements the global toggle hotkey: decoding raw key
// events, matching them against the active binding, capturing a new binding
// interactively and persisting it.
package shortcut

import (
	"fmt"
	"strings"
)

// Modifier is a set of modifier flags. The bit values are the macOS
// CGEventFlags masks so persisted bindings stay readable by older builds.
type Modifier uint32

const (
	ModShift   Modifier = 1 << 17
	ModControl Modifier = 1 << 18
	ModOption  Modifier = 1 << 19
	ModCommand Modifier = 1 << 20
)

// ModifierMask covers every modifier a binding may contain.
const ModifierMask = ModShift | ModControl | ModOption | ModCommand

// modifierOrder is the display order.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModShift, "Shift"},
	{ModControl, "Control"},
	{ModOption, "Option"},
	{ModCommand, "Command"},
}

// Has reports whether every flag in m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// Names returns the modifier names in display order.
func (m Modifier) Names() []string {
	var names []string
	for _, o := range modifierOrder {
		if m&o.mod != 0 {
			names = append(names, o.name)
		}
	}
	return names
}

func (m Modifier) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, " + ")
}

// KeyCode is a platform key code: the virtual key code on macOS and
// Windows, the keysym on X11.
type KeyCode uint16

// KeyBinding is one modifier set plus one primary key. It is a value type;
// replace it whole, never field by field.
type KeyBinding struct {
	Modifiers Modifier
	Code      KeyCode
}

// DefaultBinding returns Command+Space.
func DefaultBinding() KeyBinding {
	return KeyBinding{Modifiers: ModCommand, Code: KeySpace}
}

// Equal compares modifiers as a set and the key code by value.
func (b KeyBinding) Equal(o KeyBinding) bool {
	return b.Modifiers&ModifierMask == o.Modifiers&ModifierMask && b.Code == o.Code
}

// Valid returns ErrInvalidBinding for bindings without a modifier or with
// unknown modifier bits. Modifier-less global hotkeys would hijack typing.
func (b KeyBinding) Valid() error {
	if b.Modifiers&^ModifierMask != 0 {
		return fmt.Errorf("%w: unknown modifier flags %#x", ErrInvalidBinding, uint32(b.Modifiers&^ModifierMask))
	}
	if b.Modifiers == 0 {
		return fmt.Errorf("%w: %s has no modifier", ErrInvalidBinding, KeyName(b.Code))
	}
	return nil
}

func (b KeyBinding) String() string {
	parts := append(b.Modifiers.Names(), KeyName(b.Code))
	return strings.Join(parts, " + ")
}

// KeyName returns the display name for a key code, or "Keycode N" when the
// platform table has no entry.
func KeyName(code KeyCode) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Keycode %d", code)
}
