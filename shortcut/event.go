package shortcut

// Kind is the low-level hook event type. Values follow libuiohook, which
// is what the hook backend delivers.
type Kind uint8

const (
	KindKeyTyped    Kind = 3
	KindKeyPressed  Kind = 4
	KindKeyReleased Kind = 5
)

// RawEvent is one system-wide keyboard event as the platform reports it.
type RawEvent struct {
	Kind Kind
	// Mask holds the modifier state bits (libuiohook MASK_*).
	Mask uint16
	// Keycode is the platform independent virtual code (libuiohook VC_*).
	Keycode uint16
	// Rawcode is the platform key code that bindings are stored in.
	Rawcode uint16
}

// libuiohook modifier mask bits.
const (
	maskShiftL uint16 = 1 << 0
	maskCtrlL  uint16 = 1 << 1
	maskMetaL  uint16 = 1 << 2
	maskAltL   uint16 = 1 << 3
	maskShiftR uint16 = 1 << 4
	maskCtrlR  uint16 = 1 << 5
	maskMetaR  uint16 = 1 << 6
	maskAltR   uint16 = 1 << 7
)

// libuiohook virtual codes of the modifier keys themselves.
var modifierKeys = map[uint16]Modifier{
	0x002A: ModShift,
	0x0036: ModShift,
	0x001D: ModControl,
	0x0E1D: ModControl,
	0x0038: ModOption,
	0x0E38: ModOption,
	0x0E5B: ModCommand,
	0x0E5C: ModCommand,
}

// ModifiersFromMask converts hook mask bits to a Modifier set. Left and
// right variants collapse onto the same flag.
func ModifiersFromMask(mask uint16) Modifier {
	var m Modifier
	if mask&(maskShiftL|maskShiftR) != 0 {
		m |= ModShift
	}
	if mask&(maskCtrlL|maskCtrlR) != 0 {
		m |= ModControl
	}
	if mask&(maskAltL|maskAltR) != 0 {
		m |= ModOption
	}
	if mask&(maskMetaL|maskMetaR) != 0 {
		m |= ModCommand
	}
	return m
}

// MaskFromModifiers is the inverse of ModifiersFromMask using the left
// variants. Sources that only know the binding use it to synthesize events.
func MaskFromModifiers(m Modifier) uint16 {
	var mask uint16
	if m&ModShift != 0 {
		mask |= maskShiftL
	}
	if m&ModControl != 0 {
		mask |= maskCtrlL
	}
	if m&ModOption != 0 {
		mask |= maskAltL
	}
	if m&ModCommand != 0 {
		mask |= maskMetaL
	}
	return mask
}

// KeyEvent is a decoded key-down.
type KeyEvent struct {
	Code KeyCode
	// Modifiers is the set held while the key went down.
	Modifiers Modifier
	// Key is non-zero when the pressed key is itself a modifier.
	Key Modifier
	// Repeat marks an auto-repeat of a key that is still held.
	Repeat bool
}

// Chord returns the binding this key-down would produce.
func (e KeyEvent) Chord() KeyBinding {
	return KeyBinding{Modifiers: e.Modifiers & ModifierMask, Code: e.Code}
}

// Decoder turns raw events into key-downs and tracks held keys to detect
// auto-repeat. Held keys are tracked by virtual code, because the raw code
// of a key can change between its press and release (an X11 keysym
// follows Shift). It is not safe for concurrent use.
type Decoder struct {
	held map[uint32]struct{}
}

// heldKey identifies the physical key of raw. Events without a virtual
// code, such as the register backend's, fall back to the raw code.
func heldKey(raw RawEvent) uint32 {
	if raw.Keycode != 0 {
		return uint32(raw.Keycode)
	}
	return 1<<16 | uint32(normalizeCode(KeyCode(raw.Rawcode)))
}

// Decode returns the key-down for a pressed event. Released events update
// the held set and, like typed events, return ok == false.
func (d *Decoder) Decode(raw RawEvent) (KeyEvent, bool) {
	if d.held == nil {
		d.held = make(map[uint32]struct{})
	}
	code := normalizeCode(KeyCode(raw.Rawcode))
	key := heldKey(raw)

	switch raw.Kind {
	case KindKeyReleased:
		delete(d.held, key)
		return KeyEvent{}, false
	case KindKeyPressed:
	default:
		return KeyEvent{}, false
	}

	_, repeat := d.held[key]
	d.held[key] = struct{}{}

	return KeyEvent{
		Code:      code,
		Modifiers: ModifiersFromMask(raw.Mask),
		Key:       modifierKeys[raw.Keycode],
		Repeat:    repeat,
	}, true
}

// Reset forgets all held keys.
func (d *Decoder) Reset() {
	d.held = nil
}
