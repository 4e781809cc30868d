package shortcut

import "errors"

// Raw codes used for modifier keys in tests. They sit outside every
// platform's name table.
var modifierRaw = map[Modifier]uint16{
	ModShift:   0xfe01,
	ModControl: 0xfe02,
	ModOption:  0xfe03,
	ModCommand: 0xfe04,
}

var modifierVC = map[Modifier]uint16{
	ModShift:   0x002A,
	ModControl: 0x001D,
	ModOption:  0x0038,
	ModCommand: 0x0E5B,
}

func press(code KeyCode, mods Modifier) RawEvent {
	return RawEvent{Kind: KindKeyPressed, Mask: MaskFromModifiers(mods), Rawcode: uint16(code)}
}

func release(code KeyCode, mods Modifier) RawEvent {
	return RawEvent{Kind: KindKeyReleased, Mask: MaskFromModifiers(mods), Rawcode: uint16(code)}
}

// pressModifier is the key-down of modifier m while held (which includes m)
// is down.
func pressModifier(m, held Modifier) RawEvent {
	return RawEvent{
		Kind:    KindKeyPressed,
		Mask:    MaskFromModifiers(held | m),
		Keycode: modifierVC[m],
		Rawcode: modifierRaw[m],
	}
}

type fakeRegistrar struct {
	registered []KeyBinding
	unregs     int
	fail       error
}

func (f *fakeRegistrar) Register(b KeyBinding) error {
	if f.fail != nil {
		return f.fail
	}
	f.registered = append(f.registered, b)
	return nil
}

func (f *fakeRegistrar) Unregister() { f.unregs++ }

type memSaver struct {
	saved []KeyBinding
	err   error
}

func (m *memSaver) Save(b KeyBinding) error {
	if m.err != nil {
		return &PersistenceError{Path: "mem", Err: m.err}
	}
	m.saved = append(m.saved, b)
	return nil
}

var errDiskFull = errors.New("disk full")

// newInstalled returns a granted listener with b installed and a pointer
// to its toggle count.
func newInstalled(b KeyBinding) (*Listener, *int) {
	n := new(int)
	l := NewListener(ListenerConfig{
		Permission: PermissionGranted,
		Toggle:     func() { *n++ },
	})
	if err := l.Install(b); err != nil {
		panic(err)
	}
	return l, n
}
