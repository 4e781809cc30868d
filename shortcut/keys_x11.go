//go:build !darwin && !windows

package shortcut

import "strconv"

// X11 keysyms. Letters use the lower-case keysym.
const (
	KeyA      KeyCode = 0x0061
	KeyS      KeyCode = 0x0073
	KeyK      KeyCode = 0x006b
	KeyReturn KeyCode = 0xff0d
	KeyTab    KeyCode = 0xff09
	KeySpace  KeyCode = 0x0020
	KeyEscape KeyCode = 0xff1b
	KeyF1     KeyCode = 0xffbe
)

var keyNames = func() map[KeyCode]string {
	m := map[KeyCode]string{
		0xff08: "Backspace", 0xff09: "Tab", 0xff0d: "Return", 0xff1b: "Escape", 0x0020: "Space",
		0xff55: "Page Up", 0xff56: "Page Down", 0xff57: "End", 0xff50: "Home",
		0xff51: "Left Arrow", 0xff52: "Up Arrow", 0xff53: "Right Arrow", 0xff54: "Down Arrow",
		0xff63: "Insert", 0xffff: "Delete",
		0x003b: ";", 0x003d: "=", 0x002c: ",", 0x002d: "-", 0x002e: ".", 0x002f: "/", 0x0060: "`",
		0x005b: "[", 0x005c: "\\", 0x005d: "]", 0x0027: "'",
	}
	for c := KeyCode('a'); c <= 'z'; c++ {
		m[c] = string(rune(c - 'a' + 'A'))
	}
	for c := KeyCode('0'); c <= '9'; c++ {
		m[c] = string(rune(c))
	}
	for i := KeyCode(0); i < 12; i++ {
		m[0xffbe+i] = "F" + strconv.Itoa(int(i)+1)
	}
	return m
}()

// normalizeCode folds upper-case letter keysyms, reported while Shift is
// held, onto the lower-case keysym.
func normalizeCode(code KeyCode) KeyCode {
	if code >= 'A' && code <= 'Z' {
		return code + ('a' - 'A')
	}
	return code
}
