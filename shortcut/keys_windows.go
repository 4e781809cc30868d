//go:build windows

package shortcut

import "strconv"

// Windows virtual-key codes (VK_*).
const (
	KeyA      KeyCode = 0x41
	KeyS      KeyCode = 0x53
	KeyK      KeyCode = 0x4B
	KeyReturn KeyCode = 0x0D
	KeyTab    KeyCode = 0x09
	KeySpace  KeyCode = 0x20
	KeyEscape KeyCode = 0x1B
	KeyF1     KeyCode = 0x70
)

var keyNames = func() map[KeyCode]string {
	m := map[KeyCode]string{
		0x08: "Backspace", 0x09: "Tab", 0x0D: "Return", 0x1B: "Escape", 0x20: "Space",
		0x21: "Page Up", 0x22: "Page Down", 0x23: "End", 0x24: "Home",
		0x25: "Left Arrow", 0x26: "Up Arrow", 0x27: "Right Arrow", 0x28: "Down Arrow",
		0x2D: "Insert", 0x2E: "Delete",
		0xBA: ";", 0xBB: "=", 0xBC: ",", 0xBD: "-", 0xBE: ".", 0xBF: "/", 0xC0: "`",
		0xDB: "[", 0xDC: "\\", 0xDD: "]", 0xDE: "'",
	}
	for c := KeyCode('A'); c <= 'Z'; c++ {
		m[c] = string(rune(c))
	}
	for c := KeyCode('0'); c <= '9'; c++ {
		m[c] = string(rune(c))
	}
	for i := KeyCode(0); i < 12; i++ {
		m[0x70+i] = "F" + strconv.Itoa(int(i)+1)
	}
	return m
}()

func normalizeCode(code KeyCode) KeyCode {
	return code
}
