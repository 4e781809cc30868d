//go:build darwin

package shortcut

// macOS virtual key codes (kVK_*).
const (
	KeyA      KeyCode = 0x00
	KeyS      KeyCode = 0x01
	KeyK      KeyCode = 0x28
	KeyReturn KeyCode = 0x24
	KeyTab    KeyCode = 0x30
	KeySpace  KeyCode = 0x31
	KeyEscape KeyCode = 0x35
	KeyF1     KeyCode = 0x7A
)

var keyNames = map[KeyCode]string{
	0: "A", 1: "S", 2: "D", 3: "F", 4: "H", 5: "G", 6: "Z", 7: "X", 8: "C", 9: "V",
	11: "B", 12: "Q", 13: "W", 14: "E", 15: "R", 16: "Y", 17: "T",
	18: "1", 19: "2", 20: "3", 21: "4", 22: "6", 23: "5", 24: "=", 25: "9", 26: "7",
	27: "-", 28: "8", 29: "0", 30: "]", 31: "O", 32: "U", 33: "[", 34: "I", 35: "P",
	36: "Return", 37: "L", 38: "J", 39: "'", 40: "K", 41: ";", 42: "\\", 43: ",",
	44: "/", 45: "N", 46: "M", 47: ".", 48: "Tab", 49: "Space", 50: "`", 51: "Delete",
	53: "Escape",
	122: "F1", 120: "F2", 99: "F3", 118: "F4", 96: "F5", 97: "F6", 98: "F7",
	100: "F8", 101: "F9", 109: "F10", 103: "F11", 111: "F12",
	123: "Left Arrow", 124: "Right Arrow", 125: "Down Arrow", 126: "Up Arrow",
	115: "Home", 119: "End", 116: "Page Up", 121: "Page Down", 71: "Clear",
}

func normalizeCode(code KeyCode) KeyCode {
	return code
}
