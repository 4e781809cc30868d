//go:build windows

package main

import (
	"golang.design/x/hotkey"

	"llmoverlay/shortcut"
)

// hotkeyModifiers maps binding modifiers onto RegisterHotKey modifiers
// (Command is the Windows key)
func hotkeyModifiers(m shortcut.Modifier) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if m.Has(shortcut.ModControl) {
		mods = append(mods, hotkey.ModCtrl)
	}
	if m.Has(shortcut.ModOption) {
		mods = append(mods, hotkey.ModAlt)
	}
	if m.Has(shortcut.ModShift) {
		mods = append(mods, hotkey.ModShift)
	}
	if m.Has(shortcut.ModCommand) {
		mods = append(mods, hotkey.ModWin)
	}
	return mods
}
