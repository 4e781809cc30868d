//go:build darwin

package main

import (
	"golang.design/x/hotkey"

	"llmoverlay/shortcut"
)

// hotkeyModifiers maps binding modifiers onto Carbon hotkey modifiers
func hotkeyModifiers(m shortcut.Modifier) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if m.Has(shortcut.ModControl) {
		mods = append(mods, hotkey.ModCtrl)
	}
	if m.Has(shortcut.ModOption) {
		mods = append(mods, hotkey.ModOption)
	}
	if m.Has(shortcut.ModShift) {
		mods = append(mods, hotkey.ModShift)
	}
	if m.Has(shortcut.ModCommand) {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods
}
