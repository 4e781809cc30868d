//go:build linux

package main

import (
	"golang.design/x/hotkey"

	"llmoverlay/shortcut"
)

// hotkeyModifiers maps binding modifiers onto X11 modifier masks
// (Mod1 is typically Alt, Mod4 is Super)
func hotkeyModifiers(m shortcut.Modifier) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if m.Has(shortcut.ModControl) {
		mods = append(mods, hotkey.ModCtrl)
	}
	if m.Has(shortcut.ModOption) {
		mods = append(mods, hotkey.Mod1)
	}
	if m.Has(shortcut.ModShift) {
		mods = append(mods, hotkey.ModShift)
	}
	if m.Has(shortcut.ModCommand) {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
