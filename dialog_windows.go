//go:build windows

package main

import "golang.org/x/sys/windows"

// PromptForCombo is not available on Windows; the hook backend captures
// the combo from the keyboard instead.
func PromptForCombo(title, message, current string) (string, bool) {
	LogWarn("Hotkey prompt not available on Windows, use backend \"hook\" to rebind")
	return "", false
}

// ConfirmDialog shows a Yes/No message box
func ConfirmDialog(title, message string) bool {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return false
	}
	m, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return false
	}
	ret, err := windows.MessageBox(0, m, t, windows.MB_YESNO|windows.MB_ICONWARNING|windows.MB_SETFOREGROUND)
	if err != nil {
		LogWarn("MessageBox failed: %v", err)
		return false
	}
	return ret == idYes
}

const idYes = 6
