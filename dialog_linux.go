//go:build linux

package main

import (
	"os/exec"
	"strings"
)

// PromptForCombo asks the user to type a hotkey combo
// Linux implementation using zenity or kdialog
func PromptForCombo(title, message, current string) (string, bool) {
	// Try zenity first (GTK)
	if path, err := exec.LookPath("zenity"); err == nil {
		output, err := exec.Command(path, "--entry", "--title", title, "--text", message, "--entry-text", current).Output()
		if err != nil {
			// User cancelled or error
			return "", false
		}
		return strings.TrimSpace(string(output)), true
	}

	// Try kdialog (KDE)
	if path, err := exec.LookPath("kdialog"); err == nil {
		output, err := exec.Command(path, "--title", title, "--inputbox", message, current).Output()
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(string(output)), true
	}

	LogWarn("No dialog tool found (install zenity or kdialog)")
	return "", false
}

// ConfirmDialog shows a Yes/No question
func ConfirmDialog(title, message string) bool {
	if path, err := exec.LookPath("zenity"); err == nil {
		return exec.Command(path, "--question", "--title", title, "--text", message).Run() == nil
	}

	if path, err := exec.LookPath("kdialog"); err == nil {
		return exec.Command(path, "--title", title, "--yesno", message).Run() == nil
	}

	LogWarn("No dialog tool found (install zenity or kdialog)")
	return false
}
