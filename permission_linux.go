//go:build linux

package main

import (
	"os"

	"llmoverlay/shortcut"
)

// queryHookPermission reports whether the global key hook can attach. It
// needs an X11 display; pure Wayland sessions do not expose global input.
func queryHookPermission() shortcut.Permission {
	if os.Getenv("DISPLAY") == "" {
		return shortcut.PermissionDenied
	}
	return shortcut.PermissionGranted
}

const permissionHelp = "The global hotkey needs an X11 session (DISPLAY is not set). Log in with X11 or XWayland, or set \"backend\": \"register\"."
