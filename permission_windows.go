//go:build windows

package main

import "llmoverlay/shortcut"

func queryHookPermission() shortcut.Permission {
	return shortcut.PermissionGranted
}

const permissionHelp = "The global hotkey could not be activated."
