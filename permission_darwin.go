//go:build darwin

package main

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>

static int axTrusted(int prompt) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
    CFDictionaryRef opts = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
        &kCFCopyStringDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    Boolean trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted ? 1 : 0;
}
*/
import "C"

import "llmoverlay/shortcut"

// queryHookPermission checks the Accessibility grant the event tap needs.
// The first check is silent; an untrusted process then gets the system
// prompt. A grant made from the prompt only applies after a relaunch.
func queryHookPermission() shortcut.Permission {
	if C.axTrusted(0) == 1 {
		return shortcut.PermissionGranted
	}
	if C.axTrusted(1) == 1 {
		return shortcut.PermissionRestartRequired
	}
	return shortcut.PermissionDenied
}

const permissionHelp = "Grant Accessibility access to llmoverlay in System Settings > Privacy & Security, then restart the app."
