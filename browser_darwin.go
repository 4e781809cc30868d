//go:build darwin
// +build darwin

package main

import (
	"os"
	"os/exec"
	"syscall"
)

// privacySettingsURL opens the Accessibility pane of Privacy & Security
const privacySettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) error {
	return exec.Command("open", url).Start()
}

func browserCandidates() []string {
	return []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		"/Applications/Vivaldi.app/Contents/MacOS/Vivaldi",
	}
}

func stopProcess(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
