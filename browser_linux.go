//go:build linux
// +build linux

package main

import (
	"os"
	"os/exec"
	"syscall"
)

// privacySettingsURL is empty: X11 needs no input-monitoring grant
const privacySettingsURL = ""

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) error {
	return exec.Command("xdg-open", url).Start()
}

func browserCandidates() []string {
	return []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
		"microsoft-edge",
		"brave-browser",
		"vivaldi",
	}
}

func stopProcess(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
