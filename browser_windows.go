//go:build windows
// +build windows

package main

import (
	"os"
	"os/exec"
	"path/filepath"
)

// privacySettingsURL is empty: RegisterHotKey and low-level hooks need no grant
const privacySettingsURL = ""

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
}

func browserCandidates() []string {
	var out []string
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)", "LocalAppData"} {
		base := os.Getenv(env)
		if base == "" {
			continue
		}
		out = append(out,
			filepath.Join(base, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(base, "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(base, "BraveSoftware", "Brave-Browser", "Application", "brave.exe"),
		)
	}
	return append(out, "chrome.exe", "msedge.exe")
}

// stopProcess kills the window; Windows has no SIGTERM for GUI processes
func stopProcess(p *os.Process) error {
	return p.Kill()
}
