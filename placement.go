package main

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// windowPlacement is one entry of the browser's saved app window bounds
type windowPlacement struct {
	Left      int  `json:"left"`
	Top       int  `json:"top"`
	Right     int  `json:"right"`
	Bottom    int  `json:"bottom"`
	Maximized bool `json:"maximized"`
}

type browserPrefs struct {
	Browser struct {
		AppWindowPlacement map[string]windowPlacement `json:"app_window_placement"`
	} `json:"browser"`
}

// prefsPath is where Chromium keeps the default profile's preferences
func prefsPath(profile string) string {
	return filepath.Join(profile, "Default", "Preferences")
}

// readPlacement returns the bounds the browser saved for the app window of
// pageURL. Chromium names app windows after the page host, so an entry
// mentioning the host wins; a lone entry is used otherwise.
func readPlacement(profile, pageURL string) (WindowFrame, bool) {
	data, err := os.ReadFile(prefsPath(profile))
	if err != nil {
		return WindowFrame{}, false
	}
	var prefs browserPrefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		LogDebug("Unreadable browser preferences: %v", err)
		return WindowFrame{}, false
	}
	entries := prefs.Browser.AppWindowPlacement
	if len(entries) == 0 {
		return WindowFrame{}, false
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Hostname()
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var p windowPlacement
	found := false
	for _, name := range names {
		if host != "" && strings.Contains(name, host) {
			p, found = entries[name], true
			break
		}
	}
	if !found {
		if len(entries) != 1 {
			return WindowFrame{}, false
		}
		p = entries[names[0]]
	}

	f := WindowFrame{X: p.Left, Y: p.Top, Width: p.Right - p.Left, Height: p.Bottom - p.Top}
	if p.Maximized || f.Width <= 0 || f.Height <= 0 {
		return WindowFrame{}, false
	}
	return f, true
}
