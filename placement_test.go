package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, profile, data string) {
	t.Helper()
	path := prefsPath(profile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadPlacement(t *testing.T) {
	tests := []struct {
		name  string
		prefs string
		want  WindowFrame
		ok    bool
	}{
		{
			name:  "host match",
			prefs: `{"browser":{"app_window_placement":{"_crx_grok.com_/chat":{"left":0,"top":0,"right":100,"bottom":100},"_crx_claude.ai_/chats":{"left":50,"top":60,"right":950,"bottom":760}}}}`,
			want:  WindowFrame{X: 50, Y: 60, Width: 900, Height: 700},
			ok:    true,
		},
		{
			name:  "lone entry",
			prefs: `{"browser":{"app_window_placement":{"other":{"left":10,"top":20,"right":810,"bottom":620}}}}`,
			want:  WindowFrame{X: 10, Y: 20, Width: 800, Height: 600},
			ok:    true,
		},
		{
			name:  "ambiguous",
			prefs: `{"browser":{"app_window_placement":{"a":{"left":0,"top":0,"right":10,"bottom":10},"b":{"left":0,"top":0,"right":20,"bottom":20}}}}`,
		},
		{
			name:  "maximized",
			prefs: `{"browser":{"app_window_placement":{"claude.ai":{"left":0,"top":0,"right":10,"bottom":10,"maximized":true}}}}`,
		},
		{
			name:  "empty bounds",
			prefs: `{"browser":{"app_window_placement":{"claude.ai":{}}}}`,
		},
		{name: "no placement", prefs: `{"browser":{}}`},
		{name: "corrupt", prefs: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := t.TempDir()
			writePrefs(t, profile, tt.prefs)
			got, ok := readPlacement(profile, "https://claude.ai/chats")
			if ok != tt.ok || got != tt.want {
				t.Errorf("readPlacement() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestReadPlacementMissingProfile(t *testing.T) {
	if _, ok := readPlacement(filepath.Join(t.TempDir(), "none"), "https://claude.ai"); ok {
		t.Fatal("placement read from a missing profile")
	}
}
