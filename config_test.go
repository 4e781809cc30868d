package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"llmoverlay/shortcut"
)

func intPtr(v int) *int { return &v }

func TestCaptureTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want time.Duration
	}{
		{"nil config", nil, DefaultCaptureTimeout},
		{"absent", &Config{}, DefaultCaptureTimeout},
		{"zero disables", &Config{CaptureTimeoutSec: intPtr(0)}, 0},
		{"negative disables", &Config{CaptureTimeoutSec: intPtr(-5)}, 0},
		{"custom", &Config{CaptureTimeoutSec: intPtr(30)}, 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetCaptureTimeout(); got != tt.want {
				t.Errorf("GetCaptureTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackendDefaultsToHook(t *testing.T) {
	for _, b := range []string{"", "hook", "bogus"} {
		if got := (&Config{Backend: b}).GetBackend(); got != BackendHook {
			t.Errorf("backend %q -> %q", b, got)
		}
	}
	if got := (&Config{Backend: "register"}).GetBackend(); got != BackendRegister {
		t.Errorf("register -> %q", got)
	}
}

func TestGetWindow(t *testing.T) {
	if got := (*Config)(nil).GetWindow(); got != DefaultWindowFrame() {
		t.Errorf("nil config window = %+v", got)
	}
	cfg := &Config{Window: &WindowFrame{X: 10, Y: 20}}
	got := cfg.GetWindow()
	if got.X != 10 || got.Y != 20 || got.Width != 800 || got.Height != 600 {
		t.Errorf("window = %+v, want position kept and default size", got)
	}
}

func TestLogConfigDefaults(t *testing.T) {
	cfg := &Config{Logging: &LogConfig{MaxSizeMB: 3}}
	got := cfg.GetLogConfigWithDefaults()
	if got.MaxSizeMB != 3 || got.MaxBackups != 7 || got.ToStdout {
		t.Errorf("log config = %+v", got)
	}
}

func TestLoadOrCreateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "llmoverlay.json")

	cfg, err := LoadOrCreateConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CurrentProvider != DefaultProviderName || len(cfg.GetProviders()) != 5 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	cfg.CurrentProvider = "Grok"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}
	again, err := LoadOrCreateConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.CurrentProvider != "Grok" || again.GetCaptureTimeout() != DefaultCaptureTimeout {
		t.Errorf("reloaded = %+v", again)
	}
}

func TestLoadOrCreateConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llmoverlay.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreateConfig(path); err == nil {
		t.Fatal("corrupt config accepted")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{" {
		t.Fatal("corrupt config overwritten")
	}
}

func TestLoadBindingSeedsFromConfig(t *testing.T) {
	dir := t.TempDir()
	store := shortcut.NewStore(filepath.Join(dir, "custom_toggle.json"))

	want, err := shortcut.ParseBinding("Ctrl+Shift+K")
	if err != nil {
		t.Fatal(err)
	}
	if got := loadBinding(&Config{Hotkey: "Ctrl+Shift+K"}, store); !got.Equal(want) {
		t.Errorf("seeded binding = %v, want %v", got, want)
	}
	if got := loadBinding(&Config{Hotkey: "Shift"}, store); !got.Equal(shortcut.DefaultBinding()) {
		t.Errorf("bad config hotkey = %v, want default", got)
	}

	saved := shortcut.KeyBinding{Modifiers: shortcut.ModOption, Code: shortcut.KeyS}
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}
	if got := loadBinding(&Config{Hotkey: "Ctrl+Shift+K"}, store); !got.Equal(saved) {
		t.Errorf("binding file ignored: %v", got)
	}
}

func TestConfigClone(t *testing.T) {
	orig := DefaultConfig()
	c := orig.Clone()
	c.Providers[0].Name = "changed"
	c.Window.X = 999
	*c.CaptureTimeoutSec = 1
	c.CurrentProvider = "Grok"

	if orig.Providers[0].Name == "changed" || orig.Window.X == 999 ||
		*orig.CaptureTimeoutSec == 1 || orig.CurrentProvider == "Grok" {
		t.Fatalf("clone shares state with the original: %+v", orig)
	}
	if (*Config)(nil).Clone() != nil {
		t.Fatal("nil clone")
	}
}
