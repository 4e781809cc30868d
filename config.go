package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LogConfig represents logging configuration
type LogConfig struct {
	MaxSizeMB  int  `json:"max_size_mb,omitempty"`  // Max log file size in MB before rotation (default: 10)
	MaxBackups int  `json:"max_backups,omitempty"`  // Max number of old log files to keep (default: 7)
	MaxAgeDays int  `json:"max_age_days,omitempty"` // Max days to retain old log files (default: 7)
	Compress   bool `json:"compress,omitempty"`     // Compress rotated log files (default: true)
	ToStdout   bool `json:"to_stdout,omitempty"`    // Also write logs to stdout (default: true)
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() LogConfig {
	return LogConfig{
		MaxSizeMB:  10,
		MaxBackups: 7,
		MaxAgeDays: 7,
		Compress:   true,
		ToStdout:   true,
	}
}

// Event source backends
const (
	BackendHook     = "hook"     // raw key stream, supports rebinding
	BackendRegister = "register" // OS hotkey registration, fixed combo
)

// DefaultCaptureTimeout bounds a "Set Toggle Hotkey" session.
const DefaultCaptureTimeout = 10 * time.Second

// Config represents the application configuration
type Config struct {
	Providers       []ProviderEntry `json:"providers,omitempty"`
	CurrentProvider string          `json:"current_provider,omitempty"`
	Backend         string          `json:"backend,omitempty"`
	Browser         string          `json:"browser,omitempty"` // path of a Chromium-family browser
	Window          *WindowFrame    `json:"window,omitempty"`

	// CaptureTimeoutSec of 0 disables the capture timeout. Absent means 10.
	CaptureTimeoutSec *int `json:"capture_timeout_sec,omitempty"`

	// Hotkey seeds the binding (e.g. "Cmd+Shift+Space") while no binding
	// file exists.
	Hotkey  string        `json:"hotkey,omitempty"`
	Scripts ScriptsConfig `json:"scripts,omitempty"`
	Logging *LogConfig    `json:"logging,omitempty"`
}

// ProviderEntry is one selectable web page
type ProviderEntry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Script string `json:"script,omitempty"` // Optional Lua script run when the provider is selected
}

// WindowFrame is the viewer window's initial position and size
type WindowFrame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ScriptsConfig names Lua hook scripts in the scripts folder
type ScriptsConfig struct {
	OnShow          string `json:"on_show,omitempty"`
	OnHide          string `json:"on_hide,omitempty"`
	OnHotkeyChanged string `json:"on_hotkey_changed,omitempty"`
}

// DefaultWindowFrame matches the classic 800x600 overlay.
func DefaultWindowFrame() WindowFrame {
	return WindowFrame{X: 200, Y: 200, Width: 800, Height: 600}
}

// GetLogConfigWithDefaults returns log config, using defaults if logging section is absent
func (c *Config) GetLogConfigWithDefaults() LogConfig {
	if c == nil || c.Logging == nil {
		return DefaultLogConfig()
	}

	cfg := DefaultLogConfig()

	// Override with user values if set
	if c.Logging.MaxSizeMB > 0 {
		cfg.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		cfg.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		cfg.MaxAgeDays = c.Logging.MaxAgeDays
	}
	// For booleans, only override if the logging section exists
	// This allows users to explicitly set false
	cfg.Compress = c.Logging.Compress
	cfg.ToStdout = c.Logging.ToStdout

	return cfg
}

// GetBackend returns the event source backend, defaulting to the hook
func (c *Config) GetBackend() string {
	if c != nil && c.Backend == BackendRegister {
		return BackendRegister
	}
	return BackendHook
}

// GetCaptureTimeout returns the capture timeout; zero disables it
func (c *Config) GetCaptureTimeout() time.Duration {
	if c == nil || c.CaptureTimeoutSec == nil {
		return DefaultCaptureTimeout
	}
	if *c.CaptureTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(*c.CaptureTimeoutSec) * time.Second
}

// GetWindow returns the viewer frame with defaults for missing sizes
func (c *Config) GetWindow() WindowFrame {
	def := DefaultWindowFrame()
	if c == nil || c.Window == nil {
		return def
	}
	w := *c.Window
	if w.Width <= 0 || w.Height <= 0 {
		w.Width, w.Height = def.Width, def.Height
	}
	return w
}

// Clone returns a deep copy. The published config is never mutated; changes
// are made on a clone that then replaces it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Providers = append([]ProviderEntry(nil), c.Providers...)
	if c.Window != nil {
		w := *c.Window
		out.Window = &w
	}
	if c.CaptureTimeoutSec != nil {
		v := *c.CaptureTimeoutSec
		out.CaptureTimeoutSec = &v
	}
	if c.Logging != nil {
		l := *c.Logging
		out.Logging = &l
	}
	return &out
}

// GetProviders returns the configured providers or the built-in list
func (c *Config) GetProviders() []ProviderEntry {
	if c == nil || len(c.Providers) == 0 {
		return DefaultProviders()
	}
	return c.Providers
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ScriptsDir returns the Lua scripts directory path
func ScriptsDir() string {
	return filepath.Join(ConfigDir(), "scripts")
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), AppName+".json")
}

// BindingPath is the persisted toggle hotkey
func BindingPath() string {
	return filepath.Join(ConfigDir(), "custom_toggle.json")
}

// ProfileDir is the browser profile of the viewer window
func ProfileDir() string {
	return filepath.Join(ConfigDir(), "profile")
}

// ScriptPath returns the full path for a script filename
func ScriptPath(scriptName string) string {
	return filepath.Join(ScriptsDir(), scriptName)
}

// LoadConfig loads configuration from the specified path
// If path is empty, uses the default path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveConfig saves configuration to the specified path
// If path is empty, uses the default path
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig is written on first start
func DefaultConfig() *Config {
	w := DefaultWindowFrame()
	timeout := int(DefaultCaptureTimeout / time.Second)
	return &Config{
		Providers:         DefaultProviders(),
		CurrentProvider:   DefaultProviderName,
		Backend:           BackendHook,
		Window:            &w,
		CaptureTimeoutSec: &timeout,
	}
}

// LoadOrCreateConfig loads the config at path, writing the defaults first
// if the file does not exist yet
func LoadOrCreateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	cfg = DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		return cfg, err
	}
	return cfg, nil
}
