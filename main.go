package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"llmoverlay/shortcut"
)

var (
	commit    string
	buildDate string
)

var (
	// Global state
	configPath      string
	appConfig       *Config
	stateMutex      sync.RWMutex
	configSaveMu    sync.Mutex
	overlay         *OverlayWindow
	providerChecker *ProviderChecker

	// Menu items
	mStatus       *systray.MenuItem
	mToggle       *systray.MenuItem
	mProviderMenu *systray.MenuItem
	mCheckStatus  *systray.MenuItem
	mSetHotkey    *systray.MenuItem
	mResetHotkey  *systray.MenuItem
	mCopyURL      *systray.MenuItem
	mDebug        *systray.MenuItem
	mReloadCfg    *systray.MenuItem
	mOpenConfig   *systray.MenuItem
	mAbout        *systray.MenuItem
	mQuit         *systray.MenuItem

	// Provider submenu items and the entries bound to them
	providerMenuItems []*systray.MenuItem
	providerEntries   []ProviderEntry
)

func main() {
	flag.StringVar(&configPath, "config", DefaultConfigPath(), "path to the configuration file")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	resetFlag := flag.Bool("reset-hotkey", false, "delete the saved toggle hotkey and exit")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s (%s, %s)\n", AppName, Version, getShortCommit(), buildDate)
		return
	}
	if *resetFlag {
		if err := shortcut.NewStore(BindingPath()).Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Toggle hotkey reset to %s\n", shortcut.DefaultBinding())
		return
	}

	// Ensure only one instance is running
	if err := EnsureSingleInstance(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, cfgErr := LoadOrCreateConfig(configPath)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	appConfig = cfg

	if err := InitLoggerWithConfig(cfg.GetLogConfigWithDefaults()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to initialize logger: %v\n", err)
	}
	if *debugFlag {
		SetDebugMode(true)
		SetLogLevel(true)
	}

	crashFile, err := os.OpenFile(CrashLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	LogStartup()
	if cfgErr != nil {
		LogError("Config %s unusable, using defaults: %v", configPath, cfgErr)
	} else {
		LogConfigLoaded(cfg)
	}

	InitCache()
	providerChecker = NewProviderChecker(GetCache())

	p := FindProvider(cfg.GetProviders(), cfg.CurrentProvider)
	overlay = NewOverlayWindow(cfg.Browser, p.URL, cfg.GetWindow())
	overlay.OnPlacement(func(f WindowFrame) {
		updateConfig(func(c *Config) { c.Window = &f })
	})

	if err := InitLuaEngine(trayHost{}); err != nil {
		LogWarn("Failed to initialize Lua engine: %v", err)
	}

	systray.Run(onReady, onExit)
}

// currentConfig returns the loaded config under the state lock. Callers
// must treat it as read-only.
func currentConfig() *Config {
	stateMutex.RLock()
	defer stateMutex.RUnlock()
	return appConfig
}

// updateConfig applies fn to a copy of the config, publishes the copy and
// saves it
func updateConfig(fn func(*Config)) *Config {
	configSaveMu.Lock()
	defer configSaveMu.Unlock()

	stateMutex.Lock()
	cfg := appConfig.Clone()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	fn(cfg)
	appConfig = cfg
	stateMutex.Unlock()

	if err := SaveConfig(cfg, configPath); err != nil {
		LogError("Failed to save config: %v", err)
	}
	return cfg
}

func onReady() {
	// Use SetIcon for colored icon (SetTemplateIcon would make it monochrome)
	systray.SetIcon(getIcon())
	systray.SetTitle("")
	systray.SetTooltip("LLM Overlay")

	// Status display as submenu (kept enabled for better contrast)
	mStatusMenu := systray.AddMenuItem("Status", "Current status")
	mStatus = mStatusMenu.AddSubMenuItem("Starting...", "")

	systray.AddSeparator()

	mToggle = systray.AddMenuItem("Toggle Overlay", "Show or hide the overlay window")

	mProviderMenu = systray.AddMenuItem("Provider", "Choose the page shown in the overlay")
	buildProviderMenu()

	systray.AddSeparator()

	mSetHotkey = systray.AddMenuItem("Set Toggle Hotkey...", "Press a new key combination for the overlay")
	mResetHotkey = systray.AddMenuItem("Reset Hotkey to Default", fmt.Sprintf("Use %s", shortcut.DefaultBinding()))
	mCopyURL = systray.AddMenuItem("Copy Provider URL", "Copy the current provider URL to the clipboard")

	systray.AddSeparator()

	// Settings
	mDebug = systray.AddMenuItemCheckbox("Debug Mode", "Enable debug output", debugMode)
	mReloadCfg = systray.AddMenuItem("Reload Config", "Reload configuration from file")
	mOpenConfig = systray.AddMenuItem("Open Config Folder", ConfigDir())

	systray.AddSeparator()

	// About submenu with version info (kept enabled for better contrast)
	mAbout = systray.AddMenuItem("About", "About "+AppName)
	_ = mAbout.AddSubMenuItem(fmt.Sprintf("Version: %s", Version), "")
	_ = mAbout.AddSubMenuItem(fmt.Sprintf("Commit: %s", getShortCommit()), "")
	_ = mAbout.AddSubMenuItem(fmt.Sprintf("Build: %s", buildDate), "")

	systray.AddSeparator()

	mQuit = systray.AddMenuItem("Quit", "Quit the application")

	go handleMenuClicks()

	p := currentProvider()
	mProviderMenu.SetTitle(fmt.Sprintf("Provider: %s", p.Name))
	if !overlay.HasAppWindow() {
		mStatus.SetTitle(fmt.Sprintf("No app-mode browser on %s", runtime.GOOS))
	}
	go checkProvider(p, false)

	InitHotkeys()
}

const maxMenuItems = 50 // Maximum providers in the submenu

func buildProviderMenu() {
	// Pre-allocate menu items pool
	providerMenuItems = make([]*systray.MenuItem, maxMenuItems)
	providerEntries = make([]ProviderEntry, maxMenuItems)

	for i := 0; i < maxMenuItems; i++ {
		item := mProviderMenu.AddSubMenuItemCheckbox("", "", false)
		item.Hide()
		providerMenuItems[i] = item
		go handleProviderClickByIndex(item, i)
	}

	mProviderMenu.AddSubMenuItem("", "")
	mCheckStatus = mProviderMenu.AddSubMenuItem("Check Provider Status", "Check whether the current provider responds")

	updateProviderMenu()
}

func updateProviderMenu() {
	cfg := currentConfig()
	providers := cfg.GetProviders()
	current := FindProvider(providers, cfg.CurrentProvider)

	stateMutex.Lock()
	for i := 0; i < maxMenuItems; i++ {
		providerMenuItems[i].Hide()
		providerEntries[i] = ProviderEntry{}
	}
	for i, entry := range providers {
		if i >= maxMenuItems {
			break
		}
		providerEntries[i] = entry
	}
	stateMutex.Unlock()

	for i, entry := range providers {
		if i >= maxMenuItems {
			break
		}
		item := providerMenuItems[i]
		item.SetTitle(entry.Name)
		item.SetTooltip(entry.URL)
		if entry.Name == current.Name {
			item.Check()
		} else {
			item.Uncheck()
		}
		item.Show()
	}
}

func handleProviderClickByIndex(item *systray.MenuItem, index int) {
	for range item.ClickedCh {
		stateMutex.RLock()
		entry := providerEntries[index]
		stateMutex.RUnlock()
		if entry.URL != "" {
			setProvider(entry)
		}
	}
}

func currentProvider() ProviderEntry {
	cfg := currentConfig()
	return FindProvider(cfg.GetProviders(), cfg.CurrentProvider)
}

// setProvider selects p, persists the choice and points the overlay at it
func setProvider(p ProviderEntry) {
	updateConfig(func(c *Config) { c.CurrentProvider = p.Name })
	updateProviderMenu()
	mProviderMenu.SetTitle(fmt.Sprintf("Provider: %s", p.Name))

	if err := overlay.SetURL(p.URL); err != nil {
		LogError("Failed to load %s: %v", p.Name, err)
		mStatus.SetTitle(fmt.Sprintf("Error: %s", truncateError(err)))
	} else {
		mStatus.SetTitle(fmt.Sprintf("Provider: %s", p.Name))
	}
	LogProviderChanged(p.Name)

	if p.Script != "" {
		go func() {
			ctx := map[string]string{"name": p.Name, "url": p.URL}
			if _, err := runHookScript(p.Script, "provider", ctx); err != nil {
				mStatus.SetTitle(fmt.Sprintf("Script error: %s", truncateError(err)))
			}
		}()
	}
	go checkProvider(p, false)
}

// checkProvider reports the reachability of p in the provider menu tooltip.
// force bypasses the status cache.
func checkProvider(p ProviderEntry, force bool) {
	var st ProviderStatus
	if force {
		st = providerChecker.Refresh(p)
	} else {
		st = providerChecker.Status(p)
	}
	mProviderMenu.SetTooltip(fmt.Sprintf("%s: %s", p.Name, st))
	if force {
		mStatus.SetTitle(fmt.Sprintf("%s: %s", p.Name, st))
	} else if !st.OK() {
		mStatus.SetTitle(fmt.Sprintf("%s unreachable", p.Name))
	}
}

// startHook runs a show/hide script off the caller's goroutine
var startHook = func(script, hook string, ctx map[string]string) {
	go runHookScript(script, hook, ctx)
}

// setStatus shows text in the status item once the menu exists
func setStatus(text string) {
	if mStatus != nil {
		mStatus.SetTitle(text)
	}
}

// toggleWindowVisibility flips the overlay and runs the show/hide scripts
func toggleWindowVisibility() {
	_ = toggleOverlay(true)
}

// toggleOverlay flips the overlay. Toggles made by scripts pass runHooks
// false so that an on_show script calling overlay.toggle() cannot start
// itself again.
func toggleOverlay(runHooks bool) error {
	visible, err := overlay.Toggle()
	if err != nil {
		LogError("Overlay toggle failed: %v", err)
		setStatus(fmt.Sprintf("Overlay error: %s", truncateError(err)))
		return err
	}
	LogAction("toggle", fmt.Sprintf("visible=%v", visible))

	scripts := currentConfig().Scripts
	p := currentProvider()
	ctx := map[string]string{"name": p.Name, "url": p.URL}
	switch {
	case visible && !overlay.HasAppWindow():
		setStatus(fmt.Sprintf("Opened %s in browser", p.Name))
	case visible:
		setStatus(fmt.Sprintf("Showing %s", p.Name))
	default:
		setStatus("Overlay hidden")
	}
	if !runHooks {
		return nil
	}
	if visible {
		startHook(scripts.OnShow, "on_show", ctx)
	} else {
		startHook(scripts.OnHide, "on_hide", ctx)
	}
	return nil
}

// updateHotkeyMenu shows the active binding in the menu
func updateHotkeyMenu() {
	label := CurrentBindingLabel()
	if label == "" {
		mToggle.SetTitle("Toggle Overlay")
	} else {
		mToggle.SetTitle(fmt.Sprintf("Toggle Overlay (%s)", label))
	}

	hookDenied := currentConfig().GetBackend() == BackendHook && hotkeyPermission != shortcut.PermissionGranted
	if hookDenied {
		mSetHotkey.Disable()
		mSetHotkey.SetTooltip(permissionHelp)
	} else {
		mSetHotkey.Enable()
	}
}

func onExit() {
	LogShutdown()

	if overlay != nil {
		if err := overlay.Close(); err != nil {
			LogWarn("Failed to close overlay: %v", err)
		}
	}

	CleanupHotkeys()

	// Release single instance lock
	ReleaseSingleInstance()
}

func handleMenuClicks() {
	for {
		select {
		case <-mToggle.ClickedCh:
			toggleWindowVisibility()

		case <-mCheckStatus.ClickedCh:
			go checkProvider(currentProvider(), true)

		case <-mSetHotkey.ClickedCh:
			requestRebind()

		case <-mResetHotkey.ClickedCh:
			resetHotkey()

		case <-mCopyURL.ClickedCh:
			copyProviderURL()

		case <-mDebug.ClickedCh:
			toggleDebug()

		case <-mReloadCfg.ClickedCh:
			reloadConfig()

		case <-mOpenConfig.ClickedCh:
			if err := openBrowser(ConfigDir()); err != nil {
				LogError("Failed to open config folder: %v", err)
			}

		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func reloadConfig() {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		LogError("Config reload failed: %v", err)
		mStatus.SetTitle(fmt.Sprintf("Config error: %v", truncateError(err)))
		return
	}

	stateMutex.Lock()
	appConfig = cfg
	stateMutex.Unlock()

	updateProviderMenu()
	p := currentProvider()
	mProviderMenu.SetTitle(fmt.Sprintf("Provider: %s", p.Name))
	overlay.SetFrame(cfg.GetWindow())
	if err := overlay.SetURL(p.URL); err != nil {
		LogError("Failed to load %s: %v", p.Name, err)
	}
	applyCaptureTimeout(cfg.GetCaptureTimeout())
	GetCache().Clear()

	LogConfigLoaded(cfg)
	mStatus.SetTitle(fmt.Sprintf("Config reloaded (%d providers)", len(cfg.GetProviders())))
}

func copyProviderURL() {
	p := currentProvider()
	if err := copyToClipboard(p.URL); err != nil {
		LogError("Failed to copy provider URL: %v", err)
		mStatus.SetTitle(fmt.Sprintf("Copy failed: %v", truncateError(err)))
		return
	}
	LogClipboardCopy("provider_url", p.Name)
	mStatus.SetTitle(fmt.Sprintf("Copied %s URL", p.Name))
}

func toggleDebug() {
	debugMode = !debugMode
	if debugMode {
		mDebug.Check()
	} else {
		mDebug.Uncheck()
	}
	SetDebugMode(debugMode)
	SetLogLevel(debugMode)
	if debugMode {
		LogDebug("Cache: %s", GetCache().Stats())
	}
}

// trayHost exposes the tray state to Lua scripts
type trayHost struct{}

// ToggleOverlay does not run the show/hide scripts
func (trayHost) ToggleOverlay() error {
	return toggleOverlay(false)
}

func (trayHost) ShowOverlay() error { return overlay.Show() }
func (trayHost) HideOverlay() error { return overlay.Hide() }

func (trayHost) CurrentProvider() ProviderEntry { return currentProvider() }
func (trayHost) CurrentHotkey() string          { return CurrentBindingLabel() }

func (trayHost) SetStatus(text string) { setStatus(text) }

func truncateError(err error) string {
	s := err.Error()
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// getShortCommit returns the first 8 characters of the commit hash
func getShortCommit() string {
	if len(commit) >= 8 {
		return commit[:8]
	}
	if commit == "" {
		return "dev"
	}
	return commit
}
