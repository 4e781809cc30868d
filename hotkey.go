package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"llmoverlay/shortcut"
)

var (
	hotkeyLoop       *shortcut.Loop
	hotkeyListener   *shortcut.Listener
	hotkeyCapture    *shortcut.Capture
	bindingStore     *shortcut.Store
	registrar        *hotkeyRegistrar
	hotkeyPermission shortcut.Permission
	hookStarted      bool
	stopHotkeyLoop   context.CancelFunc

	// captureTimer is only touched on the hotkey loop
	captureTimer *time.Timer

	// bindingLabel mirrors the active binding for menu and script readers
	bindingMu    sync.RWMutex
	bindingLabel string
)

// InitHotkeys installs the toggle hotkey and starts the hotkey loop.
// Called from onReady after systray is initialized
func InitHotkeys() {
	go initHotkeysAsync()
}

func initHotkeysAsync() {
	// Small delay to ensure systray is fully initialized
	time.Sleep(500 * time.Millisecond)

	cfg := currentConfig()
	backend := cfg.GetBackend()
	logger := Logger().WithField("component", "hotkey")

	if backend == BackendRegister {
		hotkeyPermission = shortcut.PermissionGranted
	} else {
		hotkeyPermission = queryHookPermission()
	}
	LogInfo("Hotkey backend %s, permission %s", backend, hotkeyPermission)

	bindingStore = shortcut.NewStore(BindingPath())
	binding := loadBinding(cfg, bindingStore)

	var reg shortcut.Registrar
	if backend == BackendRegister {
		registrar = newHotkeyRegistrar()
		reg = registrar
	}

	hotkeyListener = shortcut.NewListener(shortcut.ListenerConfig{
		Permission: hotkeyPermission,
		Toggle:     onHotkeyToggle,
		Registrar:  reg,
		Logger:     logger,
	})
	hotkeyCapture = shortcut.NewCapture(shortcut.CaptureConfig{
		Listener:    hotkeyListener,
		Store:       bindingStore,
		Timeout:     cfg.GetCaptureTimeout(),
		OnDone:      rebindCompleted,
		OnReject:    onCaptureReject,
		OnModifiers: onCaptureModifiers,
		Logger:      logger,
	})
	hotkeyLoop = shortcut.NewLoop()

	var events <-chan shortcut.RawEvent
	if err := hotkeyListener.Install(binding); err != nil {
		hotkeyInstallFailed(err)
	} else if backend == BackendRegister {
		events = registrar.Events()
	} else {
		events = startHookSource()
		hookStarted = true
	}
	setBindingLabel(hotkeyListener.Binding())
	if hotkeyListener.Installed() {
		mStatus.SetTitle(fmt.Sprintf("Hotkey ready: %s", hotkeyListener.Binding()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopHotkeyLoop = cancel
	go func() {
		_ = hotkeyLoop.Run(ctx, events, func(ev shortcut.RawEvent) {
			hotkeyListener.OnEvent(ev)
		})
	}()

	updateHotkeyMenu()
}

// loadBinding returns the persisted binding. Without a binding file the
// config's hotkey combo seeds it.
func loadBinding(cfg *Config, store *shortcut.Store) shortcut.KeyBinding {
	if _, err := os.Stat(store.Path()); os.IsNotExist(err) && cfg.Hotkey != "" {
		b, err := shortcut.ParseBinding(cfg.Hotkey)
		if err == nil {
			return b
		}
		LogWarn("Ignoring config hotkey %q: %v", cfg.Hotkey, err)
	}

	b, err := store.Load()
	if err != nil {
		LogWarn("Using default hotkey, binding file unusable: %v", err)
	}
	return b
}

func hotkeyInstallFailed(err error) {
	LogError("Hotkey install failed: %v", err)
	if !errors.Is(err, shortcut.ErrPermissionDenied) {
		mStatus.SetTitle(fmt.Sprintf("Hotkey error: %s", truncateError(err)))
		return
	}

	if hotkeyPermission == shortcut.PermissionRestartRequired {
		mStatus.SetTitle("Hotkey: restart to activate permission")
	} else {
		mStatus.SetTitle("Hotkey inactive: permission denied")
	}
	LogWarn("%s", permissionHelp)

	if privacySettingsURL == "" || hotkeyPermission == shortcut.PermissionRestartRequired {
		return
	}
	go func() {
		if ConfirmDialog("Global hotkey needs permission", permissionHelp) {
			if err := openBrowser(privacySettingsURL); err != nil {
				LogError("Failed to open privacy settings: %v", err)
			}
		}
	}()
}

func setBindingLabel(b shortcut.KeyBinding) {
	bindingMu.Lock()
	bindingLabel = b.String()
	bindingMu.Unlock()
}

// CurrentBindingLabel returns the active hotkey as shown in the menu
func CurrentBindingLabel() string {
	bindingMu.RLock()
	defer bindingMu.RUnlock()
	return bindingLabel
}

// onHotkeyToggle runs on the hotkey loop
func onHotkeyToggle() {
	LogHotkeyTriggered(CurrentBindingLabel())
	toggleWindowVisibility()
}

// requestRebind starts capturing a new toggle hotkey
func requestRebind() {
	if hotkeyLoop == nil {
		return
	}
	if currentConfig().GetBackend() == BackendRegister {
		go promptRebind()
		return
	}

	hotkeyLoop.Do(func() {
		if err := hotkeyCapture.Start(); err != nil {
			LogWarn("Hotkey capture not started: %v", err)
			mStatus.SetTitle(fmt.Sprintf("Cannot set hotkey: %s", truncateError(err)))
			return
		}
		mStatus.SetTitle("Press the new toggle key combination (Esc to cancel)")

		if d := currentConfig().GetCaptureTimeout(); d > 0 {
			captureTimer = time.AfterFunc(d, func() {
				hotkeyLoop.Do(func() { hotkeyCapture.Expire(time.Now()) })
			})
		}
	})
}

// promptRebind asks for the combo as text. The register backend only sees
// the bound combo, so it cannot capture keystrokes.
func promptRebind() {
	text, ok := PromptForCombo("Set Toggle Hotkey", "Type the new combination, for example Cmd+Shift+Space.", CurrentBindingLabel())
	if !ok || text == "" {
		return
	}
	b, err := shortcut.ParseBinding(text)
	if err != nil {
		mStatus.SetTitle(fmt.Sprintf("Invalid hotkey: %s", truncateError(err)))
		return
	}

	hotkeyLoop.Do(func() {
		prev := hotkeyListener.Binding()
		out := shortcut.Outcome{State: shortcut.StateResolved, Binding: b, Previous: prev}
		if err := hotkeyListener.Install(b); err != nil {
			out.Binding = prev
			out.Err = err
		} else if err := bindingStore.Save(b); err != nil {
			out.Err = err
		}
		rebindCompleted(out)
	})
}

// rebindCompleted runs on the hotkey loop when a capture ends
func rebindCompleted(out shortcut.Outcome) {
	if captureTimer != nil {
		captureTimer.Stop()
		captureTimer = nil
	}
	setBindingLabel(hotkeyListener.Binding())
	LogBindingChanged(out.State.String(), out.Binding.String(), out.Err)

	var pe *shortcut.PersistenceError
	switch {
	case out.State == shortcut.StateResolved && errors.As(out.Err, &pe):
		mStatus.SetTitle(fmt.Sprintf("Hotkey %s (not saved)", out.Binding))
	case out.State == shortcut.StateResolved && out.Err != nil:
		mStatus.SetTitle(fmt.Sprintf("Hotkey error: %s", truncateError(out.Err)))
	case out.State == shortcut.StateResolved:
		mStatus.SetTitle(fmt.Sprintf("Hotkey set: %s", out.Binding))
	case out.State == shortcut.StateTimedOut:
		mStatus.SetTitle("Hotkey capture timed out")
	default:
		mStatus.SetTitle("Hotkey unchanged")
	}
	updateHotkeyMenu()

	if out.State != shortcut.StateResolved || (out.Err != nil && pe == nil) {
		return
	}
	script := currentConfig().Scripts.OnHotkeyChanged
	go runHookScript(script, "on_hotkey_changed", map[string]string{
		"binding":  out.Binding.String(),
		"previous": out.Previous.String(),
	})
}

func onCaptureReject(chord shortcut.KeyBinding, err error) {
	mStatus.SetTitle(fmt.Sprintf("%s needs a modifier (Esc to cancel)", shortcut.KeyName(chord.Code)))
}

func onCaptureModifiers(m shortcut.Modifier) {
	mStatus.SetTitle(fmt.Sprintf("%s + ...", m))
}

// resetHotkey deletes the binding file and installs the default binding
func resetHotkey() {
	if hotkeyLoop == nil {
		return
	}
	hotkeyLoop.Do(func() {
		hotkeyCapture.Cancel()
		if err := bindingStore.Reset(); err != nil {
			LogError("Hotkey reset failed: %v", err)
		}
		def := shortcut.DefaultBinding()
		if err := hotkeyListener.Install(def); err != nil {
			mStatus.SetTitle(fmt.Sprintf("Hotkey error: %s", truncateError(err)))
			return
		}
		setBindingLabel(def)
		LogBindingChanged("reset", def.String(), nil)
		mStatus.SetTitle(fmt.Sprintf("Hotkey reset: %s", def))
		updateHotkeyMenu()
	})
}

// applyCaptureTimeout pushes a reloaded timeout into the capture
func applyCaptureTimeout(d time.Duration) {
	if hotkeyLoop == nil {
		return
	}
	hotkeyLoop.Do(func() { hotkeyCapture.SetTimeout(d) })
}

// CleanupHotkeys unregisters the hotkey and stops the loop
func CleanupHotkeys() {
	if hotkeyLoop == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = hotkeyLoop.Call(ctx, func() {
		hotkeyCapture.Cancel()
		hotkeyListener.Uninstall()
	})
	if stopHotkeyLoop != nil {
		stopHotkeyLoop()
	}
	if hookStarted {
		stopHookSource()
	}
}
