package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// openURL opens a page in the default browser when no app window is possible
var openURL = openBrowser

// OverlayWindow shows the provider page in a dedicated browser app window.
// The window is a separate process; hiding it terminates the process and
// the browser profile restores the page and the login on the next show.
// The window placement the browser saved on exit becomes the frame of the
// next launch.
type OverlayWindow struct {
	mu      sync.Mutex
	browser string
	profile string
	url     string
	frame   WindowFrame
	cmd     *exec.Cmd
	visible bool

	onPlacement func(WindowFrame)
}

// NewOverlayWindow returns a hidden window. browser may be empty to pick
// the first installed Chromium-family browser.
func NewOverlayWindow(browser, url string, frame WindowFrame) *OverlayWindow {
	found := findBrowser(browser)
	if found == "" {
		LogWarn("No Chromium-family browser found, the overlay opens in the default browser")
	} else {
		LogInfo("Overlay browser: %s", found)
	}
	return &OverlayWindow{
		browser: found,
		profile: ProfileDir(),
		url:     url,
		frame:   frame,
	}
}

// Show opens the window if it is not already visible
func (o *OverlayWindow) Show() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.showLocked()
}

func (o *OverlayWindow) showLocked() error {
	if o.visible {
		return nil
	}
	if o.browser == "" {
		// No app window to hide later; the page opens in a normal tab.
		return openURL(o.url)
	}

	if err := os.MkdirAll(o.profile, 0755); err != nil {
		return fmt.Errorf("create browser profile: %w", err)
	}
	cmd := exec.Command(o.browser, appArgs(o.url, o.profile, o.frame)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(o.browser), err)
	}
	o.cmd = cmd
	o.visible = true
	LogDebug("Overlay shown (pid %d)", cmd.Process.Pid)

	go o.wait(cmd, o.url)
	return nil
}

// wait notices windows closed by the user and picks up the placement the
// browser wrote on exit
func (o *OverlayWindow) wait(cmd *exec.Cmd, url string) {
	_ = cmd.Wait()
	frame, ok := readPlacement(o.profile, url)

	o.mu.Lock()
	if o.cmd == cmd {
		o.cmd = nil
		o.visible = false
		LogDebug("Overlay window closed")
	}
	changed := ok && frame != o.frame
	if changed {
		o.frame = frame
	}
	fn := o.onPlacement
	o.mu.Unlock()

	if changed && fn != nil {
		LogDebug("Overlay placement %+v", frame)
		fn(frame)
	}
}

// Hide closes the window
func (o *OverlayWindow) Hide() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hideLocked()
}

func (o *OverlayWindow) hideLocked() error {
	if !o.visible || o.cmd == nil {
		return nil
	}
	cmd := o.cmd
	o.cmd = nil
	o.visible = false
	if err := stopProcess(cmd.Process); err != nil {
		return fmt.Errorf("stop overlay window: %w", err)
	}
	LogDebug("Overlay hidden")
	return nil
}

// Toggle flips visibility and reports whether the window is now shown.
// Without an app window every toggle opens the page in the default browser
// and counts as shown.
func (o *OverlayWindow) Toggle() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.visible {
		return false, o.hideLocked()
	}
	if err := o.showLocked(); err != nil {
		return false, err
	}
	return o.visible || o.browser == "", nil
}

func (o *OverlayWindow) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *OverlayWindow) URL() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.url
}

// SetURL loads url, relaunching the window when it is visible
func (o *OverlayWindow) SetURL(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if url == o.url {
		return nil
	}
	o.url = url
	if !o.visible {
		return nil
	}
	if err := o.hideLocked(); err != nil {
		return err
	}
	return o.showLocked()
}

// SetFrame changes the frame used for the next launch
func (o *OverlayWindow) SetFrame(f WindowFrame) {
	o.mu.Lock()
	o.frame = f
	o.mu.Unlock()
}

// OnPlacement sets the function told about a placement the user gave the
// window
func (o *OverlayWindow) OnPlacement(fn func(WindowFrame)) {
	o.mu.Lock()
	o.onPlacement = fn
	o.mu.Unlock()
}

// Frame returns the frame used for the next launch
func (o *OverlayWindow) Frame() WindowFrame {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frame
}

// HasAppWindow reports whether a browser that supports app windows was found
func (o *OverlayWindow) HasAppWindow() bool {
	return o.browser != ""
}

// Close hides the window
func (o *OverlayWindow) Close() error {
	return o.Hide()
}

func appArgs(url, profile string, f WindowFrame) []string {
	return []string{
		"--app=" + url,
		"--user-data-dir=" + profile,
		fmt.Sprintf("--window-size=%d,%d", f.Width, f.Height),
		fmt.Sprintf("--window-position=%d,%d", f.X, f.Y),
		"--no-first-run",
		"--no-default-browser-check",
	}
}

// findBrowser returns configured when it resolves, else the first
// installed candidate, else "".
func findBrowser(configured string) string {
	candidates := browserCandidates()
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}
	for _, c := range candidates {
		if filepath.IsAbs(c) {
			if st, err := os.Stat(c); err == nil && !st.IsDir() {
				return c
			}
			continue
		}
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}
