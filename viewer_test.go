package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeBrowser writes a script that stays alive like a browser window.
func fakeBrowser(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script browser stand-in needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "fake-chrome")
	script := "#!/bin/sh\nexec sleep 30\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitHidden(t *testing.T, o *OverlayWindow) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for o.Visible() {
		if time.Now().After(deadline) {
			t.Fatal("window still visible")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAppArgs(t *testing.T) {
	args := appArgs("https://claude.ai/chats", "/tmp/profile", WindowFrame{X: 10, Y: 20, Width: 800, Height: 600})
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--app=https://claude.ai/chats",
		"--user-data-dir=/tmp/profile",
		"--window-size=800,600",
		"--window-position=10,20",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestFindBrowserConfigured(t *testing.T) {
	path := fakeBrowser(t)
	if got := findBrowser(path); got != path {
		t.Fatalf("findBrowser() = %q, want %q", got, path)
	}
	if got := findBrowser(filepath.Dir(path)); got == filepath.Dir(path) {
		t.Fatal("directory accepted as browser")
	}
}

func TestOverlayToggle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	o := NewOverlayWindow(fakeBrowser(t), "https://aistudio.google.com", DefaultWindowFrame())
	if !o.HasAppWindow() {
		t.Fatal("configured browser not used")
	}

	shown, err := o.Toggle()
	if err != nil || !shown || !o.Visible() {
		t.Fatalf("Toggle() = %v, %v", shown, err)
	}
	if _, err := os.Stat(ProfileDir()); err != nil {
		t.Fatalf("profile dir not created: %v", err)
	}

	shown, err = o.Toggle()
	if err != nil || shown {
		t.Fatalf("second Toggle() = %v, %v", shown, err)
	}
	waitHidden(t, o)
}

func TestOverlaySetURLRelaunches(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	o := NewOverlayWindow(fakeBrowser(t), "https://aistudio.google.com", DefaultWindowFrame())
	if err := o.Show(); err != nil {
		t.Fatal(err)
	}
	defer o.Close()

	o.mu.Lock()
	first := o.cmd
	o.mu.Unlock()

	if err := o.SetURL("https://grok.com/chat"); err != nil {
		t.Fatal(err)
	}
	o.mu.Lock()
	second := o.cmd
	o.mu.Unlock()

	if second == nil || second == first || !o.Visible() {
		t.Fatal("SetURL did not relaunch the visible window")
	}
	if o.URL() != "https://grok.com/chat" {
		t.Fatalf("URL() = %q", o.URL())
	}
}

func TestOverlayClosedByUser(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	o := NewOverlayWindow(fakeBrowser(t), "https://aistudio.google.com", DefaultWindowFrame())
	if err := o.Show(); err != nil {
		t.Fatal(err)
	}
	o.mu.Lock()
	p := o.cmd.Process
	o.mu.Unlock()
	_ = p.Kill()
	waitHidden(t, o)
}

func TestOverlayAdoptsSavedPlacement(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	o := NewOverlayWindow(fakeBrowser(t), "https://claude.ai/chats", DefaultWindowFrame())
	saved := make(chan WindowFrame, 1)
	o.OnPlacement(func(f WindowFrame) { saved <- f })

	if err := o.Show(); err != nil {
		t.Fatal(err)
	}
	// the browser writes its placement while the window closes
	writePrefs(t, ProfileDir(), `{"browser":{"app_window_placement":{"claude.ai_/chats":{"left":30,"top":40,"right":1030,"bottom":740}}}}`)
	if err := o.Hide(); err != nil {
		t.Fatal(err)
	}

	want := WindowFrame{X: 30, Y: 40, Width: 1000, Height: 700}
	select {
	case got := <-saved:
		if got != want {
			t.Fatalf("saved placement = %+v, want %+v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("placement not reported")
	}
	if o.Frame() != want {
		t.Fatalf("Frame() = %+v, want the saved placement", o.Frame())
	}
	joined := strings.Join(appArgs(o.URL(), ProfileDir(), o.Frame()), " ")
	if !strings.Contains(joined, "--window-size=1000,700") || !strings.Contains(joined, "--window-position=30,40") {
		t.Fatalf("next launch args = %q", joined)
	}
}

func TestOverlayToggleWithoutAppWindow(t *testing.T) {
	var opened []string
	orig := openURL
	openURL = func(u string) error { opened = append(opened, u); return nil }
	t.Cleanup(func() { openURL = orig })

	o := &OverlayWindow{url: "https://grok.com/chat", frame: DefaultWindowFrame()}
	for i := 0; i < 2; i++ {
		shown, err := o.Toggle()
		if err != nil || !shown {
			t.Fatalf("Toggle() #%d = %v, %v, want shown", i+1, shown, err)
		}
	}
	if len(opened) != 2 || o.Visible() {
		t.Fatalf("opened = %v, visible = %v", opened, o.Visible())
	}
}
