package shortcut

import (
	"errors"
	"testing"
	"time"
)

type captureHarness struct {
	l        *Listener
	toggles  *int
	store    *memSaver
	c        *Capture
	outcomes []Outcome
	rejected []KeyBinding
	now      time.Time
}

func newHarness(t *testing.T, b KeyBinding) *captureHarness {
	t.Helper()
	h := &captureHarness{store: &memSaver{}, now: time.Unix(1700000000, 0)}
	h.l, h.toggles = newInstalled(b)
	h.c = NewCapture(CaptureConfig{
		Listener: h.l,
		Store:    h.store,
		Timeout:  10 * time.Second,
		Now:      func() time.Time { return h.now },
		OnDone:   func(o Outcome) { h.outcomes = append(h.outcomes, o) },
		OnReject: func(chord KeyBinding, _ error) { h.rejected = append(h.rejected, chord) },
	})
	if err := h.c.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	return h
}

func (h *captureHarness) last(t *testing.T) Outcome {
	t.Helper()
	if len(h.outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(h.outcomes))
	}
	return h.outcomes[0]
}

func TestCaptureResolves(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	want := KeyBinding{Modifiers: ModCommand | ModShift, Code: KeyK}

	h.l.OnEvent(pressModifier(ModCommand, 0))
	h.l.OnEvent(pressModifier(ModShift, ModCommand))
	if h.c.State() != StateListening {
		t.Fatalf("state after modifiers = %v", h.c.State())
	}
	if !h.l.OnEvent(press(KeyK, ModCommand|ModShift)) {
		t.Error("capture did not consume the chord")
	}

	out := h.last(t)
	if out.State != StateResolved || !out.Binding.Equal(want) || out.Err != nil {
		t.Fatalf("outcome = %+v", out)
	}
	if !out.Previous.Equal(DefaultBinding()) {
		t.Errorf("Previous = %v", out.Previous)
	}
	if !h.l.Binding().Equal(want) || h.l.Paused() {
		t.Fatalf("listener binding=%v paused=%v", h.l.Binding(), h.l.Paused())
	}
	if len(h.store.saved) != 1 || !h.store.saved[0].Equal(want) {
		t.Fatalf("saved = %v", h.store.saved)
	}
	if *h.toggles != 0 {
		t.Fatalf("capture toggled the viewer %d times", *h.toggles)
	}

	// the chord is still held: its auto-repeat must not toggle
	h.l.OnEvent(press(KeyK, ModCommand|ModShift))
	if *h.toggles != 0 {
		t.Fatal("held chord auto-repeat toggled after capture")
	}
	h.l.OnEvent(release(KeyK, ModCommand|ModShift))
	h.l.OnEvent(press(KeyK, ModCommand|ModShift))
	if *h.toggles != 1 {
		t.Fatalf("toggles with new binding = %d, want 1", *h.toggles)
	}
}

func TestCaptureEscapeCancels(t *testing.T) {
	prev := KeyBinding{Modifiers: ModControl, Code: KeyS}
	h := newHarness(t, prev)

	h.l.OnEvent(press(KeyEscape, 0))

	out := h.last(t)
	if out.State != StateCancelled || !out.Binding.Equal(prev) {
		t.Fatalf("outcome = %+v", out)
	}
	if !h.l.Binding().Equal(prev) || !h.l.Installed() {
		t.Fatalf("binding after cancel = %v", h.l.Binding())
	}
	if len(h.store.saved) != 0 {
		t.Fatal("cancel persisted a binding")
	}

	// matching works again with the previous binding
	h.l.OnEvent(press(prev.Code, prev.Modifiers))
	if *h.toggles != 1 {
		t.Fatalf("toggles after cancel = %d, want 1", *h.toggles)
	}
}

func TestCaptureEscapeWithModifierBinds(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	h.l.OnEvent(press(KeyEscape, ModCommand))

	out := h.last(t)
	want := KeyBinding{Modifiers: ModCommand, Code: KeyEscape}
	if out.State != StateResolved || !out.Binding.Equal(want) {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestCaptureRejectsBareKey(t *testing.T) {
	prev := DefaultBinding()
	h := newHarness(t, prev)

	h.l.OnEvent(press(KeyK, 0))
	if h.c.State() != StateListening {
		t.Fatalf("state = %v, want listening", h.c.State())
	}
	if len(h.rejected) != 1 || h.rejected[0].Modifiers != 0 {
		t.Fatalf("rejected = %v", h.rejected)
	}
	if len(h.outcomes) != 0 || !h.l.Binding().Equal(prev) {
		t.Fatal("bare key changed the binding")
	}

	h.l.OnEvent(release(KeyK, 0))
	h.l.OnEvent(press(KeyK, ModOption))
	if out := h.last(t); out.State != StateResolved || out.Binding.Modifiers != ModOption {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestCaptureIgnoresRepeats(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	// a key held from before the session auto-repeats into it
	h.l.OnEvent(press(KeyS, 0))
	h.l.OnEvent(press(KeyS, 0))
	if len(h.rejected) != 1 {
		t.Fatalf("rejected = %d, want the repeat ignored", len(h.rejected))
	}
}

func TestCaptureSuspendsMatching(t *testing.T) {
	b := DefaultBinding()
	h := newHarness(t, b)
	if !h.l.Paused() {
		t.Fatal("listener not paused during capture")
	}

	// the active binding resolves the capture instead of toggling
	h.l.OnEvent(press(b.Code, b.Modifiers))
	if *h.toggles != 0 {
		t.Fatalf("toggles during capture = %d", *h.toggles)
	}
	if out := h.last(t); out.State != StateResolved || !out.Binding.Equal(b) {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestCaptureTimeout(t *testing.T) {
	prev := DefaultBinding()
	h := newHarness(t, prev)

	if h.c.Expire(h.now.Add(9 * time.Second)) {
		t.Fatal("expired early")
	}
	h.now = h.now.Add(10 * time.Second)
	if !h.c.Expire(h.now) {
		t.Fatal("did not expire")
	}
	out := h.last(t)
	if out.State != StateTimedOut || !out.Binding.Equal(prev) {
		t.Fatalf("outcome = %+v", out)
	}
	if h.l.Paused() || !h.l.Binding().Equal(prev) {
		t.Fatal("listener not restored after timeout")
	}
}

func TestCaptureTimeoutOnEvent(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	h.now = h.now.Add(time.Minute)
	h.l.OnEvent(press(KeyK, ModCommand))
	if out := h.last(t); out.State != StateTimedOut {
		t.Fatalf("state = %v, want timed out", out.State)
	}
}

func TestCaptureCancelAndRestart(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	if err := h.c.Start(); !errors.Is(err, ErrCaptureActive) {
		t.Fatalf("second Start() = %v", err)
	}
	h.c.Cancel()
	if h.last(t).State != StateCancelled {
		t.Fatal("Cancel did not cancel")
	}
	h.c.Cancel()
	if len(h.outcomes) != 1 {
		t.Fatal("Cancel on a finished session reported twice")
	}
	if err := h.c.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestCaptureRequiresPermission(t *testing.T) {
	l := NewListener(ListenerConfig{Permission: PermissionDenied})
	c := NewCapture(CaptureConfig{Listener: l})
	if err := c.Start(); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Start() = %v", err)
	}
	if c.State() != StateIdle || l.Paused() {
		t.Fatal("denied capture changed state")
	}
}

func TestCapturePersistenceFailure(t *testing.T) {
	h := newHarness(t, DefaultBinding())
	h.store.err = errDiskFull
	want := KeyBinding{Modifiers: ModControl, Code: KeyK}

	h.l.OnEvent(press(KeyK, ModControl))

	out := h.last(t)
	var perr *PersistenceError
	if !errors.As(out.Err, &perr) || !errors.Is(out.Err, errDiskFull) {
		t.Fatalf("Err = %v, want PersistenceError", out.Err)
	}
	if !out.Binding.Equal(want) || !h.l.Binding().Equal(want) {
		t.Fatalf("binding = %v, want it active in memory", h.l.Binding())
	}
}

func TestCaptureInstallFailureRestores(t *testing.T) {
	reg := &fakeRegistrar{}
	l := NewListener(ListenerConfig{Permission: PermissionGranted, Registrar: reg})
	prev := DefaultBinding()
	if err := l.Install(prev); err != nil {
		t.Fatal(err)
	}
	var out Outcome
	store := &memSaver{}
	c := NewCapture(CaptureConfig{Listener: l, Store: store, OnDone: func(o Outcome) { out = o }})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	reg.fail = errors.New("combo taken")
	l.OnEvent(press(KeyK, ModControl))

	if out.State != StateResolved || out.Err == nil {
		t.Fatalf("outcome = %+v", out)
	}
	if !out.Binding.Equal(prev) || !l.Binding().Equal(prev) {
		t.Fatalf("binding = %v, want previous", l.Binding())
	}
	if n := len(store.saved); n != 2 || !store.saved[n-1].Equal(prev) {
		t.Fatalf("saved = %v, want the previous binding persisted last", store.saved)
	}
}
