package main

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"llmoverlay/shortcut"
)

// hotkeyRegistrar registers the binding with the OS hotkey service and
// forwards its key-down and key-up as raw events. Only the bound combo is
// ever seen, so capturing a new binding needs the hook backend.
type hotkeyRegistrar struct {
	mu     sync.Mutex
	events chan shortcut.RawEvent
	hk     *hotkey.Hotkey
	stop   chan struct{}
}

func newHotkeyRegistrar() *hotkeyRegistrar {
	return &hotkeyRegistrar{events: make(chan shortcut.RawEvent, 16)}
}

// Events delivers synthesized pressed/released events of the bound combo
func (r *hotkeyRegistrar) Events() <-chan shortcut.RawEvent {
	return r.events
}

// Register replaces the current registration with b. The old combo stays
// registered when b cannot be registered.
func (r *hotkeyRegistrar) Register(b shortcut.KeyBinding) error {
	hk := hotkey.New(hotkeyModifiers(b.Modifiers), hotkey.Key(b.Code))
	if err := hk.Register(); err != nil {
		return fmt.Errorf("hotkey %s: %w", b, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked()
	r.hk = hk
	r.stop = make(chan struct{})
	go r.forward(hk, b, r.stop)
	return nil
}

// Unregister drops the current registration
func (r *hotkeyRegistrar) Unregister() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked()
}

func (r *hotkeyRegistrar) unregisterLocked() {
	if r.hk == nil {
		return
	}
	close(r.stop)
	if err := r.hk.Unregister(); err != nil {
		LogWarn("Hotkey unregister failed: %v", err)
	}
	r.hk = nil
}

func (r *hotkeyRegistrar) forward(hk *hotkey.Hotkey, b shortcut.KeyBinding, stop <-chan struct{}) {
	ev := shortcut.RawEvent{
		Mask:    shortcut.MaskFromModifiers(b.Modifiers),
		Rawcode: uint16(b.Code),
	}
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			ev.Kind = shortcut.KindKeyPressed
		case <-hk.Keyup():
			ev.Kind = shortcut.KindKeyReleased
		}
		select {
		case r.events <- ev:
		case <-stop:
			return
		}
	}
}
