package main

import (
	hook "github.com/robotn/gohook"

	"llmoverlay/shortcut"
)

// startHookSource starts the system-wide keyboard hook and returns its
// key events. The hook only observes; keystrokes still reach other apps.
func startHookSource() <-chan shortcut.RawEvent {
	evChan := hook.Start()
	out := make(chan shortcut.RawEvent, 64)

	go func() {
		defer close(out)
		for ev := range evChan {
			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold, hook.KeyUp:
				out <- rawFromHook(ev)
			}
		}
	}()
	return out
}

// stopHookSource detaches the hook and closes the event channel
func stopHookSource() {
	hook.End()
}

func rawFromHook(ev hook.Event) shortcut.RawEvent {
	return shortcut.RawEvent{
		Kind:    shortcut.Kind(ev.Kind),
		Mask:    ev.Mask,
		Keycode: ev.Keycode,
		Rawcode: ev.Rawcode,
	}
}
