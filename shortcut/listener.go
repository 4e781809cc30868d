package shortcut

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Registrar registers a binding with the OS hotkey service. Register
// replaces any previous registration.
type Registrar interface {
	Register(b KeyBinding) error
	Unregister()
}

// ListenerConfig configures a Listener.
type ListenerConfig struct {
	// Permission is the result of the activation-time capability query.
	Permission Permission
	// Toggle is called once per matching physical key-down.
	Toggle func()
	// Registrar is optional. The hook backend observes the raw stream and
	// needs none.
	Registrar Registrar
	Logger    logrus.FieldLogger
}

// Listener matches system-wide key-downs against the active binding. It
// owns the binding exclusively and is driven from a single goroutine (see
// Loop), so it holds no locks.
type Listener struct {
	perm      Permission
	toggle    func()
	registrar Registrar
	log       logrus.FieldLogger

	binding   KeyBinding
	installed bool
	paused    bool
	decoder   Decoder

	// sink receives every key-down while a capture session is attached.
	sink func(KeyEvent)
}

// NewListener returns a listener with no binding installed.
func NewListener(cfg ListenerConfig) *Listener {
	l := &Listener{
		perm:      cfg.Permission,
		toggle:    cfg.Toggle,
		registrar: cfg.Registrar,
		log:       cfg.Logger,
	}
	if l.log == nil {
		l.log = discardLogger()
	}
	if l.toggle == nil {
		l.toggle = func() {}
	}
	return l
}

// Install makes b the active binding. Installing the binding that is
// already active is a no-op.
func (l *Listener) Install(b KeyBinding) error {
	if err := b.Valid(); err != nil {
		return err
	}
	switch l.perm {
	case PermissionGranted:
	case PermissionRestartRequired:
		return fmt.Errorf("%w: restart the app to activate it", ErrPermissionDenied)
	default:
		return ErrPermissionDenied
	}

	if l.installed && l.binding.Equal(b) {
		return nil
	}
	if l.registrar != nil {
		if err := l.registrar.Register(b); err != nil {
			return fmt.Errorf("register %s: %w", b, err)
		}
	}
	l.binding = b
	l.installed = true
	l.log.WithField("binding", b.String()).Info("hotkey installed")
	return nil
}

// Uninstall drops the registration.
func (l *Listener) Uninstall() {
	if l.registrar != nil && l.installed {
		l.registrar.Unregister()
	}
	l.installed = false
}

// OnEvent handles one raw event and reports whether it was consumed.
// Events that do not match pass through.
func (l *Listener) OnEvent(raw RawEvent) bool {
	ev, ok := l.decoder.Decode(raw)
	if !ok {
		return false
	}
	if l.sink != nil {
		l.sink(ev)
		return true
	}
	if !l.installed || l.paused {
		return false
	}
	if !ev.Chord().Equal(l.binding) {
		return false
	}
	if ev.Repeat {
		return true
	}
	l.log.Debug("hotkey matched")
	l.toggle()
	return true
}

// Pause stops dispatch while keeping the registration. Held-key state is
// dropped so a release lost before the pause cannot mark later presses as
// repeats.
func (l *Listener) Pause() {
	l.paused = true
	l.decoder.Reset()
}

// Resume restarts dispatch with the current binding. Keys still held from
// the capture keep their held state, so their auto-repeat cannot toggle.
func (l *Listener) Resume() {
	l.paused = false
}

func (l *Listener) Binding() KeyBinding { return l.binding }
func (l *Listener) Installed() bool      { return l.installed }
func (l *Listener) Paused() bool         { return l.paused }
func (l *Listener) Permission() Permission {
	return l.perm
}

func (l *Listener) attach(sink func(KeyEvent)) { l.sink = sink }
func (l *Listener) detach()                    { l.sink = nil }

func discardLogger() logrus.FieldLogger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	return lg
}
