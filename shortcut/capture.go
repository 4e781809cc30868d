package shortcut

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the capture state machine position.
type State int

const (
	StateIdle State = iota
	StateListening
	StateResolved
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed out"
	default:
		return "idle"
	}
}

// Outcome is handed to CaptureConfig.OnDone when a session ends.
type Outcome struct {
	State State
	// Binding is the active binding after the session: the captured one on
	// success, Previous otherwise.
	Binding  KeyBinding
	Previous KeyBinding
	// Err is set when a resolved binding could not be persisted
	// (*PersistenceError) or installed.
	Err error
}

// BindingSaver persists a resolved binding.
type BindingSaver interface {
	Save(b KeyBinding) error
}

// CaptureConfig configures a Capture.
type CaptureConfig struct {
	Listener *Listener
	Store    BindingSaver
	// Timeout bounds a session. Zero disables it.
	Timeout time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// OnDone is called once per session, after the listener resumed.
	OnDone func(Outcome)
	// OnReject is called for chords that cannot be bound. The session keeps
	// listening.
	OnReject func(chord KeyBinding, err error)
	// OnModifiers reports the modifiers accumulated so far.
	OnModifiers func(Modifier)
	Logger      logrus.FieldLogger
}

type captureSession struct {
	mods     Modifier
	started  time.Time
	previous KeyBinding
}

// Capture records the next chord the user types and makes it the active
// binding. Like Listener it is driven from the loop goroutine only.
type Capture struct {
	cfg     CaptureConfig
	log     logrus.FieldLogger
	state   State
	session *captureSession
}

// NewCapture returns an idle capture bound to cfg.Listener.
func NewCapture(cfg CaptureConfig) *Capture {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	c := &Capture{cfg: cfg, log: cfg.Logger}
	if c.log == nil {
		c.log = discardLogger()
	}
	return c
}

// State returns the current state. Terminal states persist until the next
// Start.
func (c *Capture) State() State { return c.state }

// SetTimeout changes the session bound. Zero disables it.
func (c *Capture) SetTimeout(d time.Duration) { c.cfg.Timeout = d }

// Active reports whether a session is listening.
func (c *Capture) Active() bool { return c.state == StateListening }

// Start pauses the listener and begins listening for a chord.
func (c *Capture) Start() error {
	if c.state == StateListening {
		return ErrCaptureActive
	}
	l := c.cfg.Listener
	if l.Permission() != PermissionGranted {
		return ErrPermissionDenied
	}

	l.Pause()
	l.attach(c.handle)
	c.session = &captureSession{
		started:  c.cfg.Now(),
		previous: l.Binding(),
	}
	c.state = StateListening
	c.log.WithField("previous", l.Binding().String()).Info("hotkey capture started")
	return nil
}

// Cancel aborts a listening session.
func (c *Capture) Cancel() {
	if c.state != StateListening {
		return
	}
	c.finish(StateCancelled, KeyBinding{})
}

// Expire times out the session if it has been listening for at least the
// configured timeout. It reports whether the session ended.
func (c *Capture) Expire(now time.Time) bool {
	if c.state != StateListening || c.cfg.Timeout <= 0 {
		return false
	}
	if now.Sub(c.session.started) < c.cfg.Timeout {
		return false
	}
	c.finish(StateTimedOut, KeyBinding{})
	return true
}

func (c *Capture) handle(ev KeyEvent) {
	if c.state != StateListening {
		return
	}
	if c.Expire(c.cfg.Now()) {
		return
	}
	if ev.Repeat {
		return
	}
	if ev.Code == KeyEscape && ev.Modifiers == 0 {
		c.finish(StateCancelled, KeyBinding{})
		return
	}
	if ev.Key != 0 {
		c.session.mods |= ev.Key | ev.Modifiers&ModifierMask
		if c.cfg.OnModifiers != nil {
			c.cfg.OnModifiers(c.session.mods)
		}
		return
	}

	chord := ev.Chord()
	if err := chord.Valid(); err != nil {
		c.log.WithField("chord", chord.String()).Warn("rejected hotkey without modifier")
		if c.cfg.OnReject != nil {
			c.cfg.OnReject(chord, err)
		}
		return
	}
	c.finish(StateResolved, chord)
}

func (c *Capture) finish(state State, chord KeyBinding) {
	l := c.cfg.Listener
	prev := c.session.previous
	out := Outcome{State: state, Binding: prev, Previous: prev}

	if state == StateResolved {
		out.Binding = chord
		if c.cfg.Store != nil {
			if err := c.cfg.Store.Save(chord); err != nil {
				out.Err = err
				c.log.WithError(err).Error("hotkey not persisted, keeping it for this session")
			}
		}
		if err := l.Install(chord); err != nil {
			out.Binding = prev
			out.Err = fmt.Errorf("install %s: %w", chord, err)
			c.log.WithError(err).Error("hotkey install failed, restoring previous")
			if rerr := l.Install(prev); rerr != nil {
				c.log.WithError(rerr).Error("restoring previous hotkey failed")
			}
			if c.cfg.Store != nil && !prev.Equal(KeyBinding{}) {
				if serr := c.cfg.Store.Save(prev); serr != nil {
					c.log.WithError(serr).Warn("restoring persisted hotkey failed")
				}
			}
		}
	}

	l.detach()
	l.Resume()
	c.state = state
	c.session = nil

	c.log.WithFields(logrus.Fields{
		"state":   state.String(),
		"binding": out.Binding.String(),
	}).Info("hotkey capture finished")
	if c.cfg.OnDone != nil {
		c.cfg.OnDone(out)
	}
}
