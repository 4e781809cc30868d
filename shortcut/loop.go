package shortcut

import "context"

// Loop serializes hotkey work onto one goroutine. Raw events and posted
// closures are processed in arrival order, so the Listener, the Capture
// and the active binding are never touched concurrently.
type Loop struct {
	tasks chan func()
}

func NewLoop() *Loop {
	return &Loop{tasks: make(chan func(), 64)}
}

// Do queues fn to run on the loop. It does not wait.
func (lp *Loop) Do(fn func()) {
	lp.tasks <- fn
}

// Call queues fn and waits for it to finish, or for ctx to end.
func (lp *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case lp.tasks <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events and queued closures until ctx is cancelled. A nil
// or closed events channel only stops event delivery.
func (lp *Loop) Run(ctx context.Context, events <-chan RawEvent, handle func(RawEvent)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-lp.tasks:
			fn()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			handle(ev)
		}
	}
}
