package shortcut

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopCallOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan RawEvent)
	var handled int
	lp := NewLoop()
	done := make(chan error, 1)
	go func() { done <- lp.Run(ctx, events, func(RawEvent) { handled++ }) }()

	var order []int
	for i := 0; i < 3; i++ {
		lp.Do(func() { order = append(order, i) })
	}
	events <- press(KeyK, ModCommand)
	events <- press(KeyS, ModCommand)

	var snapshot []int
	var seen int
	if err := lp.Call(ctx, func() {
		snapshot = append(snapshot, order...)
		seen = handled
	}); err != nil {
		t.Fatal(err)
	}
	if len(snapshot) != 3 || snapshot[0] != 0 || snapshot[2] != 2 {
		t.Fatalf("order = %v", snapshot)
	}
	if seen != 2 {
		t.Fatalf("handled = %d, want 2", seen)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoopClosedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan RawEvent)
	close(events)
	lp := NewLoop()
	go lp.Run(ctx, events, func(RawEvent) {})

	ran := false
	if err := lp.Call(ctx, func() { ran = true }); err != nil || !ran {
		t.Fatalf("Call() = %v, ran=%v", err, ran)
	}
}

func TestLoopCallCancelled(t *testing.T) {
	lp := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	// nothing runs the loop
	if err := lp.Call(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Call() = %v", err)
	}
}
