package corewait

import (
	"context"
	"testing"
	"time"
)

func TestEventSetThenWait(t *testing.T) {
	e := newEvent()
	e.Set()
	if !e.WaitBlocking(time.Second) {
		t.Fatal("WaitBlocking returned false after Set")
	}
}

func TestEventWaitThenSet(t *testing.T) {
	e := newEvent()
	done := make(chan bool, 1)
	go func() {
		done <- e.WaitBlocking(0)
	}()
	time.Sleep(10 * time.Millisecond)
	e.Set()
	if ok := <-done; !ok {
		t.Fatal("WaitBlocking returned false after Set")
	}
}

func TestEventWaitBlockingTimeout(t *testing.T) {
	e := newEvent()
	start := time.Now()
	if e.WaitBlocking(10 * time.Millisecond) {
		t.Fatal("expected timeout, WaitBlocking returned true")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("WaitBlocking returned too early: %v", elapsed)
	}
}

func TestEventSetIdempotent(t *testing.T) {
	e := newEvent()
	e.Set()
	e.Set()
	if !e.IsSet() {
		t.Fatal("expected IsSet true after Set")
	}
}

func TestEventWaitContextCancel(t *testing.T) {
	e := newEvent()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if e.WaitContext(ctx, false) {
		t.Fatal("expected WaitContext to observe cancellation")
	}
}

func TestEventWaitContextShieldIgnoresCancel(t *testing.T) {
	e := newEvent()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan bool, 1)
	go func() {
		done <- e.WaitContext(ctx, true)
	}()

	select {
	case <-done:
		t.Fatal("shielded wait returned before Set despite cancelled context")
	case <-time.After(10 * time.Millisecond):
	}

	e.Set()
	if ok := <-done; !ok {
		t.Fatal("shielded wait did not observe Set")
	}
}
