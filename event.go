package corewait

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/arriqaaq/corewait/internal/opt"
)

// Event is a one-shot wakeup latch bridging a blocking thread and a
// cooperative task. Exactly one party calls Set; exactly one party calls
// one of the Wait variants. An Event is used once: create a fresh one per
// parked token, never reuse after Set.
//
// It is the single coupling point between the two scheduling worlds this
// package unifies: WaitBlocking parks an OS thread, WaitContext suspends a
// goroutine cooperatively on ctx.Done, and both are satisfied by the same
// Set call. An untimed WaitBlocking never needs to select against a timer
// or ctx.Done, so it bypasses the channel entirely and parks on an
// internal opt.Sema instead, the same zero-allocation runtime semaphore a
// sync.Mutex blocks on.
type Event struct {
	_    noCopy
	done chan struct{}
	sema opt.Sema
	set  atomic.Bool
}

// newEvent returns a fresh, unset Event ready to be parked on.
func newEvent() *Event {
	return &Event{done: make(chan struct{})}
}

// Set wakes the waiter, if any, and marks the Event permanently fired.
// Calling Set more than once is safe; only the first call has any effect.
func (e *Event) Set() {
	if e.set.CompareAndSwap(false, true) {
		close(e.done)
		e.sema.Release()
	}
}

// IsSet reports whether Set has already been called.
func (e *Event) IsSet() bool {
	return e.set.Load()
}

// WaitBlocking blocks the calling OS thread until Set is called, or until
// timeout elapses if timeout is positive; a non-positive timeout blocks
// indefinitely. It returns true iff the Event was set before the deadline.
func (e *Event) WaitBlocking(timeout time.Duration) bool {
	if timeout <= 0 {
		e.sema.Acquire()
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-e.done:
		return true
	case <-timer.C:
		return false
	}
}

// WaitContext suspends the calling goroutine cooperatively until Set is
// called, or until ctx is done. If shield is true, ctx cancellation is
// ignored for the duration of this call and only Set is observed; the
// caller remains responsible for honoring cancellation afterward.
func (e *Event) WaitContext(ctx context.Context, shield bool) bool {
	if shield {
		<-e.done
		return true
	}
	select {
	case <-e.done:
		return true
	case <-ctx.Done():
		return false
	}
}
