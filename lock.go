package corewait

import (
	"context"
	"time"

	"github.com/arriqaaq/corewait/internal/opt"
)

// Lock is a non-reentrant, owner-tracked mutual-exclusion primitive.
// Re-acquiring it from the identity that already owns it is a programming
// error (ErrRecursion), not something that blocks; only the owner may
// Release it (ErrOwnership otherwise).
//
// The zero value is ready to use.
type Lock struct {
	_       noCopy
	mu      TicketLock
	owner   Identity
	waiters waitQueue
	_       opt.Pad
}

// NewLock constructs an unlocked Lock.
func NewLock() *Lock {
	return &Lock{}
}

// Locked reports whether the Lock is currently held.
func (l *Lock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner != none
}

// Owner returns the identity currently holding the Lock, if any.
func (l *Lock) Owner() (Identity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner == none {
		return Identity{}, false
	}
	return l.owner, true
}

// Owned reports whether the caller identified by ctx currently owns the
// Lock.
func (l *Lock) Owned(ctx context.Context) bool {
	return l.owned(currentIdentity(ctx))
}

// OwnedBlocking reports whether the calling goroutine currently owns the
// Lock.
func (l *Lock) OwnedBlocking() bool {
	return l.owned(CurrentGoroutine())
}

func (l *Lock) owned(id Identity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner == id
}

func (l *Lock) fastAcquireLocked(caller Identity) (acquired bool, err error) {
	if l.owner == none {
		l.owner = caller
		return true, nil
	}
	if l.owner == caller {
		return false, ErrRecursion
	}
	return false, nil
}

// TryAcquire attempts to acquire the Lock for the calling goroutine without
// blocking.
func (l *Lock) TryAcquire() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fastAcquireLocked(CurrentGoroutine())
}

// AcquireTimeout blocks the calling OS thread until the Lock is acquired,
// or until timeout elapses if timeout is positive.
func (l *Lock) AcquireTimeout(timeout time.Duration) (bool, error) {
	caller := CurrentGoroutine()
	l.mu.Lock()
	if ok, err := l.fastAcquireLocked(caller); ok || err != nil {
		l.mu.Unlock()
		return ok, err
	}
	t := newToken(caller, 1)
	l.waiters.pushBack(t)
	l.mu.Unlock()

	if t.event.WaitBlocking(timeout) {
		return true, nil
	}
	return l.resolveAbandon(t), nil
}

// Acquire suspends the calling goroutine cooperatively until the Lock is
// acquired or ctx is done. The caller's identity is taken from ctx via
// WithIdentity if present, otherwise from the calling goroutine.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	return l.acquireContext(ctx, false)
}

// AcquireShielded behaves like Acquire but ignores ctx cancellation for the
// duration of the wait itself.
func (l *Lock) AcquireShielded(ctx context.Context) (bool, error) {
	return l.acquireContext(ctx, true)
}

func (l *Lock) acquireContext(ctx context.Context, shield bool) (bool, error) {
	caller := currentIdentity(ctx)
	l.mu.Lock()
	if ok, err := l.fastAcquireLocked(caller); ok || err != nil {
		l.mu.Unlock()
		return ok, err
	}
	t := newToken(caller, 1)
	l.waiters.pushBack(t)
	l.mu.Unlock()

	if t.event.WaitContext(ctx, shield) {
		return true, nil
	}
	return l.resolveAbandon(t), nil
}

// resolveAbandon mirrors Semaphore.resolveAbandon: the same mutex that
// pops and hands off tokens on Release is re-acquired here, so an
// abandoning waiter can tell with certainty whether its token is still
// queued (genuine abandonment, nothing to compensate) or it lost the race
// to a concurrent handoff: a Release already popped it and reassigned
// ownership to it before the abandon could land. In the latter case the caller is walking away
// regardless, so ownership is handed off again to the next waiter (or
// cleared) rather than left with the caller, and abandonment still wins.
func (l *Lock) resolveAbandon(t *token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.waiters.remove(t) {
		t.state = tokCancelled
		return false
	}
	l.handoffLocked()
	return false
}

// Release releases the Lock on behalf of the calling goroutine. It returns
// ErrOwnership if the calling goroutine is not the current owner.
func (l *Lock) Release() error {
	return l.release(CurrentGoroutine())
}

// ReleaseContext releases the Lock on behalf of the identity carried by
// ctx (or the calling goroutine, absent an override). It returns
// ErrOwnership if that identity is not the current owner.
func (l *Lock) ReleaseContext(ctx context.Context) error {
	return l.release(currentIdentity(ctx))
}

func (l *Lock) release(caller Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner != caller {
		return ErrOwnership
	}
	l.handoffLocked()
	return nil
}

// handoffLocked assigns ownership to the next queued waiter, if any,
// otherwise clears it. mu must already be held.
func (l *Lock) handoffLocked() {
	if t := l.waiters.popFront(); t != nil {
		l.owner = t.owner
		t.state = tokClaimed
		t.event.Set()
		return
	}
	l.owner = none
}

// ParkToken is an opaque waiter created via NewParkToken, usable with
// Park, Unpark, and AfterPark so an external condition-variable
// implementation can splice its own waiters onto this Lock's queue
// without re-contending for the lock.
type ParkToken struct {
	tok *token
}

// NewParkToken creates a fresh, not-yet-enqueued waiter for owner.
func (l *Lock) NewParkToken(owner Identity) *ParkToken {
	return &ParkToken{tok: newToken(owner, 1)}
}

// Park enqueues pt onto this Lock's wait queue and blocks the caller
// cooperatively until pt is handed off via a normal Release or via
// Unpark, or until ctx is done.
func (l *Lock) Park(ctx context.Context, pt *ParkToken) bool {
	l.mu.Lock()
	l.waiters.pushBack(pt.tok)
	l.mu.Unlock()

	if pt.tok.event.WaitContext(ctx, false) {
		return true
	}
	return l.resolveAbandon(pt.tok)
}

// Unpark hands ownership directly to pt's owner, without requiring pt to
// be at the head of the queue. A condition variable uses this to wake one
// of its migrated waiters directly rather than letting it re-contend.
func (l *Lock) Unpark(pt *ParkToken) {
	l.mu.Lock()
	l.waiters.remove(pt.tok)
	pt.tok.state = tokClaimed
	l.owner = pt.tok.owner
	l.mu.Unlock()
	pt.tok.event.Set()
}

// AfterPark reasserts ownership bookkeeping for a ParkToken that woke via
// Unpark rather than through Acquire's own bookkeeping.
func (l *Lock) AfterPark(pt *ParkToken) {
	l.mu.Lock()
	l.owner = pt.tok.owner
	l.mu.Unlock()
}

// GobEncode refuses to serialize the lock: it is process-local.
func (l *Lock) GobEncode() ([]byte, error) {
	return nil, ErrStateCapture
}

// MarshalJSON refuses to serialize the lock: it is process-local.
func (l *Lock) MarshalJSON() ([]byte, error) {
	return nil, ErrStateCapture
}
