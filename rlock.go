package corewait

import (
	"context"
	"sync"
	"time"
)

// RLock is a reentrant mutual-exclusion primitive built on top of Lock.
// The identity that currently holds it may acquire it again without
// blocking; each such re-acquisition increments a recursion counter that
// must be unwound with an equal number of releases before the underlying
// Lock is actually released and handed off to the next waiter.
type RLock struct {
	_     noCopy
	mu    sync.Mutex
	lock  *Lock
	count uint32
}

// NewRLock constructs an unlocked RLock.
func NewRLock() *RLock {
	return &RLock{lock: NewLock()}
}

// Count returns the current recursion count. It is only meaningful while
// the RLock is held.
func (r *RLock) Count() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Locked reports whether the RLock is currently held.
func (r *RLock) Locked() bool {
	return r.lock.Locked()
}

// Owner returns the identity currently holding the RLock, if any.
func (r *RLock) Owner() (Identity, bool) {
	return r.lock.Owner()
}

// Owned reports whether the caller identified by ctx currently owns the
// RLock.
func (r *RLock) Owned(ctx context.Context) bool {
	return r.lock.Owned(ctx)
}

// OwnedBlocking reports whether the calling goroutine currently owns the
// RLock.
func (r *RLock) OwnedBlocking() bool {
	return r.lock.OwnedBlocking()
}

// TryAcquire is equivalent to TryAcquireN(1).
func (r *RLock) TryAcquire() (bool, error) {
	return r.TryAcquireN(1)
}

// TryAcquireN attempts to acquire the RLock, recursively if the calling
// goroutine already owns it, without blocking.
func (r *RLock) TryAcquireN(count uint32) (bool, error) {
	if r.lock.OwnedBlocking() {
		r.addCount(count)
		return true, nil
	}
	ok, err := r.lock.TryAcquire()
	if err != nil || !ok {
		return false, err
	}
	r.setCount(count)
	return true, nil
}

// AcquireTimeout is equivalent to AcquireTimeoutN(timeout, 1).
func (r *RLock) AcquireTimeout(timeout time.Duration) (bool, error) {
	return r.AcquireTimeoutN(timeout, 1)
}

// AcquireTimeoutN blocks the calling OS thread until the RLock is
// acquired, recursively if already owned by this goroutine, or until
// timeout elapses if positive.
func (r *RLock) AcquireTimeoutN(timeout time.Duration, count uint32) (bool, error) {
	if r.lock.OwnedBlocking() {
		r.addCount(count)
		return true, nil
	}
	ok, err := r.lock.AcquireTimeout(timeout)
	if err != nil || !ok {
		return false, err
	}
	r.setCount(count)
	return true, nil
}

// Acquire is equivalent to AcquireN(ctx, 1).
func (r *RLock) Acquire(ctx context.Context) (bool, error) {
	return r.acquireContextN(ctx, 1, false)
}

// AcquireN suspends the calling goroutine cooperatively until the RLock is
// acquired, recursively if the identity carried by ctx already owns it.
func (r *RLock) AcquireN(ctx context.Context, count uint32) (bool, error) {
	return r.acquireContextN(ctx, count, false)
}

// AcquireShielded is equivalent to AcquireShieldedN(ctx, 1).
func (r *RLock) AcquireShielded(ctx context.Context) (bool, error) {
	return r.acquireContextN(ctx, 1, true)
}

// AcquireShieldedN behaves like AcquireN but ignores ctx cancellation for
// the duration of the underlying wait.
func (r *RLock) AcquireShieldedN(ctx context.Context, count uint32) (bool, error) {
	return r.acquireContextN(ctx, count, true)
}

func (r *RLock) acquireContextN(ctx context.Context, count uint32, shield bool) (bool, error) {
	if r.lock.Owned(ctx) {
		r.addCount(count)
		return true, nil
	}
	var ok bool
	var err error
	if shield {
		ok, err = r.lock.AcquireShielded(ctx)
	} else {
		ok, err = r.lock.Acquire(ctx)
	}
	if err != nil || !ok {
		return false, err
	}
	r.setCount(count)
	return true, nil
}

// Release is equivalent to ReleaseN(1).
func (r *RLock) Release() error {
	return r.ReleaseN(1)
}

// ReleaseN releases count levels of recursion on behalf of the calling
// goroutine. Once the recursion counter reaches zero the underlying Lock
// is actually released and handed off to the next waiter, if any.
func (r *RLock) ReleaseN(count uint32) error {
	return r.releaseN(CurrentGoroutine(), count)
}

// ReleaseContext is equivalent to ReleaseContextN(ctx, 1).
func (r *RLock) ReleaseContext(ctx context.Context) error {
	return r.ReleaseContextN(ctx, 1)
}

// ReleaseContextN releases count levels of recursion on behalf of the
// identity carried by ctx.
func (r *RLock) ReleaseContextN(ctx context.Context, count uint32) error {
	return r.releaseN(currentIdentity(ctx), count)
}

func (r *RLock) releaseN(caller Identity, count uint32) error {
	if !r.lock.owned(caller) {
		return ErrOwnership
	}
	r.mu.Lock()
	if count > r.count {
		r.mu.Unlock()
		return ErrUnderflow
	}
	r.count -= count
	remaining := r.count
	r.mu.Unlock()
	if remaining == 0 {
		return r.lock.release(caller)
	}
	return nil
}

func (r *RLock) addCount(count uint32) {
	r.mu.Lock()
	r.count += count
	r.mu.Unlock()
}

func (r *RLock) setCount(count uint32) {
	r.mu.Lock()
	r.count = count
	r.mu.Unlock()
}

// GobEncode refuses to serialize the lock: it is process-local.
func (r *RLock) GobEncode() ([]byte, error) {
	return nil, ErrStateCapture
}

// MarshalJSON refuses to serialize the lock: it is process-local.
func (r *RLock) MarshalJSON() ([]byte, error) {
	return nil, ErrStateCapture
}
