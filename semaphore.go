package corewait

import (
	"context"
	"time"

	"github.com/arriqaaq/corewait/internal/opt"
)

// Semaphore is an unbounded counting semaphore. Apart from SetValue, its
// value only grows on Release and shrinks on a successful Acquire; nothing enforces an
// upper bound. Use BoundedSemaphore when over-release must be rejected.
//
// The zero value is not ready to use; construct with NewSemaphore.
type Semaphore struct {
	_       noCopy
	mu      TicketLock
	initial uint32
	value   uint32
	waiters waitQueue
	_       opt.Pad // keeps value/waiters off the cache line of whatever follows an embedding type
}

// NewSemaphore constructs a Semaphore with the given starting value.
func NewSemaphore(initialValue uint32) *Semaphore {
	return &Semaphore{initial: initialValue, value: initialValue}
}

// InitialValue returns the value the Semaphore was constructed with. It
// never changes.
func (s *Semaphore) InitialValue() uint32 {
	return s.initial
}

// Value returns a snapshot of the current permit count.
func (s *Semaphore) Value() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Waiting returns a snapshot of the number of parked tokens, including any
// not-yet-reaped cancellations.
func (s *Semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiters.len()
}

// SetValue forcibly overwrites the permit count, bypassing acquire/release
// bookkeeping. If waiters are parked and the new value is positive, as
// many of them as the new value allows are woken in FIFO order before the
// call returns, so the queue and the counter stay consistent with the
// no-barging invariant.
func (s *Semaphore) SetValue(v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	for s.value > 0 {
		t := s.waiters.popFront()
		if t == nil {
			break
		}
		t.state = tokClaimed
		t.event.Set()
		s.value--
	}
}

// fastAcquireLocked attempts the non-blocking path: mu must already be
// held. It succeeds only when a permit is available and, unless
// PerfectFairness has been disabled, no waiter is already parked ahead of
// this caller.
func (s *Semaphore) fastAcquireLocked() bool {
	if s.value == 0 {
		return false
	}
	if PerfectFairness && !s.waiters.empty() {
		return false
	}
	s.value--
	return true
}

// TryAcquire attempts to acquire a permit without blocking.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fastAcquireLocked()
}

// AcquireTimeout blocks the calling OS thread until a permit is available,
// or until timeout elapses if timeout is positive. A non-positive timeout
// blocks indefinitely.
func (s *Semaphore) AcquireTimeout(timeout time.Duration) bool {
	s.mu.Lock()
	if s.fastAcquireLocked() {
		s.mu.Unlock()
		return true
	}
	t := newToken(none, 1)
	s.waiters.pushBack(t)
	s.mu.Unlock()

	if t.event.WaitBlocking(timeout) {
		return true
	}
	return s.resolveAbandon(t)
}

// Acquire suspends the calling goroutine cooperatively until a permit is
// available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) bool {
	return s.acquireContext(ctx, false)
}

// AcquireShielded behaves like Acquire but ignores ctx cancellation for the
// duration of the wait itself; the caller remains responsible for honoring
// cancellation once this call returns.
func (s *Semaphore) AcquireShielded(ctx context.Context) bool {
	return s.acquireContext(ctx, true)
}

func (s *Semaphore) acquireContext(ctx context.Context, shield bool) bool {
	s.mu.Lock()
	if s.fastAcquireLocked() {
		s.mu.Unlock()
		return true
	}
	t := newToken(none, 1)
	s.waiters.pushBack(t)
	s.mu.Unlock()

	if t.event.WaitContext(ctx, shield) {
		return true
	}
	return s.resolveAbandon(t)
}

// resolveAbandon is called after a timed-out or cancelled wait on t. It
// re-examines t under mu, which is the same lock a concurrent Release uses
// to pop and hand off tokens, so the two can never race: either t is still
// queued (genuine abandonment, nothing to compensate) or a Release already
// popped it and handed it a permit before the abandon could land. In the
// latter case the caller is walking away regardless, so the permit is
// re-released to the next waiter (or credited back) rather than kept, and
// abandonment still wins.
func (s *Semaphore) resolveAbandon(t *token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waiters.remove(t) {
		t.state = tokCancelled
		return false
	}
	s.releaseUnit()
	return false
}

// releaseUnit hands off a single permit to the head waiter if one is
// queued, otherwise credits the counter. mu must already be held.
func (s *Semaphore) releaseUnit() {
	if t := s.waiters.popFront(); t != nil {
		t.state = tokClaimed
		t.event.Set()
		return
	}
	s.value++
}

// Release credits one permit, or hands it directly to the longest-waiting
// parked token if one exists.
func (s *Semaphore) Release() error {
	return s.ReleaseN(1)
}

// ReleaseN performs count independent releases. The unbounded Semaphore
// never fails: every unit either lands on a waiter or increments value.
func (s *Semaphore) ReleaseN(count uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := uint32(0); i < count; i++ {
		s.releaseUnit()
	}
	return nil
}

// GobEncode refuses to serialize the semaphore: these primitives are
// process-local.
func (s *Semaphore) GobEncode() ([]byte, error) {
	return nil, ErrStateCapture
}

// MarshalJSON refuses to serialize the semaphore: these primitives are
// process-local.
func (s *Semaphore) MarshalJSON() ([]byte, error) {
	return nil, ErrStateCapture
}
