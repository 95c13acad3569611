package corewait

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphoreBasic(t *testing.T) {
	s := NewSemaphore(1)
	if !s.TryAcquire() {
		t.Fatal("expected TryAcquire to succeed")
	}
	if s.TryAcquire() {
		t.Fatal("expected TryAcquire to fail when no permits remain")
	}
	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !s.TryAcquire() {
		t.Fatal("expected TryAcquire to succeed after release")
	}
}

func TestSemaphoreConcurrent(t *testing.T) {
	s := NewSemaphore(3)
	const n = 30
	var wg sync.WaitGroup
	wg.Add(n)
	var counter int64
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.AcquireTimeout(0)
			atomic.AddInt64(&counter, 1)
			time.Sleep(time.Millisecond)
			s.Release()
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
	if v := s.Value(); v != 3 {
		t.Fatalf("final value = %d, want 3", v)
	}
}

// S1: Semaphore(2); three tasks acquire; first two succeed immediately,
// third parks. One release: third unblocks. value=0, waiting=0.
func TestSemaphoreScenarioS1(t *testing.T) {
	s := NewSemaphore(2)
	if !s.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if !s.TryAcquire() {
		t.Fatal("second acquire should succeed")
	}

	thirdDone := make(chan struct{})
	go func() {
		s.AcquireTimeout(0)
		close(thirdDone)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-thirdDone:
		t.Fatal("third acquire should have parked")
	default:
	}
	if w := s.Waiting(); w != 1 {
		t.Fatalf("waiting = %d, want 1", w)
	}

	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	select {
	case <-thirdDone:
	case <-time.After(time.Second):
		t.Fatal("third acquire never unblocked")
	}

	if v := s.Value(); v != 0 {
		t.Fatalf("value = %d, want 0", v)
	}
	if w := s.Waiting(); w != 0 {
		t.Fatalf("waiting = %d, want 0", w)
	}
}

// S5: Semaphore(0); A1 then A2 park in order; single release(); A1
// unblocks, A2 still parked.
func TestSemaphoreScenarioS5(t *testing.T) {
	s := NewSemaphore(0)
	a1Done := make(chan struct{})
	a2Done := make(chan struct{})

	go func() {
		s.AcquireTimeout(0)
		close(a1Done)
	}()
	time.Sleep(10 * time.Millisecond)
	go func() {
		s.AcquireTimeout(0)
		close(a2Done)
	}()
	time.Sleep(10 * time.Millisecond)

	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	select {
	case <-a1Done:
	case <-time.After(time.Second):
		t.Fatal("A1 never unblocked")
	}

	select {
	case <-a2Done:
		t.Fatal("A2 should still be parked")
	case <-time.After(20 * time.Millisecond):
	}
}

// S6: Semaphore(0); A1 parks with timeout 10ms; after 10ms A1 returns
// false; subsequent release() increments value to 1 (handoff attempt
// skips the cancelled token).
func TestSemaphoreScenarioS6(t *testing.T) {
	s := NewSemaphore(0)
	if ok := s.AcquireTimeout(10 * time.Millisecond); ok {
		t.Fatal("expected timeout")
	}
	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if v := s.Value(); v != 1 {
		t.Fatalf("value = %d, want 1", v)
	}
}

func TestSemaphoreNoBarging(t *testing.T) {
	s := NewSemaphore(0)
	order := make(chan int, 2)

	go func() {
		s.AcquireTimeout(0)
		order <- 1
	}()
	time.Sleep(10 * time.Millisecond)

	barged := make(chan bool, 1)
	go func() {
		barged <- s.TryAcquire()
	}()
	if ok := <-barged; ok {
		t.Fatal("TryAcquire should not barge past a parked waiter")
	}

	s.Release()
	select {
	case v := <-order:
		if v != 1 {
			t.Fatalf("unexpected waiter order value %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("parked waiter never unblocked")
	}
}

func TestSemaphoreAcquireContextCancel(t *testing.T) {
	s := NewSemaphore(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if s.Acquire(ctx) {
		t.Fatal("expected Acquire to observe context deadline")
	}
	if v := s.Value(); v != 0 {
		t.Fatalf("value = %d, want 0 after abandoned acquire", v)
	}
	if w := s.Waiting(); w != 0 {
		t.Fatalf("waiting = %d, want 0 after abandoned acquire", w)
	}
}

func TestSemaphoreAcquireShieldedIgnoresCancel(t *testing.T) {
	s := NewSemaphore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan bool, 1)
	go func() {
		done <- s.AcquireShielded(ctx)
	}()

	select {
	case <-done:
		t.Fatal("shielded acquire returned before release despite cancelled context")
	case <-time.After(10 * time.Millisecond):
	}

	s.Release()
	if ok := <-done; !ok {
		t.Fatal("shielded acquire should have succeeded on release")
	}
}

func TestSemaphoreSetValueWakesWaiters(t *testing.T) {
	s := NewSemaphore(0)
	done := make(chan struct{})
	go func() {
		s.AcquireTimeout(time.Second)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)

	s.SetValue(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetValue did not wake the waiter")
	}
	if v := s.Value(); v != 0 {
		t.Fatalf("value = %d, want 0 (consumed by handoff)", v)
	}
}

func TestSemaphoreReleaseNMultiple(t *testing.T) {
	s := NewSemaphore(0)
	if err := s.ReleaseN(3); err != nil {
		t.Fatalf("ReleaseN: %v", err)
	}
	if v := s.Value(); v != 3 {
		t.Fatalf("value = %d, want 3", v)
	}
}

// Pins the handoff-vs-cancel race resolveAbandon must arbitrate: a
// Release pops and claims the token before the waiter gets a chance to
// abandon it. The permit must be re-released, not kept, and resolveAbandon
// must still report abandonment.
func TestSemaphoreResolveAbandonAfterConcurrentHandoff(t *testing.T) {
	s := NewSemaphore(0)
	tok := newToken(none, 1)
	s.mu.Lock()
	s.waiters.pushBack(tok)
	s.mu.Unlock()

	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !tok.event.IsSet() {
		t.Fatal("expected Release to have already claimed the token")
	}

	if abandoned := s.resolveAbandon(tok); abandoned {
		t.Fatal("resolveAbandon should report abandonment even though the permit was already handed to this token")
	}
	if v := s.Value(); v != 1 {
		t.Fatalf("value = %d, want 1 (permit re-released after abandon)", v)
	}
	if w := s.Waiting(); w != 0 {
		t.Fatalf("waiting = %d, want 0", w)
	}
}

// Same race as above, but a second waiter is parked behind the abandoning
// one: the re-released permit must go to it rather than sit in value.
func TestSemaphoreResolveAbandonAfterHandoffWakesNextWaiter(t *testing.T) {
	s := NewSemaphore(0)
	abandoning := newToken(none, 1)
	s.mu.Lock()
	s.waiters.pushBack(abandoning)
	s.mu.Unlock()

	if err := s.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	next := newToken(none, 1)
	s.mu.Lock()
	s.waiters.pushBack(next)
	s.mu.Unlock()

	if abandoned := s.resolveAbandon(abandoning); abandoned {
		t.Fatal("resolveAbandon should report abandonment")
	}
	if !next.event.IsSet() {
		t.Fatal("re-released permit should have been handed to the next waiter")
	}
	if v := s.Value(); v != 0 {
		t.Fatalf("value = %d, want 0 (permit handed off, not credited)", v)
	}
}

func TestSemaphoreSerializationRefused(t *testing.T) {
	s := NewSemaphore(1)
	if _, err := s.GobEncode(); err != ErrStateCapture {
		t.Fatalf("GobEncode error = %v, want ErrStateCapture", err)
	}
	if _, err := s.MarshalJSON(); err != ErrStateCapture {
		t.Fatalf("MarshalJSON error = %v, want ErrStateCapture", err)
	}
}
