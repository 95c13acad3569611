package corewait

import "fmt"

// BoundedSemaphore caps value at maxValue. A release that would push value
// past the bound is rejected with an OverflowError and leaves all state
// unchanged, distinguishing a mis-counted release (a bug) from an
// uncontested over-release, which the unbounded Semaphore silently allows.
//
// Unlike the unbounded Semaphore, ReleaseN on a BoundedSemaphore only
// accepts count 0 or 1: the bound makes a multi-unit release ambiguous
// about which unit, if any, should be the one that overflows.
type BoundedSemaphore struct {
	Semaphore
	maxValue uint32
}

// NewBoundedSemaphore constructs a BoundedSemaphore. initialValue must not
// exceed maxValue.
func NewBoundedSemaphore(initialValue, maxValue uint32) *BoundedSemaphore {
	if initialValue > maxValue {
		panic("corewait: initial_value must be <= max_value")
	}
	return &BoundedSemaphore{
		Semaphore: Semaphore{initial: initialValue, value: initialValue},
		maxValue:  maxValue,
	}
}

// MaxValue returns the upper bound on value.
func (b *BoundedSemaphore) MaxValue() uint32 {
	return b.maxValue
}

// Release is equivalent to ReleaseN(1).
func (b *BoundedSemaphore) Release() error {
	return b.ReleaseN(1)
}

// ReleaseN accepts only count 0 or 1. It hands the permit directly to a
// parked waiter when one exists; otherwise it credits value, or returns an
// *OverflowError and leaves value unchanged if that would exceed
// MaxValue().
func (b *BoundedSemaphore) ReleaseN(count uint32) error {
	if count > 1 {
		return fmt.Errorf("corewait: bounded semaphore release count must be 0 or 1, got %d", count)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if count == 0 {
		return nil
	}
	if t := b.waiters.popFront(); t != nil {
		t.state = tokClaimed
		t.event.Set()
		return nil
	}
	if b.value+1 > b.maxValue {
		return newOverflowError(b.value, b.maxValue)
	}
	b.value++
	return nil
}

// SetValue forcibly overwrites the permit count and wakes as many waiters
// as the new value allows. It does not clamp: it panics if v exceeds
// MaxValue(), mirroring the construction-time invariant.
func (b *BoundedSemaphore) SetValue(v uint32) {
	if v > b.maxValue {
		panic("corewait: value must be <= max_value")
	}
	b.Semaphore.SetValue(v)
}
