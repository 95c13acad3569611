package corewait

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the primitives in this package. Each aborts
// the failing call without mutating any observable state.
var (
	// ErrOwnership is returned when Release is called by an identity that
	// does not own the Lock or RLock.
	ErrOwnership = errors.New("corewait: release by non-owner")

	// ErrRecursion is returned when a non-reentrant Lock is acquired
	// again by its current owner.
	ErrRecursion = errors.New("corewait: lock is not reentrant, caller already owns it")

	// ErrUnderflow is returned when an RLock release count exceeds the
	// current recursion counter.
	ErrUnderflow = errors.New("corewait: release count exceeds recursion count")

	// ErrStateCapture is returned by the serialization-refusal methods on
	// every primitive in this package: these types are process-local and
	// must never be marshalled.
	ErrStateCapture = errors.New("corewait: primitive state cannot be serialized")
)

// OverflowError reports that a bounded semaphore's release would have
// pushed value past max_value. Apart from the count check in
// BoundedSemaphore.ReleaseN, which rejects a count above 1 with a plain
// error, it is the sole release-time error for the bounded variants.
type OverflowError struct {
	Value    uint32
	MaxValue uint32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("corewait: release would overflow bound: value=%d max_value=%d", e.Value, e.MaxValue)
}

// Is allows errors.Is(err, &OverflowError{}) style matching against any
// OverflowError regardless of its field values.
func (e *OverflowError) Is(target error) bool {
	_, ok := target.(*OverflowError)
	return ok
}

func newOverflowError(value, max uint32) *OverflowError {
	return &OverflowError{Value: value, MaxValue: max}
}
