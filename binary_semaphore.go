package corewait

// BinarySemaphore is a Semaphore conventionally constructed with an
// initial value of 0 or 1. It imposes no extra restriction beyond that
// convention: ReleaseN with an explicit count greater than 1 is still
// honored unit-by-unit, exactly like the base Semaphore.
type BinarySemaphore struct {
	Semaphore
}

// NewBinarySemaphore constructs a BinarySemaphore. initialValue is
// expected to be 0 or 1, though this is a convention, not an enforced
// invariant, for the unbounded form.
func NewBinarySemaphore(initialValue uint32) *BinarySemaphore {
	return &BinarySemaphore{Semaphore: Semaphore{initial: initialValue, value: initialValue}}
}

// BoundedBinarySemaphore is a BoundedSemaphore with MaxValue fixed at 1.
// Releasing it while already unlocked (value already 1) raises an
// OverflowError, since ReleaseN is restricted to count 0 or 1 by
// BoundedSemaphore and the bound is 1.
type BoundedBinarySemaphore struct {
	BoundedSemaphore
}

// NewBoundedBinarySemaphore constructs a BoundedBinarySemaphore.
// initialValue must be 0 or 1.
func NewBoundedBinarySemaphore(initialValue uint32) *BoundedBinarySemaphore {
	if initialValue > 1 {
		panic("corewait: binary semaphore initial_value must be 0 or 1")
	}
	return &BoundedBinarySemaphore{
		BoundedSemaphore: BoundedSemaphore{
			Semaphore: Semaphore{initial: initialValue, value: initialValue},
			maxValue:  1,
		},
	}
}
