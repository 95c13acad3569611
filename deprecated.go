package corewait

import "log"

// DeprecationLogger receives a message whenever a deprecated alias
// (PLock, BLock) is constructed. Set it to nil to silence these
// diagnostics entirely.
var DeprecationLogger = log.Printf

// PLock is a deprecated alias for BinarySemaphore, kept for callers
// migrating from an earlier naming scheme. It behaves identically to
// BinarySemaphore in every respect.
//
// Deprecated: use BinarySemaphore.
type PLock struct {
	BinarySemaphore
}

// NewPLock constructs a PLock with the given initial value.
//
// Deprecated: use NewBinarySemaphore.
func NewPLock(initialValue uint32) *PLock {
	if DeprecationLogger != nil {
		DeprecationLogger("corewait: PLock is deprecated, use BinarySemaphore")
	}
	return &PLock{BinarySemaphore: BinarySemaphore{Semaphore: Semaphore{initial: initialValue, value: initialValue}}}
}

// BLock is a deprecated alias for BoundedBinarySemaphore, kept for callers
// migrating from an earlier naming scheme. It behaves identically to
// BoundedBinarySemaphore in every respect.
//
// Deprecated: use BoundedBinarySemaphore.
type BLock struct {
	BoundedBinarySemaphore
}

// NewBLock constructs a BLock with the given initial value.
//
// Deprecated: use NewBoundedBinarySemaphore.
func NewBLock(initialValue uint32) *BLock {
	if DeprecationLogger != nil {
		DeprecationLogger("corewait: BLock is deprecated, use BoundedBinarySemaphore")
	}
	if initialValue > 1 {
		panic("corewait: binary semaphore initial_value must be 0 or 1")
	}
	return &BLock{
		BoundedBinarySemaphore: BoundedBinarySemaphore{
			BoundedSemaphore: BoundedSemaphore{
				Semaphore: Semaphore{initial: initialValue, value: initialValue},
				maxValue:  1,
			},
		},
	}
}
