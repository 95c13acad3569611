package opt

import (
	_ "unsafe" // for go:linkname
)

// Sema is a zero-allocation semaphore optimized for the hot
// path of a parked wait. It is a direct wrapper around the runtime's own
// semaphore implementation (the same one backing sync.Mutex), so acquiring
// and releasing it never allocates and never touches the goroutine
// scheduler's channel machinery.
type Sema uint32

// Acquire blocks the calling goroutine until a matching Release call.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes one goroutine blocked in Acquire, if any; otherwise it
// leaves a permit for the next Acquire call to consume immediately.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//nolint:all
//
//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//nolint:all
//
//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
