// Package corewait provides counting and mutual-exclusion primitives that
// unify blocking-goroutine and cooperative-context-cancelable waiters
// behind a single fair wait queue.
//
// Every primitive exposes two calling conventions for each operation: a
// blocking-thread form (TryAcquire, AcquireTimeout) that parks the calling
// goroutine with an optional time.Duration bound, and a cooperative form
// (Acquire(ctx), AcquireShielded(ctx)) that suspends on a context.Context
// instead. Both forms contend for the same underlying fair FIFO queue, so
// a goroutine using one convention never barges ahead of a goroutine
// parked using the other.
package corewait
