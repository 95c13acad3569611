package corewait

// PerfectFairness toggles whether the fast path in Acquire inspects the
// wait queue before touching the counter. True (the default) means the
// fast path always checks: a permit is only taken directly when both
// value > 0 and the queue is empty, so a late arriver can never barge
// ahead of a parked waiter. False makes the fast path take a permit
// whenever value > 0 without looking at the queue, trading strict FIFO
// for a cheaper check.
//
// This is a package-level deployment knob, not a per-primitive option: it
// is expected to be set once at process startup, if at all.
var PerfectFairness = true
