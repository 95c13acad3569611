package corewait

// waitQueue is an intrusive doubly-linked FIFO of tokens. It carries no
// lock of its own: callers mutate it under the short critical section that
// also protects the owning primitive's counters, so a single mutex
// serializes both the queue and the count it guards. This is what makes
// the cancellation-vs-handoff race in popFront/remove resolvable by
// ownership of that mutex rather than by a lock-free CAS dance on the
// token itself.
type waitQueue struct {
	head, tail *token
	length     int
}

func (q *waitQueue) pushBack(t *token) {
	t.prev = q.tail
	t.next = nil
	if q.tail != nil {
		q.tail.next = t
	} else {
		q.head = t
	}
	q.tail = t
	q.length++
}

// popFront removes and returns the oldest non-cancelled token, dropping
// any cancelled tokens found at the head along the way. It returns nil if
// the queue holds no live token.
func (q *waitQueue) popFront() *token {
	for {
		t := q.head
		if t == nil {
			return nil
		}
		q.unlink(t)
		if t.state == tokCancelled {
			continue
		}
		return t
	}
}

// remove unlinks t from the queue if it is still present. It reports
// whether t was found (and thus removed) still queued.
func (q *waitQueue) remove(t *token) bool {
	// popFront unlinks a token without changing its state, so tokQueued
	// alone does not prove membership: a linked token either has a
	// predecessor or is the head.
	if t.state != tokQueued || (t.prev == nil && q.head != t) {
		return false
	}
	q.unlink(t)
	return true
}

func (q *waitQueue) unlink(t *token) {
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		q.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		q.tail = t.prev
	}
	t.prev, t.next = nil, nil
	q.length--
}

func (q *waitQueue) empty() bool {
	return q.head == nil
}

func (q *waitQueue) len() int {
	return q.length
}
