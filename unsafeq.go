// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Unsafe is a lock-free Michael–Scott queue with no deferred
// reclamation: a sentinel detached by a winning head CAS is cleared and
// returned to the node pool immediately.
//
// This is an explicit, documented hazard. A consumer that read the same
// pre-CAS head snapshot before the winner committed may, after losing
// the race, still dereference the recycled node; and because recycling
// reuses pointer identities, a stale CAS can spuriously succeed against
// a reused node carrying the same address (the ABA problem). A lagging
// producer whose tail snapshot is detached and recycled mid-flight can
// likewise link onto a node that is no longer in the chain.
//
// Contract: single consumer only, or controlled benchmarking. Unsafe is
// a baseline for measuring what reclamation costs, not a general MPMC
// queue. Violating the contract corrupts the queue silently - it is a
// precondition on the caller, not a reportable runtime error.
type Unsafe[T any] struct {
	_      pad
	head   atomic.Pointer[node[T]]
	_      padShort
	tail   atomic.Pointer[node[T]]
	_      padShort
	length atomix.Int64
	_      padShort
	pool   *nodePool[T]
}

// NewUnsafe creates an empty queue with one sentinel.
func NewUnsafe[T any]() *Unsafe[T] {
	q := &Unsafe[T]{pool: newNodePool[T]()}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue adds an element at the logical tail (multiple producers safe).
//
// Tail repair is local-walk: when the link CAS loses a race, walk a
// local reference forward to the true last node and retry there; the
// shared tail is swung once, best-effort, after the link succeeds.
func (q *Unsafe[T]) Enqueue(elem *T) {
	n := q.pool.get(elem)

	oldTail := q.tail.Load()
	link := &oldTail.next
	sw := spin.Wait{}
	for !link.CompareAndSwap(nil, n) {
		// Another producer got there first. Step to the true last node
		// and retry the link there.
		last := link.Load()
		for {
			next := last.next.Load()
			if next == nil {
				break
			}
			last = next
		}
		link = &last.next
		sw.Once()
	}

	// Best-effort swing; a failed swing is repaired by a later walk.
	q.tail.CompareAndSwap(oldTail, n)

	// Structural link first, advisory counter second. Never the other
	// way around.
	q.length.Add(1)
}

// Dequeue removes and returns the oldest remaining element (single
// consumer only - see the type contract).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Unsafe[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		// Advisory fast path; re-validated structurally below.
		return zero, ErrWouldBlock
	}

	sw := spin.Wait{}
	for {
		head := q.head.Load()
		next := head.next.Load()

		if next == nil {
			return zero, ErrWouldBlock
		}

		if q.tail.Load() == head {
			// The tail lags on the node about to be detached; repair
			// it first so it never references a recycled node.
			q.tail.CompareAndSwap(head, next)
		}

		if q.head.CompareAndSwap(head, next) {
			// next is the new sentinel; the winner owns its payload.
			elem := next.item
			next.item = zero
			q.length.Add(-1)

			// Immediate recycle of the old sentinel. This is the
			// hazard: a loser of the CAS above may still hold head.
			q.pool.put(head)
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the advisory element count.
func (q *Unsafe[T]) Len() int {
	return int(q.length.Load())
}

// IsEmpty reports whether the advisory count currently reads zero.
func (q *Unsafe[T]) IsEmpty() bool {
	return q.length.Load() == 0
}
