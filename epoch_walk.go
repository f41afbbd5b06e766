// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"code.hybscloud.com/llq/internal/epoch"
)

// EpochWalk is [Epoch] with the local-walk push tail-repair strategy.
//
// A producer that loses the link CAS walks a purely local reference
// forward to the true last node and retries the link there; the shared
// tail is swung once, best-effort, after its own link succeeds. Under
// heavy producer contention the walk trades shared-tail write traffic
// for longer private traversals.
//
// The two strategies are linearizable and externally indistinguishable;
// they differ only in contention behavior. Everything else - the epoch
// guard protocol, deferred recycling, the external contract - is
// identical to [Epoch].
//
// Safe for any number of producers and consumers.
type EpochWalk[T any] struct {
	_      pad
	head   atomic.Pointer[node[T]]
	_      padShort
	tail   atomic.Pointer[node[T]]
	_      padShort
	length atomix.Int64
	_      padShort
	pool   *nodePool[T]
	free   func(any)
}

// NewEpochWalk creates an empty queue with one sentinel.
func NewEpochWalk[T any]() *EpochWalk[T] {
	q := &EpochWalk[T]{pool: newNodePool[T]()}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	q.free = func(v any) { q.pool.put(v.(*node[T])) }
	return q
}

// Enqueue adds an element at the logical tail (multiple producers safe).
func (q *EpochWalk[T]) Enqueue(elem *T) {
	g := epoch.Pin()
	n := q.pool.get(elem)

	oldTail := q.tail.Load()
	link := &oldTail.next
	sw := spin.Wait{}
	for !link.CompareAndSwap(nil, n) {
		// Another producer got there first. Walk a local reference to
		// the true last node and retry the link there; the shared tail
		// is left alone until the link lands.
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

	// Single best-effort swing from the original snapshot.
	q.tail.CompareAndSwap(oldTail, n)

	q.length.Add(1)
	g.Unpin()
}

// Dequeue removes and returns the oldest remaining element (multiple
// consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *EpochWalk[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrWouldBlock
	}

	g := epoch.Pin()
	sw := spin.Wait{}
	for {
		head := q.head.Load()
		next := head.next.Load()

		if next == nil {
			g.Unpin()
			return zero, ErrWouldBlock
		}

		if q.tail.Load() == head {
			q.tail.CompareAndSwap(head, next)
		}

		if q.head.CompareAndSwap(head, next) {
			// Payload extraction strictly after the winning CAS: only
			// the winner may take it, so it can never be re-taken.
			elem := next.item
			next.item = zero
			q.length.Add(-1)

			g.Defer(head, q.free)
			g.Unpin()
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the advisory element count.
func (q *EpochWalk[T]) Len() int {
	return int(q.length.Load())
}

// IsEmpty reports whether the advisory count currently reads zero.
func (q *EpochWalk[T]) IsEmpty() bool {
	return q.length.Load() == 0
}
