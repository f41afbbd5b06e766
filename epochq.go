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

// Epoch is a lock-free Michael–Scott queue with epoch-deferred node
// recycling and helper tail repair.
//
// Every Enqueue and Dequeue brackets its shared-reference window in an
// epoch guard. A sentinel detached by a winning head CAS is registered
// with the collector instead of being recycled synchronously; it
// returns to the node pool only once every guard opened before the
// detachment has closed. No goroutine can ever observe a recycled node
// through a stale snapshot, which removes the use-after-free and ABA
// hazard classes of [Unsafe] at the cost of bounded extra memory and
// per-operation guard overhead.
//
// Tail repair is the helper strategy: a producer that loses the link
// CAS swings the shared tail to the observed next node before retrying,
// so lagging producers converge together. [EpochWalk] offers the
// local-walk alternative under an identical external contract.
//
// Safe for any number of producers and consumers.
type Epoch[T any] struct {
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

// NewEpoch creates an empty queue with one sentinel.
func NewEpoch[T any]() *Epoch[T] {
	q := &Epoch[T]{pool: newNodePool[T]()}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	q.free = func(v any) { q.pool.put(v.(*node[T])) }
	return q
}

// Enqueue adds an element at the logical tail (multiple producers safe).
func (q *Epoch[T]) Enqueue(elem *T) {
	g := epoch.Pin()
	n := q.pool.get(elem)

	var tail *node[T]
	sw := spin.Wait{}
	for {
		tail = q.tail.Load()
		if tail.next.CompareAndSwap(nil, n) {
			break
		}
		// Lost the link race. Help the lagging tail forward and
		// re-read; the loser of a swing race converges all the same.
		next := tail.next.Load()
		q.tail.CompareAndSwap(tail, next)
		sw.Once()
	}

	// Best-effort swing to the node just linked.
	q.tail.CompareAndSwap(tail, n)

	// Structural link first, advisory counter second.
	q.length.Add(1)
	g.Unpin()
}

// Dequeue removes and returns the oldest remaining element (multiple
// consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Epoch[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		// Advisory fast path; re-validated structurally below.
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
			// The tail lags on the node about to be detached; repair
			// it first so the chain root never references a retired
			// node.
			q.tail.CompareAndSwap(head, next)
		}

		if q.head.CompareAndSwap(head, next) {
			// next is the new sentinel; the winner owns its payload.
			elem := next.item
			next.item = zero
			q.length.Add(-1)

			// The old sentinel is detached but possibly still held by
			// losers of the CAS above; recycle it via the collector.
			g.Defer(head, q.free)
			g.Unpin()
			return elem, nil
		}
		sw.Once()
	}
}

// Len returns the advisory element count.
func (q *Epoch[T]) Len() int {
	return int(q.length.Load())
}

// IsEmpty reports whether the advisory count currently reads zero.
func (q *Epoch[T]) IsEmpty() bool {
	return q.length.Load() == 0
}
