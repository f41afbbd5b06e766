// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

// Queue is the combined producer-consumer interface for an unbounded
// FIFO queue.
//
// Queue provides a never-failing Enqueue and a non-blocking Dequeue.
// Dequeue returns ErrWouldBlock when the queue is empty.
//
// Len and IsEmpty are advisory: the counter they read is updated after
// the structural change, so it can be transiently stale under concurrent
// mutation. It converges to the true count at quiescence. Never use it
// as a synchronization primitive.
//
// Example:
//
//	q := llq.NewEpoch[int]()
//
//	// Enqueue
//	val := 42
//	q.Enqueue(&val)
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns the advisory element count. May be transiently stale
	// (including transiently negative) under concurrent mutation.
	Len() int

	// IsEmpty reports whether the advisory count currently reads zero.
	IsEmpty() bool
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element at the logical tail.
	// It never fails: an unbounded queue cannot reject input. It does
	// not block beyond bounded CAS retries (the Mutex variant blocks
	// only for the lock's hold duration).
	//
	// Thread safety depends on the variant:
	//   - Mutex/Epoch/EpochWalk: multiple producers safe
	//   - Unsafe: multiple producers safe
	Enqueue(elem *T)
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value. The vacated payload slot is cleared
// so referenced objects can be collected.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest remaining element.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	// Never blocks: emptiness is a normal outcome, not an error.
	//
	// Thread safety depends on the variant:
	//   - Mutex/Epoch/EpochWalk: multiple consumers safe
	//   - Unsafe: single consumer only
	Dequeue() (T, error)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
