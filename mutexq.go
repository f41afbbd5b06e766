// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

import (
	"sync"

	"github.com/eapache/queue"
)

// Mutex is the coarse-grained locked baseline.
//
// A single exclusive lock guards a conventional FIFO buffer. Enqueue
// appends at the back, Dequeue removes from the front; both are O(1)
// amortized while the lock is held. There are no retries and no
// lock-free hazards - the lock blocks contenders rather than looping.
//
// Mutex serves as the correctness and performance reference against
// which the lock-free variants are measured.
//
// A panic inside a critical section leaves the lock held and the
// instance permanently dead: every later call blocks forever. Discard
// the instance; the condition is not recoverable.
type Mutex[T any] struct {
	mu    sync.Mutex
	inner *queue.Queue
}

// NewMutex creates an empty locked queue.
func NewMutex[T any]() *Mutex[T] {
	return &Mutex[T]{inner: queue.New()}
}

// Enqueue adds an element at the back (multiple producers safe).
func (q *Mutex[T]) Enqueue(elem *T) {
	q.mu.Lock()
	q.inner.Add(*elem)
	q.mu.Unlock()
}

// Dequeue removes and returns the element at the front (multiple
// consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Mutex[T]) Dequeue() (T, error) {
	q.mu.Lock()
	if q.inner.Length() == 0 {
		q.mu.Unlock()
		var zero T
		return zero, ErrWouldBlock
	}
	elem := q.inner.Remove().(T)
	q.mu.Unlock()
	return elem, nil
}

// Len returns the element count at the moment the lock was held.
func (q *Mutex[T]) Len() int {
	q.mu.Lock()
	n := q.inner.Length()
	q.mu.Unlock()
	return n
}

// IsEmpty reports whether the queue held no elements at the moment the
// lock was held.
func (q *Mutex[T]) IsEmpty() bool {
	return q.Len() == 0
}
