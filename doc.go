// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package llq provides unbounded FIFO queue implementations backed by a
// singly-linked list with a permanent sentinel head.
//
// The package offers one logical algorithm under three concurrency-control
// strategies:
//
//   - Mutex:     coarse-grained locked baseline
//   - Unsafe:    lock-free Michael–Scott queue, immediate node recycling
//   - Epoch:     lock-free Michael–Scott queue, epoch-deferred recycling
//   - EpochWalk: Epoch with the alternative push tail-repair strategy
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := llq.NewEpoch[Event]()       // safe MPMC, helper tail repair
//	q := llq.NewEpochWalk[Event]()   // safe MPMC, local-walk tail repair
//	q := llq.NewMutex[Event]()       // locked baseline
//
// Builder API selects the variant based on constraints:
//
//	q := llq.Build[Event](llq.New())              // → Epoch
//	q := llq.Build[Event](llq.New().LocalWalk())  // → EpochWalk
//	q := llq.Build[Event](llq.New().Locked())     // → Mutex
//
// # Basic Usage
//
// All variants share the same interface:
//
//	q := llq.NewEpoch[int]()
//
//	// Enqueue (never fails, never blocks beyond bounded CAS retries)
//	value := 42
//	q.Enqueue(&value)
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if llq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// There is no blocking dequeue and no cancellation concept: Dequeue either
// returns the oldest remaining element or ErrWouldBlock immediately.
//
// # The Algorithm
//
// Every variant is the same logical structure: a singly-linked chain whose
// first node is a permanently-empty sentinel. Enqueue allocates a node,
// links it after the current last node with a compare-and-swap on that
// node's next reference, then swings the shared tail best-effort. A failed
// tail swing is tolerated; any operation that detects the lag repairs it.
// Dequeue advances the head over the sentinel with a compare-and-swap;
// the winner owns the successor's payload and the successor becomes the
// new sentinel.
//
// The two lock-free flavors differ only in how Enqueue recovers when the
// link CAS loses a race:
//
//	Epoch:     swing the shared tail to the observed next node, re-read,
//	           and retry - lagging producers converge together
//	EpochWalk: walk a local reference to the true last node and retry
//	           there - the shared tail is swung once, on success
//
// Both are linearizable and externally indistinguishable.
//
// # Memory Reclamation
//
// A dequeued-over sentinel is unreachable from the chain but may still be
// referenced by concurrent operations that read the head before the winning
// CAS committed. The variants answer this differently:
//
//	Mutex:        release happens under the lock; nothing to reclaim
//	Unsafe:       the node is cleared and returned to the node pool
//	              immediately - see Safety below
//	Epoch(+Walk): the node is registered with a process-wide epoch
//	              collector and returns to the pool only once every
//	              operation that was in flight at detachment has finished
//
// Detached nodes in the epoch flavors may outlive their logical removal by
// a bounded amount; that is the price of removing the Unsafe hazard class.
//
// # Safety
//
// Unsafe recycles a detached node while other goroutines might still hold
// a reference to it. A consumer that loses a head race can observe a node
// already recycled by the winner, and because recycling reuses pointer
// identities, a stale compare-and-swap can spuriously succeed against a
// reused node (the ABA problem). Unsafe is therefore restricted to a
// single consumer, or to controlled benchmarking; it is a baseline, not a
// general MPMC queue. Violating the contract corrupts the queue.
//
// Mutex and the epoch flavors are safe for any number of producers and
// consumers.
//
// # Length
//
// Len and IsEmpty read an advisory counter that is updated after the
// structural change, so it may be transiently stale under concurrent
// mutation (and Len may transiently read negative). The counter converges
// to the true count at quiescence. Never use Len or IsEmpty as a
// synchronization primitive; to drain after production stops, pop until
// Dequeue reports ErrWouldBlock and production has signaled completion.
//
// # Error Handling
//
// Queues return [ErrWouldBlock] from Dequeue when empty. This is a control
// flow signal, not a failure, sourced from [code.hybscloud.com/iox] for
// ecosystem consistency:
//
//	backoff := iox.Backoff{}
//	for {
//	    elem, err := q.Dequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        process(elem)
//	        continue
//	    }
//	    if llq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // Unexpected error
//	}
//
// Enqueue has no error return: an unbounded queue cannot reject input.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// The length counters and the epoch collector synchronize through atomix
// operations whose orderings the detector cannot observe, and node reuse
// through the pool looks like a race to it even when the epoch protocol
// has proven the node unreachable. Tests incompatible with race detection
// are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for scalar atomics with explicit memory
// ordering, [code.hybscloud.com/spin] for CPU pause instructions, and
// [github.com/eapache/queue] as the locked baseline's backing store.
package llq
