// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

import (
	"sync"
	"sync/atomic"
)

// node is the linked-list cell shared by all lock-free variants.
//
// A node whose item slot is empty and which sits at the head position is
// the sentinel. Every queue owns exactly one live sentinel at all times,
// even when logically empty; this removes special-casing for empty-queue
// transitions.
//
// The next link is a typed atomic pointer so the chain stays visible to
// the garbage collector; scalar state elsewhere in the package goes
// through atomix.
type node[T any] struct {
	item T
	next atomic.Pointer[node[T]]
}

// nodePool recycles detached nodes for one queue instance.
//
// Recycling is what makes reclamation observable in a garbage-collected
// runtime: a recycled node's pointer identity can reappear at the tail
// while a stale snapshot of it still exists. The Unsafe variant recycles
// immediately and carries that hazard; the epoch variants hand detached
// nodes to the collector and recycle only once no in-flight operation
// can still observe them.
type nodePool[T any] struct {
	p sync.Pool
}

func newNodePool[T any]() *nodePool[T] {
	return &nodePool[T]{p: sync.Pool{
		New: func() any { return new(node[T]) },
	}}
}

// get returns a node carrying elem with a nil next link.
func (np *nodePool[T]) get(elem *T) *node[T] {
	n := np.p.Get().(*node[T])
	n.item = *elem
	return n
}

// put clears n and makes it available for reuse.
// The caller must guarantee n is unreachable from the chain.
func (np *nodePool[T]) put(n *node[T]) {
	var zero T
	n.item = zero
	n.next.Store(nil)
	np.p.Put(n)
}
