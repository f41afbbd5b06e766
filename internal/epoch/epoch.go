// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package epoch

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

const (
	// slotCount bounds the number of concurrently open guards. A full
	// table makes Pin spin-wait for a vacancy; it never corrupts.
	slotCount = 256

	// activeBit marks a claimed slot. The remaining bits carry the
	// epoch observed at pin time.
	activeBit = uint64(1)

	// collectEvery amortizes the advance scan over this many Defer
	// calls.
	collectEvery = 128
)

// slot is one participation entry, padded to its own cache line.
// state == 0 means vacant; otherwise state == epoch<<1 | activeBit.
type slot struct {
	state atomix.Uint64
	_     padShort
}

type padShort [64 - 8]byte

// garbage is one deferred release: a type-erased value and the function
// that hands it back to its owner once it is provably unreachable.
type garbage struct {
	v    any
	free func(any)
	next *garbage
}

// bag is a limbo list of garbage retired during one epoch (mod 3).
// Push is a lock-free prepend; a flush detaches the whole list at once.
type bag struct {
	head atomic.Pointer[garbage]
	_    padShort
}

// collector holds the global epoch, the participation slots, and three
// limbo bags keyed by retire-epoch mod 3.
//
// Invariant: an advance from epoch E requires every active slot to sit
// at E. Garbage retired while the global epoch read E is therefore
// unreachable once the global epoch reaches E+2 - the two intervening
// advances each waited out every guard that could still hold a
// reference.
type collector struct {
	global atomix.Uint64
	_      padShort
	pinSeq atomix.Uint64
	_      padShort
	defers atomix.Uint64
	_      padShort
	slots  [slotCount]slot
	bags   [3]bag
}

// shared is the process-wide collector. Zero value is ready for use.
var shared collector

// Guard is an open critical region. It brackets every shared
// dereference and CAS attempt of a single operation; close it with
// Unpin as soon as the operation completes.
type Guard struct {
	c *collector
	s *slot
}

// Pin opens a guard on the process-wide collector.
func Pin() Guard {
	return shared.pin()
}

func (c *collector) pin() Guard {
	start := c.pinSeq.AddAcqRel(1)
	sw := spin.Wait{}
	for {
		e := c.global.LoadAcquire()
		claim := e<<1 | activeBit
		for i := uint64(0); i < slotCount; i++ {
			s := &c.slots[(start+i)%slotCount]
			if s.state.LoadRelaxed() != 0 {
				continue
			}
			if s.state.CompareAndSwapAcqRel(0, claim) {
				return Guard{c: c, s: s}
			}
		}
		// Table full: wait for a vacancy. The observed epoch may have
		// moved meanwhile, so re-read it before the next sweep.
		sw.Once()
	}
}

// Unpin closes the guard. The caller must not touch shared references
// obtained under this guard afterwards.
func (g Guard) Unpin() {
	g.s.state.StoreRelease(0)
}

// Defer registers v for deferred release. free(v) runs once every guard
// opened before this call has closed; it may run on any goroutine.
func (g Guard) Defer(v any, free func(any)) {
	c := g.c
	// Retire into the bag of the current epoch, not the pin epoch: the
	// guards that can still observe v are the ones active now, and the
	// freeing rule counts advances from now.
	e := c.global.LoadAcquire()
	n := &garbage{v: v, free: free}
	b := &c.bags[e%3]
	for {
		head := b.head.Load()
		n.next = head
		if b.head.CompareAndSwap(head, n) {
			break
		}
	}

	if c.defers.AddAcqRel(1)%collectEvery == 0 {
		c.tryCollect()
	}
}

// tryCollect attempts one epoch advance and, on success, releases the
// garbage that two advances have proven unreachable.
func (c *collector) tryCollect() {
	e := c.global.LoadAcquire()
	for i := range c.slots {
		s := c.slots[i].state.LoadAcquire()
		if s&activeBit != 0 && s>>1 != e {
			// A guard still sits on an older epoch; advancing now
			// could free memory it can reach.
			return
		}
	}
	if !c.global.CompareAndSwapAcqRel(e, e+1) {
		return
	}

	// Epoch is now e+1: everything retired at e-1 or earlier is
	// unreachable. The bag holding epoch e-1 is bags[(e+2)%3].
	g := c.bags[(e+2)%3].head.Swap(nil)
	for g != nil {
		g.free(g.v)
		g = g.next
	}
}
