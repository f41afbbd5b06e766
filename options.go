// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package llq

// Options configures queue creation and variant selection.
type Options struct {
	// Concurrency-control strategy
	locked      bool // mutual-exclusion baseline
	unreclaimed bool // no deferred reclamation (single consumer only)

	// Performance hints
	localWalk bool // local-walk push tail repair
}

// Builder creates queues with fluent configuration.
//
// The builder selects the variant from the configured strategy; the
// default build is the safe MPMC epoch-reclaimed queue.
//
// Example:
//
//	// Epoch-reclaimed queue (default, general purpose)
//	q := llq.Build[Request](llq.New())
//
//	// Local-walk flavor for heavy producer contention
//	q := llq.Build[Event](llq.New().LocalWalk())
//
//	// Locked baseline for comparison runs
//	q := llq.Build[Event](llq.New().Locked())
type Builder struct {
	opts Options
}

// New creates a queue builder.
func New() *Builder {
	return &Builder{}
}

// Locked selects the mutual-exclusion baseline.
// Cannot be combined with Unreclaimed or LocalWalk.
func (b *Builder) Locked() *Builder {
	b.opts.locked = true
	return b
}

// Unreclaimed selects the lock-free variant without deferred
// reclamation. The resulting queue is restricted to a single consumer;
// see [Unsafe] for the contract. Cannot be combined with Locked.
func (b *Builder) Unreclaimed() *Builder {
	b.opts.unreclaimed = true
	return b
}

// LocalWalk selects local-walk push tail repair instead of the default
// helper repair. Only meaningful for the epoch-reclaimed variant.
//
// Trade-off: less shared-tail write traffic under producer contention,
// longer private traversals when the tail lags far behind.
func (b *Builder) LocalWalk() *Builder {
	b.opts.localWalk = true
	return b
}

// Build creates a Queue[T] with automatic variant selection.
//
// Variant selection:
//
//	Locked()              → Mutex (coarse-grained lock)
//	Unreclaimed()         → Unsafe (immediate recycle, single consumer)
//	LocalWalk()           → EpochWalk (epoch-reclaimed, local walk)
//	default               → Epoch (epoch-reclaimed, helper repair)
//
// Panics on contradictory configuration.
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.locked && (b.opts.unreclaimed || b.opts.localWalk):
		panic("llq: Locked cannot be combined with lock-free options")
	case b.opts.unreclaimed && b.opts.localWalk:
		panic("llq: Unreclaimed uses local walk already")
	case b.opts.locked:
		return NewMutex[T]()
	case b.opts.unreclaimed:
		return NewUnsafe[T]()
	case b.opts.localWalk:
		return NewEpochWalk[T]()
	default:
		return NewEpoch[T]()
	}
}

// BuildLocked creates the locked baseline with compile-time type safety.
// Panics if the builder carries lock-free options.
func BuildLocked[T any](b *Builder) *Mutex[T] {
	if b.opts.unreclaimed || b.opts.localWalk {
		panic("llq: BuildLocked requires no lock-free options")
	}
	return NewMutex[T]()
}

// BuildEpoch creates the epoch-reclaimed queue with the configured
// tail-repair flavor.
// Panics if the builder is configured with Locked() or Unreclaimed().
func BuildEpoch[T any](b *Builder) Queue[T] {
	if b.opts.locked || b.opts.unreclaimed {
		panic("llq: BuildEpoch requires an epoch-reclaimed configuration")
	}
	if b.opts.localWalk {
		return NewEpochWalk[T]()
	}
	return NewEpoch[T]()
}
