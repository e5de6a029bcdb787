// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"io"
	"iter"
)

// Pool is the typed facade over [PoolCore]. T is a concrete reference type
// satisfying [PoolItem], in practice a struct pointer embedding
// [Recyclable]; the facade restores T at the boundary so callers never see
// untyped slots.
//
// Lifecycle hooks are bound from T's method set at construction: a
// Reset method runs on every Recycle and Clear, and [io.Closer] runs on
// slots discarded by a shrinking SetLimit (the close error is discarded).
type Pool[T PoolItem] struct {
	core PoolCore
	// newSlot adapts the typed factory once, so Get stays
	// allocation-free on the reuse path.
	newSlot func() any
}

// Zero is the default item factory: each item is a pointed-to zero
// value, for item types that need no setup beyond the embedded index
// cell. Pass it where NewPool expects a factory:
//
//	p := fiber.NewPool(fiber.Zero[worker])
func Zero[T any]() *T { return new(T) }

// NewPool creates an unlimited pool around newItem. The factory must be
// non-nil and must return distinct, non-nil items; [Zero] serves when
// the zero value is a valid idle item.
func NewPool[T PoolItem](newItem func() T) *Pool[T] {
	if newItem == nil {
		panic("fiber: NewPool with nil factory")
	}
	var probe T
	p := &Pool[T]{newSlot: func() any {
		v := newItem()
		// Catch typed-nil factories here; the core only sees any values
		// and cannot tell a nil T from a live one.
		if any(v) == any(probe) {
			panic("fiber: pool factory returned nil")
		}
		return v
	}}
	var reset, dispose func(any)
	if _, ok := any(probe).(interface{ Reset() }); ok {
		reset = func(s any) { s.(interface{ Reset() }).Reset() }
	}
	if _, ok := any(probe).(io.Closer); ok {
		dispose = func(s any) { _ = s.(io.Closer).Close() }
	}
	p.core.Init(reset, dispose)
	return p
}

// Get marks an item busy and returns it, constructing one only when the
// pool is unlimited and has no idle item. A limited pool with every item
// busy fails with [ErrCapacity]; treat it as backpressure and retry after
// a Recycle.
func (p *Pool[T]) Get() (T, error) {
	s, err := p.core.Get(p.newSlot)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.(T), nil
}

// Recycle returns a busy item to the idle suffix. The item must be busy
// in this pool; anything else panics.
func (p *Pool[T]) Recycle(item T) { p.core.Recycle(item) }

// Clear recycles every busy item at once.
func (p *Pool[T]) Clear() { p.core.Clear() }

// SetLimit bounds the pool at exactly n items, materializing idle items
// up front with the pool's factory; n < 0 removes the limit. Shrinking
// below the busy count fails with [ErrCapacity].
func (p *Pool[T]) SetLimit(n int) error { return p.core.SetLimit(n, p.newSlot) }

// Len returns the total item count, busy plus idle.
func (p *Pool[T]) Len() int { return p.core.Len() }

// NumBusy returns the busy item count.
func (p *Pool[T]) NumBusy() int { return p.core.NumBusy() }

// NumIdle returns the idle item count.
func (p *Pool[T]) NumIdle() int { return p.core.NumIdle() }

// Limited reports whether the pool is capacity-bounded.
func (p *Pool[T]) Limited() bool { return p.core.Limited() }

// Limit returns the item bound, or -1 when unlimited.
func (p *Pool[T]) Limit() int { return p.core.Limit() }

// typedSeq narrows an untyped slot sequence to T.
func typedSeq[T PoolItem](s iter.Seq[any]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !yield(v.(T)) {
				return
			}
		}
	}
}

// Items iterates a snapshot of every item, busy prefix first.
func (p *Pool[T]) Items() iter.Seq[T] { return typedSeq[T](p.core.Items()) }

// BusyItems iterates a snapshot of the busy items.
func (p *Pool[T]) BusyItems() iter.Seq[T] { return typedSeq[T](p.core.BusyItems()) }

// IdleItems iterates a snapshot of the idle items.
func (p *Pool[T]) IdleItems() iter.Seq[T] { return typedSeq[T](p.core.IdleItems()) }

// LiveItems iterates every item in place, holding the pool read-only.
func (p *Pool[T]) LiveItems() iter.Seq[T] { return typedSeq[T](p.core.LiveItems()) }

// LiveBusyItems iterates the busy items in place, holding the pool
// read-only.
func (p *Pool[T]) LiveBusyItems() iter.Seq[T] { return typedSeq[T](p.core.LiveBusyItems()) }

// LiveIdleItems iterates the idle items in place, holding the pool
// read-only.
func (p *Pool[T]) LiveIdleItems() iter.Seq[T] { return typedSeq[T](p.core.LiveIdleItems()) }
