// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// PoolItem is the bookkeeping contract pooled items satisfy: every item
// stores its own slot index so Recycle can relocate it in O(1) without a
// search or a side table. Embed [Recyclable] to satisfy it.
type PoolItem interface {
	PoolIndex() int
	SetPoolIndex(int)
}

// Recyclable is an embeddable index cell satisfying [PoolItem]. The index
// is owned by the pool; items must not touch it.
type Recyclable struct {
	poolIndex int
}

// PoolIndex returns the item's current slot index.
func (r *Recyclable) PoolIndex() int { return r.poolIndex }

// SetPoolIndex stores the item's slot index.
func (r *Recyclable) SetPoolIndex(i int) { r.poolIndex = i }

// asItem vets a slot entering the pool. Slots must satisfy [PoolItem];
// anything else is a caller bug.
func asItem(s any) PoolItem {
	it, ok := s.(PoolItem)
	if !ok {
		panic("fiber: pool slot does not implement PoolItem")
	}
	return it
}

// PoolCore is the untyped slot engine beneath [Pool]: slot storage
// partitioned into a busy prefix and an idle suffix, O(1) Get and Recycle
// by swapping with the partition boundary, an optional hard capacity, bulk
// release, and snapshot or live iteration. Slots are opaque references
// satisfying [PoolItem]; the typed facade narrows them to a concrete item
// type.
//
// A PoolCore is not synchronized: one logical thread drives it, and the
// iteration and mutation rules are enforced by runtime assertions, not
// locks. The partition invariant holds at all times: items[:numBusy] are
// busy, items[numBusy:] are idle, and every slot's stored index equals its
// position.
type PoolCore struct {
	items   []any
	numBusy int
	limited bool

	// reset runs on every Recycle and Clear; dispose on slots discarded
	// by a shrinking SetLimit. Bound once at construction.
	reset   func(any)
	dispose func(any)

	// scratch is the shared snapshot buffer; snapOpen and liveOpen are
	// the iteration guards.
	scratch  []any
	snapOpen bool
	liveOpen int
}

// NewPoolCore returns a core with optional item hooks. Either hook may be
// nil.
func NewPoolCore(reset, dispose func(any)) *PoolCore {
	c := &PoolCore{}
	c.Init(reset, dispose)
	return c
}

// Init prepares a zero-value core, for embedding without a second
// allocation.
func (c *PoolCore) Init(reset, dispose func(any)) {
	c.reset = reset
	c.dispose = dispose
}

// Get marks a slot busy and returns it: the first idle slot when one
// exists, otherwise a freshly constructed one. A limited pool never
// constructs, since SetLimit materialized every slot up front; it fails
// with [ErrCapacity] once all are busy. Returned slots are never nil and
// never aliased while busy.
func (c *PoolCore) Get(newItem func() any) (any, error) {
	c.assertMutable("Get")
	if c.numBusy < len(c.items) {
		it := c.items[c.numBusy]
		it.(PoolItem).SetPoolIndex(c.numBusy)
		c.numBusy++
		return it, nil
	}
	if c.limited {
		return nil, ErrCapacity
	}
	it := newItem()
	if it == nil {
		panic("fiber: pool factory returned nil")
	}
	asItem(it).SetPoolIndex(c.numBusy)
	c.items = append(c.items, it)
	c.numBusy++
	return it, nil
}

// Recycle returns a busy slot to the idle suffix: the reset hook runs,
// then the slot swaps with the last busy slot and both stored indices are
// fixed up. LIFO: the next Get returns the most recently recycled slot.
//
// Panics when the slot is not busy in this pool: stored index outside the
// busy prefix, a foreign or stale reference at that index, or an empty
// busy prefix.
func (c *PoolCore) Recycle(item any) {
	c.assertMutable("Recycle")
	if c.numBusy == 0 {
		panic("fiber: Recycle on a pool with no busy slots")
	}
	it := asItem(item)
	i := it.PoolIndex()
	if i < 0 || i >= c.numBusy {
		panic("fiber: Recycle of a slot that is not busy")
	}
	if c.items[i] != item {
		panic("fiber: Recycle of a slot from another pool")
	}
	if c.reset != nil {
		c.reset(item)
	}
	last := c.numBusy - 1
	moved := c.items[last]
	c.items[i] = moved
	c.items[last] = item
	moved.(PoolItem).SetPoolIndex(i)
	it.SetPoolIndex(last)
	c.numBusy--
}

// Clear recycles every busy slot at once: the reset hook runs per busy
// slot and the busy count drops to zero. Slots and capacity are retained.
func (c *PoolCore) Clear() {
	c.assertMutable("Clear")
	if c.reset != nil {
		for _, s := range c.items[:c.numBusy] {
			c.reset(s)
		}
	}
	c.numBusy = 0
}

// SetLimit bounds the pool at exactly n slots, materializing idle slots up
// front so Get never constructs; n < 0 removes the limit and keeps the
// existing slots. Shrinking resets and disposes the trailing idle slots;
// shrinking below the busy count fails with [ErrCapacity], retryable after
// recycling. Panics while any iteration, snapshot or live, is open.
func (c *PoolCore) SetLimit(n int, newItem func() any) error {
	if c.snapOpen || c.liveOpen != 0 {
		panic("fiber: SetLimit during pool iteration")
	}
	if n < 0 {
		c.limited = false
		return nil
	}
	if n < c.numBusy {
		return ErrCapacity
	}
	for len(c.items) > n {
		last := len(c.items) - 1
		s := c.items[last]
		c.items[last] = nil
		c.items = c.items[:last]
		if c.reset != nil {
			c.reset(s)
		}
		if c.dispose != nil {
			c.dispose(s)
		}
	}
	for len(c.items) < n {
		s := newItem()
		if s == nil {
			panic("fiber: pool factory returned nil")
		}
		asItem(s).SetPoolIndex(len(c.items))
		c.items = append(c.items, s)
	}
	c.limited = true
	return nil
}

// Len returns the total slot count, busy plus idle.
func (c *PoolCore) Len() int { return len(c.items) }

// NumBusy returns the busy slot count.
func (c *PoolCore) NumBusy() int { return c.numBusy }

// NumIdle returns the idle slot count.
func (c *PoolCore) NumIdle() int { return len(c.items) - c.numBusy }

// Limited reports whether the pool is capacity-bounded.
func (c *PoolCore) Limited() bool { return c.limited }

// Limit returns the slot bound, or -1 when unlimited. A limited pool
// holds exactly Limit slots between SetLimit calls.
func (c *PoolCore) Limit() int {
	if !c.limited {
		return -1
	}
	return len(c.items)
}

// assertMutable panics while live iteration holds the pool read-only.
func (c *PoolCore) assertMutable(op string) {
	if c.liveOpen != 0 {
		panic("fiber: " + op + " during live pool iteration")
	}
}
