// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "iter"

// Iteration comes in two disciplines, each over three windows (all slots,
// busy prefix, idle suffix). The range loop scope is the iterator
// lifetime: guards are taken when the loop starts and dropped on every
// exit path, including break and panic.
//
// Snapshot iteration copies the window into the pool's shared scratch
// buffer and yields from the copy, so the pool may be mutated mid-loop
// (SetLimit excepted; it asserts no open iteration of either kind). The
// scratch is shared: at most one snapshot loop may be open, nesting
// panics. Slots recycled mid-loop are still yielded from the copy.
//
// Live iteration yields straight from the slot storage. Any number of
// live loops may nest, and while at least one is open every mutation
// (Get, Recycle, Clear, SetLimit) panics.

// poolWindow selects the slot partition an iterator walks.
type poolWindow uint8

const (
	windowAll poolWindow = iota
	windowBusy
	windowIdle
)

// bounds returns the half-open window into items.
func (c *PoolCore) bounds(w poolWindow) (lo, hi int) {
	switch w {
	case windowBusy:
		return 0, c.numBusy
	case windowIdle:
		return c.numBusy, len(c.items)
	}
	return 0, len(c.items)
}

// snapshotSeq copies the window into the shared scratch at loop start and
// yields from the copy. The scratch is cleared afterwards so it does not
// pin slot references.
func (c *PoolCore) snapshotSeq(w poolWindow) iter.Seq[any] {
	return func(yield func(any) bool) {
		if c.snapOpen {
			panic("fiber: nested snapshot pool iteration")
		}
		c.snapOpen = true
		lo, hi := c.bounds(w)
		c.scratch = append(c.scratch[:0], c.items[lo:hi]...)
		defer func() {
			clear(c.scratch)
			c.snapOpen = false
		}()
		for _, s := range c.scratch {
			if !yield(s) {
				return
			}
		}
	}
}

// liveSeq yields straight from the slot storage, holding the pool
// read-only while the loop is open.
func (c *PoolCore) liveSeq(w poolWindow) iter.Seq[any] {
	return func(yield func(any) bool) {
		c.liveOpen++
		defer func() { c.liveOpen-- }()
		lo, hi := c.bounds(w)
		for _, s := range c.items[lo:hi] {
			if !yield(s) {
				return
			}
		}
	}
}

// Items iterates a snapshot of every slot, busy prefix first.
func (c *PoolCore) Items() iter.Seq[any] { return c.snapshotSeq(windowAll) }

// BusyItems iterates a snapshot of the busy slots.
func (c *PoolCore) BusyItems() iter.Seq[any] { return c.snapshotSeq(windowBusy) }

// IdleItems iterates a snapshot of the idle slots.
func (c *PoolCore) IdleItems() iter.Seq[any] { return c.snapshotSeq(windowIdle) }

// LiveItems iterates every slot in place, holding the pool read-only.
func (c *PoolCore) LiveItems() iter.Seq[any] { return c.liveSeq(windowAll) }

// LiveBusyItems iterates the busy slots in place, holding the pool
// read-only.
func (c *PoolCore) LiveBusyItems() iter.Seq[any] { return c.liveSeq(windowBusy) }

// LiveIdleItems iterates the idle slots in place, holding the pool
// read-only.
func (c *PoolCore) LiveIdleItems() iter.Seq[any] { return c.liveSeq(windowIdle) }
