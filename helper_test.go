// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber_test

import (
	"testing"

	"code.hybscloud.com/fiber"
)

// wantPanic runs fn and fails unless it panics with exactly want.
func wantPanic(tb testing.TB, want string, fn func()) {
	tb.Helper()
	defer func() {
		tb.Helper()
		r := recover()
		if r == nil {
			tb.Fatalf("expected panic %q", want)
		}
		msg, ok := r.(string)
		if !ok || msg != want {
			tb.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// worker is the pooled item used across pool tests: an embedded index
// cell plus hook counters.
type worker struct {
	fiber.Recyclable
	id     int
	resets int
	closes int
}

func (w *worker) Reset() { w.resets++ }

func (w *worker) Close() error {
	w.closes++
	return nil
}

// workerFactory returns a counting item factory. made tracks how many
// workers were constructed.
func workerFactory() (factory func() *worker, made *int) {
	n := new(int)
	return func() *worker {
		*n++
		return &worker{id: *n}
	}, n
}

// checkPartition verifies the partition invariant through the live
// iterators: every slot stores its own position, busy prefix and idle
// suffix cover the storage exactly.
func checkPartition(tb testing.TB, p *fiber.Pool[*worker]) {
	tb.Helper()
	pos := 0
	for w := range p.LiveItems() {
		if w.PoolIndex() != pos {
			tb.Fatalf("slot %d stores index %d", pos, w.PoolIndex())
		}
		pos++
	}
	if pos != p.Len() {
		tb.Fatalf("iterated %d slots, Len() = %d", pos, p.Len())
	}
	busy := 0
	for range p.LiveBusyItems() {
		busy++
	}
	idle := 0
	for range p.LiveIdleItems() {
		idle++
	}
	if busy != p.NumBusy() || idle != p.NumIdle() {
		tb.Fatalf("windows busy=%d idle=%d, counters busy=%d idle=%d",
			busy, idle, p.NumBusy(), p.NumIdle())
	}
	if busy+idle != p.Len() {
		tb.Fatalf("busy %d + idle %d != len %d", busy, idle, p.Len())
	}
}
