// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// State is a fiber's run state.
type State uint32

const (
	// StateReady: created, or reset after termination; nothing has run.
	StateReady State = iota
	// StateRunning: control is inside the body.
	StateRunning
	// StateSuspended: the body is parked in Suspend.
	StateSuspended
	// StateTerminated: the body returned; Reset rearms.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateSuspended:
		return "Suspended"
	case StateTerminated:
		return "Terminated"
	}
	return "Unknown"
}

// wakeCapacity is the bounded capacity for the rendezvous queues. Strict
// suspend/resume alternation keeps at most one token in flight; 2 is the
// SPSC minimum.
const wakeCapacity = 2

// wakeToken is the pre-allocated queue payload. Transfers carry no data
// through the queues: protocol state lives on the Fiber, and its
// visibility across the switch rides the enqueue/dequeue pairing.
var wakeToken = true

// coro runs a fiber body on a dedicated goroutine and passes control back
// and forth over a pair of bounded lock-free SPSC queues. Exactly one side
// runs at a time: the driver parks in recv(backQ) while the body runs, and
// the body parks in recv(callQ) while the driver runs.
//
// Both queues and the state word are embedded in the owning [Fiber], so a
// fiber is a single allocation plus the ring buffers.
type coro struct {
	callQ lfq.SPSC[bool] // driver → body
	backQ lfq.SPSC[bool] // body → driver
	state atomix.Uint32
	entry func()
	// started is driver-side bookkeeping: whether the body goroutine for
	// the current run exists. The goroutine exits at termination, so a
	// reset coro spawns a fresh one on its next resume.
	started bool
}

func (c *coro) init(entry func()) {
	c.callQ.Init(wakeCapacity)
	c.backQ.Init(wakeCapacity)
	c.entry = entry
	c.state.Store(uint32(StateReady))
}

// loadState is safe from any goroutine.
func (c *coro) loadState() State {
	return State(c.state.Load())
}

// resumeInto transfers control to the body and parks until it suspends or
// terminates. Driver side.
func (c *coro) resumeInto() {
	c.state.Store(uint32(StateRunning))
	if !c.started {
		c.started = true
		go c.main()
	} else {
		c.send(&c.callQ)
	}
	c.recv(&c.backQ)
}

// yieldOut transfers control to the driver and parks until the next
// resumeInto. Body side.
func (c *coro) yieldOut() {
	c.state.Store(uint32(StateSuspended))
	c.send(&c.backQ)
	c.recv(&c.callQ)
}

// main is one full run of the body goroutine: entry from the top, then
// termination. The goroutine exits afterwards; abandoning a coro parked in
// yieldOut instead leaks its goroutine, which is why Kill exists.
func (c *coro) main() {
	c.entry()
	c.state.Store(uint32(StateTerminated))
	c.send(&c.backQ)
}

// reset rearms a terminated coro for a fresh run. The previous goroutine
// has exited and the queues are empty between transfers, so only the
// driver-side bookkeeping moves.
func (c *coro) reset() {
	c.started = false
	c.state.Store(uint32(StateReady))
}

// send enqueues a wake token. The queues hold at most one in-flight token,
// so a full queue means the alternation discipline was broken.
func (c *coro) send(q *lfq.SPSC[bool]) {
	if err := q.Enqueue(&wakeToken); err != nil {
		panic("fiber: wake queue full: suspend/resume alternation violated")
	}
}

// recv parks on q until a wake token arrives, backing off between polls.
func (c *coro) recv(q *lfq.SPSC[bool]) {
	var bo iox.Backoff
	for {
		if _, err := q.Dequeue(); err == nil {
			return
		}
		bo.Wait()
	}
}
