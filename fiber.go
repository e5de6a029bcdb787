// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "runtime"

// Body is a fiber's entry function. It runs on the fiber's goroutine with
// the message [Fiber.Start] delivered, exchanges further messages through
// [Fiber.Suspend], and finishes by returning the terminal message.
// Returning a non-nil error terminates the fiber with a carried error
// instead, raised by the driving Start or Resume.
type Body func(f *Fiber, first Message) (Message, error)

// Fiber is a cooperative message coroutine: a body that runs until it
// suspends, handing a message out, and stays parked until a resumer hands
// a message back in. Resumption is guarded: each Suspend names the token
// and identity the next resumer must present, and a mismatch surfaces as a
// [WrongResumerError] on the body side.
//
// A fiber is single-threaded cooperative. Exactly one side runs at a time,
// and one logical thread drives Start, Resume, Kill, and Reset. State
// queries are safe from any goroutine; everything else is protected by
// runtime assertions, not locks.
type Fiber struct {
	co coro

	// msg is the single message slot. Whichever side holds control owns
	// it; visibility across transfers rides the wake-queue pairing.
	msg Message
	// expect is the word armed by the most recent resumption:
	// token hash XOR identity address.
	expect uint64
	// killed is set by Kill and consumed by the Suspend it wakes.
	killed bool
	// panicked carries a body panic across the switch, re-raised on the
	// driving side.
	panicked any

	killErr  KilledError
	wrongErr WrongResumerError
	body     Body
	serial   Serial
}

// New creates a fiber around body. The fiber is Ready; nothing runs until
// [Fiber.Start].
func New(body Body) *Fiber {
	if body == nil {
		panic("fiber: New with nil body")
	}
	f := &Fiber{body: body, serial: nextSerial()}
	f.co.init(f.run)
	return f
}

// run is one full pass of the body on the fiber goroutine. The returned
// message becomes the terminal handoff; an error becomes an error-tagged
// terminal handoff; a panic is parked for the driving side to re-raise.
func (f *Fiber) run() {
	defer func() {
		if p := recover(); p != nil {
			f.panicked = p
		}
	}()
	out, err := f.body(f, f.msg)
	if err != nil {
		out = ErrorMessage(err)
	}
	f.msg = out
}

// Start begins the fiber, or restarts it from the top when it has
// terminated (an implicit [Fiber.Reset]). It presents the zero Token and
// nil identity, so the one Suspend a Start can legally satisfy is a
// Suspend armed with exactly those. Panics if the fiber is Running.
//
// Returns like [Fiber.Resume]: the message of the next Suspend, the
// terminal message, or the carried error.
func (f *Fiber) Start(msg Message) (Message, error) {
	switch f.co.loadState() {
	case StateRunning:
		panic("fiber: Start on a running fiber")
	case StateTerminated:
		f.Reset()
	}
	return f.resume(Token{}, nil, msg)
}

// Resume transfers control into a suspended fiber, delivering msg and
// presenting tok and id as the resumer's credentials. It blocks until the
// body suspends again or terminates, then returns the message the body
// left behind; an error-tagged handoff is raised as its carried error
// instead. Panics unless the fiber is Suspended.
func (f *Fiber) Resume(tok Token, id any, msg Message) (Message, error) {
	if f.co.loadState() != StateSuspended {
		panic("fiber: Resume on a fiber that is not suspended")
	}
	return f.resume(tok, id, msg)
}

// resume arms the expected-resumer word, stores the inbound message, and
// transfers in.
func (f *Fiber) resume(tok Token, id any, msg Message) (Message, error) {
	f.expect = tok.hash ^ identityWord(id)
	f.msg = msg
	return f.transfer()
}

// transfer hands control to the body and raises whatever the run left
// behind: a body panic first, then a carried error.
func (f *Fiber) transfer() (Message, error) {
	f.co.resumeInto()
	if p := f.panicked; p != nil {
		f.panicked = nil
		panic(p)
	}
	out := f.msg
	if out.kind == KindError {
		return Message{}, out.err
	}
	return out, nil
}

// Suspend parks the body, handing msg to the driving side, until a
// resumer presents tok and id. Called from inside the body; panics unless
// the fiber is Running.
//
// After control returns, in order: a pending Kill clears the killed flag
// and fails with the fiber's [KilledError]; a resumer whose credentials do
// not match fails with the fiber's [WrongResumerError]; an error-tagged
// inbound message is raised as its carried error. Otherwise Suspend
// returns the delivered message.
func (f *Fiber) Suspend(tok Token, id any, msg Message) (Message, error) {
	if f.co.loadState() != StateRunning {
		panic("fiber: Suspend outside a running fiber")
	}
	want := tok.hash ^ identityWord(id)
	f.msg = msg
	f.co.yieldOut()
	if f.killed {
		f.killed = false
		return Message{}, &f.killErr
	}
	if want != f.expect {
		f.wrongErr.Want = want
		f.wrongErr.Got = f.expect
		return Message{}, &f.wrongErr
	}
	in := f.msg
	if in.kind == KindError {
		return Message{}, in.err
	}
	return in, nil
}

// SuspendError suspends with an error-tagged outgoing message, raised by
// the driving Start or Resume. The next resumer must present tok with nil
// identity. err must be non-nil.
func (f *Fiber) SuspendError(tok Token, err error) (Message, error) {
	if err == nil {
		panic("fiber: SuspendError with nil error")
	}
	return f.Suspend(tok, nil, ErrorMessage(err))
}

// Kill cancels a suspended fiber: it re-arms the fiber's [KilledError]
// with the caller's file and line, sets the killed flag, and resumes
// without delivering a message, so the parked Suspend fails with the
// KilledError. The body is expected to let the error propagate, though it
// may catch it to clean up and suspend again.
//
// Kill is synchronous: it returns once the body has suspended again or
// terminated. The terminal outcome of the kill transfer, including the
// carried KilledError, is discarded. Panics unless the fiber is Suspended,
// or when a kill is already pending.
func (f *Fiber) Kill() {
	if f.co.loadState() != StateSuspended {
		panic("fiber: Kill on a fiber that is not suspended")
	}
	if f.killed {
		panic("fiber: Kill on a fiber that is already being killed")
	}
	_, file, line, _ := runtime.Caller(1)
	f.killErr.File = file
	f.killErr.Line = line
	f.killed = true
	f.co.resumeInto()
	if p := f.panicked; p != nil {
		f.panicked = nil
		panic(p)
	}
}

// Reset rearms a terminated fiber to run from the top, clearing the
// message slot, the expected-resumer word, and any pending kill. Panics
// unless the fiber is Terminated.
func (f *Fiber) Reset() {
	if f.co.loadState() != StateTerminated {
		panic("fiber: Reset on a fiber that has not terminated")
	}
	f.msg = Message{}
	f.expect = 0
	f.killed = false
	f.panicked = nil
	f.co.reset()
}

// State returns the fiber's run state. Safe from any goroutine.
func (f *Fiber) State() State { return f.co.loadState() }

// Waiting reports whether the body is parked in Suspend.
func (f *Fiber) Waiting() bool { return f.State() == StateSuspended }

// Running reports whether control is inside the body.
func (f *Fiber) Running() bool { return f.State() == StateRunning }

// Finished reports whether the body has terminated.
func (f *Fiber) Finished() bool { return f.State() == StateTerminated }

// Serial returns the serial number assigned to this fiber.
func (f *Fiber) Serial() Serial { return f.serial }
