// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fiber provides cooperative message coroutines with token-guarded
// resumption, and slot-recycling object pools for the worker objects that
// carry them.
//
// A [Fiber] runs its body until the body suspends, handing a [Message]
// out; it stays parked until a resumer hands a message back in. Each
// suspend names the [Token] and identity the next resumer must present, so
// a fiber parked deep inside a subsystem cannot be woken by the wrong
// party by accident.
//
// # Architecture
//
//   - Transfer: each fiber owns a goroutine-backed coroutine; control
//     passes over bounded lock-free SPSC queues via
//     [code.hybscloud.com/lfq], embedded in the fiber's single allocation.
//   - Blocking: both sides park with adaptive backoff
//     ([code.hybscloud.com/iox.Backoff]); queue operations stay
//     non-blocking underneath.
//   - Guarding: a Suspend is satisfied only by a Resume presenting the
//     same token and identity (compared as token hash XOR identity
//     address). Mismatches surface as [WrongResumerError] on the body
//     side.
//   - Cancellation: [Fiber.Kill] resumes a suspended body without a
//     message; the parked Suspend fails with a [KilledError] carrying the
//     kill site, and the body unwinds (or cleans up and suspends again).
//   - Errors: error-tagged messages are raised on the receiving side,
//     never returned as values. [Exec] folds a whole run into
//     [code.hybscloud.com/kont.Either].
//
// # Protocol
//
// Start delivers the zero Token and nil identity, enters the body, and
// returns the first suspended message. Thereafter the n-th Resume pairs
// with the n-th Suspend. A body finishes by returning its terminal message
// (or error), after which the fiber is Terminated and may be Reset or
// restarted by Start. Exactly one side runs at a time; one logical thread
// drives each fiber. Contract violations panic: resuming a fiber that is
// not suspended, suspending outside the body, killing a fiber that is not
// suspended.
//
// # Pooling
//
// [Pool] recycles fiber-bearing worker objects without freeing them: slot
// storage is partitioned into a busy prefix and idle suffix, Get and
// Recycle swap against the boundary in O(1) using the index each item
// stores (embed [Recyclable]), and [PoolCore.SetLimit] bounds a pool at a
// materialized slot count. [ErrCapacity] is the only recoverable pool
// error. Iteration is snapshot (mutation-tolerant, one at a time) or live
// (zero-copy, holds the pool read-only); see the iterator methods on
// [Pool] and [PoolCore].
//
// # Example
//
//	tok := fiber.NewToken("scan")
//	f := fiber.New(func(f *fiber.Fiber, first fiber.Message) (fiber.Message, error) {
//		sum := first.Int()
//		for {
//			in, err := f.Suspend(tok, nil, fiber.IntMessage(sum))
//			if err != nil {
//				return fiber.Message{}, err // killed or wrong resumer
//			}
//			if in.Kind() == fiber.KindInt && in.Int() < 0 {
//				return fiber.IntMessage(sum), nil
//			}
//			sum += in.Int()
//		}
//	})
//	f.Start(fiber.Message{})
//	f.Resume(tok, nil, fiber.IntMessage(2))
//	f.Resume(tok, nil, fiber.IntMessage(3))
//	out, _ := f.Resume(tok, nil, fiber.IntMessage(-1)) // Int(5)
//
// The race detector cannot observe the SPSC queues' cross-variable memory
// ordering, so tests that cross the transfer boundary are skipped under
// -race; see the skipRace helper.
package fiber
