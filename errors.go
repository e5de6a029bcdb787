// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"errors"
	"fmt"
	"strconv"

	"code.hybscloud.com/iox"
)

// KilledError is what a suspended body observes when the fiber is resumed
// by [Fiber.Kill]. Each fiber owns a single reusable value that Kill
// re-arms with its caller's file and line, so the instance must not be
// retained across resumptions; copy the fields instead.
type KilledError struct {
	File string
	Line int
}

func (e *KilledError) Error() string {
	return "fiber: killed from " + e.File + ":" + strconv.Itoa(e.Line)
}

// IsKilled reports whether err is a kill notification.
func IsKilled(err error) bool {
	var ke *KilledError
	return errors.As(err, &ke)
}

// WrongResumerError is what a suspended body observes when the resuming
// party presented a token/identity pair other than the one the body
// suspended with. Each fiber owns a single reusable value; copy the fields
// rather than retaining the instance.
type WrongResumerError struct {
	// Want is the word the suspend point was armed with,
	// Got the word recorded by the resumer.
	Want, Got uint64
}

func (e *WrongResumerError) Error() string {
	return fmt.Sprintf("fiber: wrong resumer: want %#018x, got %#018x", e.Want, e.Got)
}

// IsWrongResumer reports whether err is a resumption-pairing violation.
func IsWrongResumer(err error) bool {
	var we *WrongResumerError
	return errors.As(err, &we)
}

// ErrCapacity is returned by Get on a limited pool with every slot busy
// and by SetLimit when asked to shrink below the busy count. It is the
// only recoverable pool error; everything else is a protocol violation and
// panics. Capacity pressure is retryable after progress, so the sentinel
// wraps [iox.ErrWouldBlock] and classifies as backpressure across the
// ecosystem.
var ErrCapacity = fmt.Errorf("fiber: pool at capacity: %w", iox.ErrWouldBlock)

// IsCapacity reports whether err is a pool capacity failure.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}
