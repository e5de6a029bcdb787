// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "code.hybscloud.com/kont"

// Exec drives f to completion on the calling goroutine. A Ready or
// Terminated fiber is started (with the zero Message); a Suspended fiber
// is resumed with tok and id. Every message the body hands out goes
// through handle, and handle's result is delivered back in; a nil handle
// echoes messages back unchanged.
//
// Returns Either[error, Message]: Right with the terminal message on
// clean termination, Left as soon as a transfer raises (a body error, an
// error-tagged handoff, or a pairing violation the body propagated).
func Exec(f *Fiber, tok Token, id any, handle func(Message) Message) kont.Either[error, Message] {
	msg := Message{}
	for {
		var (
			out Message
			err error
		)
		if st := f.State(); st == StateReady || st == StateTerminated {
			out, err = f.Start(msg)
		} else {
			out, err = f.Resume(tok, id, msg)
		}
		if err != nil {
			return kont.Left[error, Message](err)
		}
		if f.Finished() {
			return kont.Right[error, Message](out)
		}
		if handle != nil {
			msg = handle(out)
		} else {
			msg = out
		}
	}
}
