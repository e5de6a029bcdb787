// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "unsafe"

// MessageKind identifies the active variant of a [Message].
type MessageKind uint8

const (
	// KindInt is the zero kind: a zero-value Message is Int(0).
	KindInt MessageKind = iota
	// KindPointer carries a raw pointer.
	KindPointer
	// KindObject carries an object reference.
	KindObject
	// KindError carries an error raised on the receiving side.
	KindError
)

// String returns the kind name.
func (k MessageKind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindPointer:
		return "Pointer"
	case KindObject:
		return "Object"
	case KindError:
		return "Error"
	}
	return "Unknown"
}

// Message is the value exchanged at every control transfer: a tagged union
// of an integer, a raw pointer, an object reference, or a carried error.
// Exactly one variant is active; reading any other panics.
//
// An error-tagged message never crosses the boundary as a return value:
// the side that receives it observes the carried error from
// [Fiber.Suspend] or [Fiber.Resume] instead.
type Message struct {
	kind MessageKind
	n    int64
	ptr  unsafe.Pointer
	obj  any
	err  error
}

// IntMessage returns an integer-tagged message.
func IntMessage(n int64) Message {
	return Message{kind: KindInt, n: n}
}

// PointerMessage returns a raw-pointer-tagged message.
func PointerMessage(p unsafe.Pointer) Message {
	return Message{kind: KindPointer, ptr: p}
}

// ObjectMessage returns an object-tagged message.
func ObjectMessage(obj any) Message {
	return Message{kind: KindObject, obj: obj}
}

// ErrorMessage returns an error-tagged message. err must be non-nil.
func ErrorMessage(err error) Message {
	if err == nil {
		panic("fiber: ErrorMessage with nil error")
	}
	return Message{kind: KindError, err: err}
}

// Kind returns the active variant.
func (m Message) Kind() MessageKind { return m.kind }

// Int returns the integer payload of an Int-tagged message.
func (m Message) Int() int64 {
	m.mustBe(KindInt)
	return m.n
}

// Pointer returns the raw pointer of a Pointer-tagged message.
func (m Message) Pointer() unsafe.Pointer {
	m.mustBe(KindPointer)
	return m.ptr
}

// Object returns the reference of an Object-tagged message.
func (m Message) Object() any {
	m.mustBe(KindObject)
	return m.obj
}

// Err returns the error of an Error-tagged message.
func (m Message) Err() error {
	m.mustBe(KindError)
	return m.err
}

func (m Message) mustBe(want MessageKind) {
	if m.kind != want {
		panic("fiber: message is " + m.kind.String() + ", not " + want.String())
	}
}
