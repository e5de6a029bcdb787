// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"hash/fnv"
	"reflect"
	"strconv"
)

// Token names a resumption point. Pairing compares hash values only, so
// two tokens built from the same string are interchangeable; the name is
// retained for diagnostics.
//
// The zero Token (hash 0, empty name) is the null token [Fiber.Start]
// presents when it enters the body.
type Token struct {
	hash uint64
	name string
}

// NewToken builds a token by hashing name with 64-bit FNV-1a.
func NewToken(name string) Token {
	h := fnv.New64a()
	h.Write([]byte(name))
	return Token{hash: h.Sum64(), name: name}
}

// Hash returns the token's FNV-1a value.
func (t Token) Hash() uint64 { return t.hash }

// Name returns the string the token was built from.
func (t Token) Name() string { return t.name }

// String returns the token name, or the hash in hex for unnamed tokens.
func (t Token) String() string {
	if t.name != "" {
		return t.name
	}
	return "0x" + strconv.FormatUint(t.hash, 16)
}

// identityWord reduces a resumer identity to the address word folded into
// the expected-resumer value. A nil identity contributes 0. A non-nil
// identity must be a reference: pointer, unsafe pointer, channel, map,
// func, or slice.
func identityWord(id any) uint64 {
	if id == nil {
		return 0
	}
	v := reflect.ValueOf(id)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan,
		reflect.Map, reflect.Func, reflect.Slice:
		return uint64(v.Pointer())
	}
	panic("fiber: resumer identity must be nil or a reference")
}
