// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "code.hybscloud.com/atomix"

// Serial identifies a fiber for diagnostics and log correlation. New
// assigns the next value; the serial survives Reset and restart, so a
// rerun fiber keeps its identity. The zero Serial is never assigned and
// is free to use as a no-fiber sentinel.
type Serial = uint32

// serials is the package-wide allocation counter. Its first Add returns
// 1, which is what keeps the zero Serial unassigned.
var serials atomix.Uint32

// nextSerial returns the next unassigned serial.
func nextSerial() Serial {
	return serials.Add(1)
}
