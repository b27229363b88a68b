// This file is part of Zoomcore.
//
// Zoomcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zoomcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zoomcore.  If not, see <https://www.gnu.org/licenses/>.

// Package zerr is a structured error category type, ported from
// gopher2600/errors. It is reserved for genuinely exceptional construction
// or wiring failures (a surface that never reports a size, a render
// invariant the zoomer package's own bookkeeping should have prevented);
// the advisory conditions tracked elsewhere (drop, resolution exhaustion,
// resize-mid-flight, vsync loss) are never represented as a zerr value;
// they are recorded in Frame/Zoomer statistics and logged, not returned.
package zerr

import "fmt"

// Errno identifies the category of a ZoomError.
type Errno int

const (
	// SurfaceUnavailable: the Surface never reported a usable size.
	SurfaceUnavailable Errno = iota

	// RenderFailure: a Renderer fast/slow path hit a condition the
	// zoomer package's own invariants should have prevented (mismatched
	// buffer lengths, for instance). Always indicates a bug, not
	// something a caller can recover from by retrying.
	RenderFailure
)

var messages = map[Errno]string{
	SurfaceUnavailable: "surface did not report a usable size",
	RenderFailure:      "render failure: %s",
}

// ZoomError is the error type used for the exceptional conditions this
// module does report through error returns.
type ZoomError struct {
	Errno  Errno
	Values []interface{}
}

// New builds a ZoomError for errno with the given message arguments.
func New(errno Errno, values ...interface{}) ZoomError {
	return ZoomError{Errno: errno, Values: values}
}

func (e ZoomError) Error() string {
	msg, ok := messages[e.Errno]
	if !ok {
		return fmt.Sprintf("zoomer: unknown error %d", e.Errno)
	}
	return fmt.Sprintf(msg, e.Values...)
}
