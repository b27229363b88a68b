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

package main

import (
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// hotkeys puts the controlling terminal into cbreak mode (so q/+/- are seen
// a keystroke at a time, without waiting for a newline) and reports
// keypresses on a channel, the same termios idiom an easyterm-style wrapper
// uses for an interactive front end.
type hotkeys struct {
	fd      uintptr
	canAttr syscall.Termios
	keys    chan byte
	done    chan struct{}
}

func newHotkeys() (*hotkeys, error) {
	h := &hotkeys{
		fd:   os.Stdin.Fd(),
		keys: make(chan byte, 8),
		done: make(chan struct{}),
	}

	if err := termios.Tcgetattr(h.fd, &h.canAttr); err != nil {
		return nil, err
	}

	var cbreak syscall.Termios = h.canAttr
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(h.fd, termios.TCIFLUSH, &cbreak); err != nil {
		return nil, err
	}

	go h.read()

	return h, nil
}

func (h *hotkeys) read() {
	buf := make([]byte, 1)
	for {
		select {
		case <-h.done:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		select {
		case h.keys <- buf[0]:
		case <-h.done:
			return
		}
	}
}

// restore returns the terminal to canonical mode and stops the reader.
func (h *hotkeys) restore() {
	close(h.done)
	_ = termios.Tcsetattr(h.fd, termios.TCIFLUSH, &h.canAttr)
}

// keysOrNil returns the keys channel, or a nil channel (which blocks
// forever in a select, never firing) if hotkeys setup failed and h is nil.
func (h *hotkeys) keysOrNil() <-chan byte {
	if h == nil {
		return nil
	}
	return h.keys
}
