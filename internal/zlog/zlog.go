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

// Package zlog is a small central ring-buffer logger, ported from
// gopher2600/logger and generalized for this module. Only one central log
// exists for the whole process; there is no need for more than one.
package zlog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Permission implementations indicate whether the caller making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow indicates that the logging request should always be allowed.
var Allow Permission = allow{}

// Entry is a single log line.
type Entry struct {
	Time   time.Time
	Tag    string
	Detail string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(time.RFC3339), e.Tag, e.Detail)
}

// maxEntries bounds the central log's memory use; oldest entries are
// discarded once the limit is reached.
const maxEntries = 256

type centralLog struct {
	mu      sync.Mutex
	entries []Entry
	// recentIdx marks where WriteRecent should start reading from.
	recentIdx int

	echo io.Writer
}

var central = &centralLog{}

// Log adds an entry to the central logger.
func Log(perm Permission, tag, detail string) {
	if perm == nil || perm == Allow || perm.AllowLogging() {
		central.add(tag, detail)
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag, format string, args ...interface{}) {
	Log(perm, tag, fmt.Sprintf(format, args...))
}

func (c *centralLog) add(tag, detail string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := Entry{Time: time.Now(), Tag: tag, Detail: detail}
	c.entries = append(c.entries, e)
	if len(c.entries) > maxEntries {
		drop := len(c.entries) - maxEntries
		c.entries = c.entries[drop:]
		c.recentIdx -= drop
		if c.recentIdx < 0 {
			c.recentIdx = 0
		}
	}

	if c.echo != nil {
		fmt.Fprintln(c.echo, e.String())
	}
}

// Clear removes all entries from the central logger.
func Clear() {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.entries = nil
	central.recentIdx = 0
}

// Write writes every entry to out.
func Write(out io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	for _, e := range central.entries {
		fmt.Fprintln(out, e.String())
	}
}

// WriteRecent writes only the entries added since the last call to
// WriteRecent.
func WriteRecent(out io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	for _, e := range central.entries[central.recentIdx:] {
		fmt.Fprintln(out, e.String())
	}
	central.recentIdx = len(central.entries)
}

// Tail writes the last n entries to out.
func Tail(out io.Writer, n int) {
	central.mu.Lock()
	defer central.mu.Unlock()
	start := len(central.entries) - n
	if start < 0 {
		start = 0
	}
	for _, e := range central.entries[start:] {
		fmt.Fprintln(out, e.String())
	}
}

// SetEcho mirrors every future log entry to out as it is added.
func SetEcho(out io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.echo = out
}

// BorrowLog hands f the critical section and the current entry list, for
// callers that need a consistent snapshot (e.g. a metrics dashboard).
func BorrowLog(f func([]Entry)) {
	central.mu.Lock()
	defer central.mu.Unlock()
	f(central.entries)
}
