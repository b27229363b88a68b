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

package zoomer

import (
	"time"

	"github.com/jetsetilly/zoomcore/internal/zlog"
)

// Config carries the scheduler's tunable options. There is no persisted
// state: a Config is a plain value passed in at construction,
// not read back from a global or a file.
type Config struct {
	// FrameRate is the target frames per second. Adaptively reduced on
	// repeated drops; see Zoomer.recordDrop.
	FrameRate float64

	// UpdateSlice bounds how much continuous work a single UPDATE tick may
	// do before yielding.
	UpdateSlice time.Duration

	// UpdateIdleBurst is the larger per-frame compute budget used when the
	// view hasn't moved recently (see WakeTimeout).
	UpdateIdleBurst time.Duration

	// WakeTimeout is the idle threshold after which UPDATE switches to the
	// UpdateIdleBurst budget instead of racing the display clock.
	WakeTimeout time.Duration

	// Coef is the low-pass coefficient used by every moving average the
	// scheduler keeps (the COPY, UPDATE, RENDER and PAINT durations).
	Coef float64

	// DisableWW runs the Renderer inline on the scheduler's own goroutine
	// instead of dispatching to the worker pair. "WW" for "web worker",
	// the browser-side concurrency primitive this toggle stands in for.
	DisableWW bool
}

// DefaultConfig returns this module's option defaults.
func DefaultConfig() Config {
	return Config{
		FrameRate:       20,
		UpdateSlice:     5 * time.Millisecond,
		UpdateIdleBurst: 500 * time.Millisecond,
		WakeTimeout:     500 * time.Millisecond,
		Coef:            0.10,
		DisableWW:       false,
	}
}

// sanitize clamps nonsensical values to the defaults, logging a correction
// rather than returning an error. Out-of-range preference values are
// corrected in place instead of failing construction.
func (c *Config) sanitize() {
	d := DefaultConfig()

	if c.FrameRate <= 0 {
		zlog.Logf(zlog.Allow, "zoomer", "invalid FrameRate %v, using default %v", c.FrameRate, d.FrameRate)
		c.FrameRate = d.FrameRate
	}
	if c.UpdateSlice <= 0 {
		zlog.Logf(zlog.Allow, "zoomer", "invalid UpdateSlice %v, using default %v", c.UpdateSlice, d.UpdateSlice)
		c.UpdateSlice = d.UpdateSlice
	}
	if c.UpdateIdleBurst <= 0 {
		zlog.Logf(zlog.Allow, "zoomer", "invalid UpdateIdleBurst %v, using default %v", c.UpdateIdleBurst, d.UpdateIdleBurst)
		c.UpdateIdleBurst = d.UpdateIdleBurst
	}
	if c.WakeTimeout <= 0 {
		zlog.Logf(zlog.Allow, "zoomer", "invalid WakeTimeout %v, using default %v", c.WakeTimeout, d.WakeTimeout)
		c.WakeTimeout = d.WakeTimeout
	}
	if c.Coef <= 0 || c.Coef > 1 {
		zlog.Logf(zlog.Allow, "zoomer", "invalid Coef %v, using default %v", c.Coef, d.Coef)
		c.Coef = d.Coef
	}
}
