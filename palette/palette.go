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

// Package palette is a reference implementation of the animated palette
// generator the zoomer package deliberately treats as an external
// collaborator (zoomer.Frame.Palette). It builds a full 65536-entry table,
// cycling escape-time codes smoothly around the HSV hue wheel and reserving
// zoomer.TransparentIndex for the background.
package palette

import (
	"math"
	"sync"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jetsetilly/zoomcore/zoomer"
)

// interior is the fixed colour used for escape-time codes at or beyond
// maxIter, points considered inside the set.
var interior = colorful.Hsv(0, 0, 0.02)

// Generator animates a Palette by rotating its hue phase over time. A
// Generator is typically advanced from the scheduler goroutine (OnBeginFrame)
// and built from a render worker goroutine (OnRenderFrame), so phase access
// is mutex-guarded rather than assumed single-threaded like the rest of the
// zoomer package's exclusive-ownership Frames.
type Generator struct {
	// Speed is the hue rotation rate in cycles per second. Zero freezes the
	// animation at whatever phase Advance last reached.
	Speed float64

	mu    sync.Mutex
	phase float64
}

// New returns a Generator with the given rotation speed and phase zero.
func New(speed float64) *Generator {
	return &Generator{Speed: speed}
}

// Advance moves the generator's phase forward by dt at the configured
// Speed. Call once per frame, typically from Callbacks.OnBeginFrame.
func (g *Generator) Advance(dt time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.phase += g.Speed * dt.Seconds()
	g.phase -= math.Floor(g.phase)
}

// Build renders a fresh zoomer.Palette. Escape-time codes below maxIter are
// mapped around the hue wheel, offset by the generator's current phase;
// codes at or beyond maxIter (and below zoomer.TransparentIndex) are given
// the fixed interior colour. zoomer.TransparentIndex is always fully
// transparent.
func (g *Generator) Build(maxIter int) *zoomer.Palette {
	if maxIter <= 0 {
		maxIter = 1
	}

	g.mu.Lock()
	phase := g.phase
	g.mu.Unlock()

	var pal zoomer.Palette

	for code := 0; code < zoomer.TransparentIndex; code++ {
		if code < maxIter {
			t := float64(code)/float64(maxIter) + phase
			t -= math.Floor(t)
			pal[code] = pack(colorful.Hsv(t*360, 0.85, 1.0))
			continue
		}
		pal[code] = pack(interior)
	}

	pal[zoomer.TransparentIndex] = 0

	return &pal
}

// pack converts a colorful.Color to the 0xAABBGGRR layout zoomer.Frame.RGBA
// expects, fully opaque.
func pack(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return 0xff000000 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}
