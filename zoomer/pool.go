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

// framePool is a single-writer free list of Frames, keyed loosely by
// dimension. It is owned exclusively by the Zoomer; workers never touch it
// directly, they only round-trip Frames they were handed.
//
// Dimension mismatches (left behind by a resize while a frame was in
// flight) are discarded rather than reused, the same discard-on-mismatch
// discipline a GUI's pixel buffer ring needs when its backing surface
// resizes mid-frame.
type framePool struct {
	free []*Frame
}

// alloc returns a Frame sized for (viewW, viewH, pixelW, pixelH), reusing a
// free entry of matching dimensions if one exists, discarding any
// dimension-mismatched entries it encounters along the way.
func (p *framePool) alloc(frameNr, viewW, viewH, pixelW, pixelH int, angle float64) *Frame {
	for len(p.free) > 0 {
		n := len(p.free) - 1
		f := p.free[n]
		p.free[n] = nil
		p.free = p.free[:n]

		fw, fh, fpw, fph := f.dims()
		if fw == viewW && fh == viewH && fpw == pixelW && fph == pixelH {
			f.reset(viewW, viewH, pixelW, pixelH, angle)
			f.FrameNr = frameNr
			return f
		}
		// dimensions no longer match a live View (surface was resized
		// while this frame was in flight): drop it on the floor.
	}

	f := &Frame{}
	f.reset(viewW, viewH, pixelW, pixelH, angle)
	f.FrameNr = frameNr
	return f
}

// release returns a Frame to the pool for future reuse.
func (p *framePool) release(f *Frame) {
	if f == nil {
		return
	}
	p.free = append(p.free, f)
}
