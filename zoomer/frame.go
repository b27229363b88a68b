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

import "time"

// TransparentIndex is the palette entry reserved for the transparent
// background. The pixel formula must never emit this code for a pixel it
// wants painted.
const TransparentIndex = 65535

// Palette maps a 16-bit pixel code to a 32-bit RGBA value. Index 65535 is
// reserved for the transparent background. Building and animating a Palette
// is an external concern; see the palette package for a reference generator.
type Palette [65536]uint32

// Stats holds the per-frame bookkeeping the scheduler and tests use to judge
// how well a frame has been approximated.
type Stats struct {
	DurationCopy   time.Duration
	DurationUpdate time.Duration
	DurationRender time.Duration
	DurationPaint  time.Duration

	// CntPixels is an estimate of the number of pixels that are exactly
	// computed (neither inherited-with-error nor stale), derived from the
	// product of the exact-stop counts of the two rulers. It is recomputed
	// by SetPosition, Fill and UpdateLines; see ruler.go's exactCount.
	CntPixels int

	// CntHLines and CntVLines count full row/column recomputations: the
	// exact matches folded in by makeRuler plus every updateLines call that
	// picked that axis.
	CntHLines int
	CntVLines int

	// Quality is CntPixels / (PixelW * PixelH), clamped to [0,1].
	Quality float64

	// Dropped is set by the renderer when it observed TimeExpire had
	// already passed on entry; a dropped frame carries no new RGBA data.
	Dropped bool
}

// Frame is the transferable container for one instant of the zoomer: a
// pixel grid in the (possibly oversized, possibly rotated) storage space,
// the RGBA buffer for the display surface, an optional palette, and the
// statistics gathered while producing it.
//
// A Frame is owned by at most one View at a time. While a Frame is in
// flight to a render worker, the owning View's frame slot is nil; the
// worker has exclusive ownership of the Frame until it is returned.
type Frame struct {
	FrameNr int

	// display dimensions
	ViewW, ViewH int

	// storage dimensions: ViewW<=PixelW, ViewH<=PixelH. Square iff rotation
	// is enabled for the owning View.
	PixelW, PixelH int

	// Angle is in degrees; 0 selects the axis-aligned fast paths of the
	// renderer.
	Angle float64

	// Pixels holds PixelW*PixelH 16-bit (widened to uint32 for simplicity;
	// only the low 16 bits are ever populated when a Palette is attached)
	// iteration codes, row-major.
	Pixels []uint32

	// RGBA holds ViewW*ViewH packed 0xAABBGGRR values, row-major, ready for
	// a streaming texture upload.
	RGBA []uint32

	// Palette is optional; nil means the renderer treats Pixels as already
	// holding 32-bit RGBA values (see render.go).
	Palette *Palette

	// TimeExpire is the absolute deadline past which the renderer must
	// refuse to produce output and signal a drop instead.
	TimeExpire time.Time

	Stats Stats
}

// reset clears a frame's bookkeeping and dimensions without touching its
// backing arrays' capacity, so the pool can reuse the allocation.
func (f *Frame) reset(viewW, viewH, pixelW, pixelH int, angle float64) {
	f.ViewW, f.ViewH = viewW, viewH
	f.PixelW, f.PixelH = pixelW, pixelH
	f.Angle = angle
	f.Stats = Stats{}

	n := pixelW * pixelH
	if cap(f.Pixels) >= n {
		f.Pixels = f.Pixels[:n]
	} else {
		f.Pixels = make([]uint32, n)
	}

	m := viewW * viewH
	if cap(f.RGBA) >= m {
		f.RGBA = f.RGBA[:m]
	} else {
		f.RGBA = make([]uint32, m)
	}
}

// dims reports the dimensions a pool entry was allocated with, used to
// detect a stale frame after a resize.
func (f *Frame) dims() (viewW, viewH, pixelW, pixelH int) {
	return f.ViewW, f.ViewH, f.PixelW, f.PixelH
}
