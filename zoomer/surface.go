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

// Surface is the external display the Zoomer paints into. It is the only
// thing the core requires of its host: a current size, and somewhere to
// deliver finished RGBA buffers. Resizing, input handling and the GUI
// event loop all live on the other side of this interface; see the
// surfacesdl package for a reference implementation.
type Surface interface {
	// Size reports the surface's current display dimensions. The Zoomer
	// polls this at the top of every COPY phase to detect a resize.
	Size() (viewW, viewH int)
}

// Callbacks are optional hooks the Zoomer invokes at well-defined points in
// its state machine. None of their state is owned by the Zoomer; a nil
// callback is simply skipped.
type Callbacks struct {
	// OnResize fires whenever the surface's size (or the pixel buffer
	// dimensions derived from it) changes.
	OnResize func(z *Zoomer, viewW, viewH, pixelW, pixelH int)

	// OnInitFrame fires for every Frame COPY takes from the pool, whether
	// newly allocated or reused, giving the caller a chance to attach a
	// Palette.
	OnInitFrame func(z *Zoomer, frame *Frame)

	// OnBeginFrame fires at the top of COPY, before pixel inheritance. It
	// is the authoritative place to call Zoomer.SetPosition with this
	// tick's center/radius/angle.
	OnBeginFrame func(z *Zoomer, calcView, dispView *View)

	// OnUpdatePixel is the pixel formula: given a point on the plane it
	// returns a 16-bit (or 32-bit, if no palette is ever attached) code.
	// It is the only required callback; without it UPDATE can never
	// improve a frame's quality.
	OnUpdatePixel func(z *Zoomer, frame *Frame, x, y float64) uint32

	// OnRenderFrame fires immediately before a frame is rendered, whether
	// inline or on a worker; it is the last chance to populate or refresh
	// frame.Palette.
	OnRenderFrame func(z *Zoomer, frame *Frame)

	// OnPutImageData delivers a rendered frame's RGBA buffer to the
	// surface. Required for the zoomer to be visible at all.
	OnPutImageData func(z *Zoomer, frame *Frame)

	// OnEndFrame is a statistics sink, called once a frame has been fully
	// retired (after paint, before it returns to the pool).
	OnEndFrame func(z *Zoomer, frame *Frame)
}

func (cb Callbacks) calcFunc(z *Zoomer, frame *Frame) CalcFunc {
	if cb.OnUpdatePixel == nil {
		return func(x, y float64) uint32 { return 0 }
	}
	return func(x, y float64) uint32 { return cb.OnUpdatePixel(z, frame, x, y) }
}
