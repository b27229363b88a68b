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

// CalcFunc is the external pixel formula: given a point on the complex
// plane it returns a 16-bit (widened to uint32) code. Supplying the
// formula itself is out of scope for the core; see the fractal package for
// a reference implementation.
type CalcFunc func(x, y float64) uint32

// View is a logical window into the plane: a center-and-radius pairing
// with a bound Frame and the two Rulers that describe how the Frame's
// pixel buffer was derived from whatever preceded it.
//
// Exactly one Frame is bound to a View at a time. While that Frame is in
// flight to a render worker the frame field is nil.
type View struct {
	viewW, viewH   int
	pixelW, pixelH int

	centerX, centerY float64
	radius           float64

	// axis-asymmetric radii, proportional to radius by the larger view
	// dimension, so a non-square view keeps its aspect ratio.
	radiusViewHor, radiusViewVer   float64
	radiusPixelHor, radiusPixelVer float64

	xRuler *ruler
	yRuler *ruler

	frame *Frame
}

// newView allocates a View sized for the given display dimensions. enableAngle
// decides whether the pixel buffer is the square diagonal size needed to
// support arbitrary rotation, or exactly the view size.
func newView(viewW, viewH int, enableAngle bool) *View {
	v := &View{}
	v.resize(viewW, viewH, enableAngle)
	return v
}

// resize recomputes pixel dimensions for a new display size. Called by the
// Zoomer when the surface reports a size change; both Views are recreated
// together so neither retains stale Ruler lengths.
func (v *View) resize(viewW, viewH int, enableAngle bool) {
	v.viewW, v.viewH = viewW, viewH

	if enableAngle {
		d := diagonal(viewW, viewH)
		v.pixelW, v.pixelH = d, d
	} else {
		v.pixelW, v.pixelH = viewW, viewH
	}

	if v.xRuler == nil {
		v.xRuler = newRuler(v.pixelW)
		v.yRuler = newRuler(v.pixelH)
	} else {
		v.xRuler.resize(v.pixelW)
		v.yRuler.resize(v.pixelH)
	}

	v.frame = nil
}

func diagonal(w, h int) int {
	// ceil(sqrt(w^2+h^2)), computed without floating point rounding
	// surprises for the modest dimensions this core deals with.
	ww := int64(w) * int64(w)
	hh := int64(h) * int64(h)
	s := ww + hh
	r := isqrt(s)
	if r*r < s {
		r++
	}
	return int(r)
}

func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Angle returns the rotation angle, in degrees, that the bound frame was
// requested with. 0 if no frame is bound.
func (v *View) Angle() float64 {
	if v.frame == nil {
		return 0
	}
	return v.frame.Angle
}

// Frame returns the View's currently bound Frame, or nil if it is in
// flight to a render worker.
func (v *View) Frame() *Frame { return v.frame }

// DetachFrame removes and returns the bound Frame, leaving the View
// without one. Used by the Zoomer when handing a frame to a render worker.
func (v *View) DetachFrame() *Frame {
	f := v.frame
	v.frame = nil
	return f
}

// ReachedLimits reports whether the view's zoom has exhausted float64
// precision: two adjacent ruler coordinates on either axis have become
// numerically equal. This is advisory: the caller should stop
// zooming in, nothing here is an error.
func (v *View) ReachedLimits() bool {
	return v.xRuler.reachedLimits() || v.yRuler.reachedLimits()
}

// SetPosition binds frame to this View at the requested center/radius/angle,
// builds both Rulers, and, if prev is non-nil, warps prev's pixel buffer
// into frame's via pixel inheritance. If prev is nil the Rulers are
// initialized linearly and frame.Pixels is left undefined; callers must
// invoke Fill in that case.
func (v *View) SetPosition(frame *Frame, centerX, centerY, radius float64, prev *View) {
	v.frame = frame
	v.centerX, v.centerY = centerX, centerY
	v.radius = radius

	v.computeRadii()

	xStart, xEnd := centerX-v.radiusPixelHor, centerX+v.radiusPixelHor
	yStart, yEnd := centerY-v.radiusPixelVer, centerY+v.radiusPixelVer

	var exactX, exactY int
	if prev != nil && prev.frame != nil {
		exactX = v.xRuler.makeRuler(xStart, xEnd, prev.xRuler.nearest, prev.xRuler.err)
		exactY = v.yRuler.makeRuler(yStart, yEnd, prev.yRuler.nearest, prev.yRuler.err)
	} else {
		v.xRuler.initLinear(xStart, xEnd)
		v.yRuler.initLinear(yStart, yEnd)
	}

	frame.Stats.CntHLines += exactY
	frame.Stats.CntVLines += exactX

	if prev != nil && prev.frame != nil {
		v.warp(prev.frame)
		v.xRuler.markDuplicates()
		v.yRuler.markDuplicates()
	}

	v.updateQuality()
}

// computeRadii derives the axis-asymmetric view/pixel radii from the
// scalar radius, proportional by the larger view dimension so the aspect
// ratio of the plane matches the aspect ratio of the display.
func (v *View) computeRadii() {
	larger := v.viewW
	if v.viewH > larger {
		larger = v.viewH
	}

	unit := v.radius / float64(larger)
	v.radiusViewHor = unit * float64(v.viewW)
	v.radiusViewVer = unit * float64(v.viewH)
	v.radiusPixelHor = unit * float64(v.pixelW)
	v.radiusPixelVer = unit * float64(v.pixelH)
}

// warp fills frame's pixel buffer by reindexing prevFrame's buffer through
// the freshly built Rulers: O(pixelW*pixelH), no pixel formula calls.
func (v *View) warp(prevFrame *Frame) {
	pw, ph := v.pixelW, v.pixelH
	opw := prevFrame.PixelW

	xFrom := v.xRuler.from
	yFrom := v.yRuler.from

	dst := v.frame.Pixels
	src := prevFrame.Pixels

	for j := 0; j < ph; j++ {
		row := dst[j*pw : j*pw+pw]

		if j > 0 && yFrom[j] == yFrom[j-1] {
			copy(row, dst[(j-1)*pw:(j-1)*pw+pw])
			continue
		}

		oy := yFrom[j]
		srcRow := src[oy*opw : oy*opw+opw]
		for i := 0; i < pw; i++ {
			row[i] = srcRow[xFrom[i]]
		}
	}
}

// updateQuality recomputes Stats.Quality/CntPixels from the product of the
// two rulers' exact-stop counts: a pixel (i,j) is exactly computed iff both
// its x and y stop carry zero residual error.
func (v *View) updateQuality() {
	ex := v.xRuler.exactCount()
	ey := v.yRuler.exactCount()
	v.frame.Stats.CntPixels = ex * ey

	total := v.pixelW * v.pixelH
	if total == 0 {
		v.frame.Stats.Quality = 0
		return
	}
	q := float64(v.frame.Stats.CntPixels) / float64(total)
	if q > 1 {
		q = 1
	}
	v.frame.Stats.Quality = q
}

// Fill brute-force computes every pixel with calc. Used the first time a
// View is ever positioned (no previous View to inherit from).
func (v *View) Fill(calc CalcFunc) {
	pw, ph := v.pixelW, v.pixelH
	dst := v.frame.Pixels
	for j := 0; j < ph; j++ {
		y := v.yRuler.coord[j]
		for i := 0; i < pw; i++ {
			x := v.xRuler.coord[i]
			dst[j*pw+i] = calc(x, y)
		}
	}
	for i := range v.xRuler.err {
		v.xRuler.err[i] = 0
	}
	for j := range v.yRuler.err {
		v.yRuler.err[j] = 0
	}
	v.updateQuality()
}

// UpdateLines recomputes exactly one row or column, whichever currently
// carries the larger residual error, using calc. It is a no-op if both
// axes are already fully exact. See the canonical-stop
// carry-down rule this implements.
func (v *View) UpdateLines(calc CalcFunc) {
	worstXi, worstX := v.xRuler.worst()
	worstYj, worstY := v.yRuler.worst()

	if worstXi < 0 && worstYj < 0 {
		return
	}

	if worstX > worstY {
		v.updateColumn(worstXi, calc)
	} else {
		v.updateRow(worstYj, calc)
	}

	v.updateQuality()
}

// updateColumn recomputes pixel column i in full, then propagates it
// rightward into any immediately-following stale-duplicate columns.
func (v *View) updateColumn(i int, calc CalcFunc) {
	pw, ph := v.pixelW, v.pixelH
	x := v.xRuler.coord[i]
	dst := v.frame.Pixels

	var last uint32
	for j := 0; j < ph; j++ {
		canonical := j == 0 || v.yRuler.err[j] == 0 || v.yRuler.from[j] != noFrom
		if canonical {
			last = calc(x, v.yRuler.coord[j])
		}
		dst[j*pw+i] = last
	}

	for u := i + 1; u < pw; u++ {
		if v.xRuler.err[u] != 0 && v.xRuler.from[u] == noFrom {
			copyColumn(dst, pw, ph, u, i)
			continue
		}
		break
	}

	v.xRuler.nearest[i] = x
	v.xRuler.err[i] = 0
	v.frame.Stats.CntVLines++
}

// updateRow recomputes pixel row j in full, then propagates it downward
// into any immediately-following stale-duplicate rows.
func (v *View) updateRow(j int, calc CalcFunc) {
	pw := v.pixelW
	y := v.yRuler.coord[j]
	dst := v.frame.Pixels
	row := dst[j*pw : j*pw+pw]

	var last uint32
	for i := 0; i < pw; i++ {
		canonical := i == 0 || v.xRuler.err[i] == 0 || v.xRuler.from[i] != noFrom
		if canonical {
			last = calc(v.xRuler.coord[i], y)
		}
		row[i] = last
	}

	ph := v.pixelH
	for u := j + 1; u < ph; u++ {
		if v.yRuler.err[u] != 0 && v.yRuler.from[u] == noFrom {
			copy(dst[u*pw:u*pw+pw], row)
			continue
		}
		break
	}

	v.yRuler.nearest[j] = y
	v.yRuler.err[j] = 0
	v.frame.Stats.CntHLines++
}

func copyColumn(pixels []uint32, pw, ph, dstCol, srcCol int) {
	for j := 0; j < ph; j++ {
		pixels[j*pw+dstCol] = pixels[j*pw+srcCol]
	}
}
