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
	"math"
	"time"

	"github.com/jetsetilly/zoomcore/internal/zerr"
	"github.com/jetsetilly/zoomcore/internal/zlog"
)

// fixedShift is the 16.16 fixed point shift used by the rotated fast path.
// The magic constants below (x_start/y_start using a 32768 = 2^15 half
// step, ix/iy/jx/jy using 65536 = 2^16) are reproduced bit-for-bit from the
// this module's fixed-point coordinate convention; the half-pixel bias in
// x_start/y_start
// is preserved even though its status (centre-sample convention vs. an
// off-by-one elsewhere) is accepted as-is rather than corrected.
const fixedShift = 16

// RenderFrame populates frame.RGBA from frame.Pixels according to the
// frame's angle and whether a Palette is attached. If now is at or past
// frame.TimeExpire the render is abandoned: RGBA is left untouched and
// Stats.Dropped is set, signalling the scheduler to count a drop.
func RenderFrame(frame *Frame, now time.Time) {
	if !frame.TimeExpire.IsZero() && !now.Before(frame.TimeExpire) {
		frame.Stats.Dropped = true
		frame.Stats.DurationRender = 0
		return
	}

	if need := frame.PixelW * frame.PixelH; len(frame.Pixels) < need {
		err := zerr.New(zerr.RenderFailure, "pixel buffer too small for PixelW*PixelH")
		zlog.Log(zlog.Allow, "render", err.Error())
		frame.Stats.Dropped = true
		frame.Stats.DurationRender = 0
		return
	}
	if need := frame.ViewW * frame.ViewH; len(frame.RGBA) < need {
		err := zerr.New(zerr.RenderFailure, "output buffer too small for ViewW*ViewH")
		zlog.Log(zlog.Allow, "render", err.Error())
		frame.Stats.Dropped = true
		frame.Stats.DurationRender = 0
		return
	}

	start := time.Now()

	if frame.Angle == 0 {
		renderAxisAligned(frame)
	} else {
		renderRotated(frame)
	}

	frame.Stats.DurationRender = time.Since(start)
	frame.Stats.Dropped = false
}

func renderAxisAligned(frame *Frame) {
	vw, vh := frame.ViewW, frame.ViewH
	pw := frame.PixelW

	i0 := (frame.PixelW - vw) / 2
	j0 := (frame.PixelH - vh) / 2

	if frame.Palette == nil && pw == vw {
		// single contiguous copy: no cropping, no palette indirection.
		copy(frame.RGBA, frame.Pixels[:vw*vh])
		return
	}

	for j := 0; j < vh; j++ {
		srcRow := frame.Pixels[(j+j0)*pw+i0 : (j+j0)*pw+i0+vw]
		dstRow := frame.RGBA[j*vw : j*vw+vw]
		if frame.Palette == nil {
			copy(dstRow, srcRow)
			continue
		}
		pal := frame.Palette
		for i, code := range srcRow {
			dstRow[i] = pal[code&0xffff]
		}
	}
}

func renderRotated(frame *Frame) {
	vw, vh := frame.ViewW, frame.ViewH
	pw, ph := frame.PixelW, frame.PixelH

	rad := frame.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	xStart := int64(math.Floor((float64(pw) - float64(vh)*sin - float64(vw)*cos) * 32768))
	yStart := int64(math.Floor((float64(ph) - float64(vh)*cos + float64(vw)*sin) * 32768))
	ixStep := int64(math.Floor(cos * 65536))
	iyStep := int64(math.Floor(-sin * 65536))
	jxStep := int64(math.Floor(sin * 65536))
	jyStep := int64(math.Floor(cos * 65536))

	for v := 0; v < vh; v++ {
		rowX := xStart + int64(v)*jxStep
		rowY := yStart + int64(v)*jyStep

		dstRow := frame.RGBA[v*vw : v*vw+vw]

		ix := rowX
		iy := rowY
		for u := 0; u < vw; u++ {
			px := int(ix >> fixedShift)
			py := int(iy >> fixedShift)

			if px >= 0 && px < pw && py >= 0 && py < ph {
				code := frame.Pixels[py*pw+px]
				if frame.Palette != nil {
					dstRow[u] = frame.Palette[code&0xffff]
				} else {
					dstRow[u] = code
				}
			} else if frame.Palette != nil {
				dstRow[u] = frame.Palette[TransparentIndex]
			} else {
				dstRow[u] = 0
			}

			ix += ixStep
			iy += iyStep
		}
	}
}
