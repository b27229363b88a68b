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

// Package fractal is a reference implementation of the pixel formula the
// zoomer package deliberately treats as an external collaborator
// (zoomer.CalcFunc / Callbacks.OnUpdatePixel). It computes the classic
// Mandelbrot escape-time count with a smoothed fractional remainder folded
// into the low bits, so a palette can interpolate between bands instead of
// banding sharply.
package fractal

import "math"

// bailout is the escape radius squared; once |z|^2 exceeds it the orbit is
// considered diverging. 1<<16 gives headroom for the smoothing correction
// below without materially changing which points are considered inside the
// set versus a tighter bailout.
const bailout = 1 << 16

// Mandelbrot computes escape-time iteration counts for the classic z^2+c
// orbit, c = x+iy.
type Mandelbrot struct {
	// MaxIter bounds how many iterations are attempted before a point is
	// considered part of the set (interior).
	MaxIter int
}

// New returns a Mandelbrot evaluator with the given iteration cap.
func New(maxIter int) *Mandelbrot {
	if maxIter <= 0 {
		maxIter = 1000
	}
	return &Mandelbrot{MaxIter: maxIter}
}

// Escape matches zoomer.CalcFunc: given a point on the plane it returns a
// 16-bit code suitable for indexing a zoomer.Palette. Interior points (the
// orbit never escaped within MaxIter) return MaxIter itself, the index
// palette.Generator reserves for its fixed interior colour.
func (m *Mandelbrot) Escape(x, y float64) uint32 {
	var zx, zy float64
	var i int

	for i = 0; i < m.MaxIter; i++ {
		zx2, zy2 := zx*zx, zy*zy
		if zx2+zy2 > bailout {
			break
		}
		zy = 2*zx*zy + y
		zx = zx2 - zy2 + x
	}

	if i >= m.MaxIter {
		return uint32(m.MaxIter)
	}

	// smooth the hard iteration count by folding in the fractional part of
	// the continuous escape-time estimate, so a palette can interpolate
	// instead of banding.
	zx2, zy2 := zx*zx, zy*zy
	logZn := math.Log(zx2+zy2) / 2
	nu := math.Log(logZn/math.Log(2)) / math.Log(2)
	smoothed := float64(i) + 1 - nu
	if smoothed < 0 {
		smoothed = 0
	}
	if int(smoothed) >= m.MaxIter {
		return uint32(m.MaxIter - 1)
	}
	return uint32(smoothed)
}
