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

import "testing"

func newTestFrame(w, h int) *Frame {
	f := &Frame{}
	f.reset(w, h, w, h, 0)
	return f
}

// scenario A: constant calc(x,y)=0 through an identity palette yields an
// all-zero RGBA frame with full quality after one fill.
func TestScenarioAConstantZero(t *testing.T) {
	v := newView(64, 64, false)
	f := newTestFrame(64, 64)
	v.SetPosition(f, 0, 0, 2, nil)
	v.Fill(func(x, y float64) uint32 { return 0 })

	var pal Palette
	for i := range pal {
		pal[i] = uint32(i)
	}
	f.Palette = &pal

	RenderFrame(f, f.TimeExpire)
	for i, c := range f.RGBA {
		if c != 0 {
			t.Fatalf("rgba[%d] = %v, want 0", i, c)
		}
	}
	if f.Stats.Quality != 1 {
		t.Fatalf("quality = %v, want 1", f.Stats.Quality)
	}
}

// scenario B: constant calc(x,y)=65535 renders as the palette's background
// index colour everywhere.
func TestScenarioBTransparentBackground(t *testing.T) {
	v := newView(64, 64, false)
	f := newTestFrame(64, 64)
	v.SetPosition(f, 0, 0, 2, nil)
	v.Fill(func(x, y float64) uint32 { return TransparentIndex })

	var pal Palette
	for i := range pal {
		pal[i] = uint32(i)
	}
	pal[TransparentIndex] = 0xdeadbeef
	f.Palette = &pal

	RenderFrame(f, f.TimeExpire)
	for i, c := range f.RGBA {
		if c != 0xdeadbeef {
			t.Fatalf("rgba[%d] = %#x, want background colour", i, c)
		}
	}
}

// scenario C: a second SetPosition against a populated previous View
// inherits some pixels exactly and reports nonzero quality.
func TestScenarioCInheritance(t *testing.T) {
	v1 := newView(128, 128, false)
	f1 := newTestFrame(128, 128)
	v1.SetPosition(f1, 0, 0, 2, nil)
	v1.Fill(func(x, y float64) uint32 { return uint32(x*1000) + uint32(y*1000) })

	v2 := newView(128, 128, false)
	f2 := newTestFrame(128, 128)
	v2.SetPosition(f2, 0.5, 0, 1, v1)

	if f2.Stats.CntPixels == 0 {
		t.Fatal("expected some pixels to be inherited exactly")
	}
	if f2.Stats.Quality <= 0 {
		t.Fatalf("quality = %v, want > 0", f2.Stats.Quality)
	}
}

// property 4: warping a constant-coloured previous frame yields a uniform
// new frame regardless of the requested center/radius.
func TestWarpCorrectnessConstantFrame(t *testing.T) {
	v1 := newView(32, 32, false)
	f1 := newTestFrame(32, 32)
	v1.SetPosition(f1, 0, 0, 2, nil)
	v1.Fill(func(x, y float64) uint32 { return 7 })

	v2 := newView(32, 32, false)
	f2 := newTestFrame(32, 32)
	v2.SetPosition(f2, 1.3, -0.4, 0.6, v1)

	for i, c := range f2.Pixels {
		if c != 7 {
			t.Fatalf("pixels[%d] = %v, want 7 (uniform warp of constant frame)", i, c)
		}
	}
}

// property 5: repeated UpdateLines calls eventually drive every ruler
// error to zero.
func TestUpdateConvergence(t *testing.T) {
	v := newView(16, 16, false)
	f := newTestFrame(16, 16)
	v.SetPosition(f, 0, 0, 2, nil)
	v.Fill(func(x, y float64) uint32 { return 0 })

	// force some residual error back in, as if inherited from a prior
	// frame with imperfect matches.
	for i := range v.xRuler.err {
		v.xRuler.err[i] = 0.01
		v.xRuler.from[i] = noFrom
	}
	for j := range v.yRuler.err {
		v.yRuler.err[j] = 0.02
		v.yRuler.from[j] = noFrom
	}

	calc := func(x, y float64) uint32 { return 1 }

	limit := v.pixelW + v.pixelH + 4
	for i := 0; i < limit; i++ {
		v.UpdateLines(calc)
	}

	if idx, e := v.xRuler.worst(); idx >= 0 || e != 0 {
		t.Fatalf("x ruler did not converge: worst idx=%d err=%v", idx, e)
	}
	if idx, e := v.yRuler.worst(); idx >= 0 || e != 0 {
		t.Fatalf("y ruler did not converge: worst idx=%d err=%v", idx, e)
	}
}

// scenario D: a 45-degree rotation of a single bright pixel at the buffer
// centre lands at the centre of the view.
func TestScenarioDRotationSanity(t *testing.T) {
	const viewDim = 100
	const pixelDim = 142

	f := newTestFrame(viewDim, viewDim)
	f.PixelW, f.PixelH = pixelDim, pixelDim
	f.Pixels = make([]uint32, pixelDim*pixelDim)
	f.Angle = 45

	var pal Palette
	pal[0] = 0x00000000
	pal[1] = 0xffffffff
	f.Palette = &pal

	f.Pixels[(pixelDim/2)*pixelDim+pixelDim/2] = 1

	RenderFrame(f, f.TimeExpire)

	brightest := -1
	var brightestAt int
	for i, c := range f.RGBA {
		if c == 0xffffffff {
			brightest = i
			brightestAt++
		}
	}
	if brightest < 0 {
		t.Fatal("expected at least one bright pixel in rotated output")
	}

	cx, cy := brightest%viewDim, brightest/viewDim
	if abs(cx-viewDim/2) > 2 || abs(cy-viewDim/2) > 2 {
		t.Fatalf("brightest pixel at (%d,%d), want near view centre (%d,%d)", cx, cy, viewDim/2, viewDim/2)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
