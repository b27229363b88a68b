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
	"encoding/binary"
	"image"
	"testing"

	ximgdraw "golang.org/x/image/draw"
)

func checkerboardFrame(dim int) *Frame {
	f := newTestFrame(dim, dim)
	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			f.Pixels[j*dim+i] = uint32((i + j) % 2)
		}
	}
	var pal Palette
	pal[0] = 0xff000000
	pal[1] = 0xffffffff
	f.Palette = &pal
	return f
}

// property 6: rendering the same frame twice, with nothing mutated in
// between, is idempotent: RGBA comes out identical both times.
func TestRenderIdempotence(t *testing.T) {
	f := checkerboardFrame(20)

	RenderFrame(f, f.TimeExpire)
	first := make([]uint32, len(f.RGBA))
	copy(first, f.RGBA)

	RenderFrame(f, f.TimeExpire)

	for i, c := range f.RGBA {
		if c != first[i] {
			t.Fatalf("rgba[%d] changed between identical renders: %#x -> %#x", i, first[i], c)
		}
	}
}

// property 7: at angle 0 with a 1:1 view/pixel ratio, the rotated path's
// general fixed-point math must degenerate to the same mapping as the
// axis-aligned fast path: it is its own correctness check at the identity
// rotation.
func TestRenderRotatedMatchesAxisAlignedAtZero(t *testing.T) {
	fa := checkerboardFrame(24)
	fa.Angle = 0
	renderAxisAligned(fa)

	fb := checkerboardFrame(24)
	fb.Angle = 0
	renderRotated(fb)

	for i, c := range fa.RGBA {
		if c != fb.RGBA[i] {
			t.Fatalf("rgba[%d]: axis-aligned=%#x rotated=%#x, want equal at angle 0", i, c, fb.RGBA[i])
		}
	}
}

// property 7: at a 1:1 scale the axis-aligned fast path's crop-and-copy is
// nothing more than a nearest-neighbour resample with identical source and
// destination rectangles. Cross-checked here against
// golang.org/x/image/draw's independent NearestNeighbor implementation,
// rather than against our own renderRotated (which would only prove the
// two paths agree with each other, not with an outside reference).
func TestRenderCropMatchesNearestNeighborCrossCheck(t *testing.T) {
	const dim = 16
	f := checkerboardFrame(dim)
	f.Palette = nil // Pixels already hold resolved RGBA, as renderAxisAligned expects with Palette nil
	for i := range f.Pixels {
		if i%2 == 0 {
			f.Pixels[i] = 0xff102030
		} else {
			f.Pixels[i] = 0xffa0b0c0
		}
	}

	renderAxisAligned(f)

	src := packedToNRGBA(f.Pixels, dim, dim)
	dst := image.NewNRGBA(image.Rect(0, 0, dim, dim))
	ximgdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), ximgdraw.Src, nil)

	want := packedToNRGBA(f.RGBA, dim, dim)
	for i := range want.Pix {
		if dst.Pix[i] != want.Pix[i] {
			t.Fatalf("byte %d: cross-check=%v want=%v", i, dst.Pix[i], want.Pix[i])
		}
	}
}

// packedToNRGBA reinterprets a row-major 0xAABBGGRR buffer as an
// image.NRGBA, matching the byte order surfacesdl.PutImageData uploads to
// an ABGR8888 texture.
func packedToNRGBA(pixels []uint32, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, px := range pixels {
		binary.LittleEndian.PutUint32(img.Pix[i*4:i*4+4], px)
	}
	return img
}

// a frame past its expiry must be dropped: RGBA left untouched, Dropped set.
func TestRenderDropsExpiredFrame(t *testing.T) {
	f := checkerboardFrame(8)
	f.RGBA[0] = 0x12345678

	// a zero TimeExpire never expires (see RenderFrame), so give it a
	// concrete deadline strictly before "now".
	f.TimeExpire = f.TimeExpire.Add(1)
	now := f.TimeExpire.Add(1)

	RenderFrame(f, now)

	if !f.Stats.Dropped {
		t.Fatal("expected frame to be marked dropped")
	}
	if f.RGBA[0] != 0x12345678 {
		t.Fatal("dropped render must not touch RGBA")
	}
}
